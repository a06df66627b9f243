package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/jrsteele09/go-mall-client/api"
	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/sessions"
	fakesessionrepo "github.com/jrsteele09/go-mall-client/sessions/repofakes"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newStore(t *testing.T, credential string) *sessions.Store {
	t.Helper()
	store, err := sessions.NewStore(fakesessionrepo.NewFakeSessionRepo())
	require.NoError(t, err)
	if credential != "" {
		_, err = store.Login(&sessions.AuthResponse{Credential: credential})
		require.NoError(t, err)
	}
	return store
}

func newClient(t *testing.T, router http.Handler, store *sessions.Store, opts ...api.Option) *api.Client {
	t.Helper()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL+"/api", store, opts...)
	require.NoError(t, err)
	return client
}

func TestNewValidatesBaseURL(t *testing.T) {
	store := newStore(t, "")

	_, err := api.New("ftp://example.com", store)
	require.Error(t, err)

	_, err = api.New("http://example.com/api", nil)
	require.Error(t, err)

	client, err := api.New("http://example.com/api/", store)
	require.NoError(t, err)
	require.Equal(t, "http://example.com/api", client.BaseURL())
}

func TestAuthenticatedCallWithoutCredentialMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	router := mux.NewRouter()
	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})
	client := newClient(t, router, newStore(t, ""))

	_, err := client.GetCart(context.Background())
	require.ErrorIs(t, err, api.ErrNoCredential)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.KindPrecondition, apiErr.Kind)
	require.Zero(t, hits.Load())
}

func TestBearerAndRequestHeaders(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get(api.RequestIDHeader))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": []mallmodel.CartItem{
				{CartID: 1, ProductID: 10, Name: "Pen", Price: 2.5, Quantity: 2, StockQuantity: 5},
			},
		})
	}).Methods(http.MethodGet)
	client := newClient(t, router, newStore(t, "secret-token"))

	items, err := client.GetCart(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(1), items[0].CartID)
	require.Equal(t, "Pen", items[0].Name)
}

func TestUnauthorizedResetsSession(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "token expired"})
	})
	store := newStore(t, "stale")
	client := newClient(t, router, store)

	err := client.AddCartItem(context.Background(), 1, 1)
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.ErrorIs(t, err, mallerrors.ErrNotAuthenticated)
	require.Equal(t, "token expired", api.Message(err))
	require.False(t, store.IsAuthenticated())
	require.Equal(t, sessions.Session{}, store.Snapshot())
}

func TestUnauthorizedOnPublicCallKeepsSession(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "bad password"})
	})
	store := newStore(t, "current")
	client := newClient(t, router, store)

	_, err := client.Login(context.Background(), "u", "p")
	require.ErrorIs(t, err, api.ErrServer)
	require.Equal(t, "bad password", api.Message(err))
	require.True(t, store.IsAuthenticated())
}

func TestServerFailureMessages(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch mux.Vars(r)["id"] {
		case "1":
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "out of stock"})
		case "2":
			writeJSON(w, http.StatusOK, map[string]any{"success": false})
		case "3":
			writeJSON(w, http.StatusOK, map[string]any{"message": "no indicator"})
		case "4":
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "cart item not found"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}).Methods(http.MethodPut)
	client := newClient(t, router, newStore(t, "tok"))
	ctx := context.Background()

	testCases := []struct {
		cartID  int64
		message string
		status  int
	}{
		{1, "out of stock", http.StatusOK},
		{2, "failed to update cart item quantity", http.StatusOK},
		{3, "no indicator", http.StatusOK},
		{4, "cart item not found", http.StatusNotFound},
		{5, "failed to update cart item quantity", http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		err := client.UpdateCartItemQuantity(ctx, tc.cartID, 2)
		require.ErrorIs(t, err, api.ErrServer, tc.cartID)
		require.Equal(t, tc.message, api.Message(err), tc.cartID)

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, tc.status, apiErr.Status)
	}

	err := client.UpdateCartItemQuantity(ctx, 4, 1)
	require.ErrorIs(t, err, mallerrors.ErrNotFound)
}

func TestEmptyReplyFailsStrictEndpoints(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusOK} {
		router := mux.NewRouter()
		router.PathPrefix("/api/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		client := newClient(t, router, newStore(t, "tok"))
		ctx := context.Background()

		err := client.DeleteCartItem(ctx, 7)
		require.ErrorIs(t, err, api.ErrServer, status)
		require.Equal(t, "failed to remove cart item", api.Message(err), status)

		require.ErrorIs(t, client.AddCartItem(ctx, 1, 1), api.ErrServer, status)
		require.ErrorIs(t, client.UpdateCartItemQuantity(ctx, 7, 2), api.ErrServer, status)

		id, err := client.CreateOrder(ctx, mallmodel.OrderDraft{ShippingAddress: "1 Main St", CartItemIDs: []int64{7}})
		require.ErrorIs(t, err, api.ErrServer, status)
		require.Zero(t, id, status)
	}
}

func TestNoContentIsSuccessForNonStrictCalls(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)
	client := newClient(t, router, newStore(t, "tok"))

	require.NoError(t, client.Logout(context.Background()))
}

func TestWithHTTPClientLeavesCallerClientUntouched(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/product/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": mallmodel.Product{ID: 3, Name: "Mug"}})
	})
	shared := &http.Client{}

	one := newClient(t, router, newStore(t, ""), api.WithHTTPClient(shared), api.WithTracing(true), api.WithTimeout(time.Second))
	two := newClient(t, router, newStore(t, ""), api.WithHTTPClient(shared), api.WithTracing(true))

	require.Zero(t, shared.Timeout)
	require.Nil(t, shared.Transport)

	for _, client := range []*api.Client{one, two} {
		product, err := client.GetProduct(context.Background(), 3)
		require.NoError(t, err)
		require.Equal(t, "Mug", product.Name)
	}
}

func TestTransportTimeout(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/product", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})
	client := newClient(t, router, newStore(t, ""), api.WithTimeout(50*time.Millisecond))

	_, err := client.ListProducts(context.Background())
	require.ErrorIs(t, err, api.ErrTransport)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.KindTransport, apiErr.Kind)
}

func TestTracingClientStillWorks(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/product/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": mallmodel.Product{ID: 3, Name: "Mug"}})
	})
	client := newClient(t, router, newStore(t, ""), api.WithTracing(true))

	product, err := client.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "Mug", product.Name)
}
