package cart_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/jrsteele09/go-mall-client/api"
	"github.com/jrsteele09/go-mall-client/cart"
	"github.com/jrsteele09/go-mall-client/internal/utils"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/sessions"
	fakesessionrepo "github.com/jrsteele09/go-mall-client/sessions/repofakes"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderWithEmptyReplyKeepsCart(t *testing.T) {
	var deletes atomic.Int32
	router := mux.NewRouter()
	router.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []mallmodel.CartItem{{CartID: 11, ProductID: 1, Name: "Mug", Price: 4.5, Quantity: 2, StockQuantity: 10}},
		})
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/order", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodPost)
	router.HandleFunc("/api/cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		deletes.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)
	srv := httptest.NewServer(router)
	defer srv.Close()

	session, err := sessions.NewStore(fakesessionrepo.NewFakeSessionRepo())
	require.NoError(t, err)
	_, err = session.Login(&sessions.AuthResponse{Credential: "tok", UserID: utils.Ptr(int64(3))})
	require.NoError(t, err)
	client, err := api.New(srv.URL+"/api", session)
	require.NoError(t, err)

	store := cart.NewStore(client)
	require.True(t, store.FetchCartItems(context.Background()))

	outcome, ok := store.CreateOrder(context.Background(), "1 Main St")
	require.False(t, ok)
	require.Zero(t, outcome.OrderID)
	require.Equal(t, "failed to create order", store.LastError())
	require.Zero(t, deletes.Load())
	require.Equal(t, []int64{11}, store.LineIDs())
	require.True(t, session.IsAuthenticated())
}
