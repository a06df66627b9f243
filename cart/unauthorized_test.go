package cart_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/jrsteele09/go-mall-client/api"
	"github.com/jrsteele09/go-mall-client/cart"
	"github.com/jrsteele09/go-mall-client/internal/utils"
	"github.com/jrsteele09/go-mall-client/sessions"
	fakesessionrepo "github.com/jrsteele09/go-mall-client/sessions/repofakes"
	"github.com/stretchr/testify/require"
)

func TestUnauthorizedResetsSessionFromAnyOperation(t *testing.T) {
	router := mux.NewRouter()
	router.PathPrefix("/api/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	operations := map[string]func(*cart.Store) bool{
		"fetch":  func(s *cart.Store) bool { return s.FetchCartItems(context.Background()) },
		"add":    func(s *cart.Store) bool { return s.AddToCart(context.Background(), 1, 1) },
		"update": func(s *cart.Store) bool { return s.UpdateCartItemQuantity(context.Background(), 1, 2) },
		"remove": func(s *cart.Store) bool { return s.RemoveCartItem(context.Background(), 1) },
		"order": func(s *cart.Store) bool {
			_, ok := s.CreateOrder(context.Background(), "somewhere")
			return ok
		},
	}

	for name, op := range operations {
		t.Run(name, func(t *testing.T) {
			repo := fakesessionrepo.NewFakeSessionRepo()
			session, err := sessions.NewStore(repo)
			require.NoError(t, err)
			_, err = session.Login(&sessions.AuthResponse{
				Credential:      "expired",
				UserID:          utils.Ptr(int64(8)),
				DisplayName:     utils.Ptr("frank"),
				IsAdministrator: true,
			})
			require.NoError(t, err)

			client, err := api.New(srv.URL+"/api", session)
			require.NoError(t, err)
			store := cart.NewStore(client)

			require.False(t, op(store))
			require.Equal(t, "invalid token", store.LastError())
			require.Equal(t, sessions.Session{}, session.Snapshot())
			require.Zero(t, repo.Len())
		})
	}
}

func TestNoCredentialFailsLocally(t *testing.T) {
	session, err := sessions.NewStore(fakesessionrepo.NewFakeSessionRepo())
	require.NoError(t, err)
	client, err := api.New("http://127.0.0.1:1/api", session)
	require.NoError(t, err)

	store := cart.NewStore(client)
	require.False(t, store.FetchCartItems(context.Background()))
	require.Equal(t, api.ErrNoCredential.Error(), store.LastError())
}
