package sessions_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-mall-client/internal/utils"
	"github.com/jrsteele09/go-mall-client/sessions"
	fakesessionrepo "github.com/jrsteele09/go-mall-client/sessions/repofakes"
	"github.com/jrsteele09/go-mall-client/token"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*sessions.Store, *fakesessionrepo.FakeSessionRepo) {
	t.Helper()
	repo := fakesessionrepo.NewFakeSessionRepo()
	store, err := sessions.NewStore(repo)
	require.NoError(t, err)
	return store, repo
}

func TestNewStoreEmpty(t *testing.T) {
	store, _ := newStore(t)

	require.False(t, store.IsAuthenticated())
	require.False(t, store.IsAdmin())
	require.Equal(t, sessions.Session{}, store.Snapshot())
}

func TestNewStoreNilRepo(t *testing.T) {
	_, err := sessions.NewStore(nil)
	require.ErrorIs(t, err, sessions.ErrNilRepo)
}

func TestLoginPersistenceRoundTrip(t *testing.T) {
	testCases := []struct {
		name     string
		response sessions.AuthResponse
	}{
		{
			name: "customer",
			response: sessions.AuthResponse{
				Credential:  "cred-1",
				UserID:      utils.Ptr(int64(7)),
				DisplayName: utils.Ptr("alice"),
			},
		},
		{
			name: "administrator",
			response: sessions.AuthResponse{
				Credential:      "cred-2",
				UserID:          utils.Ptr(int64(1)),
				DisplayName:     utils.Ptr("admin"),
				IsAdministrator: true,
			},
		},
		{
			name: "missing optional fields",
			response: sessions.AuthResponse{
				Credential: "cred-3",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, repo := newStore(t)

			session, err := store.Login(&tc.response)
			require.NoError(t, err)
			require.True(t, session.IsAuthenticated())
			require.True(t, store.IsAuthenticated())

			restarted, err := sessions.NewStore(repo)
			require.NoError(t, err)

			got := restarted.Snapshot()
			require.Equal(t, tc.response.Credential, got.Credential)
			require.Equal(t, tc.response.UserID, got.UserID)
			require.Equal(t, utils.Value(tc.response.DisplayName), got.DisplayName)
			require.Equal(t, tc.response.IsAdministrator, got.IsAdmin)
			require.True(t, restarted.IsAuthenticated())
		})
	}
}

func TestLoginPersistedEncoding(t *testing.T) {
	store, repo := newStore(t)

	_, err := store.Login(&sessions.AuthResponse{Credential: "c", DisplayName: utils.Ptr("x")})
	require.NoError(t, err)

	for key, expected := range map[string]string{
		sessions.KeyCredential:  "c",
		sessions.KeyUserID:      "",
		sessions.KeyDisplayName: "x",
		sessions.KeyIsAdmin:     "false",
	} {
		value, ok, err := repo.Get(key)
		require.NoError(t, err)
		require.True(t, ok, key)
		require.Equal(t, expected, value, key)
	}
}

func TestLoginMalformedResponse(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.Login(&sessions.AuthResponse{Credential: "existing", IsAdministrator: true})
	require.NoError(t, err)

	for _, resp := range []*sessions.AuthResponse{nil, {}, {Credential: "   "}} {
		session, err := store.Login(resp)
		require.ErrorIs(t, err, sessions.ErrMalformedAuthResponse)
		require.Equal(t, "existing", session.Credential)
		require.Equal(t, "existing", store.Credential())
		require.True(t, store.IsAdmin())
	}
}

func TestLoginPersistFailureLeavesSession(t *testing.T) {
	store, repo := newStore(t)
	repo.Fail = true

	_, err := store.Login(&sessions.AuthResponse{Credential: "c"})
	require.ErrorIs(t, err, fakesessionrepo.ErrInjected)
	require.False(t, store.IsAuthenticated())
}

func TestLogoutClearsEverything(t *testing.T) {
	store, repo := newStore(t)
	_, err := store.Login(&sessions.AuthResponse{
		Credential:      "c",
		UserID:          utils.Ptr(int64(3)),
		DisplayName:     utils.Ptr("carol"),
		IsAdministrator: true,
	})
	require.NoError(t, err)

	require.NoError(t, store.Logout())
	require.Equal(t, sessions.Session{}, store.Snapshot())
	require.False(t, store.IsAuthenticated())
	require.False(t, store.IsAdmin())
	for _, key := range sessions.PersistedKeys {
		_, ok, err := repo.Get(key)
		require.NoError(t, err)
		require.False(t, ok, key)
	}
	require.Zero(t, repo.Len())

	// Idempotent
	require.NoError(t, store.Logout())
	require.Equal(t, sessions.Session{}, store.Snapshot())
}

func TestSnapshotIsCopy(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.Login(&sessions.AuthResponse{Credential: "c", UserID: utils.Ptr(int64(5))})
	require.NoError(t, err)

	snapshot := store.Snapshot()
	*snapshot.UserID = 99
	require.Equal(t, int64(5), store.Snapshot().UserIDValue())
}

func TestUnparsableUserIDIgnored(t *testing.T) {
	repo := fakesessionrepo.NewFakeSessionRepo()
	require.NoError(t, repo.SetAll(map[string]string{
		sessions.KeyCredential: "c",
		sessions.KeyUserID:     "abc",
	}))

	store, err := sessions.NewStore(repo)
	require.NoError(t, err)
	require.True(t, store.IsAuthenticated())
	require.Nil(t, store.Snapshot().UserID)
}

func TestCredentialClaims(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.CredentialClaims()
	require.Error(t, err)

	creator := token.NewCreator(token.NewHMACSigner("secret"), time.Hour)
	raw, err := creator.Create(12, "dave", true)
	require.NoError(t, err)

	_, err = store.Login(&sessions.AuthResponse{Credential: raw})
	require.NoError(t, err)

	claims, err := store.CredentialClaims()
	require.NoError(t, err)
	require.Equal(t, int64(12), claims.UserID)
	require.Equal(t, "dave", claims.Username)
	require.True(t, claims.IsAdmin)
	require.Equal(t, token.Issuer, claims.Issuer)
}
