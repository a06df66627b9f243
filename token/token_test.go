package token_test

import (
	"testing"
	"time"

	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/token"
	"github.com/stretchr/testify/require"
)

func TestCreateAndVerify(t *testing.T) {
	signer := token.NewHMACSigner("secret")
	creator := token.NewCreator(signer, time.Hour)

	raw, err := creator.Create(42, "alice", true)
	require.NoError(t, err)

	claims, err := token.Verify(raw, signer)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.True(t, claims.IsAdmin)
	require.Equal(t, token.Issuer, claims.Issuer)
	require.False(t, claims.Expired(time.Now()))
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := token.NewCreator(token.NewHMACSigner("one"), time.Hour).Create(1, "bob", false)
	require.NoError(t, err)

	_, err = token.Verify(raw, token.NewHMACSigner("two"))
	require.ErrorIs(t, err, mallerrors.ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	signer := token.NewHMACSigner("secret")

	original := token.NowTimeFunc
	t.Cleanup(func() { token.NowTimeFunc = original })

	token.NowTimeFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, err := token.NewCreator(signer, time.Hour).Create(1, "bob", false)
	require.NoError(t, err)

	token.NowTimeFunc = original
	_, err = token.Verify(raw, signer)
	require.ErrorIs(t, err, mallerrors.ErrTokenExpired)

	claims, err := token.Inspect(raw)
	require.NoError(t, err)
	require.True(t, claims.Expired(time.Now()))
}

func TestInspect_Garbage(t *testing.T) {
	_, err := token.Inspect("not-a-jwt")
	require.ErrorIs(t, err, mallerrors.ErrInvalidToken)

	_, err = token.Inspect("")
	require.ErrorIs(t, err, mallerrors.ErrInvalidToken)
}

func TestNewSigner_Algorithms(t *testing.T) {
	for _, alg := range []string{token.AlgHS256, token.AlgRS256, "es256"} {
		signer, err := token.NewSigner(alg, "secret")
		require.NoError(t, err, alg)

		raw, err := token.NewCreator(signer, time.Hour).Create(7, "carol", false)
		require.NoError(t, err, alg)

		claims, err := token.Verify(raw, signer)
		require.NoError(t, err, alg)
		require.Equal(t, int64(7), claims.UserID)
		require.NotEmpty(t, claims.ID)
	}

	_, err := token.NewSigner("none", "secret")
	require.ErrorIs(t, err, mallerrors.ErrInvalidInput)

	_, err = token.NewSigner(token.AlgHS256, "")
	require.ErrorIs(t, err, mallerrors.ErrInvalidInput)
}

func TestVerify_RejectsOtherKeyPair(t *testing.T) {
	one, err := token.NewSigner(token.AlgES256, "")
	require.NoError(t, err)
	two, err := token.NewSigner(token.AlgES256, "")
	require.NoError(t, err)

	raw, err := token.NewCreator(one, time.Hour).Create(1, "bob", false)
	require.NoError(t, err)

	_, err = token.Verify(raw, two)
	require.ErrorIs(t, err, mallerrors.ErrInvalidToken)

	_, err = token.Verify(raw, token.NewHMACSigner("secret"))
	require.ErrorIs(t, err, mallerrors.ErrInvalidToken)
}

func TestRevocationList(t *testing.T) {
	list := token.NewInMemoryRevocationList()
	live := &token.Claims{ID: "live", ExpiresAt: time.Now().Add(time.Hour)}
	stale := &token.Claims{ID: "stale", ExpiresAt: time.Now().Add(-time.Minute)}

	require.NoError(t, list.Revoke(stale))
	require.True(t, list.IsRevoked(stale))

	require.NoError(t, list.Revoke(live))
	require.True(t, list.IsRevoked(live))
	require.False(t, list.IsRevoked(stale), "expired entries are dropped on the next revoke")
	require.Equal(t, 1, list.Len())

	require.NoError(t, list.Revoke(&token.Claims{}))
	require.False(t, list.IsRevoked(&token.Claims{}))
}
