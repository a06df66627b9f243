package redissessionrepo_test

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-mall-client/sessions"
	redissessionrepo "github.com/jrsteele09/go-mall-client/sessions/redisrepo"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *redissessionrepo.RedisSessionRepo {
	t.Helper()
	url := os.Getenv("MALL_TEST_REDIS_URL")
	if url == "" {
		t.Skip("MALL_TEST_REDIS_URL not set")
	}
	repo, err := redissessionrepo.NewRedisSessionRepo(url, "mall-test-"+uuid.NewString()+":")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Delete(sessions.PersistedKeys...)
		_ = repo.Close()
	})
	return repo
}

func TestRedisSessionRepoRoundTrip(t *testing.T) {
	repo := newRepo(t)

	_, ok, err := repo.Get(sessions.KeyCredential)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.SetAll(map[string]string{sessions.KeyCredential: "abc"}))
	value, ok, err := repo.Get(sessions.KeyCredential)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", value)

	require.NoError(t, repo.Delete(sessions.KeyCredential))
	_, ok, err = repo.Get(sessions.KeyCredential)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNewRedisSessionRepoInvalidURL(t *testing.T) {
	_, err := redissessionrepo.NewRedisSessionRepo("not-a-url", "")
	require.Error(t, err)
}
