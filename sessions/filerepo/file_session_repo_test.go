package filesessionrepo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-mall-client/internal/utils"
	"github.com/jrsteele09/go-mall-client/sessions"
	filesessionrepo "github.com/jrsteele09/go-mall-client/sessions/filerepo"
	"github.com/stretchr/testify/require"
)

func TestFileSessionRepoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	repo, err := filesessionrepo.NewFileSessionRepo(path)
	require.NoError(t, err)

	_, ok, err := repo.Get(sessions.KeyCredential)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.SetAll(map[string]string{sessions.KeyCredential: "abc", sessions.KeyIsAdmin: "true"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	value, ok, err := repo.Get(sessions.KeyCredential)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", value)

	require.NoError(t, repo.Delete(sessions.KeyCredential))
	_, ok, err = repo.Get(sessions.KeyCredential)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Delete(sessions.PersistedKeys...))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFileSessionRepoSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	repo, err := filesessionrepo.NewFileSessionRepo(path)
	require.NoError(t, err)

	store, err := sessions.NewStore(repo)
	require.NoError(t, err)
	_, err = store.Login(&sessions.AuthResponse{
		Credential:      "tok",
		UserID:          utils.Ptr(int64(42)),
		DisplayName:     utils.Ptr("bob"),
		IsAdministrator: true,
	})
	require.NoError(t, err)

	reopened, err := filesessionrepo.NewFileSessionRepo(path)
	require.NoError(t, err)
	restarted, err := sessions.NewStore(reopened)
	require.NoError(t, err)

	snapshot := restarted.Snapshot()
	require.Equal(t, "tok", snapshot.Credential)
	require.Equal(t, int64(42), snapshot.UserIDValue())
	require.Equal(t, "bob", snapshot.DisplayName)
	require.True(t, snapshot.IsAdmin)
}

func TestFileSessionRepoCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	repo, err := filesessionrepo.NewFileSessionRepo(path)
	require.NoError(t, err)
	_, _, err = repo.Get(sessions.KeyCredential)
	require.Error(t, err)
}

func TestNewFileSessionRepoRequiresPath(t *testing.T) {
	_, err := filesessionrepo.NewFileSessionRepo("")
	require.Error(t, err)
}
