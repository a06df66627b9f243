package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-mall-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080/api", c.GetBaseURL())
	require.Equal(t, 10*time.Second, c.GetRequestTimeout())
	require.Equal(t, config.SessionBackendFile, c.GetSessionBackend())
	require.Equal(t, ":8080", c.GetListenAddr())
	require.Equal(t, time.Hour, c.GetTokenTTL())
	require.Equal(t, "HS256", c.GetSigningAlgorithm())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "admin", c.GetAdminUsername())
	require.Equal(t, "http://localhost:5173", c.GetAllowedOrigin())
	require.Equal(t, "mallctl:", c.GetRedisKeyPrefix())
	require.True(t, c.GetSeedData())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mall.yaml")
	content := `
api:
  base_url: https://shop.example.com/api/
  timeout: 3s
session:
  backend: memory
server:
  addr: "9090"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "https://shop.example.com/api", c.GetBaseURL())
	require.Equal(t, 3*time.Second, c.GetRequestTimeout())
	require.Equal(t, config.SessionBackendMemory, c.GetSessionBackend())
	require.Equal(t, ":9090", c.GetListenAddr())
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MALL_API_BASE_URL", "http://api.internal/api")
	t.Setenv("MALL_SESSION_BACKEND", "bogus")

	c, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "http://api.internal/api", c.GetBaseURL())
	require.Equal(t, config.SessionBackendFile, c.GetSessionBackend())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
