package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT", "")
	cfg := load(source{})

	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Zero(t, cfg.APITimeout, "no client timeout unless configured")
	assert.Equal(t, "cookie", cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionMaxAge)
	assert.False(t, cfg.Production())
}

func TestFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: http://backend:5000/api\nrate_limit_per_min: 5\nhttp_port: 9000\n"), 0o600))

	file, err := readFile(path)
	require.NoError(t, err)

	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("RATE_LIMIT_PER_MIN", "")
	cfg := load(source{file: file})

	assert.Equal(t, "http://backend:5000/api", cfg.APIBaseURL)
	assert.Equal(t, 5, cfg.RateLimitPerMin)
	assert.Equal(t, "7000", cfg.HTTPPort)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_PER_MIN", "many")
	cfg := load(source{})
	assert.Zero(t, cfg.APITimeout)
	assert.Equal(t, 20, cfg.RateLimitPerMin)
}

func TestReadFileErrors(t *testing.T) {
	_, err := readFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o600))
	_, err = readFile(path)
	assert.Error(t, err)
}

func TestProduction(t *testing.T) {
	assert.True(t, App{Env: "production"}.Production())
	assert.True(t, App{Env: "prod"}.Production())
}
