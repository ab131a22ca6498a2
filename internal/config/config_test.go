package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "TABLE_PREFIX", "PORT", "AUTH_JWT_SECRET", "ACCESS_TOKEN_SECRET", "JWT_SECRET", "MAX_UPLOAD_BYTES", "CONVERSION_TIMEOUT", "PUBLIC_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "dev_", cfg.TablePrefix)
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, DefaultConversionTimeout, cfg.ConversionTimeout)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoad_SecretFallbacks(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("JWT_SECRET", "legacy")
	assert.Equal(t, "legacy", Load().JWTSecret)

	t.Setenv("ACCESS_TOKEN_SECRET", "access")
	assert.Equal(t, "access", Load().JWTSecret)

	t.Setenv("AUTH_JWT_SECRET", "primary")
	assert.Equal(t, "primary", Load().JWTSecret)
}

func TestGetTablePrefix(t *testing.T) {
	t.Setenv("TABLE_PREFIX", "")
	assert.Equal(t, "prod_", getTablePrefix("prod"))
	assert.Equal(t, "test_", getTablePrefix("test"))
	assert.Equal(t, "dev_", getTablePrefix("staging"))

	t.Setenv("TABLE_PREFIX", "custom_")
	assert.Equal(t, "custom_", getTablePrefix("prod"))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("CONVERSION_TIMEOUT", "90s")
	assert.Equal(t, 90*time.Second, getEnvDuration("CONVERSION_TIMEOUT", time.Minute))

	t.Setenv("CONVERSION_TIMEOUT", "45")
	assert.Equal(t, 45*time.Second, getEnvDuration("CONVERSION_TIMEOUT", time.Minute))

	t.Setenv("CONVERSION_TIMEOUT", "soon")
	assert.Equal(t, time.Minute, getEnvDuration("CONVERSION_TIMEOUT", time.Minute))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("LOG_MAX_FILES", "3")
	assert.Equal(t, 3, getEnvInt("LOG_MAX_FILES", 10))

	t.Setenv("LOG_MAX_FILES", "-1")
	assert.Equal(t, 10, getEnvInt("LOG_MAX_FILES", 10))
}

func TestOpenLogFile_PruneKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"server-2020-01-01T00-00-00.log", "server-2020-01-02T00-00-00.log", "server-2020-01-03T00-00-00.log", "cli-2019-01-01T00-00-00.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	f, err := OpenLogFile(dir, "server", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, filepath.Join(dir, "server-2021-01-01T00-00-00.log"), f.Name())

	removed, err := PruneLogs(dir, "server", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "server-2020-01-01T00-00-00.log"),
		filepath.Join(dir, "server-2020-01-02T00-00-00.log"),
	}, removed)

	files, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "server-2020-01-03T00-00-00.log"),
		f.Name(),
		filepath.Join(dir, "cli-2019-01-01T00-00-00.log"),
	}, files)
}

func TestPruneLogs_UnderLimit(t *testing.T) {
	dir := t.TempDir()
	removed, err := PruneLogs(dir, "server", 5)
	require.NoError(t, err)
	assert.Empty(t, removed)
}
