package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebridge/forgebridge/pkg/log"
)

// clearEnv blanks the recognized variables so ambient values from the test
// environment cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"GITHUB_TOKEN", "FORGEBRIDGE_TOKEN", "FORGEBRIDGE_API_BASE_URL", "FORGEBRIDGE_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, log.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.APIBaseURL)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FORGEBRIDGE_TOKEN", "tok-from-env")
	t.Setenv("FORGEBRIDGE_API_BASE_URL", "https://ghe.example.com/api/v3/")
	t.Setenv("FORGEBRIDGE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "tok-from-env", cfg.Token)
	assert.Equal(t, "https://ghe.example.com/api/v3/", cfg.APIBaseURL)
	assert.Equal(t, log.LevelDebug, cfg.LogLevel)
}

func TestLoadPrefersForgebridgeTokenOverGithubToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "generic")
	t.Setenv("FORGEBRIDGE_TOKEN", "specific")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "specific", cfg.Token)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: file-token\nlog_level: warn\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, log.LevelWarn, cfg.LogLevel)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{LogLevel: log.LevelInfo}
	assert.NoError(t, cfg.Validate(), "a missing token is not a startup error")

	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
}
