package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.DefaultModel)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
	assert.NotEmpty(t, cfg.DatabasePath)
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_model: claude-sonnet-4
fallback_models:
  - gemini-2.0-flash
  - deepseek-chat
request_timeout_seconds: 120
database_path: /tmp/posts.db
base_urls:
  openai: http://localhost:9090
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4", cfg.DefaultModel)
	assert.Equal(t, []string{"gemini-2.0-flash", "deepseek-chat"}, cfg.FallbackModels)
	assert.Equal(t, 120*time.Second, cfg.Timeout())
	assert.Equal(t, "/tmp/posts.db", cfg.DatabasePath)
	assert.Equal(t, "http://localhost:9090", cfg.BaseURLs["openai"])
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_model: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("request_timeout_seconds: -5"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
}

func TestApplyEnv_Overrides(t *testing.T) {
	cfg := Default()
	cfg.applyEnv(func(key string) string {
		return map[string]string{
			"VIDSCRIBE_DEFAULT_MODEL":   "grok-2",
			"VIDSCRIBE_FALLBACK_MODELS": "mistral-large, deepseek-chat ,",
			"VIDSCRIBE_DB_PATH":         "/data/posts.db",
			"VIDSCRIBE_TIMEOUT_SECONDS": "90",
		}[key]
	})

	assert.Equal(t, "grok-2", cfg.DefaultModel)
	assert.Equal(t, []string{"mistral-large", "deepseek-chat"}, cfg.FallbackModels)
	assert.Equal(t, "/data/posts.db", cfg.DatabasePath)
	assert.Equal(t, 90*time.Second, cfg.Timeout())
}

func TestApplyEnv_BadTimeoutIgnored(t *testing.T) {
	for _, v := range []string{"abc", "-10", "0"} {
		cfg := Default()
		cfg.applyEnv(func(key string) string {
			if key == "VIDSCRIBE_TIMEOUT_SECONDS" {
				return v
			}
			return ""
		})
		assert.Equal(t, 60*time.Second, cfg.Timeout(), "value %q", v)
	}
}
