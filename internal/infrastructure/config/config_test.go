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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "FridgeLens", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini-1.5-flash", cfg.AI.Model)
	assert.Equal(t, 8*time.Second, cfg.AI.RequestTimeout)
	assert.Equal(t, 0.9, cfg.AI.Temperature)
	assert.Equal(t, 40, cfg.AI.TopK)
	assert.Equal(t, 2048, cfg.AI.MaxOutputTokens)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
app:
  environment: staging
server:
  port: 9090
ai:
  model: gemini-1.5-pro
storage:
  backend: redis
  redis_addr: redis:6379
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "gemini-1.5-pro", cfg.AI.Model)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "redis:6379", cfg.Storage.RedisAddr)
	// Defaults still fill the gaps.
	assert.Equal(t, "FridgeLens", cfg.App.Name)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FRIDGELENS_SERVER_PORT", "3000")
	t.Setenv("FRIDGELENS_AI_API_KEY", "env-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.AI.APIKey)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:     AppConfig{Name: "FridgeLens", Environment: "development"},
			Server:  ServerConfig{Port: 8080},
			Storage: StorageConfig{Backend: "memory"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		cfg := base()
		cfg.App.Name = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("port out of range", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("production without api key", func(t *testing.T) {
		cfg := base()
		cfg.App.Environment = "production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown storage backend", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Backend = "postgres"
		assert.Error(t, cfg.Validate())
	})
}
