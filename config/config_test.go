package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Jikan: JikanConfig{
			BaseURL:     "https://api.jikan.moe/v3",
			Timeout:     30 * time.Second,
			Concurrency: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "Valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "Relative base URL",
			mutate:  func(c *Config) { c.Jikan.BaseURL = "/v3" },
			wantErr: "jikan.base_url",
		},
		{
			name:    "Unsupported scheme",
			mutate:  func(c *Config) { c.Jikan.BaseURL = "ftp://api.jikan.moe/v3" },
			wantErr: "jikan.base_url",
		},
		{
			name:    "Zero timeout",
			mutate:  func(c *Config) { c.Jikan.Timeout = 0 },
			wantErr: "jikan.timeout",
		},
		{
			name:    "Negative concurrency",
			mutate:  func(c *Config) { c.Jikan.Concurrency = -1 },
			wantErr: "jikan.concurrency",
		},
		{
			name:    "Invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "Invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
		{
			name: "Valid preset",
			mutate: func(c *Config) {
				c.Filter.Presets = map[string]FilterPreset{"good": {Expression: `HasScore and Score > 8`}}
			},
		},
		{
			name: "Broken preset",
			mutate: func(c *Config) {
				c.Filter.Presets = map[string]FilterPreset{"broken": {Expression: `Score >`}}
			},
			wantErr: `invalid filter preset "broken"`,
		},
		{
			name:    "Broken default expression",
			mutate:  func(c *Config) { c.Filter.DefaultExpression = `hasGenre(` },
			wantErr: "invalid filter.default_expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("File overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
jikan:
  base_url: http://localhost:8080/v3
  timeout: 5s
  suppress_errors: true
logging:
  level: debug
filter:
  default_expression: HasScore
  presets:
    airing:
      expression: Status == "watching" and Airing == "AIRING"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8080/v3", cfg.Jikan.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Jikan.Timeout)
		assert.True(t, cfg.Jikan.SuppressErrors)
		assert.Equal(t, 3, cfg.Jikan.Concurrency)
		assert.Equal(t, "jikan-go", cfg.Jikan.UserAgent)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "console", cfg.Logging.Format)
		assert.True(t, cfg.Logging.Color)
		assert.Equal(t, "HasScore", cfg.Filter.DefaultExpression)
		assert.Equal(t, map[string]string{
			"airing": `Status == "watching" and Airing == "AIRING"`,
		}, cfg.Filter.PresetExpressions())
	})

	t.Run("Missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("Invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("No file uses defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "https://api.jikan.moe/v3", cfg.Jikan.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Jikan.Timeout)
		assert.False(t, cfg.Jikan.SuppressErrors)
	})
}
