package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/s0up4200/jikan/filter"
	"github.com/s0up4200/jikan/jikan"
)

// Load loads the configuration from file. Without an explicit path a missing
// file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".jikan"))
		}

		// Check /etc
		v.AddConfigPath("/etc/jikan/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("jikan.base_url", jikan.DefaultBaseURL)
	v.SetDefault("jikan.timeout", jikan.DefaultTimeout)
	v.SetDefault("jikan.user_agent", jikan.DefaultUserAgent)
	v.SetDefault("jikan.suppress_errors", false)
	v.SetDefault("jikan.concurrency", 3)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Jikan.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("jikan.base_url must be an absolute http(s) URL: %q", cfg.Jikan.BaseURL)
	}

	if cfg.Jikan.Timeout <= 0 {
		return fmt.Errorf("jikan.timeout must be positive: %s", cfg.Jikan.Timeout)
	}

	if cfg.Jikan.Concurrency <= 0 {
		return fmt.Errorf("jikan.concurrency must be positive: %d", cfg.Jikan.Concurrency)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	// Filters must compile
	compiler := filter.NewExprCompiler()
	if cfg.Filter.DefaultExpression != "" {
		if _, err := compiler.Compile(cfg.Filter.DefaultExpression); err != nil {
			return fmt.Errorf("invalid filter.default_expression: %w", err)
		}
	}
	for name, preset := range cfg.Filter.Presets {
		if _, err := compiler.Compile(preset.Expression); err != nil {
			return fmt.Errorf("invalid filter preset %q: %w", name, err)
		}
	}

	return nil
}
