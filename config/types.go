package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Jikan   JikanConfig   `mapstructure:"jikan"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// JikanConfig holds API connection details
type JikanConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	SuppressErrors bool          `mapstructure:"suppress_errors"`
	Concurrency    int           `mapstructure:"concurrency"`
}

// FilterConfig contains the default expression and named presets
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]FilterPreset `mapstructure:"presets"`
}

// FilterPreset is a named, reusable filter expression
type FilterPreset struct {
	Expression string `mapstructure:"expression"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// PresetExpressions returns the preset expressions keyed by preset name
func (f FilterConfig) PresetExpressions() map[string]string {
	out := make(map[string]string, len(f.Presets))
	for name, preset := range f.Presets {
		out[name] = preset.Expression
	}
	return out
}
