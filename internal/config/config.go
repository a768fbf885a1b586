package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
// Note that GeminiAPIKey is deliberately not validated here: a missing key
// simply makes the first generation call fail, and the planner degrades to
// its fallback plan. The server must start either way.
type Config struct {
	Port          string `mapstructure:"PORT"`
	GinMode       string `mapstructure:"GIN_MODE"`
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string `mapstructure:"GEMINI_MODEL"`
	GeminiBaseURL string `mapstructure:"GEMINI_BASE_URL"`
	ClientURL     string `mapstructure:"CLIENT_URL"`
	MinLoadingMS  int    `mapstructure:"MIN_LOADING_MS"`
	SessionTTLMin int    `mapstructure:"SESSION_TTL_MIN"`
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_BASE_URL", "")
	viper.SetDefault("MIN_LOADING_MS", 3000)
	viper.SetDefault("SESSION_TTL_MIN", 30)

	// Bind environment variables
	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("GEMINI_API_KEY")
	viper.BindEnv("GEMINI_MODEL")
	viper.BindEnv("GEMINI_BASE_URL")
	viper.BindEnv("CLIENT_URL")
	viper.BindEnv("MIN_LOADING_MS")
	viper.BindEnv("SESSION_TTL_MIN")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if cfg.MinLoadingMS < 0 {
		return nil, errors.New("MIN_LOADING_MS must not be negative")
	}
	if cfg.SessionTTLMin <= 0 {
		return nil, errors.New("SESSION_TTL_MIN must be positive")
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It panics if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}

// MinLoading returns MIN_LOADING_MS as a duration.
func (c *Config) MinLoading() time.Duration {
	return time.Duration(c.MinLoadingMS) * time.Millisecond
}

// SessionTTL returns SESSION_TTL_MIN as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}
