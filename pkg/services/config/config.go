package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const DefaultProvider = "plausible"

// Config carries the credentials and endpoint settings the metrics source
// needs. It is constructed once at startup and passed in explicitly.
type Config struct {
	Provider   string `mapstructure:"provider"`
	APIKey     string `mapstructure:"api_key" validate:"required"`
	BaseURL    string `mapstructure:"base_url" validate:"required,url"`
	APIVersion string `mapstructure:"api_version" validate:"required"`
	SiteID     string `mapstructure:"site_id" validate:"required"`
	Period     string `mapstructure:"period" validate:"required"`
}

// Load reads the YAML configuration file at the given path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("missing required configuration values: %w", err)
	}

	return &cfg, nil
}
