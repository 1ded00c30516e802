package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// maxProductsCap is the hard upper bound on products per analysis
const maxProductsCap = 30

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Keepa    KeepaConfig
	OptiSage OptiSageConfig
	Analysis AnalysisConfig
	Log      LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// KeepaConfig holds catalog provider configuration
type KeepaConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// OptiSageConfig holds eligibility provider configuration
type OptiSageConfig struct {
	Token   string `mapstructure:"token"`
	BaseURL string `mapstructure:"base_url"`
}

// AnalysisConfig holds pipeline tuning knobs
type AnalysisConfig struct {
	MaxProducts       int `mapstructure:"max_products"`
	CategoryCacheSize int `mapstructure:"category_cache_size"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/gocompare/")

	v.SetEnvPrefix("GOCOMPARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Empty defaults register the credential keys so env vars bind on Unmarshal
	v.SetDefault("keepa.api_key", "")
	v.SetDefault("keepa.base_url", "https://api.keepa.com")
	v.SetDefault("optisage.token", "")
	v.SetDefault("optisage.base_url", "https://api-staging.optisage.ai")

	v.SetDefault("analysis.max_products", maxProductsCap)
	v.SetDefault("analysis.category_cache_size", 256)

	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Keepa.APIKey == "" {
		return fmt.Errorf("Keepa API key is required (set GOCOMPARE_KEEPA_API_KEY)")
	}

	if config.OptiSage.Token == "" {
		return fmt.Errorf("OptiSage token is required (set GOCOMPARE_OPTISAGE_TOKEN)")
	}

	if config.Analysis.MaxProducts < 1 || config.Analysis.MaxProducts > maxProductsCap {
		return fmt.Errorf("analysis.max_products must be between 1 and %d, got: %d",
			maxProductsCap, config.Analysis.MaxProducts)
	}

	return nil
}
