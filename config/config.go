package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	OpenAI  OpenAIConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig lists the JSON data sources the catalog store loads at
// startup. Missing or malformed files are skipped with a warning, so the
// list may safely name optional extension files.
type CatalogConfig struct {
	ProductFiles []string `mapstructure:"product_files"`
	SupplierFile string   `mapstructure:"supplier_file"`
}

// OpenAIConfig holds configuration for the optional AI-backed query parser.
// An empty API key disables the AI path entirely; the rule-based parser
// handles every query in that case.
type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/partsflow/")

	// Environment variable settings. The replacer maps nested keys to
	// flat env names, e.g. openai.api_key to PARTSFLOW_OPENAI_API_KEY.
	v.SetEnvPrefix("PARTSFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "4000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults mirror the standard data layout: a required base
	// file plus optional extension files
	v.SetDefault("catalog.product_files", []string{
		"data/products.json",
		"data/products_extended.json",
		"data/products_additional.json",
		"data/products_final.json",
	})
	v.SetDefault("catalog.supplier_file", "data/suppliers.json")

	// OpenAI defaults. The empty api_key default registers the key with
	// viper so PARTSFLOW_OPENAI_API_KEY is picked up during Unmarshal;
	// an empty key disables the AI parser.
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4")
	v.SetDefault("openai.timeout", "10s")
}

// validate validates the configuration
func validate(config *Config) error {
	if len(config.Catalog.ProductFiles) == 0 {
		return fmt.Errorf("at least one product data file must be configured")
	}

	if config.Catalog.SupplierFile == "" {
		return fmt.Errorf("supplier data file must be configured")
	}

	if config.OpenAI.Timeout <= 0 {
		return fmt.Errorf("OpenAI timeout must be positive, got: %s", config.OpenAI.Timeout)
	}

	return nil
}
