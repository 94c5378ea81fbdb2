package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AI2HU/gdc/internal/models"
)

// EnvConfigPath overrides the config file location
const EnvConfigPath = "GDC_CONFIG_PATH"

// Config represents the application configuration
type Config struct {
	Site         SiteConfig      `yaml:"site"`
	CatalogPath  string          `yaml:"catalog_path,omitempty"` // empty uses the embedded season-1 catalog
	Analytics    AnalyticsConfig `yaml:"analytics"`
	CounterStore DatabaseConfig  `yaml:"counter_store"`
	API          APIConfig       `yaml:"api"`
	Exports      ExportsConfig   `yaml:"exports"`
	LogLevel     string          `yaml:"log_level"`
}

// SiteConfig identifies the site and its view counter namespace
type SiteConfig struct {
	Name      string `yaml:"name"`
	Namespace string `yaml:"namespace"`
}

// AnalyticsConfig selects the month the daily series covers
type AnalyticsConfig struct {
	Year  int `yaml:"year"`
	Month int `yaml:"month"`
}

// DatabaseConfig represents counter store configuration
type DatabaseConfig struct {
	Provider string            `yaml:"provider"` // memory, file, sqlite, postgres, mongodb, redis
	URI      string            `yaml:"uri"`
	Database string            `yaml:"database"`
	Options  map[string]string `yaml:"options,omitempty"`
}

// APIConfig configures the REST server
type APIConfig struct {
	Host       string  `yaml:"host"`
	Port       int     `yaml:"port"`
	CORSOrigin string  `yaml:"cors_origin"`
	RateLimit  float64 `yaml:"rate_limit"` // view records per second per client
	RateBurst  int     `yaml:"rate_burst"`
}

// ExportsConfig configures scheduled dashboard exports
type ExportsConfig struct {
	Directory string `yaml:"directory"`
	Cron      string `yaml:"cron"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Name:      "Gamer Didik Channel",
			Namespace: "gdc",
		},
		Analytics: AnalyticsConfig{
			Year:  2025,
			Month: 12,
		},
		CounterStore: DatabaseConfig{
			Provider: "memory",
		},
		API: APIConfig{
			Host:       "0.0.0.0",
			Port:       8989,
			CORSOrigin: "*",
			RateLimit:  1,
			RateBurst:  5,
		},
		Exports: ExportsConfig{
			Directory: "exports",
			Cron:      "@hourly",
		},
		LogLevel: "info",
	}
}

// Load loads configuration from file. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// LoadOrDefault loads the file when it exists and returns the defaults otherwise
func LoadOrDefault(path string) (*Config, error) {
	if !Exists(path) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Environment overrides applied by ApplyEnv
const (
	EnvLogLevel      = "GDC_LOG_LEVEL"
	EnvNamespace     = "GDC_NAMESPACE"
	EnvStoreProvider = "GDC_STORE_PROVIDER"
	EnvStoreURI      = "GDC_STORE_URI"
	EnvCatalogPath   = "GDC_CATALOG_PATH"
)

// ApplyEnv overrides file values with the GDC_* environment variables that are set
func (c *Config) ApplyEnv() {
	overrides := map[string]*string{
		EnvLogLevel:      &c.LogLevel,
		EnvNamespace:     &c.Site.Namespace,
		EnvStoreProvider: &c.CounterStore.Provider,
		EnvStoreURI:      &c.CounterStore.URI,
		EnvCatalogPath:   &c.CatalogPath,
	}
	for env, field := range overrides {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*field = v
		}
	}
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	if c.Analytics.Month < 1 || c.Analytics.Month > 12 {
		return fmt.Errorf("analytics.month must be between 1 and 12, got %d", c.Analytics.Month)
	}
	if c.Analytics.Year < 1 {
		return fmt.Errorf("analytics.year must be positive, got %d", c.Analytics.Year)
	}
	if strings.TrimSpace(c.Site.Namespace) == "" {
		return fmt.Errorf("site.namespace must not be empty")
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port out of range: %d", c.API.Port)
	}
	return nil
}

// StoreConfig converts the counter store section for db.New
func (c *Config) StoreConfig() models.Config {
	return models.Config{
		Provider: c.CounterStore.Provider,
		URI:      c.CounterStore.URI,
		Database: c.CounterStore.Database,
		Options:  c.CounterStore.Options,
	}
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the config file path, honouring GDC_CONFIG_PATH
func GetConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".gdc", "config.yaml")
	}
	return filepath.Join(home, ".gdc", "config.yaml")
}

// Exists checks if config file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
