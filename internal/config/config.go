// Package config provides configuration management for the Jackpot Builder application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Jackpot     JackpotConfig     `mapstructure:"jackpot" validate:"required"`
	DataSources DataSourcesConfig `mapstructure:"data_sources" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
	Features    FeaturesConfig    `mapstructure:"features"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// ServerConfig represents the HTTP API and health server configuration
type ServerConfig struct {
	Port             int `mapstructure:"port" validate:"required,min=1,max=65535"`
	HealthPort       int `mapstructure:"health_port" validate:"required,min=1,max=65535"`
	ReadTimeoutSecs  int `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSecs int `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
}

// JackpotConfig represents slip generation defaults
type JackpotConfig struct {
	DefaultStrategy  string  `mapstructure:"default_strategy" validate:"required,strategy"`
	DefaultRiskLevel int     `mapstructure:"default_risk_level" validate:"required,min=1,max=10"`
	CacheTTLSeconds  int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize     int     `mapstructure:"cache_max_size" validate:"required,gt=0"`
	DefaultStake     float64 `mapstructure:"default_stake" validate:"gte=0"`
}

// DataSourcesConfig represents fixture provider configuration
type DataSourcesConfig struct {
	Providers []ProviderConfig `mapstructure:"providers" validate:"required,min=1,dive"`
	Schedule  ScheduleConfig   `mapstructure:"schedule" validate:"required"`
}

// ProviderConfig represents a single fixture provider. Providers are tried
// in the order listed; the synthetic provider never fails and should come
// last.
type ProviderConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey  string `mapstructure:"api_key"`
}

// ScheduleConfig represents fixture refresh scheduling
type ScheduleConfig struct {
	FixtureSync        string `mapstructure:"fixture_sync" validate:"required"`
	SyncTimeoutSeconds int    `mapstructure:"sync_timeout_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration. The
// Prometheus handler is mounted on the health server's port at Path.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	WildcardsEnabled   bool `mapstructure:"wildcards_enabled"`
	CSVExportEnabled   bool `mapstructure:"csv_export_enabled"`
	FixtureSyncEnabled bool `mapstructure:"fixture_sync_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
