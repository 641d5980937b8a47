package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the daemon.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Location  LocationConfig  `yaml:"location"`
	Provider  ProviderConfig  `yaml:"provider"`
	Geocode   GeocodeConfig   `yaml:"geocode"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	API       APIConfig       `yaml:"api"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Reminders RemindersConfig `yaml:"reminders"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig contains deployment-specific information.
type SiteConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// LocationConfig contains the configured geographic coordinates.
// When Set is false the resolver falls back to the built-in default.
type LocationConfig struct {
	Set       bool    `yaml:"set"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// ProviderConfig contains prayer-time API settings.
type ProviderConfig struct {
	BaseURL string `yaml:"base_url"`
	Method  int    `yaml:"method"`
	Timeout int    `yaml:"timeout"` // seconds
}

// GeocodeConfig contains reverse-geocoding settings.
type GeocodeConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Locale  string `yaml:"locale"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	TLS      TLSConfig        `yaml:"tls"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// APITimeoutConfig contains HTTP timeout settings (seconds).
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// RemindersConfig contains reminder delivery settings.
type RemindersConfig struct {
	// DisplaySeconds is how long a reminder stays visible before
	// auto-dismiss.
	DisplaySeconds int `yaml:"display_seconds"`

	// TickSeconds is the notifier polling interval. The default of 60
	// matches minute-granularity schedules; shorten only in testing.
	TickSeconds int `yaml:"tick_seconds"`

	// RefreshSeconds is the engine's schedule refresh interval.
	RefreshSeconds int `yaml:"refresh_seconds"`

	// HistoryLimit caps the reminder history listing.
	HistoryLimit int `yaml:"history_limit"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: ADHAN_SECTION_KEY
// For example: ADHAN_DATABASE_PATH, ADHAN_MQTT_HOST
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ID:       "adhan-001",
			Name:     "Adhan Core",
			Timezone: "Asia/Jakarta",
		},
		Provider: ProviderConfig{
			BaseURL: "https://api.aladhan.com",
			Method:  11,
			Timeout: 10,
		},
		Geocode: GeocodeConfig{
			Enabled: true,
			BaseURL: "https://api.bigdatacloud.net",
			Locale:  "id",
		},
		Database: DatabaseConfig{
			Path:        "./data/adhan.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Enabled: true,
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "adhan-core",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Reminders: RemindersConfig{
			DisplaySeconds: 30,
			TickSeconds:    60,
			RefreshSeconds: 60,
			HistoryLimit:   50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: ADHAN_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("ADHAN_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Location
	if v := os.Getenv("ADHAN_LOCATION_LATITUDE"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Latitude = lat
			cfg.Location.Set = true
		}
	}
	if v := os.Getenv("ADHAN_LOCATION_LONGITUDE"); v != "" {
		if lon, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Longitude = lon
			cfg.Location.Set = true
		}
	}

	// Provider
	if v := os.Getenv("ADHAN_PROVIDER_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}

	// MQTT
	if v := os.Getenv("ADHAN_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("ADHAN_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("ADHAN_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// API
	if v := os.Getenv("ADHAN_API_HOST"); v != "" {
		cfg.API.Host = v
	}

	// InfluxDB
	if v := os.Getenv("ADHAN_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Site.ID == "" {
		errs = append(errs, "site.id is required")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if c.Provider.BaseURL == "" {
		errs = append(errs, "provider.base_url is required")
	}
	if c.Provider.Method < 0 {
		errs = append(errs, "provider.method must not be negative")
	}

	if c.Location.Set {
		if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
			errs = append(errs, "location.latitude must be between -90 and 90")
		}
		if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
			errs = append(errs, "location.longitude must be between -180 and 180")
		}
	}

	if c.Reminders.DisplaySeconds < 1 {
		errs = append(errs, "reminders.display_seconds must be at least 1")
	}
	if c.Reminders.TickSeconds < 1 {
		errs = append(errs, "reminders.tick_seconds must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}

// ProviderTimeout returns the provider request timeout as a Duration.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.Timeout) * time.Second
}

// DisplayDuration returns how long reminders stay visible.
func (c *Config) DisplayDuration() time.Duration {
	return time.Duration(c.Reminders.DisplaySeconds) * time.Second
}

// TickInterval returns the notifier polling interval.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Reminders.TickSeconds) * time.Second
}

// RefreshInterval returns the engine's schedule refresh interval.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Reminders.RefreshSeconds) * time.Second
}
