package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the Home Assistant search
// sidecar. All configuration is loaded from YAML and can be overridden by
// environment variables.
type Config struct {
	HomeAssistant HomeAssistantConfig `yaml:"homeassistant"`
	API           APIConfig           `yaml:"api"`
	Search        SearchConfig        `yaml:"search"`
	Statestream   StatestreamConfig   `yaml:"statestream"`
	InfluxDB      InfluxDBConfig      `yaml:"influxdb"`
	Database      DatabaseConfig      `yaml:"database"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// HomeAssistantConfig contains connection settings for the Home Assistant
// backend (REST API and WebSocket API share the same base URL and token).
type HomeAssistantConfig struct {
	// URL is the base URL of the Home Assistant instance,
	// e.g. "http://homeassistant.local:8123".
	URL string `yaml:"url"`

	// Token is a long-lived access token. Tokens are JWTs issued by Home
	// Assistant; the sidecar decodes (but never validates) the claims to
	// warn about expiry at startup.
	Token string `yaml:"token"`

	// RequestTimeout is the per-request timeout in seconds for REST calls.
	RequestTimeout int `yaml:"request_timeout"`

	// WebSocketTimeout is the timeout in seconds for a single WebSocket
	// command round-trip (registry list calls).
	WebSocketTimeout int `yaml:"websocket_timeout"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
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

// SearchConfig contains tuning for the search engine.
type SearchConfig struct {
	// FuzzyThreshold is the minimum score for a fuzzy match to be kept.
	FuzzyThreshold int `yaml:"fuzzy_threshold"`

	// DefaultLimit is the page size used when a request omits limit.
	DefaultLimit int `yaml:"default_limit"`

	// MaxLimit caps the page size a client may request.
	MaxLimit int `yaml:"max_limit"`
}

// StatestreamConfig contains settings for the optional MQTT statestream
// snapshot source. When enabled, entity state is mirrored from the broker
// that Home Assistant's mqtt_statestream integration publishes to, instead
// of polling the REST API per search.
type StatestreamConfig struct {
	Enabled   bool                 `yaml:"enabled"`
	Broker    StatestreamBroker    `yaml:"broker"`
	Auth      StatestreamAuth      `yaml:"auth"`
	BaseTopic string               `yaml:"base_topic"`
	QoS       int                  `yaml:"qos"`
	Reconnect StatestreamReconnect `yaml:"reconnect"`
}

// StatestreamBroker contains MQTT broker connection details.
type StatestreamBroker struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// StatestreamAuth contains MQTT authentication credentials.
type StatestreamAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// StatestreamReconnect contains MQTT reconnection settings in seconds.
type StatestreamReconnect struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains settings for the optional search-metrics writer.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// DatabaseConfig contains SQLite settings for the usage log.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable
// overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: HAMCP_SECTION_KEY
// For example: HAMCP_HOMEASSISTANT_TOKEN, HAMCP_API_PORT
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
		HomeAssistant: HomeAssistantConfig{
			URL:              "http://homeassistant.local:8123",
			RequestTimeout:   10,
			WebSocketTimeout: 10,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8090,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Search: SearchConfig{
			FuzzyThreshold: 60,
			DefaultLimit:   20,
			MaxLimit:       200,
		},
		Statestream: StatestreamConfig{
			Broker: StatestreamBroker{
				Host:     "localhost",
				Port:     1883,
				ClientID: "hamcp",
			},
			BaseTopic: "homeassistant/statestream",
			QoS:       1,
			Reconnect: StatestreamReconnect{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/hamcp.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables follow the pattern: HAMCP_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Home Assistant
	if v := os.Getenv("HAMCP_HOMEASSISTANT_URL"); v != "" {
		cfg.HomeAssistant.URL = v
	}
	if v := os.Getenv("HAMCP_HOMEASSISTANT_TOKEN"); v != "" {
		cfg.HomeAssistant.Token = v
	}

	// API
	if v := os.Getenv("HAMCP_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("HAMCP_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// Search
	if v := os.Getenv("HAMCP_SEARCH_FUZZY_THRESHOLD"); v != "" {
		if threshold, err := strconv.Atoi(v); err == nil {
			cfg.Search.FuzzyThreshold = threshold
		}
	}

	// Statestream
	if v := os.Getenv("HAMCP_STATESTREAM_HOST"); v != "" {
		cfg.Statestream.Broker.Host = v
	}
	if v := os.Getenv("HAMCP_STATESTREAM_USERNAME"); v != "" {
		cfg.Statestream.Auth.Username = v
	}
	if v := os.Getenv("HAMCP_STATESTREAM_PASSWORD"); v != "" {
		cfg.Statestream.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("HAMCP_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Database
	if v := os.Getenv("HAMCP_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Home Assistant validation
	if c.HomeAssistant.URL == "" {
		errs = append(errs, "homeassistant.url is required")
	} else if _, err := url.Parse(c.HomeAssistant.URL); err != nil {
		errs = append(errs, fmt.Sprintf("homeassistant.url is invalid: %v", err))
	}
	if c.HomeAssistant.Token == "" {
		errs = append(errs, "homeassistant.token is required (set HAMCP_HOMEASSISTANT_TOKEN environment variable)")
	}

	// API validation
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// Search validation
	if c.Search.FuzzyThreshold < 0 || c.Search.FuzzyThreshold > 100 {
		errs = append(errs, "search.fuzzy_threshold must be between 0 and 100")
	}
	if c.Search.DefaultLimit < 1 {
		errs = append(errs, "search.default_limit must be at least 1")
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		errs = append(errs, "search.max_limit must be at least search.default_limit")
	}

	// Statestream validation
	if c.Statestream.Enabled {
		if c.Statestream.QoS < 0 || c.Statestream.QoS > 2 {
			errs = append(errs, "statestream.qos must be 0, 1, or 2")
		}
		if c.Statestream.BaseTopic == "" {
			errs = append(errs, "statestream.base_topic is required when statestream is enabled")
		}
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetRequestTimeout returns the Home Assistant REST timeout as a Duration.
func (c *Config) GetRequestTimeout() time.Duration {
	return time.Duration(c.HomeAssistant.RequestTimeout) * time.Second
}

// GetWebSocketTimeout returns the WebSocket command timeout as a Duration.
func (c *Config) GetWebSocketTimeout() time.Duration {
	return time.Duration(c.HomeAssistant.WebSocketTimeout) * time.Second
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
