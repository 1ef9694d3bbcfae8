package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the main configuration structure
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Remote  RemoteConfig  `yaml:"remote"`
	API     APIConfig     `yaml:"api"`
	Sync    SyncConfig    `yaml:"sync"`
	Suggest SuggestConfig `yaml:"suggest"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig contains local snapshot storage settings
type StorageConfig struct {
	Path string `yaml:"path"` // BoltDB file path
}

// RemoteConfig contains settings for the upstream campaign service
type RemoteConfig struct {
	BaseURL string        `yaml:"base_url"` // empty disables remote sync
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"` // per-request bound
}

// APIConfig contains HTTP API settings
type APIConfig struct {
	ListenAddr   string        `yaml:"listen_addr"`
	APIKey       string        `yaml:"api_key"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// SyncConfig selects the remote mirroring policy
type SyncConfig struct {
	Strategy      string        `yaml:"strategy"`       // best_effort or queued_retry
	RetryInterval time.Duration `yaml:"retry_interval"` // queued_retry only
	MaxRetries    int           `yaml:"max_retries"`    // queued_retry only
}

// SuggestConfig contains suggestion engine settings
type SuggestConfig struct {
	Latency time.Duration `yaml:"latency"` // simulated inference delay
}

// MetricsConfig contains Prometheus metrics settings
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // served on the API listener
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with all defaults applied, used when no
// config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for configuration
func (c *Config) setDefaults() {
	if c.Storage.Path == "" {
		c.Storage.Path = "/var/lib/studio/campaigns.db"
	}

	if c.Remote.Timeout == 0 {
		c.Remote.Timeout = 5 * time.Second
	}

	if c.API.ListenAddr == "" {
		c.API.ListenAddr = ":8000"
	}
	if c.API.ReadTimeout == 0 {
		c.API.ReadTimeout = 30 * time.Second
	}
	if c.API.WriteTimeout == 0 {
		c.API.WriteTimeout = 30 * time.Second
	}
	if c.API.IdleTimeout == 0 {
		c.API.IdleTimeout = 60 * time.Second
	}

	if c.Sync.Strategy == "" {
		c.Sync.Strategy = "best_effort"
	}
	if c.Sync.RetryInterval == 0 {
		c.Sync.RetryInterval = 30 * time.Second
	}
	if c.Sync.MaxRetries == 0 {
		c.Sync.MaxRetries = 3
	}

	if c.Suggest.Latency == 0 {
		c.Suggest.Latency = 1200 * time.Millisecond
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}

	validStrategies := map[string]bool{"best_effort": true, "queued_retry": true}
	if !validStrategies[c.Sync.Strategy] {
		return fmt.Errorf("invalid sync.strategy: %s (must be best_effort or queued_retry)", c.Sync.Strategy)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging.level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging.format: %s (must be json or text)", c.Logging.Format)
	}

	return nil
}
