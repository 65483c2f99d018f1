package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Strategy selects the submission pipeline. It is a deployment-level
// setting, never chosen per call.
type Strategy string

const (
	// StrategyProbe runs the single-source probe-then-delay-then-fetch pipeline
	StrategyProbe Strategy = "probe"
	// StrategyDual runs the parallel dual-source pipeline with an
	// all-or-nothing join
	StrategyDual Strategy = "dual"
)

// Config represents the application configuration
type Config struct {
	Version          int      `toml:"version"`
	BaseURL          string   `toml:"base_url"`
	RequestTimeoutMs int      `toml:"request_timeout_ms"`
	Strategy         Strategy `toml:"strategy"`
	PerPage          int      `toml:"per_page"`
	DebounceMs       int      `toml:"debounce_ms"`
	MinDelayMs       int      `toml:"min_delay_ms"`
	MaxDelayMs       int      `toml:"max_delay_ms"`
	HistoryDB        string   `toml:"history_db"`
}

// RequestTimeout returns the configured HTTP timeout as a duration
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// Debounce returns the suggestion settle interval as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Version:          1,
		BaseURL:          "http://127.0.0.1:8000",
		RequestTimeoutMs: 5000,
		Strategy:         StrategyProbe,
		PerPage:          10,
		DebounceMs:       150,
		MinDelayMs:       2000,
		MaxDelayMs:       4000,
		HistoryDB:        filepath.Join(defaultConfigDir(), "history.db"),
	}
}

// Normalize fills in zero values with defaults and clamps nonsense
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.RequestTimeoutMs <= 0 {
		c.RequestTimeoutMs = def.RequestTimeoutMs
	}
	if c.Strategy != StrategyProbe && c.Strategy != StrategyDual {
		c.Strategy = def.Strategy
	}
	if c.PerPage <= 0 {
		c.PerPage = def.PerPage
	}
	if c.DebounceMs <= 0 {
		c.DebounceMs = def.DebounceMs
	}
	if c.MinDelayMs <= 0 {
		c.MinDelayMs = def.MinDelayMs
	}
	if c.MaxDelayMs <= c.MinDelayMs {
		c.MaxDelayMs = c.MinDelayMs + 1
	}
	if c.HistoryDB == "" {
		c.HistoryDB = def.HistoryDB
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a new config service rooted at the user
// config directory
func NewConfigService() ConfigService {
	dir := defaultConfigDir()
	os.MkdirAll(dir, 0755)

	return &configService{
		filePath: filepath.Join(dir, "config.toml"),
	}
}

// NewConfigServiceAt creates a config service using an explicit file path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads the configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Normalize()
	return &cfg, nil
}

// SaveToPath saves the configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func defaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "sophon")
}
