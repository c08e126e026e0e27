package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of every environment override, e.g. STARTPAGE_SUGGEST_ENDPOINT
const EnvPrefix = "STARTPAGE"

const (
	DefaultHistoryCap      = 500
	DefaultDebounce        = 200 * time.Millisecond
	DefaultMaxSuggestions  = 8
	DefaultProviderURL     = "https://suggestqueries.google.com/complete/search?client=firefox&q="
	DefaultSuggestTimeout  = 3 * time.Second
	DefaultServerAddr      = ":8787"
	DefaultRateLimitPerSec = 20
)

// Config represents the application configuration
type Config struct {
	Version       int           `toml:"version" ignored:"true"`
	DefaultEngine string        `toml:"default_engine" envconfig:"DEFAULT_ENGINE"`
	DataDir       string        `toml:"data_dir" envconfig:"DATA_DIR"`
	History       HistoryConfig `toml:"history" envconfig:"HISTORY"`
	Suggest       SuggestConfig `toml:"suggest" envconfig:"SUGGEST"`
	Server        ServerConfig  `toml:"server" envconfig:"SERVER"`
	Log           LogConfig     `toml:"log" envconfig:"LOG"`
}

// HistoryConfig bounds the persisted search history
type HistoryConfig struct {
	Cap int `toml:"cap" envconfig:"CAP"`
}

// SuggestConfig controls autocomplete fetching
type SuggestConfig struct {
	// Endpoint is the base URL of a running suggestion proxy. Empty means
	// the provider is called in-process.
	Endpoint    string   `toml:"endpoint" envconfig:"ENDPOINT"`
	ProviderURL string   `toml:"provider_url" envconfig:"PROVIDER_URL"`
	Debounce    Duration `toml:"debounce" envconfig:"DEBOUNCE"`
	Timeout     Duration `toml:"timeout" envconfig:"TIMEOUT"`
	MaxItems    int      `toml:"max_items" envconfig:"MAX_ITEMS"`
}

// ServerConfig configures the suggestion proxy
type ServerConfig struct {
	Addr            string   `toml:"addr" envconfig:"ADDR"`
	RateLimitPerSec int      `toml:"rate_limit_per_sec" envconfig:"RATE_LIMIT_PER_SEC"`
	AllowedOrigins  []string `toml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

// LogConfig configures zap
type LogConfig struct {
	Level string `toml:"level" envconfig:"LEVEL"`
	File  string `toml:"file" envconfig:"FILE"`
}

// Duration is a time.Duration written as a string ("200ms") in TOML and env
type Duration time.Duration

func (d Duration) D() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(v)
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted at the user config dir
func NewConfigService() ConfigService {
	return &configService{filePath: filepath.Join(DefaultDir(), "config.toml")}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultDir returns <UserConfigDir>/startpage
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "startpage")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the config file, creating it with defaults when it does not
// exist, then applies environment overrides.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			return cfg, err
		}
	} else if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}

func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays STARTPAGE_* environment variables onto cfg. Unset
// variables leave the existing values alone.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("failed to apply environment: %w", err)
	}
	return nil
}

// Normalize replaces out-of-range values with defaults
func (c *Config) Normalize() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDir()
	}
	if c.History.Cap <= 0 {
		c.History.Cap = DefaultHistoryCap
	}
	if c.Suggest.Debounce <= 0 {
		c.Suggest.Debounce = Duration(DefaultDebounce)
	}
	if c.Suggest.Timeout <= 0 {
		c.Suggest.Timeout = Duration(DefaultSuggestTimeout)
	}
	if c.Suggest.MaxItems <= 0 || c.Suggest.MaxItems > DefaultMaxSuggestions {
		c.Suggest.MaxItems = DefaultMaxSuggestions
	}
	if c.Suggest.ProviderURL == "" {
		c.Suggest.ProviderURL = DefaultProviderURL
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.RateLimitPerSec <= 0 {
		c.Server.RateLimitPerSec = DefaultRateLimitPerSec
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:       1,
		DefaultEngine: "google",
		DataDir:       DefaultDir(),
		History:       HistoryConfig{Cap: DefaultHistoryCap},
		Suggest: SuggestConfig{
			ProviderURL: DefaultProviderURL,
			Debounce:    Duration(DefaultDebounce),
			Timeout:     Duration(DefaultSuggestTimeout),
			MaxItems:    DefaultMaxSuggestions,
		},
		Server: ServerConfig{
			Addr:            DefaultServerAddr,
			RateLimitPerSec: DefaultRateLimitPerSec,
			AllowedOrigins:  []string{"*"},
		},
		Log: LogConfig{
			Level: "info",
			File:  "startpage.log",
		},
	}
}
