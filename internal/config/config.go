// Package config resolves the configuration directory and loads config.jsonc,
// the .env credentials file and environment overrides.
package config

import (
	"os"
	"path/filepath"
	"time"

	"todo/internal/logging"
	"todo/internal/quote"
	"todo/internal/store"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the JSONC settings filename.
	ConfigFile = "config.jsonc"

	// EnvFile holds the quote service credentials.
	EnvFile = ".env"

	// DatabaseFile is the default sqlite store filename.
	DatabaseFile = "todo.db"

	// TasksDir is the default directory for the file store.
	TasksDir = "tasks"
)

// Seed policies for the startup quote.
const (
	SeedFirstLaunch = "first-launch"
	SeedAlways      = "always"
	SeedNever       = "never"
)

// Environment variables that override config.jsonc.
const (
	EnvQuoteAPIKey  = "TODO_QUOTE_API_KEY"
	EnvQuoteAPIHost = "TODO_QUOTE_API_HOST"
	EnvQuoteURL     = "TODO_QUOTE_URL"
	EnvStoreBackend = "TODO_STORE_BACKEND"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `json:"-"`

	// Debug enables debug logging.
	Debug bool `json:"-"`

	// Quiet suppresses informational output.
	Quiet bool `json:"-"`

	LogLevel string       `json:"log_level,omitempty"`
	Store    StoreConfig  `json:"store"`
	Quote    QuoteConfig  `json:"quote"`
	Server   ServerConfig `json:"server"`
}

// StoreConfig selects where the task list is kept.
type StoreConfig struct {
	Backend string `json:"backend,omitempty"` // sqlite, file or memory
	Path    string `json:"path,omitempty"`    // defaults under Dir
	Key     string `json:"key,omitempty"`
	Strict  bool   `json:"strict,omitempty"` // surface save failures
}

// QuoteConfig configures the quote service and seeding.
type QuoteConfig struct {
	URL     string   `json:"url,omitempty"`
	APIKey  string   `json:"api_key,omitempty"` // literal or ${{ .Env.VAR }} template
	Host    string   `json:"api_host,omitempty"`
	Timeout Duration `json:"timeout,omitempty"`
	Seed    string   `json:"seed,omitempty"`
}

// ServerConfig configures `todo serve`.
type ServerConfig struct {
	Addr string `json:"addr,omitempty"`
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// New creates a Config with defaults for the default or specified directory.
// It reads no files; use Load for that.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	applyDefaults(cfg)
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.jsonc.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnvPath returns the path to the credentials .env file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// StorePath returns the location handed to the store backend.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	switch c.Store.Backend {
	case store.BackendFile:
		return filepath.Join(c.Dir, TasksDir)
	case store.BackendMemory:
		return ""
	default:
		return filepath.Join(c.Dir, DatabaseFile)
	}
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasQuoteKey reports whether a quote service key is configured.
func (c *Config) HasQuoteKey() bool {
	return c.Quote.APIKey != ""
}

// QuoteClientConfig converts the quote settings for quote.NewClient.
func (c *Config) QuoteClientConfig() quote.Config {
	return quote.Config{
		URL:     c.Quote.URL,
		APIKey:  c.Quote.APIKey,
		Host:    c.Quote.Host,
		Timeout: c.Quote.Timeout.Duration(),
	}
}

// EffectiveLogLevel applies the --debug and --quiet flags to LogLevel.
func (c *Config) EffectiveLogLevel() string {
	switch {
	case c.Debug:
		return logging.LevelDebug
	case c.Quiet:
		return logging.LevelError
	default:
		return c.LogLevel
	}
}

// applyDefaults fills in zero-value fields.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = logging.LevelWarn
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = store.BackendSQLite
	}
	if cfg.Store.Key == "" {
		cfg.Store.Key = store.DefaultKey
	}
	if cfg.Quote.URL == "" {
		cfg.Quote.URL = quote.DefaultURL
	}
	if cfg.Quote.Host == "" {
		cfg.Quote.Host = quote.DefaultHost
	}
	if cfg.Quote.Timeout <= 0 {
		cfg.Quote.Timeout = Duration(quote.DefaultTimeout)
	}
	if cfg.Quote.Seed == "" {
		cfg.Quote.Seed = SeedFirstLaunch
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8080"
	}
}
