package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"

	"todo/internal/store"
)

var envTemplateRe = regexp.MustCompile(`\$\{\{\s*\.Env\.(\w+)\s*\}\}`)

// Load resolves the config directory and builds the Config from config.jsonc,
// .env and the environment. Missing files are not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	dotenv, err := readDotenv(cfg.EnvPath())
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if err := loadFile(cfg, cfg.ConfigPath(), lookup); err != nil {
		return nil, err
	}
	applyEnv(cfg, lookup)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile reads a JSONC file, expands ${{ .Env.VAR }} templates and
// unmarshals it over cfg.
func loadFile(cfg *Config, path string, lookup func(string) (string, bool)) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	expanded := expandEnvTemplates(string(data), lookup)

	std, err := hujson.Standardize([]byte(expanded))
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := json.Unmarshal(std, cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// expandEnvTemplates replaces ${{ .Env.VAR }} with the variable's value.
func expandEnvTemplates(s string, lookup func(string) (string, bool)) string {
	return envTemplateRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := envTemplateRe.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		v, _ := lookup(parts[1])
		return v
	})
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvQuoteAPIKey); ok && v != "" {
		cfg.Quote.APIKey = v
	}
	if v, ok := lookup(EnvQuoteAPIHost); ok && v != "" {
		cfg.Quote.Host = v
	}
	if v, ok := lookup(EnvQuoteURL); ok && v != "" {
		cfg.Quote.URL = v
	}
	if v, ok := lookup(EnvStoreBackend); ok && v != "" {
		cfg.Store.Backend = v
	}
}

func validate(cfg *Config) error {
	switch cfg.Store.Backend {
	case store.BackendSQLite, store.BackendFile, store.BackendMemory:
	default:
		return fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
	switch cfg.Quote.Seed {
	case SeedFirstLaunch, SeedAlways, SeedNever:
	default:
		return fmt.Errorf("unknown quote seed policy: %q", cfg.Quote.Seed)
	}
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return env, nil
}
