package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// SaveCredentials writes the quote service key and host into the .env file,
// keeping any other entries. The file is written with mode 0600.
func (c *Config) SaveCredentials(apiKey, host string) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	env, err := readDotenv(c.EnvPath())
	if err != nil {
		return err
	}
	env[EnvQuoteAPIKey] = apiKey
	if host != "" {
		env[EnvQuoteAPIHost] = host
	}
	return writeDotenv(c.EnvPath(), env)
}

// RemoveCredentials deletes the quote service entries from the .env file.
// The file is removed when nothing else is left in it. It reports whether
// anything was removed.
func (c *Config) RemoveCredentials() (bool, error) {
	env, err := readDotenv(c.EnvPath())
	if err != nil {
		return false, err
	}

	_, hadKey := env[EnvQuoteAPIKey]
	_, hadHost := env[EnvQuoteAPIHost]
	if !hadKey && !hadHost {
		return false, nil
	}
	delete(env, EnvQuoteAPIKey)
	delete(env, EnvQuoteAPIHost)

	if len(env) == 0 {
		if err := os.Remove(c.EnvPath()); err != nil && !os.IsNotExist(err) {
			return false, fmt.Errorf("remove %s: %w", c.EnvPath(), err)
		}
		return true, nil
	}
	return true, writeDotenv(c.EnvPath(), env)
}

// HasStoredCredentials reports whether the .env file holds a quote key.
func (c *Config) HasStoredCredentials() bool {
	env, err := readDotenv(c.EnvPath())
	if err != nil {
		return false
	}
	return env[EnvQuoteAPIKey] != ""
}

func writeDotenv(path string, env map[string]string) error {
	content, err := godotenv.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content+"\n"), 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
