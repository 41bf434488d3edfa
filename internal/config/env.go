package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that provide flag defaults.
const (
	EnvDB       = "BOPDROP_DB"
	EnvConfig   = "BOPDROP_CONFIG"
	EnvLogLevel = "BOPDROP_LOG_LEVEL"
	EnvSSHHost  = "BOPDROP_SSH_HOST"
	EnvSSHPort  = "BOPDROP_SSH_PORT"
)

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding the real environment. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var found []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			found = append(found, p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: stat %s: %w", p, err)
		}
	}
	if len(found) == 0 {
		return nil
	}
	if err := godotenv.Load(found...); err != nil {
		return fmt.Errorf("config: load env: %w", err)
	}
	return nil
}

// Env returns the value of key, or fallback when it is unset or empty.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
