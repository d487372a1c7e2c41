package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Env maps environment variable names for storage configuration.
type Env struct {
	BasePath string
}

// Config contains scratch workspace configuration.
type Config struct {
	// BasePath is the scratch directory.
	// Default: "<os temp dir>/file-lab"
	BasePath string `toml:"base_path"`
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
}

func (c *Config) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = filepath.Join(os.TempDir(), "file-lab")
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BasePath != "" {
		if v := os.Getenv(env.BasePath); v != "" {
			c.BasePath = v
		}
	}
}

func (c *Config) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}
	return nil
}
