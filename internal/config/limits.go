package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

const (
	EnvLimitsMaxUploadSize = "LIMITS_MAX_UPLOAD_SIZE"
	EnvLimitsMaxFiles      = "LIMITS_MAX_FILES"
)

// LimitsConfig bounds request uploads.
type LimitsConfig struct {
	// MaxUploadSize is the per-file ceiling in human-readable form.
	// Default: "100MB"
	MaxUploadSize string `toml:"max_upload_size"`
	// MaxFiles caps multi-file requests such as merge and HEIC batches.
	// Default: 20
	MaxFiles int `toml:"max_files"`

	maxUploadSizeVal int64
}

// MaxUploadSizeBytes returns the parsed upload ceiling. Valid after Finalize.
func (c *LimitsConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the limits.
func (c *LimitsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *LimitsConfig) Merge(overlay *LimitsConfig) {
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.MaxFiles > 0 {
		c.MaxFiles = overlay.MaxFiles
	}
}

func (c *LimitsConfig) loadDefaults() {
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "100MB"
	}
	if c.MaxFiles <= 0 {
		c.MaxFiles = 20
	}
}

func (c *LimitsConfig) loadEnv() {
	if v := os.Getenv(EnvLimitsMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvLimitsMaxFiles); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxFiles = n
		}
	}
}

func (c *LimitsConfig) validate() error {
	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	if c.MaxFiles < 2 {
		return fmt.Errorf("max_files must be at least 2")
	}
	c.maxUploadSizeVal = size
	return nil
}
