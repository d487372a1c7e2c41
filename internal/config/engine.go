package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JaimeStill/file-lab/internal/pdf"
	"github.com/JaimeStill/file-lab/internal/thumbnails"
)

const (
	EnvEngineThumbnailRenderer = "ENGINE_THUMBNAIL_RENDERER"
	EnvEngineThumbnailWidth    = "ENGINE_THUMBNAIL_WIDTH"
	EnvEngineImageQuality      = "ENGINE_IMAGE_QUALITY"
	EnvEngineProtectMode       = "ENGINE_PROTECT_MODE"
	EnvEnginePermissions       = "ENGINE_PERMISSIONS"
)

// EngineConfig holds transformation defaults applied when a request leaves
// an option unset.
type EngineConfig struct {
	// ThumbnailRenderer selects the PDF rasterizer: "mupdf" or "imagemagick".
	ThumbnailRenderer string `toml:"thumbnail_renderer"`
	ThumbnailWidth    int    `toml:"thumbnail_width"`
	// ImageQuality is the default lossy quality in (0,1].
	ImageQuality float64 `toml:"image_quality"`
	// ProtectMode is "encrypt" or "passthrough".
	ProtectMode string `toml:"protect_mode"`
	Permissions string `toml:"permissions"`
}

// Mode returns the parsed protect mode. Valid after Finalize.
func (c *EngineConfig) Mode() pdf.Mode {
	m, _ := pdf.ParseMode(c.ProtectMode)
	return m
}

// PermissionSet returns the parsed default permissions. Valid after Finalize.
func (c *EngineConfig) PermissionSet() pdf.Permissions {
	p, _ := pdf.ParsePermissions(c.Permissions)
	return p
}

// Finalize applies defaults, loads environment overrides, and validates the engine configuration.
func (c *EngineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *EngineConfig) Merge(overlay *EngineConfig) {
	if overlay.ThumbnailRenderer != "" {
		c.ThumbnailRenderer = overlay.ThumbnailRenderer
	}
	if overlay.ThumbnailWidth > 0 {
		c.ThumbnailWidth = overlay.ThumbnailWidth
	}
	if overlay.ImageQuality > 0 {
		c.ImageQuality = overlay.ImageQuality
	}
	if overlay.ProtectMode != "" {
		c.ProtectMode = overlay.ProtectMode
	}
	if overlay.Permissions != "" {
		c.Permissions = overlay.Permissions
	}
}

func (c *EngineConfig) loadDefaults() {
	if c.ThumbnailRenderer == "" {
		c.ThumbnailRenderer = thumbnails.MuPDF
	}
	if c.ThumbnailWidth <= 0 {
		c.ThumbnailWidth = thumbnails.DefaultWidth
	}
	if c.ImageQuality <= 0 {
		c.ImageQuality = 0.8
	}
	if c.ProtectMode == "" {
		c.ProtectMode = string(pdf.ModeEncrypt)
	}
	if c.Permissions == "" {
		c.Permissions = string(pdf.PermissionsNone)
	}
}

func (c *EngineConfig) loadEnv() {
	if v := os.Getenv(EnvEngineThumbnailRenderer); v != "" {
		c.ThumbnailRenderer = v
	}
	if v := os.Getenv(EnvEngineThumbnailWidth); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ThumbnailWidth = n
		}
	}
	if v := os.Getenv(EnvEngineImageQuality); v != "" {
		if q, err := strconv.ParseFloat(v, 64); err == nil {
			c.ImageQuality = q
		}
	}
	if v := os.Getenv(EnvEngineProtectMode); v != "" {
		c.ProtectMode = v
	}
	if v := os.Getenv(EnvEnginePermissions); v != "" {
		c.Permissions = v
	}
}

func (c *EngineConfig) validate() error {
	switch strings.ToLower(c.ThumbnailRenderer) {
	case thumbnails.MuPDF, thumbnails.ImageMagick:
	default:
		return fmt.Errorf("invalid thumbnail_renderer %q", c.ThumbnailRenderer)
	}
	if c.ImageQuality > 1 {
		return fmt.Errorf("image_quality must be in (0,1]")
	}
	if _, err := pdf.ParseMode(c.ProtectMode); err != nil {
		return err
	}
	if _, err := pdf.ParsePermissions(c.Permissions); err != nil {
		return err
	}
	return nil
}
