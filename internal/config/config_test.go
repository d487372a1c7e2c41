package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/file-lab/internal/config"
	"github.com/JaimeStill/file-lab/internal/pdf"
)

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func workdir(t *testing.T, base string) string {
	t.Helper()
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, base)
	t.Chdir(dir)
	return dir
}

func TestLoad_RepoConfig(t *testing.T) {
	t.Setenv(config.EnvServiceEnv, "")
	t.Chdir("../../")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
}

func TestFinalize_Defaults(t *testing.T) {
	t.Setenv(config.EnvServiceEnv, "")
	workdir(t, "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.BasePath != "/api" {
		t.Errorf("BasePath = %q, want /api", cfg.BasePath)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Server.WriteTimeoutDuration() != 5*time.Minute {
		t.Errorf("WriteTimeout = %v, want 5m", cfg.Server.WriteTimeoutDuration())
	}
	if cfg.Limits.MaxUploadSizeBytes() != 100_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 100000000", cfg.Limits.MaxUploadSizeBytes())
	}
	if cfg.Limits.MaxFiles != 20 {
		t.Errorf("MaxFiles = %d, want 20", cfg.Limits.MaxFiles)
	}
	if cfg.Engine.ThumbnailRenderer != "mupdf" {
		t.Errorf("ThumbnailRenderer = %q, want mupdf", cfg.Engine.ThumbnailRenderer)
	}
	if cfg.Engine.Mode() != pdf.ModeEncrypt {
		t.Errorf("Mode() = %q, want encrypt", cfg.Engine.Mode())
	}
	if cfg.Engine.PermissionSet() != pdf.PermissionsNone {
		t.Errorf("PermissionSet() = %q, want none", cfg.Engine.PermissionSet())
	}
	if cfg.Storage.BasePath == "" {
		t.Error("Storage.BasePath not set to default")
	}
	if cfg.Logging.Level == "" {
		t.Error("Logging.Level not set to default")
	}
}

func TestLoad_WithOverlay(t *testing.T) {
	dir := workdir(t, `
[server]
port = 8080

[engine]
protect_mode = "encrypt"
`)
	writeConfig(t, dir, "config.test.toml", `
shutdown_timeout = "60s"

[server]
port = 9090

[limits]
max_upload_size = "5MB"

[engine]
protect_mode = "passthrough"
`)
	t.Setenv(config.EnvServiceEnv, "test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.ShutdownTimeout != "60s" {
		t.Errorf("ShutdownTimeout = %q, want 60s", cfg.ShutdownTimeout)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Limits.MaxUploadSizeBytes() != 5_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 5000000", cfg.Limits.MaxUploadSizeBytes())
	}
	if cfg.Engine.Mode() != pdf.ModePassthrough {
		t.Errorf("Mode() = %q, want passthrough", cfg.Engine.Mode())
	}
}

func TestLoad_MissingOverlayIgnored(t *testing.T) {
	workdir(t, "")
	t.Setenv(config.EnvServiceEnv, "nowhere")

	if _, err := config.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
}

func TestLoad_MissingBase(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := config.Load(); err == nil {
		t.Fatal("Load() succeeded without config.toml")
	}
}

func TestFinalize_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvServiceEnv, "")
	workdir(t, "")

	t.Setenv(config.EnvServerPort, "7070")
	t.Setenv(config.EnvLimitsMaxUploadSize, "2MB")
	t.Setenv(config.EnvLimitsMaxFiles, "4")
	t.Setenv(config.EnvEngineThumbnailRenderer, "imagemagick")
	t.Setenv(config.EnvEngineThumbnailWidth, "320")
	t.Setenv(config.EnvEnginePermissions, "all")
	t.Setenv("STORAGE_BASE_PATH", "/tmp/file-lab-env")
	t.Setenv("LOGGING_LEVEL", "debug")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Limits.MaxUploadSizeBytes() != 2_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d", cfg.Limits.MaxUploadSizeBytes())
	}
	if cfg.Limits.MaxFiles != 4 {
		t.Errorf("MaxFiles = %d, want 4", cfg.Limits.MaxFiles)
	}
	if cfg.Engine.ThumbnailRenderer != "imagemagick" {
		t.Errorf("ThumbnailRenderer = %q", cfg.Engine.ThumbnailRenderer)
	}
	if cfg.Engine.ThumbnailWidth != 320 {
		t.Errorf("ThumbnailWidth = %d, want 320", cfg.Engine.ThumbnailWidth)
	}
	if cfg.Engine.PermissionSet() != pdf.PermissionsAll {
		t.Errorf("PermissionSet() = %q, want all", cfg.Engine.PermissionSet())
	}
	if cfg.Storage.BasePath != "/tmp/file-lab-env" {
		t.Errorf("Storage.BasePath = %q", cfg.Storage.BasePath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestFinalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"shutdown timeout", `shutdown_timeout = "soon"`},
		{"base path", `base_path = "api"`},
		{"port", "[server]\nport = 70000"},
		{"write timeout", "[server]\nwrite_timeout = \"forever\""},
		{"upload size", "[limits]\nmax_upload_size = \"lots\""},
		{"max files", "[limits]\nmax_files = 1"},
		{"renderer", "[engine]\nthumbnail_renderer = \"ghostscript\""},
		{"quality", "[engine]\nimage_quality = 1.5"},
		{"protect mode", "[engine]\nprotect_mode = \"rot13\""},
		{"permissions", "[engine]\npermissions = \"some\""},
		{"logging level", "[logging]\nlevel = \"loud\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvServiceEnv, "")
			workdir(t, tt.body)

			cfg, err := config.Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if err := cfg.Finalize(); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}
