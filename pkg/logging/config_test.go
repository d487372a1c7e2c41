package logging_test

import (
	"os"
	"testing"

	"github.com/JaimeStill/file-lab/pkg/logging"
)

func TestConfig_Merge(t *testing.T) {
	base := &logging.Config{
		Level:  logging.LevelInfo,
		Format: logging.FormatJSON,
	}

	base.Merge(&logging.Config{Level: logging.LevelDebug})

	if base.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want %q (should merge)", base.Level, logging.LevelDebug)
	}
	if base.Format != logging.FormatJSON {
		t.Errorf("Format = %q, want %q (should not change)", base.Format, logging.FormatJSON)
	}
}

func TestConfig_Finalize_AppliesDefaults(t *testing.T) {
	cfg := &logging.Config{}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Level != logging.LevelInfo {
		t.Errorf("Level = %q, want %q (default)", cfg.Level, logging.LevelInfo)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want %q (default)", cfg.Format, logging.FormatText)
	}
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	os.Setenv("TEST_LOG_LEVEL", "error")
	os.Setenv("TEST_LOG_FORMAT", "json")
	os.Setenv("TEST_LOG_ADD_SOURCE", "true")
	defer func() {
		os.Unsetenv("TEST_LOG_LEVEL")
		os.Unsetenv("TEST_LOG_FORMAT")
		os.Unsetenv("TEST_LOG_ADD_SOURCE")
	}()

	env := &logging.Env{
		Level:     "TEST_LOG_LEVEL",
		Format:    "TEST_LOG_FORMAT",
		AddSource: "TEST_LOG_ADD_SOURCE",
	}

	cfg := &logging.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Level != logging.LevelError {
		t.Errorf("Level = %q, want %q (env override)", cfg.Level, logging.LevelError)
	}
	if cfg.Format != logging.FormatJSON {
		t.Errorf("Format = %q, want %q (env override)", cfg.Format, logging.FormatJSON)
	}
	if !cfg.AddSource {
		t.Error("AddSource = false, want true (env override)")
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  logging.Config
	}{
		{"level", logging.Config{Level: "verbose", Format: logging.FormatJSON}},
		{"format", logging.Config{Level: logging.LevelInfo, Format: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}
