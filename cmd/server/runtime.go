package main

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/file-lab/internal/config"
	"github.com/JaimeStill/file-lab/internal/lifecycle"
	"github.com/JaimeStill/file-lab/internal/storage"
	"github.com/JaimeStill/file-lab/internal/thumbnails"
	"github.com/JaimeStill/file-lab/internal/tools"
	"github.com/JaimeStill/file-lab/pkg/logging"
)

// Runtime holds the shared infrastructure and the tools system built on it.
type Runtime struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Storage   storage.System
	Tools     tools.System
}

func NewRuntime(cfg *config.Config) (*Runtime, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	renderer, err := thumbnails.New(cfg.Engine.ThumbnailRenderer, store)
	if err != nil {
		return nil, fmt.Errorf("thumbnail renderer init failed: %w", err)
	}

	toolSys := tools.New(tools.Config{
		Renderer:       renderer,
		ThumbnailWidth: cfg.Engine.ThumbnailWidth,
		ImageQuality:   cfg.Engine.ImageQuality,
		ProtectMode:    cfg.Engine.Mode(),
		Permissions:    cfg.Engine.PermissionSet(),
	}, logger)

	return &Runtime{
		Lifecycle: lc,
		Logger:    logger,
		Storage:   store,
		Tools:     toolSys,
	}, nil
}

func (r *Runtime) Start() error {
	if err := r.Storage.Start(r.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
