package main

import (
	"time"

	"github.com/JaimeStill/file-lab/internal/config"
	"github.com/JaimeStill/file-lab/internal/heic"
	"github.com/JaimeStill/file-lab/internal/routes"
	"github.com/JaimeStill/file-lab/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	runtime *Runtime
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	runtime, err := NewRuntime(cfg)
	if err != nil {
		return nil, err
	}

	routeSys := routes.New(runtime.Logger)
	if err := registerRoutes(routeSys, runtime, cfg); err != nil {
		return nil, err
	}

	handler := buildMiddleware(runtime, cfg).Apply(routeSys.Build())

	runtime.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"base_path", cfg.BasePath,
		"thumbnail_renderer", cfg.Engine.ThumbnailRenderer,
		"heic", heic.Decoder(),
	)

	return &Server{
		runtime: runtime,
		http:    server.New(&cfg.Server, handler, runtime.Logger),
	}, nil
}

// Start begins all subsystems and returns when they are ready.
func (s *Server) Start() error {
	s.runtime.Logger.Info("starting service")

	if err := s.runtime.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.runtime.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.runtime.Lifecycle.WaitForStartup()
		s.runtime.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within the provided timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.runtime.Logger.Info("initiating shutdown")
	return s.runtime.Lifecycle.Shutdown(timeout)
}
