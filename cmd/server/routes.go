package main

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/file-lab/internal/config"
	"github.com/JaimeStill/file-lab/internal/lifecycle"
	"github.com/JaimeStill/file-lab/internal/tools"
	"github.com/JaimeStill/file-lab/pkg/openapi"
	"github.com/JaimeStill/file-lab/pkg/routes"
)

// registerRoutes configures all HTTP routes for the service.
func registerRoutes(r routes.System, runtime *Runtime, cfg *config.Config) error {
	toolsHandler := runtime.Tools.Handler(tools.Limits{
		MaxUploadSize: cfg.Limits.MaxUploadSizeBytes(),
		MaxFiles:      cfg.Limits.MaxFiles,
	})

	r.RegisterGroup(routes.Group{
		Prefix:      cfg.BasePath,
		Description: "File Lab API",
		Children:    []routes.Group{toolsHandler.Routes()},
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
		OpenAPI: &openapi.Operation{
			Summary: "Health check endpoint",
			Tags:    []string{"Infrastructure"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Service is healthy"},
			},
		},
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handleReadinessCheck(w, runtime.Lifecycle)
		},
		OpenAPI: &openapi.Operation{
			Summary: "Readiness check endpoint",
			Tags:    []string{"Infrastructure"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Service is ready"},
				503: {Description: "Service not ready"},
			},
		},
	})

	specBytes, err := openapi.MarshalJSON(generateSpec(r, cfg))
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: cfg.BasePath + "/openapi.json",
		Handler: serveOpenAPISpec(specBytes),
	})

	return nil
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
