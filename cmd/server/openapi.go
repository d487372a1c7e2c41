package main

import (
	"net/http"

	"github.com/JaimeStill/file-lab/internal/config"
	"github.com/JaimeStill/file-lab/internal/tools"
	"github.com/JaimeStill/file-lab/pkg/openapi"
	"github.com/JaimeStill/file-lab/pkg/routes"
)

func generateSpec(rs routes.System, cfg *config.Config) *openapi.Spec {
	components := openapi.NewComponents()
	components.AddSchemas(tools.Spec.Schemas())

	spec := &openapi.Spec{
		OpenAPI: "3.1.0",
		Info: &openapi.Info{
			Title:       cfg.OpenAPI.Title,
			Version:     cfg.OpenAPI.Version,
			Description: cfg.OpenAPI.Description,
		},
		Components: components,
		Paths:      make(map[string]*openapi.PathItem),
	}

	for _, group := range rs.Groups() {
		processGroup(spec, "", nil, group)
	}

	for _, route := range rs.Routes() {
		if route.OpenAPI == nil {
			continue
		}
		addOperation(spec, route.Pattern, route.Method, route.OpenAPI)
	}

	return spec
}

func processGroup(spec *openapi.Spec, parent string, tags []string, group routes.Group) {
	prefix := parent + group.Prefix
	if len(group.Tags) > 0 {
		tags = group.Tags
	}

	for _, route := range group.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := *route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}

		addOperation(spec, prefix+route.Pattern, route.Method, &op)
	}

	for _, child := range group.Children {
		processGroup(spec, prefix, tags, child)
	}
}

func addOperation(spec *openapi.Spec, path, method string, op *openapi.Operation) {
	if spec.Paths[path] == nil {
		spec.Paths[path] = &openapi.PathItem{}
	}

	switch method {
	case "GET":
		spec.Paths[path].Get = op
	case "POST":
		spec.Paths[path].Post = op
	case "PUT":
		spec.Paths[path].Put = op
	case "DELETE":
		spec.Paths[path].Delete = op
	}
}

func serveOpenAPISpec(spec []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(spec)
	}
}
