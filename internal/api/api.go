// Package api assembles the auth module: the django_user_auth route table,
// its OpenAPI document and the module-scoped middleware.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/user-auth/internal/config"
	"github.com/JaimeStill/user-auth/internal/infrastructure"
	"github.com/JaimeStill/user-auth/internal/routes"
	"github.com/JaimeStill/user-auth/pkg/middleware"
	"github.com/JaimeStill/user-auth/pkg/module"
	"github.com/JaimeStill/user-auth/pkg/openapi"
	pkgroutes "github.com/JaimeStill/user-auth/pkg/routes"
)

// SpecRouteName names the route serving the generated OpenAPI document.
const SpecRouteName = "openapi"

func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	spec := openapi.NewSpec(cfg.Auth.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.Auth.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	table := routes.New(runtime.Logger)
	if err := registerRoutes(table, spec, runtime, domain); err != nil {
		return nil, err
	}

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}

	err = table.RegisterRoute(pkgroutes.Route{
		Method:  http.MethodGet,
		Pattern: "/openapi.json",
		Name:    SpecRouteName,
		Handler: openapi.ServeSpec(specBytes),
	})
	if err != nil {
		return nil, fmt.Errorf("register openapi route: %w", err)
	}

	m := module.New(cfg.Auth.BasePath, table.Build())
	m.Use(middleware.CORS(&cfg.Auth.CORS))

	return m, nil
}
