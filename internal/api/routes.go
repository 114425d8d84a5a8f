package api

import (
	"github.com/JaimeStill/user-auth/internal/accounts"
	"github.com/JaimeStill/user-auth/pkg/openapi"
	"github.com/JaimeStill/user-auth/pkg/routes"
)

func registerRoutes(
	table routes.System,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
) error {
	accountsHandler := accounts.NewHandler(domain.Accounts, runtime.Logger, runtime.Auth.MaxBodySizeBytes())

	groups := []routes.Group{
		accountsHandler.Routes(),
	}

	for _, g := range groups {
		if err := table.RegisterGroup(g); err != nil {
			return err
		}
		addGroup(spec, runtime.Auth.BasePath, g)
	}

	spec.Components.AddSchemas(accounts.Spec.Schemas())
	return nil
}

// addGroup documents every route in g under its public path, which
// includes the module prefix. Named routes use their qualified name as the
// operation ID.
func addGroup(spec *openapi.Spec, basePath string, g routes.Group) {
	for _, tag := range g.Tags {
		spec.AddTag(tag, g.Description)
	}

	for _, e := range g.Entries() {
		if e.OpenAPI == nil {
			continue
		}
		op := *e.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = e.Tags
		}
		if op.OperationID == "" {
			op.OperationID = e.QualifiedName
		}
		spec.AddOperation(routes.JoinPath(basePath, e.Path), e.Method, &op)
	}
}
