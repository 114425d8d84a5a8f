// Package routes defines the declarative route table: routes grouped under
// path prefixes and symbolic namespaces, resolvable by path and reversible
// by name.
package routes

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/user-auth/pkg/openapi"
)

// Route associates a path pattern with a handler and an optional symbolic name.
// Pattern is relative to the enclosing group and may contain {var} segments.
type Route struct {
	Method  string
	Pattern string
	Name    string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group is a collection of routes sharing a path prefix and a namespace.
// Children inherit the prefix and nest their namespace under the parent's.
type Group struct {
	Prefix      string
	Namespace   string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// Entry is a route flattened out of its group tree.
type Entry struct {
	Route
	Namespace     string
	QualifiedName string
	Path          string
	Tags          []string
}

// Entries flattens g and its children into absolute paths and qualified names.
func (g Group) Entries() []Entry {
	return g.entries("", "", nil)
}

func (g Group) entries(parentPrefix, parentNamespace string, parentTags []string) []Entry {
	prefix := JoinPath(parentPrefix, g.Prefix)
	namespace := QualifiedName(parentNamespace, g.Namespace)
	tags := g.Tags
	if len(tags) == 0 {
		tags = parentTags
	}

	result := make([]Entry, 0, len(g.Routes))
	for _, route := range g.Routes {
		entry := Entry{
			Route:     route,
			Namespace: namespace,
			Path:      JoinPath(prefix, route.Pattern),
			Tags:      tags,
		}
		if route.Name != "" {
			entry.QualifiedName = QualifiedName(namespace, route.Name)
		}
		result = append(result, entry)
	}

	for _, child := range g.Children {
		result = append(result, child.entries(prefix, namespace, tags)...)
	}
	return result
}

// Validate checks every route for a method and handler and rejects names
// that repeat within a namespace.
func (g Group) Validate() error {
	seen := make(map[string]bool)
	for _, e := range g.Entries() {
		if err := e.Route.Validate(); err != nil {
			return fmt.Errorf("%s: %w", e.Path, err)
		}
		if e.QualifiedName == "" {
			continue
		}
		if seen[e.QualifiedName] {
			return fmt.Errorf("%w: %s", ErrDuplicateName, e.QualifiedName)
		}
		seen[e.QualifiedName] = true
	}
	return nil
}

// Validate checks that the route can be dispatched.
func (r Route) Validate() error {
	if r.Method == "" {
		return fmt.Errorf("%w: method required", ErrInvalidRoute)
	}
	if r.Handler == nil {
		return fmt.Errorf("%w: handler required", ErrInvalidRoute)
	}
	return nil
}
