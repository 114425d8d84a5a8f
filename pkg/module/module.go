// Package module mounts self-contained HTTP handlers under single-segment
// path prefixes. A Module owns its middleware chain and sees request paths
// with its prefix removed.
package module

import (
	"net/http"
	"strings"
)

// Module is an http.Handler isolated under a path prefix such as "/auth".
type Module struct {
	prefix     string
	router     http.Handler
	middleware []func(http.Handler) http.Handler
}

// New creates a module for prefix. It panics when prefix is empty, lacks a
// leading slash or spans more than one path segment.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != "" {
		panic("module: " + err + ": " + prefix)
	}
	return &Module{
		prefix: prefix,
		router: router,
	}
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The first middleware added is the outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
}

// Handler returns the module router wrapped in its middleware chain.
func (m *Module) Handler() http.Handler {
	handler := m.router
	for i := len(m.middleware) - 1; i >= 0; i-- {
		handler = m.middleware[i](handler)
	}
	return handler
}

// Serve strips the module prefix from the request path and dispatches it.
// A request for the bare prefix is served as "/".
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	req := r.Clone(r.Context())
	req.URL.Path = path
	req.URL.RawPath = ""

	m.Handler().ServeHTTP(w, req)
}

func validatePrefix(prefix string) string {
	switch {
	case prefix == "":
		return "empty prefix"
	case !strings.HasPrefix(prefix, "/"):
		return "prefix must start with /"
	case strings.Count(prefix, "/") > 1:
		return "prefix must be a single path segment"
	}
	return ""
}
