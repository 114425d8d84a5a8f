// Package routes implements the route table on gorilla/mux.
package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"github.com/JaimeStill/user-auth/pkg/handlers"
	"github.com/JaimeStill/user-auth/pkg/middleware"
	pkgroutes "github.com/JaimeStill/user-auth/pkg/routes"
)

type entry struct {
	pkgroutes.Entry
	route *mux.Route
}

type routes struct {
	mu       sync.RWMutex
	router   *mux.Router
	groups   []pkgroutes.Group
	routes   []pkgroutes.Route
	entries  map[*mux.Route]entry
	names    map[string]*mux.Route
	patterns map[string]bool
	sealed   bool
	logger   *slog.Logger
}

// New creates an empty route table. Paths are matched exactly by both Resolve
// and the handler returned by Build: a trailing slash is significant and
// non-canonical paths such as "/register//" are not cleaned or redirected.
func New(logger *slog.Logger) pkgroutes.System {
	r := &routes{
		router:   mux.NewRouter(),
		groups:   []pkgroutes.Group{},
		routes:   []pkgroutes.Route{},
		entries:  make(map[*mux.Route]entry),
		names:    make(map[string]*mux.Route),
		patterns: make(map[string]bool),
		logger:   logger.With("system", "routes"),
	}
	r.router.SkipClean(true)
	r.router.NotFoundHandler = http.HandlerFunc(notFound)
	r.router.MethodNotAllowedHandler = http.HandlerFunc(r.methodNotAllowed)
	return r
}

func (r *routes) Groups() []pkgroutes.Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.groups)
}

func (r *routes) Routes() []pkgroutes.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.routes)
}

// RegisterGroup adds every route in group. Either all routes are added or
// none are.
func (r *routes) RegisterGroup(group pkgroutes.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := group.Entries()
	if err := r.check(entries); err != nil {
		return err
	}

	r.add(entries)
	r.groups = append(r.groups, group)
	return nil
}

// RegisterRoute adds a route outside any namespace.
func (r *routes) RegisterRoute(route pkgroutes.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := pkgroutes.Entry{
		Route:         route,
		Path:          pkgroutes.JoinPath("", route.Pattern),
		QualifiedName: route.Name,
	}
	entries := []pkgroutes.Entry{e}
	if err := r.check(entries); err != nil {
		return err
	}

	r.add(entries)
	r.routes = append(r.routes, route)
	return nil
}

// Build seals the table and returns a handler that redirects unslashed
// paths to their slashed form before dispatching.
func (r *routes) Build() http.Handler {
	r.mu.Lock()
	r.sealed = true
	count := len(r.entries)
	r.mu.Unlock()

	r.logger.Info("route table sealed", "routes", count)
	return middleware.AppendSlash(r)(r.router)
}

func (r *routes) Resolve(method, path string) (*pkgroutes.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, err := r.lookup(method, path)
	if err != nil {
		return nil, err
	}

	e := r.entries[m.Route]
	return &pkgroutes.Match{
		Name:          e.Name,
		Namespace:     e.Namespace,
		QualifiedName: e.QualifiedName,
		Method:        e.Method,
		Path:          e.Path,
		Vars:          m.Vars,
		Handler:       e.Handler,
	}, nil
}

func (r *routes) Reverse(name string, pairs ...string) (string, error) {
	r.mu.RLock()
	route, ok := r.names[name]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", pkgroutes.ErrUnknownName, name)
	}

	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", fmt.Errorf("reverse %s: %w", name, err)
	}
	return u.Path, nil
}

// Matches reports whether any method is routed for path.
func (r *routes) Matches(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, err := r.lookup(http.MethodGet, path)
	return err == nil || errors.Is(err, pkgroutes.ErrMethodNotAllowed)
}

func (r *routes) lookup(method, path string) (*mux.RouteMatch, error) {
	req := &http.Request{
		Method: method,
		URL:    &url.URL{Path: path},
		Header: make(http.Header),
	}

	var m mux.RouteMatch
	r.router.Match(req, &m)

	switch {
	case m.MatchErr == nil && m.Route != nil:
		return &m, nil
	case errors.Is(m.MatchErr, mux.ErrMethodMismatch):
		return nil, fmt.Errorf("%w: %s %s", pkgroutes.ErrMethodNotAllowed, method, path)
	default:
		return nil, fmt.Errorf("%w: %s", pkgroutes.ErrNotFound, path)
	}
}

func (r *routes) check(entries []pkgroutes.Entry) error {
	if r.sealed {
		return pkgroutes.ErrSealed
	}

	patterns := make(map[string]bool)
	names := make(map[string]bool)

	for _, e := range entries {
		if err := mux.NewRouter().NewRoute().Path(e.Path).GetError(); err != nil {
			return fmt.Errorf("%w: %s: %v", pkgroutes.ErrInvalidRoute, e.Path, err)
		}

		key := patternKey(e.Method, e.Path)
		if r.patterns[key] || patterns[key] {
			return fmt.Errorf("%w: %s", pkgroutes.ErrDuplicatePattern, key)
		}
		patterns[key] = true

		if e.QualifiedName == "" {
			continue
		}
		if _, ok := r.names[e.QualifiedName]; ok || names[e.QualifiedName] {
			return fmt.Errorf("%w: %s", pkgroutes.ErrDuplicateName, e.QualifiedName)
		}
		names[e.QualifiedName] = true
	}
	return nil
}

func (r *routes) add(entries []pkgroutes.Entry) {
	for _, e := range entries {
		route := r.router.NewRoute().
			Path(e.Path).
			Methods(e.Method).
			HandlerFunc(e.Handler)

		if e.QualifiedName != "" {
			route.Name(e.QualifiedName)
			r.names[e.QualifiedName] = route
		}

		r.entries[route] = entry{Entry: e, route: route}
		r.patterns[patternKey(e.Method, e.Path)] = true

		r.logger.Debug("route registered", "method", e.Method, "path", e.Path, "name", e.QualifiedName)
	}
}

// allowed lists the methods routed for path, sorted.
func (r *routes) allowed(path string) []string {
	var methods []string
	for _, e := range r.entries {
		req := &http.Request{Method: e.Method, URL: &url.URL{Path: path}, Header: make(http.Header)}
		var m mux.RouteMatch
		if e.route.Match(req, &m) && !slices.Contains(methods, e.Method) {
			methods = append(methods, e.Method)
		}
	}
	slices.Sort(methods)
	return methods
}

func (r *routes) methodNotAllowed(w http.ResponseWriter, req *http.Request) {
	r.mu.RLock()
	methods := r.allowed(req.URL.Path)
	r.mu.RUnlock()

	w.Header().Set("Allow", strings.Join(methods, ", "))
	handlers.RespondJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": pkgroutes.ErrMethodNotAllowed.Error(),
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusNotFound, map[string]string{
		"error": pkgroutes.ErrNotFound.Error(),
	})
}

func patternKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
