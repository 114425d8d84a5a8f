package routes

import "net/http"

// System registers routes once at startup and dispatches them afterwards.
// Registration closes when Build is called.
type System interface {
	// RegisterGroup adds every route in group. The table is unchanged when
	// an error is returned.
	RegisterGroup(group Group) error

	// RegisterRoute adds a route outside any group or namespace.
	RegisterRoute(route Route) error

	// Build seals the table and returns the dispatching handler.
	Build() http.Handler

	Groups() []Group
	Routes() []Route

	// Resolve finds the route serving method and path.
	// Returns ErrMethodNotAllowed when the path exists under another method
	// and ErrNotFound when no route matches.
	Resolve(method, path string) (*Match, error)

	// Reverse builds the path for a qualified route name such as
	// "django_user_auth:register". pairs supplies {var} values as
	// alternating keys and values.
	Reverse(name string, pairs ...string) (string, error)
}

// Match describes the route a request resolved to.
type Match struct {
	Name          string
	Namespace     string
	QualifiedName string
	Method        string
	Path          string
	Vars          map[string]string
	Handler       http.HandlerFunc
}
