package routes

import "errors"

var (
	// ErrNotFound indicates no route matches the path.
	ErrNotFound = errors.New("route not found")

	// ErrMethodNotAllowed indicates the path is routed but not for the method.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrDuplicateName indicates a qualified route name is already registered.
	ErrDuplicateName = errors.New("duplicate route name")

	// ErrDuplicatePattern indicates the method and path are already registered.
	ErrDuplicatePattern = errors.New("duplicate route pattern")

	// ErrInvalidRoute indicates a route is missing a method or handler.
	ErrInvalidRoute = errors.New("invalid route")

	// ErrSealed indicates registration was attempted after Build.
	ErrSealed = errors.New("route table is sealed")

	// ErrUnknownName indicates Reverse was given a name with no route.
	ErrUnknownName = errors.New("unknown route name")
)
