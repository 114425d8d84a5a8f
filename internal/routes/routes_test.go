package routes_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/user-auth/internal/routes"
	pkgroutes "github.com/JaimeStill/user-auth/pkg/routes"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name))
	}
}

func authGroup() pkgroutes.Group {
	return pkgroutes.Group{
		Namespace: "django_user_auth",
		Routes: []pkgroutes.Route{
			{Method: http.MethodPost, Pattern: "/register/", Name: "register", Handler: named("register")},
			{Method: http.MethodPost, Pattern: "/user_login/", Name: "user_login", Handler: named("user_login")},
		},
	}
}

func newTable(t *testing.T) pkgroutes.System {
	t.Helper()
	sys := routes.New(discardLogger())
	if err := sys.RegisterGroup(authGroup()); err != nil {
		t.Fatalf("RegisterGroup() error = %v", err)
	}
	return sys
}

func TestResolve_Routed(t *testing.T) {
	sys := newTable(t)

	tests := []struct {
		path      string
		name      string
		qualified string
	}{
		{"/register/", "register", "django_user_auth:register"},
		{"/user_login/", "user_login", "django_user_auth:user_login"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, err := sys.Resolve(http.MethodPost, tt.path)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if m.Name != tt.name {
				t.Errorf("Name = %q, want %q", m.Name, tt.name)
			}
			if m.QualifiedName != tt.qualified {
				t.Errorf("QualifiedName = %q, want %q", m.QualifiedName, tt.qualified)
			}
			if m.Namespace != "django_user_auth" {
				t.Errorf("Namespace = %q", m.Namespace)
			}

			w := httptest.NewRecorder()
			m.Handler(w, httptest.NewRequest(http.MethodPost, tt.path, nil))
			if w.Body.String() != tt.name {
				t.Errorf("handler wrote %q, want %q", w.Body.String(), tt.name)
			}
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	sys := newTable(t)

	paths := []string{
		"",
		"/",
		"/register",
		"/user_login",
		"/register/extra/",
		"/Register/",
		"/login/",
		"register/",
		"/auth/register/",
		"//register/",
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			if _, err := sys.Resolve(http.MethodPost, p); !errors.Is(err, pkgroutes.ErrNotFound) {
				t.Errorf("Resolve(%q) error = %v, want ErrNotFound", p, err)
			}
		})
	}
}

func TestResolve_MethodNotAllowed(t *testing.T) {
	sys := newTable(t)

	if _, err := sys.Resolve(http.MethodGet, "/register/"); !errors.Is(err, pkgroutes.ErrMethodNotAllowed) {
		t.Errorf("Resolve() error = %v, want ErrMethodNotAllowed", err)
	}
}

func TestReverse(t *testing.T) {
	sys := newTable(t)

	tests := []struct {
		name string
		want string
	}{
		{"django_user_auth:register", "/register/"},
		{"django_user_auth:user_login", "/user_login/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sys.Reverse(tt.name)
			if err != nil {
				t.Fatalf("Reverse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Reverse() = %q, want %q", got, tt.want)
			}

			m, err := sys.Resolve(http.MethodPost, got)
			if err != nil {
				t.Fatalf("Resolve(Reverse()) error = %v", err)
			}
			if m.QualifiedName != tt.name {
				t.Errorf("round trip name = %q, want %q", m.QualifiedName, tt.name)
			}
		})
	}
}

func TestReverse_UnknownName(t *testing.T) {
	sys := newTable(t)

	for _, name := range []string{"register", "django_user_auth:logout", ""} {
		if _, err := sys.Reverse(name); !errors.Is(err, pkgroutes.ErrUnknownName) {
			t.Errorf("Reverse(%q) error = %v, want ErrUnknownName", name, err)
		}
	}
}

func TestReverse_Vars(t *testing.T) {
	sys := routes.New(discardLogger())
	err := sys.RegisterGroup(pkgroutes.Group{
		Namespace: "accounts",
		Prefix:    "/accounts",
		Routes: []pkgroutes.Route{
			{Method: http.MethodGet, Pattern: "/{username}/", Name: "detail", Handler: named("detail")},
		},
	})
	if err != nil {
		t.Fatalf("RegisterGroup() error = %v", err)
	}

	got, err := sys.Reverse("accounts:detail", "username", "alice")
	if err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}
	if got != "/accounts/alice/" {
		t.Errorf("Reverse() = %q, want %q", got, "/accounts/alice/")
	}

	m, err := sys.Resolve(http.MethodGet, got)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if m.Vars["username"] != "alice" {
		t.Errorf("Vars = %v", m.Vars)
	}
}

func TestRegisterGroup_Duplicates(t *testing.T) {
	tests := []struct {
		name    string
		group   pkgroutes.Group
		wantErr error
	}{
		{
			name: "duplicate name",
			group: pkgroutes.Group{
				Namespace: "django_user_auth",
				Routes: []pkgroutes.Route{
					{Method: http.MethodPost, Pattern: "/other/", Name: "register", Handler: named("other")},
				},
			},
			wantErr: pkgroutes.ErrDuplicateName,
		},
		{
			name: "duplicate pattern",
			group: pkgroutes.Group{
				Namespace: "other",
				Routes: []pkgroutes.Route{
					{Method: http.MethodPost, Pattern: "/register/", Name: "register", Handler: named("other")},
				},
			},
			wantErr: pkgroutes.ErrDuplicatePattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newTable(t)

			if err := sys.RegisterGroup(tt.group); !errors.Is(err, tt.wantErr) {
				t.Fatalf("RegisterGroup() error = %v, want %v", err, tt.wantErr)
			}
			if len(sys.Groups()) != 1 {
				t.Errorf("len(Groups()) = %d, want 1", len(sys.Groups()))
			}
		})
	}
}

func TestRegisterGroup_Atomic(t *testing.T) {
	sys := newTable(t)

	err := sys.RegisterGroup(pkgroutes.Group{
		Namespace: "extra",
		Routes: []pkgroutes.Route{
			{Method: http.MethodPost, Pattern: "/fresh/", Name: "fresh", Handler: named("fresh")},
			{Method: http.MethodPost, Pattern: "/register/", Name: "clash", Handler: named("clash")},
		},
	})
	if !errors.Is(err, pkgroutes.ErrDuplicatePattern) {
		t.Fatalf("RegisterGroup() error = %v, want ErrDuplicatePattern", err)
	}

	if _, err := sys.Resolve(http.MethodPost, "/fresh/"); !errors.Is(err, pkgroutes.ErrNotFound) {
		t.Errorf("partial registration leaked: Resolve() error = %v", err)
	}
	if _, err := sys.Reverse("extra:fresh"); !errors.Is(err, pkgroutes.ErrUnknownName) {
		t.Errorf("partial registration leaked: Reverse() error = %v", err)
	}
}

func TestRegisterRoute(t *testing.T) {
	sys := newTable(t)

	err := sys.RegisterRoute(pkgroutes.Route{
		Method: http.MethodGet, Pattern: "/openapi.json", Name: "openapi", Handler: named("spec"),
	})
	if err != nil {
		t.Fatalf("RegisterRoute() error = %v", err)
	}

	m, err := sys.Resolve(http.MethodGet, "/openapi.json")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if m.QualifiedName != "openapi" || m.Namespace != "" {
		t.Errorf("match = %+v", m)
	}
	if len(sys.Routes()) != 1 {
		t.Errorf("len(Routes()) = %d, want 1", len(sys.Routes()))
	}
}

func TestBuild_Seals(t *testing.T) {
	sys := newTable(t)
	sys.Build()

	err := sys.RegisterRoute(pkgroutes.Route{Method: http.MethodGet, Pattern: "/late/", Handler: named("late")})
	if !errors.Is(err, pkgroutes.ErrSealed) {
		t.Errorf("RegisterRoute() after Build error = %v, want ErrSealed", err)
	}

	err = sys.RegisterGroup(pkgroutes.Group{Routes: []pkgroutes.Route{
		{Method: http.MethodGet, Pattern: "/late/", Handler: named("late")},
	}})
	if !errors.Is(err, pkgroutes.ErrSealed) {
		t.Errorf("RegisterGroup() after Build error = %v, want ErrSealed", err)
	}
}

func TestBuild_Dispatch(t *testing.T) {
	handler := newTable(t).Build()

	tests := []struct {
		name         string
		method       string
		path         string
		wantCode     int
		wantBody     string
		wantLocation string
		wantAllow    string
	}{
		{name: "register", method: http.MethodPost, path: "/register/", wantCode: http.StatusOK, wantBody: "register"},
		{name: "user_login", method: http.MethodPost, path: "/user_login/", wantCode: http.StatusOK, wantBody: "user_login"},
		{name: "unknown", method: http.MethodPost, path: "/logout/", wantCode: http.StatusNotFound, wantBody: `{"error":"route not found"}`},
		{name: "root", method: http.MethodGet, path: "/", wantCode: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/register/", wantCode: http.StatusMethodNotAllowed, wantAllow: "POST"},
		{name: "post append slash", method: http.MethodPost, path: "/register", wantCode: http.StatusPermanentRedirect, wantLocation: "register/"},
		{name: "double slash", method: http.MethodPost, path: "/register//", wantCode: http.StatusNotFound, wantBody: `{"error":"route not found"}`},
		{name: "dot segment", method: http.MethodPost, path: "/./user_login/", wantCode: http.StatusNotFound},
		{name: "leading double slash", method: http.MethodPost, path: "//register/", wantCode: http.StatusNotFound},
		{name: "get append slash", method: http.MethodGet, path: "/user_login?next=x", wantCode: http.StatusMovedPermanently, wantLocation: "user_login/?next=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantBody != "" && strings.TrimSpace(w.Body.String()) != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
			if tt.wantLocation != "" && w.Header().Get("Location") != tt.wantLocation {
				t.Errorf("Location = %q, want %q", w.Header().Get("Location"), tt.wantLocation)
			}
			if tt.wantAllow != "" && w.Header().Get("Allow") != tt.wantAllow {
				t.Errorf("Allow = %q, want %q", w.Header().Get("Allow"), tt.wantAllow)
			}
		})
	}
}
