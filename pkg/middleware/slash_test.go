package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/user-auth/pkg/middleware"
)

type paths map[string]bool

func (p paths) Matches(path string) bool {
	return p[path]
}

func TestAppendSlash(t *testing.T) {
	known := paths{"/register/": true, "/plain": true}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := middleware.AppendSlash(known)(next)

	tests := []struct {
		name         string
		method       string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{"get missing slash", http.MethodGet, "/register", http.StatusMovedPermanently, "register/"},
		{"post missing slash", http.MethodPost, "/register", http.StatusPermanentRedirect, "register/"},
		{"query preserved", http.MethodGet, "/register?next=home", http.StatusMovedPermanently, "register/?next=home"},
		{"already slashed", http.MethodPost, "/register/", http.StatusTeapot, ""},
		{"exact match wins", http.MethodGet, "/plain", http.StatusTeapot, ""},
		{"slashed form unknown", http.MethodGet, "/missing", http.StatusTeapot, ""},
		{"file extension", http.MethodGet, "/register.json", http.StatusTeapot, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}
