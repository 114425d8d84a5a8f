package middleware

import (
	"net/http"
	"path"
	"strings"
)

// PathMatcher reports whether any route is registered for a path,
// regardless of method.
type PathMatcher interface {
	Matches(path string) bool
}

// AppendSlash returns middleware that redirects a request without a trailing
// slash to the slashed path when only the slashed form is routable. GET and
// HEAD receive 301; other methods receive 308 so the method and body are
// preserved.
//
// The Location header is a relative reference to the final path segment, so
// the redirect stays correct when the handler is mounted under a prefix that
// has already been stripped from the request path.
func AppendSlash(m PathMatcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path
			if p == "" || strings.HasSuffix(p, "/") || hasFileExtension(p) || m.Matches(p) || !m.Matches(p+"/") {
				next.ServeHTTP(w, r)
				return
			}

			target := path.Base(p) + "/"
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}

			code := http.StatusPermanentRedirect
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				code = http.StatusMovedPermanently
			}

			w.Header().Set("Location", target)
			w.WriteHeader(code)
		})
	}
}

func hasFileExtension(path string) bool {
	lastSlash := strings.LastIndex(path, "/")
	lastDot := strings.LastIndex(path, ".")
	return lastDot > lastSlash
}
