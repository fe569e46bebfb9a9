package httpserver

import (
	"net/http"
	"strings"

	"finitefield.org/laundry-admin/internal/platform/requestctx"
)

// BearerToken lifts the Authorization bearer token off the request and
// stores it in context. The console never mints tokens; whatever the
// operator's client presents is passed through to the shop backend.
func BearerToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if token, ok := strings.CutPrefix(header, "Bearer "); ok {
				r = r.WithContext(requestctx.WithToken(r.Context(), strings.TrimSpace(token)))
			}
			next.ServeHTTP(w, r)
		})
	}
}
