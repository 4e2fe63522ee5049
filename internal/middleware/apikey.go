package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/yusufkecer/workout-recorder-backend/internal/httpx"
)

// APIKey rejects requests whose X-API-Key header does not match apiKey.
// An empty apiKey disables the check.
func APIKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-API-Key")
			if key == "" {
				httpx.WriteError(w, http.StatusForbidden, httpx.CodeForbidden, "missing API key")
				return
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				httpx.WriteError(w, http.StatusForbidden, httpx.CodeForbidden, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
