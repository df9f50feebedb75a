package transport

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// InternalMiddleware checks the internal service key against its bcrypt
// hash from config.
func InternalMiddleware(apiKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			key := strings.TrimPrefix(auth, "Bearer ")
			if err := bcrypt.CompareHashAndPassword([]byte(apiKeyHash), []byte(key)); err != nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
