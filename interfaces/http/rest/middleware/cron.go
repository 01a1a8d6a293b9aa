package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// CronAuth guards the scheduled-job endpoints. Requests must carry either
// the shared secret as a bearer token or the X-Vercel-Cron header the
// hosting platform stamps on scheduled invocations.
func CronAuth(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Vercel-Cron") == "1" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if secret != "" && len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") &&
				subtle.ConstantTimeCompare([]byte(parts[1]), []byte(secret)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   true,
				"message": "Unauthorized",
				"code":    http.StatusUnauthorized,
			})
		})
	}
}
