package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// ViewerLoader resolves the full identity context (user row + liked and
// following id-sets) for an authenticated user id.
type ViewerLoader func(ctx context.Context, userID uint) (*Viewer, error)

// Middleware authenticates the bearer token and attaches the viewer to the
// request context. Requests without a valid token get a 401 JSON error.
func Middleware(secret string, load ViewerLoader) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing authorization header")
				return
			}

			claims, err := ParseToken(tokenStr, secret)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			viewer, err := load(r.Context(), claims.UserID)
			if err != nil {
				unauthorized(w, "unknown user")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": msg})
}
