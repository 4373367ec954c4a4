package http

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rogerio-castellano/asset-dashboard/internal/http/handlers"
)

var jwtSecret = []byte("super-secret-key")

// SetJWTSecret overrides the secret used to validate collaborator-issued
// bearer tokens.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(auth, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			return jwtSecret, nil
		})

		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		claims := token.Claims.(jwt.MapClaims)

		var id handlers.Identity
		if sub, ok := claims["sub"].(float64); ok {
			id.UserID = int(sub)
		}
		if role, ok := claims["role"].(string); ok {
			id.Role = role
		}
		next.ServeHTTP(w, r.WithContext(handlers.WithIdentity(r.Context(), id)))
	})
}
