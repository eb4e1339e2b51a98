package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ctxKey string

const (
	UserIDKey   ctxKey = "userID"
	UserNomeKey ctxKey = "userNome"
)

type Verifier interface {
	Verify(raw string) (Claims, error)
}

func Middleware(tokens Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// allow OPTIONS (CORS preflight) to pass through
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			raw := ""
			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				raw = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			}
			if raw == "" {
				raw = r.URL.Query().Get("token")
			}
			if raw == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				fmt.Printf("[AUTH] token verify error: %v\n", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// user id kept as string for consistency with import records
			ctx := context.WithValue(r.Context(), UserIDKey, fmt.Sprintf("%d", claims.UserID))
			ctx = context.WithValue(ctx, UserNomeKey, claims.Nome)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (string, error) {
	v, ok := ctx.Value(UserIDKey).(string)
	if !ok || v == "" {
		return "", errors.New("userID not found in context")
	}
	return v, nil
}

// GetUserNome returns the display name carried in the token, or "" when absent.
func GetUserNome(ctx context.Context) string {
	v, _ := ctx.Value(UserNomeKey).(string)
	return v
}
