package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// RequireAuth corta los requests sin claims redirigiendo al login,
// con la URL original en ?redirect= para volver después de autenticarse.
// Con claims presentes es un no-op.
func RequireAuth(loginURL string) func(http.Handler) http.Handler {
	loginURL = strings.TrimSpace(loginURL)
	if loginURL == "" {
		loginURL = "/login"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok || strings.TrimSpace(claims.UserID) == "" {
				target := loginURL + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
