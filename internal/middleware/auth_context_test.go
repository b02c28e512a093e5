package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"asthmacare/internal/ports/auth"
)

func TestAuthContextDevModeSeteaClaims(t *testing.T) {
	var got auth.Claims
	var ok bool
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, ok = GetClaims(r.Context())
	})
	h := AuthContext(nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("X-Debug-User-ID", "user-1")
	req.Header.Set("X-Debug-User-Email", "a@b.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !ok {
		t.Fatal("esperaba claims en el contexto")
	}
	if got.UserID != "user-1" || got.Email != "a@b.com" {
		t.Fatalf("claims = %+v", got)
	}
}

func TestAuthContextDevModeSinHeaderNoSeteaClaims(t *testing.T) {
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaims(r.Context()); ok {
			t.Error("no debía haber claims")
		}
	})
	h := AuthContext(nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	// solo email, sin user id: no alcanza para armar claims
	req.Header.Set("X-Debug-User-Email", "a@b.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
}
