package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireAuthRedirigeSinClaims(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("el handler no debía ejecutarse")
	})
	h := RequireAuth("/login")(next)

	req := httptest.NewRequest(http.MethodGet, "/reports/current?limit=5", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	want := "/login?redirect=%2Freports%2Fcurrent%3Flimit%3D5"
	if loc != want {
		t.Fatalf("Location = %q, esperaba %q", loc, want)
	}
}

func TestRequireAuthPasaConClaims(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})

	// AuthContext en modo dev setea claims desde el header
	h := AuthContext(nil)(RequireAuth("/login")(next))

	req := httptest.NewRequest(http.MethodGet, "/reports/current", nil)
	req.Header.Set("X-Debug-User-ID", "user-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called {
		t.Fatal("el handler debía ejecutarse")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequireAuthLoginURLPorDefecto(t *testing.T) {
	h := RequireAuth("")(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login?redirect=%2Fx" {
		t.Fatalf("Location = %q", loc)
	}
}
