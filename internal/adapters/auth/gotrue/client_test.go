package gotrue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"asthmacare/internal/ports/auth"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSignInDevuelveSesion(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("request inesperado: %s %s", r.Method, r.URL)
		}
		if r.Header.Get("apikey") != "test-key" {
			t.Error("falta header apikey")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-1",
			"refresh_token": "rt-1",
			"expires_in":    3600,
			"user":          map[string]string{"id": "user-1", "email": "a@b.com"},
		})
	}))

	s, err := c.SignIn(context.Background(), auth.Credentials{Email: "a@b.com", Password: "secret"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if s.User.ID != "user-1" || s.AccessToken != "at-1" || s.RefreshToken != "rt-1" {
		t.Fatalf("session = %+v", s)
	}
	if s.ExpiresAt.IsZero() {
		t.Fatal("esperaba ExpiresAt")
	}
}

func TestSignInCredencialesInvalidas(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))

	_, err := c.SignIn(context.Background(), auth.Credentials{Email: "a@b.com", Password: "nope"})
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("err = %v, esperaba ErrInvalidCredentials", err)
	}
}

func TestSignUpConflictoMapeaUserExists(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"msg":"User already registered"}`, http.StatusUnprocessableEntity)
	}))

	_, err := c.SignUp(context.Background(), auth.Credentials{Email: "a@b.com", Password: "secret"})
	if !errors.Is(err, auth.ErrUserExists) {
		t.Fatalf("err = %v, esperaba ErrUserExists", err)
	}
}

func TestVerifyDevuelveClaims(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer at-1" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "user-1", "email": "a@b.com"})
	}))

	claims, err := c.Verify(context.Background(), "at-1")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@b.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestVerifyTokenInvalido(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))

	if _, err := c.Verify(context.Background(), "bad"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("err = %v, esperaba ErrInvalidCredentials", err)
	}
}

func TestOAuthURL(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())

	u, err := c.OAuthURL("google", "https://app.example.com/callback")
	if err != nil {
		t.Fatalf("OAuthURL: %v", err)
	}
	if !strings.Contains(u, "/authorize?") || !strings.Contains(u, "provider=google") {
		t.Fatalf("url = %s", u)
	}
}
