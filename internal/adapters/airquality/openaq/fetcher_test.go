package openaq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchPropagaPayloadOpaco(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("city"); got != "Lima" {
			t.Errorf("city = %q", got)
		}
		if got := r.Header.Get("X-API-Key"); got != "k" {
			t.Errorf("X-API-Key = %q", got)
		}
		w.Write([]byte(`{"results":[{"parameter":"pm25","value":12.5}]}`))
	}))
	defer srv.Close()

	f, err := New(Config{BaseURL: srv.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	payload, err := f.Fetch(context.Background(), "Lima")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(string(payload), "pm25") {
		t.Fatalf("payload = %s", payload)
	}
}

func TestFetchErrorDelProveedor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f, _ := New(Config{BaseURL: srv.URL})
	if _, err := f.Fetch(context.Background(), "Lima"); err == nil {
		t.Fatal("esperaba error")
	}
}
