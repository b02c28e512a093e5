package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asthmacare/internal/domain/airquality"
)

// newTestServer levanta el router completo en modo dev: sin verifier
// (X-Debug-User-ID), repos in-memory, responder mock sin delay.
func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(opts))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, userID string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, raw
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/health", "", nil)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("status=%d body=%q", resp.StatusCode, body)
	}
}

// Con LoginURL configurada, las rutas protegidas redirigen al login en
// vez de responder 401; las rutas de auth quedan fuera del guard.
func TestConLoginURLRedirigeAlLogin(t *testing.T) {
	srv := newTestServer(t, Options{LoginURL: "/login"})

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(srv.URL + "/symptoms?limit=5")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, esperaba 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login?redirect=%2Fsymptoms%3Flimit%3D5" {
		t.Fatalf("Location = %q", loc)
	}

	// con claims el guard es un no-op
	resp2, body := doJSON(t, http.MethodGet, srv.URL+"/symptoms", "user-1", nil)
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("con claims: status=%d body=%s", resp2.StatusCode, body)
	}

	// /auth/* no pasa por el guard: sin provider responde 503, no 302
	resp3, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/signin", "", map[string]string{
		"email": "a@b.com", "password": "x",
	})
	if resp3.StatusCode == http.StatusFound {
		t.Fatalf("signin no debe redirigir al login, status=%d", resp3.StatusCode)
	}
}

func TestSinClaimsDevuelve401(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/symptoms", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestFlujoSintomasAReporte(t *testing.T) {
	srv := newTestServer(t, Options{})

	// dos entries recientes: severidad 3 y 2 => score 100 - 25 = 75
	for _, sev := range []int{3, 2} {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/symptoms", "user-1", map[string]any{
			"severity":    sev,
			"recorded_at": time.Now().Add(-1 * time.Hour).Format(time.RFC3339),
			"triggers":    []string{"dust"},
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("crear entry: status=%d body=%s", resp.StatusCode, body)
		}
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/reports/current", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("current: status=%d body=%s", resp.StatusCode, body)
	}

	var current struct {
		Score           int      `json:"score"`
		Level           string   `json:"level"`
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal(body, &current); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if current.Score != 75 || current.Level != "partly_controlled" {
		t.Fatalf("current = %+v", current)
	}
	if len(current.Recommendations) != 3 {
		t.Fatalf("recommendations = %v", current.Recommendations)
	}

	// Generar persiste y se puede volver a leer
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/reports", "user-1", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate: status=%d body=%s", resp.StatusCode, body)
	}
	var generated struct {
		ID string `json:"id"`
	}
	json.Unmarshal(body, &generated)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/reports/"+generated.ID, "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get report: status=%d", resp.StatusCode)
	}
}

func TestAislamientoEntreOwners(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/symptoms", "user-1", map[string]any{
		"severity": 4,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("crear: status=%d body=%s", resp.StatusCode, body)
	}
	var entry struct {
		ID string `json:"id"`
	}
	json.Unmarshal(body, &entry)

	// otro owner no ve el entry ni por lista ni por ID
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/symptoms", "user-2", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("listar: status=%d", resp.StatusCode)
	}
	var list []json.RawMessage
	json.Unmarshal(body, &list)
	if len(list) != 0 {
		t.Fatalf("user-2 ve %d entries ajenos", len(list))
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/symptoms/"+entry.ID, "user-2", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get ajeno: status=%d", resp.StatusCode)
	}
}

func TestChatRespondeYPersiste(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/chat/messages", "user-1", map[string]string{
		"content": "which inhaler should I use?",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send: status=%d body=%s", resp.StatusCode, body)
	}
	var reply struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	json.Unmarshal(body, &reply)
	if reply.Role != "assistant" || reply.Content == "" {
		t.Fatalf("reply = %+v", reply)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/chat/messages", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history: status=%d", resp.StatusCode)
	}
	var history []struct {
		Role string `json:"role"`
	}
	json.Unmarshal(body, &history)
	if len(history) != 2 || history[0].Role != "user" || history[1].Role != "assistant" {
		t.Fatalf("history = %+v", history)
	}
}

func TestAirQualityCacheaPorVentana(t *testing.T) {
	fetches := 0
	fetcher := airquality.FetchFunc(func(_ context.Context, location string) (json.RawMessage, error) {
		fetches++
		return json.RawMessage(fmt.Sprintf(`{"city":%q,"aqi":42}`, location)), nil
	})

	srv := newTestServer(t, Options{
		AirQualityFetcher: fetcher,
		CacheWindow:       30 * time.Minute,
	})

	for i := 0; i < 3; i++ {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/air-quality?location=Lima", "user-1", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status=%d body=%s", resp.StatusCode, body)
		}
	}
	// "LIMA" comparte key con "Lima" (case-folded)
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/air-quality?location=LIMA", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	if fetches != 1 {
		t.Fatalf("fetches = %d, esperaba 1", fetches)
	}
}

func TestCitaCanceladaGeneraNotificacion(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/appointments", "user-1", map[string]string{
		"doctor_name":  "Dra. Rivas",
		"scheduled_at": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"reason":       "checkup",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("crear cita: status=%d body=%s", resp.StatusCode, body)
	}
	var appt struct {
		ID string `json:"id"`
	}
	json.Unmarshal(body, &appt)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/appointments/"+appt.ID+"/cancel", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cancelar: status=%d body=%s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/notifications", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("notifications: status=%d", resp.StatusCode)
	}
	var notifs []struct {
		Kind string `json:"kind"`
		Read bool   `json:"read"`
	}
	json.Unmarshal(body, &notifs)
	if len(notifs) != 1 || notifs[0].Kind != "appointment_cancelled" || notifs[0].Read {
		t.Fatalf("notifs = %+v", notifs)
	}
}
