package chat

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"asthmacare/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMatch_EmergencyWins(t *testing.T) {
	cases := []string{
		"I can't breathe!",
		"this is an EMERGENCY",
		"my symptoms are severe and I used my inhaler", // emergency group va antes que inhaler
	}

	for _, msg := range cases {
		got := Match(msg)
		if !strings.Contains(got, "emergency services") {
			t.Fatalf("Match(%q) = %q, expected emergency escalation", msg, got)
		}
	}
}

func TestMatch_CaseAndSurroundingWords(t *testing.T) {
	a := Match("I CAN'T BREATHE right now")
	b := Match("help, i can't breathe")
	if a != b {
		t.Fatalf("matching must be case-insensitive: %q != %q", a, b)
	}
}

func TestMatch_TriggerKeyword(t *testing.T) {
	got := Match("what triggers my asthma")
	if !strings.Contains(got, "triggers") {
		t.Fatalf("expected trigger-avoidance response, got %q", got)
	}
	if got == defaultResponse {
		t.Fatalf("keyword 'trigger' must match before falling to default")
	}
}

func TestMatch_OrderedGroups(t *testing.T) {
	cases := []struct {
		msg      string
		fragment string
	}{
		{"should I change my medication?", "controller medication"},
		{"is exercise safe for me", "Warm up"},
		{"how bad is the pollution today", "air quality"},
		{"work stress is killing me", "Stress and anxiety"},
		{"any diet advice?", "balanced diet"},
	}

	for _, c := range cases {
		got := Match(c.msg)
		if !strings.Contains(got, c.fragment) {
			t.Fatalf("Match(%q) = %q, expected fragment %q", c.msg, got, c.fragment)
		}
	}
}

func TestMatch_Default(t *testing.T) {
	got := Match("hello there")
	if got != defaultResponse {
		t.Fatalf("expected default response, got %q", got)
	}
}

func TestMockResponder_IgnoresHistory(t *testing.T) {
	m := NewMockResponder(0, 0)

	history := []Message{
		{Role: RoleUser, Content: "tell me about exercise"},
		{Role: RoleAssistant, Content: "..."},
	}

	withHistory, err := m.Respond(context.Background(), "hello", history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	withoutHistory, err := m.Respond(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if withHistory != withoutHistory {
		t.Fatalf("responder must be stateless: %q != %q", withHistory, withoutHistory)
	}
}

func TestMockResponder_CancelledContext(t *testing.T) {
	m := NewMockResponder(time.Second, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Respond(ctx, "hello", nil); err == nil {
		t.Fatalf("expected context error with cancelled ctx")
	}
}

// Una sola instancia atiende todos los requests del proceso, así que
// Respond tiene que aguantar llamadas concurrentes (el jitter del delay
// pasa por la fuente global con lock; correr con -race lo verifica).
func TestMockResponder_ConcurrentRespond(t *testing.T) {
	m := NewMockResponder(time.Millisecond, 3*time.Millisecond)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Respond(context.Background(), "any diet advice?", nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestMockResponder_IncrementaMetrica(t *testing.T) {
	m := NewMockResponder(0, 0)
	counter := metrics.ChatResponses.WithLabelValues("mock")

	before := testutil.ToFloat64(counter)
	if _, err := m.Respond(context.Background(), "hello", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("chat responses counter = %v, esperaba %v", got, before+1)
	}
}

func TestMockResponder_ZeroDelay(t *testing.T) {
	m := NewMockResponder(0, 0)

	start := time.Now()
	if _, err := m.Respond(context.Background(), "hello", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("zero-delay responder took %v", elapsed)
	}
}
