package airquality

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"asthmacare/internal/platform/logger"
)

type testStore struct {
	entries map[string]Lookup
	putErr  error
	puts    int
}

func newTestStore() *testStore {
	return &testStore{entries: map[string]Lookup{}}
}

func (s *testStore) Latest(ctx context.Context, key string) (Lookup, error) {
	l, ok := s.entries[key]
	if !ok {
		return Lookup{}, ErrNoEntry
	}
	return l, nil
}

func (s *testStore) Put(ctx context.Context, l Lookup) error {
	s.puts++
	if s.putErr != nil {
		return s.putErr
	}
	s.entries[l.Key] = l
	return nil
}

type countingFetcher struct {
	payload json.RawMessage
	err     error
	calls   int
}

func (f *countingFetcher) Fetch(ctx context.Context, location string) (json.RawMessage, error) {
	f.calls++
	return f.payload, f.err
}

var cacheNow = time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

func newCacheService(store Store, fetcher Fetcher, at time.Time) *Service {
	svc := NewService(store, fetcher, 30*time.Minute, logger.Nop())
	svc.now = func() time.Time { return at }
	return svc
}

func TestLookupOrFetch_FreshEntrySkipsFetch(t *testing.T) {
	store := newTestStore()
	store.entries["lima"] = Lookup{
		Key:       "lima",
		Payload:   json.RawMessage(`{"aqi":42}`),
		CreatedAt: cacheNow.Add(-29 * time.Minute),
	}
	fetcher := &countingFetcher{payload: json.RawMessage(`{"aqi":99}`)}

	svc := newCacheService(store, fetcher, cacheNow)

	l, err := svc.Get(context.Background(), "Lima")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 0 {
		t.Fatalf("fresh entry must not invoke fetcher, got %d calls", fetcher.calls)
	}
	if string(l.Payload) != `{"aqi":42}` {
		t.Fatalf("expected cached payload, got %s", l.Payload)
	}
}

func TestLookupOrFetch_StaleEntryRefetches(t *testing.T) {
	store := newTestStore()
	store.entries["lima"] = Lookup{
		Key:       "lima",
		Payload:   json.RawMessage(`{"aqi":42}`),
		CreatedAt: cacheNow.Add(-31 * time.Minute),
	}
	fetcher := &countingFetcher{payload: json.RawMessage(`{"aqi":99}`)}

	svc := newCacheService(store, fetcher, cacheNow)

	l, err := svc.Get(context.Background(), "lima")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("stale entry must invoke fetcher once, got %d calls", fetcher.calls)
	}
	if string(l.Payload) != `{"aqi":99}` {
		t.Fatalf("expected fresh payload, got %s", l.Payload)
	}
	if stored := store.entries["lima"]; string(stored.Payload) != `{"aqi":99}` {
		t.Fatalf("fresh payload must be stored, got %s", stored.Payload)
	}
}

func TestLookupOrFetch_KeyIsCaseFolded(t *testing.T) {
	store := newTestStore()
	fetcher := &countingFetcher{payload: json.RawMessage(`{"aqi":10}`)}

	svc := newCacheService(store, fetcher, cacheNow)

	if _, err := svc.Get(context.Background(), "  LIMA "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.entries["lima"]; !ok {
		t.Fatalf("expected entry stored under folded key, have %v", store.entries)
	}
}

func TestLookupOrFetch_FetchFailureFallsBackToStale(t *testing.T) {
	store := newTestStore()
	store.entries["lima"] = Lookup{
		Key:       "lima",
		Payload:   json.RawMessage(`{"aqi":42}`),
		CreatedAt: cacheNow.Add(-3 * time.Hour), // bien stale
	}
	fetcher := &countingFetcher{err: errors.New("provider down")}

	svc := newCacheService(store, fetcher, cacheNow)

	l, err := svc.Get(context.Background(), "lima")
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if string(l.Payload) != `{"aqi":42}` {
		t.Fatalf("expected stale payload, got %s", l.Payload)
	}
}

func TestLookupOrFetch_FetchFailureNoEntryPropagates(t *testing.T) {
	store := newTestStore()
	fetcher := &countingFetcher{err: errors.New("provider down")}

	svc := newCacheService(store, fetcher, cacheNow)

	if _, err := svc.Get(context.Background(), "lima"); err == nil {
		t.Fatalf("expected fetch error to propagate without cached entry")
	}
}

func TestLookupOrFetch_StoreWriteFailureDoesNotFailCall(t *testing.T) {
	store := newTestStore()
	store.putErr = errors.New("store down")
	fetcher := &countingFetcher{payload: json.RawMessage(`{"aqi":7}`)}

	svc := newCacheService(store, fetcher, cacheNow)

	l, err := svc.Get(context.Background(), "lima")
	if err != nil {
		t.Fatalf("cache write failure must not fail the call: %v", err)
	}
	if string(l.Payload) != `{"aqi":7}` {
		t.Fatalf("expected fresh payload, got %s", l.Payload)
	}
	if store.puts != 1 {
		t.Fatalf("expected one attempted write, got %d", store.puts)
	}
}

func TestLookupOrFetch_EmptyLocationRejected(t *testing.T) {
	svc := newCacheService(newTestStore(), &countingFetcher{}, cacheNow)

	if _, err := svc.Get(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
