package airquality

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"asthmacare/internal/platform/logger"
	"asthmacare/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const DefaultWindow = 30 * time.Minute

// Service implementa la política cache-or-refetch con ventana de frescura.
// Llamadas concurrentes por la misma key pueden fetchear cada una por su
// lado: no hay dedup ni locking. Es una ineficiencia conocida, no un bug:
// la política explícita es stale-over-correctness en el fallback.
type Service struct {
	store   Store
	fetcher Fetcher
	window  time.Duration
	log     logger.Logger
	now     func() time.Time
}

func NewService(store Store, fetcher Fetcher, window time.Duration, log logger.Logger) *Service {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Service{
		store:   store,
		fetcher: fetcher,
		window:  window,
		log:     log,
		now:     time.Now,
	}
}

// Get resuelve la ubicación con la ventana configurada del service.
func (s *Service) Get(ctx context.Context, location string) (Lookup, error) {
	return s.LookupOrFetch(ctx, location, s.window)
}

// LookupOrFetch:
//  1. normaliza la key (case-fold)
//  2. entry más reciente y fresco => lo devuelve sin fetchear
//  3. si no, fetchea; en éxito guarda (fallo de storage no corta) y devuelve
//  4. si el fetch falla y hay entry (aunque esté stale) => lo devuelve
//  5. sin entry => propaga el fallo del fetch
func (s *Service) LookupOrFetch(ctx context.Context, location string, window time.Duration) (Lookup, error) {
	key := NormalizeKey(location)
	if key == "" {
		return Lookup{}, ErrInvalidInput
	}
	if window <= 0 {
		window = s.window
	}

	now := s.now()

	cached, cacheErr := s.store.Latest(ctx, key)
	if cacheErr == nil && now.Sub(cached.CreatedAt) < window {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	}
	if cacheErr != nil && !errors.Is(cacheErr, ErrNoEntry) {
		// Un store caído no corta el flujo: seguimos al fetch.
		s.log.Warn("airquality: cache read failed", map[string]any{
			"key": key,
			"err": cacheErr.Error(),
		})
	}

	payload, fetchErr := s.fetcher.Fetch(ctx, key)
	if fetchErr == nil {
		fresh := Lookup{
			Key:       key,
			Payload:   payload,
			CreatedAt: now,
		}
		// Insert fire-and-forget: un fallo del store no falla la llamada.
		if err := s.store.Put(ctx, fresh); err != nil {
			s.log.Warn("airquality: cache write failed", map[string]any{
				"key": key,
				"err": err.Error(),
			})
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return fresh, nil
	}

	// Fallback: entry más reciente aunque esté stale.
	if cacheErr == nil {
		metrics.CacheLookups.WithLabelValues("stale_fallback").Inc()
		s.log.Warn("airquality: serving stale entry after fetch failure", map[string]any{
			"key": key,
			"age": now.Sub(cached.CreatedAt).String(),
			"err": fetchErr.Error(),
		})
		return cached, nil
	}

	return Lookup{}, fmt.Errorf("air quality fetch failed: %w", fetchErr)
}

// NormalizeKey case-foldea la ubicación para que "Lima" y "lima"
// compartan entry.
func NormalizeKey(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}
