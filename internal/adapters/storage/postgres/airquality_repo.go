package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"asthmacare/internal/domain/airquality"
)

// AirQualityRepo implementa airquality.Store. Una fila por key (upsert):
// la fila vieja se pisa pero nunca se borra por edad, porque una entrada
// stale sigue sirviendo como fallback.
type AirQualityRepo struct {
	db *sql.DB
}

func NewAirQualityRepo(db *sql.DB) *AirQualityRepo {
	return &AirQualityRepo{db: db}
}

func (r *AirQualityRepo) Latest(ctx context.Context, key string) (airquality.Lookup, error) {
	const q = `
		SELECT key, payload, created_at
		FROM air_quality_cache
		WHERE key = $1`

	var l airquality.Lookup
	var payload []byte
	err := r.db.QueryRowContext(ctx, q, key).Scan(&l.Key, &payload, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return airquality.Lookup{}, airquality.ErrNoEntry
	}
	if err != nil {
		return airquality.Lookup{}, fmt.Errorf("airquality latest %s: %w", key, err)
	}
	l.Payload = payload
	return l, nil
}

func (r *AirQualityRepo) Put(ctx context.Context, l airquality.Lookup) error {
	const q = `
		INSERT INTO air_quality_cache (key, payload, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, created_at = EXCLUDED.created_at`

	if _, err := r.db.ExecContext(ctx, q, l.Key, []byte(l.Payload), l.CreatedAt); err != nil {
		return fmt.Errorf("airquality put %s: %w", l.Key, err)
	}
	return nil
}
