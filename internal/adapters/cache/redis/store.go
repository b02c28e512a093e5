// Package redis implementa airquality.Store sobre un Redis.
// Las entradas no llevan TTL: una entrada vencida sigue sirviendo como
// fallback cuando el proveedor externo falla.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"asthmacare/internal/domain/airquality"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "airquality:lookup:"

type Store struct {
	rdb *goredis.Client
}

func NewStore(rdb *goredis.Client) *Store {
	return &Store{rdb: rdb}
}

type storedLookup struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt int64           `json:"created_at_unix"`
}

func (s *Store) Latest(ctx context.Context, key string) (airquality.Lookup, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return airquality.Lookup{}, airquality.ErrNoEntry
	}
	if err != nil {
		return airquality.Lookup{}, fmt.Errorf("redis: get %s: %w", key, err)
	}

	var st storedLookup
	if err := json.Unmarshal(raw, &st); err != nil {
		// entrada corrupta: la tratamos como inexistente
		return airquality.Lookup{}, airquality.ErrNoEntry
	}

	return airquality.Lookup{
		Key:       st.Key,
		Payload:   st.Payload,
		CreatedAt: time.Unix(st.CreatedAt, 0).UTC(),
	}, nil
}

func (s *Store) Put(ctx context.Context, l airquality.Lookup) error {
	raw, err := json.Marshal(storedLookup{
		Key:       l.Key,
		Payload:   l.Payload,
		CreatedAt: l.CreatedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("redis: marshal lookup: %w", err)
	}

	if err := s.rdb.Set(ctx, keyPrefix+l.Key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", l.Key, err)
	}
	return nil
}
