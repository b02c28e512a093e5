package airquality

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrNoEntry = errors.New("no cached entry")
)

// Store persiste lookups. Latest devuelve el más reciente para la key
// o ErrNoEntry.
type Store interface {
	Latest(ctx context.Context, key string) (Lookup, error)
	Put(ctx context.Context, l Lookup) error
}

// Fetcher trae datos frescos del proveedor externo.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (json.RawMessage, error)
}

// FetchFunc adapta una función a Fetcher.
type FetchFunc func(ctx context.Context, location string) (json.RawMessage, error)

func (f FetchFunc) Fetch(ctx context.Context, location string) (json.RawMessage, error) {
	return f(ctx, location)
}
