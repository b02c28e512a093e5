package files

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("file not found")
)

// Object es un binario direccionado por bucket + path.
type Object struct {
	Path        string
	ContentType string
	Data        []byte
}

// Store es el object storage externo (S3-compatible).
// Los paths ya vienen scoped por owner (p.ej. "avatars/<userID>/...").
type Store interface {
	Upload(ctx context.Context, obj Object) error
	Delete(ctx context.Context, path string) error

	// SignedURL devuelve una URL temporal de descarga.
	SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
