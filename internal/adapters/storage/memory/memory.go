// Package memory implementa los repositories de dominio en memoria.
// Se usa en desarrollo (sin DSN de postgres) y en los tests e2e del
// router. Cada repo es un mapa protegido por RWMutex.
package memory

import "errors"

// ErrNotFound lo comparten todos los repos del paquete.
var ErrNotFound = errors.New("record not found")
