package airquality

import (
	"encoding/json"
	"time"
)

// Lookup es una consulta cacheada para una ubicación.
// Key se guarda case-folded; Payload es opaco para el cache.
type Lookup struct {
	Key       string
	Payload   json.RawMessage
	CreatedAt time.Time
}
