package airquality

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"asthmacare/internal/middleware"
	"asthmacare/internal/platform/apperrors"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/air-quality", getAirQualityHandler(svc))
}

type lookupResponse struct {
	Location  string          `json:"location"`
	Data      json.RawMessage `json:"data"`
	FetchedAt time.Time       `json:"fetched_at"`
}

func getAirQualityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		location := strings.TrimSpace(r.URL.Query().Get("location"))
		if location == "" {
			http.Error(w, "location is required", http.StatusBadRequest)
			return
		}

		l, err := svc.Get(r.Context(), location)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, apperrors.Message(apperrors.ErrTransportFailure), http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, lookupResponse{
			Location:  l.Key,
			Data:      l.Payload,
			FetchedAt: l.CreatedAt,
		})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
