package symptoms

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"asthmacare/internal/middleware"
	"asthmacare/internal/platform/apperrors"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/symptoms", func(sr chi.Router) {
		sr.Post("/", createEntryHandler(svc))
		sr.Get("/", listEntriesHandler(svc))
		sr.Get("/{entryID}", getEntryHandler(svc))
		sr.Patch("/{entryID}/notes", updateNotesHandler(svc))
	})
}

type createEntryRequest struct {
	Severity        int      `json:"severity"`
	RecordedAt      string   `json:"recorded_at"` // RFC3339 opcional; default ahora
	Triggers        []string `json:"triggers"`
	MedicationsUsed []string `json:"medications_used"`
	Notes           string   `json:"notes"`
}

type entryResponse struct {
	ID              string    `json:"id"`
	OwnerUserID     string    `json:"owner_user_id"`
	Severity        int       `json:"severity"`
	RecordedAt      time.Time `json:"recorded_at"`
	Triggers        []string  `json:"triggers"`
	MedicationsUsed []string  `json:"medications_used"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// createEntryHandler godoc
// @Summary Registrar síntomas
// @Description Registra un nuevo entry de síntomas del usuario autenticado. severity 1-5; recorded_at RFC3339 opcional.
// @Tags symptoms
// @Accept json
// @Produce json
// @Param payload body createEntryRequest true "Datos del entry"
// @Success 201 {object} entryResponse
// @Failure 400 {string} string "invalid json / severity fuera de rango"
// @Failure 401 {string} string "unauthorized"
// @Router /symptoms [post]
func createEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		var req createEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var recordedAt time.Time
		if strings.TrimSpace(req.RecordedAt) != "" {
			t, err := time.Parse(time.RFC3339, req.RecordedAt)
			if err != nil {
				http.Error(w, "recorded_at must be RFC3339", http.StatusBadRequest)
				return
			}
			recordedAt = t
		}

		e, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Severity:        req.Severity,
			RecordedAt:      recordedAt,
			Triggers:        req.Triggers,
			MedicationsUsed: req.MedicationsUsed,
			Notes:           req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toEntryResponse(e))
	}
}

func listEntriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		e, err := svc.GetByID(r.Context(), claims.UserID, chi.URLParam(r, "entryID"))
		if err != nil {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponse(e))
	}
}

func updateNotesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		var req struct {
			Notes string `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.UpdateNotes(r.Context(), claims.UserID, chi.URLParam(r, "entryID"), req.Notes)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponse(e))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	return filter, nil
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:              e.ID,
		OwnerUserID:     e.OwnerUserID,
		Severity:        e.Severity,
		RecordedAt:      e.RecordedAt,
		Triggers:        e.Triggers,
		MedicationsUsed: e.MedicationsUsed,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
