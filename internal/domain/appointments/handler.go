package appointments

import (
	"context"
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
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Post("/{appointmentID}/confirm", transitionHandler(svc, (*Service).Confirm))
		ar.Post("/{appointmentID}/cancel", transitionHandler(svc, (*Service).Cancel))
		ar.Post("/{appointmentID}/complete", transitionHandler(svc, (*Service).Complete))
	})
}

type createAppointmentRequest struct {
	DoctorID    string `json:"doctor_id"`
	DoctorName  string `json:"doctor_name"`
	ScheduledAt string `json:"scheduled_at"` // RFC3339
	Reason      string `json:"reason"`
	Notes       string `json:"notes"`
}

type appointmentResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	DoctorID    string    `json:"doctor_id,omitempty"`
	DoctorName  string    `json:"doctor_name"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			http.Error(w, "scheduled_at must be RFC3339", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			DoctorID:    req.DoctorID,
			DoctorName:  req.DoctorName,
			ScheduledAt: scheduledAt,
			Reason:      req.Reason,
			Notes:       req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		filter := ListFilter{Limit: 50}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
				filter.Limit = n
			}
		}

		// statuses=pending,confirmed
		if v := strings.TrimSpace(r.URL.Query().Get("statuses")); v != "" {
			parts := strings.Split(v, ",")
			out := make([]Status, 0, len(parts))
			for _, p := range parts {
				st := Status(strings.TrimSpace(strings.ToLower(p)))
				if st == "" {
					continue
				}
				out = append(out, st)
			}
			if len(out) > 0 {
				filter.Statuses = out
			}
		}

		if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "from must be RFC3339", http.StatusBadRequest)
				return
			}
			filter.From = &t
		}
		if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "to must be RFC3339", http.StatusBadRequest)
				return
			}
			filter.To = &t
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), claims.UserID, chi.URLParam(r, "appointmentID"))
		if err != nil {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func transitionHandler(svc *Service, op func(*Service, context.Context, string, string) (Appointment, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		a, err := op(svc, r.Context(), claims.UserID, chi.URLParam(r, "appointmentID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrBadState):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "appointment not found", http.StatusNotFound)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		OwnerUserID: a.OwnerUserID,
		DoctorID:    a.DoctorID,
		DoctorName:  a.DoctorName,
		ScheduledAt: a.ScheduledAt,
		Reason:      a.Reason,
		Notes:       a.Notes,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
