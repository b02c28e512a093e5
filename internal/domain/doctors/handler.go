package doctors

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
	r.Route("/doctors", func(dr chi.Router) {
		dr.Get("/", listDoctorsHandler(svc))
		dr.Put("/me", upsertDoctorHandler(svc))
		dr.Get("/me", myDoctorProfileHandler(svc))
		dr.Delete("/me", deleteDoctorHandler(svc))
		dr.Get("/{doctorID}", getDoctorHandler(svc))
	})
}

type upsertDoctorRequest struct {
	FullName   string `json:"full_name"`
	Specialty  string `json:"specialty"`
	ClinicName string `json:"clinic_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Bio        string `json:"bio"`
}

type doctorResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Specialty  string    `json:"specialty"`
	ClinicName string    `json:"clinic_name,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func upsertDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		var req upsertDoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Upsert(r.Context(), claims.UserID, UpsertInput{
			FullName:   req.FullName,
			Specialty:  req.Specialty,
			ClinicName: req.ClinicName,
			Phone:      req.Phone,
			Email:      req.Email,
			Bio:        req.Bio,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toDoctorResponse(d))
	}
}

func myDoctorProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		d, err := svc.GetByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "doctor profile not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(d))
	}
}

func deleteDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		if err := svc.DeleteByOwner(r.Context(), claims.UserID); err != nil {
			http.Error(w, "doctor profile not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listDoctorsHandler es el directorio: visible para cualquier usuario
// autenticado, sin scoping por owner.
func listDoctorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		filter := ListFilter{Specialty: r.URL.Query().Get("specialty")}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.Limit = n
			}
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]doctorResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDoctorResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "doctorID"))
		if err != nil {
			http.Error(w, "doctor profile not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(d))
	}
}

func toDoctorResponse(d DoctorProfile) doctorResponse {
	return doctorResponse{
		ID:         d.ID,
		FullName:   d.FullName,
		Specialty:  d.Specialty,
		ClinicName: d.ClinicName,
		Phone:      d.Phone,
		Email:      d.Email,
		Bio:        d.Bio,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
