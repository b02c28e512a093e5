package contacts

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
	r.Route("/emergency-contacts", func(cr chi.Router) {
		cr.Post("/", createContactHandler(svc))
		cr.Get("/", listContactsHandler(svc))
		cr.Get("/{contactID}", getContactHandler(svc))
		cr.Patch("/{contactID}", updateContactHandler(svc))
		cr.Delete("/{contactID}", deleteContactHandler(svc))
	})
}

type contactRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Relationship *string `json:"relationship"`
	IsPrimary    *bool   `json:"is_primary"`
}

type contactResponse struct {
	ID           string    `json:"id"`
	OwnerUserID  string    `json:"owner_user_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Relationship string    `json:"relationship,omitempty"`
	IsPrimary    bool      `json:"is_primary"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func createContactHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := CreateInput{}
		if req.Name != nil {
			in.Name = *req.Name
		}
		if req.Phone != nil {
			in.Phone = *req.Phone
		}
		if req.Relationship != nil {
			in.Relationship = *req.Relationship
		}
		if req.IsPrimary != nil {
			in.IsPrimary = *req.IsPrimary
		}

		c, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toContactResponse(c))
	}
}

func listContactsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]contactResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toContactResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getContactHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		c, err := svc.GetByID(r.Context(), claims.UserID, chi.URLParam(r, "contactID"))
		if err != nil {
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toContactResponse(c))
	}
}

func updateContactHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "contactID"), UpdateInput{
			Name:         req.Name,
			Phone:        req.Phone,
			Relationship: req.Relationship,
			IsPrimary:    req.IsPrimary,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toContactResponse(c))
	}
}

func deleteContactHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "contactID")); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toContactResponse(c EmergencyContact) contactResponse {
	return contactResponse{
		ID:           c.ID,
		OwnerUserID:  c.OwnerUserID,
		Name:         c.Name,
		Phone:        c.Phone,
		Relationship: c.Relationship,
		IsPrimary:    c.IsPrimary,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
