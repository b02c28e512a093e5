package profiles

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"asthmacare/internal/middleware"
	"asthmacare/internal/platform/apperrors"

	"github.com/go-chi/chi/v5"
)

const maxAvatarBytes = 5 << 20 // 5 MiB

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/profile", func(pr chi.Router) {
		pr.Get("/", getProfileHandler(svc))
		pr.Patch("/", updateProfileHandler(svc))
		pr.Delete("/", deleteProfileHandler(svc))
		pr.Post("/avatar", uploadAvatarHandler(svc))
		pr.Get("/avatar-url", avatarURLHandler(svc))
	})
}

type profileResponse struct {
	ID             string     `json:"id"`
	OwnerUserID    string     `json:"owner_user_id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	AsthmaSeverity string     `json:"asthma_severity"`
	HasAvatar      bool       `json:"has_avatar"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type updateProfileRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	FullName       *string `json:"full_name"`
	DateOfBirth    *string `json:"date_of_birth"` // YYYY-MM-DD
	AsthmaSeverity *string `json:"asthma_severity"`
}

func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			FullName:       req.FullName,
			AsthmaSeverity: req.AsthmaSeverity,
		}
		if req.DateOfBirth != nil {
			t, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.DateOfBirth = &t
		}

		p, err := svc.Update(r.Context(), claims.UserID, in)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "profile not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func deleteProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "profile not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// uploadAvatarHandler recibe el binario crudo en el body;
// content type del header, filename por query param.
func uploadAvatarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		data, err := io.ReadAll(io.LimitReader(r.Body, maxAvatarBytes+1))
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}
		if len(data) == 0 {
			http.Error(w, "empty body", http.StatusBadRequest)
			return
		}
		if len(data) > maxAvatarBytes {
			http.Error(w, "avatar too large", http.StatusRequestEntityTooLarge)
			return
		}

		p, err := svc.UploadAvatar(
			r.Context(),
			claims.UserID,
			r.URL.Query().Get("filename"),
			r.Header.Get("Content-Type"),
			data,
		)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "profile not found", http.StatusNotFound)
				return
			}
			status := apperrors.HTTPStatus(err)
			http.Error(w, apperrors.Message(err), status)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func avatarURLHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		url, err := svc.AvatarURL(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "avatar not found", http.StatusNotFound)
				return
			}
			http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		ID:             p.ID,
		OwnerUserID:    p.OwnerUserID,
		FullName:       p.FullName,
		Email:          p.Email,
		DateOfBirth:    p.DateOfBirth,
		AsthmaSeverity: p.AsthmaSeverity,
		HasAvatar:      p.AvatarPath != "",
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
