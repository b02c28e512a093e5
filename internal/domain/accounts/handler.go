package accounts

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"asthmacare/internal/platform/apperrors"
	"asthmacare/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", signUpHandler(svc))
		ar.Post("/signin", signInHandler(svc))
		ar.Post("/signout", signOutHandler(svc))
		ar.Post("/refresh", refreshHandler(svc))
		ar.Post("/reset-password", resetPasswordHandler(svc))
		ar.Get("/oauth/{provider}", oauthURLHandler(svc))
	})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func signUpHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.SignUp(r.Context(), auth.Credentials{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toSessionResponse(sess))
	}
}

func signInHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.SignIn(r.Context(), auth.Credentials{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

func signOutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AccessToken string `json:"access_token"`
		}
		// Body opcional: sin token igual cerramos la sesión local.
		_ = json.NewDecoder(r.Body).Decode(&req)

		if err := svc.SignOut(r.Context(), req.AccessToken); err != nil {
			writeAuthError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func refreshHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			writeAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

func resetPasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Email); err != nil {
			writeAuthError(w, err)
			return
		}

		// Respuesta uniforme: no revelamos si el email existe.
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "if the email exists, a reset link was sent",
		})
	}
}

func oauthURLHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		redirectTo := r.URL.Query().Get("redirect_to")

		url, err := svc.OAuthURL(provider, redirectTo)
		if err != nil {
			writeAuthError(w, err)
			return
		}

		http.Redirect(w, r, url, http.StatusFound)
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, auth.ErrInvalidCredentials):
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, auth.ErrUserExists):
		http.Error(w, apperrors.Message(apperrors.ErrConflict), http.StatusConflict)
	case errors.Is(err, ErrNotConfigured):
		http.Error(w, apperrors.Message(apperrors.ErrTransportFailure), http.StatusServiceUnavailable)
	default:
		http.Error(w, apperrors.Message(apperrors.ErrTransportFailure), http.StatusBadGateway)
	}
}

func toSessionResponse(s auth.Session) sessionResponse {
	return sessionResponse{
		UserID:       s.User.ID,
		Email:        s.User.Email,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
