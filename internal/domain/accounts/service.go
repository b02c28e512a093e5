package accounts

import (
	"context"
	"errors"
	"strings"

	"asthmacare/internal/platform/apperrors"
	"asthmacare/internal/platform/logger"
	"asthmacare/internal/ports/auth"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotConfigured = errors.New("auth provider not configured")
)

// ProfileCreator crea el profile row que acompaña a todo sign-up.
// En runtime lo implementa el service de profiles.
type ProfileCreator interface {
	EnsureProfile(ctx context.Context, userID, email string) error
}

type Service struct {
	provider auth.Provider
	profiles ProfileCreator
	sessions *Sessions
	log      logger.Logger
}

func NewService(provider auth.Provider, profiles ProfileCreator, sessions *Sessions, log logger.Logger) *Service {
	return &Service{
		provider: provider,
		profiles: profiles,
		sessions: sessions,
		log:      log,
	}
}

func (s *Service) Sessions() *Sessions {
	return s.sessions
}

// SignUp delega en el provider y además intenta crear el profile.
// Un fallo al crear profile (salvo duplicado) se loguea pero no falla
// el sign-up: el usuario ya existe en el identity provider.
func (s *Service) SignUp(ctx context.Context, creds auth.Credentials) (auth.Session, error) {
	if err := validateCreds(creds); err != nil {
		return auth.Session{}, err
	}
	if s.provider == nil {
		return auth.Session{}, ErrNotConfigured
	}

	sess, err := s.provider.SignUp(ctx, creds)
	if err != nil {
		return auth.Session{}, err
	}

	s.sessions.Set(&sess.User, EventSignedIn)

	if s.profiles != nil {
		if err := s.profiles.EnsureProfile(ctx, sess.User.ID, sess.User.Email); err != nil {
			if !errors.Is(err, apperrors.ErrConflict) {
				s.log.Error("accounts: profile creation failed after sign-up", map[string]any{
					"user": sess.User.ID,
					"err":  err.Error(),
				})
			}
		}
	}

	return sess, nil
}

func (s *Service) SignIn(ctx context.Context, creds auth.Credentials) (auth.Session, error) {
	if err := validateCreds(creds); err != nil {
		return auth.Session{}, err
	}
	if s.provider == nil {
		return auth.Session{}, ErrNotConfigured
	}

	sess, err := s.provider.SignIn(ctx, creds)
	if err != nil {
		return auth.Session{}, err
	}

	s.sessions.Set(&sess.User, EventSignedIn)
	return sess, nil
}

func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	if s.provider == nil {
		return ErrNotConfigured
	}

	// Aunque el provider falle, localmente la sesión se cierra.
	err := s.provider.SignOut(ctx, accessToken)
	if err != nil {
		s.log.Warn("accounts: provider sign-out failed", map[string]any{
			"err": err.Error(),
		})
	}

	s.sessions.Set(nil, EventSignedOut)
	return nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return auth.Session{}, ErrInvalidInput
	}
	if s.provider == nil {
		return auth.Session{}, ErrNotConfigured
	}

	sess, err := s.provider.RefreshToken(ctx, refreshToken)
	if err != nil {
		return auth.Session{}, err
	}

	s.sessions.Set(&sess.User, EventTokenRefreshed)
	return sess, nil
}

func (s *Service) OAuthURL(provider, redirectTo string) (string, error) {
	if strings.TrimSpace(provider) == "" {
		return "", ErrInvalidInput
	}
	if s.provider == nil {
		return "", ErrNotConfigured
	}
	return s.provider.OAuthURL(provider, redirectTo)
}

func (s *Service) ResetPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidInput
	}
	if s.provider == nil {
		return ErrNotConfigured
	}
	return s.provider.ResetPassword(ctx, email)
}

func validateCreds(creds auth.Credentials) error {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return ErrInvalidInput
	}
	return nil
}
