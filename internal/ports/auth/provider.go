package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// Provider es el identity provider externo (password + OAuth).
// El servicio no guarda passwords; todo se delega aquí.
type Provider interface {
	SignUp(ctx context.Context, creds Credentials) (Session, error)
	SignIn(ctx context.Context, creds Credentials) (Session, error)
	SignOut(ctx context.Context, accessToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (Session, error)

	// OAuthURL devuelve la URL de autorización para el provider dado
	// (google, apple, etc) con redirectTo como callback.
	OAuthURL(provider, redirectTo string) (string, error)

	// ResetPassword dispara el mail de recuperación. No revela si el
	// email existe o no.
	ResetPassword(ctx context.Context, email string) error
}
