package auth

import "time"

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
}

// User es el usuario autenticado según el identity provider.
type User struct {
	ID    string
	Email string
}

// Session agrupa tokens emitidos por el provider.
type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Credentials para sign-up / sign-in con password.
type Credentials struct {
	Email    string
	Password string
}
