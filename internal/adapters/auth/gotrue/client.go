// Package gotrue implementa auth.Provider y auth.AuthVerifier contra un
// identity provider compatible con la API de GoTrue.
package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"asthmacare/internal/platform/httpclient"
	"asthmacare/internal/ports/auth"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.BaseURL) != ""
}

type Client struct {
	http   *httpclient.Client
	apiKey string
}

func New(cfg Config) (*Client, error) {
	if !cfg.IsConfigured() {
		return nil, errors.New("gotrue: base url is required")
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("gotrue: %w", err)
	}
	return &Client{http: hc, apiKey: cfg.APIKey}, nil
}

type sessionResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         userResponse `json:"user"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (c *Client) SignUp(ctx context.Context, creds auth.Credentials) (auth.Session, error) {
	var out sessionResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/signup", c.headers(""), map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	}, &out)
	if err != nil {
		return auth.Session{}, c.mapError(err)
	}
	return c.toSession(out), nil
}

func (c *Client) SignIn(ctx context.Context, creds auth.Credentials) (auth.Session, error) {
	var out sessionResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/token?grant_type=password", c.headers(""), map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	}, &out)
	if err != nil {
		return auth.Session{}, c.mapError(err)
	}
	return c.toSession(out), nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	err := c.http.DoJSON(ctx, http.MethodPost, "/logout", c.headers(accessToken), nil, nil)
	if err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (auth.Session, error) {
	var out sessionResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/token?grant_type=refresh_token", c.headers(""), map[string]string{
		"refresh_token": refreshToken,
	}, &out)
	if err != nil {
		return auth.Session{}, c.mapError(err)
	}
	return c.toSession(out), nil
}

func (c *Client) OAuthURL(provider, redirectTo string) (string, error) {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return "", errors.New("gotrue: provider is required")
	}
	q := url.Values{}
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return c.http.BaseURL + "/authorize?" + q.Encode(), nil
}

func (c *Client) ResetPassword(ctx context.Context, email string) error {
	err := c.http.DoJSON(ctx, http.MethodPost, "/recover", c.headers(""), map[string]string{
		"email": email,
	}, nil)
	if err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *Client) headers(accessToken string) map[string]string {
	h := map[string]string{}
	if c.apiKey != "" {
		h["apikey"] = c.apiKey
	}
	if accessToken != "" {
		h["Authorization"] = "Bearer " + accessToken
	}
	return h
}

func (c *Client) toSession(out sessionResponse) auth.Session {
	s := auth.Session{
		User: auth.User{
			ID:    out.User.ID,
			Email: out.User.Email,
		},
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}
	if out.ExpiresIn > 0 {
		s.ExpiresAt = time.Now().Add(time.Duration(out.ExpiresIn) * time.Second)
	}
	return s
}

// mapError traduce status codes a los sentinels del port.
func (c *Client) mapError(err error) error {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	switch httpErr.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return auth.ErrInvalidCredentials
	case http.StatusUnprocessableEntity, http.StatusConflict:
		return auth.ErrUserExists
	default:
		return err
	}
}
