package gotrue

import (
	"context"
	"errors"
	"net/http"

	"asthmacare/internal/platform/httpclient"
	"asthmacare/internal/ports/auth"
)

// Verify valida el access token contra el endpoint /user del provider.
// Es un roundtrip por request; suficiente para este tamaño de servicio,
// la validación local de JWT queda para cuando haga falta.
func (c *Client) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if token == "" {
		return auth.Claims{}, errors.New("gotrue: empty token")
	}

	var out userResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/user", c.headers(token), nil, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && (httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, auth.ErrInvalidCredentials
		}
		return auth.Claims{}, err
	}
	if out.ID == "" {
		return auth.Claims{}, errors.New("gotrue: user response without id")
	}

	return auth.Claims{UserID: out.ID, Email: out.Email}, nil
}
