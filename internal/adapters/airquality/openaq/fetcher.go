// Package openaq implementa airquality.Fetcher contra un proveedor
// HTTP de calidad de aire estilo OpenAQ. El payload se guarda opaco:
// el cache y los handlers no dependen del esquema del proveedor.
package openaq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"asthmacare/internal/platform/httpclient"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.BaseURL) != ""
}

type Fetcher struct {
	http   *httpclient.Client
	apiKey string
}

func New(cfg Config) (*Fetcher, error) {
	if !cfg.IsConfigured() {
		return nil, errors.New("openaq: base url is required")
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("openaq: %w", err)
	}
	return &Fetcher{http: hc, apiKey: cfg.APIKey}, nil
}

func (f *Fetcher) Fetch(ctx context.Context, location string) (json.RawMessage, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("openaq: empty location")
	}

	headers := map[string]string{}
	if f.apiKey != "" {
		headers["X-API-Key"] = f.apiKey
	}

	var out json.RawMessage
	path := "/v3/latest?" + url.Values{"city": {location}}.Encode()
	if err := f.http.DoJSON(ctx, http.MethodGet, path, headers, nil, &out); err != nil {
		return nil, fmt.Errorf("openaq: fetch %s: %w", location, err)
	}
	return out, nil
}
