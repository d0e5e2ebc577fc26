// internal/infrastructure/supabase/client.go
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lojamaq/storefront/internal/config"
)

// Client is the handle to the remote backend. It is configured once at
// startup with the project URL and the public anon key and lives for the
// process lifetime. Retry, pooling and reconnection are left to net/http.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	log     *logrus.Logger
}

// New creates a backend client from configuration
func New(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Supabase.URL, "/"),
		anonKey: cfg.Supabase.AnonKey,
		http:    &http.Client{Timeout: cfg.Supabase.Timeout},
		log:     log,
	}
}

// Health checks connectivity against the auth health endpoint
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/auth/v1/health", nil, nil, "", nil, nil)
}

// do performs one round trip against the backend. Every request carries the
// anon key; the Authorization bearer is the user token when one is present,
// otherwise the anon key itself (the backend's row-level security decides
// what each role may see).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, headers map[string]string, token string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building backend request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	bearer := token
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading backend response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return parseError(resp.StatusCode, data)
	}

	if dest != nil && len(data) > 0 {
		if err := json.Unmarshal(data, dest); err != nil {
			return fmt.Errorf("decoding backend response: %w", err)
		}
	}

	return nil
}
