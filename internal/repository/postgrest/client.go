// Package postgrest implements record store interfaces over a PostgREST-style
// row API (one logical table per resource, filters in the query string).
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fitconsult/fitfunnel/internal/errs"
)

// Config configures the row API client.
type Config struct {
	// ProjectURL is the API root, e.g. https://xyz.supabase.co.
	ProjectURL string
	// APIKey is sent both as the apikey header and as a bearer token.
	APIKey string
	// HTTPClient is optional; a 15s-timeout client is used when nil.
	HTTPClient *http.Client
}

// Client performs REST calls against the row store.
type Client struct {
	prefix string
	apiKey string
	http   *http.Client
}

// NewClient creates a row API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ProjectURL == "" {
		return nil, fmt.Errorf("project URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		prefix: strings.TrimRight(cfg.ProjectURL, "/") + "/rest/v1",
		apiKey: cfg.APIKey,
		http:   hc,
	}, nil
}

// request performs one call. query must already be encoded. prefer, when not
// empty, is sent as the Prefer header (upsert resolution, return shape).
func (c *Client) request(ctx context.Context, method, table, query string, body any, prefer string) ([]byte, error) {
	if table == "" {
		return nil, fmt.Errorf("table is required")
	}
	u := c.prefix + "/" + url.PathEscape(table)
	if query != "" {
		u += "?" + query
	}

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, table, errs.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, table, errs.ErrRemoteUnavailable, err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s %s: %w: status %d: %s", method, table, errs.ErrRemoteUnavailable, resp.StatusCode, truncate(data))
	}
	return data, nil
}

func truncate(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
