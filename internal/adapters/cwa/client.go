// Package cwa is the transport client for the Central Weather Administration
// open-data API.
package cwa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/twweather/internal/domain/forecast"
)

// Default client configuration constants.
const (
	DefaultBaseURL = "https://opendata.cwa.gov.tw/api"
	ForecastPath   = "/v1/rest/datastore/F-C0032-001"

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client performs GET requests against the CWA API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// New constructs a Client with default configuration.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues GET baseURL+path?query and decodes a 2xx JSON body into out.
// Any other status yields *forecast.UpstreamError with the body untouched.
// A request that never got a response yields an UpstreamError with status 502.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &forecast.UpstreamError{
			Status:  http.StatusBadGateway,
			Message: "upstream request failed",
			Err:     err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &forecast.UpstreamError{
			Status:  http.StatusBadGateway,
			Message: "failed to read upstream response",
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newUpstreamError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}

// Forecast fetches the 36-hour forecast dataset for one locale.
func (c *Client) Forecast(ctx context.Context, apiKey, locale string) (*forecast.Response, error) {
	q := url.Values{}
	q.Set("Authorization", apiKey)
	q.Set("locationName", locale)

	var resp forecast.Response
	if err := c.Get(ctx, ForecastPath, q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// newUpstreamError keeps the body verbatim, decoding it only when it is JSON.
// A string "message" field becomes the error message.
func newUpstreamError(status int, body []byte) *forecast.UpstreamError {
	ue := &forecast.UpstreamError{Status: status}
	if len(body) == 0 {
		return ue
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		ue.Body = string(body)
		return ue
	}
	ue.Body = decoded
	if obj, ok := decoded.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok {
			ue.Message = msg
		}
	}
	return ue
}
