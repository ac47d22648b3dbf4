// Package examsgate is a thin client for the external exam results
// provider. The backend forwards admin-configured requests and relays the
// provider's responses without reinterpreting their bodies.
package examsgate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client talks to the exam results provider.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Result carries the upstream status code and raw response body.
type Result struct {
	Status int
	Body   []byte
}

// New creates a client. baseURL must include the scheme.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Enabled reports whether the client is configured with an upstream.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Get performs a GET against the provider.
func (c *Client) Get(ctx context.Context, path string) (*Result, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a JSON POST against the provider.
func (c *Client) Post(ctx context.Context, path string, payload interface{}) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*Result, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("exam gateway is not configured")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exam gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read exam gateway response: %w", err)
	}

	return &Result{Status: resp.StatusCode, Body: data}, nil
}

// DecodeReportSheet normalizes a report-sheet response body. Some provider
// deployments double-encode the payload (a JSON string whose content is
// itself JSON); unwrap one level when that happens.
func DecodeReportSheet(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty report sheet response")
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, fmt.Errorf("decode report sheet wrapper: %w", err)
		}
		trimmed = bytes.TrimSpace([]byte(inner))
	}

	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("report sheet response is not valid JSON")
	}
	return json.RawMessage(trimmed), nil
}
