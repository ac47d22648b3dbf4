// Package resultchecker implements the public result-checker flow against
// the backend proxy: validate a student, pick a session and term, verify a
// scratch-card pin, and retrieve the report sheet.
package resultchecker

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

// Session is an academic session offered by the school.
type Session struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Term is a term within a session.
type Term struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client calls the backend's result-checker proxy endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

// ValidateStudent resolves a registration number to the student record and
// owning school id.
func (c *Client) ValidateStudent(ctx context.Context, regNumber string) (*StudentInfo, error) {
	raw, err := c.post(ctx, "/api/result-checker/validate-student", map[string]string{
		"regNumber": regNumber,
	})
	if err != nil {
		return nil, err
	}
	return NormalizeStudent(raw)
}

// Sessions lists the academic sessions for a school.
func (c *Client) Sessions(ctx context.Context, schoolID string) ([]Session, error) {
	raw, err := c.get(ctx, "/api/result-checker/sessions/"+schoolID)
	if err != nil {
		return nil, err
	}
	var sessions []Session
	if err := json.Unmarshal(raw, &sessions); err != nil {
		var wrapped struct {
			Data []Session `json:"data"`
		}
		if err2 := json.Unmarshal(raw, &wrapped); err2 != nil {
			return nil, fmt.Errorf("decode sessions: %w", err)
		}
		sessions = wrapped.Data
	}
	return sessions, nil
}

// Terms lists the terms within a session.
func (c *Client) Terms(ctx context.Context, sessionID string) ([]Term, error) {
	raw, err := c.get(ctx, "/api/result-checker/terms/"+sessionID)
	if err != nil {
		return nil, err
	}
	var terms []Term
	if err := json.Unmarshal(raw, &terms); err != nil {
		var wrapped struct {
			Data []Term `json:"data"`
		}
		if err2 := json.Unmarshal(raw, &wrapped); err2 != nil {
			return nil, fmt.Errorf("decode terms: %w", err)
		}
		terms = wrapped.Data
	}
	return terms, nil
}

// VerifyInput is the scratch-card verification request.
type VerifyInput struct {
	Token    string `json:"token"`
	Pin      string `json:"pin"`
	Serial   string `json:"serial"`
	TermID   string `json:"termId"`
	Session  string `json:"sessionId"`
	RegNum   string `json:"regNumber"`
	SchoolID string `json:"schoolId,omitempty"`
}

// Verify checks the scratch card and returns the access token for the
// report sheet.
func (c *Client) Verify(ctx context.Context, input VerifyInput) (string, error) {
	raw, err := c.post(ctx, "/api/result-checker/verify", input)
	if err != nil {
		return "", err
	}
	return NormalizeToken(raw)
}

// ReportSheet fetches and normalizes the student's report.
func (c *Client) ReportSheet(ctx context.Context, token, termID string) (*Report, error) {
	raw, err := c.post(ctx, "/api/result-checker/report-sheet", map[string]string{
		"token":  token,
		"termId": termID,
	})
	if err != nil {
		return nil, err
	}
	return NormalizeReport(raw)
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, body)
	}
	return json.RawMessage(body), nil
}

func apiError(status int, body []byte) error {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		if envelope.Error != "" {
			return fmt.Errorf("%s", envelope.Error)
		}
		if envelope.Message != "" {
			return fmt.Errorf("%s", envelope.Message)
		}
	}
	return fmt.Errorf("request failed with status %d", status)
}
