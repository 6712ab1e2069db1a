// Package client provides an HTTP client for the Ledgerline pipeline API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIKeyHeader carries the pipeline API key.
const APIKeyHeader = "X-API-Key"

// RealizeResult is the outcome of a realization run reported by the API.
type RealizeResult struct {
	Templates int    `json:"templates"`
	Created   int    `json:"created"`
	Today     string `json:"-"`
}

// SnapshotResult is the outcome of a snapshot run reported by the API.
type SnapshotResult struct {
	SnapshotsRecorded int    `json:"snapshots_recorded"`
	RecordedAt        string `json:"recorded_at"`
}

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: unexpected status %d (%s: %s)", e.Op, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

// Client communicates with the Ledgerline pipeline API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new pipeline API client.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// RealizeDue realizes every active template of every user up to today.
// An empty today lets the server use its own date.
func (c *Client) RealizeDue(ctx context.Context, today string) (*RealizeResult, error) {
	var body any
	if today != "" {
		body = struct {
			Today string `json:"today"`
		}{Today: today}
	}

	var result struct {
		Result RealizeResult `json:"result"`
		Today  string        `json:"today"`
	}
	if err := c.post(ctx, "realizing templates", "/api/v1/pipeline/realize", body, &result); err != nil {
		return nil, err
	}
	result.Result.Today = result.Today
	return &result.Result, nil
}

// ComputeSnapshots records a net worth snapshot for every user on recordedAt.
// An empty recordedAt lets the server use its own date.
func (c *Client) ComputeSnapshots(ctx context.Context, recordedAt string) (*SnapshotResult, error) {
	var body any
	if recordedAt != "" {
		body = struct {
			RecordedAt string `json:"recorded_at"`
		}{RecordedAt: recordedAt}
	}

	var result SnapshotResult
	if err := c.post(ctx, "computing snapshots", "/api/v1/pipeline/snapshots", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshaling request: %w", op, err)
		}
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(APIKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{Op: op, StatusCode: resp.StatusCode}
		var apiErr struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil {
			statusErr.Code = apiErr.Error.Code
			statusErr.Message = apiErr.Error.Message
		}
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}
