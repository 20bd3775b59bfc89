// Package apiclient is the authenticated HTTP client for the task API.
// It attaches the stored session token as a bearer credential when one
// is present and decodes responses into typed DTOs at the boundary.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrNetwork = errors.New("network error")
	ErrDecode  = errors.New("response decode error")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// TokenProvider supplies the current session token, or "" when logged
// out. Requests without a token go out unauthenticated and the server
// answers 401 where auth is required.
type TokenProvider func() string

// Options allows overriding client dependencies.
type Options struct {
	HTTPClient *http.Client
}

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL    *url.URL
	token      TokenProvider
	httpClient *http.Client
}

func New(baseURL string, token TokenProvider, opts Options) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	if token == nil {
		token = func() string { return "" }
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: parsed, token: token, httpClient: httpClient}, nil
}

// Tasks fetches the caller's tasks (GET /api/tasks).
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SetTaskDone updates one task's done flag (POST /api/tasks/{id}/done).
func (c *Client) SetTaskDone(ctx context.Context, taskID int64, isDone bool) error {
	path := fmt.Sprintf("/api/tasks/%d/done", taskID)
	var resp successResponse
	return c.do(ctx, http.MethodPost, path, taskDoneRequest{IsDone: isDone}, &resp)
}

// User fetches the current user's identity (GET /api/user).
func (c *Client) User(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// do performs a single request attempt. No retries: callers decide
// whether re-invoking the call is appropriate.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
