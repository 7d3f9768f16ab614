package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an HTTP client for the accounts API. Every request carries the
// gateway token and application key; mutating requests carry the session
// token in their body and read requests in the query string.
type Client struct {
	baseURL      string
	gatewayToken string
	appKey       string
	sessionID    string
	httpClient   *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, gatewayToken, appKey, sessionID string) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		gatewayToken: gatewayToken,
		appKey:       appKey,
		sessionID:    sessionID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetSession updates the client's session token
func (c *Client) SetSession(sessionID string) {
	c.sessionID = sessionID
}

// APIError represents the structured error body returned by the API
type APIError struct {
	Status int    `json:"status"`
	Field  string `json:"field"`
	Code   string `json:"error"`
	Docs   string `json:"docs"`
}

func (e *APIError) String() string {
	s := fmt.Sprintf("%s.%s (HTTP %d)", e.Field, e.Code, e.Status)
	if e.Docs != "" {
		s += " - see " + e.Docs
	}
	return s
}

// Do performs an HTTP request. body keys are merged with the session token
// when one is held.
func (c *Client) Do(method, path string, body map[string]any, result any) error {
	query := url.Values{}
	query.Set("token", c.gatewayToken)
	query.Set("app_key", c.appKey)

	var bodyReader io.Reader
	if body != nil {
		if c.sessionID != "" && body["session_id"] == nil {
			body["session_id"] = c.sessionID
		}
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	} else if c.sessionID != "" {
		query.Set("session_id", c.sessionID)
	}

	req, err := http.NewRequest(method, c.baseURL+path+"?"+query.Encode(), bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var apiErr APIError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Code != "" {
			return fmt.Errorf("%s", apiErr.String())
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(path string, result any) error {
	return c.Do(http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(path string, body map[string]any, result any) error {
	return c.Do(http.MethodPost, path, body, result)
}

// Put performs a PUT request
func (c *Client) Put(path string, body map[string]any, result any) error {
	return c.Do(http.MethodPut, path, body, result)
}

// Patch performs a PATCH request
func (c *Client) Patch(path string, body map[string]any, result any) error {
	return c.Do(http.MethodPatch, path, body, result)
}

// Delete performs a DELETE request
func (c *Client) Delete(path string, result any) error {
	return c.Do(http.MethodDelete, path, map[string]any{}, result)
}
