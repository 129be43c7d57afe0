// Package backend is the HTTP client for the activity API that owns the
// sign-up data. The API is an external collaborator; this package only
// mirrors its three endpoints.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Activity mirrors one value of the GET /activities response object.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// APIError reports a non-2xx response from the activity API. Detail carries
// the server-provided detail string when the body was parseable, otherwise
// it is empty and callers fall back to a generic message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("activity api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("activity api: status %d: %s", e.StatusCode, e.Detail)
}

// Option configures optional behaviour for the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithLogger overrides the logger used to report request failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client issues requests against the activity API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// NewClient builds a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activities fetches the full activity map, bypassing intermediary caches.
func (c *Client) Activities(ctx context.Context) (map[string]Activity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/activities", nil)
	if err != nil {
		return nil, fmt.Errorf("build activities request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch activities: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read activities response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(body)}
	}

	var activities map[string]Activity
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, fmt.Errorf("decode activities response: %w", err)
	}
	return activities, nil
}

// Signup registers email for the named activity and returns the server's
// confirmation message.
func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	target := c.baseURL + "/activities/" + escapeSegment(activity) + "/signup?email=" + url.QueryEscape(email)
	return c.message(ctx, http.MethodPost, target)
}

// Remove withdraws email from the named activity and returns the server's
// confirmation message.
func (c *Client) Remove(ctx context.Context, activity, email string) (string, error) {
	target := c.baseURL + "/activities/" + escapeSegment(activity) + "/participants/" + escapeSegment(email)
	return c.message(ctx, http.MethodDelete, target)
}

// message performs a write request that answers {"message": ...} on success
// and {"detail": ...} on application failure. Identifiers travel in the URL;
// there is never a request body.
func (c *Client) message(ctx context.Context, method, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", method, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("%s %s failed (request %s): %v", method, req.URL.Path, requestID, err)
		return "", fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", method, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(body)}
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode %s response: %w", method, err)
	}
	return payload.Message, nil
}

func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

// escapeSegment percent-encodes a value for use as a single path segment.
// Unlike url.PathEscape it also encodes '@', so emails round-trip through
// routers that are strict about reserved characters.
func escapeSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
