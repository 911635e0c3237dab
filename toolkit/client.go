package toolkit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// TransportError marks a request that never produced an HTTP response:
// connection failures, timeouts, cancelled contexts. The runner reports
// these as infrastructure failures, distinct from assertion mismatches.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client drives the backend under test. It is stateless apart from the base
// URL and can be shared across concurrently running suites; bearer tokens
// are passed per call so a session scopes naturally to its suite.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a client for the given base URL with the run's request
// timeout applied to every call.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Response is the decoded-on-demand result of one request.
type Response struct {
	Status  int
	Body    []byte
	Latency time.Duration
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// Map decodes the body as a generic JSON object for the matcher layer.
func (r *Response) Map() (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return nil, fmt.Errorf("response body is not a JSON object: %w", err)
	}
	return m, nil
}

// Envelope decodes the body as the uniform error envelope.
func (r *Response) Envelope() (*ErrorEnvelope, error) {
	var env ErrorEnvelope
	if err := json.Unmarshal(r.Body, &env); err != nil {
		return nil, fmt.Errorf("response body is not an error envelope: %w", err)
	}
	return &env, nil
}

// Empty reports whether the body carries no content.
func (r *Response) Empty() bool { return len(bytes.TrimSpace(r.Body)) == 0 }

// Do sends one JSON request. Content-Type is set only when a body is
// present, Authorization only when token is non-empty, so tests can exercise
// unauthenticated and malformed-auth paths by passing the zero values.
func (c *Client) Do(ctx context.Context, method, path, token string, body any) (*Response, error) {
	fullURL := c.BaseURL + path

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, fullURL, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		log.Printf("toolkit.client: request failed method=%s url=%s error=%v", method, fullURL, err)
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}
	log.Printf("toolkit.client: done method=%s path=%s status=%d latency_ms=%d", method, path, resp.StatusCode, latency.Milliseconds())

	return &Response{Status: resp.StatusCode, Body: raw, Latency: latency}, nil
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, path, token string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, token, nil)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path, token string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, token, body)
}

// Patch issues an authenticated PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path, token string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, token, body)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path, token string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, token, nil)
}

// PathID appends an id segment, escaping it so hostile ids stay one segment.
func PathID(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
