// Package api implements the HTTP client for the vehicle-service
// backend. It owns URL construction, header assembly including the
// Basic-Auth token, and normalization of every outcome into the
// Response envelope; nothing escapes this boundary as a panic or a
// raw transport error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client issues REST calls against a single backend origin. One
// instance is constructed at startup and shared by every consumer;
// concurrent Request calls are safe and are not serialized against
// each other. No retries are performed.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger

	mu    sync.RWMutex
	token string
}

// New constructs a Client for the given backend origin. timeout of
// zero leaves the transport's default behavior in place.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// SetToken caches the Basic-Auth token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the cached token.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// HasToken reports whether a token is currently cached.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// buildURL joins the base origin with the endpoint, normalizing the
// endpoint to exactly one leading slash, and appends the encoded
// query string when params are present.
func (c *Client) buildURL(endpoint string, query url.Values) string {
	endpoint = "/" + strings.TrimLeft(endpoint, "/")
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// Request performs one backend call and normalizes the outcome. body
// is JSON-serialized for POST/PUT/PATCH and ignored otherwise.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, query url.Values) Response {
	reqID := uuid.NewString()
	target := c.buildURL(endpoint, query)

	var payload io.Reader
	if body != nil && methodHasBody(method) {
		raw, err := json.Marshal(body)
		if err != nil {
			c.log.Error("failed to encode request body",
				zap.String("request_id", reqID),
				zap.String("url", target),
				zap.Error(err))
			return Response{Error: fmt.Sprintf("failed to encode request body: %v", err)}
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return Response{Error: fmt.Sprintf("invalid request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Basic "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		msg := classifyTransportError(target, err)
		c.log.Warn("request failed without a response",
			zap.String("request_id", reqID),
			zap.String("method", method),
			zap.String("url", target),
			zap.Error(err))
		return Response{Error: msg, Status: 0}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("failed to read response body",
			zap.String("request_id", reqID),
			zap.String("url", target),
			zap.Error(err))
		return Response{Error: fmt.Sprintf("failed to read response: %v", err), Status: resp.StatusCode}
	}

	out := normalize(resp.StatusCode, raw)
	if out.OK() {
		c.log.Debug("request completed",
			zap.String("request_id", reqID),
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", out.Status))
	} else {
		c.log.Warn("request returned an error",
			zap.String("request_id", reqID),
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", out.Status),
			zap.String("error", out.Error))
	}
	return out
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) Response {
	return c.Request(ctx, http.MethodGet, endpoint, nil, query)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) Response {
	return c.Request(ctx, http.MethodPost, endpoint, body, nil)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) Response {
	return c.Request(ctx, http.MethodPut, endpoint, body, nil)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) Response {
	return c.Request(ctx, http.MethodDelete, endpoint, nil, nil)
}

const errorTextLimit = 100

// normalize maps an HTTP status and raw body onto the envelope.
//
// Empty body: success statuses mirror no-content semantics; failure
// statuses still produce an error so a 4xx/5xx can never look like a
// success.
func normalize(status int, raw []byte) Response {
	ok := status >= 200 && status < 300
	text := strings.TrimSpace(string(raw))

	if text == "" {
		if ok {
			return Response{Status: status}
		}
		return Response{Status: status, Error: fmt.Sprintf("HTTP Error: %d", status)}
	}

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		// Plain-text bodies such as "Deleted" are valid success data.
		if ok {
			return Response{Status: status, Data: text}
		}
		return Response{Status: status, Error: truncate(text, errorTextLimit)}
	}

	if !ok {
		return Response{Status: status, Error: errorMessage(parsed, status)}
	}
	return Response{Status: status, Data: parsed}
}

// errorMessage pulls a failure description out of a parsed JSON error
// body, preferring "message" then "error" fields.
func errorMessage(parsed any, status int) string {
	if obj, ok := parsed.(map[string]any); ok {
		for _, key := range []string{"message", "error"} {
			if v, ok := obj[key].(string); ok && v != "" {
				return v
			}
		}
	}
	return fmt.Sprintf("HTTP Error: %d", status)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// classifyTransportError turns a no-response failure into a human
// message, calling out the unreachable-server case by URL.
func classifyTransportError(target string, err error) string {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	var netErr net.Error
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) ||
		(errors.As(err, &netErr) && netErr.Timeout()) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("Cannot reach %s: the server is down, unreachable from this network, or blocking the request", target)
	}
	return fmt.Sprintf("request failed: %v", err)
}
