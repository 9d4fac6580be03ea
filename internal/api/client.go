// Package api is the REST client for the CampusIntelli backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultErrorMessage is used when a failed response carries no error field.
const DefaultErrorMessage = "Request failed"

// RequestError is a non-2xx response from the backend.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// TokenSource yields the bearer token for the current session, or "" when
// there is none.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a fixed bearer token.
type StaticToken string

func (t StaticToken) Token(context.Context) string { return string(t) }

// Client calls the backend REST API.
type Client struct {
	BaseURL   string
	PublicURL string
	HTTP      *http.Client
	Tokens    TokenSource
	metrics   *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTP = h }
}

// WithTimeout bounds each request. Zero means no timeout. The transport of
// an injected client is kept.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		h := *c.HTTP
		h.Timeout = d
		c.HTTP = &h
	}
}

// WithPublicURL sets the browser-facing base used for download links.
func WithPublicURL(u string) Option {
	return func(c *Client) { c.PublicURL = strings.TrimRight(u, "/") }
}

// WithMetrics records request counts and latency.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for the API rooted at baseURL (e.g. http://backend:5000/api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.PublicURL == "" {
		c.PublicURL = c.BaseURL
	}
	return c
}

// WithTokens returns a shallow copy of c that authenticates with src.
func (c *Client) WithTokens(src TokenSource) *Client {
	cp := *c
	cp.Tokens = src
	return &cp
}

// RequestOption adjusts an outgoing request.
type RequestOption func(*http.Request)

// WithHeader sets an extra request header.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// Do sends a JSON request to endpoint and decodes the response into out.
// A nil body sends no body; a nil out discards the response.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any, opts ...RequestOption) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, endpoint, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for _, o := range opts {
		o(req)
	}
	return c.send(ctx, req, endpoint, out, DefaultErrorMessage)
}

func (c *Client) send(ctx context.Context, req *http.Request, endpoint string, out any, fallback string) error {
	if c.Tokens != nil {
		if tok := c.Tokens.Token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resource := resourceOf(endpoint)
	log := zerolog.Ctx(ctx).With().
		Str("method", req.Method).
		Str("endpoint", endpoint).
		Str("request_id", req.Header.Get("X-Request-ID")).
		Logger()

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.metrics.observe(resource, req.Method, "error", time.Since(start))
		log.Debug().Err(err).Msg("api request failed")
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.metrics.observe(resource, req.Method, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return err
	}
	log.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newRequestError(resp.StatusCode, raw, fallback)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: decode %s response: %w", endpoint, err)
	}
	return nil
}

func newRequestError(status int, raw []byte, fallback string) *RequestError {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(raw, &body)
	msg := body.Error
	if msg == "" {
		msg = fallback
	}
	return &RequestError{Status: status, Message: msg}
}

// resourceOf returns the first path segment of an endpoint, used as a metric label.
func resourceOf(endpoint string) string {
	p := strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	return p
}
