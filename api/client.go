// Package api is the client for the accounting backend's REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flockbooks/flockbooks/auth"
)

const defaultTimeout = 30 * time.Second

// Client talks to the backend. HTTP is exposed so callers can wrap its
// transport.
type Client struct {
	HTTP *http.Client
	base *url.URL
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its transport is
// wrapped with the auth transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.HTTP = h
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.HTTP.Timeout = d
	}
}

// NewClient returns a client for the backend at baseURL. All resources live
// under baseURL + "/api". Every request carries the token returned by
// tokens at the time it is sent.
func NewClient(baseURL string, tokens auth.TokenProvider, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("base url is required")
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", baseURL)
	}
	u = u.JoinPath("api")

	c := &Client{
		HTTP: &http.Client{Timeout: defaultTimeout},
		base: u,
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := c.HTTP.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	c.HTTP.Transport = &authTransport{base: transport, tokens: tokens}

	return c, nil
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

type authTransport struct {
	base   http.RoundTripper
	tokens auth.TokenProvider
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil {
		return t.base.RoundTrip(req)
	}

	tok, err := t.tokens.Token(req.Context())
	if errors.Is(err, auth.ErrNoToken) {
		return t.base.RoundTrip(req)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving auth token: %w", err)
	}

	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+tok)
	return t.base.RoundTrip(req)
}

// Pagination is the page block some list endpoints return.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	Limit       int `json:"limit"`
}

// HasMore reports whether another page exists after the current one.
func (p *Pagination) HasMore() bool {
	return p != nil && p.CurrentPage < p.TotalPages
}

type envelope struct {
	Success    *bool           `json:"success"`
	Data       json.RawMessage `json:"data"`
	Trips      json.RawMessage `json:"trips"`
	Message    string          `json:"message"`
	Error      looseString     `json:"error"`
	Pagination *Pagination     `json:"pagination"`
}

func (e *envelope) payload() json.RawMessage {
	if len(e.Data) > 0 && !bytes.Equal(e.Data, []byte("null")) {
		return e.Data
	}
	return e.Trips
}

// looseString accepts a JSON string or, for servers that send an error
// object, its "message" field.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = looseString(str)
		return nil
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		*s = looseString(obj.Message)
		return nil
	}

	*s = looseString(strings.TrimSpace(string(b)))
	return nil
}

func (e *envelope) failed() bool {
	return e.Success != nil && !*e.Success
}

type request struct {
	method string
	path   []string
	query  url.Values
	body   any
}

func (c *Client) get(ctx context.Context, out any, query url.Values, path ...string) (*Pagination, error) {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, body, out any, path ...string) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: path, body: body}, out)
	return err
}

// do sends r, unwraps the envelope and decodes the payload into out.
func (c *Client) do(ctx context.Context, r request, out any) (*Pagination, error) {
	u := c.base.JoinPath(r.path...)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s body: %w", r.method, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, c.fail(req, 0, nil, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(req, resp.StatusCode, nil, fmt.Errorf("reading response: %w", err))
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		if decodeErr != nil {
			return nil, c.fail(req, resp.StatusCode, nil, nil)
		}
		return nil, c.fail(req, resp.StatusCode, &env, nil)
	}
	if decodeErr != nil {
		return nil, c.fail(req, resp.StatusCode, nil, fmt.Errorf("decoding response: %w", decodeErr))
	}
	if env.failed() {
		return nil, c.fail(req, resp.StatusCode, &env, nil)
	}

	if out != nil {
		payload := env.payload()
		if len(payload) == 0 {
			return env.Pagination, nil
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return nil, c.fail(req, resp.StatusCode, nil, fmt.Errorf("decoding %s payload: %w", u.Path, err))
		}
	}

	return env.Pagination, nil
}

func (c *Client) fail(req *http.Request, status int, env *envelope, cause error) *Error {
	e := &Error{
		Status:  status,
		Method:  req.Method,
		URL:     req.URL.String(),
		Message: errorMessage(env, cause),
		Err:     cause,
	}

	if errors.Is(cause, context.Canceled) {
		log.Debug("request canceled", "method", e.Method, "url", e.URL)
		return e
	}

	log.Error("request failed",
		"method", e.Method,
		"url", e.URL,
		"status", e.Status,
		"error", e.Message,
	)
	return e
}
