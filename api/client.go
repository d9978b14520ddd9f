// Package api is the portal's gateway to the Aletheia backend. Every call goes
// through Client.Request, which attaches the bearer token, encodes JSON and
// turns error responses into *Error values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/aletheia/portal/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ErrUnauthenticated is returned, without any network call, when an
// authenticated request is made and no token is available.
var ErrUnauthenticated = errors.New("Not authenticated")

// FallbackMessage is used when an error response carries no "error" field.
const FallbackMessage = "Request failed"

// Error is a non-2xx backend response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Credentials supplies the bearer token for authenticated calls.
type Credentials interface {
	// Token returns the current token, or false when there is none.
	Token(ctx context.Context) (string, bool)
	// Unauthenticated is called when a token is missing or the backend rejected it.
	// Implementations clear the session and send the user to the login screen.
	Unauthenticated(ctx context.Context)
}

// Client issues backend requests. A Client without credentials can only make
// unauthenticated calls; use WithCredentials to bind one to a session.
type Client struct {
	baseURL  string
	http     *http.Client
	creds    Credentials
	log      zerolog.Logger
	validate *validator.Validate
}

type Option func(*Client)

// WithHTTPClient replaces the default client (15s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for baseURL, e.g. "https://aletheia.ng/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		log:      zerolog.Nop(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the URL every path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithCredentials returns a copy of c that authenticates with creds.
func (c *Client) WithCredentials(creds Credentials) *Client {
	cp := *c
	cp.creds = creds
	return &cp
}

// Request sends method path with body JSON-encoded when non-nil and returns the
// response body unchanged.
func (c *Client) Request(ctx context.Context, method, path string, body any, requiresAuth bool) (json.RawMessage, error) {
	return c.do(ctx, "request", method, path, body, requiresAuth)
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, body any, requiresAuth bool) (json.RawMessage, error) {
	var token string
	if requiresAuth {
		var ok bool
		if c.creds != nil {
			token, ok = c.creds.Token(ctx)
		}
		if !ok || token == "" {
			if c.creds != nil {
				c.creds.Unauthenticated(ctx)
			}
			metrics.APIRequestsTotal.WithLabelValues(method, endpoint, "unauthenticated").Inc()
			return nil, ErrUnauthenticated
		}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s body: %w", endpoint, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if requiresAuth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.APIRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, endpoint, "error").Inc()
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	metrics.APIRequestsTotal.WithLabelValues(method, endpoint, metrics.StatusClass(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", endpoint, err)
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("api request")

	var parsed struct {
		Error string `json:"error"`
	}
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := parsed.Error
		if decodeErr != nil || msg == "" {
			msg = FallbackMessage
		}
		if resp.StatusCode == http.StatusUnauthorized && requiresAuth && c.creds != nil {
			c.creds.Unauthenticated(ctx)
		}
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		var typeErr *json.UnmarshalTypeError
		// a non-object body (e.g. a bare array) is still valid JSON
		if !errors.As(decodeErr, &typeErr) {
			return nil, fmt.Errorf("decoding %s response: %w", endpoint, decodeErr)
		}
	}
	return json.RawMessage(raw), nil
}

// envelope is the backend's {success, data, error, message} wrapper.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// decodeInto unwraps the envelope when present and validates the result.
func decodeInto[T any](c *Client, endpoint string, raw json.RawMessage) (T, error) {
	var out T
	payload := []byte(raw)
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil {
		payload = env.Data
	}
	if len(payload) == 0 || string(payload) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("decoding %s result: %w", endpoint, err)
	}
	if err := c.check(out); err != nil {
		return out, fmt.Errorf("validating %s result: %w", endpoint, err)
	}
	return out, nil
}

// check validates a struct, or each struct in a slice.
func (c *Client) check(v any) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct:
		return c.validate.Struct(v)
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			if rv.Index(i).Kind() != reflect.Struct {
				return nil
			}
			if err := c.validate.Struct(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func call[T any](ctx context.Context, c *Client, endpoint, method, path string, body any, requiresAuth bool) (T, error) {
	raw, err := c.do(ctx, endpoint, method, path, body, requiresAuth)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeInto[T](c, endpoint, raw)
}
