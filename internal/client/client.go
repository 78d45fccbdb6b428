// Package client calls the course API through the shared route table and caches its reads.
//
// Reads are cached under their route path and parameters until a write that affects them
// succeeds. Concurrent identical reads share one request. Failures are returned as
// *RequestError and are never retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coursebook/backend/internal/contract"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Client is a caching API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	cache      *queryCache
	group      singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API served at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     zap.NewNop(),
		cache:      newQueryCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// response is a decoded API answer
type response struct {
	status int
	body   any
}

// call sends one request for route and decodes the answer with the type the route declares for its status.
// Any failure is returned as *RequestError.
func (c *Client) call(ctx context.Context, action string, route contract.Route, params map[string]any, in any) (*response, error) {
	path, err := route.URL(params)
	if err != nil {
		return nil, &RequestError{Action: action, Err: err}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, &RequestError{Action: action, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, route.Method, c.baseURL+path, body)
	if err != nil {
		return nil, &RequestError{Action: action, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("route", route.Name), zap.Error(err))
		return nil, &RequestError{Action: action, Err: err}
	}
	defer resp.Body.Close()

	decoded, err := route.DecodeResponse(resp.StatusCode, resp.Body)
	if err != nil {
		c.logger.Warn("unexpected response",
			zap.String("route", route.Name),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", resp.Header.Get("X-Request-ID")),
			zap.Error(err),
		)
		return nil, &RequestError{Action: action, Status: resp.StatusCode, Err: err}
	}

	return &response{status: resp.StatusCode, body: decoded}, nil
}

// failure builds the error for a declared but unsuccessful status
func failure(action string, resp *response) *RequestError {
	e := &RequestError{Action: action, Status: resp.status}
	switch body := resp.body.(type) {
	case *contract.ErrorResponse:
		e.Message = body.Message
	case *contract.ValidationErrorResponse:
		e.Message = body.Message
		e.Field = body.Field
	}
	e.Err = errors.New(http.StatusText(resp.status))
	return e
}

// validateInput applies defaults and checks the input the same way the server does
func validateInput(action string, in contract.Input) error {
	in.ApplyDefaults()
	if err := contract.Validate(in); err != nil {
		e := &RequestError{Action: action, Err: err}
		var validationErr *contract.ValidationError
		if errors.As(err, &validationErr) {
			e.Message = validationErr.Message
			e.Field = validationErr.Field
		}
		return e
	}
	return nil
}

// query serves key from the cache or runs fetch once for all concurrent callers.
// A shared fetch runs with the context of the caller that started it.
func query[T any](c *Client, ctx context.Context, key queryKey, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := c.cache.get(key); ok {
		c.logger.Debug("cache hit", zap.Strings("key", key))
		return v.(T), nil
	}

	gen := c.cache.currentGeneration()
	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		result, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.cache.set(key, result, gen)
		return result, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *Client) invalidate(prefixes ...queryKey) {
	removed := c.cache.invalidate(prefixes...)
	c.logger.Debug("cache invalidated", zap.Int("entries", removed))
}
