package jikan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Client represents a Jikan API client.
// It holds only immutable configuration and is safe for concurrent use.
type Client struct {
	baseURL        string
	transport      Transport
	parser         Parser
	suppressErrors bool
	logger         zerolog.Logger
}

// NewClient creates a new Jikan client
func NewClient(logger zerolog.Logger, opts ...Option) (*Client, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(options.baseURL), "/")
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base URL %q: %v", ErrInvalidConfig, options.baseURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q must be an absolute http(s) URL", ErrInvalidConfig, options.baseURL)
	}

	transport := options.transport
	if transport == nil {
		httpClient := options.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: options.timeout}
		}
		transport = NewHTTPTransport(httpClient, options.userAgent)
	}

	parser := options.parser
	if parser == nil {
		parser = JSONParser
	}

	return &Client{
		baseURL:        baseURL,
		transport:      transport,
		parser:         parser,
		suppressErrors: options.suppressErrors,
		logger:         logger,
	}, nil
}

// BaseURL returns the API root requests are built against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SuppressErrors reports whether request and parse failures are swallowed
func (c *Client) SuppressErrors() bool {
	return c.suppressErrors
}

// request describes one endpoint call: the checks that must pass before any I/O,
// how to build the path and query, and how to map the raw document R into T.
type request[R, T any] struct {
	name   string
	checks []error
	build  func() ([]string, *query)
	mapper func(*R) (T, error)
}

// execute runs validate, build, fetch, parse and map for a single call.
// Validation and mapping errors are always returned. Request and parse
// failures yield (nil, nil) when the client suppresses errors.
func execute[R, T any](ctx context.Context, c *Client, req request[R, T]) (*T, error) {
	if err := firstError(req.checks...); err != nil {
		return nil, err
	}

	segments, q := req.build()
	u := buildURL(c.baseURL, segments, q)

	c.logger.Debug().
		Str("endpoint", req.name).
		Str("url", u).
		Msg("Making Jikan API request")

	body, err := c.transport.Get(ctx, u)
	if err != nil {
		return nil, c.failure(ctx, req.name, asRequestError(u, err))
	}

	var raw R
	if err := c.parser.Unmarshal(body, &raw); err != nil {
		return nil, c.failure(ctx, req.name, &ParseError{URL: u, Err: err})
	}

	result, err := req.mapper(&raw)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// failure decides whether err reaches the caller.
// Cancellation is never suppressed.
func (c *Client) failure(ctx context.Context, endpoint string, err error) error {
	if ctx.Err() != nil || !c.suppressErrors {
		return err
	}
	c.logger.Warn().
		Err(err).
		Str("endpoint", endpoint).
		Msg("Suppressed Jikan API failure")
	return nil
}

// asRequestError normalizes transport errors so callers can rely on *RequestError
func asRequestError(u string, err error) error {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &RequestError{URL: u, Message: err.Error(), Err: err}
}
