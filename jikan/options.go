package jikan

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the public v3 endpoint
	DefaultBaseURL = "https://api.jikan.moe/v3"
	// DefaultTimeout bounds a single request made by the default transport
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies the client to the API
	DefaultUserAgent = "jikan-go"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL        string
	timeout        time.Duration
	userAgent      string
	httpClient     *http.Client
	transport      Transport
	parser         Parser
	suppressErrors bool
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
}

// WithBaseURL points the client at another API root, e.g. a self-hosted instance.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout.
// Ignored when a custom http.Client or Transport is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithHTTPClient sets the http.Client used by the default transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithTransport replaces the HTTP transport entirely.
func WithTransport(transport Transport) Option {
	return func(o *clientOptions) {
		o.transport = transport
	}
}

// WithParser replaces the JSON decoder.
func WithParser(parser Parser) Option {
	return func(o *clientOptions) {
		o.parser = parser
	}
}

// WithSuppressErrors makes request and parse failures return a nil result
// with a nil error instead of an error. Validation errors are never suppressed.
func WithSuppressErrors(suppress bool) Option {
	return func(o *clientOptions) {
		o.suppressErrors = suppress
	}
}
