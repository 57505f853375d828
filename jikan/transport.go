package jikan

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/transport.go -package=mocks github.com/s0up4200/jikan/jikan Transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Transport fetches the raw body behind an absolute URL.
// Implementations report failures as *RequestError where possible.
type Transport interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// HTTPTransport is the default Transport backed by net/http
type HTTPTransport struct {
	client    *http.Client
	userAgent string
}

// NewHTTPTransport creates a transport using client, or a fresh one when client is nil
func NewHTTPTransport(client *http.Client, userAgent string) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPTransport{client: client, userAgent: userAgent}
}

// Get performs a GET request and returns the body of a 200 response
func (t *HTTPTransport) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RequestError{URL: url, Message: "failed to create request", Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &RequestError{URL: url, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{URL: url, StatusCode: resp.StatusCode, Message: "failed to read response body", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
			Body:       string(body),
		}
	}

	return body, nil
}

// errorMessage extracts the server's own message when the body is a Jikan error document
func errorMessage(status int, body []byte) string {
	var doc struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &doc); err == nil {
		if msg := strings.TrimSpace(doc.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(doc.Error); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("unexpected status %s", http.StatusText(status))
}
