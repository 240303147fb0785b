package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithTimeout(5 * time.Second))
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOption configures the underlying resty.Client.
type HTTPClientOption func(c *resty.Client)

// WithBaseURL sets the base URL prepended to relative request paths.
func WithBaseURL(baseURL string) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetBaseURL(baseURL)
	}
}

// WithTimeout bounds every request made by the client.
func WithTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		if timeout > 0 {
			c.SetTimeout(timeout)
		}
	}
}

// WithHeader sets a header sent with every request.
func WithHeader(key, value string) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetHeader(key, value)
	}
}

// WithRetries enables resty's retry loop for transient failures.
func WithRetries(count int, wait time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetRetryCount(count).SetRetryWaitTime(wait)
	}
}

// NewHTTPClient creates and returns a new HTTPClient instance.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	client := resty.New()
	for _, opt := range opts {
		opt(client)
	}
	return &HTTPClient{Client: client}
}
