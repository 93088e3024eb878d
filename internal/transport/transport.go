// Package transport issues single HTTP exchanges for the client
// facade. It does not retry, and it treats non-2xx statuses as normal,
// inspectable results rather than errors.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"nakula/pkg/core"
)

const formContentType = "application/x-www-form-urlencoded"

// Result is a completed HTTP exchange.
type Result struct {
	// StatusCode is whatever the server answered, 2xx or not.
	StatusCode int
	// Body contains the raw response body bytes.
	Body []byte
}

// Client wraps a resty HTTP client configured with the fixed headers
// and the independent connect and overall timeouts.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

// New creates a transport client from the given config. Retries are
// disabled; every call maps to exactly one exchange.
func New(config *core.Config, logger zerolog.Logger) *Client {
	client := resty.New()
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(0)
	client.SetHeader("User-Agent", config.UserAgent)
	client.SetHeader("Content-Type", formContentType)
	client.SetTransport(&http.Transport{
		DialContext: (&net.Dialer{
			Timeout: config.ConnectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: config.ConnectTimeout,
	})

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})

	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Msg("http response")
		return nil
	})

	return &Client{
		http:   client,
		logger: logger,
	}
}

// Close releases the underlying connections.
func (c *Client) Close() error {
	return c.http.Close()
}

// Get issues one GET to the fully composed URL (canonical query and
// signature already attached).
func (c *Client) Get(ctx context.Context, url string) (*Result, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	return &Result{StatusCode: resp.StatusCode(), Body: resp.Bytes()}, nil
}

// Post issues one POST with the signed canonical query as the form
// body.
func (c *Client) Post(ctx context.Context, url, body string) (*Result, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", formContentType).
		SetBody(body).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}
	return &Result{StatusCode: resp.StatusCode(), Body: resp.Bytes()}, nil
}

// IsConnectFailure reports whether err means the connection could not
// be established: a dial-phase failure (refused, unreachable, DNS) or
// a timeout that fired before a response was received. Cancellation
// and mid-exchange faults are not connect failures.
func IsConnectFailure(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
