package fetchers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnavailable marks every fetch failure: transport errors, non-2xx
// responses, redirect loops and undecodable bodies.
var ErrUnavailable = errors.New("source unavailable")

// TextFetcher retrieves a URL as text. Implementations fail on non-2xx
// responses and on redirect loops.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// ClientOptions configures the shared HTTP client
type ClientOptions struct {
	Timeout      time.Duration
	Retries      int
	RetryWait    time.Duration
	MaxRedirects int
	UserAgent    string
}

// Client is the resty-backed TextFetcher shared by all source fetchers
type Client struct {
	client  *resty.Client
	timeout time.Duration
}

// NewClient creates the HTTP client used for every source
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 500 * time.Millisecond
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "skisnap/1.0"
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(opts.Retries)
	client.SetRetryWaitTime(opts.RetryWait)
	client.SetRetryMaxWaitTime(4 * opts.RetryWait)
	client.AddRetryCondition(func(resp *resty.Response, err error) bool {
		return resp != nil && resp.StatusCode() >= http.StatusInternalServerError
	})
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(opts.MaxRedirects))
	client.SetHeader("User-Agent", opts.UserAgent)

	return &Client{
		client:  client,
		timeout: opts.Timeout,
	}
}

// FetchText issues a GET and returns the body of a 2xx response
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %w", ErrUnavailable, url, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("%w: GET %s returned status %d", ErrUnavailable, url, resp.StatusCode())
	}
	return string(resp.Body()), nil
}
