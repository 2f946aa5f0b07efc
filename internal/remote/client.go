// Package remote talks to a morphological analysis service over HTTP.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/cours-de-latin/dupfinder"
	"go.uber.org/zap"
)

// AnalyzePath is the service endpoint that analyzes a text.
const AnalyzePath = "/api/analyze"

// maxResponseBytes bounds the size of an analysis response.
const maxResponseBytes = 64 << 20

// AnalyzeRequest is the request body of AnalyzePath.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// Entry is one interpretation on the wire.
type Entry struct {
	Form  string `json:"form"`
	Lemma string `json:"lemma"`
}

// AnalyzeResponse is the response body of AnalyzePath.
type AnalyzeResponse struct {
	Interpretations []Entry `json:"interpretations"`
}

// RetryOptions configures retries of failed calls.
type RetryOptions struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryOptions returns the retry policy used when none is set.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:      3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxElapsedTime:  10 * time.Second,
	}
}

// Client is a dupfinder.Analyzer backed by a remote service. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	retry   RetryOptions
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithRetry sets the retry policy.
func WithRetry(opts RetryOptions) Option {
	return func(cl *Client) { cl.retry = opts }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// New returns a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		retry:   DefaultRetryOptions(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze implements dupfinder.Analyzer. Transport errors and server errors
// are retried; client errors are not. Every failure wraps
// dupfinder.ErrAnalyzerUnavailable.
func (c *Client) Analyze(ctx context.Context, text string) ([]dupfinder.Interpretation, error) {
	body, err := sonic.Marshal(AnalyzeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", dupfinder.ErrAnalyzerUnavailable, err)
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(c.retry.InitialInterval),
		backoff.WithMaxInterval(c.retry.MaxInterval),
		backoff.WithMaxElapsedTime(c.retry.MaxElapsedTime),
	), c.retry.MaxRetries)

	var resp AnalyzeResponse
	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		err := c.do(ctx, body, &resp)
		if err != nil {
			c.logger.Debug("Analyzer call failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dupfinder.ErrAnalyzerUnavailable, err)
	}

	out := make([]dupfinder.Interpretation, 0, len(resp.Interpretations))
	for _, e := range resp.Interpretations {
		out = append(out, dupfinder.Interpretation{Form: e.Form, Lemma: e.Lemma})
	}
	return out, nil
}

// statusError is a non-2xx response.
type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("analyzer responded %d: %s", e.code, e.msg)
}

// do performs one call. Errors that must not be retried are wrapped with
// backoff.Permanent.
func (c *Client) do(ctx context.Context, body []byte, out *AnalyzeResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+AnalyzePath, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		serr := &statusError{code: resp.StatusCode, msg: strings.TrimSpace(string(data))}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return serr
		}
		return backoff.Permanent(serr)
	}

	if err := sonic.Unmarshal(data, out); err != nil {
		return backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// IsStatus reports whether err carries an HTTP status code equal to code.
func IsStatus(err error, code int) bool {
	var serr *statusError
	return errors.As(err, &serr) && serr.code == code
}
