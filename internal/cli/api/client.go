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

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPClient is the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client issues requests against the backend REST API rooted at <baseURL>/api.
type Client struct {
	baseURL string
	http    HTTPClient
	logger  *zap.SugaredLogger
	limiter *rate.Limiter
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRateLimit throttles outgoing requests to rps per second. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// do выполняет один запрос: JSON тело, ответ декодируется в out (если не nil).
// Любая ошибка возвращается как *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	op := method + " " + path

	endpoint := c.baseURL + "/api" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return &Error{Op: op, Detail: "encode request: " + err.Error(), Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &Error{Op: op, Detail: err.Error(), Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			err = limiterErr(ctx, err)
			return &Error{Op: op, Detail: transportDetail(ctx, err), Err: err}
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debugw("request failed", "request_id", reqID, "op", op, "error", err)
		return &Error{Op: op, Detail: transportDetail(ctx, err), Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Detail: "read response: " + err.Error(), Err: err}
	}
	c.logger.Debugw("request",
		"request_id", reqID,
		"op", op,
		"query", query.Encode(),
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Status: resp.StatusCode, Detail: decodeDetail(resp.StatusCode, data)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Detail: "decode response: " + err.Error(), Err: err}
	}
	return nil
}

// limiterErr: Wait отказывает сразу, если ожидание не уложится в дедлайн ctx,
// и эта ошибка не оборачивает context.DeadlineExceeded.
func limiterErr(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return err
}

func transportDetail(ctx context.Context, err error) string {
	if ctx.Err() == context.DeadlineExceeded || errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	if ctx.Err() == context.Canceled {
		return "request canceled"
	}
	return fmt.Sprintf("network error: %v", err)
}

func itemPath(collection string, id int64) string {
	return fmt.Sprintf("/%s/%d", collection, id)
}
