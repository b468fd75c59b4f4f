package hrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/config"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/upstream"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/metrics"
	"github.com/sony/gobreaker"
)

const maxResponseBytes = 4 << 20

var (
	ErrUnavailable       = upstream.ErrUnavailable
	ErrRequestFailed     = upstream.ErrRequestFailed
	ErrMalformedResponse = upstream.ErrMalformedResponse
)

// APIError is a non-2xx answer from the HR API. Message carries the API's
// own explanation and is safe to show to users.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HR API error [%d]: %s", e.StatusCode, e.Message)
}

func (e *APIError) UserMessage() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// Client talks to the HR REST API. Reads are retried with exponential
// backoff. Each call, retries included, counts once against a circuit
// breaker that only opens when the API host itself stops answering.
type Client struct {
	baseURL              string
	httpClient           *http.Client
	breaker              *gobreaker.CircuitBreaker
	maxRetries           int
	retryInitialInterval time.Duration
	metrics              *metrics.Metrics
}

// NewClient creates a new HR API client. m may be nil.
func NewClient(cfg config.HRAPIConfig, breakerCfg config.BreakerConfig, m *metrics.Metrics) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: cfg.Timeout}, cfg, breakerCfg, m)
}

func NewClientWithHTTP(httpClient *http.Client, cfg config.HRAPIConfig, breakerCfg config.BreakerConfig, m *metrics.Metrics) *Client {
	threshold := uint32(breakerCfg.FailureThreshold)
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "hr-api",
		MaxRequests: 1,
		Timeout:     breakerCfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("HR API circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return !hostFailure(err)
		},
	})

	return &Client{
		baseURL:              strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:           httpClient,
		breaker:              breaker,
		maxRetries:           cfg.MaxRetries,
		retryInitialInterval: cfg.RetryInitialInterval,
		metrics:              m,
	}
}

// call describes one HR API operation
type call struct {
	operation string
	method    string
	path      string
	body      any
	out       any
	// fallback is used when the error body carries no detail
	fallback string
	// rejected classifies 4xx answers other than 404
	rejected error
}

// Warmup issues a cheap read so a sleeping API host starts up. It is not
// retried.
func (c *Client) Warmup(ctx context.Context) error {
	start := time.Now()
	err := c.execute(ctx, call{operation: "warmup", method: http.MethodGet, path: "/employees"}, false)
	c.metrics.ObserveRemote("warmup", outcome(err), time.Since(start))
	return err
}

func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()
	err := c.execute(ctx, cl, cl.method == http.MethodGet)
	c.metrics.ObserveRemote(cl.operation, outcome(err), time.Since(start))
	return err
}

// execute runs one logical call through the breaker
func (c *Client) execute(ctx context.Context, cl call, retry bool) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		if retry {
			return nil, c.retry(ctx, cl)
		}
		return nil, c.roundTrip(ctx, cl)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func (c *Client) retry(ctx context.Context, cl call) error {
	b := backoff.NewExponentialBackOff()
	if c.retryInitialInterval > 0 {
		b.InitialInterval = c.retryInitialInterval
	}
	b.MaxInterval = 2 * time.Second

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)
	err := backoff.RetryNotify(func() error {
		err := c.roundTrip(ctx, cl)
		if err != nil && !retryable(ctx, err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		slog.Debug("Retrying HR API request", "operation", cl.operation, "path", cl.path, "wait", wait, "error", err)
	})

	// backoff reports a bare context error when ctx ends between attempts
	if err != nil && !errors.Is(err, ErrUnavailable) && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, cl call) error {
	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", cl.operation, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", cl.operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data, cl)
	}

	if cl.out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, cl.out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedResponse, cl.operation, err)
	}
	return nil
}

func newAPIError(status int, body []byte, cl call) *APIError {
	message := detailMessage(body)
	if message == "" {
		message = cl.fallback
	}
	if message == "" {
		message = http.StatusText(status)
	}

	apiErr := &APIError{StatusCode: status, Message: message}
	switch {
	case status == http.StatusNotFound:
		apiErr.kind = employee.ErrEmployeeNotFound
	case status == http.StatusTooManyRequests || status >= 500:
		apiErr.kind = ErrUnavailable
	case cl.rejected != nil:
		apiErr.kind = cl.rejected
	default:
		apiErr.kind = ErrRequestFailed
	}
	return apiErr
}

// detailMessage extracts {"detail": "..."} or the messages of a
// {"detail": [{"loc": [...], "msg": "..."}]} validation body.
func detailMessage(body []byte) string {
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if len(envelope.Detail) > 0 {
		var text string
		if err := json.Unmarshal(envelope.Detail, &text); err == nil {
			return strings.TrimSpace(text)
		}

		var items []struct {
			Loc []any  `json:"loc"`
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(envelope.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg == "" {
					continue
				}
				if n := len(item.Loc); n > 0 {
					msgs = append(msgs, fmt.Sprintf("%v: %s", item.Loc[n-1], item.Msg))
				} else {
					msgs = append(msgs, item.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	return strings.TrimSpace(envelope.Message)
}

func retryable(ctx context.Context, err error) bool {
	return ctx.Err() == nil && errors.Is(err, ErrUnavailable)
}

// hostFailure reports whether err means the API host did not answer: a
// transport error or a timeout. Status codes, including 5xx for a single
// resource, and canceled callers do not count.
func hostFailure(err error) bool {
	var apiErr *APIError
	return errors.Is(err, ErrUnavailable) &&
		!errors.As(err, &apiErr) &&
		!errors.Is(err, context.Canceled)
}

func outcome(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.As(err, &apiErr):
		return "rejected"
	default:
		return "error"
	}
}
