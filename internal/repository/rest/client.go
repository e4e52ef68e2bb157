package rest

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

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// ClientOptions tunes the HTTP client and its circuit breaker. Zero values
// keep the defaults.
type ClientOptions struct {
	Timeout        time.Duration
	BreakerTimeout time.Duration
	TripAfter      uint32
}

// Client talks to a remote record store over JSON/HTTP. Every call goes
// through one circuit breaker so an unhealthy store fails fast.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
}

// HTTPError is a 4xx answer from the store. 5xx answers are reported as
// attendance.ErrStoreUnavailable instead.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("record store returned status %d: %s", e.StatusCode, e.Body)
}

func statusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func NewClient(baseURL string, opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}
	if opts.TripAfter == 0 {
		opts.TripAfter = 10
	}

	settings := gobreaker.Settings{
		Name:        "record-store",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if half the requests failed after at least TripAfter requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= opts.TripAfter && failureRatio >= 0.5
		},
		// Rejections such as 404 or 409 mean the store is healthy.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, attendance.ErrStoreUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: opts.Timeout,
		},
		cb: gobreaker.NewCircuitBreaker(settings),
	}
}

// do sends body as JSON and decodes the answer into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s %s: %w", attendance.ErrStoreUnavailable, method, path, err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal record store payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create record store request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", attendance.ErrStoreUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: %s %s: %w", attendance.ErrStoreUnavailable, method, path, httpErr)
		}
		return httpErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s %s: %w", attendance.ErrStoreUnavailable, method, path, err)
	}
	return nil
}

// State reports the circuit breaker state, for health checks.
func (c *Client) State() gobreaker.State {
	return c.cb.State()
}
