// Package external is the HTTP edge of the client. Every outbound call goes
// through BaseClient: circuit breaking, request-id propagation and mapping
// of transport failures onto types.AppError. Each request is sent once.
package external

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"wunderground/internal/types"

	"github.com/sony/gobreaker/v2"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "wunderground-go/1.0"

// BaseClient wraps an *http.Client and a circuit breaker.
type BaseClient struct {
	client           *http.Client
	breaker          *gobreaker.CircuitBreaker[*http.Response]
	userAgent        string
	failureThreshold uint32
}

// BaseClientOption is a functional option for configuring a BaseClient.
type BaseClientOption func(*BaseClient)

// WithFailureThreshold sets how many consecutive failures open the breaker.
func WithFailureThreshold(n uint32) BaseClientOption {
	return func(c *BaseClient) {
		if n > 0 {
			c.failureThreshold = n
		}
	}
}

// NewBaseClient creates a BaseClient with the given http client, circuit
// breaker name and user agent string.
func NewBaseClient(
	httpClient *http.Client,
	breakerName string,
	userAgent string,
	opts ...BaseClientOption,
) *BaseClient {
	bc := &BaseClient{
		client:           httpClient,
		userAgent:        userAgent,
		failureThreshold: 5,
	}

	for _, opt := range opts {
		opt(bc)
	}

	threshold := bc.failureThreshold
	bc.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})

	return bc
}

// Do sends req exactly once through the circuit breaker, after setting
// X-Request-Id (from the context) and User-Agent.
//
// 2xx/3xx/4xx other than 429 are returned as-is and the caller closes the
// body. 5xx, 429, network failures and an open breaker return a
// types.AppError.
func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	if id := types.GetRequestID(req.Context()); id != "" {
		req.Header.Set("X-Request-Id", id)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		r, doErr := c.client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		if r.StatusCode >= 500 {
			return r, fmt.Errorf("upstream returned %d", r.StatusCode)
		}
		if r.StatusCode == http.StatusTooManyRequests {
			return r, fmt.Errorf("upstream returned 429")
		}
		return r, nil
	})
	if err == nil {
		return resp, nil
	}

	if resp != nil {
		resp.Body.Close()
	}
	return nil, c.mapError(resp, err)
}

// mapError translates HTTP-level failures into AppErrors.
func (c *BaseClient) mapError(resp *http.Response, err error) *types.AppError {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return types.NewAppError(
			types.ErrCodeUpstreamUnavailable,
			"circuit breaker is open; weather service unavailable",
			err,
		)
	}

	if resp != nil {
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return types.NewAppError(
				types.ErrCodeUpstreamRateLimited,
				"weather service rate limit exceeded",
				err,
			)
		case resp.StatusCode >= 500:
			return types.NewAppError(
				types.ErrCodeUpstreamUnavailable,
				fmt.Sprintf("weather service returned %d", resp.StatusCode),
				err,
			).WithDetails(map[string]any{"status": resp.StatusCode})
		}
	}

	// Network error, DNS failure, timeout.
	return types.NewAppError(
		types.ErrCodeUpstreamUnavailable,
		"weather service request failed",
		err,
	)
}
