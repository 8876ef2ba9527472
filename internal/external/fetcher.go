package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"wunderground/internal/types"
)

// defaultMaxBodyBytes caps how much of a response body is decoded.
const defaultMaxBodyBytes = 8 << 20

// errorSnippetBytes is how much of a non-2xx body is kept for diagnostics.
const errorSnippetBytes = 512

// JSONFetcher performs GET requests through a BaseClient and decodes the
// body into a generic JSON tree. Numbers decode as json.Number so integer
// station ids and coordinates keep their exact text.
type JSONFetcher struct {
	base         *BaseClient
	metrics      FetchMetrics
	logger       *slog.Logger
	maxBodyBytes int64
}

// FetcherOption configures a JSONFetcher.
type FetcherOption func(*JSONFetcher)

// WithMetrics sets the metrics sink. Defaults to NoopFetchMetrics.
func WithMetrics(m FetchMetrics) FetcherOption {
	return func(f *JSONFetcher) {
		if m != nil {
			f.metrics = m
		}
	}
}

// WithFetchLogger sets the logger. Defaults to slog.Default().
func WithFetchLogger(l *slog.Logger) FetcherOption {
	return func(f *JSONFetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithMaxBodyBytes caps the decoded body size.
func WithMaxBodyBytes(n int64) FetcherOption {
	return func(f *JSONFetcher) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

// NewJSONFetcher creates a JSONFetcher over base.
func NewJSONFetcher(base *BaseClient, opts ...FetcherOption) *JSONFetcher {
	f := &JSONFetcher{
		base:         base,
		metrics:      NoopFetchMetrics{},
		logger:       slog.Default(),
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewDefaultJSONFetcher builds a fetcher with a 30s gzip-aware HTTP client,
// a single attempt per request and no metrics.
func NewDefaultJSONFetcher(logger *slog.Logger) *JSONFetcher {
	base := NewBaseClient(
		NewHTTPClient(30*time.Second),
		"wunderground",
		DefaultUserAgent,
	)
	return NewJSONFetcher(base, WithFetchLogger(logger))
}

// FetchJSON issues a GET for rawURL and decodes the body. The URL is used
// exactly as given.
func (f *JSONFetcher) FetchJSON(ctx context.Context, rawURL string) (any, error) {
	start := time.Now()
	endpoint := types.GetEndpoint(ctx)

	tree, err := f.fetch(ctx, rawURL)

	latency := time.Since(start)
	f.metrics.RecordRequest(ctx, endpoint, latency, err)
	if err != nil {
		f.logger.DebugContext(ctx, "fetch failed",
			"endpoint", endpoint,
			"code", string(types.CodeOf(err)),
			"duration_ms", latency.Milliseconds(),
		)
		return nil, err
	}

	f.logger.DebugContext(ctx, "fetch completed",
		"endpoint", endpoint,
		"duration_ms", latency.Milliseconds(),
	)
	return tree, nil
}

func (f *JSONFetcher) fetch(ctx context.Context, rawURL string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to create weather service request",
			err,
		)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// BaseClient passes 4xx (other than 429) through without error.
	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetBytes))
		return nil, types.NewAppError(
			types.ErrCodeUpstreamStatus,
			fmt.Sprintf("weather service returned %d", resp.StatusCode),
			nil,
		).WithDetails(map[string]any{
			"status": resp.StatusCode,
			"body":   string(snippet),
		})
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, f.maxBodyBytes))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamInvalidResponse,
			"failed to decode weather service response",
			err,
		)
	}
	return tree, nil
}
