// Package wu is a client for the Weather Underground data service.
//
// The client turns a location query plus layered options into endpoint
// URLs, hands each URL to a Transport exactly once, and offers helpers to
// inspect the decoded responses: CheckError for the service's error
// envelope and Extract for dotted-path lookups.
//
//	c, err := wu.New(apiKey, wu.WithOptions(wu.NewOptions(wu.Pair{Key: wu.KeyLang, Value: "fr"})))
//	resp, err := c.Conditions(ctx, "CA/San Francisco", nil)
//	temp := wu.Extract(resp, "current_observation.temp_c")
//
// Client options are resolved once in New and never change afterwards;
// per-call options are merged into a fresh map for that call only. A Client
// is safe for concurrent use.
package wu

import (
	"context"
	"log/slog"
	"sync"

	"wunderground/internal/external"
	"wunderground/internal/types"
)

// Transport performs the HTTP GET for a fully built URL and decodes the
// JSON body into a generic tree of map[string]any, []any and scalars.
type Transport interface {
	FetchJSON(ctx context.Context, url string) (any, error)
}

// Client holds the API key and the resolved client options.
type Client struct {
	apiKey    types.SecretString
	options   *Options
	urls      URLBuilder
	transport Transport
	logger    *slog.Logger

	mu               sync.RWMutex
	lastAutocomplete any
}

type settings struct {
	options   *Options
	endpoints Endpoints
	transport Transport
	logger    *slog.Logger
}

// Option customizes a Client at construction time.
type Option func(*settings)

// WithOptions sets the client-level options layered over the built-in
// defaults. Later calls merge over earlier ones.
func WithOptions(opts *Options) Option {
	return func(s *settings) {
		if s.options == nil {
			s.options = NewOptions()
		}
		s.options.merge(opts)
	}
}

// WithEndpoints replaces the service base URLs.
func WithEndpoints(e Endpoints) Option {
	return func(s *settings) { s.endpoints = e }
}

// WithTransport replaces the HTTP transport.
func WithTransport(t Transport) Option {
	return func(s *settings) { s.transport = t }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// New builds a Client. A blank apiKey fails with ErrMissingKey unless the
// raiseApiError option is false, in which case URLs carry an empty key
// segment.
func New(apiKey string, opts ...Option) (*Client, error) {
	s := settings{endpoints: DefaultEndpoints()}
	for _, o := range opts {
		o(&s)
	}

	resolved := Resolve(s.options, nil)
	key := types.SecretString(apiKey)
	if key.IsBlank() && resolved.Bool(KeyRaiseAPIError) {
		return nil, types.NewAppError(types.ErrCodeMissingKey, "API Key not found!", nil)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.transport == nil {
		s.transport = external.NewDefaultJSONFetcher(s.logger)
	}

	return &Client{
		apiKey:    key,
		options:   resolved,
		urls:      NewURLBuilder(s.endpoints, apiKey),
		transport: s.transport,
		logger:    s.logger,
	}, nil
}

// APIKey returns the key the client was built with.
func (c *Client) APIKey() SecretString {
	return c.apiKey
}

// Options returns a copy of the resolved client options.
func (c *Client) Options() *Options {
	return c.options.Clone()
}

// URLs returns the builder bound to the client's endpoints and key.
func (c *Client) URLs() URLBuilder {
	return c.urls
}

// ResponseError applies CheckError with the client's raiseErrors setting.
func (c *Client) ResponseError(resp any) (string, error) {
	return CheckError(resp, c.options.Bool(KeyRaiseErrors))
}

// resolveCall merges per-call overrides over the client options into a new
// map; the client's own map is left as is.
func (c *Client) resolveCall(overrides *Options) *Options {
	if overrides.Len() == 0 {
		return c.options
	}
	return Resolve(c.options, overrides)
}

func (c *Client) fetch(ctx context.Context, endpoint, url string) (any, error) {
	ctx = types.WithEndpoint(ctx, endpoint)
	c.logger.DebugContext(ctx, "wunderground request",
		"endpoint", endpoint,
		"url", c.apiKey.Redact(url),
	)

	resp, err := c.transport.FetchJSON(ctx, url)
	if err != nil {
		c.logger.WarnContext(ctx, "wunderground request failed",
			"endpoint", endpoint,
			"error", c.apiKey.Redact(err.Error()),
		)
		return nil, err
	}
	return resp, nil
}
