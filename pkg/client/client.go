package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"nakula/internal/circuitbreaker"
	"nakula/internal/keyring"
	"nakula/internal/metrics"
	"nakula/internal/transport"
	"nakula/pkg/canonical"
	"nakula/pkg/core"
	"nakula/pkg/protocol"
)

// Client is the facade over the signing pipeline. It owns the
// configuration and credentials and, per call, copies the caller's
// parameters, injects api_key and request_timestamp, canonicalizes,
// signs, sends, and normalizes the outcome into a core.Envelope.
//
// A Client is immutable after construction and safe for any number of
// concurrent calls; per-call state is never shared.
type Client struct {
	config     *core.Config
	baseURL    string
	transport  *transport.Client
	normalizer *protocol.Normalizer
	breaker    *circuitbreaker.Breaker
	ring       *keyring.Ring
	collector  *metrics.Collector
	logger     zerolog.Logger
	now        func() time.Time
}

// Option configures optional facade collaborators.
type Option func(*options)

type options struct {
	logger    zerolog.Logger
	ring      *keyring.Ring
	collector *metrics.Collector
}

// WithLogger sets the logger used for request/response events. The
// default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithKeyRing sets a credential ring; when present it supplies the key
// pair for each call instead of the config credentials.
func WithKeyRing(r *keyring.Ring) Option {
	return func(o *options) {
		o.ring = r
	}
}

// WithMetrics sets a Prometheus collector for call outcomes.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) {
		o.collector = c
	}
}

// New validates the config and builds a client. Missing credentials or
// base URL fail here, loudly, since they indicate a programmer error
// rather than a runtime condition.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, core.ErrNilConfig
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	var breaker *circuitbreaker.Breaker
	if config.CircuitBreakerEnabled {
		breaker = circuitbreaker.New(circuitbreaker.Config{
			FailThreshold:    config.CircuitBreakerFailThreshold,
			SuccessThreshold: config.CircuitBreakerSuccessThreshold,
			Timeout:          config.CircuitBreakerTimeout,
		})
	}

	return &Client{
		config:     config,
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		transport:  transport.New(config, o.logger),
		normalizer: protocol.NewNormalizer(config.SuccessField),
		breaker:    breaker,
		ring:       o.ring,
		collector:  o.collector,
		logger:     o.logger,
		now:        time.Now,
	}, nil
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	return c.transport.Close()
}

// Get issues an asynchronous signed GET. The caller's parameters are
// copied before Get returns; cancelling ctx aborts the in-flight
// exchange and resolves the future with an error envelope.
func (c *Client) Get(ctx context.Context, endpoint string, params core.Params) *Future {
	return c.async(ctx, http.MethodGet, endpoint, params)
}

// Post issues an asynchronous signed POST with the canonical query as
// the form body. Copy and cancellation semantics match Get.
func (c *Client) Post(ctx context.Context, endpoint string, params core.Params) *Future {
	return c.async(ctx, http.MethodPost, endpoint, params)
}

// Do runs one signed call synchronously. It always returns an
// envelope; no failure mode escapes as an error.
func (c *Client) Do(ctx context.Context, method, endpoint string, params core.Params) core.Envelope {
	return c.run(ctx, method, endpoint, canonical.FromParams(params))
}

func (c *Client) async(ctx context.Context, method, endpoint string, params core.Params) *Future {
	// Copy before returning so later caller mutations cannot race the
	// pipeline goroutine.
	tree := canonical.FromParams(params)

	f := &Future{done: make(chan struct{})}
	go func() {
		f.env = c.run(ctx, method, endpoint, tree)
		close(f.done)
	}()
	return f
}

func (c *Client) run(ctx context.Context, method, endpoint string, tree canonical.Node) core.Envelope {
	started := c.now()
	env := c.call(ctx, method, endpoint, tree)

	c.collector.RecordOutcome(method, env, time.Since(started))
	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Bool("ok", env.OK).
		Int("status", env.StatusCode).
		Str("error_id", env.ErrorID).
		Msg("call completed")

	return env
}

func (c *Client) call(ctx context.Context, method, endpoint string, tree canonical.Node) core.Envelope {
	creds, err := c.credentials()
	if err != nil {
		// A ring with no usable key is a local refusal, surfaced
		// through the same verb-keyed envelope as any other
		// unclassified transport fault.
		return core.Fail(0, protocol.TransportErrorID(method))
	}

	req := protocol.Build(endpoint, tree, creds, c.now().Unix())

	if c.breaker != nil && !c.breaker.Allow() {
		return core.Fail(0, protocol.TransportErrorID(method))
	}

	var res *transport.Result
	var terr error
	switch method {
	case http.MethodGet:
		res, terr = c.transport.Get(ctx, c.baseURL+req.Path+"?"+req.Query)
	case http.MethodPost:
		res, terr = c.transport.Post(ctx, c.baseURL+req.Path, req.Query)
	default:
		return core.Fail(0, protocol.TransportErrorID(method))
	}

	if c.breaker != nil {
		c.breaker.Record(terr == nil)
	}
	if c.ring != nil && terr != nil {
		c.ring.OnError()
	}

	return c.normalizer.Normalize(method, res, terr)
}

func (c *Client) credentials() (core.Credentials, error) {
	if c.ring != nil {
		cred := c.ring.Current()
		if cred == nil {
			return core.Credentials{}, core.ErrNoAPIKey
		}
		return core.Credentials{APIKey: cred.Key, SecretKey: cred.Secret}, nil
	}
	return *c.config.Credentials, nil
}
