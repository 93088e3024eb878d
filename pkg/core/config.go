package core

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Credentials holds the API key pair used to authenticate requests.
type Credentials struct {
	// APIKey is the public key identifier attached to every request.
	APIKey string `json:"api_key" validate:"required"`
	// SecretKey is the shared secret used for signing. It is kept in
	// memory only and never logged or serialized.
	SecretKey string `json:"-" validate:"required"`
}

// Params is a caller-supplied parameter structure. Values may be
// scalars, nested map[string]any mappings, []any sequences, or
// pre-built canonical nodes.
type Params map[string]any

// Config contains all configuration options for a client.
// It is immutable after the client is constructed; a single Config is
// safely shared by any number of concurrent calls.
type Config struct {
	// BaseURL is the API root. A trailing slash is stripped at
	// construction time.
	BaseURL     string       `json:"base_url" validate:"required,url"`
	Credentials *Credentials `json:"credentials" validate:"required"`

	// Timeout bounds the whole exchange; ConnectTimeout bounds
	// connection establishment. Both default to 10s and are settable
	// independently.
	Timeout        time.Duration `json:"timeout" validate:"min=1ms"`
	ConnectTimeout time.Duration `json:"connect_timeout" validate:"min=1ms"`

	UserAgent string `json:"user_agent" validate:"required"`

	// SuccessField is the top-level field whose presence in a decoded
	// response body marks it as an API-originated success payload.
	SuccessField string `json:"success_field" validate:"required"`

	CircuitBreakerEnabled          bool          `json:"circuit_breaker_enabled"`
	CircuitBreakerFailThreshold    int           `json:"circuit_breaker_fail_threshold"`
	CircuitBreakerSuccessThreshold int           `json:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `json:"circuit_breaker_timeout"`
}

// NewConfig returns a Config for the given credentials and base URL,
// initialized with defaults: 10s timeout and connect timeout, the
// library User-Agent, "success" as the success marker field, and the
// circuit breaker disabled.
func NewConfig(apiKey, apiSecret, baseURL string) *Config {
	return &Config{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Credentials: &Credentials{
			APIKey:    apiKey,
			SecretKey: apiSecret,
		},
		Timeout:        10 * time.Second,
		ConnectTimeout: 10 * time.Second,
		UserAgent:      DefaultUserAgent,
		SuccessField:   "success",

		CircuitBreakerFailThreshold:    5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,
	}
}

var validate = validator.New()

// Validate reports whether the config can construct a working client.
// Missing credentials or base URL indicate a programmer error and fail
// loudly here rather than at call time.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.CircuitBreakerEnabled {
		if c.CircuitBreakerFailThreshold <= 0 {
			return errors.New("CircuitBreakerFailThreshold must be positive when enabled")
		}
		if c.CircuitBreakerSuccessThreshold <= 0 {
			return errors.New("CircuitBreakerSuccessThreshold must be positive when enabled")
		}
		if c.CircuitBreakerTimeout <= 0 {
			return errors.New("CircuitBreakerTimeout must be positive when enabled")
		}
	}
	return nil
}

// WithTimeout sets the overall request timeout and returns the config
// for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithConnectTimeout sets the connection-establishment timeout and
// returns the config for chaining.
func (c *Config) WithConnectTimeout(timeout time.Duration) *Config {
	c.ConnectTimeout = timeout
	return c
}

// WithUserAgent sets the User-Agent header value and returns the
// config for chaining.
func (c *Config) WithUserAgent(ua string) *Config {
	c.UserAgent = ua
	return c
}

// WithSuccessField sets the success marker field name and returns the
// config for chaining.
func (c *Config) WithSuccessField(field string) *Config {
	c.SuccessField = field
	return c
}

// WithCircuitBreaker enables the circuit breaker with the given
// thresholds and returns the config for chaining.
func (c *Config) WithCircuitBreaker(failThreshold, successThreshold int, timeout time.Duration) *Config {
	c.CircuitBreakerEnabled = true
	c.CircuitBreakerFailThreshold = failThreshold
	c.CircuitBreakerSuccessThreshold = successThreshold
	c.CircuitBreakerTimeout = timeout
	return c
}
