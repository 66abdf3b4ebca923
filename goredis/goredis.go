// Package goredis wraps a go-redis client as a runner service: Start checks
// the connection and holds until shutdown, Stop closes the pool.
package goredis

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultDialTimeout  = 5 * time.Second
	defaultReadTimeout  = 3 * time.Second
	defaultWriteTimeout = 3 * time.Second
	defaultPoolSize     = 10
	defaultMinIdleConns = 1
	defaultMaxRetries   = 3
	initialPingTimeout  = 5 * time.Second
	maxPort             = 65535
)

var (
	ErrClientNil      = errors.New("goredis: client is nil")
	ErrConfigNil      = errors.New("goredis: configuration must not be nil")
	ErrInvalidHost    = errors.New("goredis: host is required")
	ErrInvalidPort    = errors.New("goredis: port must be between 1 and 65535")
	ErrInvalidDB      = errors.New("goredis: database number must be non-negative")
	ErrCAParseFailure = errors.New("goredis: failed to parse CA certificate")
	ErrNoActiveConns  = errors.New("goredis: no active connections in pool")
)

type Config struct {
	Host          string
	Port          int
	Password      string
	DB            int
	DialTimeout   time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	PoolSize      int
	MinIdleConns  int
	MaxRetries    int
	TLSEnabled    bool
	TLSSkipVerify bool
	TLSCAFile     string
}

func (cfg *Config) Validate() error {
	if cfg.Host == "" {
		return ErrInvalidHost
	}

	if cfg.Port < 1 || cfg.Port > maxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Port)
	}

	if cfg.DB < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDB, cfg.DB)
	}

	return nil
}

func (cfg *Config) withDefaults() Config {
	out := *cfg

	if out.DialTimeout <= 0 {
		out.DialTimeout = defaultDialTimeout
	}

	if out.ReadTimeout <= 0 {
		out.ReadTimeout = defaultReadTimeout
	}

	if out.WriteTimeout <= 0 {
		out.WriteTimeout = defaultWriteTimeout
	}

	if out.PoolSize <= 0 {
		out.PoolSize = defaultPoolSize
	}

	if out.MinIdleConns <= 0 {
		out.MinIdleConns = defaultMinIdleConns
	}

	if out.MaxRetries == 0 {
		out.MaxRetries = defaultMaxRetries
	}

	return out
}

type Client struct {
	*redis.Client

	logger zerolog.Logger
}

type Option func(*Client)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	redisOpts, err := buildOptions(cfg.withDefaults())
	if err != nil {
		return nil, err
	}

	client := &Client{
		Client: redis.NewClient(redisOpts),
		logger: log.Logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

//nolint:exhaustruct
func buildOptions(cfg Config) (*redis.Options, error) {
	opts := &redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	}

	if !cfg.TLSEnabled {
		return opts, nil
	}

	//nolint:gosec
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.TLSSkipVerify,
		MinVersion:         tls.VersionTLS12,
	}

	if cfg.TLSCAFile != "" {
		caCert, err := os.ReadFile(cfg.TLSCAFile)
		if err != nil {
			return nil, fmt.Errorf("goredis: failed to read CA certificate: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, ErrCAParseFailure
		}

		tlsConfig.RootCAs = pool
	}

	opts.TLSConfig = tlsConfig

	return opts, nil
}

func (c *Client) Start(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, initialPingTimeout)
	defer cancel()

	if err := c.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("goredis: ping failed: %w", err)
	}

	c.logger.Info().
		Str("service_name", c.Name()).
		Str("addr", c.Options().Addr).
		Msg("Redis client is connected")

	<-ctx.Done()

	return nil
}

func (c *Client) Stop() error {
	if c.Client == nil {
		return ErrClientNil
	}

	if err := c.Close(); err != nil {
		return fmt.Errorf("goredis: failed to close client: %w", err)
	}

	c.logger.Info().Str("service_name", c.Name()).Msg("Redis client is closed")

	return nil
}

func (c *Client) Name() string {
	return "redis"
}

func (c *Client) HealthCheck(ctx context.Context) error {
	if c.Client == nil {
		return ErrClientNil
	}

	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("goredis: health check failed: %w", err)
	}

	if stats := c.PoolStats(); stats != nil && stats.TotalConns == 0 {
		return ErrNoActiveConns
	}

	return nil
}
