package config

import (
	"fmt"
	"time"

	"github.com/andyle182810/apicaller/validator"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Application
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// Backends, as name=url pairs: "users=http://users:8080,billing=http://billing:8080"
	BackendURLs       map[string]string `env:"BACKEND_URLS,required" envKeyValSeparator:"=" validate:"required,min=1,dive,keys,servicename,endkeys,url"`
	BackendTimeout    time.Duration     `env:"BACKEND_TIMEOUT"        envDefault:"30s"       validate:"gt=0"`
	BackendRetryCount int               `env:"BACKEND_RETRY_COUNT"    envDefault:"0"         validate:"gte=0,lte=10"`
	BackendRetryWait  time.Duration     `env:"BACKEND_RETRY_WAIT"     envDefault:"100ms"`
	ForwardHeaders    []string          `env:"FORWARD_HEADERS"        envDefault:"Accept-Language"`

	// Backend readiness probing. Disabled when ProbeInterval is 0.
	BackendHealthPath string        `env:"BACKEND_HEALTH_PATH" envDefault:"/health" validate:"startswith=/"`
	ProbeInterval     time.Duration `env:"PROBE_INTERVAL"      envDefault:"15s"`
	ProbeTimeout      time.Duration `env:"PROBE_TIMEOUT"       envDefault:"5s"      validate:"gt=0"`

	// Public GET response cache. Disabled when RedisHost is empty.
	RedisHost          string        `env:"REDIS_HOST"`
	RedisPort          int           `env:"REDIS_PORT"           envDefault:"6379"      validate:"gte=1,lte=65535"`
	RedisPassword      string        `env:"REDIS_PASSWORD"`
	RedisDB            int           `env:"REDIS_DB"             envDefault:"0"         validate:"gte=0"`
	RedisTLSEnabled    bool          `env:"REDIS_TLS_ENABLED"    envDefault:"false"`
	RedisTLSSkipVerify bool          `env:"REDIS_TLS_SKIP_VERIFY" envDefault:"false"`
	RedisTLSCAFile     string        `env:"REDIS_TLS_CA_FILE"`
	CacheTTL           time.Duration `env:"CACHE_TTL"            envDefault:"1m"        validate:"gt=0"`
	CachePrefix        string        `env:"CACHE_PREFIX"         envDefault:"apicaller"`

	// Access token verification on the private routes. Disabled when empty.
	JWKSURLs []string `env:"JWKS_URLS" validate:"omitempty,dive,url"`

	// Per client rate limit. Disabled when RateLimitRPS is 0.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"0"  validate:"gte=0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20" validate:"gte=1"`

	// HTTP Server
	HTTPServerHost         string        `env:"HTTP_SERVER_HOST"          envDefault:"0.0.0.0"`
	HTTPServerPort         int           `env:"HTTP_SERVER_PORT"          envDefault:"8080"    validate:"gte=0,lte=65535"`
	HTTPEnableCORS         bool          `env:"HTTP_ENABLE_CORS"          envDefault:"true"`
	HTTPAllowOrigins       []string      `env:"HTTP_ALLOW_ORIGINS"`
	HTTPBodyLimit          string        `env:"HTTP_BODY_LIMIT"           envDefault:"10M"`
	HTTPServerReadTimeout  time.Duration `env:"HTTP_SERVER_READ_TIMEOUT"  envDefault:"30s"`
	HTTPServerWriteTimeout time.Duration `env:"HTTP_SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPRequireRequestID   bool          `env:"HTTP_REQUIRE_REQUEST_ID"   envDefault:"false"`
	HTTPIncludeInternal    bool          `env:"HTTP_INCLUDE_INTERNAL_ERRORS" envDefault:"false"`

	// Metric Server
	MetricServerHost         string        `env:"METRIC_SERVER_HOST"          envDefault:"0.0.0.0"`
	MetricServerPort         int           `env:"METRIC_SERVER_PORT"          envDefault:"9090"  validate:"gte=0,lte=65535"`
	MetricServerReadTimeout  time.Duration `env:"METRIC_SERVER_READ_TIMEOUT"  envDefault:"10s"`
	MetricServerWriteTimeout time.Duration `env:"METRIC_SERVER_WRITE_TIMEOUT" envDefault:"10s"`

	// Graceful Shutdown
	GracefulShutdownPeriod time.Duration `env:"GRACEFUL_SHUTDOWN_PERIOD" envDefault:"10s"`
}

// New reads the configuration from the process environment.
func New() (*Config, error) {
	return parse(env.Options{}) //nolint:exhaustruct
}

// FromMap reads the configuration from environ instead of the process
// environment.
func FromMap(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ}) //nolint:exhaustruct
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) TokenVerificationEnabled() bool {
	return len(c.JWKSURLs) > 0
}

func (c *Config) CacheEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) ProbeEnabled() bool {
	return c.ProbeInterval > 0
}

func (c *Config) RateLimitEnabled() bool {
	return c.RateLimitRPS > 0
}
