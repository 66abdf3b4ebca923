// Package cache stores backend response data in Redis. Entries of one backend
// are invalidated together by bumping that backend's generation counter, so
// stale entries are never read again and expire on their own.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL    = time.Minute
	DefaultPrefix = "apicaller"
)

var (
	ErrKeyNotFound     = errors.New("cache: key not found")
	ErrCacheMarshal    = errors.New("cache: failed to marshal value")
	ErrCacheUnmarshal  = errors.New("cache: failed to unmarshal value")
	ErrCacheGet        = errors.New("cache: failed to get")
	ErrCacheSet        = errors.New("cache: failed to set")
	ErrCacheInvalidate = errors.New("cache: failed to invalidate")
)

type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix namespaces every key, for gateways sharing one Redis database.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

func New(client redis.UniversalClient, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		ttl:    DefaultTTL,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Generation identifies one lifetime of a backend's entries. Invalidate starts
// a new one.
type Generation int64

// Get returns the data stored for key, or ErrKeyNotFound. The generation it
// looked in is returned on a miss as well, so a fill can be stored with Set
// under the generation that was current before the backend was called.
func (c *Cache) Get(ctx context.Context, key Key) (any, Generation, error) {
	gen, err := c.generation(ctx, key.Service)
	if err != nil {
		return nil, 0, err
	}

	raw, err := c.client.Get(ctx, c.entryKey(key, gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, ErrKeyNotFound
		}

		return nil, gen, fmt.Errorf("%w: %w", ErrCacheGet, err)
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, gen, fmt.Errorf("%w: %w", ErrCacheUnmarshal, err)
	}

	return data, gen, nil
}

// Set stores data under gen. When the backend was invalidated after gen was
// read, the entry is never visible to Get and just expires.
func (c *Cache) Set(ctx context.Context, key Key, gen Generation, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCacheMarshal, err)
	}

	if err := c.client.Set(ctx, c.entryKey(key, gen), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheSet, err)
	}

	return nil
}

// Invalidate drops every entry stored for service.
func (c *Cache) Invalidate(ctx context.Context, service string) error {
	if err := c.client.Incr(ctx, c.generationKey(service)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheInvalidate, err)
	}

	return nil
}

func (c *Cache) generation(ctx context.Context, service string) (Generation, error) {
	gen, err := c.client.Get(ctx, c.generationKey(service)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("%w: %w", ErrCacheGet, err)
	}

	return Generation(gen), nil
}

func (c *Cache) entryKey(key Key, gen Generation) string {
	return c.prefix + ":resp:" + key.Service + ":" + strconv.FormatInt(int64(gen), 10) + ":" + key.Encode()
}

func (c *Cache) generationKey(service string) string {
	return c.prefix + ":gen:" + service
}
