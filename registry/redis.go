package registry

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zero-day-ai/aas/model"
)

// RedisOptions configures a RedisProvider.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// KeyPrefix namespaces the descriptor hash ("<prefix>:identifiables").
	KeyPrefix string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration

	// LookupTimeout bounds GetIdentifiable calls made without a context
	LookupTimeout time.Duration

	// Logger receives diagnostics. Default: slog.Default()
	Logger *slog.Logger
}

// RedisProvider is a Provider backed by one Redis hash. Each field is an
// identifier and each value a JSON-encoded Descriptor.
type RedisProvider struct {
	client        *redis.Client
	key           string
	lookupTimeout time.Duration
	logger        *slog.Logger
}

var _ Provider = (*RedisProvider)(nil)

// NewRedisProvider connects to Redis and verifies the connection with PING.
func NewRedisProvider(opts RedisOptions) (*RedisProvider, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "aas"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 3 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 3 * time.Second
	}
	if opts.LookupTimeout == 0 {
		opts.LookupTimeout = 3 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if opts.TLS != nil {
		redisOpts.TLSConfig = opts.TLS
	}
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisProvider{
		client:        client,
		key:           opts.KeyPrefix + ":identifiables",
		lookupTimeout: opts.LookupTimeout,
		logger:        opts.Logger,
	}, nil
}

func newRedisFromConfig(cfg Config, logger *slog.Logger) (*RedisProvider, error) {
	tlsConfig, err := clientTLS(cfg.TLS)
	if err != nil {
		return nil, fmt.Errorf("failed to configure TLS: %w", err)
	}
	return NewRedisProvider(RedisOptions{
		URL:            cfg.GetURL(),
		KeyPrefix:      cfg.GetPrefix(),
		TLS:            tlsConfig,
		ConnectTimeout: cfg.GetDialTimeout(),
		LookupTimeout:  cfg.GetLookupTimeout(),
		Logger:         logger,
	})
}

// GetIdentifiable looks id up with the configured lookup timeout.
func (p *RedisProvider) GetIdentifiable(id string) (model.Identifiable, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.lookupTimeout)
	defer cancel()
	return p.GetIdentifiableContext(ctx, id)
}

// GetIdentifiableContext returns the descriptor stored for id.
func (p *RedisProvider) GetIdentifiableContext(ctx context.Context, id string) (model.Identifiable, error) {
	data, err := p.client.HGet(ctx, p.key, id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.NewNotFoundError("RedisProvider.GetIdentifiable", id)
		}
		return nil, fmt.Errorf("failed to look up %q: %w", id, err)
	}
	return decodeDescriptor(id, data)
}

// Register stores d under its identifier.
func (p *RedisProvider) Register(ctx context.Context, d *Descriptor) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor: %w", err)
	}
	if err := p.client.HSet(ctx, p.key, d.ID(), data).Err(); err != nil {
		return fmt.Errorf("failed to register %q: %w", d.ID(), err)
	}
	return nil
}

// Deregister removes the descriptor for id.
func (p *RedisProvider) Deregister(ctx context.Context, id string) error {
	if err := p.client.HDel(ctx, p.key, id).Err(); err != nil {
		return fmt.Errorf("failed to deregister %q: %w", id, err)
	}
	return nil
}

// List returns every stored descriptor.
func (p *RedisProvider) List(ctx context.Context) ([]*Descriptor, error) {
	entries, err := p.client.HGetAll(ctx, p.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list descriptors: %w", err)
	}

	descriptors := make([]*Descriptor, 0, len(entries))
	for id, data := range entries {
		d, err := decodeDescriptor(id, []byte(data))
		if err != nil {
			p.logger.Warn("skipping invalid registry entry", "id", id, "error", err)
			continue
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// Close closes the Redis connection.
func (p *RedisProvider) Close() error {
	return p.client.Close()
}
