package registry

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/aas/model"
)

// Backend names accepted in Config.Backend.
const (
	BackendRedis = "redis"
	BackendEtcd  = "etcd"
)

// Config holds registry connection configuration.
//
// Example (YAML):
//
//	backend: etcd
//	endpoints: ["etcd-0:2379", "etcd-1:2379"]
//	prefix: plant-a
//	lookup_timeout: 2s
//	cache_ttl: 1m
//	tls:
//	  enabled: true
//	  cert_file: /etc/aas/client.pem
//	  key_file: /etc/aas/client-key.pem
//	  ca_file: /etc/aas/ca.pem
type Config struct {
	// Backend selects the store: "redis" or "etcd".
	Backend string `yaml:"backend"`

	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	// Only used by the redis backend.
	// Default: "redis://localhost:6379"
	URL string `yaml:"url,omitempty"`

	// Endpoints lists the etcd endpoints. Required by the etcd backend.
	Endpoints []string `yaml:"endpoints,omitempty"`

	// Prefix namespaces all keys written by the registry.
	// Default: "aas"
	Prefix string `yaml:"prefix,omitempty"`

	// DialTimeout bounds connection establishment.
	// Format: Go duration string. Default: 5s
	DialTimeout string `yaml:"dial_timeout,omitempty"`

	// LookupTimeout bounds GetIdentifiable calls made without a context.
	// Format: Go duration string. Default: 3s
	LookupTimeout string `yaml:"lookup_timeout,omitempty"`

	// CacheTTL enables Cached when set.
	// Format: Go duration string. Default: disabled
	CacheTTL string `yaml:"cache_ttl,omitempty"`

	// TLS configures mutual TLS for either backend. Nil disables TLS.
	TLS *TLSConfig `yaml:"tls,omitempty"`
}

// TLSConfig holds TLS certificate configuration for registry connections.
type TLSConfig struct {
	// Enabled determines whether TLS is active.
	// If false, all other fields are ignored.
	Enabled bool `yaml:"enabled"`

	// CertFile is the path to the client certificate (PEM).
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the client private key (PEM).
	KeyFile string `yaml:"key_file"`

	// CAFile is the path to the CA bundle used to verify the server (PEM).
	CAFile string `yaml:"ca_file"`
}

// GetPrefix returns the key prefix or the default value.
func (c *Config) GetPrefix() string {
	if c == nil || c.Prefix == "" {
		return "aas"
	}
	return c.Prefix
}

// GetURL returns the Redis URL or the default value.
func (c *Config) GetURL() string {
	if c == nil || c.URL == "" {
		return "redis://localhost:6379"
	}
	return c.URL
}

// GetDialTimeout parses the dial timeout and returns a duration.
// Returns the default value if not set or invalid.
func (c *Config) GetDialTimeout() time.Duration {
	return parseDuration(c, func(c *Config) string { return c.DialTimeout }, 5*time.Second)
}

// GetLookupTimeout parses the lookup timeout and returns a duration.
// Returns the default value if not set or invalid.
func (c *Config) GetLookupTimeout() time.Duration {
	return parseDuration(c, func(c *Config) string { return c.LookupTimeout }, 3*time.Second)
}

// GetCacheTTL parses the cache TTL. Zero means caching is disabled.
func (c *Config) GetCacheTTL() time.Duration {
	return parseDuration(c, func(c *Config) string { return c.CacheTTL }, 0)
}

func parseDuration(c *Config, field func(*Config) string, def time.Duration) time.Duration {
	if c == nil || field(c) == "" {
		return def
	}
	d, err := time.ParseDuration(field(c))
	if err != nil || d < 0 {
		return def
	}
	return d
}

// LoadConfig reads and parses a registry configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// New connects to the backend named in cfg. When cfg.CacheTTL is set the
// provider is wrapped with Cached. A nil logger means slog.Default().
func New(cfg Config, logger *slog.Logger) (Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Backend {
	case BackendRedis:
		p, err = newRedisFromConfig(cfg, logger)
	case BackendEtcd:
		p, err = newEtcdFromConfig(cfg, logger)
	default:
		return nil, model.NewInvalidConfigError("registry.New",
			fmt.Sprintf("unknown registry backend %q", cfg.Backend))
	}
	if err != nil {
		return nil, err
	}

	logger.Info("registry connected",
		"backend", cfg.Backend,
		"prefix", cfg.GetPrefix(),
	)

	if ttl := cfg.GetCacheTTL(); ttl > 0 {
		return Cached(p, ttl), nil
	}
	return p, nil
}
