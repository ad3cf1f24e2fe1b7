package registry

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/zero-day-ai/aas/model"
)

// EtcdOptions configures an EtcdProvider.
type EtcdOptions struct {
	// Endpoints is the list of etcd endpoints
	// Format: ["host1:2379", "host2:2379"]
	Endpoints []string

	// Prefix is the key namespace. Descriptors are stored under
	// /{prefix}/identifiables/{escaped id}.
	Prefix string

	// TLS configuration for secure connections
	TLS *tls.Config

	// DialTimeout is the maximum time to wait for connection establishment
	DialTimeout time.Duration

	// LookupTimeout bounds GetIdentifiable calls made without a context
	LookupTimeout time.Duration

	// Logger receives diagnostics. Default: slog.Default()
	Logger *slog.Logger
}

// EtcdProvider is a Provider backed by etcd.
//
// Thread-safety: All methods are safe for concurrent use.
type EtcdProvider struct {
	client        *clientv3.Client
	prefix        string
	lookupTimeout time.Duration
	logger        *slog.Logger

	mu     sync.RWMutex
	closed bool
}

var _ Provider = (*EtcdProvider)(nil)

// NewEtcdProvider connects to the etcd cluster and verifies connectivity
// with a read of a probe key.
func NewEtcdProvider(opts EtcdOptions) (*EtcdProvider, error) {
	if len(opts.Endpoints) == 0 {
		return nil, model.NewInvalidConfigError("NewEtcdProvider", "etcd endpoints cannot be empty")
	}
	if opts.Prefix == "" {
		opts.Prefix = "aas"
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.LookupTimeout == 0 {
		opts.LookupTimeout = 3 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   opts.Endpoints,
		DialTimeout: opts.DialTimeout,
		TLS:         opts.TLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()

	if _, err := cli.Get(ctx, "/"+opts.Prefix+"/health-check"); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("etcd health check failed: %w", err)
	}

	return &EtcdProvider{
		client:        cli,
		prefix:        opts.Prefix,
		lookupTimeout: opts.LookupTimeout,
		logger:        opts.Logger,
	}, nil
}

func newEtcdFromConfig(cfg Config, logger *slog.Logger) (*EtcdProvider, error) {
	tlsConfig, err := clientTLS(cfg.TLS)
	if err != nil {
		return nil, fmt.Errorf("failed to configure TLS: %w", err)
	}
	return NewEtcdProvider(EtcdOptions{
		Endpoints:     cfg.Endpoints,
		Prefix:        cfg.GetPrefix(),
		TLS:           tlsConfig,
		DialTimeout:   cfg.GetDialTimeout(),
		LookupTimeout: cfg.GetLookupTimeout(),
		Logger:        logger,
	})
}

// GetIdentifiable looks id up with the configured lookup timeout.
func (p *EtcdProvider) GetIdentifiable(id string) (model.Identifiable, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.lookupTimeout)
	defer cancel()
	return p.GetIdentifiableContext(ctx, id)
}

// GetIdentifiableContext returns the descriptor stored for id.
func (p *EtcdProvider) GetIdentifiableContext(ctx context.Context, id string) (model.Identifiable, error) {
	if err := p.checkOpen(); err != nil {
		return nil, err
	}

	resp, err := p.client.Get(ctx, p.key(id))
	if err != nil {
		return nil, fmt.Errorf("failed to look up %q: %w", id, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, model.NewNotFoundError("EtcdProvider.GetIdentifiable", id)
	}
	return decodeDescriptor(id, resp.Kvs[0].Value)
}

// Register stores d under its identifier.
func (p *EtcdProvider) Register(ctx context.Context, d *Descriptor) error {
	if err := p.checkOpen(); err != nil {
		return err
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor: %w", err)
	}
	if _, err := p.client.Put(ctx, p.key(d.ID()), string(data)); err != nil {
		return fmt.Errorf("failed to register %q: %w", d.ID(), err)
	}
	return nil
}

// Deregister removes the descriptor for id.
func (p *EtcdProvider) Deregister(ctx context.Context, id string) error {
	if err := p.checkOpen(); err != nil {
		return err
	}

	if _, err := p.client.Delete(ctx, p.key(id)); err != nil {
		return fmt.Errorf("failed to deregister %q: %w", id, err)
	}
	return nil
}

// List returns every descriptor under the provider's prefix.
func (p *EtcdProvider) List(ctx context.Context) ([]*Descriptor, error) {
	if err := p.checkOpen(); err != nil {
		return nil, err
	}

	resp, err := p.client.Get(ctx, p.keyPrefix(), clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to list descriptors: %w", err)
	}

	descriptors := make([]*Descriptor, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		d, err := decodeDescriptor(string(kv.Key), kv.Value)
		if err != nil {
			p.logger.Warn("skipping invalid registry entry", "key", string(kv.Key), "error", err)
			continue
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// Close closes the etcd client. Further calls fail.
func (p *EtcdProvider) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	return p.client.Close()
}

func (p *EtcdProvider) checkOpen() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return fmt.Errorf("registry client is closed")
	}
	return nil
}

// keyPrefix returns /{prefix}/identifiables/.
func (p *EtcdProvider) keyPrefix() string {
	return etcdKeyPrefix(p.prefix)
}

// key returns the etcd key for id. The identifier is path-escaped so that
// every descriptor occupies exactly one segment below the prefix.
func (p *EtcdProvider) key(id string) string {
	return etcdKey(p.prefix, id)
}

func etcdKeyPrefix(prefix string) string {
	return fmt.Sprintf("/%s/identifiables/", prefix)
}

func etcdKey(prefix, id string) string {
	return etcdKeyPrefix(prefix) + url.PathEscape(id)
}
