package registry

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zero-day-ai/aas/model"
)

// CachedProvider keeps successful lookups of the wrapped Provider for a fixed
// TTL. Misses and errors are never cached, so a newly registered identifier
// becomes visible on the next lookup.
type CachedProvider struct {
	Provider

	cache *gocache.Cache
}

var _ Provider = (*CachedProvider)(nil)

// Cached wraps p with a TTL cache. Expired entries are swept every 2*ttl.
func Cached(p Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		Provider: p,
		cache:    gocache.New(ttl, 2*ttl),
	}
}

// GetIdentifiable implements model.ObjectProvider.
func (p *CachedProvider) GetIdentifiable(id string) (model.Identifiable, error) {
	if obj, ok := p.cached(id); ok {
		return obj, nil
	}
	obj, err := p.Provider.GetIdentifiable(id)
	if err != nil {
		return nil, err
	}
	p.cache.SetDefault(id, obj)
	return obj, nil
}

// GetIdentifiableContext implements Provider.
func (p *CachedProvider) GetIdentifiableContext(ctx context.Context, id string) (model.Identifiable, error) {
	if obj, ok := p.cached(id); ok {
		return obj, nil
	}
	obj, err := p.Provider.GetIdentifiableContext(ctx, id)
	if err != nil {
		return nil, err
	}
	p.cache.SetDefault(id, obj)
	return obj, nil
}

// Register stores d in the wrapped provider and refreshes the cache entry.
func (p *CachedProvider) Register(ctx context.Context, d *Descriptor) error {
	if err := p.Provider.Register(ctx, d); err != nil {
		p.cache.Delete(d.ID())
		return err
	}
	p.cache.SetDefault(d.ID(), d)
	return nil
}

// Deregister removes id from the wrapped provider and from the cache.
func (p *CachedProvider) Deregister(ctx context.Context, id string) error {
	p.cache.Delete(id)
	return p.Provider.Deregister(ctx, id)
}

// Flush drops every cached entry.
func (p *CachedProvider) Flush() {
	p.cache.Flush()
}

func (p *CachedProvider) cached(id string) (model.Identifiable, bool) {
	v, found := p.cache.Get(id)
	if !found {
		return nil, false
	}
	obj, ok := v.(model.Identifiable)
	return obj, ok
}
