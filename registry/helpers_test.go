package registry

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/aas/model"
)

// memProvider is an in-memory Provider that counts backend lookups and can be
// told to fail.
type memProvider struct {
	mu      sync.Mutex
	entries map[string]*Descriptor
	lookups int
	err     error
	closed  bool
}

func newMemProvider(descriptors ...*Descriptor) *memProvider {
	p := &memProvider{entries: make(map[string]*Descriptor)}
	for _, d := range descriptors {
		p.entries[d.ID()] = d
	}
	return p
}

func (p *memProvider) GetIdentifiable(id string) (model.Identifiable, error) {
	return p.GetIdentifiableContext(context.Background(), id)
}

func (p *memProvider) GetIdentifiableContext(_ context.Context, id string) (model.Identifiable, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lookups++
	if p.err != nil {
		return nil, p.err
	}
	d, ok := p.entries[id]
	if !ok {
		return nil, model.NewNotFoundError("memProvider.GetIdentifiable", id)
	}
	return d, nil
}

func (p *memProvider) Register(_ context.Context, d *Descriptor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.entries[d.ID()] = d
	return nil
}

func (p *memProvider) Deregister(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	delete(p.entries, id)
	return nil
}

func (p *memProvider) List(context.Context) ([]*Descriptor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Descriptor, 0, len(p.entries))
	for _, d := range p.entries {
		out = append(out, d)
	}
	return out, nil
}

func (p *memProvider) Close() error {
	p.closed = true
	return nil
}

func (p *memProvider) lookupCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lookups
}

// setupRedisProvider starts a miniredis instance and connects a provider to it.
func setupRedisProvider(t *testing.T) (*RedisProvider, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	p, err := NewRedisProvider(RedisOptions{
		URL:       fmt.Sprintf("redis://%s", mr.Addr()),
		KeyPrefix: "test",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = p.Close()
	})

	return p, mr
}
