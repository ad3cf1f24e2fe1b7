package aas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zero-day-ai/aas/health"
	"github.com/zero-day-ai/aas/identification"
	"github.com/zero-day-ai/aas/model"
	"github.com/zero-day-ai/aas/registry"
)

// Runtime bundles a local object store, the remote registries behind it and
// an identifier generator that consults both.
//
// Resolution order is the local store first, then each remote registry in the
// order it was configured. A Runtime is not safe for concurrent mutation of
// its local store; the remote registries are.
type Runtime struct {
	logger     *slog.Logger
	store      *model.DictObjectStore
	registries []registry.Provider
	mux        *model.ObjectProviderMultiplexer
	generator  identification.Generator
}

// New creates a Runtime. Registries given by WithRegistryConfig are connected
// here; if any step fails, everything opened so far is closed again.
func New(opts ...Option) (*Runtime, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	rt := &Runtime{logger: logger}
	rt.registries = append(rt.registries, cfg.providers...)

	for i, rc := range cfg.registryConfigs {
		p, err := registry.New(rc, logger)
		if err != nil {
			rt.closeRegistries()
			return nil, fmt.Errorf("failed to open registry %d: %w", i, err)
		}
		rt.registries = append(rt.registries, p)
	}

	if cfg.instrumented() {
		for i, p := range rt.registries {
			ip, err := registry.Instrument(p, cfg.tracer, cfg.meter)
			if err != nil {
				rt.closeRegistries()
				return nil, fmt.Errorf("failed to instrument registry %d: %w", i, err)
			}
			rt.registries[i] = ip
		}
	}

	store, err := model.NewDictObjectStore()
	if err != nil {
		rt.closeRegistries()
		return nil, err
	}
	rt.store = store

	rt.mux = model.NewObjectProviderMultiplexer(store)
	for _, p := range rt.registries {
		rt.mux.AddProvider(p)
	}

	gen, err := cfg.generator.NewGenerator(rt.mux)
	if err != nil {
		rt.closeRegistries()
		return nil, err
	}
	rt.generator = gen

	logger.Debug("runtime ready",
		"strategy", cfg.generator.GetStrategy(),
		"registries", len(rt.registries))

	return rt, nil
}

// Store returns the local object store.
func (r *Runtime) Store() *model.DictObjectStore {
	return r.store
}

// Provider returns the multiplexer over the local store and all registries.
func (r *Runtime) Provider() *model.ObjectProviderMultiplexer {
	return r.mux
}

// Generator returns the identifier generator.
func (r *Runtime) Generator() identification.Generator {
	return r.generator
}

// Registries returns the remote registries in lookup order.
func (r *Runtime) Registries() []registry.Provider {
	return append([]registry.Provider(nil), r.registries...)
}

// Register adds obj to the local store.
func (r *Runtime) Register(obj model.Identifiable) error {
	if err := r.store.Add(obj); err != nil {
		return fmt.Errorf("failed to register %q: %w", obj.ID(), err)
	}
	return nil
}

// Publish announces obj to every remote registry as a descriptor pointing at
// endpoint. The object does not have to be in the local store. It fails with
// ErrInvalidConfig when the runtime has no remote registry.
func (r *Runtime) Publish(ctx context.Context, obj model.Identifiable, endpoint string) error {
	if err := r.requireRegistries("Runtime.Publish"); err != nil {
		return err
	}

	d := registry.DescriptorOf(obj, endpoint)
	var errs []error
	for i, p := range r.registries {
		if err := p.Register(ctx, d); err != nil {
			errs = append(errs, fmt.Errorf("registry %d: %w", i, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to publish %q: %w", obj.ID(), err)
	}

	r.logger.Debug("published identifiable", "id", obj.ID(), "endpoint", endpoint)
	return nil
}

// Unpublish removes the descriptor for id from every remote registry. Like
// Publish, it fails with ErrInvalidConfig when the runtime has no remote
// registry.
func (r *Runtime) Unpublish(ctx context.Context, id string) error {
	if err := r.requireRegistries("Runtime.Unpublish"); err != nil {
		return err
	}
	var errs []error
	for i, p := range r.registries {
		if err := p.Deregister(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("registry %d: %w", i, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to unpublish %q: %w", id, err)
	}
	return nil
}

// NewID generates an identifier that no known provider resolves.
func (r *Runtime) NewID(proposal string) (string, error) {
	return r.generator.GenerateID(proposal)
}

// Resolve looks id up in the local store, then in the remote registries.
func (r *Runtime) Resolve(id string) (model.Identifiable, error) {
	return r.mux.GetIdentifiable(id)
}

// Health probes every remote registry and combines the results. A runtime
// without registries is healthy.
func (r *Runtime) Health(ctx context.Context) health.Status {
	checks := make([]health.Status, 0, len(r.registries))
	for i, p := range r.registries {
		checks = append(checks, health.RegistryCheck(ctx, fmt.Sprintf("registry %d", i), p))
	}
	return health.Combine(checks...)
}

// Close closes every remote registry. Close errors are logged, not returned.
func (r *Runtime) Close() error {
	r.closeRegistries()
	return nil
}

func (r *Runtime) requireRegistries(op string) error {
	if len(r.registries) == 0 {
		return model.NewInvalidConfigError(op, "no remote registry configured")
	}
	return nil
}

func (r *Runtime) closeRegistries() {
	for i := len(r.registries) - 1; i >= 0; i-- {
		CloseWithLog(r.registries[i], r.logger, fmt.Sprintf("registry %d", i))
	}
	r.registries = nil
}
