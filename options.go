package aas

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/aas/identification"
	"github.com/zero-day-ai/aas/registry"
)

// Option configures a Runtime.
type Option func(*config)

// config holds configuration for a Runtime instance.
type config struct {
	logger          *slog.Logger
	generator       *identification.Config
	providers       []registry.Provider
	registryConfigs []registry.Config
	tracer          trace.Tracer
	meter           metric.Meter
}

// WithLogger sets a custom logger for the runtime and the registries it
// opens. If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithGeneratorConfig selects the identifier generation strategy.
// Without it the runtime hands out urn:uuid identifiers.
func WithGeneratorConfig(cfg *identification.Config) Option {
	return func(c *config) {
		c.generator = cfg
	}
}

// WithProvider adds an already connected remote registry. Registries are
// consulted after the local store, in the order they were added. The runtime
// takes ownership and closes them in Close.
func WithProvider(p registry.Provider) Option {
	return func(c *config) {
		if p != nil {
			c.providers = append(c.providers, p)
		}
	}
}

// WithRegistryConfig makes New connect a remote registry from cfg.
// Configured registries are consulted after those added with WithProvider.
func WithRegistryConfig(cfg registry.Config) Option {
	return func(c *config) {
		c.registryConfigs = append(c.registryConfigs, cfg)
	}
}

// WithTracer enables a span per remote registry operation.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// WithMeter enables the registry lookup counter.
func WithMeter(meter metric.Meter) Option {
	return func(c *config) {
		c.meter = meter
	}
}

func (c *config) instrumented() bool {
	return c.tracer != nil || c.meter != nil
}
