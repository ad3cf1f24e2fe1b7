package registry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/aas/model"
)

// Lookup outcomes recorded on spans and on the lookup counter.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// InstrumentedProvider records a span and a counter increment for every
// lookup of the wrapped Provider. Register and Deregister get spans only.
type InstrumentedProvider struct {
	Provider

	tracer  trace.Tracer
	lookups metric.Int64Counter
}

var _ Provider = (*InstrumentedProvider)(nil)

// Instrument wraps p. Either tracer or meter may be nil to skip that signal.
func Instrument(p Provider, tracer trace.Tracer, meter metric.Meter) (*InstrumentedProvider, error) {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("registry")
	}
	ip := &InstrumentedProvider{Provider: p, tracer: tracer}
	if meter != nil {
		var err error
		ip.lookups, err = meter.Int64Counter(
			"registry.lookups",
			metric.WithDescription("Number of registry lookups by outcome"),
			metric.WithUnit("1"),
		)
		if err != nil {
			return nil, fmt.Errorf("create lookup counter: %w", err)
		}
	}
	return ip, nil
}

// GetIdentifiable implements model.ObjectProvider. It delegates to the
// wrapped provider's GetIdentifiable so its lookup timeout still applies.
func (p *InstrumentedProvider) GetIdentifiable(id string) (model.Identifiable, error) {
	return p.lookup(context.Background(), id, func(context.Context) (model.Identifiable, error) {
		return p.Provider.GetIdentifiable(id)
	})
}

// GetIdentifiableContext looks id up in the wrapped provider. A miss is not
// marked as a span error.
func (p *InstrumentedProvider) GetIdentifiableContext(ctx context.Context, id string) (model.Identifiable, error) {
	return p.lookup(ctx, id, func(ctx context.Context) (model.Identifiable, error) {
		return p.Provider.GetIdentifiableContext(ctx, id)
	})
}

func (p *InstrumentedProvider) lookup(ctx context.Context, id string, get func(context.Context) (model.Identifiable, error)) (model.Identifiable, error) {
	ctx, span := p.start(ctx, "registry.GetIdentifiable", id)
	defer span.End()

	obj, err := get(ctx)

	outcome := OutcomeHit
	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
	case errors.Is(err, model.ErrNotFound):
		outcome = OutcomeMiss
	default:
		outcome = OutcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.String("registry.outcome", outcome))

	if p.lookups != nil {
		p.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
	return obj, err
}

// Register implements Provider.
func (p *InstrumentedProvider) Register(ctx context.Context, d *Descriptor) error {
	ctx, span := p.start(ctx, "registry.Register", d.ID())
	defer span.End()

	err := p.Provider.Register(ctx, d)
	endSpan(span, err)
	return err
}

// Deregister implements Provider.
func (p *InstrumentedProvider) Deregister(ctx context.Context, id string) error {
	ctx, span := p.start(ctx, "registry.Deregister", id)
	defer span.End()

	err := p.Provider.Deregister(ctx, id)
	endSpan(span, err)
	return err
}

func (p *InstrumentedProvider) start(ctx context.Context, name, id string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("aas.id", id)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
