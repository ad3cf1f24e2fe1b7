package model

import (
	"errors"
	"fmt"
)

// ObjectProvider resolves Identifiables (or proxies for remote ones) by their
// identifier. Local stores, remote registries and multiplexers all implement it.
type ObjectProvider interface {
	// GetIdentifiable returns the object with the given identifier.
	// Returns an error wrapping ErrNotFound if the provider does not know it.
	GetIdentifiable(id string) (Identifiable, error)
}

// ProviderFunc adapts a function to ObjectProvider.
type ProviderFunc func(id string) (Identifiable, error)

// GetIdentifiable calls f(id).
func (f ProviderFunc) GetIdentifiable(id string) (Identifiable, error) {
	return f(id)
}

// GetOr looks id up in p and returns fallback on any failure.
func GetOr(p ObjectProvider, id string, fallback Identifiable) Identifiable {
	obj, err := p.GetIdentifiable(id)
	if err != nil {
		return fallback
	}
	return obj
}

// ObjectProviderMultiplexer combines several providers into one. Lookups
// query the providers in order and return the first hit.
type ObjectProviderMultiplexer struct {
	providers []ObjectProvider
}

// NewObjectProviderMultiplexer creates a multiplexer over providers, queried
// in the given order.
func NewObjectProviderMultiplexer(providers ...ObjectProvider) *ObjectProviderMultiplexer {
	return &ObjectProviderMultiplexer{providers: append([]ObjectProvider(nil), providers...)}
}

// AddProvider appends p to the lookup order.
func (m *ObjectProviderMultiplexer) AddProvider(p ObjectProvider) {
	m.providers = append(m.providers, p)
}

// Providers returns a copy of the lookup order.
func (m *ObjectProviderMultiplexer) Providers() []ObjectProvider {
	return append([]ObjectProvider(nil), m.providers...)
}

// GetIdentifiable queries each provider in turn. A miss (ErrNotFound) moves on
// to the next provider; any other error is returned immediately. Fails with
// ErrNotFound once every provider missed.
func (m *ObjectProviderMultiplexer) GetIdentifiable(id string) (Identifiable, error) {
	for _, p := range m.providers {
		obj, err := p.GetIdentifiable(id)
		if err == nil {
			return obj, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("multiplexer lookup of %q: %w", id, err)
		}
	}
	return nil, notFound("ObjectProviderMultiplexer.GetIdentifiable", id).
		WithContext(map[string]any{"providers": len(m.providers)})
}

// Get returns the object with the given identifier, or fallback.
func (m *ObjectProviderMultiplexer) Get(id string, fallback Identifiable) Identifiable {
	return GetOr(m, id, fallback)
}
