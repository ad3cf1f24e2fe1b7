package identification

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/zero-day-ai/aas/model"
)

// DefaultMaxProbes is the number of candidates GenerateID tries before giving
// up when no WithMaxProbes option is set.
const DefaultMaxProbes = 1_000_000

// namespacePattern accepts scheme-qualified IRIs ending in '#', '/' or '='.
var namespacePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+\-.]*:.*[#/=]$`)

// NamespaceIRIGenerator generates IRIs in a fixed namespace and checks their
// uniqueness against an ObjectProvider.
type NamespaceIRIGenerator struct {
	namespace string
	provider  model.ObjectProvider
	maxProbes int

	// slots maps a quoted proposal to the slot of the last identifier handed
	// out for it.
	slots map[string]int
}

var _ Generator = (*NamespaceIRIGenerator)(nil)

// Option configures a NamespaceIRIGenerator.
type Option func(*NamespaceIRIGenerator)

// WithMaxProbes bounds the number of candidates tried per GenerateID call.
// Values below 1 are ignored.
func WithMaxProbes(n int) Option {
	return func(g *NamespaceIRIGenerator) {
		if n > 0 {
			g.maxProbes = n
		}
	}
}

// NewNamespaceIRIGenerator creates a generator for namespace. The namespace
// must be an IRI with a scheme that ends in '#', '/' or '='; otherwise an
// error wrapping model.ErrInvalidConfig is returned.
//
// Example:
//
//	gen, err := identification.NewNamespaceIRIGenerator("https://example.com/ids/", store)
func NewNamespaceIRIGenerator(namespace string, provider model.ObjectProvider, opts ...Option) (*NamespaceIRIGenerator, error) {
	const op = "NewNamespaceIRIGenerator"
	if !namespacePattern.MatchString(namespace) {
		return nil, model.NewInvalidConfigError(op,
			fmt.Sprintf("namespace %q must be a valid IRI ending with '#', '/' or '='", namespace))
	}
	if provider == nil {
		return nil, model.NewInvalidConfigError(op, "provider is required")
	}

	g := &NamespaceIRIGenerator{
		namespace: namespace,
		provider:  provider,
		maxProbes: DefaultMaxProbes,
		slots:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Namespace returns the namespace identifiers are generated in.
func (g *NamespaceIRIGenerator) Namespace() string {
	return g.namespace
}

// GenerateID returns the first candidate for proposal that the provider does
// not know. A provider error other than model.ErrNotFound aborts the search
// and is returned wrapped.
func (g *NamespaceIRIGenerator) GenerateID(proposal string) (string, error) {
	quoted := QuoteIRISegment(proposal)
	slot := g.slots[quoted]

	for probes := 0; probes < g.maxProbes; probes++ {
		iri := g.candidate(quoted, slot)
		_, err := g.provider.GetIdentifiable(iri)
		if err == nil {
			slot++
			continue
		}
		if !errors.Is(err, model.ErrNotFound) {
			return "", fmt.Errorf("failed to check identifier %q: %w", iri, err)
		}
		g.slots[quoted] = slot
		return iri, nil
	}

	return "", fmt.Errorf("%w: no free identifier for proposal %q after %d candidates",
		ErrProbeLimitExceeded, proposal, g.maxProbes)
}

// candidate builds the identifier for slot. Slot 0 of a non-empty proposal is
// the bare proposal; every other slot carries a four-digit counter.
func (g *NamespaceIRIGenerator) candidate(quoted string, slot int) string {
	if quoted == "" {
		return fmt.Sprintf("%s%04d", g.namespace, slot)
	}
	if slot == 0 {
		return g.namespace + quoted
	}
	return fmt.Sprintf("%s%s_%04d", g.namespace, quoted, slot-1)
}
