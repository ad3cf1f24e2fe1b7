package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/zero-day-ai/aas/model"
)

// Descriptor is a local proxy for an identifiable held by another process.
// It satisfies model.Identifiable and reports the model type of the object it
// stands for.
type Descriptor struct {
	model.IdentifiableBase

	// Type is the model type of the remote object.
	Type model.ModelType

	// Endpoint is where the remote object can be fetched
	// (e.g., "https://aas.example.com/submodels/...").
	Endpoint string

	// Metadata holds free-form registry attributes.
	Metadata map[string]string
}

var _ model.Identifiable = (*Descriptor)(nil)

// NewDescriptor creates a descriptor for the remote object id.
func NewDescriptor(id string, modelType model.ModelType, endpoint string) *Descriptor {
	return &Descriptor{
		IdentifiableBase: model.NewIdentifiableBase(id),
		Type:             modelType,
		Endpoint:         endpoint,
	}
}

// ModelType implements model.Referable.
func (d *Descriptor) ModelType() model.ModelType {
	return d.Type
}

// descriptorJSON is the stored form of a Descriptor.
type descriptorJSON struct {
	ID        string            `json:"id"`
	IDShort   string            `json:"id_short,omitempty"`
	ModelType model.ModelType   `json:"model_type"`
	Endpoint  string            `json:"endpoint,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(descriptorJSON{
		ID:        d.ID(),
		IDShort:   d.IDShort(),
		ModelType: d.Type,
		Endpoint:  d.Endpoint,
		Metadata:  d.Metadata,
	})
}

// UnmarshalJSON implements json.Unmarshaler. A stored idShort that violates
// the naming syntax is rejected.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var raw descriptorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == "" {
		return fmt.Errorf("descriptor has no id")
	}

	decoded := NewDescriptor(raw.ID, raw.ModelType, raw.Endpoint)
	if err := decoded.SetIDShort(raw.IDShort); err != nil {
		return fmt.Errorf("descriptor %q: %w", raw.ID, err)
	}
	decoded.Metadata = maps.Clone(raw.Metadata)
	*d = *decoded
	return nil
}

// DescriptorOf builds a descriptor for a local identifiable, e.g. to publish
// it to a registry.
func DescriptorOf(obj model.Identifiable, endpoint string) *Descriptor {
	d := NewDescriptor(obj.ID(), obj.ModelType(), endpoint)
	// The idShort was validated when it was set on obj.
	_ = d.SetIDShort(obj.IDShort())
	return d
}

func decodeDescriptor(id string, data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor %q: %w", id, err)
	}
	return &d, nil
}

// Provider is a remote registry of identifiables.
type Provider interface {
	model.ObjectProvider

	// GetIdentifiableContext is GetIdentifiable bounded by ctx.
	GetIdentifiableContext(ctx context.Context, id string) (model.Identifiable, error)

	// Register stores d, replacing any descriptor with the same identifier.
	Register(ctx context.Context, d *Descriptor) error

	// Deregister removes the descriptor for id. Removing an unknown
	// identifier is a no-op.
	Deregister(ctx context.Context, id string) error

	// List returns every stored descriptor in no particular order.
	// Entries that cannot be decoded are skipped.
	List(ctx context.Context) ([]*Descriptor, error)

	// Close releases the connection to the backend.
	Close() error
}
