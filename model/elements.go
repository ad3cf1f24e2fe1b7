package model

import (
	"fmt"
	"strings"
)

// SubmodelElement is a Referable that can live inside a Submodel or one of
// the submodel element containers.
type SubmodelElement interface {
	Referable
	submodelElement()
}

// Property is a single typed value. Backend connectors update it through
// SetValue; they never re-parent it.
type Property struct {
	ReferableBase

	// ValueType is the XSD data type of the value (e.g., "xs:int").
	ValueType string

	value string
}

// NewProperty creates a detached property.
func NewProperty(idShort, valueType string) (*Property, error) {
	p := &Property{ValueType: valueType}
	if err := p.SetIDShort(idShort); err != nil {
		return nil, err
	}
	return p, nil
}

// Value returns the lexical value.
func (p *Property) Value() string { return p.value }

// SetValue replaces the lexical value.
func (p *Property) SetValue(v string) { p.value = v }

// ModelType implements Referable.
func (*Property) ModelType() ModelType { return ModelTypeProperty }

func (*Property) submodelElement() {}

// SubmodelElementCollection groups submodel elements without an order.
type SubmodelElementCollection struct {
	ReferableBase
	NamespaceBase

	Value *NamespaceSet[SubmodelElement]
}

// NewSubmodelElementCollection creates an empty, detached collection.
func NewSubmodelElementCollection(idShort string, opts ...SetOption) (*SubmodelElementCollection, error) {
	c := &SubmodelElementCollection{}
	if err := c.SetIDShort(idShort); err != nil {
		return nil, err
	}
	c.Value = NewNamespaceSet[SubmodelElement](c, opts...)
	return c, nil
}

// ModelType implements Referable.
func (*SubmodelElementCollection) ModelType() ModelType { return ModelTypeSubmodelElementCollection }

func (*SubmodelElementCollection) submodelElement() {}

// SubmodelElementList holds submodel elements in an explicit order.
type SubmodelElementList struct {
	ReferableBase
	NamespaceBase

	Value *OrderedNamespaceSet[SubmodelElement]

	generated int
}

// generatedIDShortPrefix marks the idShorts a list assigns to unnamed items.
const generatedIDShortPrefix = "generated_list_item_"

// NewSubmodelElementList creates an empty, detached list.
//
// List items need no idShort: an unnamed item gets a generated one while it
// is in the list and loses it again on removal. opts may replace these hooks.
func NewSubmodelElementList(idShort string, opts ...SetOption) (*SubmodelElementList, error) {
	l := &SubmodelElementList{}
	if err := l.SetIDShort(idShort); err != nil {
		return nil, err
	}
	defaults := []SetOption{
		WithIDSetHook(l.nameItem),
		WithIDDeleteHook(unnameItem),
	}
	l.Value = NewOrderedNamespaceSet[SubmodelElement](l, append(defaults, opts...)...)
	return l, nil
}

func (l *SubmodelElementList) nameItem(element Referable) {
	if element.IDShort() != "" {
		return
	}
	for {
		l.generated++
		name := fmt.Sprintf("%s%d", generatedIDShortPrefix, l.generated)
		if l.Value.ContainsKey(name) {
			continue
		}
		// Fails only if element is attached elsewhere; the insertion
		// reports that.
		_ = element.SetIDShort(name)
		return
	}
}

func unnameItem(element Referable) {
	if strings.HasPrefix(element.IDShort(), generatedIDShortPrefix) {
		_ = element.SetIDShort("")
	}
}

// ModelType implements Referable.
func (*SubmodelElementList) ModelType() ModelType { return ModelTypeSubmodelElementList }

func (*SubmodelElementList) submodelElement() {}

// Submodel is an identifiable namespace of submodel elements.
type Submodel struct {
	IdentifiableBase
	NamespaceBase

	SubmodelElements *NamespaceSet[SubmodelElement]
}

// NewSubmodel creates an empty submodel with the given identifier.
func NewSubmodel(id string, opts ...SetOption) *Submodel {
	sm := &Submodel{IdentifiableBase: NewIdentifiableBase(id)}
	sm.SubmodelElements = NewNamespaceSet[SubmodelElement](sm, opts...)
	return sm
}

// ModelType implements Referable.
func (*Submodel) ModelType() ModelType { return ModelTypeSubmodel }

// AssetAdministrationShell describes one asset and references its submodels
// by identifier.
type AssetAdministrationShell struct {
	IdentifiableBase

	// GlobalAssetID identifies the asset the shell represents.
	GlobalAssetID string

	// Submodels lists the identifiers of the shell's submodels. Resolve them
	// through an ObjectProvider.
	Submodels []string
}

// NewAssetAdministrationShell creates a shell for the given asset.
func NewAssetAdministrationShell(id, globalAssetID string) *AssetAdministrationShell {
	return &AssetAdministrationShell{
		IdentifiableBase: NewIdentifiableBase(id),
		GlobalAssetID:    globalAssetID,
	}
}

// ModelType implements Referable.
func (*AssetAdministrationShell) ModelType() ModelType { return ModelTypeAssetAdministrationShell }

// ConceptDescription defines the semantics of a submodel element.
type ConceptDescription struct {
	IdentifiableBase

	IsCaseOf []string
}

// NewConceptDescription creates a concept description.
func NewConceptDescription(id string) *ConceptDescription {
	return &ConceptDescription{IdentifiableBase: NewIdentifiableBase(id)}
}

// ModelType implements Referable.
func (*ConceptDescription) ModelType() ModelType { return ModelTypeConceptDescription }
