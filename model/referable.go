package model

import (
	"regexp"
	"weak"
)

// idShortPattern is the idShort syntax. The empty string is accepted
// separately by SetIDShort.
var idShortPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIDShort reports whether name is an acceptable idShort.
// The empty string is valid (it means "no short name").
func ValidateIDShort(name string) error {
	if name == "" || idShortPattern.MatchString(name) {
		return nil
	}
	return invalidName("ValidateIDShort", name)
}

// Referable is any element of the object graph that can be addressed by a
// short name inside the namespace that owns it.
//
// Referable is satisfied by embedding ReferableBase (or IdentifiableBase) and
// implementing ModelType.
type Referable interface {
	// IDShort returns the short name, or "" if the element has none.
	IDShort() string

	// SetIDShort changes the short name. It fails with ErrInvalidName if name
	// violates the idShort syntax, and with ErrAlreadyOwned while the element is
	// attached to a namespace (the key would go stale).
	SetIDShort(name string) error

	// Parent returns the namespace owning this element, or nil.
	Parent() Namespace

	// ModelType returns the concrete metamodel category of the element.
	ModelType() ModelType

	referableBase() *ReferableBase
}

// ReferableBase holds the idShort and the parent back-reference of a
// Referable. Embed it in concrete element types.
//
// The parent link is a weak pointer: the owning namespace holds the element,
// never the other way around.
type ReferableBase struct {
	idShort string
	parent  weak.Pointer[NamespaceBase]
}

// IDShort returns the short name.
func (r *ReferableBase) IDShort() string {
	return r.idShort
}

// SetIDShort validates and assigns the short name.
func (r *ReferableBase) SetIDShort(name string) error {
	if name != "" && !idShortPattern.MatchString(name) {
		return invalidName("Referable.SetIDShort", name)
	}
	if name != r.idShort && r.parent.Value() != nil {
		return alreadyOwned("Referable.SetIDShort", r.idShort)
	}
	r.idShort = name
	return nil
}

// Parent returns the owner of the namespace this element is attached to.
func (r *ReferableBase) Parent() Namespace {
	if ns := r.parent.Value(); ns != nil {
		return ns.owner
	}
	return nil
}

func (r *ReferableBase) referableBase() *ReferableBase {
	return r
}

func (r *ReferableBase) attachedTo() *NamespaceBase {
	return r.parent.Value()
}

func (r *ReferableBase) attach(ns *NamespaceBase) {
	r.parent = weak.Make(ns)
}

func (r *ReferableBase) detach() {
	r.parent = weak.Pointer[NamespaceBase]{}
}

// Identifiable is a Referable that also carries a globally unique identifier.
// Identifiables may have an empty idShort.
type Identifiable interface {
	Referable

	// ID returns the global identifier.
	ID() string
}

// IdentifiableBase adds a global identifier to ReferableBase.
type IdentifiableBase struct {
	ReferableBase
	id string
}

// NewIdentifiableBase returns an IdentifiableBase for id. Types defined
// outside this package use it to initialize their embedded base.
func NewIdentifiableBase(id string) IdentifiableBase {
	return IdentifiableBase{id: id}
}

// ID returns the global identifier.
func (i *IdentifiableBase) ID() string {
	return i.id
}

// sameElement compares two elements by identity.
func sameElement(a, b Referable) bool {
	return a == b
}
