package model

import (
	"iter"
	"strings"
)

// Namespace is an element that owns one or more NamespaceSets. idShorts are
// unique across all sets of one namespace.
//
// Namespace is satisfied by embedding NamespaceBase.
type Namespace interface {
	GetReferable(idShort string) (Referable, error)
	Referables() iter.Seq[Referable]

	namespaceBase() *NamespaceBase
}

// NamespaceBase is the bookkeeping record of a namespace owner. It knows the
// sets registered against the owner; children point back to it weakly.
type NamespaceBase struct {
	owner Namespace
	sets  []keyedSet
}

func (nb *NamespaceBase) namespaceBase() *NamespaceBase {
	return nb
}

// GetReferable finds a child by idShort in any of the namespace's sets.
func (nb *NamespaceBase) GetReferable(idShort string) (Referable, error) {
	for _, s := range nb.sets {
		if r, ok := s.lookupKey(idShort); ok {
			return r, nil
		}
	}
	return nil, notFound("Namespace.GetReferable", idShort)
}

// AddReferable adds r to the first set of this namespace whose element type
// accepts it.
func (nb *NamespaceBase) AddReferable(r Referable) error {
	for _, s := range nb.sets {
		if ok, err := s.tryAdd(r); ok {
			return err
		}
	}
	return &Error{
		Op:      "Namespace.AddReferable",
		Kind:    KindInvalidConfig,
		Err:     ErrInvalidConfig,
		Context: map[string]any{"id_short": r.IDShort(), "model_type": r.ModelType().String()},
	}
}

// RemoveReferable detaches the child with the given idShort from whichever set
// holds it. It fails with ErrNotFound if no set does.
func (nb *NamespaceBase) RemoveReferable(idShort string) error {
	for _, s := range nb.sets {
		if r, ok := s.lookupKey(idShort); ok {
			return s.removeReferable(r)
		}
	}
	return notFound("Namespace.RemoveReferable", idShort)
}

// Referables iterates the children of all sets, set by set.
func (nb *NamespaceBase) Referables() iter.Seq[Referable] {
	return func(yield func(Referable) bool) {
		for _, s := range nb.sets {
			for r := range s.referables() {
				if !yield(r) {
					return
				}
			}
		}
	}
}

func (nb *NamespaceBase) register(owner Namespace, s keyedSet) {
	if nb.owner == nil {
		nb.owner = owner
	}
	nb.sets = append(nb.sets, s)
}

// keyedSet is the view a namespace has of each of its sets.
type keyedSet interface {
	lookupKey(idShort string) (Referable, bool)
	removeReferable(r Referable) error
	tryAdd(r Referable) (bool, error)
	referables() iter.Seq[Referable]
}

// Container is the capability shared by NamespaceSet and OrderedNamespaceSet.
type Container[T Referable] interface {
	Add(element T) error
	Remove(element T) error
	RemoveKey(idShort string) error
	Discard(element T)
	DiscardKey(idShort string)
	Get(idShort string) (T, error)
	GetOr(idShort string, fallback T) T
	Contains(element T) bool
	ContainsKey(idShort string) bool
	Len() int
	All() iter.Seq[T]
	Pop() (T, error)
	Clear()
}

// OrderedContainer extends Container with positional access.
type OrderedContainer[T Referable] interface {
	Container[T]
	Insert(position int, element T) error
	At(position int) (T, error)
	Set(position int, element T) error
	Delete(position int) error
	PopAt(position int) (T, error)
	Index(element T) int
}

// AddHook inspects an element before it is attached. Returning an error
// aborts the insertion. siblings iterates the elements already in the set.
type AddHook func(element Referable, siblings iter.Seq[Referable]) error

// IDHook adjusts the idShort of an element on its way into or out of a set.
// A set hook runs before any check on insertion, so it may name an element
// that has no idShort yet. A delete hook runs after the element has been
// detached and must not be used for constraint checks.
type IDHook func(element Referable)

// SetOption configures a NamespaceSet or OrderedNamespaceSet.
type SetOption func(*setConfig)

type setConfig struct {
	foldCase  bool
	addHook   AddHook
	idSetHook IDHook
	idDelHook IDHook
}

// WithCaseInsensitiveKeys makes idShort lookups in the set ignore case.
func WithCaseInsensitiveKeys() SetOption {
	return func(c *setConfig) {
		c.foldCase = true
	}
}

// WithAddHook installs a hook that runs before every insertion.
func WithAddHook(hook AddHook) SetOption {
	return func(c *setConfig) {
		c.addHook = hook
	}
}

// WithIDSetHook installs a hook that runs first on every insertion.
func WithIDSetHook(hook IDHook) SetOption {
	return func(c *setConfig) {
		c.idSetHook = hook
	}
}

// WithIDDeleteHook installs a hook that runs on every element after it left
// the set, including elements dropped by Clear and displaced by Set.
func WithIDDeleteHook(hook IDHook) SetOption {
	return func(c *setConfig) {
		c.idDelHook = hook
	}
}

func newSetConfig(opts []SetOption) setConfig {
	var cfg setConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c setConfig) setID(element Referable) {
	if c.idSetHook != nil {
		c.idSetHook(element)
	}
}

// rejected undoes setID after a failed insertion.
func (c setConfig) rejected(element Referable) {
	if c.idDelHook != nil && element.referableBase().attachedTo() == nil {
		c.idDelHook(element)
	}
}

// released detaches element and runs the delete hook.
func (c setConfig) released(element Referable) {
	element.referableBase().detach()
	if c.idDelHook != nil {
		c.idDelHook(element)
	}
}

func (c setConfig) normalize(key string) string {
	if c.foldCase {
		return strings.ToUpper(key)
	}
	return key
}

// checkAttach verifies that element may join a set of nb under its idShort.
// replacing, if non-nil, is an element of the same set that is about to be
// displaced and may share the key.
func (nb *NamespaceBase) checkAttach(op string, element, replacing Referable) error {
	name := element.IDShort()
	if name == "" {
		return invalidName(op, name)
	}
	if owner := element.referableBase().attachedTo(); owner != nil && owner != nb {
		return alreadyOwned(op, name)
	}
	for _, s := range nb.sets {
		if existing, ok := s.lookupKey(name); ok {
			if replacing != nil && sameElement(existing, replacing) {
				continue
			}
			return duplicateKey(op, name)
		}
	}
	return nil
}

func runAddHook[T Referable](hook AddHook, element Referable, items []T) error {
	if hook == nil {
		return nil
	}
	return hook(element, func(yield func(Referable) bool) {
		for _, it := range items {
			if !yield(it) {
				return
			}
		}
	})
}
