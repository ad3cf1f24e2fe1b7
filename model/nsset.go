package model

import "iter"

// NamespaceSet is a set of Referables keyed by idShort and owned by one
// namespace. It manages the parent back-reference of its elements: Add sets
// it, every removal clears it.
//
// Iteration order is unspecified but stable for a given state of the set.
type NamespaceSet[T Referable] struct {
	ns    *NamespaceBase
	cfg   setConfig
	items []T
	index map[string]int
}

var _ Container[Referable] = (*NamespaceSet[Referable])(nil)

// NewNamespaceSet creates an empty set owned by parent and registers it with
// the parent's namespace.
//
// Example:
//
//	sm := model.NewSubmodel("urn:x-test:submodel1")
//	extra := model.NewNamespaceSet[*model.Property](sm)
func NewNamespaceSet[T Referable](parent Namespace, opts ...SetOption) *NamespaceSet[T] {
	s := &NamespaceSet[T]{
		ns:    parent.namespaceBase(),
		cfg:   newSetConfig(opts),
		index: make(map[string]int),
	}
	s.ns.register(parent, s)
	return s
}

// Add attaches element to the set.
//
// Returns ErrInvalidName if the element has no idShort, ErrAlreadyOwned if it
// belongs to another namespace, and ErrDuplicateKey if the namespace already
// holds an element with the same idShort.
func (s *NamespaceSet[T]) Add(element T) error {
	const op = "NamespaceSet.Add"
	s.cfg.setID(element)
	if err := s.ns.checkAttach(op, element, nil); err != nil {
		s.cfg.rejected(element)
		return err
	}
	if err := runAddHook(s.cfg.addHook, element, s.items); err != nil {
		s.cfg.rejected(element)
		return err
	}
	s.index[s.cfg.normalize(element.IDShort())] = len(s.items)
	s.items = append(s.items, element)
	element.referableBase().attach(s.ns)
	return nil
}

// Extend adds all elements or none: if one insertion fails, the elements
// added by this call are removed again and the error is returned.
func (s *NamespaceSet[T]) Extend(elements ...T) error {
	for i, el := range elements {
		if err := s.Add(el); err != nil {
			for _, added := range elements[:i] {
				s.Discard(added)
			}
			return err
		}
	}
	return nil
}

// Remove detaches element. It fails with ErrNotFound unless this set holds
// exactly that instance.
func (s *NamespaceSet[T]) Remove(element T) error {
	pos, ok := s.position(element)
	if !ok {
		return notFound("NamespaceSet.Remove", element.IDShort())
	}
	s.removeAt(pos)
	return nil
}

// RemoveKey detaches the element stored under idShort. It fails with
// ErrNotFound if there is none.
func (s *NamespaceSet[T]) RemoveKey(idShort string) error {
	pos, ok := s.index[s.cfg.normalize(idShort)]
	if !ok {
		return notFound("NamespaceSet.RemoveKey", idShort)
	}
	s.removeAt(pos)
	return nil
}

// Discard is Remove without the error.
func (s *NamespaceSet[T]) Discard(element T) {
	if pos, ok := s.position(element); ok {
		s.removeAt(pos)
	}
}

// DiscardKey is RemoveKey without the error.
func (s *NamespaceSet[T]) DiscardKey(idShort string) {
	if pos, ok := s.index[s.cfg.normalize(idShort)]; ok {
		s.removeAt(pos)
	}
}

// Get returns the element stored under idShort or ErrNotFound.
func (s *NamespaceSet[T]) Get(idShort string) (T, error) {
	if pos, ok := s.index[s.cfg.normalize(idShort)]; ok {
		return s.items[pos], nil
	}
	var zero T
	return zero, notFound("NamespaceSet.Get", idShort)
}

// GetOr returns the element stored under idShort, or fallback.
func (s *NamespaceSet[T]) GetOr(idShort string, fallback T) T {
	if pos, ok := s.index[s.cfg.normalize(idShort)]; ok {
		return s.items[pos]
	}
	return fallback
}

// Contains reports whether this exact instance is in the set. An equal-named
// but different element does not count.
func (s *NamespaceSet[T]) Contains(element T) bool {
	_, ok := s.position(element)
	return ok
}

// ContainsKey reports whether some element is stored under idShort.
func (s *NamespaceSet[T]) ContainsKey(idShort string) bool {
	_, ok := s.index[s.cfg.normalize(idShort)]
	return ok
}

// Len returns the number of elements.
func (s *NamespaceSet[T]) Len() int {
	return len(s.items)
}

// All iterates the elements. The set must not be modified during iteration.
func (s *NamespaceSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, el := range s.items {
			if !yield(el) {
				return
			}
		}
	}
}

// Pop removes and returns an arbitrary element, or ErrNotFound when empty.
func (s *NamespaceSet[T]) Pop() (T, error) {
	if len(s.items) == 0 {
		var zero T
		return zero, notFound("NamespaceSet.Pop", "")
	}
	el := s.items[len(s.items)-1]
	s.removeAt(len(s.items) - 1)
	return el, nil
}

// Clear detaches every element and empties the set.
func (s *NamespaceSet[T]) Clear() {
	items := s.items
	s.items = nil
	s.index = make(map[string]int)
	for _, el := range items {
		s.cfg.released(el)
	}
}

func (s *NamespaceSet[T]) position(element T) (int, bool) {
	pos, ok := s.index[s.cfg.normalize(element.IDShort())]
	if !ok || !sameElement(s.items[pos], element) {
		return 0, false
	}
	return pos, true
}

// removeAt swaps the last element into pos.
func (s *NamespaceSet[T]) removeAt(pos int) {
	el := s.items[pos]
	last := len(s.items) - 1
	if pos != last {
		moved := s.items[last]
		s.items[pos] = moved
		s.index[s.cfg.normalize(moved.IDShort())] = pos
	}
	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
	delete(s.index, s.cfg.normalize(el.IDShort()))
	s.cfg.released(el)
}

func (s *NamespaceSet[T]) lookupKey(idShort string) (Referable, bool) {
	pos, ok := s.index[s.cfg.normalize(idShort)]
	if !ok {
		return nil, false
	}
	return s.items[pos], true
}

func (s *NamespaceSet[T]) removeReferable(r Referable) error {
	el, ok := r.(T)
	if !ok {
		return notFound("NamespaceSet.Remove", r.IDShort())
	}
	return s.Remove(el)
}

func (s *NamespaceSet[T]) tryAdd(r Referable) (bool, error) {
	el, ok := r.(T)
	if !ok {
		return false, nil
	}
	return true, s.Add(el)
}

func (s *NamespaceSet[T]) referables() iter.Seq[Referable] {
	return func(yield func(Referable) bool) {
		for _, el := range s.items {
			if !yield(el) {
				return
			}
		}
	}
}
