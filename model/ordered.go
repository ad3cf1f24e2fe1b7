package model

import (
	"iter"
	"slices"
)

// OrderedNamespaceSet is a NamespaceSet that keeps its elements in an explicit
// order. The order slice is the source of truth; a name-to-position index is
// rebuilt for the affected tail on every mutation.
type OrderedNamespaceSet[T Referable] struct {
	ns    *NamespaceBase
	cfg   setConfig
	order []T
	index map[string]int
}

var _ OrderedContainer[Referable] = (*OrderedNamespaceSet[Referable])(nil)

// NewOrderedNamespaceSet creates an empty ordered set owned by parent.
func NewOrderedNamespaceSet[T Referable](parent Namespace, opts ...SetOption) *OrderedNamespaceSet[T] {
	s := &OrderedNamespaceSet[T]{
		ns:    parent.namespaceBase(),
		cfg:   newSetConfig(opts),
		index: make(map[string]int),
	}
	s.ns.register(parent, s)
	return s
}

// Add appends element. See NamespaceSet.Add for the failure modes.
func (s *OrderedNamespaceSet[T]) Add(element T) error {
	return s.insert("OrderedNamespaceSet.Add", len(s.order), element)
}

// Insert places element at position, shifting later elements back.
// position must be in [0, Len()]; otherwise ErrIndexOutOfRange is returned.
func (s *OrderedNamespaceSet[T]) Insert(position int, element T) error {
	return s.insert("OrderedNamespaceSet.Insert", position, element)
}

func (s *OrderedNamespaceSet[T]) insert(op string, position int, element T) error {
	if position < 0 || position > len(s.order) {
		return indexOutOfRange(op, position, len(s.order))
	}
	s.cfg.setID(element)
	if err := s.ns.checkAttach(op, element, nil); err != nil {
		s.cfg.rejected(element)
		return err
	}
	if err := runAddHook(s.cfg.addHook, element, s.order); err != nil {
		s.cfg.rejected(element)
		return err
	}
	var zero T
	s.order = append(s.order, zero)
	copy(s.order[position+1:], s.order[position:])
	s.order[position] = element
	s.reindex(position)
	element.referableBase().attach(s.ns)
	return nil
}

// Extend appends all elements or none.
func (s *OrderedNamespaceSet[T]) Extend(elements ...T) error {
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

// At returns the element at position.
func (s *OrderedNamespaceSet[T]) At(position int) (T, error) {
	if position < 0 || position >= len(s.order) {
		var zero T
		return zero, indexOutOfRange("OrderedNamespaceSet.At", position, len(s.order))
	}
	return s.order[position], nil
}

// Set replaces the element at position. The displaced element is detached and
// element attached in its place. element may reuse the displaced element's
// idShort; colliding with any other element of the namespace fails with
// ErrDuplicateKey and leaves the set unchanged.
func (s *OrderedNamespaceSet[T]) Set(position int, element T) error {
	const op = "OrderedNamespaceSet.Set"
	if position < 0 || position >= len(s.order) {
		return indexOutOfRange(op, position, len(s.order))
	}
	old := s.order[position]
	if sameElement(old, element) {
		return nil
	}
	s.cfg.setID(element)
	if err := s.ns.checkAttach(op, element, old); err != nil {
		s.cfg.rejected(element)
		return err
	}
	siblings := append(slices.Clone(s.order[:position]), s.order[position+1:]...)
	if err := runAddHook(s.cfg.addHook, element, siblings); err != nil {
		s.cfg.rejected(element)
		return err
	}
	delete(s.index, s.cfg.normalize(old.IDShort()))
	s.order[position] = element
	s.index[s.cfg.normalize(element.IDShort())] = position
	element.referableBase().attach(s.ns)
	s.cfg.released(old)
	return nil
}

// Delete removes the element at position.
func (s *OrderedNamespaceSet[T]) Delete(position int) error {
	_, err := s.popAt("OrderedNamespaceSet.Delete", position)
	return err
}

// PopAt removes and returns the element at position.
func (s *OrderedNamespaceSet[T]) PopAt(position int) (T, error) {
	return s.popAt("OrderedNamespaceSet.PopAt", position)
}

// Pop removes and returns the last element, or ErrNotFound when empty.
func (s *OrderedNamespaceSet[T]) Pop() (T, error) {
	if len(s.order) == 0 {
		var zero T
		return zero, notFound("OrderedNamespaceSet.Pop", "")
	}
	return s.popAt("OrderedNamespaceSet.Pop", len(s.order)-1)
}

func (s *OrderedNamespaceSet[T]) popAt(op string, position int) (T, error) {
	if position < 0 || position >= len(s.order) {
		var zero T
		return zero, indexOutOfRange(op, position, len(s.order))
	}
	el := s.order[position]
	copy(s.order[position:], s.order[position+1:])
	var zero T
	s.order[len(s.order)-1] = zero
	s.order = s.order[:len(s.order)-1]
	delete(s.index, s.cfg.normalize(el.IDShort()))
	s.reindex(position)
	s.cfg.released(el)
	return el, nil
}

// Index returns the position of element, or -1 if this set does not hold that
// instance.
func (s *OrderedNamespaceSet[T]) Index(element T) int {
	pos, ok := s.index[s.cfg.normalize(element.IDShort())]
	if !ok || !sameElement(s.order[pos], element) {
		return -1
	}
	return pos
}

// Remove detaches element. It fails with ErrNotFound unless this set holds
// exactly that instance.
func (s *OrderedNamespaceSet[T]) Remove(element T) error {
	pos := s.Index(element)
	if pos < 0 {
		return notFound("OrderedNamespaceSet.Remove", element.IDShort())
	}
	_, err := s.popAt("OrderedNamespaceSet.Remove", pos)
	return err
}

// RemoveKey detaches the element stored under idShort, or fails with
// ErrNotFound.
func (s *OrderedNamespaceSet[T]) RemoveKey(idShort string) error {
	pos, ok := s.index[s.cfg.normalize(idShort)]
	if !ok {
		return notFound("OrderedNamespaceSet.RemoveKey", idShort)
	}
	_, err := s.popAt("OrderedNamespaceSet.RemoveKey", pos)
	return err
}

// Discard is Remove without the error.
func (s *OrderedNamespaceSet[T]) Discard(element T) {
	if pos := s.Index(element); pos >= 0 {
		_, _ = s.popAt("OrderedNamespaceSet.Discard", pos)
	}
}

// DiscardKey is RemoveKey without the error.
func (s *OrderedNamespaceSet[T]) DiscardKey(idShort string) {
	if pos, ok := s.index[s.cfg.normalize(idShort)]; ok {
		_, _ = s.popAt("OrderedNamespaceSet.DiscardKey", pos)
	}
}

// Get returns the element stored under idShort or ErrNotFound.
func (s *OrderedNamespaceSet[T]) Get(idShort string) (T, error) {
	if pos, ok := s.index[s.cfg.normalize(idShort)]; ok {
		return s.order[pos], nil
	}
	var zero T
	return zero, notFound("OrderedNamespaceSet.Get", idShort)
}

// GetOr returns the element stored under idShort, or fallback.
func (s *OrderedNamespaceSet[T]) GetOr(idShort string, fallback T) T {
	if pos, ok := s.index[s.cfg.normalize(idShort)]; ok {
		return s.order[pos]
	}
	return fallback
}

// Contains reports whether this exact instance is in the set.
func (s *OrderedNamespaceSet[T]) Contains(element T) bool {
	return s.Index(element) >= 0
}

// ContainsKey reports whether some element is stored under idShort.
func (s *OrderedNamespaceSet[T]) ContainsKey(idShort string) bool {
	_, ok := s.index[s.cfg.normalize(idShort)]
	return ok
}

// Len returns the number of elements.
func (s *OrderedNamespaceSet[T]) Len() int {
	return len(s.order)
}

// All iterates the elements in order.
func (s *OrderedNamespaceSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, el := range s.order {
			if !yield(el) {
				return
			}
		}
	}
}

// Clear detaches every element and empties the set.
func (s *OrderedNamespaceSet[T]) Clear() {
	order := s.order
	s.order = nil
	s.index = make(map[string]int)
	for _, el := range order {
		s.cfg.released(el)
	}
}

func (s *OrderedNamespaceSet[T]) reindex(from int) {
	for i := from; i < len(s.order); i++ {
		s.index[s.cfg.normalize(s.order[i].IDShort())] = i
	}
}

func (s *OrderedNamespaceSet[T]) lookupKey(idShort string) (Referable, bool) {
	pos, ok := s.index[s.cfg.normalize(idShort)]
	if !ok {
		return nil, false
	}
	return s.order[pos], true
}

func (s *OrderedNamespaceSet[T]) removeReferable(r Referable) error {
	el, ok := r.(T)
	if !ok {
		return notFound("OrderedNamespaceSet.Remove", r.IDShort())
	}
	return s.Remove(el)
}

func (s *OrderedNamespaceSet[T]) tryAdd(r Referable) (bool, error) {
	el, ok := r.(T)
	if !ok {
		return false, nil
	}
	return true, s.Add(el)
}

func (s *OrderedNamespaceSet[T]) referables() iter.Seq[Referable] {
	return func(yield func(Referable) bool) {
		for _, el := range s.order {
			if !yield(el) {
				return
			}
		}
	}
}
