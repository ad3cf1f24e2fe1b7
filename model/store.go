package model

import (
	"fmt"
	"iter"
)

// ObjectStore is an ObjectProvider that can also be modified. It holds at most
// one object per identifier.
type ObjectStore interface {
	ObjectProvider

	Add(obj Identifiable) error
	Discard(obj Identifiable)
	Contains(obj Identifiable) bool
	ContainsID(id string) bool
	Len() int
	All() iter.Seq[Identifiable]
	Snapshot() *Environment
}

// DictObjectStore is the local in-memory ObjectStore. It is not safe for
// concurrent use; callers that share a store must serialize access.
type DictObjectStore struct {
	items []Identifiable
	index map[string]int
}

var _ ObjectStore = (*DictObjectStore)(nil)

// NewDictObjectStore creates a store holding objs.
func NewDictObjectStore(objs ...Identifiable) (*DictObjectStore, error) {
	s := &DictObjectStore{index: make(map[string]int)}
	for _, obj := range objs {
		if err := s.Add(obj); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewDictObjectStoreFromEnvironment creates a store holding every object of env.
func NewDictObjectStoreFromEnvironment(env *Environment) (*DictObjectStore, error) {
	s, _ := NewDictObjectStore()
	if env == nil {
		return s, nil
	}
	if err := s.AddFrom(env.All()); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	return s, nil
}

// Add stores obj under its identifier. Adding the instance that is already
// stored is a no-op; adding a different object with the same identifier fails
// with ErrDuplicateKey.
func (s *DictObjectStore) Add(obj Identifiable) error {
	const op = "DictObjectStore.Add"
	id := obj.ID()
	if id == "" {
		return &Error{Op: op, Kind: KindInvalidName, Err: ErrInvalidName, Context: map[string]any{"id": id}}
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if pos, ok := s.index[id]; ok {
		if sameElement(s.items[pos], obj) {
			return nil
		}
		return duplicateKey(op, id)
	}
	s.index[id] = len(s.items)
	s.items = append(s.items, obj)
	return nil
}

// AddFrom adds every object of objs, or none of them if one fails.
func (s *DictObjectStore) AddFrom(objs iter.Seq[Identifiable]) error {
	var added []Identifiable
	for obj := range objs {
		present := s.Contains(obj)
		if err := s.Add(obj); err != nil {
			for _, a := range added {
				s.Discard(a)
			}
			return err
		}
		if !present {
			added = append(added, obj)
		}
	}
	return nil
}

// Discard removes obj if the store holds exactly that instance.
func (s *DictObjectStore) Discard(obj Identifiable) {
	if pos, ok := s.position(obj); ok {
		s.removeAt(pos)
	}
}

// Remove is Discard that fails with ErrNotFound when obj is not stored.
func (s *DictObjectStore) Remove(obj Identifiable) error {
	pos, ok := s.position(obj)
	if !ok {
		return notFound("DictObjectStore.Remove", obj.ID())
	}
	s.removeAt(pos)
	return nil
}

// GetIdentifiable returns the object stored under id, or ErrNotFound.
func (s *DictObjectStore) GetIdentifiable(id string) (Identifiable, error) {
	if pos, ok := s.index[id]; ok {
		return s.items[pos], nil
	}
	return nil, notFound("DictObjectStore.GetIdentifiable", id)
}

// Get returns the object stored under id, or fallback.
func (s *DictObjectStore) Get(id string, fallback Identifiable) Identifiable {
	if pos, ok := s.index[id]; ok {
		return s.items[pos]
	}
	return fallback
}

// Contains reports whether this exact instance is stored. A different object
// with the same identifier does not count.
func (s *DictObjectStore) Contains(obj Identifiable) bool {
	_, ok := s.position(obj)
	return ok
}

// ContainsID reports whether any object is stored under id.
func (s *DictObjectStore) ContainsID(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of stored objects.
func (s *DictObjectStore) Len() int {
	return len(s.items)
}

// All iterates the stored objects.
func (s *DictObjectStore) All() iter.Seq[Identifiable] {
	return func(yield func(Identifiable) bool) {
		for _, obj := range s.items {
			if !yield(obj) {
				return
			}
		}
	}
}

// Pop removes and returns an arbitrary object, or ErrNotFound when empty.
func (s *DictObjectStore) Pop() (Identifiable, error) {
	if len(s.items) == 0 {
		return nil, notFound("DictObjectStore.Pop", "")
	}
	obj := s.items[len(s.items)-1]
	s.removeAt(len(s.items) - 1)
	return obj, nil
}

// Clear removes every object.
func (s *DictObjectStore) Clear() {
	s.items = nil
	s.index = make(map[string]int)
}

// Snapshot partitions the stored objects by model type. Objects whose model
// type has no slot in Environment are left out.
func (s *DictObjectStore) Snapshot() *Environment {
	env := &Environment{}
	for _, obj := range s.items {
		switch obj.ModelType() {
		case ModelTypeAssetAdministrationShell:
			if aas, ok := obj.(*AssetAdministrationShell); ok {
				env.AssetAdministrationShells = append(env.AssetAdministrationShells, aas)
			}
		case ModelTypeSubmodel:
			if sm, ok := obj.(*Submodel); ok {
				env.Submodels = append(env.Submodels, sm)
			}
		case ModelTypeConceptDescription:
			if cd, ok := obj.(*ConceptDescription); ok {
				env.ConceptDescriptions = append(env.ConceptDescriptions, cd)
			}
		case ModelTypeUnknown, ModelTypeProperty, ModelTypeSubmodelElementCollection, ModelTypeSubmodelElementList:
		}
	}
	return env
}

func (s *DictObjectStore) position(obj Identifiable) (int, bool) {
	pos, ok := s.index[obj.ID()]
	if !ok || !sameElement(s.items[pos], obj) {
		return 0, false
	}
	return pos, true
}

func (s *DictObjectStore) removeAt(pos int) {
	obj := s.items[pos]
	last := len(s.items) - 1
	if pos != last {
		moved := s.items[last]
		s.items[pos] = moved
		s.index[moved.ID()] = pos
	}
	s.items[last] = nil
	s.items = s.items[:last]
	delete(s.index, obj.ID())
}
