package model

import "iter"

// Environment is a snapshot of an object store partitioned by model type.
// The slices are owned by the snapshot; modifying them does not affect the
// store it was taken from.
type Environment struct {
	AssetAdministrationShells []*AssetAdministrationShell
	Submodels                 []*Submodel
	ConceptDescriptions       []*ConceptDescription
}

// Len returns the total number of objects in the snapshot.
func (e *Environment) Len() int {
	return len(e.AssetAdministrationShells) + len(e.Submodels) + len(e.ConceptDescriptions)
}

// All iterates shells, then submodels, then concept descriptions.
func (e *Environment) All() iter.Seq[Identifiable] {
	return func(yield func(Identifiable) bool) {
		for _, aas := range e.AssetAdministrationShells {
			if !yield(aas) {
				return
			}
		}
		for _, sm := range e.Submodels {
			if !yield(sm) {
				return
			}
		}
		for _, cd := range e.ConceptDescriptions {
			if !yield(cd) {
				return
			}
		}
	}
}
