// Package model implements the identity core of the asset administration
// shell object graph.
//
// # Core Concepts
//
//   - Referable: an element addressable by a short name (idShort) inside the
//     namespace that owns it. The element keeps only a weak back-reference to
//     its owner.
//   - Identifiable: a Referable with a globally unique identifier. Top-level
//     objects (shells, submodels, concept descriptions) are identifiables.
//   - Namespace: an element owning one or more NamespaceSets. idShorts are
//     unique across all sets of one namespace.
//   - ObjectProvider: anything that resolves identifiers to identifiables.
//     DictObjectStore is the local implementation; ObjectProviderMultiplexer
//     federates several providers.
//
// # Containers
//
// NamespaceSet and OrderedNamespaceSet enforce two invariants on every
// mutation: keys are unique within the namespace, and an element belongs to
// at most one namespace at a time.
//
//	sm := model.NewSubmodel("https://acplt.org/Simple_Submodel")
//	prop, _ := model.NewProperty("Temperature", "xs:double")
//	if err := sm.SubmodelElements.Add(prop); err != nil {
//	    return err
//	}
//	// prop.Parent() == sm
//
// Removal by instance (Remove) and removal by key (RemoveKey) both fail with
// ErrNotFound when there is nothing to remove; Discard and DiscardKey are the
// silent variants.
//
// # Concurrency
//
// Nothing in this package locks. A set or store is owned by one goroutine
// for mutation; embedders that share one must serialize access themselves.
package model
