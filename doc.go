// Package aas bundles the building blocks of an Asset Administration Shell
// object model into a single runtime.
//
// The subpackages carry the actual model:
//
//   - model: Referables, Identifiables, the namespace sets that own them,
//     the DictObjectStore and the ObjectProvider multiplexer
//   - identification: unique identifier generators (UUID and namespace IRI)
//   - registry: remote ObjectProviders backed by Redis or etcd, plus tracing
//     and caching decorators
//   - constraint: CEL expressions usable as namespace add hooks
//
// # Getting Started
//
// A Runtime owns a local object store and resolves identifiers through it
// first, then through any remote registries:
//
//	rt, err := aas.New(
//		aas.WithLogger(logger),
//		aas.WithGeneratorConfig(&identification.Config{Namespace: "https://acplt.org/"}),
//	)
//	if err != nil {
//		return err
//	}
//	defer rt.Close()
//
//	id, err := rt.NewID("Motor")
//	if err != nil {
//		return err
//	}
//	if err := rt.Register(model.NewSubmodel(id)); err != nil {
//		return err
//	}
//
// Generated identifiers are checked against every provider the runtime knows,
// so an id that exists in a remote registry is never handed out again.
package aas
