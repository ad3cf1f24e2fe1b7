// Package identification mints identifiers for new Identifiables.
//
// Two strategies implement Generator:
//
//   - UUIDGenerator returns version 1 UUID URNs (urn:uuid:...). The proposal
//     is ignored. Successive calls never collide, even within one clock tick.
//   - NamespaceIRIGenerator returns IRIs inside a fixed namespace, built from a
//     caller proposal, and probes an ObjectProvider to skip identifiers that
//     are already taken.
//
// # Namespace Probing
//
// For a proposal p in namespace ns the candidates are tried in this order:
//
//	ns + p
//	ns + p + "_0000"
//	ns + p + "_0001"
//	...
//
// An empty proposal yields ns + "0000", ns + "0001", and so on. The generator
// remembers, per proposal, the slot of the last identifier it handed out and
// resumes probing there. Probing stops after MaxProbes candidates with
// ErrProbeLimitExceeded.
//
// Proposals are quoted before use: IRI-reserved characters other than
// '/', '?', '=', '&' and '#' are percent-encoded and ASCII control characters
// are removed.
//
// # Usage
//
//	store, _ := model.NewDictObjectStore()
//	gen, err := identification.NewNamespaceIRIGenerator("https://example.com/ids/", store)
//	if err != nil {
//	    return err
//	}
//	id, err := gen.GenerateID("motor") // https://example.com/ids/motor
//
// Generators are not safe for concurrent use.
package identification
