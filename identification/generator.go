package identification

import "errors"

// Generator creates identifiers for Identifiables.
type Generator interface {
	// GenerateID returns a new identifier. proposal is a hint for the
	// human-readable part of the identifier; implementations may alter or
	// ignore it.
	GenerateID(proposal string) (string, error)
}

// ErrProbeLimitExceeded is returned by NamespaceIRIGenerator when every
// candidate within the probe limit is already taken.
var ErrProbeLimitExceeded = errors.New("identifier probe limit exceeded")
