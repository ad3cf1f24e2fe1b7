package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for model operations.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrDuplicateKey indicates that an insertion would create two live entries
	// under one key in one scope: an idShort collision inside a namespace or an
	// identifier collision inside an object store.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound indicates that a strict lookup did not find the requested key.
	//
	// Example:
	//	obj, err := store.GetIdentifiable("urn:x-test:aas1")
	//	if errors.Is(err, model.ErrNotFound) {
	//	    // fall back to another source
	//	}
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates a malformed constructor argument, e.g. a
	// namespace IRI that does not end in '#', '/' or '='.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrIndexOutOfRange indicates a positional operation on an ordered set
	// was given an index outside of its bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidName indicates an idShort that violates the naming syntax, or a
	// missing idShort where one is required.
	ErrInvalidName = errors.New("invalid idShort")

	// ErrAlreadyOwned indicates that an element is still attached to another
	// namespace and therefore cannot be attached (or renamed) here.
	ErrAlreadyOwned = errors.New("element already belongs to a namespace")
)

// Error kinds categorize model errors.
const (
	KindDuplicateKey    = "duplicate_key"
	KindNotFound        = "not_found"
	KindInvalidConfig   = "invalid_config"
	KindIndexOutOfRange = "index_out_of_range"
	KindInvalidName     = "invalid_name"
	KindOwnership       = "ownership"
)

// Error is a structured error that records the failed operation and the
// category of failure around one of the sentinel errors above.
//
// Error supports errors.Is() and errors.As():
//
//	err := set.Add(prop)
//	var merr *model.Error
//	if errors.As(err, &merr) && merr.Kind == model.KindDuplicateKey {
//	    // choose another idShort
//	}
type Error struct {
	// Op is the operation that failed (e.g., "NamespaceSet.Add").
	Op string

	// Kind categorizes the error (e.g., KindNotFound).
	Kind string

	// Err is the underlying sentinel error.
	Err error

	// Context carries the offending key, index or identifier (optional).
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("model: %s: %s", e.Op, e.Kind)
	}
	if len(e.Context) > 0 {
		return fmt.Sprintf("model: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}
	return fmt.Sprintf("model: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind (and Op, when the target sets one), or
// delegates to the wrapped sentinel.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// WithContext returns a copy of e with the provided context merged in.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	merged := make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	newErr.Context = merged
	return &newErr
}

func duplicateKey(op, key string) *Error {
	return &Error{Op: op, Kind: KindDuplicateKey, Err: ErrDuplicateKey, Context: map[string]any{"key": key}}
}

func notFound(op, key string) *Error {
	return &Error{Op: op, Kind: KindNotFound, Err: ErrNotFound, Context: map[string]any{"key": key}}
}

func indexOutOfRange(op string, index, length int) *Error {
	return &Error{
		Op:      op,
		Kind:    KindIndexOutOfRange,
		Err:     ErrIndexOutOfRange,
		Context: map[string]any{"index": index, "len": length},
	}
}

func invalidName(op, name string) *Error {
	return &Error{Op: op, Kind: KindInvalidName, Err: ErrInvalidName, Context: map[string]any{"id_short": name}}
}

func alreadyOwned(op, name string) *Error {
	return &Error{Op: op, Kind: KindOwnership, Err: ErrAlreadyOwned, Context: map[string]any{"id_short": name}}
}

// NewNotFoundError creates an *Error of KindNotFound for the given key.
// Providers outside this package use it so that ObjectProviderMultiplexer
// recognizes their misses.
func NewNotFoundError(op, key string) *Error {
	return notFound(op, key)
}

// NewInvalidConfigError creates an *Error of KindInvalidConfig wrapping
// ErrInvalidConfig with a description of what was wrong.
func NewInvalidConfigError(op, reason string) *Error {
	return &Error{
		Op:      op,
		Kind:    KindInvalidConfig,
		Err:     fmt.Errorf("%w: %s", ErrInvalidConfig, reason),
		Context: nil,
	}
}
