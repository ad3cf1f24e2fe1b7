package model

import (
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceSet_Lifecycle(t *testing.T) {
	ns := newTestNamespace()
	prop1 := mustProperty(t, "Prop1")
	prop2 := mustProperty(t, "Prop2")
	prop1alt := mustProperty(t, "Prop1")

	require.NoError(t, ns.set1.Add(prop1))
	require.NoError(t, ns.set1.Add(prop2))
	assert.Equal(t, 2, ns.set1.Len())

	got, err := ns.set1.Get("Prop1")
	require.NoError(t, err)
	assert.Same(t, prop1, got)
	assert.True(t, ns.set1.Contains(prop1))
	assert.False(t, ns.set1.Contains(prop1alt), "membership is by identity, not by name")
	assert.True(t, ns.set1.ContainsKey("Prop1"))
	assert.Same(t, ns, prop1.Parent())

	err = ns.set1.Add(prop1alt)
	require.ErrorIs(t, err, ErrDuplicateKey)
	assert.Nil(t, prop1alt.Parent())

	// idShorts are unique across all sets of one namespace.
	err = ns.set2.Add(prop2)
	require.ErrorIs(t, err, ErrDuplicateKey)

	require.NoError(t, ns.set1.Remove(prop1))
	assert.Equal(t, 1, ns.set1.Len())
	assert.Nil(t, prop1.Parent())
	require.NoError(t, ns.set2.Add(prop1alt))

	popped, err := ns.set1.Pop()
	require.NoError(t, err)
	assert.Same(t, prop2, popped)
	assert.Equal(t, 0, ns.set1.Len())
	assert.Nil(t, prop2.Parent())

	ns.set2.Clear()
	assert.Nil(t, prop1alt.Parent())
	assert.Equal(t, 0, ns.set2.Len())

	require.NoError(t, ns.set1.Add(prop1))
	ns.set1.Discard(prop1)
	assert.Equal(t, 0, ns.set1.Len())
	assert.Nil(t, prop1.Parent())
	ns.set1.Discard(prop1)
}

func TestNamespaceSet_SingleOwner(t *testing.T) {
	first := NewSubmodel("urn:x-test:first")
	second := NewSubmodel("urn:x-test:second")
	prop := mustProperty(t, "Shared")

	require.NoError(t, first.SubmodelElements.Add(prop))

	err := second.SubmodelElements.Add(prop)
	require.ErrorIs(t, err, ErrAlreadyOwned)

	var merr *Error
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, KindOwnership, merr.Kind)

	assert.Same(t, first, prop.Parent())
	assert.False(t, second.SubmodelElements.Contains(prop))

	require.NoError(t, first.SubmodelElements.Remove(prop))
	require.NoError(t, second.SubmodelElements.Add(prop))
	assert.Same(t, second, prop.Parent())
}

func TestNamespaceSet_Failures(t *testing.T) {
	ns := newTestNamespace()
	prop := mustProperty(t, "Prop1")
	stranger := mustProperty(t, "Prop1")
	require.NoError(t, ns.set1.Add(prop))

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name:    "remove different instance with same name",
			run:     func() error { return ns.set1.Remove(stranger) },
			wantErr: ErrNotFound,
		},
		{
			name:    "remove unknown key",
			run:     func() error { return ns.set1.RemoveKey("Missing") },
			wantErr: ErrNotFound,
		},
		{
			name: "get unknown key",
			run: func() error {
				_, err := ns.set1.Get("Missing")
				return err
			},
			wantErr: ErrNotFound,
		},
		{
			name: "pop empty set",
			run: func() error {
				_, err := ns.set2.Pop()
				return err
			},
			wantErr: ErrNotFound,
		},
		{
			name:    "add element without idShort",
			run:     func() error { return ns.set2.Add(mustProperty(t, "")) },
			wantErr: ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// None of the failures above may have changed the set.
	assert.Equal(t, 1, ns.set1.Len())
	assert.Same(t, ns, prop.Parent())
	assert.Nil(t, stranger.Parent())

	ns.set1.DiscardKey("Missing")
	ns.set1.Discard(stranger)
	assert.Equal(t, 1, ns.set1.Len())

	fallback := mustProperty(t, "Fallback")
	assert.Same(t, fallback, ns.set1.GetOr("Missing", fallback))
	assert.Same(t, prop, ns.set1.GetOr("Prop1", fallback))

	require.NoError(t, ns.set1.RemoveKey("Prop1"))
	assert.Nil(t, prop.Parent())
}

func TestNamespaceSet_Extend(t *testing.T) {
	ns := newTestNamespace()
	prop1 := mustProperty(t, "Prop1")
	prop2 := mustProperty(t, "Prop2")
	prop1alt := mustProperty(t, "Prop1")

	err := ns.set1.Extend(prop1, prop2, prop1alt)
	require.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 0, ns.set1.Len())
	assert.Nil(t, prop1.Parent())
	assert.Nil(t, prop2.Parent())

	require.NoError(t, ns.set1.Extend(prop1, prop2))
	assert.Equal(t, 2, ns.set1.Len())

	_, err = ns.GetReferable("Prop3")
	assert.ErrorIs(t, err, ErrNotFound)
	r, err := ns.GetReferable("Prop2")
	require.NoError(t, err)
	assert.Same(t, prop2, r)
}

func TestNamespaceSet_IterationIsStable(t *testing.T) {
	ns := newTestNamespace()
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		require.NoError(t, ns.set1.Add(mustProperty(t, name)))
	}
	require.NoError(t, ns.set1.RemoveKey("B"))

	first := slices.Collect(ns.set1.All())
	second := slices.Collect(ns.set1.All())
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)

	names := make([]string, 0, len(first))
	for _, p := range first {
		names = append(names, p.IDShort())
	}
	assert.ElementsMatch(t, []string{"A", "C", "D", "E"}, names)

	// Every remaining key still resolves to its element after the swap.
	for _, p := range first {
		got, err := ns.set1.Get(p.IDShort())
		require.NoError(t, err)
		assert.Same(t, p, got)
	}
}

func TestNamespaceSet_CaseInsensitiveKeys(t *testing.T) {
	ns := newTestNamespace(WithCaseInsensitiveKeys())
	prop := mustProperty(t, "Temperature")
	require.NoError(t, ns.set1.Add(prop))

	got, err := ns.set1.Get("TEMPERATURE")
	require.NoError(t, err)
	assert.Same(t, prop, got)

	err = ns.set1.Add(mustProperty(t, "temperature"))
	assert.ErrorIs(t, err, ErrDuplicateKey)

	// set2 is case-sensitive but still sees set1's folded key through the namespace.
	err = ns.set2.Add(mustProperty(t, "temperature"))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestNamespaceSet_AddHook(t *testing.T) {
	errTooMany := errors.New("too many elements")
	var seen []string
	hook := func(el Referable, siblings iter.Seq[Referable]) error {
		seen = append(seen, el.IDShort())
		count := 0
		for range siblings {
			count++
		}
		if count >= 2 {
			return errTooMany
		}
		return nil
	}

	ns := newTestNamespace(WithAddHook(hook))
	require.NoError(t, ns.set1.Add(mustProperty(t, "A")))
	require.NoError(t, ns.set1.Add(mustProperty(t, "B")))

	c := mustProperty(t, "C")
	err := ns.set1.Add(c)
	require.ErrorIs(t, err, errTooMany)
	assert.Nil(t, c.Parent())
	assert.Equal(t, 2, ns.set1.Len())
	assert.Equal(t, []string{"A", "B", "C"}, seen)
}

func TestNamespace_AddAndRemoveReferable(t *testing.T) {
	sm := NewSubmodel("urn:x-test:submodel")
	coll, err := NewSubmodelElementCollection("Motor")
	require.NoError(t, err)
	speed := mustProperty(t, "Speed")

	require.NoError(t, sm.AddReferable(coll))
	require.NoError(t, coll.AddReferable(speed))

	assert.Same(t, sm, coll.Parent())
	assert.Same(t, coll, speed.Parent())

	got, err := sm.GetReferable("Motor")
	require.NoError(t, err)
	assert.Same(t, coll, got)

	all := slices.Collect(sm.Referables())
	assert.Len(t, all, 1)

	require.NoError(t, sm.RemoveReferable("Motor"))
	assert.Nil(t, coll.Parent())
	assert.ErrorIs(t, sm.RemoveReferable("Motor"), ErrNotFound)

	// Nested ownership is unaffected by detaching the parent.
	assert.Same(t, coll, speed.Parent())
}

func TestNamespace_AddReferableWithoutMatchingSet(t *testing.T) {
	ns := newTestNamespace()
	coll, err := NewSubmodelElementCollection("Nested")
	require.NoError(t, err)

	err = ns.AddReferable(coll)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, coll.Parent())
}

func TestNamespaceSet_IDHooks(t *testing.T) {
	var deleted []string
	ns := newTestNamespace(
		WithIDSetHook(func(element Referable) {
			if element.IDShort() == "" {
				_ = element.SetIDShort("Auto")
			}
		}),
		WithIDDeleteHook(func(element Referable) {
			assert.Nil(t, element.Parent(), "delete hook runs after detaching")
			deleted = append(deleted, element.IDShort())
		}),
	)

	unnamed := mustProperty(t, "")
	require.NoError(t, ns.set1.Add(unnamed))
	assert.Equal(t, "Auto", unnamed.IDShort())

	// The set hook ran, the key collided, and the delete hook undid it.
	clash := mustProperty(t, "")
	require.ErrorIs(t, ns.set1.Add(clash), ErrDuplicateKey)
	assert.Equal(t, []string{"Auto"}, deleted)
	deleted = nil

	prop1 := mustProperty(t, "Prop1")
	prop2 := mustProperty(t, "Prop2")
	require.NoError(t, ns.set1.Extend(prop1, prop2))

	require.NoError(t, ns.set1.RemoveKey("Prop1"))
	ns.set1.Discard(prop2)
	ns.set1.Clear()
	assert.Equal(t, []string{"Prop1", "Prop2", "Auto"}, deleted)
}
