package model

import (
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idShorts[T Referable](items []T) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.IDShort())
	}
	return names
}

func TestOrderedNamespaceSet_InsertAndOrder(t *testing.T) {
	ns := newTestOrderedNamespace()
	prop1 := mustProperty(t, "Prop1")
	prop2 := mustProperty(t, "Prop2")
	prop3 := mustProperty(t, "Prop3")

	require.NoError(t, ns.set1.Add(prop2))
	require.NoError(t, ns.set1.Insert(0, prop1))
	require.NoError(t, ns.set1.Insert(2, prop3))

	assert.Equal(t, []string{"Prop1", "Prop2", "Prop3"}, idShorts(slices.Collect(ns.set1.All())))

	for i, want := range []*Property{prop1, prop2, prop3} {
		got, err := ns.set1.At(i)
		require.NoError(t, err)
		assert.Same(t, want, got)
		assert.Equal(t, i, ns.set1.Index(want))
		assert.Same(t, ns, want.Parent())
	}

	byKey, err := ns.set1.Get("Prop3")
	require.NoError(t, err)
	assert.Same(t, prop3, byKey)

	err = ns.set1.Insert(4, mustProperty(t, "Prop4"))
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	err = ns.set1.Insert(-1, mustProperty(t, "Prop4"))
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	err = ns.set1.Insert(1, mustProperty(t, "Prop2"))
	require.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 3, ns.set1.Len())
}

func TestOrderedNamespaceSet_Set(t *testing.T) {
	ns := newTestOrderedNamespace()
	prop1 := mustProperty(t, "Prop1")
	prop2 := mustProperty(t, "Prop2")
	prop3 := mustProperty(t, "Prop3")
	require.NoError(t, ns.set1.Extend(prop1, prop2))

	// Setting an element whose name belongs to a different element fails.
	err := ns.set1.Set(0, prop2)
	require.ErrorIs(t, err, ErrDuplicateKey)
	err = ns.set1.Set(0, mustProperty(t, "Prop2"))
	require.ErrorIs(t, err, ErrDuplicateKey)
	assert.Same(t, ns, prop1.Parent())

	require.NoError(t, ns.set1.Set(0, prop3))
	assert.Nil(t, prop1.Parent())
	assert.Same(t, ns, prop3.Parent())
	assert.Equal(t, []string{"Prop3", "Prop2"}, idShorts(slices.Collect(ns.set1.All())))
	assert.False(t, ns.set1.ContainsKey("Prop1"))
	assert.Equal(t, 0, ns.set1.Index(prop3))

	// The displaced element's name may be reused.
	prop3alt := mustProperty(t, "Prop3")
	require.NoError(t, ns.set1.Set(0, prop3alt))
	assert.Nil(t, prop3.Parent())
	assert.Same(t, prop3alt, ns.set1.GetOr("Prop3", nil))

	// Re-setting the same instance changes nothing.
	require.NoError(t, ns.set1.Set(0, prop3alt))
	assert.Same(t, ns, prop3alt.Parent())

	err = ns.set1.Set(2, prop1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Nil(t, prop1.Parent())
}

func TestOrderedNamespaceSet_DeleteAndPop(t *testing.T) {
	ns := newTestOrderedNamespace()
	props := []*Property{
		mustProperty(t, "A"),
		mustProperty(t, "B"),
		mustProperty(t, "C"),
		mustProperty(t, "D"),
	}
	require.NoError(t, ns.set1.Extend(props...))

	require.NoError(t, ns.set1.Delete(1))
	assert.Equal(t, 3, ns.set1.Len())
	assert.Nil(t, props[1].Parent())
	assert.Equal(t, []string{"A", "C", "D"}, idShorts(slices.Collect(ns.set1.All())))
	assert.Equal(t, 1, ns.set1.Index(props[2]), "positions after the deletion shift forward")
	assert.Equal(t, -1, ns.set1.Index(props[1]))

	popped, err := ns.set1.PopAt(0)
	require.NoError(t, err)
	assert.Same(t, props[0], popped)
	assert.Nil(t, popped.Parent())

	last, err := ns.set1.Pop()
	require.NoError(t, err)
	assert.Same(t, props[3], last)
	assert.Equal(t, []string{"C"}, idShorts(slices.Collect(ns.set1.All())))

	assert.ErrorIs(t, ns.set1.Delete(1), ErrIndexOutOfRange)
	_, err = ns.set1.PopAt(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = ns.set1.At(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	require.NoError(t, ns.set1.RemoveKey("C"))
	_, err = ns.set1.Pop()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderedNamespaceSet_RemoveAndClear(t *testing.T) {
	ns := newTestOrderedNamespace()
	prop1 := mustProperty(t, "Prop1")
	prop2 := mustProperty(t, "Prop2")
	stranger := mustProperty(t, "Prop1")
	require.NoError(t, ns.set1.Extend(prop1, prop2))

	assert.ErrorIs(t, ns.set1.Remove(stranger), ErrNotFound)
	assert.ErrorIs(t, ns.set1.RemoveKey("Missing"), ErrNotFound)
	ns.set1.Discard(stranger)
	ns.set1.DiscardKey("Missing")
	assert.Equal(t, 2, ns.set1.Len())
	assert.False(t, ns.set1.Contains(stranger))

	// Names are shared with the sibling set.
	assert.ErrorIs(t, ns.set2.Add(stranger), ErrDuplicateKey)

	require.NoError(t, ns.set1.Remove(prop1))
	assert.Nil(t, prop1.Parent())
	assert.Equal(t, 0, ns.set1.Index(prop2))
	require.NoError(t, ns.set2.Add(stranger))

	ns.set1.Clear()
	assert.Equal(t, 0, ns.set1.Len())
	assert.Nil(t, prop2.Parent())
	assert.False(t, ns.set1.ContainsKey("Prop2"))
	assert.Same(t, ns, stranger.Parent())
}

func TestOrderedNamespaceSet_ExtendRollback(t *testing.T) {
	ns := newTestOrderedNamespace()
	existing := mustProperty(t, "Existing")
	require.NoError(t, ns.set2.Add(existing))

	a := mustProperty(t, "A")
	b := mustProperty(t, "B")
	err := ns.set1.Extend(a, b, mustProperty(t, "Existing"))
	require.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 0, ns.set1.Len())
	assert.Nil(t, a.Parent())
	assert.Nil(t, b.Parent())
}

func TestSubmodelElementList_NestedOwnership(t *testing.T) {
	sm := NewSubmodel("urn:x-test:list")
	list, err := NewSubmodelElementList("Readings")
	require.NoError(t, err)
	require.NoError(t, sm.SubmodelElements.Add(list))

	first := mustProperty(t, "First")
	second := mustProperty(t, "Second")
	require.NoError(t, list.Value.Add(second))
	require.NoError(t, list.Value.Insert(0, first))

	assert.Same(t, list, first.Parent())
	assert.Same(t, sm, list.Parent())
	assert.Equal(t, []string{"First", "Second"}, idShorts(slices.Collect(list.Value.All())))

	// An element in the list cannot also live directly in the submodel.
	assert.ErrorIs(t, sm.SubmodelElements.Add(first), ErrAlreadyOwned)

	got, err := list.GetReferable("Second")
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestOrderedNamespaceSet_SetHookSiblings(t *testing.T) {
	var seen []string
	hook := func(element Referable, siblings iter.Seq[Referable]) error {
		seen = seen[:0]
		for s := range siblings {
			if s.IDShort() == element.IDShort() {
				return ErrDuplicateKey
			}
			seen = append(seen, s.IDShort())
		}
		return nil
	}
	ns := newTestOrderedNamespace(WithAddHook(hook))
	require.NoError(t, ns.set1.Extend(mustProperty(t, "A"), mustProperty(t, "B"), mustProperty(t, "C")))

	// A same-name replacement does not see the element it displaces.
	replacement := mustProperty(t, "B")
	require.NoError(t, ns.set1.Set(1, replacement))
	assert.Equal(t, []string{"A", "C"}, seen)
	assert.Same(t, replacement, ns.set1.GetOr("B", nil))

	assert.ErrorIs(t, ns.set1.Set(0, mustProperty(t, "C")), ErrDuplicateKey)
}

func TestSubmodelElementList_UnnamedItems(t *testing.T) {
	list, err := NewSubmodelElementList("Readings")
	require.NoError(t, err)

	first := mustProperty(t, "")
	second := mustProperty(t, "")
	named := mustProperty(t, "Named")
	require.NoError(t, list.Value.Extend(first, second, named))

	assert.True(t, strings.HasPrefix(first.IDShort(), generatedIDShortPrefix))
	assert.True(t, strings.HasPrefix(second.IDShort(), generatedIDShortPrefix))
	assert.NotEqual(t, first.IDShort(), second.IDShort())
	assert.Same(t, list, first.Parent())

	got, err := list.Value.Get(first.IDShort())
	require.NoError(t, err)
	assert.Same(t, first, got)

	require.NoError(t, list.Value.Delete(0))
	assert.Empty(t, first.IDShort(), "removal hands the item back unnamed")
	assert.Nil(t, first.Parent())

	// Re-adding gets a fresh name.
	require.NoError(t, list.Value.Add(first))
	assert.True(t, strings.HasPrefix(first.IDShort(), generatedIDShortPrefix))

	list.Value.Clear()
	assert.Empty(t, first.IDShort())
	assert.Empty(t, second.IDShort())
	assert.Equal(t, "Named", named.IDShort())

	// Other containers still require a name.
	sm := NewSubmodel("urn:x-test:list")
	assert.ErrorIs(t, sm.SubmodelElements.Add(mustProperty(t, "")), ErrInvalidName)
}

func TestSubmodelElementList_UnnamedItemRejected(t *testing.T) {
	other, err := NewSubmodelElementList("Other")
	require.NoError(t, err)
	list, err := NewSubmodelElementList("Readings", WithAddHook(func(Referable, iter.Seq[Referable]) error {
		return ErrInvalidConfig
	}))
	require.NoError(t, err)

	item := mustProperty(t, "")
	require.ErrorIs(t, list.Value.Add(item), ErrInvalidConfig)
	assert.Empty(t, item.IDShort(), "a failed insertion does not leave a generated name behind")

	require.NoError(t, other.Value.Add(item))
	name := item.IDShort()
	require.ErrorIs(t, list.Value.Add(item), ErrAlreadyOwned)
	assert.Equal(t, name, item.IDShort())
}
