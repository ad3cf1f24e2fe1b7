package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testNamespace is a namespace owner with two sets of properties, like the
// element types that hold several kinds of children.
type testNamespace struct {
	ReferableBase
	NamespaceBase

	set1 *NamespaceSet[*Property]
	set2 *NamespaceSet[*Property]
}

func (*testNamespace) ModelType() ModelType { return ModelTypeUnknown }

func newTestNamespace(opts ...SetOption) *testNamespace {
	ns := &testNamespace{}
	ns.set1 = NewNamespaceSet[*Property](ns, opts...)
	ns.set2 = NewNamespaceSet[*Property](ns)
	return ns
}

type testOrderedNamespace struct {
	ReferableBase
	NamespaceBase

	set1 *OrderedNamespaceSet[*Property]
	set2 *OrderedNamespaceSet[*Property]
}

func (*testOrderedNamespace) ModelType() ModelType { return ModelTypeUnknown }

func newTestOrderedNamespace(opts ...SetOption) *testOrderedNamespace {
	ns := &testOrderedNamespace{}
	ns.set1 = NewOrderedNamespaceSet[*Property](ns, opts...)
	ns.set2 = NewOrderedNamespaceSet[*Property](ns)
	return ns
}

func mustProperty(t *testing.T, idShort string) *Property {
	t.Helper()
	p, err := NewProperty(idShort, "xs:int")
	require.NoError(t, err)
	return p
}
