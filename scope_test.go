package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every scope a registry hands out carries a distinct, monotonically
// increasing id, including across nested child scopes.
func TestScopeRegistryAssignsUniqueIDs(t *testing.T) {
	reg := NewScopeRegistry()
	root := reg.NewScope(-1)
	child1 := reg.NewScope(root.ID)
	child2 := reg.NewScope(root.ID)
	grandchild := reg.NewScope(child1.ID)

	seen := map[int]bool{}
	for _, s := range []*Scope{root, child1, child2, grandchild} {
		assert.False(t, seen[s.ID], "id %d reused", s.ID)
		seen[s.ID] = true
	}
	assert.Equal(t, root.ID, reg.Parent(child1).ID)
	assert.Equal(t, root.ID, reg.Parent(child2).ID)
	assert.Equal(t, child1.ID, reg.Parent(grandchild).ID)
	assert.Nil(t, reg.Parent(root))
}

// A struct tag and a function may share a name in the same scope; a
// second function of the same name may not.
func TestScopeDeclareCollisionRules(t *testing.T) {
	sink := NewSink()
	reg := NewScopeRegistry()
	s := reg.NewScope(-1)

	ok := s.Declare("widget", SymFunction, 1, sink, Range{})
	require.True(t, ok)
	assert.False(t, sink.HasErrors())

	ok = s.Declare("widget", SymRecord, 2, sink, Range{})
	assert.True(t, ok, "a record tag should not collide with a function of the same name")
	assert.False(t, sink.HasErrors())

	ok = s.Declare("widget", SymFunction, 3, sink, Range{})
	assert.False(t, ok, "redeclaring a function under the same name must fail")
	assert.True(t, sink.HasErrors())
}

// Lookup walks from the innermost scope outward and stops at the first
// match, preferring a shadowing inner declaration.
func TestScopeLookupWalksParentChainAndShadows(t *testing.T) {
	sink := NewSink()
	reg := NewScopeRegistry()
	outer := reg.NewScope(-1)
	inner := reg.NewScope(outer.ID)

	require.True(t, outer.Declare("x", SymVariable, 10, sink, Range{}))
	require.True(t, outer.Declare("onlyOuter", SymVariable, 11, sink, Range{}))
	require.True(t, inner.Declare("x", SymVariable, 20, sink, Range{}))

	sym, ok := inner.Lookup("x", reg)
	require.True(t, ok)
	assert.Equal(t, 20, sym.DeclID, "inner declaration should shadow the outer one")

	sym, ok = inner.Lookup("onlyOuter", reg)
	require.True(t, ok)
	assert.Equal(t, 11, sym.DeclID)

	_, ok = inner.Lookup("missing", reg)
	assert.False(t, ok)
}

// A label may not share a name with a variable in the same scope; the
// two kinds fall in one collision group.
func TestScopeVariableAndLabelCollide(t *testing.T) {
	sink := NewSink()
	reg := NewScopeRegistry()
	s := reg.NewScope(-1)

	require.True(t, s.Declare("done", SymVariable, 1, sink, Range{}))
	ok := s.Declare("done", SymLabel, 2, sink, Range{})
	assert.False(t, ok, "labels collide with variables of the same name per collisionGroup")
	assert.True(t, sink.HasErrors())
}
