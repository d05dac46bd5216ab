package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, file *ResultFile, sink *Sink) *Resolver {
	t.Helper()
	return NewResolver(file, NewRegistry(), sink, NewMonomorphizer(file, sink))
}

// A typedef chain resolves down to its underlying primitive.
func TestResolverExpandsTypedefChain(t *testing.T) {
	file, sink := newTestFile(t)
	file.AppendDecl(&DeclTypedef{Name: "byte_t", Aliased: DTPrimitive{Kind: PrimUnsignedChar}})
	file.AppendDecl(&DeclTypedef{Name: "octet_t", Aliased: DTTypedefRef{Name: "byte_t"}})

	got, err := newTestResolver(t, file, sink).Resolve(DTTypedefRef{Name: "octet_t"}, GenericBindingPair{})
	require.NoError(t, err)
	prim, ok := got.(DTPrimitive)
	require.True(t, ok)
	assert.Equal(t, PrimUnsignedChar, prim.Kind)
}

// A self-referential typedef chain is a resolver error, not infinite
// recursion.
func TestResolverDetectsTypedefCycle(t *testing.T) {
	file, sink := newTestFile(t)
	file.AppendDecl(&DeclTypedef{Name: "a_t", Aliased: DTTypedefRef{Name: "b_t"}})
	file.AppendDecl(&DeclTypedef{Name: "b_t", Aliased: DTTypedefRef{Name: "a_t"}})

	_, err := newTestResolver(t, file, sink).Resolve(DTTypedefRef{Name: "a_t"}, GenericBindingPair{})
	assert.Error(t, err)
}

// A generic parameter reference substitutes against the binding pair;
// one left unbound passes through unchanged.
func TestResolverSubstitutesGenericVar(t *testing.T) {
	file, sink := newTestFile(t)
	resolver := newTestResolver(t, file, sink)
	binding := GenericBindingPair{Called: []DataType{DTPrimitive{Kind: PrimDouble}}, Decl: []string{"T"}}

	got, err := resolver.Resolve(DTGenericVar{Name: "T"}, binding)
	require.NoError(t, err)
	assert.Equal(t, DTPrimitive{Kind: PrimDouble}, got)

	got, err = resolver.Resolve(DTGenericVar{Name: "U"}, binding)
	require.NoError(t, err)
	assert.Equal(t, DTGenericVar{Name: "U"}, got)
}

func TestResolverPredicates(t *testing.T) {
	assert.True(t, IsInteger(DTPrimitive{Kind: PrimInt}))
	assert.True(t, IsInteger(DTQualified{Inner: DTPrimitive{Kind: PrimInt}, PreConst: true}))
	assert.False(t, IsInteger(DTPrimitive{Kind: PrimFloat}))
	assert.True(t, IsFloat(DTPrimitive{Kind: PrimDouble}))
	assert.True(t, IsArithmetic(DTPrimitive{Kind: PrimInt}))
	assert.True(t, IsPtr(DTPointer{Inner: DTPrimitive{Kind: PrimVoid}}))
	assert.True(t, IsArray(DTArray{Element: DTPrimitive{Kind: PrimInt}}))
	assert.True(t, IsArrayCompatible(DTArray{Element: DTPrimitive{Kind: PrimInt}}))
	assert.True(t, IsArrayCompatible(DTPointer{Inner: DTPrimitive{Kind: PrimInt}}))
	assert.True(t, IsVoid(DTPrimitive{Kind: PrimVoid}))
	assert.True(t, IsCompatibleWithVoidPtr(DTPointer{Inner: DTPrimitive{Kind: PrimVoid}}))
	assert.False(t, IsCompatibleWithVoidPtr(DTPointer{Inner: DTPrimitive{Kind: PrimInt}}))
	assert.Equal(t, DTPrimitive{Kind: PrimInt}, UnwrapPtr(DTPointer{Inner: DTPrimitive{Kind: PrimInt}}))
	assert.Nil(t, UnwrapPtr(DTPrimitive{Kind: PrimInt}))
}

// A generic struct tag reference resolves to a flattened DTNamed
// carrying the mangled instance name, with no leftover Args - the same
// on-demand materialization the emitter relies on.
func TestResolverMaterializesGenericTagOnDemand(t *testing.T) {
	file, sink := newTestFile(t)
	template := &DeclStruct{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "Box",
		Generics: []string{"T"},
		Body:     &RecordBody{Fields: []*Field{{Name: "value", Type: DTGenericVar{Name: "T"}}}},
	}
	file.AppendDecl(template)

	ref := DTNamed{TagKind: TagStruct, Tag: "Box", Args: []DataType{DTPrimitive{Kind: PrimInt}}}
	got, err := newTestResolver(t, file, sink).Resolve(ref, GenericBindingPair{})
	require.NoError(t, err)

	named, ok := got.(DTNamed)
	require.True(t, ok)
	assert.Equal(t, "Box__int", named.Tag)
	assert.Empty(t, named.Args)
}
