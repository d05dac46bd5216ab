package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monomorphization is idempotent: instantiating the same template with
// the same concrete arguments twice returns the same generated decl,
// not a second copy appended to the file.
func TestMonomorphizationIsIdempotent(t *testing.T) {
	sink := NewSink()
	file := NewResultFile("test.c", NewSource("test.c", nil), sink)
	template := &DeclStruct{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "Box",
		Generics: []string{"T"},
		Body: &RecordBody{Fields: []*Field{
			{Name: "value", Type: DTGenericVar{Name: "T"}},
		}},
	}
	file.AppendDecl(template)

	mono := NewMonomorphizer(file, sink)
	args := []DataType{DTPrimitive{Kind: PrimInt}}

	first, err := mono.InstantiateStruct(template, args, Range{})
	require.NoError(t, err)
	second, err := mono.InstantiateStruct(template, args, Range{})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "Box__int", first.MangledName)

	count := 0
	for _, d := range file.Decls {
		if _, ok := d.(*DeclStructGen); ok {
			count++
		}
	}
	assert.Equal(t, 1, count, "a second instantiation with identical args must not append a second decl")
}

// Distinct argument tuples against the same template mangle to
// distinct names and produce distinct instances.
func TestMonomorphizationDistinguishesArgs(t *testing.T) {
	sink := NewSink()
	file := NewResultFile("test.c", NewSource("test.c", nil), sink)
	template := &DeclStruct{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "Box",
		Generics: []string{"T"},
		Body: &RecordBody{Fields: []*Field{
			{Name: "value", Type: DTGenericVar{Name: "T"}},
		}},
	}
	file.AppendDecl(template)

	mono := NewMonomorphizer(file, sink)
	intBox, err := mono.InstantiateStruct(template, []DataType{DTPrimitive{Kind: PrimInt}}, Range{})
	require.NoError(t, err)
	floatBox, err := mono.InstantiateStruct(template, []DataType{DTPrimitive{Kind: PrimFloat}}, Range{})
	require.NoError(t, err)

	assert.NotEqual(t, intBox.MangledName, floatBox.MangledName)
	assert.Equal(t, "Box__int", intBox.MangledName)
	assert.Equal(t, "Box__float", floatBox.MangledName)

	intField := intBox.Body.Fields[0].Type.(DTPrimitive)
	floatField := floatBox.Body.Fields[0].Type.(DTPrimitive)
	assert.Equal(t, PrimInt, intField.Kind)
	assert.Equal(t, PrimFloat, floatField.Kind)
}

// A DTNamed reference nested inside another generic's field
// substitutes its own Args, not just the outer variable.
func TestSubstituteTypeDeepensIntoNamedArgs(t *testing.T) {
	inner := DTNamed{TagKind: TagStruct, Tag: "Box", Args: []DataType{DTGenericVar{Name: "T"}}}
	binding := GenericBindingPair{Called: []DataType{DTPrimitive{Kind: PrimInt}}, Decl: []string{"T"}}

	got := substituteType(inner, binding)
	named, ok := got.(DTNamed)
	require.True(t, ok)
	require.Len(t, named.Args, 1)
	prim, ok := named.Args[0].(DTPrimitive)
	require.True(t, ok)
	assert.Equal(t, PrimInt, prim.Kind)
}
