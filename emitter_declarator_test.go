package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestEmitter(t *testing.T) *Emitter {
	t.Helper()
	sink := NewSink()
	file := NewResultFile("test.c", NewSource("test.c", nil), sink)
	builtins := NewBuiltinTable()
	return NewEmitter(file, NewRegistry(), sink, builtins, NewPipelineConfig())
}

func intLit(v int64) *ExprLiteral {
	return &ExprLiteral{Kind: LitSignedInt, I64: v}
}

// int (*arr[3])(int): arr is an array of 3 pointers to function(int) int.
func TestDeclaratorArrayOfPointersToFunctions(t *testing.T) {
	e := newTestEmitter(t)
	ty := DTArray{
		Element: DTPointer{
			Inner: DTFunction{
				Params: []Param{{Type: DTPrimitive{Kind: PrimInt}}},
				Return: DTPrimitive{Kind: PrimInt},
			},
		},
		Sized: true,
		Size:  intLit(3),
	}
	got := emitTypeWithName(e, ty, "arr")
	assert.Equal(t, "int (*arr[3])(int)", got)
}

// int *f[10]
func TestDeclaratorArrayOfPointers(t *testing.T) {
	e := newTestEmitter(t)
	ty := DTArray{
		Element: DTPointer{Inner: DTPrimitive{Kind: PrimInt}},
		Sized:   true,
		Size:    intLit(10),
	}
	got := emitTypeWithName(e, ty, "f")
	assert.Equal(t, "int *f[10]", got)
}

// int (*f)(int)
func TestDeclaratorPointerToFunction(t *testing.T) {
	e := newTestEmitter(t)
	ty := DTPointer{
		Inner: DTFunction{
			Params: []Param{{Type: DTPrimitive{Kind: PrimInt}}},
			Return: DTPrimitive{Kind: PrimInt},
		},
	}
	got := emitTypeWithName(e, ty, "f")
	assert.Equal(t, "int (*f)(int)", got)
}

// int *f(int)
func TestDeclaratorFunctionReturningPointer(t *testing.T) {
	e := newTestEmitter(t)
	ty := DTFunction{
		Params: []Param{{Type: DTPrimitive{Kind: PrimInt}}},
		Return: DTPointer{Inner: DTPrimitive{Kind: PrimInt}},
	}
	got := emitTypeWithName(e, ty, "f")
	assert.Equal(t, "int *f(int)", got)
}

func TestDeclaratorAbstractDeclaratorHasNoTrailingSpace(t *testing.T) {
	e := newTestEmitter(t)
	got := emitTypeWithName(e, DTPointer{Inner: DTPrimitive{Kind: PrimInt}}, "")
	assert.Equal(t, "int *", got)
}

// const int a: pre-const qualifier precedes the base type.
func TestDeclaratorPreConst(t *testing.T) {
	e := newTestEmitter(t)
	ty := DTQualified{Inner: DTPrimitive{Kind: PrimInt}, PreConst: true}
	got := emitTypeWithName(e, ty, "a")
	assert.Equal(t, "const int a", got)
}

// int const a: post-const qualifier trails the base type, distinct
// from the pre-const spelling.
func TestDeclaratorPostConst(t *testing.T) {
	e := newTestEmitter(t)
	ty := DTQualified{Inner: DTPrimitive{Kind: PrimInt}, PostConst: true}
	got := emitTypeWithName(e, ty, "a")
	assert.Equal(t, "int const a", got)
}
