package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTypechecker(t *testing.T, file *ResultFile, sink *Sink) *Typechecker {
	t.Helper()
	return NewTypechecker(file, NewRegistry(), sink, NewBuiltinTable())
}

// Scenario 5: assigning one array-typed local to another is rejected -
// a C array has no assignment operator, whole-array or otherwise.
func TestTypecheckRejectsArrayAssignment(t *testing.T) {
	file, sink := newTestFile(t)
	arrType := DTArray{Element: DTPrimitive{Kind: PrimInt}, Sized: true, Size: intLit(4)}
	fn := &DeclFunction{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "f",
		Return:   DTPrimitive{Kind: PrimVoid},
		Body: &StmtBlock{
			Body: []Item{
				{Decl: &DeclVariable{Name: "arr1", Type: arrType}},
				{Decl: &DeclVariable{Name: "arr2", Type: arrType}},
				{Expr: &ExprBinary{
					Kind:  BinAssign,
					Left:  &ExprIdentifier{Name: "arr1"},
					Right: &ExprIdentifier{Name: "arr2"},
				}},
			},
		},
	}
	file.AppendDecl(fn)

	newTestTypechecker(t, file, sink).Check()

	require.True(t, sink.HasErrors())
	var found bool
	for _, d := range sink.All() {
		if d.Message == "cannot assign expression to array data type" {
			found = true
		}
	}
	assert.True(t, found, "expected the array-assignment diagnostic, got: %v", sink.All())
}

// A plain scalar assignment between compatible types reports nothing.
func TestTypecheckAllowsScalarAssignment(t *testing.T) {
	file, sink := newTestFile(t)
	fn := &DeclFunction{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "f",
		Return:   DTPrimitive{Kind: PrimVoid},
		Body: &StmtBlock{
			Body: []Item{
				{Decl: &DeclVariable{Name: "a", Type: DTPrimitive{Kind: PrimInt}}},
				{Expr: &ExprBinary{
					Kind:  BinAssign,
					Left:  &ExprIdentifier{Name: "a"},
					Right: intLit(1),
				}},
			},
		},
	}
	file.AppendDecl(fn)

	newTestTypechecker(t, file, sink).Check()

	assert.False(t, sink.HasErrors())
}

// 'break' outside any loop or switch is rejected regardless of which
// function it appears in.
func TestTypecheckRejectsBreakOutsideLoop(t *testing.T) {
	file, sink := newTestFile(t)
	fn := &DeclFunction{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "f",
		Return:   DTPrimitive{Kind: PrimVoid},
		Body: &StmtBlock{
			Body: []Item{
				{Stmt: &StmtBreak{}},
			},
		},
	}
	file.AppendDecl(fn)

	newTestTypechecker(t, file, sink).Check()

	require.True(t, sink.HasErrors())
	assert.Contains(t, sink.All()[0].Message, "'break' outside loop or switch")
}

// A violation in one top-level declaration does not suppress checking
// of the declarations that come after it.
func TestTypecheckContinuesAfterAFailingDecl(t *testing.T) {
	file, sink := newTestFile(t)
	bad := &DeclFunction{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "bad",
		Return:   DTPrimitive{Kind: PrimVoid},
		Body:     &StmtBlock{Body: []Item{{Stmt: &StmtBreak{}}}},
	}
	good := &DeclFunction{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "good",
		Return:   DTPrimitive{Kind: PrimVoid},
		Body: &StmtBlock{Body: []Item{
			{Stmt: &StmtReturn{}},
		}},
	}
	file.AppendDecl(bad)
	file.AppendDecl(good)

	newTestTypechecker(t, file, sink).Check()

	require.True(t, sink.HasErrors())
	assert.Equal(t, 1, sink.Count(SeverityError), "the sibling declaration should not add its own diagnostics")
}
