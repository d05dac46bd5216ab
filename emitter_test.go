package ci

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFile(t *testing.T) (*ResultFile, *Sink) {
	t.Helper()
	sink := NewSink()
	file := NewResultFile("test.c", NewSource("test.c", nil), sink)
	return file, sink
}

func generate(t *testing.T, file *ResultFile, sink *Sink) string {
	t.Helper()
	out, err := NewEmitter(file, NewRegistry(), sink, NewBuiltinTable(), NewPipelineConfig()).Generate()
	require.NoError(t, err)
	return out
}

// Scenario 1: a plain function emits its prototype, then its body.
func TestEmitSimpleFunction(t *testing.T) {
	file, sink := newTestFile(t)
	fn := &DeclFunction{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "add",
		Return:   DTPrimitive{Kind: PrimInt},
		Params: []Param{
			{Name: "a", Type: DTPrimitive{Kind: PrimInt}},
			{Name: "b", Type: DTPrimitive{Kind: PrimInt}},
		},
		Body: &StmtBlock{
			Body: []Item{
				{Stmt: &StmtReturn{Value: &ExprBinary{
					Kind:  BinAdd,
					Left:  &ExprIdentifier{Name: "a"},
					Right: &ExprIdentifier{Name: "b"},
				}}},
			},
		},
	}
	file.AppendDecl(fn)

	out := generate(t, file, sink)
	assert.Contains(t, out, "int add(int a, int b);")
	assert.Contains(t, out, "int add(int a, int b) {")
	assert.Contains(t, out, "return a + b;")
}

// Scenario 2: a use-site generic struct reference materializes a
// monomorphic instance on demand and spells the mangled tag name.
func TestEmitGenericStructInstantiation(t *testing.T) {
	file, sink := newTestFile(t)
	template := &DeclStruct{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "Box",
		Generics: []string{"T"},
		Body: &RecordBody{Fields: []*Field{
			{Name: "value", Type: DTGenericVar{Name: "T"}},
		}},
	}
	file.AppendDecl(template)

	v := &DeclVariable{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "b",
		Type: DTNamed{
			TagKind: TagStruct,
			Tag:     "Box",
			Args:    []DataType{DTPrimitive{Kind: PrimInt}},
		},
	}
	file.AppendDecl(v)

	out := generate(t, file, sink)
	assert.Contains(t, out, "struct Box__int {")
	assert.Contains(t, out, "int value;")
	assert.Contains(t, out, "struct Box__int b;")
}

// Scenario 3: the declarator-reconstruction algorithm round-trips
// through the full emitter, not just emitTypeWithName in isolation.
func TestEmitNestedDeclaratorField(t *testing.T) {
	file, sink := newTestFile(t)
	s := &DeclStruct{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "Handlers",
		Body: &RecordBody{Fields: []*Field{
			{Name: "table", Type: DTArray{
				Element: DTPointer{Inner: DTFunction{
					Params: []Param{{Type: DTPrimitive{Kind: PrimInt}}},
					Return: DTPrimitive{Kind: PrimInt},
				}},
				Sized: true,
				Size:  intLit(3),
			}},
		}},
	}
	file.AppendDecl(s)

	out := generate(t, file, sink)
	assert.Contains(t, out, "int (*table[3])(int);")
}

// Scenario 4: case labels sit one level in from their switch, with the
// case body one level further in.
func TestEmitSwitchCaseIndentation(t *testing.T) {
	file, sink := newTestFile(t)
	fn := &DeclFunction{
		DeclBase: DeclBase{ID: file.NextDeclID()},
		Name:     "classify",
		Return:   DTPrimitive{Kind: PrimInt},
		Params:   []Param{{Name: "x", Type: DTPrimitive{Kind: PrimInt}}},
		Body: &StmtBlock{
			Body: []Item{
				{Stmt: &StmtSwitch{
					Scrutinee: &ExprIdentifier{Name: "x"},
					Body: &StmtBlock{Body: []Item{
						{Stmt: &StmtCase{Value: intLit(1)}},
						{Stmt: &StmtReturn{Value: intLit(10)}},
						{Stmt: &StmtBreak{}},
						{Stmt: &StmtDefault{}},
						{Stmt: &StmtReturn{Value: intLit(0)}},
					}},
				}},
			},
		},
	}
	file.AppendDecl(fn)

	out := generate(t, file, sink)
	lines := strings.Split(out, "\n")
	var switchIndent, caseIndent, bodyIndent string
	for i, l := range lines {
		switch {
		case strings.Contains(l, "switch ("):
			switchIndent = leadingSpace(l)
		case strings.Contains(l, "case 1:"):
			caseIndent = leadingSpace(l)
			if i+1 < len(lines) {
				bodyIndent = leadingSpace(lines[i+1])
			}
		}
	}
	assert.Equal(t, switchIndent+"    ", caseIndent, "case label should sit one level in from the switch")
	assert.Greater(t, len(bodyIndent), len(caseIndent), "case body should be one level deeper than its label")
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " "))]
}
