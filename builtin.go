package ci

// BuiltinFunc describes one process-wide builtin function (the
// handful of compiler intrinsics the typechecker and emitter special
// case instead of resolving to a user function declaration): its
// display name, declared parameter types (DTAny accepts any actual
// argument type), whether it is variadic, and its return type.
type BuiltinFunc struct {
	Name     string
	Params   []DataType
	Variadic bool
	Return   DataType
}

// BuiltinTable is the process-wide, immutable registry of builtin
// functions, built once at startup and threaded explicitly through the
// pipeline (resolver/typechecker/emitter each take one as an argument)
// rather than read from a package-level singleton.
type BuiltinTable struct {
	byIndex []BuiltinFunc
	byName  map[string]int
}

// NewBuiltinTable constructs the standard builtin set every translation
// unit sees: a small, deliberately non-exhaustive set of memory and
// variadic intrinsics a generic-C emitter must special-case because
// they have no ordinary function-call typing (their argument counts
// and types vary by call site).
func NewBuiltinTable() *BuiltinTable {
	t := &BuiltinTable{byName: map[string]int{}}
	anyPtr := DTPointer{Inner: DTAny{}}
	voidPtr := DTPointer{Inner: DTPrimitive{Kind: PrimVoid}}
	size := DTPrimitive{Kind: PrimUnsignedLong}

	t.add(BuiltinFunc{Name: "sizeof", Params: []DataType{DTAny{}}, Return: size})
	t.add(BuiltinFunc{Name: "alignof", Params: []DataType{DTAny{}}, Return: size})
	t.add(BuiltinFunc{Name: "__builtin_memcpy", Params: []DataType{voidPtr, anyPtr, size}, Return: voidPtr})
	t.add(BuiltinFunc{Name: "__builtin_memset", Params: []DataType{voidPtr, DTPrimitive{Kind: PrimInt}, size}, Return: voidPtr})
	t.add(BuiltinFunc{Name: "__builtin_memmove", Params: []DataType{voidPtr, anyPtr, size}, Return: voidPtr})
	t.add(BuiltinFunc{Name: "__builtin_expect", Params: []DataType{DTPrimitive{Kind: PrimLong}, DTPrimitive{Kind: PrimLong}}, Return: DTPrimitive{Kind: PrimLong}})
	t.add(BuiltinFunc{Name: "__builtin_unreachable", Params: nil, Return: DTPrimitive{Kind: PrimVoid}})
	t.add(BuiltinFunc{Name: "__builtin_va_start", Params: []DataType{DTAny{}, DTAny{}}, Return: DTPrimitive{Kind: PrimVoid}})
	t.add(BuiltinFunc{Name: "__builtin_va_end", Params: []DataType{DTAny{}}, Return: DTPrimitive{Kind: PrimVoid}})
	t.add(BuiltinFunc{Name: "printf", Params: []DataType{DTPointer{Inner: DTQualified{Inner: DTPrimitive{Kind: PrimChar}, PreConst: true}}}, Variadic: true, Return: DTPrimitive{Kind: PrimInt}})

	return t
}

func (t *BuiltinTable) add(f BuiltinFunc) {
	idx := len(t.byIndex)
	t.byIndex = append(t.byIndex, f)
	t.byName[f.Name] = idx
}

// Lookup finds a builtin by name, returning its index (stable for the
// lifetime of the table, suitable for ExprCallBuiltin.Builtin) and the
// function descriptor.
func (t *BuiltinTable) Lookup(name string) (int, BuiltinFunc, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return 0, BuiltinFunc{}, false
	}
	return idx, t.byIndex[idx], true
}

// ByIndex returns the builtin at idx, as materialized at parse time in
// an ExprCallBuiltin.
func (t *BuiltinTable) ByIndex(idx int) BuiltinFunc {
	return t.byIndex[idx]
}
