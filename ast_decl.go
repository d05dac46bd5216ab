package ci

// StorageClass is a bitmask of C storage-class specifiers plus the
// C23 constexpr/thread_local additions, part of every Declaration's
// shared prefix.
type StorageClass int

const StorageNone StorageClass = 0

const (
	StorageTypedef StorageClass = 1 << iota
	StorageExtern
	StorageStatic
	StorageAuto
	StorageRegister
	StorageThreadLocal
	StorageConstexpr
	StorageInline
	StorageNoreturn
)

// Attribute is one `[[name]]` / `[[name(arg)]]` applied to a
// declaration or statement.
type Attribute struct {
	Name string
	Arg  string
	Range Range
}

// DeclBase is the shared prefix every Declaration variant embeds:
// storage-class flags, whether this is a prototype-only declaration,
// an optional typedef-binding name, and attached attributes.
type DeclBase struct {
	ID           int
	ScopeID      int
	Storage      StorageClass
	IsPrototype  bool
	TypedefName  string
	Attributes   []Attribute
	Range        Range
}

// Declaration is the discriminated union of every top-level or local
// declaration kind.
type Declaration interface {
	isDecl()
	Base() *DeclBase
}

// EnumVariant is one enumerator: an explicit discriminant expression,
// or nil to take the default (previous + 1, or 0 for the first).
type EnumVariant struct {
	Name       string
	Discriminant Expr
	Range      Range
}

// DeclEnum is an `enum` declaration/definition.
type DeclEnum struct {
	DeclBase
	Name     string
	Underlying DataType // nil when not explicit
	Variants []EnumVariant
}

func (d *DeclEnum) isDecl()          {}
func (d *DeclEnum) Base() *DeclBase  { return &d.DeclBase }

// Field is one struct/union member: either a named field with a type
// and optional bit-width, or an anonymous nested struct/union whose
// Parent back-edge points at the RecordBody it is nested inside.
type Field struct {
	Name     string
	Type     DataType
	BitWidth Expr
	Anonymous *RecordBody
	Parent    *RecordBody
	Range     Range
}

// RecordBody is the field list of a struct/union (generic or not).
type RecordBody struct {
	Fields []*Field
}

// DeclStruct / DeclUnion are struct/union declarations, optionally
// generic (Generics non-empty) and optionally opaque (Body nil - a
// forward declaration).
type DeclStruct struct {
	DeclBase
	Name     string
	Generics []string
	Body     *RecordBody
}

func (d *DeclStruct) isDecl()         {}
func (d *DeclStruct) Base() *DeclBase { return &d.DeclBase }

type DeclUnion struct {
	DeclBase
	Name     string
	Generics []string
	Body     *RecordBody
}

func (d *DeclUnion) isDecl()         {}
func (d *DeclUnion) Base() *DeclBase { return &d.DeclBase }

// GenericArgs is the concrete type-argument tuple a monomorphized
// declaration was produced from.
type GenericArgs []DataType

// DeclStructGen / DeclUnionGen / DeclTypedefGen / DeclFunctionGen are
// monomorphized instances, each holding the mangled name of the
// specialized symbol, the substituted fields/body, a pointer back to
// the generic template, and the concrete type-argument tuple.
type DeclStructGen struct {
	DeclBase
	MangledName string
	Body        *RecordBody
	Template    *DeclStruct
	Args        GenericArgs
}

func (d *DeclStructGen) isDecl()         {}
func (d *DeclStructGen) Base() *DeclBase { return &d.DeclBase }

type DeclUnionGen struct {
	DeclBase
	MangledName string
	Body        *RecordBody
	Template    *DeclUnion
	Args        GenericArgs
}

func (d *DeclUnionGen) isDecl()         {}
func (d *DeclUnionGen) Base() *DeclBase { return &d.DeclBase }

type DeclTypedefGen struct {
	DeclBase
	MangledName string
	Aliased     DataType
	Template    *DeclTypedef
	Args        GenericArgs
}

func (d *DeclTypedefGen) isDecl()         {}
func (d *DeclTypedefGen) Base() *DeclBase { return &d.DeclBase }

type DeclFunctionGen struct {
	DeclBase
	MangledName string
	Return      DataType
	Params      []Param
	Body        *StmtBlock
	Template    *DeclFunction
	Args        GenericArgs
}

func (d *DeclFunctionGen) isDecl()         {}
func (d *DeclFunctionGen) Base() *DeclBase { return &d.DeclBase }

// DeclTypedef is a `typedef name = type` declaration (as the AST
// models it; the C spelling `typedef type name;` is reconstructed by
// the emitter).
type DeclTypedef struct {
	DeclBase
	Name     string
	Generics []string
	Aliased  DataType
}

func (d *DeclTypedef) isDecl()         {}
func (d *DeclTypedef) Base() *DeclBase { return &d.DeclBase }

// DeclFunction is a function declaration or definition; Body is nil
// for a prototype-only declaration.
type DeclFunction struct {
	DeclBase
	Name     string
	Return   DataType
	Params   []Param
	Generics []string
	Body     *StmtBlock
}

func (d *DeclFunction) isDecl()         {}
func (d *DeclFunction) Base() *DeclBase { return &d.DeclBase }

// DeclLabel is a goto target declaration.
type DeclLabel struct {
	DeclBase
	Name string
}

func (d *DeclLabel) isDecl()         {}
func (d *DeclLabel) Base() *DeclBase { return &d.DeclBase }

// DeclVariable covers both global and local variable declarations;
// IsLocal distinguishes block-scope variables from file-scope ones
// for the emitter's hoisting rules.
type DeclVariable struct {
	DeclBase
	Name        string
	Type        DataType
	Initializer Expr // nil if uninitialized
	IsLocal     bool
}

func (d *DeclVariable) isDecl()         {}
func (d *DeclVariable) Base() *DeclBase { return &d.DeclBase }
