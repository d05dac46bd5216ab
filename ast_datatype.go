package ci

// DataType is the discriminated union of every data type the resolver
// and typechecker reason about. Each concrete type below is one
// structural form; qualifiers are merged onto whichever wrapper
// carries them rather than stacked arbitrarily.
type DataType interface {
	isDataType()
}

// Qualifier is an orthogonal bitmask independent of the pre/post const
// distinction DTQualified tracks separately.
type Qualifier int

const QualNone Qualifier = 0

const (
	QualRestrict Qualifier = 1 << iota
	QualVolatile
)

func (q Qualifier) Has(flag Qualifier) bool { return q&flag != 0 }
func (q Qualifier) Merge(other Qualifier) Qualifier { return q | other }

// PrimitiveKind enumerates C's built-in arithmetic and void/nullptr_t
// types.
type PrimitiveKind int

const (
	PrimBool PrimitiveKind = iota
	PrimChar
	PrimSignedChar
	PrimUnsignedChar
	PrimShort
	PrimUnsignedShort
	PrimInt
	PrimUnsignedInt
	PrimLong
	PrimUnsignedLong
	PrimLongLong
	PrimUnsignedLongLong
	PrimFloat
	PrimDouble
	PrimLongDouble
	PrimDecimal32
	PrimDecimal64
	PrimDecimal128
	PrimVoid
	PrimNullptrT
)

// DTPrimitive is a built-in arithmetic/void/nullptr_t type, optionally
// decorated with `_Complex`/`_Imaginary` (meaningful only for the
// floating kinds).
type DTPrimitive struct {
	Kind      PrimitiveKind
	Complex   bool
	Imaginary bool
}

func (DTPrimitive) isDataType() {}

// DTAtomic wraps `_Atomic(T)`. The resolver unwraps it for comparison
// purposes but the emitter preserves it.
type DTAtomic struct{ Inner DataType }

func (DTAtomic) isDataType() {}

// DTQualified distinguishes `const T` (PreConst) from `T const`
// (PostConst) so the emitter reproduces the source spelling, plus the
// orthogonal restrict/volatile bitmask.
type DTQualified struct {
	Inner     DataType
	PreConst  bool
	PostConst bool
	Quals     Qualifier
}

func (DTQualified) isDataType() {}

// DTPointer is `inner *`, optionally binding a variable name during
// parsing (only meaningful inside a declarator, cleared once the
// declaration is fully formed for any other use of the type).
type DTPointer struct {
	Inner DataType
	Name  string
	Quals Qualifier
}

func (DTPointer) isDataType() {}

// DTArray is `element[size]` or `element[]`. Size is nil when Sized is
// false.
type DTArray struct {
	Element  DataType
	Sized    bool
	Size     Expr
	Name     string
	IsStatic bool
	Quals    Qualifier
}

func (DTArray) isDataType() {}

// Param is one function-type parameter; Variadic marks the `...`
// sentinel tail parameter, which carries no Type.
type Param struct {
	Name     string
	Type     DataType
	Variadic bool
}

// DTFunction is a function type: used both for the type of a function
// declaration and for function-pointer declarators.
type DTFunction struct {
	Name     string
	Params   []Param
	Return   DataType
	Generics []string
}

func (DTFunction) isDataType() {}

// NamedTagKind distinguishes the three C tag namespaces.
type NamedTagKind int

const (
	TagEnum NamedTagKind = iota
	TagStruct
	TagUnion
)

// DTNamed is a tagged enum/struct/union reference, optionally carrying
// its own body (when the type is being defined, not merely referenced),
// a template generic parameter list (definition-site), or concrete
// generic arguments (use-site instantiation, e.g. `struct Box<int>`).
type DTNamed struct {
	TagKind  NamedTagKind
	Tag      string
	Body     *RecordBody // nil when this is a reference, not a definition
	Variants []EnumVariant
	Generics []string
	Args     []DataType // concrete type arguments at a use-site reference
}

func (DTNamed) isDataType() {}

// DTTypedefRef is a reference to a typedef name, with optional
// concrete type arguments when the typedef is generic.
type DTTypedefRef struct {
	Name string
	Args []DataType
}

func (DTTypedefRef) isDataType() {}

// DTBuiltin indexes into the process-wide builtin type table.
type DTBuiltin struct{ Index int }

func (DTBuiltin) isDataType() {}

// DTGenericVar is an unresolved generic type parameter reference
// (`T` inside a generic declaration's own body).
type DTGenericVar struct{ Name string }

func (DTGenericVar) isDataType() {}

// DTAny is the typechecker/builtin "accepts anything" sentinel; never
// produced by the parser.
type DTAny struct{}

func (DTAny) isDataType() {}
