package ci

import (
	"fmt"
	"strings"
)

// spellDeclarator implements §4.9 mechanism 3: it reconstructs a C
// declarator by walking the type outside-in, composing the pointer
// stars and array/function decorations around decl (the identifier or
// a nested abstract declarator), parenthesizing wherever a pointer
// would otherwise bind to an array/function decorator on its right.
// It returns the base type (stripped of every wrapper) and the fully
// composed declarator text.
func spellDeclarator(e *Emitter, t DataType, decl string) (DataType, string) {
	switch n := t.(type) {
	case DTPointer:
		newDecl := "*" + qualifierPrefix(n.Quals) + decl
		if needsParens(n.Inner) {
			newDecl = "(" + newDecl + ")"
		}
		return spellDeclarator(e, n.Inner, newDecl)

	case DTArray:
		size := ""
		if n.Sized && n.Size != nil {
			size = emitExpr(e, n.Size)
		}
		newDecl := decl + "[" + size + "]"
		return spellDeclarator(e, n.Element, newDecl)

	case DTFunction:
		newDecl := decl + "(" + spellParams(e, n.Params) + ")"
		return spellDeclarator(e, n.Return, newDecl)

	default:
		return t, decl
	}
}

func needsParens(inner DataType) bool {
	switch inner.(type) {
	case DTArray, DTFunction:
		return true
	default:
		return false
	}
}

func qualifierPrefix(q Qualifier) string {
	var parts []string
	if q.Has(QualRestrict) {
		parts = append(parts, "restrict")
	}
	if q.Has(QualVolatile) {
		parts = append(parts, "volatile")
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

func spellParams(e *Emitter, params []Param) string {
	if len(params) == 0 {
		return "void"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Variadic {
			parts[i] = "..."
			continue
		}
		parts[i] = emitTypeWithName(e, p.Type, p.Name)
	}
	return strings.Join(parts, ", ")
}

// emitTypeWithName spells t with name bound as its declarator,
// producing e.g. "int *p" or "int (*f)(int)". An empty name produces
// an abstract declarator, e.g. for a cast target or a parameter with
// no name.
func emitTypeWithName(e *Emitter, t DataType, name string) string {
	t = e.materialize(t)
	base, declStr := spellDeclarator(e, t, name)
	baseStr := baseTypeString(e, base)
	declStr = strings.TrimSpace(declStr)
	if declStr == "" {
		return baseStr
	}
	return baseStr + " " + declStr
}

// baseTypeString spells the innermost base type of a declarator chain
// - the part that precedes every pointer/array/function wrapper.
func baseTypeString(e *Emitter, t DataType) string {
	switch n := t.(type) {
	case DTPrimitive:
		if n.Kind == PrimNullptrT && e.usesNullptrQuirk() {
			return "typeof(nullptr)"
		}
		return primitiveString(n)

	case DTAtomic:
		return "_Atomic(" + baseTypeString(e, n.Inner) + ")"

	case DTQualified:
		inner := baseTypeString(e, n.Inner)
		prefix := ""
		if n.PreConst {
			prefix = "const "
		}
		suffix := ""
		if n.PostConst {
			suffix += " const"
		}
		if n.Quals.Has(QualRestrict) {
			suffix += " restrict"
		}
		if n.Quals.Has(QualVolatile) {
			suffix += " volatile"
		}
		return prefix + inner + suffix

	case DTNamed:
		return namedTagString(n)

	case DTTypedefRef:
		if len(n.Args) == 0 {
			return n.Name
		}
		return MangledName(n.Name, n.Args)

	case DTBuiltin:
		return baseTypeString(e, e.builtins.ByIndex(n.Index).Return)

	case DTGenericVar:
		// An unsubstituted generic variable reaching emission is an
		// internal error - every emitted decl is either non-generic
		// or a monomorphized *-Gen copy with substitution applied.
		e.ice("unsubstituted generic parameter %q reached emission", n.Name)
		return n.Name

	default:
		e.ice("unhandled base type %T reached emission", t)
		return "void"
	}
}

func primitiveString(p DTPrimitive) string {
	names := map[PrimitiveKind]string{
		PrimBool: "bool", PrimChar: "char", PrimSignedChar: "signed char", PrimUnsignedChar: "unsigned char",
		PrimShort: "short", PrimUnsignedShort: "unsigned short", PrimInt: "int", PrimUnsignedInt: "unsigned int",
		PrimLong: "long", PrimUnsignedLong: "unsigned long", PrimLongLong: "long long", PrimUnsignedLongLong: "unsigned long long",
		PrimFloat: "float", PrimDouble: "double", PrimLongDouble: "long double",
		PrimDecimal32: "_Decimal32", PrimDecimal64: "_Decimal64", PrimDecimal128: "_Decimal128",
		PrimVoid: "void", PrimNullptrT: "nullptr_t",
	}
	s := names[p.Kind]
	if p.Complex {
		s += " _Complex"
	}
	if p.Imaginary {
		s += " _Imaginary"
	}
	return s
}

func namedTagString(n DTNamed) string {
	kind := map[NamedTagKind]string{TagEnum: "enum", TagStruct: "struct", TagUnion: "union"}[n.TagKind]
	if len(n.Args) == 0 {
		return fmt.Sprintf("%s %s", kind, n.Tag)
	}
	return fmt.Sprintf("%s %s", kind, MangledName(n.Tag, n.Args))
}
