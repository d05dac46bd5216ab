package ci

import (
	"strconv"
	"strings"
)

// MangleType produces the canonical textual mangle of t used both as
// part of a monomorphized declaration's serialized name and, recursively,
// for its own generic arguments: "each type's mangle
// is its canonical textual form with all whitespace removed and
// punctuation encoded (pointers → P, arrays → Asize, etc.)".
func MangleType(t DataType) string {
	switch n := t.(type) {
	case DTPrimitive:
		return mangleBuiltin(n)
	case DTAtomic:
		return "Atomic" + MangleType(n.Inner)
	case DTQualified:
		prefix := ""
		if n.PreConst || n.PostConst || n.Quals != QualNone {
			prefix = "C"
		}
		return prefix + MangleType(n.Inner)
	case DTPointer:
		return "P" + MangleType(n.Inner)
	case DTArray:
		if n.Sized {
			return "A" + arraySizeMangle(n) + MangleType(n.Element)
		}
		return "A" + MangleType(n.Element)
	case DTFunction:
		var b strings.Builder
		b.WriteString("F")
		for _, p := range n.Params {
			if p.Variadic {
				b.WriteString("z")
				continue
			}
			b.WriteString(MangleType(p.Type))
		}
		b.WriteString("_")
		b.WriteString(MangleType(n.Return))
		return b.String()
	case DTNamed:
		return mangleTag(n)
	case DTTypedefRef:
		if len(n.Args) == 0 {
			return n.Name
		}
		return n.Name + "__" + joinMangles(n.Args)
	case DTBuiltin:
		return "b" + strconv.Itoa(n.Index)
	case DTGenericVar:
		return n.Name
	case DTAny:
		return "any"
	default:
		return "?"
	}
}

func mangleBuiltin(p DTPrimitive) string {
	names := map[PrimitiveKind]string{
		PrimBool: "bool", PrimChar: "char", PrimSignedChar: "schar", PrimUnsignedChar: "uchar",
		PrimShort: "short", PrimUnsignedShort: "ushort", PrimInt: "int", PrimUnsignedInt: "uint",
		PrimLong: "long", PrimUnsignedLong: "ulong", PrimLongLong: "llong", PrimUnsignedLongLong: "ullong",
		PrimFloat: "float", PrimDouble: "double", PrimLongDouble: "ldouble",
		PrimDecimal32: "d32", PrimDecimal64: "d64", PrimDecimal128: "d128",
		PrimVoid: "void", PrimNullptrT: "nullptr_t",
	}
	s := names[p.Kind]
	if p.Complex {
		s = "Complex" + s
	}
	if p.Imaginary {
		s = "Imaginary" + s
	}
	return s
}

func mangleTag(n DTNamed) string {
	kind := map[NamedTagKind]string{TagEnum: "enum_", TagStruct: "struct_", TagUnion: "union_"}[n.TagKind]
	if len(n.Args) == 0 {
		return kind + n.Tag
	}
	return kind + MangledName(n.Tag, n.Args)
}

func arraySizeMangle(n DTArray) string {
	if lit, ok := n.Size.(*ExprLiteral); ok {
		return strconv.FormatInt(lit.I64, 10)
	}
	return "N"
}

func joinMangles(types []DataType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = MangleType(t)
	}
	return strings.Join(parts, "_")
}

// MangledName computes the full `base_name + "__" + joined(mangles)`
// serialized name for a generic instantiation step 1.
func MangledName(baseName string, args []DataType) string {
	if len(args) == 0 {
		return baseName
	}
	return baseName + "__" + joinMangles(args)
}
