package ci

// keywordsCommon are recognized in every supported standard.
var keywordsCommon = map[string]Keyword{
	"auto": KwAuto, "break": KwBreak, "case": KwCase, "char": KwChar,
	"const": KwConst, "continue": KwContinue, "default": KwDefault, "do": KwDo,
	"double": KwDouble, "else": KwElse, "enum": KwEnum, "extern": KwExtern,
	"float": KwFloat, "for": KwFor, "goto": KwGoto, "if": KwIf,
	"int": KwInt, "long": KwLong, "register": KwRegister, "return": KwReturn,
	"short": KwShort, "signed": KwSigned, "sizeof": KwSizeof, "static": KwStatic,
	"struct": KwStruct, "switch": KwSwitch, "typedef": KwTypedef, "union": KwUnion,
	"unsigned": KwUnsigned, "void": KwVoid, "volatile": KwVolatile, "while": KwWhile,
	"__attribute__": KwAttribute, "__extension__": KwExtension, "__typeof__": KwTypeof2,
}

// keywordsC99 adds the keywords introduced in C99 (and still present
// through C17): inline, restrict.
var keywordsC99 = map[string]Keyword{
	"inline": KwInline, "restrict": KwRestrict,
}

// keywordsC11 adds the C11 keywords, present through C17 (renamed to
// bare spellings in C23; see keywordsC23).
var keywordsC11 = map[string]Keyword{
	"_Alignas": KwAlignas, "_Alignof": KwAlignof, "_Atomic": KwAtomic,
	"_Bool": KwBool, "_Complex": KwComplex, "_Generic": KwGeneric,
	"_Imaginary": KwImaginary, "_Noreturn": KwNoreturn,
	"_Static_assert": KwStaticAssert, "_Thread_local": KwThreadLocal,
}

// keywordsC23 adds (or renames) the C23 keyword set.
var keywordsC23 = map[string]Keyword{
	"_BitInt": KwBitInt, "bool": KwBoolC23, "constexpr": KwConstexpr,
	"nullptr": KwNullptr, "thread_local": KwThreadLocalC23,
	"typeof": KwTypeof, "typeof_unqual": KwTypeofUnqual,
	"true": KwBoolC23, "false": KwBoolC23,
}

// lookupKeyword classifies a scanned identifier as a keyword (per the
// configured standard) or reports it is not one:
// "A scanned identifier is classified as a keyword (set depends on
// the configured C standard) ... or stays an identifier."
func lookupKeyword(name string, std Standard) (Keyword, bool) {
	if kw, ok := keywordsCommon[name]; ok {
		return kw, true
	}
	if std >= StandardC99 {
		if kw, ok := keywordsC99[name]; ok {
			return kw, true
		}
	}
	if std >= StandardC11 && std < StandardC23 {
		if kw, ok := keywordsC11[name]; ok {
			return kw, true
		}
	}
	if std >= StandardC23 {
		if kw, ok := keywordsC23[name]; ok {
			return kw, true
		}
		// C23 keeps the C11 underscore-prefixed spellings as aliases.
		if kw, ok := keywordsC11[name]; ok {
			return kw, true
		}
	}
	return 0, false
}
