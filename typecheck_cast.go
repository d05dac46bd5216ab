package ci

// typesEqual reports structural equality of two already-resolved data
// types, via their canonical mangled form - the same canonicalization
// the monomorphizer uses to key instantiations, so "the same type"
// means "the same mangle" throughout the pipeline.
func typesEqual(a, b DataType) bool {
	return MangleType(a) == MangleType(b)
}

// canImplicitCast implements the §4.7 implicit-cast policy: integer
// <-> float is allowed without diagnostic, pointer <-> integer is
// allowed, pointer <-> pointer requires one side void-compatible or
// recursively compatible pointees, enum interoperates with integers
// (already true since IsInteger treats enums as integers), and
// typedefs are transparent because the caller resolves them before
// calling in.
func canImplicitCast(from, to DataType) bool {
	if typesEqual(from, to) {
		return true
	}
	if IsArithmetic(from) && IsArithmetic(to) {
		return true
	}
	if IsPtr(from) && IsInteger(to) {
		return true
	}
	if IsInteger(from) && IsPtr(to) {
		return true
	}
	if IsPtr(from) && IsPtr(to) {
		if IsCompatibleWithVoidPtr(from) || IsCompatibleWithVoidPtr(to) {
			return true
		}
		return canImplicitCast(UnwrapPtr(from), UnwrapPtr(to))
	}
	if IsArray(from) && IsPtr(to) {
		return canImplicitCast(arrayElement(from), UnwrapPtr(to))
	}
	return false
}

func arrayElement(t DataType) DataType {
	if a, ok := structural(t).(DTArray); ok {
		return a.Element
	}
	return nil
}

// isLvalue reports whether e could plausibly be an assignment target:
// identifiers, array accesses, member accesses, pointer dereferences,
// and grouped versions of any of those. The typechecker doesn't track
// true lvalue-ness (that needs the resolved symbol's storage), but
// rejecting everything else catches the common "cannot assign to a
// literal/call result" mistakes without needing a separate lvalue
// pass.
func isLvalue(e Expr) bool {
	switch n := e.(type) {
	case *ExprIdentifier:
		return true
	case *ExprArrayAccess:
		return true
	case *ExprBinary:
		return n.Kind == BinMember || n.Kind == BinMemberPtr
	case *ExprUnary:
		return n.Kind == UnaryDeref
	case *ExprGrouping:
		return isLvalue(n.Inner)
	default:
		return false
	}
}
