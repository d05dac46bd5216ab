package ci

import (
	"fmt"
	"strconv"
	"strings"
)

// binaryOperatorText maps every BinaryKind to its C spelling. Member
// access (`.`/`->`) is looked up separately since those two are the
// glue operators that print with no surrounding space (§4.9
// mechanism 5).
var binaryOperatorText = map[BinaryKind]string{
	BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/", BinMod: "%",
	BinShl: "<<", BinShr: ">>",
	BinBitAnd: "&", BinBitOr: "|", BinBitXor: "^",
	BinLogAnd: "&&", BinLogOr: "||",
	BinEq: "==", BinNe: "!=", BinLt: "<", BinLe: "<=", BinGt: ">", BinGe: ">=",
	BinAssign: "=",
	BinAddAssign: "+=", BinSubAssign: "-=", BinMulAssign: "*=", BinDivAssign: "/=", BinModAssign: "%=",
	BinShlAssign: "<<=", BinShrAssign: ">>=",
	BinAndAssign: "&=", BinOrAssign: "|=", BinXorAssign: "^=",
}

// emitExpr renders e as C source text. The parser has already
// materialized an explicit grouping expression around every
// parenthesized sub-expression in the original source, so the emitter
// never reasons about operator precedence itself (§4.9 mechanism 5).
func emitExpr(e *Emitter, expr Expr) string {
	switch n := expr.(type) {
	case *ExprLiteral:
		return emitLiteral(n)

	case *ExprNullptr:
		return "nullptr"

	case *ExprIdentifier:
		return n.Name

	case *ExprGrouping:
		return "(" + emitExpr(e, n.Inner) + ")"

	case *ExprBinary:
		if n.Kind == BinMember {
			return emitExpr(e, n.Left) + "." + emitExpr(e, n.Right)
		}
		if n.Kind == BinMemberPtr {
			return emitExpr(e, n.Left) + "->" + emitExpr(e, n.Right)
		}
		op, ok := binaryOperatorText[n.Kind]
		if !ok {
			e.ice("unhandled binary operator %d reached emission", n.Kind)
			op = "?"
		}
		return emitExpr(e, n.Left) + " " + op + " " + emitExpr(e, n.Right)

	case *ExprUnary:
		return emitUnary(e, n)

	case *ExprTernary:
		return emitExpr(e, n.Cond) + " ? " + emitExpr(e, n.IfTrue) + " : " + emitExpr(e, n.IfFalse)

	case *ExprCast:
		return "(" + emitTypeWithName(e, e.materialize(n.Target), "") + ")" + emitExpr(e, n.Inner)

	case *ExprDataTypeAsValue:
		return emitTypeWithName(e, e.materialize(n.Type), "")

	case *ExprSizeof:
		return "sizeof(" + emitExpr(e, n.Operand) + ")"

	case *ExprAlignof:
		return "alignof(" + emitExpr(e, n.Operand) + ")"

	case *ExprArrayAccess:
		return emitExpr(e, n.Array) + "[" + emitExpr(e, n.Index) + "]"

	case *ExprCall:
		return emitCall(e, n)

	case *ExprCallBuiltin:
		return emitCallBuiltin(e, n)

	case *ExprInitializer:
		return emitInitializer(e, n)

	default:
		e.ice("unhandled expression %T reached emission", expr)
		return ""
	}
}

func emitUnary(e *Emitter, n *ExprUnary) string {
	inner := emitExpr(e, n.Inner)
	switch n.Kind {
	case UnaryPreInc:
		return "++" + inner
	case UnaryPreDec:
		return "--" + inner
	case UnaryPostInc:
		return inner + "++"
	case UnaryPostDec:
		return inner + "--"
	case UnaryPlus:
		return "+" + inner
	case UnaryMinus:
		return "-" + inner
	case UnaryBitNot:
		return "~" + inner
	case UnaryLogNot:
		return "!" + inner
	case UnaryDeref:
		return "*" + inner
	case UnaryAddrOf:
		return "&" + inner
	default:
		e.ice("unhandled unary operator %d reached emission", n.Kind)
		return inner
	}
}

func emitCall(e *Emitter, n *ExprCall) string {
	callee := n.Callee
	if len(n.GenericArgs) > 0 {
		args := make([]DataType, len(n.GenericArgs))
		for i, a := range n.GenericArgs {
			args[i] = e.materialize(a)
		}
		callee = MangledName(n.Callee, args)
	}
	return callee + "(" + emitExprList(e, n.Args) + ")"
}

func emitCallBuiltin(e *Emitter, n *ExprCallBuiltin) string {
	return e.builtins.ByIndex(n.Builtin).Name + "(" + emitExprList(e, n.Args) + ")"
}

func emitExprList(e *Emitter, exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, a := range exprs {
		parts[i] = emitExpr(e, a)
	}
	return strings.Join(parts, ", ")
}

func emitInitializer(e *Emitter, n *ExprInitializer) string {
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = emitDesignators(it.Designators) + emitExpr(e, it.Value)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func emitDesignators(ds []Designator) string {
	if len(ds) == 0 {
		return ""
	}
	var b strings.Builder
	for _, d := range ds {
		if d.Field != "" {
			b.WriteString("." + d.Field)
		} else {
			b.WriteString("[" + d.Index.(*ExprLiteral).rawIndexText() + "]")
		}
	}
	b.WriteString(" = ")
	return b.String()
}

// rawIndexText renders an integer-literal array designator index.
// Designator indices are always constant expressions by construction
// (the parser only accepts an assignment-expression there, and the
// typechecker rejects anything non-constant), so a literal suffices.
func (n *ExprLiteral) rawIndexText() string { return emitLiteral(n) }

func emitLiteral(n *ExprLiteral) string {
	switch n.Kind {
	case LitBool:
		if n.Bool {
			return "true"
		}
		return "false"
	case LitChar:
		return "'" + escapeCRune(n.Char) + "'"
	case LitString:
		return "\"" + escapeCString(n.Str) + "\""
	case LitFloat:
		text := strconv.FormatFloat(n.F64, 'g', -1, 64)
		return text + floatSuffixText(n.Suffix)
	case LitSignedInt:
		return strconv.FormatInt(n.I64, 10) + intSuffixText(n.Suffix)
	case LitUnsignedInt:
		return strconv.FormatUint(n.U64, 10) + intSuffixText(n.Suffix)
	default:
		return fmt.Sprintf("/* unhandled literal kind %d */", n.Kind)
	}
}

// floatSuffixText maps a scanner width-suffix kind to the C literal
// suffix character (§4.9 mechanism 6: only decorate with a suffix
// when the token actually carried one).
func floatSuffixText(suffix TokenKind) string {
	switch suffix {
	case TokLiteralFloat32:
		return "f"
	case TokLiteralFloat64:
		return "L"
	default:
		return ""
	}
}

func intSuffixText(suffix TokenKind) string {
	switch suffix {
	case TokLiteralUnsignedInt8, TokLiteralUnsignedInt16, TokLiteralUnsignedInt32, TokLiteralUnsignedIntSize:
		return "u"
	case TokLiteralSignedInt64, TokLiteralUnsignedInt64:
		return "ll"
	default:
		return ""
	}
}
