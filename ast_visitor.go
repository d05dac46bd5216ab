package ci

// DeclVisitor, ExprVisitor and StmtVisitor let a pass over the AST be
// expressed as one method per concrete node kind instead of a giant
// type switch repeated in every pass (resolver, typechecker, monomorphizer,
// emitter). Each Walk* function does the type switch once and dispatches
// to the matching Visit method; a pass that only cares about a handful of
// kinds embeds one of the "Base" no-op implementations and overrides
// only those.

type DeclVisitor interface {
	VisitEnum(*DeclEnum)
	VisitStruct(*DeclStruct)
	VisitUnion(*DeclUnion)
	VisitStructGen(*DeclStructGen)
	VisitUnionGen(*DeclUnionGen)
	VisitTypedefGen(*DeclTypedefGen)
	VisitFunctionGen(*DeclFunctionGen)
	VisitTypedef(*DeclTypedef)
	VisitFunction(*DeclFunction)
	VisitLabel(*DeclLabel)
	VisitVariable(*DeclVariable)
}

// WalkDecl dispatches d to the matching method of v.
func WalkDecl(d Declaration, v DeclVisitor) {
	switch n := d.(type) {
	case *DeclEnum:
		v.VisitEnum(n)
	case *DeclStruct:
		v.VisitStruct(n)
	case *DeclUnion:
		v.VisitUnion(n)
	case *DeclStructGen:
		v.VisitStructGen(n)
	case *DeclUnionGen:
		v.VisitUnionGen(n)
	case *DeclTypedefGen:
		v.VisitTypedefGen(n)
	case *DeclFunctionGen:
		v.VisitFunctionGen(n)
	case *DeclTypedef:
		v.VisitTypedef(n)
	case *DeclFunction:
		v.VisitFunction(n)
	case *DeclLabel:
		v.VisitLabel(n)
	case *DeclVariable:
		v.VisitVariable(n)
	}
}

// BaseDeclVisitor is an embeddable no-op DeclVisitor.
type BaseDeclVisitor struct{}

func (BaseDeclVisitor) VisitEnum(*DeclEnum)                 {}
func (BaseDeclVisitor) VisitStruct(*DeclStruct)             {}
func (BaseDeclVisitor) VisitUnion(*DeclUnion)               {}
func (BaseDeclVisitor) VisitStructGen(*DeclStructGen)       {}
func (BaseDeclVisitor) VisitUnionGen(*DeclUnionGen)         {}
func (BaseDeclVisitor) VisitTypedefGen(*DeclTypedefGen)     {}
func (BaseDeclVisitor) VisitFunctionGen(*DeclFunctionGen)   {}
func (BaseDeclVisitor) VisitTypedef(*DeclTypedef)           {}
func (BaseDeclVisitor) VisitFunction(*DeclFunction)         {}
func (BaseDeclVisitor) VisitLabel(*DeclLabel)               {}
func (BaseDeclVisitor) VisitVariable(*DeclVariable)         {}

type ExprVisitor interface {
	VisitAlignof(*ExprAlignof)
	VisitArrayAccess(*ExprArrayAccess)
	VisitBinary(*ExprBinary)
	VisitCast(*ExprCast)
	VisitDataTypeAsValue(*ExprDataTypeAsValue)
	VisitCall(*ExprCall)
	VisitCallBuiltin(*ExprCallBuiltin)
	VisitGrouping(*ExprGrouping)
	VisitIdentifier(*ExprIdentifier)
	VisitInitializer(*ExprInitializer)
	VisitLiteral(*ExprLiteral)
	VisitNullptr(*ExprNullptr)
	VisitSizeof(*ExprSizeof)
	VisitTernary(*ExprTernary)
	VisitUnary(*ExprUnary)
}

// WalkExpr dispatches e to the matching method of v.
func WalkExpr(e Expr, v ExprVisitor) {
	switch n := e.(type) {
	case *ExprAlignof:
		v.VisitAlignof(n)
	case *ExprArrayAccess:
		v.VisitArrayAccess(n)
	case *ExprBinary:
		v.VisitBinary(n)
	case *ExprCast:
		v.VisitCast(n)
	case *ExprDataTypeAsValue:
		v.VisitDataTypeAsValue(n)
	case *ExprCall:
		v.VisitCall(n)
	case *ExprCallBuiltin:
		v.VisitCallBuiltin(n)
	case *ExprGrouping:
		v.VisitGrouping(n)
	case *ExprIdentifier:
		v.VisitIdentifier(n)
	case *ExprInitializer:
		v.VisitInitializer(n)
	case *ExprLiteral:
		v.VisitLiteral(n)
	case *ExprNullptr:
		v.VisitNullptr(n)
	case *ExprSizeof:
		v.VisitSizeof(n)
	case *ExprTernary:
		v.VisitTernary(n)
	case *ExprUnary:
		v.VisitUnary(n)
	}
}

// BaseExprVisitor is an embeddable no-op ExprVisitor.
type BaseExprVisitor struct{}

func (BaseExprVisitor) VisitAlignof(*ExprAlignof)                 {}
func (BaseExprVisitor) VisitArrayAccess(*ExprArrayAccess)         {}
func (BaseExprVisitor) VisitBinary(*ExprBinary)                   {}
func (BaseExprVisitor) VisitCast(*ExprCast)                       {}
func (BaseExprVisitor) VisitDataTypeAsValue(*ExprDataTypeAsValue) {}
func (BaseExprVisitor) VisitCall(*ExprCall)                       {}
func (BaseExprVisitor) VisitCallBuiltin(*ExprCallBuiltin)         {}
func (BaseExprVisitor) VisitGrouping(*ExprGrouping)               {}
func (BaseExprVisitor) VisitIdentifier(*ExprIdentifier)           {}
func (BaseExprVisitor) VisitInitializer(*ExprInitializer)         {}
func (BaseExprVisitor) VisitLiteral(*ExprLiteral)                 {}
func (BaseExprVisitor) VisitNullptr(*ExprNullptr)                 {}
func (BaseExprVisitor) VisitSizeof(*ExprSizeof)                   {}
func (BaseExprVisitor) VisitTernary(*ExprTernary)                 {}
func (BaseExprVisitor) VisitUnary(*ExprUnary)                     {}

type StmtVisitor interface {
	VisitBlock(*StmtBlock)
	VisitBreak(*StmtBreak)
	VisitCase(*StmtCase)
	VisitContinue(*StmtContinue)
	VisitDefault(*StmtDefault)
	VisitDoWhile(*StmtDoWhile)
	VisitFor(*StmtFor)
	VisitGoto(*StmtGoto)
	VisitIf(*StmtIf)
	VisitReturn(*StmtReturn)
	VisitSwitch(*StmtSwitch)
	VisitWhile(*StmtWhile)
}

// WalkStmt dispatches s to the matching method of v.
func WalkStmt(s Stmt, v StmtVisitor) {
	switch n := s.(type) {
	case *StmtBlock:
		v.VisitBlock(n)
	case *StmtBreak:
		v.VisitBreak(n)
	case *StmtCase:
		v.VisitCase(n)
	case *StmtContinue:
		v.VisitContinue(n)
	case *StmtDefault:
		v.VisitDefault(n)
	case *StmtDoWhile:
		v.VisitDoWhile(n)
	case *StmtFor:
		v.VisitFor(n)
	case *StmtGoto:
		v.VisitGoto(n)
	case *StmtIf:
		v.VisitIf(n)
	case *StmtReturn:
		v.VisitReturn(n)
	case *StmtSwitch:
		v.VisitSwitch(n)
	case *StmtWhile:
		v.VisitWhile(n)
	}
}

// BaseStmtVisitor is an embeddable no-op StmtVisitor.
type BaseStmtVisitor struct{}

func (BaseStmtVisitor) VisitBlock(*StmtBlock)       {}
func (BaseStmtVisitor) VisitBreak(*StmtBreak)       {}
func (BaseStmtVisitor) VisitCase(*StmtCase)         {}
func (BaseStmtVisitor) VisitContinue(*StmtContinue) {}
func (BaseStmtVisitor) VisitDefault(*StmtDefault)   {}
func (BaseStmtVisitor) VisitDoWhile(*StmtDoWhile)   {}
func (BaseStmtVisitor) VisitFor(*StmtFor)           {}
func (BaseStmtVisitor) VisitGoto(*StmtGoto)         {}
func (BaseStmtVisitor) VisitIf(*StmtIf)             {}
func (BaseStmtVisitor) VisitReturn(*StmtReturn)     {}
func (BaseStmtVisitor) VisitSwitch(*StmtSwitch)     {}
func (BaseStmtVisitor) VisitWhile(*StmtWhile)       {}
