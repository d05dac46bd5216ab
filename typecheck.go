package ci

// Typechecker enforces C type rules over a ResultFile that has already
// been parsed (and whose generic instantiations, if any, have already
// been materialized by the Monomorphizer). One Typechecker walks
// every global declaration whose generics are fully instantiated,
// typechecking bodies, initializers, and calls; per spec §4.7 a
// violation is fatal for the affected declaration only - sibling
// declarations still get checked.
type Typechecker struct {
	file     *ResultFile
	registry *Registry
	sink     *Sink
	resolver *Resolver
	mono     *Monomorphizer
	builtins *BuiltinTable

	globalVars  map[string]DataType
	globalFuncs map[string]funcSig

	curReturn DataType
	env       *typeEnv
	loopDepth int
}

type funcSig struct {
	Params   []Param
	Return   DataType
	Generics []string
	Template *DeclFunction
}

// typeEnv is a chain of block-scoped name->type maps; the typechecker
// keeps its own environment rather than threading through Scope's
// name->DeclID maps because locals and parameters never get appended
// to a ResultFile's decl list (only top-level declarations do).
type typeEnv struct {
	vars   map[string]DataType
	parent *typeEnv
}

func newTypeEnv(parent *typeEnv) *typeEnv {
	return &typeEnv{vars: map[string]DataType{}, parent: parent}
}

func (e *typeEnv) define(name string, t DataType) { e.vars[name] = t }

func (e *typeEnv) lookup(name string) (DataType, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

func NewTypechecker(file *ResultFile, registry *Registry, sink *Sink, builtins *BuiltinTable) *Typechecker {
	mono := NewMonomorphizer(file, sink)
	return &Typechecker{
		file:        file,
		registry:    registry,
		sink:        sink,
		resolver:    NewResolver(file, registry, sink, mono),
		mono:        mono,
		builtins:    builtins,
		globalVars:  map[string]DataType{},
		globalFuncs: map[string]funcSig{},
	}
}

// Check walks the whole file. Besides reporting diagnostics, checking a
// generic call instantiates it through the Monomorphizer, which appends
// the generated declaration to file.Decls; declarations appended during
// the walk are not themselves checked.
func (tc *Typechecker) Check() {
	tc.indexGlobals()
	for _, d := range tc.file.Decls {
		tc.checkDecl(d)
	}
}

func (tc *Typechecker) indexGlobals() {
	for _, d := range tc.file.Decls {
		switch n := d.(type) {
		case *DeclVariable:
			tc.globalVars[n.Name] = n.Type
		case *DeclFunction:
			tc.globalFuncs[n.Name] = funcSig{Params: n.Params, Return: n.Return, Generics: n.Generics, Template: n}
		case *DeclFunctionGen:
			tc.globalFuncs[n.MangledName] = funcSig{Params: n.Params, Return: n.Return}
		}
	}
}

func (tc *Typechecker) resolve(t DataType) DataType {
	if t == nil {
		return DTAny{}
	}
	resolved, err := tc.resolver.Resolve(t, GenericBindingPair{})
	if err != nil {
		tc.sink.Errorf(KindGeneric, Range{}, "%s", err.Error())
		return DTAny{}
	}
	return resolved
}

func (tc *Typechecker) checkDecl(d Declaration) {
	switch n := d.(type) {
	case *DeclFunction:
		if len(n.Generics) > 0 {
			return // template only; instantiations are checked as DeclFunctionGen
		}
		tc.checkFunctionBody(n.Return, n.Params, n.Body)
	case *DeclFunctionGen:
		tc.checkFunctionBody(n.Return, n.Params, n.Body)
	case *DeclVariable:
		tc.checkVariable(n)
	case *DeclEnum:
		tc.checkEnum(n)
	case *DeclStruct, *DeclUnion, *DeclStructGen, *DeclUnionGen, *DeclTypedef, *DeclTypedefGen, *DeclLabel:
		// No executable content to typecheck; field/alias types were
		// already validated at parse/resolve time.
	}
}

func (tc *Typechecker) checkEnum(n *DeclEnum) {
	for _, v := range n.Variants {
		if v.Discriminant == nil {
			continue
		}
		t := tc.typeOf(v.Discriminant)
		if !IsInteger(t) {
			tc.sink.Errorf(KindType, v.Range, "enumerator %q discriminant must be integer-compatible", v.Name)
		}
	}
}

func (tc *Typechecker) checkVariable(n *DeclVariable) {
	if n.Initializer == nil {
		return
	}
	want := tc.resolve(n.Type)
	tc.checkInitializerAgainst(n.Initializer, want)
}

func (tc *Typechecker) checkFunctionBody(ret DataType, params []Param, body *StmtBlock) {
	if body == nil {
		return // prototype only
	}
	prevReturn, prevEnv, prevLoop := tc.curReturn, tc.env, tc.loopDepth
	tc.curReturn = tc.resolve(ret)
	tc.env = newTypeEnv(nil)
	tc.loopDepth = 0
	for _, p := range params {
		if p.Variadic {
			continue
		}
		tc.env.define(p.Name, tc.resolve(p.Type))
	}
	tc.checkBlock(body)
	tc.curReturn, tc.env, tc.loopDepth = prevReturn, prevEnv, prevLoop
}

func (tc *Typechecker) checkBlock(b *StmtBlock) {
	tc.env = newTypeEnv(tc.env)
	defer func() { tc.env = tc.env.parent }()
	for _, item := range b.Body {
		tc.checkItem(item)
	}
}

func (tc *Typechecker) checkItem(it Item) {
	switch {
	case it.Decl != nil:
		tc.checkLocalDecl(it.Decl)
	case it.Stmt != nil:
		tc.checkStmt(it.Stmt)
	case it.Expr != nil:
		tc.checkDiscardedExpr(it.Expr)
	}
}

func (tc *Typechecker) checkLocalDecl(d Declaration) {
	v, ok := d.(*DeclVariable)
	if !ok {
		return
	}
	declared := tc.resolve(v.Type)
	tc.env.define(v.Name, declared)
	if v.Initializer != nil {
		tc.checkInitializerAgainst(v.Initializer, declared)
	}
}

// checkDiscardedExpr types an expression-statement with an expected
// void, except assignments, calls, and pre/post inc/dec which check
// against the "any" sentinel so their value may be discarded.
func (tc *Typechecker) checkDiscardedExpr(e Expr) {
	switch n := e.(type) {
	case *ExprBinary:
		if n.Kind.IsAssignment() {
			tc.typeOf(e)
			return
		}
	case *ExprCall, *ExprCallBuiltin:
		tc.typeOf(e)
		return
	case *ExprUnary:
		switch n.Kind {
		case UnaryPreInc, UnaryPreDec, UnaryPostInc, UnaryPostDec:
			tc.typeOf(e)
			return
		}
	}
	t := tc.typeOf(e)
	if _, isAny := t.(DTAny); !isAny && !IsVoid(t) {
		tc.sink.Errorf(KindType, e.ExprRange(), "discarded expression must have type void")
	}
}

func (tc *Typechecker) checkStmt(s Stmt) {
	switch n := s.(type) {
	case *StmtBlock:
		tc.checkBlock(n)
	case *StmtBreak:
		if tc.loopDepth == 0 {
			tc.sink.Errorf(KindType, n.Range, "'break' outside loop or switch")
		}
	case *StmtContinue:
		if tc.loopDepth == 0 {
			tc.sink.Errorf(KindType, n.Range, "'continue' outside loop")
		}
	case *StmtCase:
		t := tc.typeOf(n.Value)
		if !IsInteger(t) {
			tc.sink.Errorf(KindType, n.Range, "case value must be integer-compatible")
		}
	case *StmtDefault:
		// A case or default label outside a switch is not diagnosed.
	case *StmtDoWhile:
		tc.checkCondition(n.Cond)
		tc.loopDepth++
		tc.checkStmt(n.Body)
		tc.loopDepth--
	case *StmtWhile:
		tc.checkCondition(n.Cond)
		tc.loopDepth++
		tc.checkStmt(n.Body)
		tc.loopDepth--
	case *StmtFor:
		tc.env = newTypeEnv(tc.env)
		for _, it := range n.Init {
			tc.checkItem(it)
		}
		if n.Cond != nil {
			tc.checkCondition(n.Cond)
		}
		for _, e := range n.Step {
			tc.typeOf(e)
		}
		tc.loopDepth++
		tc.checkStmt(n.Body)
		tc.loopDepth--
		tc.env = tc.env.parent
	case *StmtGoto:
		// The target label is not resolved, here or in the parser.
	case *StmtIf:
		tc.checkCondition(n.If.Cond)
		tc.checkStmt(n.If.Body)
		for _, b := range n.ElseIfs {
			tc.checkCondition(b.Cond)
			tc.checkStmt(b.Body)
		}
		if n.Else != nil {
			tc.checkStmt(n.Else)
		}
	case *StmtReturn:
		tc.checkReturn(n)
	case *StmtSwitch:
		t := tc.typeOf(n.Scrutinee)
		if !IsInteger(t) {
			tc.sink.Errorf(KindType, n.Range, "switch scrutinee must be integer-compatible")
		}
		tc.loopDepth++
		tc.checkStmt(n.Body)
		tc.loopDepth--
	}
}

func (tc *Typechecker) checkCondition(e Expr) {
	t := tc.typeOf(e)
	if !IsInteger(t) && !IsFloat(t) {
		tc.sink.Errorf(KindType, e.ExprRange(), "condition must be integer-compatible")
	}
}

func (tc *Typechecker) checkReturn(n *StmtReturn) {
	if n.Value == nil {
		if tc.curReturn != nil && !IsVoid(tc.curReturn) {
			tc.sink.Errorf(KindType, n.Range, "non-void function requires a return value")
		}
		return
	}
	if IsVoid(tc.curReturn) {
		tc.sink.Errorf(KindType, n.Range, "void function must not return a value")
		return
	}
	got := tc.typeOf(n.Value)
	if !canImplicitCast(got, tc.curReturn) {
		tc.sink.Errorf(KindType, n.Range, "return value type does not match declared return type")
	}
}

// checkInitializerAgainst implements §4.7's three initializer forms:
// array (no designators, each item against the element type), struct
// (designators resolve a field path, undesignated items advance a
// cursor skipping anonymous-parent boundaries), union (at most one
// item, designator optional).
func (tc *Typechecker) checkInitializerAgainst(e Expr, want DataType) {
	init, ok := e.(*ExprInitializer)
	if !ok {
		got := tc.typeOf(e)
		if !canImplicitCast(got, want) {
			tc.sink.Errorf(KindType, e.ExprRange(), "cannot initialize expression of this type with the given value")
		}
		return
	}

	switch n := structural(want).(type) {
	case DTArray:
		for _, item := range init.Items {
			if len(item.Designators) > 0 {
				tc.sink.Errorf(KindType, e.ExprRange(), "array initializer does not allow designators")
				continue
			}
			tc.checkInitializerAgainst(item.Value, n.Element)
		}
	case DTNamed:
		if n.TagKind == TagUnion {
			tc.checkUnionInitializer(init, tc.resolver.GetFieldsOfStructOrUnion(want))
			return
		}
		tc.checkStructInitializer(init, tc.resolver.GetFieldsOfStructOrUnion(want))
	default:
		fields := tc.resolver.GetFieldsOfStructOrUnion(want)
		if fields != nil {
			tc.checkStructInitializer(init, fields)
			return
		}
		if len(init.Items) == 1 && len(init.Items[0].Designators) == 0 {
			tc.checkInitializerAgainst(init.Items[0].Value, want)
			return
		}
		tc.sink.Errorf(KindType, e.ExprRange(), "braced initializer used against a non-aggregate type")
	}
}

func (tc *Typechecker) checkUnionInitializer(init *ExprInitializer, fields []*Field) {
	if len(init.Items) > 1 {
		tc.sink.Errorf(KindType, init.Range, "union initializer may have at most one element")
	}
	if len(init.Items) == 0 {
		return
	}
	item := init.Items[0]
	if len(item.Designators) == 0 {
		if len(fields) > 0 {
			tc.checkInitializerAgainst(item.Value, fields[0].Type)
		}
		return
	}
	field := tc.findDesignatedField(fields, item.Designators[0])
	for _, d := range item.Designators[1:] {
		if field == nil || d.Field == "" {
			break
		}
		field = tc.findDesignatedField(tc.resolver.GetFieldsOfStructOrUnion(tc.resolve(field.Type)), d)
	}
	if field == nil {
		tc.sink.Errorf(KindType, init.Range, "initializer designator not found")
		return
	}
	tc.checkInitializerAgainst(item.Value, field.Type)
}

func (tc *Typechecker) checkStructInitializer(init *ExprInitializer, fields []*Field) {
	cursor := 0
	for _, item := range init.Items {
		if len(item.Designators) > 0 {
			field := tc.findDesignatedField(fields, item.Designators[0])
			for _, d := range item.Designators[1:] {
				if field == nil || d.Field == "" {
					break
				}
				field = tc.findDesignatedField(tc.resolver.GetFieldsOfStructOrUnion(tc.resolve(field.Type)), d)
			}
			if field == nil {
				tc.sink.Errorf(KindType, init.Range, "initializer designator not found")
				continue
			}
			tc.checkInitializerAgainst(item.Value, field.Type)
			continue
		}
		field := nextUndesignatedField(fields, &cursor)
		if field == nil {
			tc.sink.Errorf(KindType, init.Range, "excess elements in struct/union initializer")
			continue
		}
		tc.checkInitializerAgainst(item.Value, field.Type)
	}
}

// nextUndesignatedField advances cursor to the next field a plain
// (undesignated) initializer item binds to, flattening through
// anonymous nested struct/union fields the way C does.
func nextUndesignatedField(fields []*Field, cursor *int) *Field {
	for *cursor < len(fields) {
		f := fields[*cursor]
		*cursor++
		if f.Anonymous != nil {
			inner := 0
			if got := nextUndesignatedField(f.Anonymous.Fields, &inner); got != nil {
				return got
			}
			continue
		}
		return f
	}
	return nil
}

func (tc *Typechecker) findDesignatedField(fields []*Field, d Designator) *Field {
	if d.Field == "" {
		return nil
	}
	for _, f := range fields {
		if f.Name == d.Field {
			return f
		}
		if f.Anonymous != nil {
			if got := tc.findDesignatedField(f.Anonymous.Fields, d); got != nil {
				return got
			}
		}
	}
	return nil
}

// typeOf infers e's type, reporting a diagnostic and returning DTAny
// on any rule violation so the caller can keep checking siblings
// instead of cascading unrelated errors.
func (tc *Typechecker) typeOf(e Expr) DataType {
	switch n := e.(type) {
	case *ExprLiteral:
		return tc.typeOfLiteral(n)
	case *ExprNullptr:
		return DTPrimitive{Kind: PrimNullptrT}
	case *ExprIdentifier:
		return tc.typeOfIdentifier(n)
	case *ExprGrouping:
		return tc.typeOf(n.Inner)
	case *ExprAlignof:
		tc.typeOf(n.Operand)
		return DTPrimitive{Kind: PrimUnsignedLong}
	case *ExprSizeof:
		tc.typeOf(n.Operand)
		return DTPrimitive{Kind: PrimUnsignedLong}
	case *ExprDataTypeAsValue:
		return tc.resolve(n.Type)
	case *ExprCast:
		tc.typeOf(n.Inner)
		return tc.resolve(n.Target)
	case *ExprArrayAccess:
		return tc.typeOfArrayAccess(n)
	case *ExprUnary:
		return tc.typeOfUnary(n)
	case *ExprBinary:
		return tc.typeOfBinary(n)
	case *ExprTernary:
		return tc.typeOfTernary(n)
	case *ExprCall:
		return tc.typeOfCall(n)
	case *ExprCallBuiltin:
		return tc.typeOfCallBuiltin(n)
	case *ExprInitializer:
		// An initializer typed in isolation (no target type context,
		// e.g. a nested sizeof operand) has no single C type; callers
		// that know the target type use checkInitializerAgainst
		// instead. Report DTAny so arithmetic on it surfaces its own
		// "not arithmetic" diagnostic at the use site, not here.
		return DTAny{}
	default:
		return DTAny{}
	}
}

func (tc *Typechecker) typeOfLiteral(n *ExprLiteral) DataType {
	switch n.Kind {
	case LitBool:
		return DTPrimitive{Kind: PrimBool}
	case LitChar:
		return DTPrimitive{Kind: PrimChar}
	case LitString:
		return DTPointer{Inner: DTQualified{Inner: DTPrimitive{Kind: PrimChar}, PreConst: true}}
	case LitFloat:
		if n.Suffix == TokLiteralFloat32 {
			return DTPrimitive{Kind: PrimFloat}
		}
		return DTPrimitive{Kind: PrimDouble}
	case LitSignedInt:
		return DTPrimitive{Kind: signedIntKindForSuffix(n.Suffix)}
	case LitUnsignedInt:
		return DTPrimitive{Kind: unsignedIntKindForSuffix(n.Suffix)}
	default:
		return DTPrimitive{Kind: PrimInt}
	}
}

func signedIntKindForSuffix(k TokenKind) PrimitiveKind {
	switch k {
	case TokLiteralSignedInt8:
		return PrimSignedChar
	case TokLiteralSignedInt16:
		return PrimShort
	case TokLiteralSignedInt64, TokLiteralSignedIntSize:
		return PrimLongLong
	default:
		return PrimInt
	}
}

func unsignedIntKindForSuffix(k TokenKind) PrimitiveKind {
	switch k {
	case TokLiteralUnsignedInt8:
		return PrimUnsignedChar
	case TokLiteralUnsignedInt16:
		return PrimUnsignedShort
	case TokLiteralUnsignedInt64, TokLiteralUnsignedIntSize:
		return PrimUnsignedLongLong
	default:
		return PrimUnsignedInt
	}
}

func (tc *Typechecker) typeOfIdentifier(n *ExprIdentifier) DataType {
	if t, ok := tc.env.lookup(n.Name); ok {
		return t
	}
	if t, ok := tc.globalVars[n.Name]; ok {
		return tc.resolve(t)
	}
	if sig, ok := tc.globalFuncs[n.Name]; ok {
		return DTFunction{Name: n.Name, Params: sig.Params, Return: sig.Return}
	}
	tc.sink.Errorf(KindScoping, n.Range, "use of undeclared identifier %q", n.Name)
	return DTAny{}
}

func (tc *Typechecker) typeOfArrayAccess(n *ExprArrayAccess) DataType {
	arrT := tc.typeOf(n.Array)
	idxT := tc.typeOf(n.Index)
	if !IsArrayCompatible(arrT) {
		tc.sink.Errorf(KindType, n.Range, "array-access expression must be array- or pointer-compatible")
		return DTAny{}
	}
	if !IsInteger(idxT) {
		tc.sink.Errorf(KindType, n.Range, "array index must be integer")
	}
	switch a := structural(arrT).(type) {
	case DTArray:
		return a.Element
	case DTPointer:
		return a.Inner
	}
	return DTAny{}
}

func (tc *Typechecker) typeOfUnary(n *ExprUnary) DataType {
	t := tc.typeOf(n.Inner)
	switch n.Kind {
	case UnaryPreInc, UnaryPreDec, UnaryPostInc, UnaryPostDec, UnaryPlus, UnaryMinus:
		if !IsArithmetic(t) {
			tc.sink.Errorf(KindType, n.Range, "operand must be integer or float compatible")
			return DTAny{}
		}
		return t
	case UnaryBitNot, UnaryLogNot:
		if !IsInteger(t) {
			tc.sink.Errorf(KindType, n.Range, "operand must be integer-compatible")
			return DTAny{}
		}
		return t
	case UnaryDeref:
		if !IsPtr(t) {
			tc.sink.Errorf(KindType, n.Range, "cannot dereference a non-pointer")
			return DTAny{}
		}
		return UnwrapPtr(t)
	case UnaryAddrOf:
		return DTPointer{Inner: t}
	default:
		return DTAny{}
	}
}

func (tc *Typechecker) typeOfBinary(n *ExprBinary) DataType {
	if n.Kind == BinMember || n.Kind == BinMemberPtr {
		return tc.typeOfMember(n)
	}
	if n.Kind.IsAssignment() {
		return tc.typeOfAssignment(n)
	}

	lt := tc.typeOf(n.Left)
	rt := tc.typeOf(n.Right)

	switch {
	case n.Kind == BinAdd || n.Kind == BinSub || n.Kind == BinMul || n.Kind == BinDiv:
		if IsPtr(lt) && IsInteger(rt) {
			return lt
		}
		if IsPtr(rt) && IsInteger(lt) && n.Kind == BinAdd {
			return rt
		}
		if !IsArithmetic(lt) || !IsArithmetic(rt) {
			tc.sink.Errorf(KindType, n.Range, "operands of arithmetic operator must be integer or float compatible")
			return DTAny{}
		}
		return arithmeticResult(lt, rt)
	case n.Kind == BinMod || n.Kind == BinShl || n.Kind == BinShr ||
		n.Kind == BinBitAnd || n.Kind == BinBitOr || n.Kind == BinBitXor:
		if !IsInteger(lt) || !IsInteger(rt) {
			tc.sink.Errorf(KindType, n.Range, "operands of bitwise/shift operator must be integer-compatible")
			return DTAny{}
		}
		return lt
	case n.Kind == BinLogAnd || n.Kind == BinLogOr:
		if !IsInteger(lt) || !IsInteger(rt) {
			tc.sink.Errorf(KindType, n.Range, "operands of logical operator must be integer-compatible")
		}
		return DTPrimitive{Kind: PrimInt}
	case n.Kind == BinEq || n.Kind == BinNe || n.Kind == BinLt || n.Kind == BinLe ||
		n.Kind == BinGt || n.Kind == BinGe:
		if !((IsInteger(lt) || IsFloat(lt)) && (IsInteger(rt) || IsFloat(rt))) && !(IsPtr(lt) && IsPtr(rt)) {
			tc.sink.Errorf(KindType, n.Range, "operands of comparison operator must be integer- or float-compatible")
		}
		return DTPrimitive{Kind: PrimInt}
	default:
		return DTAny{}
	}
}

func arithmeticResult(lt, rt DataType) DataType {
	if IsFloat(lt) {
		return lt
	}
	if IsFloat(rt) {
		return rt
	}
	return lt
}

func (tc *Typechecker) typeOfMember(n *ExprBinary) DataType {
	baseT := tc.typeOf(n.Left)
	field, _ := n.Right.(*ExprIdentifier)
	if field == nil {
		tc.sink.Errorf(KindType, n.Range, "malformed member access")
		return DTAny{}
	}
	target := baseT
	if n.Kind == BinMemberPtr {
		if !IsPtr(baseT) {
			tc.sink.Errorf(KindType, n.Range, "'->' requires a pointer operand")
			return DTAny{}
		}
		target = UnwrapPtr(baseT)
	}
	fields := tc.resolver.GetFieldsOfStructOrUnion(target)
	f := tc.findDesignatedField(fields, Designator{Field: field.Name})
	if f == nil {
		tc.sink.Errorf(KindScoping, n.Range, "no member named %q", field.Name)
		return DTAny{}
	}
	return f.Type
}

func (tc *Typechecker) typeOfAssignment(n *ExprBinary) DataType {
	lt := tc.typeOf(n.Left)
	rt := tc.typeOf(n.Right)
	if !isLvalue(n.Left) || IsArray(lt) {
		tc.sink.Errorf(KindType, n.Range, "cannot assign expression to array data type")
		return lt
	}
	if !canImplicitCast(rt, lt) {
		tc.sink.Errorf(KindType, n.Range, "cannot assign incompatible type")
	}
	return lt
}

func (tc *Typechecker) typeOfTernary(n *ExprTernary) DataType {
	ct := tc.typeOf(n.Cond)
	if !IsInteger(ct) && !IsFloat(ct) {
		tc.sink.Errorf(KindType, n.Range, "ternary condition must be integer-compatible")
	}
	lt := tc.typeOf(n.IfTrue)
	rt := tc.typeOf(n.IfFalse)
	if !canImplicitCast(lt, rt) && !canImplicitCast(rt, lt) {
		tc.sink.Errorf(KindType, n.Range, "ternary branches have incompatible types")
	}
	return lt
}

func (tc *Typechecker) typeOfCall(n *ExprCall) DataType {
	sig, ok := tc.globalFuncs[n.Callee]
	if !ok {
		tc.sink.Errorf(KindScoping, n.Range, "call to undeclared function %q", n.Callee)
		for _, a := range n.Args {
			tc.typeOf(a)
		}
		return DTAny{}
	}

	if len(n.GenericArgs) > 0 {
		return tc.typeOfGenericCall(n, sig)
	}

	tc.checkCallArgs(n.Range, sig.Params, n.Args)
	return tc.resolve(sig.Return)
}

// typeOfGenericCall validates and drives a generic instantiation
// (§4.7 "validates generic instantiations"): the monomorphizer
// materializes the concrete DeclFunctionGen so subsequent references
// and the emitter reuse exactly one specialized declaration.
func (tc *Typechecker) typeOfGenericCall(n *ExprCall, sig funcSig) DataType {
	if sig.Template == nil || len(sig.Generics) != len(n.GenericArgs) {
		tc.sink.Errorf(KindGeneric, n.Range, "instantiation of %q supplied the wrong number of generic arguments", n.Callee)
		for _, a := range n.Args {
			tc.typeOf(a)
		}
		return DTAny{}
	}
	gen, err := tc.mono.InstantiateFunction(sig.Template, n.GenericArgs, n.Range)
	if err != nil {
		tc.sink.Errorf(KindGeneric, n.Range, "%s", err.Error())
		return DTAny{}
	}
	tc.globalFuncs[gen.MangledName] = funcSig{Params: gen.Params, Return: gen.Return}
	tc.checkCallArgs(n.Range, gen.Params, n.Args)
	return tc.resolve(gen.Return)
}

func (tc *Typechecker) checkCallArgs(rg Range, params []Param, args []Expr) {
	variadic := len(params) > 0 && params[len(params)-1].Variadic
	fixed := params
	if variadic {
		fixed = params[:len(params)-1]
	}
	if len(args) < len(fixed) || (!variadic && len(args) != len(fixed)) {
		tc.sink.Errorf(KindType, rg, "call-arity mismatch: expected %d argument(s), found %d", len(fixed), len(args))
	}
	for i, a := range args {
		argT := tc.typeOf(a)
		if i >= len(fixed) {
			continue // variadic tail accepts any type
		}
		want := tc.resolve(fixed[i].Type)
		if _, isAny := want.(DTAny); isAny {
			continue
		}
		if !canImplicitCast(argT, want) {
			tc.sink.Errorf(KindType, a.ExprRange(), "argument %d does not implicitly cast to the declared parameter type", i+1)
		}
	}
}

func (tc *Typechecker) typeOfCallBuiltin(n *ExprCallBuiltin) DataType {
	fn := tc.builtins.ByIndex(n.Builtin)
	tc.checkCallArgs(n.Range, toBuiltinParams(fn), n.Args)
	return fn.Return
}

func toBuiltinParams(fn BuiltinFunc) []Param {
	params := make([]Param, len(fn.Params))
	for i, t := range fn.Params {
		params[i] = Param{Type: t}
	}
	if fn.Variadic {
		params = append(params, Param{Variadic: true})
	}
	return params
}
