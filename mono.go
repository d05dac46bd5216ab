package ci

import "github.com/pkg/errors"

// Monomorphizer materializes concrete instances of generic
// struct/union/typedef/function declarations on demand. One
// Monomorphizer is scoped to a single ResultFile, matching the
// per-file decl-list append target.
type Monomorphizer struct {
	file      *ResultFile
	sink      *Sink
	inFlight  map[string]bool // (template,args) pairs currently being expanded
}

func NewMonomorphizer(file *ResultFile, sink *Sink) *Monomorphizer {
	return &Monomorphizer{file: file, sink: sink, inFlight: map[string]bool{}}
}

// InstantiateStruct produces (creating if necessary) the monomorphic
// DeclStructGen for template with the given concrete args.
func (m *Monomorphizer) InstantiateStruct(template *DeclStruct, args []DataType, rg Range) (*DeclStructGen, error) {
	name := MangledName(template.Name, args)
	if existing := m.file.FindDeclByMangledName(name); existing != nil {
		if gen, ok := existing.(*DeclStructGen); ok {
			return gen, nil
		}
	}
	if m.inFlight[name] {
		return nil, errors.Errorf("recursive generic instantiation of %q", name)
	}
	m.inFlight[name] = true
	defer delete(m.inFlight, name)

	binding := GenericBindingPair{Called: args, Decl: template.Generics}
	gen := &DeclStructGen{
		DeclBase:    DeclBase{ID: m.file.NextDeclID(), Range: rg},
		MangledName: name,
		Body:        substituteRecordBody(template.Body, binding),
		Template:    template,
		Args:        args,
	}
	m.file.AppendDecl(gen)
	return gen, nil
}

// InstantiateUnion mirrors InstantiateStruct for unions.
func (m *Monomorphizer) InstantiateUnion(template *DeclUnion, args []DataType, rg Range) (*DeclUnionGen, error) {
	name := MangledName(template.Name, args)
	if existing := m.file.FindDeclByMangledName(name); existing != nil {
		if gen, ok := existing.(*DeclUnionGen); ok {
			return gen, nil
		}
	}
	if m.inFlight[name] {
		return nil, errors.Errorf("recursive generic instantiation of %q", name)
	}
	m.inFlight[name] = true
	defer delete(m.inFlight, name)

	binding := GenericBindingPair{Called: args, Decl: template.Generics}
	gen := &DeclUnionGen{
		DeclBase:    DeclBase{ID: m.file.NextDeclID(), Range: rg},
		MangledName: name,
		Body:        substituteRecordBody(template.Body, binding),
		Template:    template,
		Args:        args,
	}
	m.file.AppendDecl(gen)
	return gen, nil
}

// InstantiateTypedef mirrors InstantiateStruct for generic typedefs.
func (m *Monomorphizer) InstantiateTypedef(template *DeclTypedef, args []DataType, rg Range) (*DeclTypedefGen, error) {
	name := MangledName(template.Name, args)
	if existing := m.file.FindDeclByMangledName(name); existing != nil {
		if gen, ok := existing.(*DeclTypedefGen); ok {
			return gen, nil
		}
	}
	if m.inFlight[name] {
		return nil, errors.Errorf("recursive generic instantiation of %q", name)
	}
	m.inFlight[name] = true
	defer delete(m.inFlight, name)

	binding := GenericBindingPair{Called: args, Decl: template.Generics}
	gen := &DeclTypedefGen{
		DeclBase:    DeclBase{ID: m.file.NextDeclID(), Range: rg},
		MangledName: name,
		Aliased:     substituteType(template.Aliased, binding),
		Template:    template,
		Args:        args,
	}
	m.file.AppendDecl(gen)
	return gen, nil
}

// InstantiateFunction mirrors InstantiateStruct for generic functions,
// additionally deep-substituting the body's statements.
func (m *Monomorphizer) InstantiateFunction(template *DeclFunction, args []DataType, rg Range) (*DeclFunctionGen, error) {
	name := MangledName(template.Name, args)
	if existing := m.file.FindDeclByMangledName(name); existing != nil {
		if gen, ok := existing.(*DeclFunctionGen); ok {
			return gen, nil
		}
	}
	if m.inFlight[name] {
		return nil, errors.Errorf("recursive generic instantiation of %q", name)
	}
	m.inFlight[name] = true
	defer delete(m.inFlight, name)

	binding := GenericBindingPair{Called: args, Decl: template.Generics}
	params := make([]Param, len(template.Params))
	for i, p := range template.Params {
		params[i] = Param{Name: p.Name, Type: substituteType(p.Type, binding), Variadic: p.Variadic}
	}
	gen := &DeclFunctionGen{
		DeclBase:    DeclBase{ID: m.file.NextDeclID(), Range: rg},
		MangledName: name,
		Return:      substituteType(template.Return, binding),
		Params:      params,
		Body:        substituteBlock(template.Body, binding),
		Template:    template,
		Args:        args,
	}
	m.file.AppendDecl(gen)
	return gen, nil
}

// substituteType deep-substitutes every DTGenericVar reachable from t
// against binding, leaving already-concrete structure untouched.
func substituteType(t DataType, binding GenericBindingPair) DataType {
	if t == nil {
		return nil
	}
	switch n := t.(type) {
	case DTGenericVar:
		if concrete, ok := binding.lookup(n.Name); ok {
			return concrete
		}
		return n
	case DTAtomic:
		return DTAtomic{Inner: substituteType(n.Inner, binding)}
	case DTQualified:
		return DTQualified{Inner: substituteType(n.Inner, binding), PreConst: n.PreConst, PostConst: n.PostConst, Quals: n.Quals}
	case DTPointer:
		return DTPointer{Inner: substituteType(n.Inner, binding), Name: n.Name, Quals: n.Quals}
	case DTArray:
		return DTArray{Element: substituteType(n.Element, binding), Sized: n.Sized, Size: n.Size, Name: n.Name, IsStatic: n.IsStatic, Quals: n.Quals}
	case DTFunction:
		params := make([]Param, len(n.Params))
		for i, p := range n.Params {
			params[i] = Param{Name: p.Name, Type: substituteType(p.Type, binding), Variadic: p.Variadic}
		}
		return DTFunction{Name: n.Name, Params: params, Return: substituteType(n.Return, binding), Generics: n.Generics}
	case DTTypedefRef:
		args := make([]DataType, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteType(a, binding)
		}
		return DTTypedefRef{Name: n.Name, Args: args}
	case DTNamed:
		if len(n.Args) == 0 {
			return n
		}
		args := make([]DataType, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteType(a, binding)
		}
		return DTNamed{TagKind: n.TagKind, Tag: n.Tag, Args: args}
	default:
		return t
	}
}

func substituteRecordBody(body *RecordBody, binding GenericBindingPair) *RecordBody {
	if body == nil {
		return nil
	}
	fields := make([]*Field, len(body.Fields))
	out := &RecordBody{}
	for i, f := range body.Fields {
		nf := &Field{
			Name:      f.Name,
			Type:      substituteType(f.Type, binding),
			BitWidth:  f.BitWidth,
			Anonymous: substituteRecordBody(f.Anonymous, binding),
			Parent:    out,
		}
		fields[i] = nf
	}
	out.Fields = fields
	return out
}

// substituteBlock deep-substitutes generic-parameter type references
// throughout a function body's statement tree. Expression trees carry
// no standalone type annotations to substitute (casts/sizeof-of-type
// are the exception, handled inline), so only DataType-bearing nodes
// are rewritten; statement/expression shape is otherwise shared.
func substituteBlock(b *StmtBlock, binding GenericBindingPair) *StmtBlock {
	if b == nil {
		return nil
	}
	items := make([]Item, len(b.Body))
	for i, it := range b.Body {
		items[i] = substituteItem(it, binding)
	}
	return &StmtBlock{stmtBase: b.stmtBase, Body: items, ScopeID: b.ScopeID}
}

func substituteItem(it Item, binding GenericBindingPair) Item {
	out := Item{ScopeID: it.ScopeID}
	if it.Decl != nil {
		out.Decl = substituteDecl(it.Decl, binding)
	}
	if it.Expr != nil {
		out.Expr = substituteExpr(it.Expr, binding)
	}
	if it.Stmt != nil {
		out.Stmt = substituteStmt(it.Stmt, binding)
	}
	return out
}

func substituteDecl(d Declaration, binding GenericBindingPair) Declaration {
	if v, ok := d.(*DeclVariable); ok {
		nv := *v
		nv.Type = substituteType(v.Type, binding)
		if v.Initializer != nil {
			nv.Initializer = substituteExpr(v.Initializer, binding)
		}
		return &nv
	}
	return d
}

func substituteStmt(s Stmt, binding GenericBindingPair) Stmt {
	switch n := s.(type) {
	case *StmtBlock:
		return substituteBlock(n, binding)
	case *StmtIf:
		ns := *n
		ns.If = IfBranch{Cond: substituteExpr(n.If.Cond, binding), Body: substituteStmt(n.If.Body, binding)}
		elseIfs := make([]IfBranch, len(n.ElseIfs))
		for i, b := range n.ElseIfs {
			elseIfs[i] = IfBranch{Cond: substituteExpr(b.Cond, binding), Body: substituteStmt(b.Body, binding)}
		}
		ns.ElseIfs = elseIfs
		if n.Else != nil {
			ns.Else = substituteStmt(n.Else, binding)
		}
		return &ns
	case *StmtWhile:
		ns := *n
		ns.Cond = substituteExpr(n.Cond, binding)
		ns.Body = substituteStmt(n.Body, binding)
		return &ns
	case *StmtDoWhile:
		ns := *n
		ns.Cond = substituteExpr(n.Cond, binding)
		ns.Body = substituteStmt(n.Body, binding)
		return &ns
	case *StmtFor:
		ns := *n
		items := make([]Item, len(n.Init))
		for i, it := range n.Init {
			items[i] = substituteItem(it, binding)
		}
		ns.Init = items
		if n.Cond != nil {
			ns.Cond = substituteExpr(n.Cond, binding)
		}
		steps := make([]Expr, len(n.Step))
		for i, e := range n.Step {
			steps[i] = substituteExpr(e, binding)
		}
		ns.Step = steps
		ns.Body = substituteStmt(n.Body, binding)
		return &ns
	case *StmtSwitch:
		ns := *n
		ns.Scrutinee = substituteExpr(n.Scrutinee, binding)
		ns.Body = substituteStmt(n.Body, binding)
		return &ns
	case *StmtReturn:
		ns := *n
		if n.Value != nil {
			ns.Value = substituteExpr(n.Value, binding)
		}
		return &ns
	case *StmtCase:
		ns := *n
		ns.Value = substituteExpr(n.Value, binding)
		return &ns
	default:
		return s
	}
}

func substituteExpr(e Expr, binding GenericBindingPair) Expr {
	switch n := e.(type) {
	case *ExprCast:
		ne := *n
		ne.Target = substituteType(n.Target, binding)
		ne.Inner = substituteExpr(n.Inner, binding)
		return &ne
	case *ExprDataTypeAsValue:
		ne := *n
		ne.Type = substituteType(n.Type, binding)
		return &ne
	case *ExprBinary:
		ne := *n
		ne.Left = substituteExpr(n.Left, binding)
		ne.Right = substituteExpr(n.Right, binding)
		return &ne
	case *ExprUnary:
		ne := *n
		ne.Inner = substituteExpr(n.Inner, binding)
		return &ne
	case *ExprGrouping:
		ne := *n
		ne.Inner = substituteExpr(n.Inner, binding)
		return &ne
	case *ExprArrayAccess:
		ne := *n
		ne.Array = substituteExpr(n.Array, binding)
		ne.Index = substituteExpr(n.Index, binding)
		return &ne
	case *ExprCall:
		ne := *n
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteExpr(a, binding)
		}
		ne.Args = args
		generics := make([]DataType, len(n.GenericArgs))
		for i, a := range n.GenericArgs {
			generics[i] = substituteType(a, binding)
		}
		ne.GenericArgs = generics
		return &ne
	case *ExprTernary:
		ne := *n
		ne.Cond = substituteExpr(n.Cond, binding)
		ne.IfTrue = substituteExpr(n.IfTrue, binding)
		ne.IfFalse = substituteExpr(n.IfFalse, binding)
		return &ne
	case *ExprSizeof:
		ne := *n
		ne.Operand = substituteExpr(n.Operand, binding)
		return &ne
	case *ExprInitializer:
		ne := *n
		items := make([]InitializerItem, len(n.Items))
		for i, it := range n.Items {
			items[i] = InitializerItem{Designators: it.Designators, Value: substituteExpr(it.Value, binding)}
		}
		ne.Items = items
		return &ne
	default:
		return e
	}
}
