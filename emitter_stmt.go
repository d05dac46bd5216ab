package ci

import "strings"

// emitStmtBody emits every item of a block's body at the current
// indent level, one statement per line (§4.9 mechanism 7).
func emitStmtBody(e *Emitter, out *cWriter, b *StmtBlock) {
	for _, it := range b.Body {
		emitItem(e, out, it)
	}
}

func emitItem(e *Emitter, out *cWriter, it Item) {
	switch {
	case it.Decl != nil:
		emitLocalDecl(e, out, it.Decl)
	case it.Expr != nil:
		out.writeil(emitExpr(e, it.Expr) + ";")
	case it.Stmt != nil:
		emitStmt(e, out, it.Stmt)
	}
}

func emitLocalDecl(e *Emitter, out *cWriter, d Declaration) {
	switch n := d.(type) {
	case *DeclVariable:
		out.writeil(e.emitVariableDecl(n) + ";")
	case *DeclLabel:
		out.unindent()
		out.writeil(n.Name + ":")
		out.indent()
	}
}

// emitStmt dispatches every statement kind. A switch body is emitted
// two levels in from its `switch` line and each StmtCase/StmtDefault
// label steps back out one level, so a `case` label sits one level in
// from its `switch` and the statements under it one level further.
func emitStmt(e *Emitter, out *cWriter, s Stmt) {
	switch n := s.(type) {
	case *StmtBlock:
		out.writeil("{")
		out.indent()
		emitStmtBody(e, out, n)
		out.unindent()
		out.writeil("}")

	case *StmtBreak:
		out.writeil("break;")

	case *StmtContinue:
		out.writeil("continue;")

	case *StmtCase:
		out.unindent()
		out.writeil("case " + emitExpr(e, n.Value) + ":")
		out.indent()

	case *StmtDefault:
		out.unindent()
		out.writeil("default:")
		out.indent()

	case *StmtGoto:
		out.writeil("goto " + n.Label + ";")

	case *StmtReturn:
		if n.Value == nil {
			out.writeil("return;")
		} else {
			out.writeil("return " + emitExpr(e, n.Value) + ";")
		}

	case *StmtWhile:
		out.writeil("while (" + emitExpr(e, n.Cond) + ")")
		emitBraced(e, out, n.Body)

	case *StmtDoWhile:
		out.writeil("do")
		emitBraced(e, out, n.Body)
		out.writeil("while (" + emitExpr(e, n.Cond) + ");")

	case *StmtFor:
		out.writeil("for (" + emitForHeader(e, n) + ")")
		emitBraced(e, out, n.Body)

	case *StmtIf:
		emitIf(e, out, n)

	case *StmtSwitch:
		out.writeil("switch (" + emitExpr(e, n.Scrutinee) + ") {")
		out.indent()
		out.indent()
		if blk, ok := n.Body.(*StmtBlock); ok {
			emitStmtBody(e, out, blk)
		} else {
			emitItem(e, out, Item{Stmt: n.Body})
		}
		out.unindent()
		out.unindent()
		out.writeil("}")

	default:
		e.ice("unhandled statement %T reached emission", s)
	}
}

// emitBraced always wraps body in `{ }`, used where the grammar binds
// a single dependent statement but the teacher's style prefers an
// explicit block for every loop/if body regardless of whether the
// source had one.
func emitBraced(e *Emitter, out *cWriter, body Stmt) {
	if blk, ok := body.(*StmtBlock); ok {
		out.writeil("{")
		out.indent()
		emitStmtBody(e, out, blk)
		out.unindent()
		out.writeil("}")
		return
	}
	out.writeil("{")
	out.indent()
	emitItem(e, out, Item{Stmt: body})
	out.unindent()
	out.writeil("}")
}

func emitForHeader(e *Emitter, n *StmtFor) string {
	var parts []string
	parts = append(parts, emitForInit(e, n.Init))
	cond := ""
	if n.Cond != nil {
		cond = emitExpr(e, n.Cond)
	}
	parts = append(parts, cond)
	steps := make([]string, len(n.Step))
	for i, s := range n.Step {
		steps[i] = emitExpr(e, s)
	}
	parts = append(parts, strings.Join(steps, ", "))
	return strings.Join(parts, "; ")
}

// emitForInit implements the init-clause half of §4.9 mechanism 7: a
// declaration-form init clause and a comma-expression-form init
// clause both render as one header segment with no trailing semicolon
// (the caller's "; "-joined header supplies it).
func emitForInit(e *Emitter, items []Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		switch {
		case it.Decl != nil:
			if v, ok := it.Decl.(*DeclVariable); ok {
				parts = append(parts, e.emitVariableDecl(v))
			}
		case it.Expr != nil:
			parts = append(parts, emitExpr(e, it.Expr))
		}
	}
	return strings.Join(parts, ", ")
}

// emitIf prints the whole if/else-if/else chain as successive lines
// at the parent scope's tab count (§4.9 mechanism 7).
func emitIf(e *Emitter, out *cWriter, n *StmtIf) {
	out.writeil("if (" + emitExpr(e, n.If.Cond) + ")")
	emitBraced(e, out, n.If.Body)
	for _, b := range n.ElseIfs {
		out.writeil("else if (" + emitExpr(e, b.Cond) + ")")
		emitBraced(e, out, b.Body)
	}
	if n.Else != nil {
		out.writeil("else")
		emitBraced(e, out, n.Else)
	}
}
