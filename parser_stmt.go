package ci

// parseBlock parses `{ ... }`, assuming the current scope is already
// the block's own scope (the caller pushed it).
func (p *Parser) parseBlock() *StmtBlock {
	rg := p.cur().Range
	p.expect(TokLBrace, "'{'")
	scopeID := p.curScope.ID
	var items []Item
	for !p.check(TokRBrace) && !p.check(TokEOF) {
		items = append(items, p.parseBlockItem())
	}
	p.expect(TokRBrace, "'}'")
	return &StmtBlock{stmtBase: stmtBase{Range: rg}, Body: items, ScopeID: scopeID}
}

// parseBlockItem parses one element of a function body: a declaration,
// a statement, or a bare expression-statement.
func (p *Parser) parseBlockItem() Item {
	scopeID := p.curScope.ID
	if p.startsDeclaration() {
		attrs := p.parseAttributes()
		start := p.cur().Range
		storage := p.parseStorageClass()
		switch {
		case p.checkKeyword(KwEnum):
			return Item{Decl: p.parseEnumDecl(start, storage, attrs), ScopeID: scopeID}
		case p.checkKeyword(KwStruct):
			return Item{Decl: p.parseRecordDecl(start, storage, attrs, TagStruct), ScopeID: scopeID}
		case p.checkKeyword(KwUnion):
			return Item{Decl: p.parseRecordDecl(start, storage, attrs, TagUnion), ScopeID: scopeID}
		default:
			base := p.parseBaseType()
			generics := p.parseGenericIntroduction()
			name, build := p.parseDeclarator()
			full := build(base)
			decl := &DeclVariable{
				DeclBase: DeclBase{ID: p.file.NextDeclID(), ScopeID: scopeID, Storage: storage, Attributes: attrs, Range: start},
				Name:     name,
				Type:     full,
				IsLocal:  true,
			}
			_ = generics
			if p.match(TokEqual) {
				decl.Initializer = p.parseInitializerOrAssignment()
			}
			p.curScope.Declare(name, SymVariable, decl.ID, p.sink, start)
			p.expect(TokSemicolon, "';'")
			return Item{Decl: decl, ScopeID: scopeID}
		}
	}

	if p.check(TokIdentifier) && p.peekN(1).Kind == TokColon {
		nameTok := p.advance()
		p.advance() // ':'
		decl := &DeclLabel{
			DeclBase: DeclBase{ID: p.file.NextDeclID(), ScopeID: scopeID, Range: nameTok.Range},
			Name:     nameTok.Text,
		}
		p.curScope.Declare(nameTok.Text, SymLabel, decl.ID, p.sink, nameTok.Range)
		return Item{Decl: decl, ScopeID: scopeID}
	}

	return Item{Stmt: p.parseStmt(), ScopeID: scopeID}
}

// startsDeclaration reports whether the current token begins a
// declaration rather than a statement/expression, used to disambiguate
// block items.
func (p *Parser) startsDeclaration() bool {
	t := p.cur()
	if t.Kind != TokKeyword {
		if t.Kind == TokIdentifier && p.genericsInScope[t.Text] {
			return true
		}
		return false
	}
	switch t.Keyword {
	case KwTypedef, KwExtern, KwStatic, KwAuto, KwRegister, KwThreadLocal, KwThreadLocalC23,
		KwConstexpr, KwInline, KwNoreturn, KwConst, KwRestrict, KwVolatile,
		KwVoid, KwBool, KwBoolC23, KwChar, KwShort, KwInt, KwLong, KwFloat, KwDouble,
		KwSigned, KwUnsigned, KwStruct, KwUnion, KwEnum, KwAtomic, KwNullptr,
		KwTypeof, KwTypeofUnqual, KwTypeof2:
		return true
	}
	return false
}

func (p *Parser) parseStmt() Stmt {
	rg := p.cur().Range
	switch {
	case p.check(TokLBrace):
		parent := p.curScope
		scope := p.file.Scopes.NewScope(parent.ID)
		p.curScope = scope
		block := p.parseBlock()
		p.curScope = parent
		return block

	case p.checkKeyword(KwBreak):
		p.advance()
		p.expect(TokSemicolon, "';'")
		return &StmtBreak{stmtBase{Range: rg}}

	case p.checkKeyword(KwContinue):
		p.advance()
		p.expect(TokSemicolon, "';'")
		return &StmtContinue{stmtBase{Range: rg}}

	case p.checkKeyword(KwCase):
		p.advance()
		value := p.parseExpr()
		p.expect(TokColon, "':'")
		return &StmtCase{stmtBase: stmtBase{Range: rg}, Value: value}

	case p.checkKeyword(KwDefault):
		p.advance()
		p.expect(TokColon, "':'")
		return &StmtDefault{stmtBase{Range: rg}}

	case p.checkKeyword(KwDo):
		return p.parseDoWhile(rg)

	case p.checkKeyword(KwFor):
		return p.parseFor(rg)

	case p.checkKeyword(KwGoto):
		p.advance()
		label, _ := p.expect(TokIdentifier, "label name")
		p.expect(TokSemicolon, "';'")
		return &StmtGoto{stmtBase: stmtBase{Range: rg}, Label: label.Text}

	case p.checkKeyword(KwIf):
		return p.parseIf(rg)

	case p.checkKeyword(KwReturn):
		p.advance()
		var value Expr
		if !p.check(TokSemicolon) {
			value = p.parseExpr()
		}
		p.expect(TokSemicolon, "';'")
		return &StmtReturn{stmtBase: stmtBase{Range: rg}, Value: value}

	case p.checkKeyword(KwSwitch):
		return p.parseSwitch(rg)

	case p.checkKeyword(KwWhile):
		return p.parseWhile(rg)

	case p.check(TokSemicolon):
		p.advance()
		return &StmtBlock{stmtBase: stmtBase{Range: rg}, ScopeID: p.curScope.ID}

	default:
		expr := p.parseExpr()
		p.expect(TokSemicolon, "';'")
		// An expression-statement is wrapped as a single-item block so
		// Stmt's closed set of variants doesn't need its own case; the
		// typechecker recognizes this shape and applies the
		// discarded-expression rules directly to the lone item.
		return &StmtBlock{stmtBase: stmtBase{Range: rg}, Body: []Item{{Expr: expr, ScopeID: p.curScope.ID}}, ScopeID: p.curScope.ID}
	}
}

func (p *Parser) parseNestedStmt() Stmt {
	prevSwitch := p.curScope.SwitchInProgress
	stmt := p.parseStmt()
	p.curScope.SwitchInProgress = prevSwitch
	return stmt
}

func (p *Parser) parseDoWhile(rg Range) Stmt {
	p.advance() // 'do'
	body := p.parseNestedStmt()
	p.expect(TokKeyword, "'while'")
	p.expect(TokLParen, "'('")
	cond := p.parseExpr()
	p.expect(TokRParen, "')'")
	p.expect(TokSemicolon, "';'")
	return &StmtDoWhile{stmtBase: stmtBase{Range: rg}, Body: body, Cond: cond}
}

func (p *Parser) parseWhile(rg Range) Stmt {
	p.advance() // 'while'
	p.expect(TokLParen, "'('")
	cond := p.parseExpr()
	p.expect(TokRParen, "')'")
	body := p.parseNestedStmt()
	return &StmtWhile{stmtBase: stmtBase{Range: rg}, Cond: cond, Body: body}
}

func (p *Parser) parseFor(rg Range) Stmt {
	p.advance() // 'for'
	parent := p.curScope
	scope := p.file.Scopes.NewScope(parent.ID)
	p.curScope = scope
	defer func() { p.curScope = parent }()

	p.expect(TokLParen, "'('")
	var init []Item
	if !p.check(TokSemicolon) {
		if p.startsDeclaration() {
			init = append(init, p.parseBlockItem())
		} else {
			for {
				init = append(init, Item{Expr: p.parseAssignmentExpr(), ScopeID: scope.ID})
				if !p.match(TokComma) {
					break
				}
			}
			p.expect(TokSemicolon, "';'")
		}
	} else {
		p.advance()
	}

	var cond Expr
	if !p.check(TokSemicolon) {
		cond = p.parseExpr()
	}
	p.expect(TokSemicolon, "';'")

	var step []Expr
	if !p.check(TokRParen) {
		for {
			step = append(step, p.parseAssignmentExpr())
			if !p.match(TokComma) {
				break
			}
		}
	}
	p.expect(TokRParen, "')'")

	body := p.parseNestedStmt()
	return &StmtFor{stmtBase: stmtBase{Range: rg}, Init: init, Cond: cond, Step: step, Body: body}
}

func (p *Parser) parseIf(rg Range) Stmt {
	p.advance() // 'if'
	p.expect(TokLParen, "'('")
	cond := p.parseExpr()
	p.expect(TokRParen, "')'")
	body := p.parseNestedStmt()

	stmt := &StmtIf{stmtBase: stmtBase{Range: rg}, If: IfBranch{Cond: cond, Body: body}}
	for p.checkKeyword(KwElse) {
		p.advance()
		if p.checkKeyword(KwIf) {
			elifRg := p.cur().Range
			p.advance()
			p.expect(TokLParen, "'('")
			c := p.parseExpr()
			p.expect(TokRParen, "')'")
			b := p.parseNestedStmt()
			_ = elifRg
			stmt.ElseIfs = append(stmt.ElseIfs, IfBranch{Cond: c, Body: b})
			continue
		}
		stmt.Else = p.parseNestedStmt()
		break
	}
	return stmt
}

func (p *Parser) parseSwitch(rg Range) Stmt {
	p.advance() // 'switch'
	p.expect(TokLParen, "'('")
	scrutinee := p.parseExpr()
	p.expect(TokRParen, "')'")

	p.curScope.SwitchInProgress = true
	body := p.parseStmt()
	p.curScope.SwitchInProgress = false
	return &StmtSwitch{stmtBase: stmtBase{Range: rg}, Scrutinee: scrutinee, Body: body}
}
