package ci

// Parser is a recursive-descent parser producing the AST from a
// TokenStack. One Parser drives one ResultFile: one rule per method,
// synchronizing on error by discarding tokens up to a likely
// declaration or statement boundary.
type Parser struct {
	stack    *TokenStack
	sink     *Sink
	file     *ResultFile
	standard Standard
	builtins *BuiltinTable
	curScope *Scope

	// genericsInScope names the generic parameters introduced by the
	// declaration currently being parsed, so bare identifiers naming
	// them parse as DTGenericVar instead of DTTypedefRef.
	genericsInScope map[string]bool
}

func NewParser(stack *TokenStack, file *ResultFile, sink *Sink, standard Standard, builtins *BuiltinTable) *Parser {
	return &Parser{
		stack:           stack,
		sink:            sink,
		file:            file,
		standard:        standard,
		builtins:        builtins,
		curScope:        file.Scopes.Get(file.RootScopeID),
		genericsInScope: map[string]bool{},
	}
}

func (p *Parser) cur() Token  { return p.stack.Peek(0) }
func (p *Parser) peekN(n int) Token { return p.stack.Peek(n) }

func (p *Parser) advance() Token { return p.stack.Next() }

func (p *Parser) check(kind TokenKind) bool { return p.cur().Kind == kind }

func (p *Parser) checkKeyword(kw Keyword) bool {
	return p.cur().Kind == TokKeyword && p.cur().Keyword == kw
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind, what string) (Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.sink.Errorf(KindSyntactic, p.cur().Range, "expected %s, found %s", what, p.cur().Kind)
	return Token{}, false
}

// synchronize discards tokens until the next statement-terminator,
// matched closing brace, or top-level keyword, so one malformed
// declaration doesn't cascade into spurious errors for the rest of the
// file.
func (p *Parser) synchronize() {
	for {
		t := p.cur()
		if t.Kind == TokEOF {
			return
		}
		if t.Kind == TokSemicolon {
			p.advance()
			return
		}
		if t.Kind == TokRBrace {
			return
		}
		if t.Kind == TokKeyword {
			switch t.Keyword {
			case KwStruct, KwUnion, KwEnum, KwTypedef, KwStatic, KwExtern, KwVoid, KwInt, KwChar:
				return
			}
		}
		p.advance()
	}
}

// ParseTranslationUnit parses every top-level declaration in the file,
// populating p.file.Decls and recovering after each error.
func (p *Parser) ParseTranslationUnit() {
	for !p.check(TokEOF) {
		before := p.cur()
		d := p.parseTopLevelDecl()
		if d != nil {
			p.file.AppendDecl(d)
		}
		if p.cur() == before {
			// parseTopLevelDecl made no progress; force advancement to
			// avoid an infinite loop on an unrecognized token.
			p.advance()
		}
	}
}

func (p *Parser) parseAttributes() []Attribute {
	var attrs []Attribute
	for p.check(TokLAttr) {
		start := p.cur().Range
		p.advance()
		for !p.check(TokRAttr) && !p.check(TokEOF) {
			nameTok, _ := p.expect(TokIdentifier, "attribute name")
			attr := Attribute{Name: nameTok.Text, Range: start}
			if p.match(TokLParen) {
				if !p.check(TokRParen) {
					argTok := p.advance()
					attr.Arg = argTok.String()
				}
				p.match(TokRParen)
			}
			attrs = append(attrs, attr)
			if !p.match(TokComma) {
				break
			}
		}
		p.match(TokRAttr)
	}
	return attrs
}

func (p *Parser) parseStorageClass() StorageClass {
	var sc StorageClass
	for p.check(TokKeyword) {
		switch p.cur().Keyword {
		case KwTypedef:
			sc |= StorageTypedef
		case KwExtern:
			sc |= StorageExtern
		case KwStatic:
			sc |= StorageStatic
		case KwAuto:
			sc |= StorageAuto
		case KwRegister:
			sc |= StorageRegister
		case KwThreadLocal, KwThreadLocalC23:
			sc |= StorageThreadLocal
		case KwConstexpr:
			sc |= StorageConstexpr
		case KwInline:
			sc |= StorageInline
		case KwNoreturn:
			sc |= StorageNoreturn
		default:
			return sc
		}
		p.advance()
	}
	return sc
}

// parseGenericIntroduction parses the optional `<T, U>` generic
// parameter introduction on a decl.
func (p *Parser) parseGenericIntroduction() []string {
	if !p.check(TokLess) {
		return nil
	}
	p.advance()
	var names []string
	for !p.check(TokGreater) && !p.check(TokEOF) {
		tok, ok := p.expect(TokIdentifier, "generic parameter name")
		if ok {
			names = append(names, tok.Text)
			p.genericsInScope[tok.Text] = true
		}
		if !p.match(TokComma) {
			break
		}
	}
	p.match(TokGreater)
	return names
}

func (p *Parser) parseTopLevelDecl() Declaration {
	attrs := p.parseAttributes()
	start := p.cur().Range
	storage := p.parseStorageClass()

	switch {
	case p.checkKeyword(KwEnum):
		return p.parseEnumDecl(start, storage, attrs)
	case p.checkKeyword(KwStruct):
		return p.parseRecordDecl(start, storage, attrs, TagStruct)
	case p.checkKeyword(KwUnion):
		return p.parseRecordDecl(start, storage, attrs, TagUnion)
	default:
		return p.parseFunctionOrVariableDecl(start, storage, attrs)
	}
}

func (p *Parser) parseEnumDecl(start Range, storage StorageClass, attrs []Attribute) Declaration {
	p.advance() // 'enum'
	name := ""
	if p.check(TokIdentifier) {
		name = p.advance().Text
	}
	var underlying DataType
	if p.match(TokColon) {
		underlying = p.parseBaseType()
	}

	decl := &DeclEnum{
		DeclBase: DeclBase{ID: p.file.NextDeclID(), ScopeID: p.curScope.ID, Storage: storage, Attributes: attrs, Range: start},
		Name:     name,
		Underlying: underlying,
	}

	if p.match(TokLBrace) {
		for !p.check(TokRBrace) && !p.check(TokEOF) {
			vTok, ok := p.expect(TokIdentifier, "enumerator name")
			if !ok {
				break
			}
			variant := EnumVariant{Name: vTok.Text, Range: vTok.Range}
			if p.match(TokEqual) {
				variant.Discriminant = p.parseAssignmentExpr()
			}
			decl.Variants = append(decl.Variants, variant)
			if !p.match(TokComma) {
				break
			}
		}
		p.expect(TokRBrace, "'}'")
	} else {
		decl.IsPrototype = true
	}
	p.curScope.Declare(name, SymEnum, decl.ID, p.sink, start)
	p.match(TokSemicolon)
	return decl
}

func (p *Parser) parseRecordDecl(start Range, storage StorageClass, attrs []Attribute, tag NamedTagKind) Declaration {
	p.advance() // 'struct' / 'union'
	name := ""
	if p.check(TokIdentifier) {
		name = p.advance().Text
	}
	generics := p.parseGenericIntroduction()

	var body *RecordBody
	isPrototype := true
	if p.check(TokLBrace) {
		isPrototype = false
		body = p.parseRecordBody()
	}
	p.match(TokSemicolon)

	base := DeclBase{ID: p.file.NextDeclID(), ScopeID: p.curScope.ID, Storage: storage, Attributes: attrs, Range: start, IsPrototype: isPrototype}
	if tag == TagStruct {
		d := &DeclStruct{DeclBase: base, Name: name, Generics: generics, Body: body}
		p.curScope.Declare(name, SymRecord, d.ID, p.sink, start)
		return d
	}
	d := &DeclUnion{DeclBase: base, Name: name, Generics: generics, Body: body}
	p.curScope.Declare(name, SymRecord, d.ID, p.sink, start)
	return d
}

func (p *Parser) parseRecordBody() *RecordBody {
	p.advance() // '{'
	body := &RecordBody{}
	for !p.check(TokRBrace) && !p.check(TokEOF) {
		if (p.checkKeyword(KwStruct) || p.checkKeyword(KwUnion)) &&
			(p.peekN(1).Kind == TokLBrace || (p.peekN(1).Kind == TokIdentifier && p.peekN(2).Kind == TokLBrace)) {
			// nested struct/union definition; a tag reference such as
			// `struct Node *next;` takes the declarator path below
			nested := p.parseAnonymousOrNamedNested(body)
			if nested != nil {
				body.Fields = append(body.Fields, nested)
				p.match(TokSemicolon)
				continue
			}
		}
		base := p.parseBaseType()
		for {
			name, build := p.parseDeclarator()
			field := &Field{Name: name, Type: build(base), Parent: body}
			if p.match(TokColon) {
				field.BitWidth = p.parseAssignmentExpr()
			}
			body.Fields = append(body.Fields, field)
			if !p.match(TokComma) {
				break
			}
		}
		p.expect(TokSemicolon, "';'")
	}
	p.expect(TokRBrace, "'}'")
	return body
}

// parseAnonymousOrNamedNested handles a nested struct/union field. If
// it has no trailing declarator (no name) it is anonymous, and its
// fields are exposed through a back-edge to the enclosing RecordBody.
// Otherwise the one declarator that follows names an ordinary field of
// the nested type.
func (p *Parser) parseAnonymousOrNamedNested(parent *RecordBody) *Field {
	tagKind := TagStruct
	if p.checkKeyword(KwUnion) {
		tagKind = TagUnion
	}
	p.advance()
	name := ""
	if p.check(TokIdentifier) {
		name = p.advance().Text
	}
	nestedBody := p.parseRecordBody()
	if p.check(TokSemicolon) {
		return &Field{
			Name:      name,
			Anonymous: nestedBody,
			Parent:    parent,
			Type:      DTNamed{TagKind: tagKind, Tag: name, Body: nestedBody},
		}
	}
	fieldName, build := p.parseDeclarator()
	return &Field{Name: fieldName, Type: build(DTNamed{TagKind: tagKind, Tag: name, Body: nestedBody}), Parent: parent}
}

func (p *Parser) parseFunctionOrVariableDecl(start Range, storage StorageClass, attrs []Attribute) Declaration {
	base := p.parseBaseType()
	generics := p.parseGenericIntroduction()
	name, build := p.parseDeclarator()
	full := build(base)

	if fn, ok := full.(DTFunction); ok {
		decl := &DeclFunction{
			DeclBase: DeclBase{ID: p.file.NextDeclID(), ScopeID: p.curScope.ID, Storage: storage, Attributes: attrs, Range: start},
			Name:     name,
			Return:   fn.Return,
			Params:   fn.Params,
			Generics: generics,
		}
		exempt := false
		if prev, ok := p.curScope.LookupKind(name, SymFunction, p.file.Scopes); ok {
			for _, d := range p.file.Decls {
				if f, isFn := d.(*DeclFunction); isFn && f.ID == prev.DeclID && f.IsPrototype {
					exempt = true
				}
			}
		}
		if !exempt {
			p.curScope.Declare(name, SymFunction, decl.ID, p.sink, start)
		}
		if p.check(TokLBrace) {
			decl.Body = p.parseFunctionBody()
		} else {
			decl.IsPrototype = true
			p.match(TokSemicolon)
		}
		return decl
	}

	if storage&StorageTypedef != 0 {
		decl := &DeclTypedef{
			DeclBase: DeclBase{ID: p.file.NextDeclID(), ScopeID: p.curScope.ID, Storage: storage, Attributes: attrs, Range: start},
			Name:     name,
			Generics: generics,
			Aliased:  full,
		}
		p.curScope.Declare(name, SymAlias, decl.ID, p.sink, start)
		p.match(TokSemicolon)
		return decl
	}

	decl := &DeclVariable{
		DeclBase: DeclBase{ID: p.file.NextDeclID(), ScopeID: p.curScope.ID, Storage: storage, Attributes: attrs, Range: start},
		Name:     name,
		Type:     full,
	}
	if p.match(TokEqual) {
		decl.Initializer = p.parseInitializerOrAssignment()
	}
	p.curScope.Declare(name, SymVariable, decl.ID, p.sink, start)
	p.match(TokSemicolon)
	return decl
}

func (p *Parser) parseInitializerOrAssignment() Expr {
	if p.check(TokLBrace) {
		return p.parseInitializerExpr()
	}
	return p.parseAssignmentExpr()
}

// parseFunctionBody opens a new scope and parses `{ ... }`.
func (p *Parser) parseFunctionBody() *StmtBlock {
	parent := p.curScope
	scope := p.file.Scopes.NewScope(parent.ID)
	p.curScope = scope
	block := p.parseBlock()
	p.curScope = parent
	return block
}
