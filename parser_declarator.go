package ci

// declBuild takes the type that sits "inside" a declarator layer and
// returns the type with that layer applied. Composing these left to
// right as the grammar is walked reconstructs a C declarator's
// pre-base-type / declarator-core / post-decoration shape in one pass,
// without a separate unwind step.
type declBuild func(inner DataType) DataType

func identityBuild(t DataType) DataType { return t }

// parseBaseType parses the pre-const qualifiers and base-type keywords
// (or tag/typedef reference) that precede a declarator.
func (p *Parser) parseBaseType() DataType {
	preConst := false
	var quals Qualifier
	for {
		if p.checkKeyword(KwConst) {
			preConst = true
			p.advance()
			continue
		}
		if p.checkKeyword(KwRestrict) {
			quals |= QualRestrict
			p.advance()
			continue
		}
		if p.checkKeyword(KwVolatile) {
			quals |= QualVolatile
			p.advance()
			continue
		}
		break
	}

	base := p.parseUnqualifiedBaseType()

	if preConst || quals != QualNone {
		base = DTQualified{Inner: base, PreConst: preConst, Quals: quals}
	}

	// post-const, e.g. `int const`
	if p.checkKeyword(KwConst) {
		p.advance()
		if q, ok := base.(DTQualified); ok {
			q.PostConst = true
			base = q
		} else {
			base = DTQualified{Inner: base, PostConst: true}
		}
	}
	return base
}

func (p *Parser) parseUnqualifiedBaseType() DataType {
	if p.checkKeyword(KwAtomic) {
		p.advance()
		if p.match(TokLParen) {
			inner := p.parseBaseType()
			p.expect(TokRParen, "')'")
			return DTAtomic{Inner: inner}
		}
		return DTAtomic{Inner: p.parseUnqualifiedBaseType()}
	}

	if p.checkKeyword(KwStruct) || p.checkKeyword(KwUnion) || p.checkKeyword(KwEnum) {
		return p.parseTagReference()
	}

	if p.checkKeyword(KwTypeof) || p.checkKeyword(KwTypeofUnqual) || p.checkKeyword(KwTypeof2) {
		p.advance()
		p.expect(TokLParen, "'('")
		// The operand is parsed as a type name and that type is
		// returned as is. An expression operand is not parsed; a lone
		// identifier operand reads as a typedef reference of that name.
		inner := p.parseUnqualifiedBaseType()
		p.expect(TokRParen, "')'")
		return inner
	}

	if p.check(TokKeyword) {
		switch kw := p.cur().Keyword; kw {
		case KwVoid:
			p.advance()
			return DTPrimitive{Kind: PrimVoid}
		case KwBool, KwBoolC23:
			p.advance()
			return DTPrimitive{Kind: PrimBool}
		case KwChar:
			p.advance()
			return DTPrimitive{Kind: PrimChar}
		case KwNullptr:
			p.advance()
			return DTPrimitive{Kind: PrimNullptrT}
		default:
			return p.parseArithmeticType()
		}
	}

	if p.check(TokIdentifier) {
		name := p.cur().Text
		if p.genericsInScope[name] {
			p.advance()
			return DTGenericVar{Name: name}
		}
		p.advance()
		var args []DataType
		if p.check(TokLess) {
			args = p.parseGenericArgs()
		}
		return DTTypedefRef{Name: name, Args: args}
	}

	p.sink.Errorf(KindSyntactic, p.cur().Range, "expected a type, found %s", p.cur().Kind)
	return DTPrimitive{Kind: PrimInt}
}

// parseArithmeticType folds a run of signed/unsigned/short/long/int/
// float/double keywords into one PrimitiveKind, the way a recursive
// descent C parser must since C allows any order (`unsigned long
// long int`, `long unsigned int`, ...).
func (p *Parser) parseArithmeticType() DataType {
	var signed, unsigned bool
	longCount := 0
	var short, isFloat, isDouble bool
	complex_, imaginary := false, false

	for p.check(TokKeyword) {
		switch p.cur().Keyword {
		case KwSigned:
			signed = true
		case KwUnsigned:
			unsigned = true
		case KwShort:
			short = true
		case KwLong:
			longCount++
		case KwInt:
			// no-op, consumed as the default base
		case KwFloat:
			isFloat = true
		case KwDouble:
			isDouble = true
		case KwComplex:
			complex_ = true
		case KwImaginary:
			imaginary = true
		default:
			goto done
		}
		p.advance()
	}
done:
	var kind PrimitiveKind
	switch {
	case isFloat:
		kind = PrimFloat
	case isDouble && longCount > 0:
		kind = PrimLongDouble
	case isDouble:
		kind = PrimDouble
	case short && unsigned:
		kind = PrimUnsignedShort
	case short:
		kind = PrimShort
	case longCount >= 2 && unsigned:
		kind = PrimUnsignedLongLong
	case longCount >= 2:
		kind = PrimLongLong
	case longCount == 1 && unsigned:
		kind = PrimUnsignedLong
	case longCount == 1:
		kind = PrimLong
	case unsigned:
		kind = PrimUnsignedInt
	default:
		kind = PrimInt
	}
	_ = signed
	return DTPrimitive{Kind: kind, Complex: complex_, Imaginary: imaginary}
}

func (p *Parser) parseTagReference() DataType {
	tagKind := TagStruct
	switch p.cur().Keyword {
	case KwEnum:
		tagKind = TagEnum
	case KwUnion:
		tagKind = TagUnion
	}
	p.advance()
	name := ""
	if p.check(TokIdentifier) {
		name = p.advance().Text
	}
	// A `<...>` following a tag reference is always a use-site
	// instantiation with concrete type arguments (`struct Box<int>`);
	// a tag's generic *parameters* are only ever introduced at its
	// defining declaration (parseRecordDecl's parseGenericIntroduction),
	// which never goes through this reference path.
	var args []DataType
	if p.check(TokLess) {
		args = p.parseGenericArgs()
	}
	return DTNamed{TagKind: tagKind, Tag: name, Args: args}
}

func (p *Parser) parseGenericArgs() []DataType {
	p.advance() // '<'
	var args []DataType
	for !p.check(TokGreater) && !p.check(TokEOF) {
		args = append(args, p.parseBaseType())
		if !p.match(TokComma) {
			break
		}
	}
	p.match(TokGreater)
	return args
}

// parsePointerPrefix consumes a (possibly empty) run of `*` pointer
// levels, each with its own trailing qualifiers, and returns the
// composed wrap - innermost (closest to the base type) applied first.
func (p *Parser) parsePointerPrefix() declBuild {
	build := declBuild(identityBuild)
	for p.check(TokStar) {
		p.advance()
		var quals Qualifier
		for {
			if p.checkKeyword(KwRestrict) {
				quals |= QualRestrict
				p.advance()
				continue
			}
			if p.checkKeyword(KwVolatile) {
				quals |= QualVolatile
				p.advance()
				continue
			}
			if p.checkKeyword(KwConst) {
				// `const` on a pointer level is consumed but not
				// recorded: the pointer's Quals bitmask holds only
				// restrict and volatile.
				p.advance()
				continue
			}
			break
		}
		prevBuild := build
		q := quals
		build = func(inner DataType) DataType {
			return DTPointer{Inner: prevBuild(inner), Quals: q}
		}
	}
	return build
}

// parseDeclarator parses the identifier-bearing core of a C
// declarator and returns its name (empty for an abstract declarator)
// plus a build function mapping the base type to the fully-wrapped
// type.
func (p *Parser) parseDeclarator() (string, declBuild) {
	ptrBuild := p.parsePointerPrefix()
	name, coreBuild := p.parseDirectDeclarator()
	return name, func(base DataType) DataType {
		return coreBuild(ptrBuild(base))
	}
}

func (p *Parser) parseDirectDeclarator() (string, declBuild) {
	var name string
	var core declBuild = identityBuild

	switch {
	case p.check(TokLParen):
		p.advance()
		n, inner := p.parseDeclarator()
		p.expect(TokRParen, "')'")
		name = n
		core = inner
	case p.check(TokIdentifier):
		name = p.advance().Text
	}

	suffix := p.parseSuffixChain()
	return name, func(base DataType) DataType {
		return core(suffix(base))
	}
}

// parseSuffixChain parses a (possibly empty, possibly chained) run of
// `[...]` array suffixes and `(...)` function-parameter suffixes.
func (p *Parser) parseSuffixChain() declBuild {
	build := declBuild(identityBuild)
	for {
		switch {
		case p.check(TokLBracket):
			p.advance()
			isStatic := false
			if p.checkKeyword(KwStatic) {
				isStatic = true
				p.advance()
			}
			var size Expr
			sized := false
			if !p.check(TokRBracket) {
				size = p.parseAssignmentExpr()
				sized = true
			}
			p.expect(TokRBracket, "']'")
			prev := build
			build = func(base DataType) DataType {
				return prev(DTArray{Element: base, Sized: sized, Size: size, IsStatic: isStatic})
			}
		case p.check(TokLParen):
			p.advance()
			params := p.parseParamList()
			p.expect(TokRParen, "')'")
			prev := build
			build = func(base DataType) DataType {
				return prev(DTFunction{Params: params, Return: base})
			}
		default:
			return build
		}
	}
}

func (p *Parser) parseParamList() []Param {
	var params []Param
	if p.checkKeyword(KwVoid) && p.peekN(1).Kind == TokRParen {
		p.advance()
		return nil
	}
	for !p.check(TokRParen) && !p.check(TokEOF) {
		if p.check(TokDotDotDot) {
			p.advance()
			params = append(params, Param{Variadic: true})
			break
		}
		base := p.parseBaseType()
		name, build := p.parseDeclarator()
		params = append(params, Param{Name: name, Type: build(base)})
		if !p.match(TokComma) {
			break
		}
	}
	return params
}
