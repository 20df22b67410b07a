package parser

import (
	"github.com/birchlang/birch/pkg/ast"
	"github.com/birchlang/birch/pkg/lexer"
)

// parseExpression is the Pratt loop entry point: parse a prefix expression,
// then repeatedly fold in infix/postfix continuations whose binding power
// is at least minBp (§4.5.1-4.5.3).
func (p *Parser) parseExpression(minBp uint8) *ast.Expression {
	p.enter()
	defer p.leave()

	left := p.parsePrefixExpression()
	return p.parseInfixLoop(left, minBp)
}

// parseAssignmentExpression parses at the precedence just above the comma
// operator, the level used for array elements, call arguments, object
// values, and conditional branches (§4.5.3).
func (p *Parser) parseAssignmentExpression() *ast.Expression {
	return p.parseExpression(assignmentBp)
}

const commaBp = 2

func (p *Parser) parseInfixLoop(left *ast.Expression, minBp uint8) *ast.Expression {
	for {
		switch p.current.Type {
		case lexer.TokenOperator:
			op := p.current.Operator
			if op == ast.OpIn && p.noIn {
				return left
			}
			bp := op.BindingPower()
			if bp < minBp {
				return left
			}
			switch {
			case op.IsAssignment():
				p.bump()
				right := p.parseExpression(bp)
				e := p.newExpression(ast.ExprBinary, ast.Loc{Start: left.Start, End: right.End})
				e.Operator, e.Left, e.Right = op, left, right
				left = e
			case op == ast.OpIncrement || op == ast.OpDecrement:
				end := p.current.End
				p.bump()
				e := p.newExpression(ast.ExprPostfix, ast.Loc{Start: left.Start, End: end})
				e.Operator, e.Object = op, left
				left = e
			case op.IsInfix():
				nextMin := bp + 1
				if op.IsRightAssociative() {
					nextMin = bp
				}
				p.bump()
				right := p.parseExpression(nextMin)
				e := p.newExpression(ast.ExprBinary, ast.Loc{Start: left.Start, End: right.End})
				e.Operator, e.Left, e.Right = op, left, right
				left = e
			default:
				return left
			}

		case lexer.TokenQuestion:
			if ast.OpConditional.BindingPower() < minBp {
				return left
			}
			p.bump()
			consequent := p.parseAssignmentExpression()
			p.expect(lexer.TokenColon)
			alternate := p.parseAssignmentExpression()
			e := p.newExpression(ast.ExprConditional, ast.Loc{Start: left.Start, End: alternate.End})
			e.Object, e.Consequent, e.Alternate = left, consequent, alternate
			left = e

		case lexer.TokenParenOpen:
			if 17 < minBp {
				return left
			}
			left = p.parseCallExpression(left, false)

		case lexer.TokenDot:
			if 18 < minBp {
				return left
			}
			p.bump()
			if p.current.Type != lexer.TokenIdentifier && p.current.Type != lexer.TokenReserved {
				left = p.errorExpression()
				continue
			}
			name := p.arena.Intern(p.current.Slice)
			end := p.current.End
			p.bump()
			e := p.newExpression(ast.ExprMember, ast.Loc{Start: left.Start, End: end})
			e.Object, e.Name = left, name
			left = e

		case lexer.TokenBracketOpen:
			if 18 < minBp {
				return left
			}
			p.bump()
			prop := p.parseExpression(0)
			end := p.current.End
			p.expect(lexer.TokenBracketClose)
			e := p.newExpression(ast.ExprComputedMember, ast.Loc{Start: left.Start, End: end})
			e.Object, e.Property = left, prop
			left = e

		case lexer.TokenTemplateOpen, lexer.TokenTemplateClosed:
			if 18 < minBp {
				return left
			}
			quasi := p.parseTemplateLiteral()
			e := p.newExpression(ast.ExprTaggedTemplate, ast.Loc{Start: left.Start, End: quasi.End})
			e.Object = left
			e.Quasis, e.Expressions = quasi.Quasis, quasi.Expressions
			left = e

		case lexer.TokenComma:
			if commaBp < minBp {
				return left
			}
			builder := ast.NewExpressionListBuilder(p.arena, left)
			start := left.Start
			last := left
			for p.current.Type == lexer.TokenComma {
				p.bump()
				next := p.parseExpression(assignmentBp)
				builder.Push(next)
				last = next
			}
			e := p.newExpression(ast.ExprSequence, ast.Loc{Start: start, End: last.End})
			e.Elements = builder.List()
			left = e

		default:
			return left
		}
	}
}

// parsePrefixExpression dispatches on the current token to produce one
// primary or prefix-unary expression (§4.5.1/§4.5.4-4.5.7).
func (p *Parser) parsePrefixExpression() *ast.Expression {
	switch p.current.Type {
	case lexer.TokenOperator:
		return p.parseOperatorPrefix()
	case lexer.TokenThis:
		loc := ast.Loc{Start: p.current.Start, End: p.current.End}
		p.bump()
		return p.newExpression(ast.ExprThis, loc)
	case lexer.TokenIdentifier:
		return p.parseIdentifierOrArrow()
	case lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNull, lexer.TokenUndefined:
		return p.parseKeywordLiteral()
	case lexer.TokenNumber:
		return p.parseNumberLiteral()
	case lexer.TokenString:
		return p.parseStringLiteral()
	case lexer.TokenRegex:
		return p.parseRegexLiteral()
	case lexer.TokenTemplateOpen, lexer.TokenTemplateClosed:
		return p.parseTemplateLiteral()
	case lexer.TokenParenOpen:
		return p.parseParenOrArrow()
	case lexer.TokenBracketOpen:
		return p.parseArrayExpression()
	case lexer.TokenBraceOpen:
		return p.parseObjectExpression()
	case lexer.TokenFunction:
		return p.parseFunctionExpression()
	case lexer.TokenClass:
		return p.parseClassExpression()
	default:
		return p.errorExpression()
	}
}

func (p *Parser) parseOperatorPrefix() *ast.Expression {
	op := p.current.Operator
	start := p.current.Start

	if op == ast.OpNew {
		return p.parseNewExpression()
	}
	if !op.IsPrefix() {
		return p.errorExpression()
	}
	p.bump()
	if op == ast.OpSpread {
		argument := p.parseAssignmentExpression()
		e := p.newExpression(ast.ExprSpread, ast.Loc{Start: start, End: argument.End})
		e.Object = argument
		return e
	}
	bp := op.BindingPower()
	if op == ast.OpAddition || op == ast.OpSubtraction {
		// Unary plus/minus bind like the other prefix operators, not at
		// their binary (additive) power.
		bp = ast.OpLogicalNot.BindingPower()
	}
	operand := p.parseExpression(bp)
	e := p.newExpression(ast.ExprPrefix, ast.Loc{Start: start, End: operand.End})
	e.Operator, e.Object = op, operand
	return e
}

func (p *Parser) parseNewExpression() *ast.Expression {
	start := p.current.Start
	p.bump()
	if p.current.Type == lexer.TokenDot {
		p.bump()
		if p.current.Slice != "target" {
			p.unexpectedToken()
		}
		end := p.current.End
		p.bump()
		e := p.newExpression(ast.ExprMetaProperty, ast.Loc{Start: start, End: end})
		e.Meta, e.MetaName = "new", "target"
		return e
	}
	// Parse the callee at member-access precedence (18), one above call's
	// (17): `new a.b.C(...)` must bind the member chain into the callee
	// without letting the callee's own parse consume the `(...)` that
	// belongs to `new`.
	callee := p.parseExpression(18)
	if p.current.Type == lexer.TokenParenOpen {
		return p.parseCallExpression(callee, true)
	}
	e := p.newExpression(ast.ExprCall, ast.Loc{Start: start, End: callee.End})
	e.Object, e.IsNew, e.Arguments = callee, true, ast.EmptyList[*ast.Expression]()
	return e
}

func (p *Parser) parseCallExpression(callee *ast.Expression, isNew bool) *ast.Expression {
	p.bump() // '('
	args := ast.EmptyList[*ast.Expression]()
	if p.current.Type != lexer.TokenParenClose {
		var builder *ast.ListBuilder[*ast.Expression]
		for {
			arg := p.parseAssignmentExpression()
			if builder == nil {
				builder = ast.NewExpressionListBuilder(p.arena, arg)
			} else {
				builder.Push(arg)
			}
			if p.current.Type != lexer.TokenComma {
				break
			}
			p.bump()
			if p.current.Type == lexer.TokenParenClose {
				break
			}
		}
		args = builder.List()
	}
	end := p.current.End
	p.expect(lexer.TokenParenClose)
	e := p.newExpression(ast.ExprCall, ast.Loc{Start: callee.Start, End: end})
	e.Object, e.Arguments, e.IsNew = callee, args, isNew
	return e
}

func (p *Parser) parseIdentifierOrArrow() *ast.Expression {
	name := p.arena.Intern(p.current.Slice)
	loc := ast.Loc{Start: p.current.Start, End: p.current.End}
	p.bump()
	if p.current.Type == lexer.TokenOperator && p.current.Operator == ast.OpFatArrow {
		param := p.arena.NewPattern()
		param.Loc, param.Kind, param.Name = loc, ast.PatternIdentifier, name
		params := ast.NewPatternListBuilder(p.arena, param).List()
		return p.parseArrowFunctionBody(loc.Start, params)
	}
	e := p.newExpression(ast.ExprIdentifier, loc)
	e.Name = name
	return e
}

func (p *Parser) parseArrowFunctionBody(start int, params ast.List[*ast.Pattern]) *ast.Expression {
	p.bump() // '=>'
	if p.current.Type == lexer.TokenBraceOpen {
		body := p.parseBlock()
		e := p.newExpression(ast.ExprArrow, ast.Loc{Start: start, End: body.End})
		e.Params, e.BlockBody = params, body
		return e
	}
	body := p.parseAssignmentExpression()
	e := p.newExpression(ast.ExprArrow, ast.Loc{Start: start, End: body.End})
	e.Params, e.ExpressionBody, e.IsExpressionBody = params, body, true
	return e
}

func (p *Parser) parseKeywordLiteral() *ast.Expression {
	var kind ast.LiteralKind
	switch p.current.Type {
	case lexer.TokenTrue:
		kind = ast.LitTrue
	case lexer.TokenFalse:
		kind = ast.LitFalse
	case lexer.TokenNull:
		kind = ast.LitNull
	default:
		kind = ast.LitUndefined
	}
	loc := ast.Loc{Start: p.current.Start, End: p.current.End}
	p.bump()
	e := p.newExpression(ast.ExprLiteral, loc)
	e.Literal = ast.Literal{Loc: loc, Kind: kind}
	return e
}

func (p *Parser) parseNumberLiteral() *ast.Expression {
	kind := ast.LitNumber
	if p.current.NumberKind == lexer.NumberRadix {
		kind = ast.LitBinary
	}
	loc := ast.Loc{Start: p.current.Start, End: p.current.End}
	slice := p.arena.Intern(p.current.Slice)
	p.bump()
	e := p.newExpression(ast.ExprLiteral, loc)
	e.Literal = ast.Literal{Loc: loc, Kind: kind, Slice: slice}
	return e
}

func (p *Parser) parseStringLiteral() *ast.Expression {
	loc := ast.Loc{Start: p.current.Start, End: p.current.End}
	raw := p.current.Slice
	inner := raw
	if len(raw) >= 2 {
		inner = raw[1 : len(raw)-1]
	}
	slice := p.arena.Intern(inner)
	p.bump()
	e := p.newExpression(ast.ExprLiteral, loc)
	e.Literal = ast.Literal{Loc: loc, Kind: ast.LitString, Slice: slice}
	return e
}

func (p *Parser) parseRegexLiteral() *ast.Expression {
	loc := ast.Loc{Start: p.current.Start, End: p.current.End}
	slice := p.arena.Intern(p.current.Slice)
	p.bump()
	e := p.newExpression(ast.ExprLiteral, loc)
	e.Literal = ast.Literal{Loc: loc, Kind: ast.LitRegExp, Slice: slice}
	return e
}

// parseTemplateLiteral scans a template literal to completion, alternating
// between the lexer's generic Next (for each interpolated expression) and
// NextTemplatePart (for quasis following a `}`) per §4.4's template
// continuation protocol.
func (p *Parser) parseTemplateLiteral() *ast.Expression {
	start := p.current.Start
	var quasis []ast.TemplateElement
	var builder *ast.ListBuilder[*ast.Expression]

	for {
		tail := p.current.Type == lexer.TokenTemplateClosed
		raw := p.current.Slice
		if len(quasis) == 0 && len(raw) > 0 && raw[0] == '`' {
			raw = raw[1:] // opening backtick
		}
		switch p.current.Type {
		case lexer.TokenTemplateOpen, lexer.TokenTemplateMiddle:
			raw = raw[:len(raw)-2] // trailing "${"
		case lexer.TokenTemplateClosed:
			raw = raw[:len(raw)-1] // closing backtick
		}
		quasis = append(quasis, ast.TemplateElement{
			Loc:  ast.Loc{Start: p.current.Start, End: p.current.End},
			Raw:  p.arena.Intern(raw),
			Tail: tail,
		})
		end := p.current.End
		if tail {
			p.bump()
			e := p.newExpression(ast.ExprTemplate, ast.Loc{Start: start, End: end})
			e.Quasis = quasis
			if builder != nil {
				e.Expressions = builder.List()
			} else {
				e.Expressions = ast.EmptyList[*ast.Expression]()
			}
			return e
		}

		p.bump() // past the opening/middle quasi token, onto the interpolated expression
		expr := p.parseExpression(0)
		if builder == nil {
			builder = ast.NewExpressionListBuilder(p.arena, expr)
		} else {
			builder.Push(expr)
		}

		if p.current.Type != lexer.TokenBraceClose {
			p.unexpectedToken()
		}
		// The lexer sits just past the `}`: re-lex from there as a quasi.
		p.prev = p.current
		p.current = p.lexer.NextTemplatePart()
	}
}

func (p *Parser) parseParenOrArrow() *ast.Expression {
	start := p.current.Start
	if params, ok := p.tryParseArrowParams(); ok {
		return p.parseArrowFunctionBody(start, params)
	}

	p.bump() // '('
	inner := p.parseExpression(0)
	p.expect(lexer.TokenParenClose)
	inner.Parenthesized = true
	return inner
}

// tryParseArrowParams speculatively parses `(params)` followed by `=>`.
// Parenthesized-expression/arrow-function disambiguation (§4.5.3) needs
// unbounded lookahead past the closing paren; since the arena is append-only
// and cheap to over-allocate, a backtracking attempt over a saved lexer
// position is simpler than a two-pass grammar. Nodes allocated by an
// abandoned attempt stay in the arena.
func (p *Parser) tryParseArrowParams() (ast.List[*ast.Pattern], bool) {
	savedLexer := *p.lexer
	savedCurrent, savedPrev := p.current, p.prev
	savedErrorsLen := p.errors.Len()

	restore := func() {
		*p.lexer = savedLexer
		p.current, p.prev = savedCurrent, savedPrev
		p.errors.Truncate(savedErrorsLen)
	}

	p.bump() // '('
	params := ast.EmptyList[*ast.Pattern]()
	var builder *ast.ListBuilder[*ast.Pattern]
	if p.current.Type != lexer.TokenParenClose {
		for {
			param, ok := p.tryParseParameter()
			if !ok {
				restore()
				return params, false
			}
			if builder == nil {
				builder = ast.NewPatternListBuilder(p.arena, param)
			} else {
				builder.Push(param)
			}
			if p.current.Type != lexer.TokenComma {
				break
			}
			p.bump()
			if p.current.Type == lexer.TokenParenClose {
				break
			}
		}
		params = builder.List()
	}
	if p.current.Type != lexer.TokenParenClose {
		restore()
		return params, false
	}
	p.bump() // ')'
	if p.current.Type != lexer.TokenOperator || p.current.Operator != ast.OpFatArrow {
		restore()
		return params, false
	}
	return params, true
}

// tryParseParameter parses one parameter pattern: identifier, rest element,
// array/object destructuring, or one of those with a default value.
func (p *Parser) tryParseParameter() (*ast.Pattern, bool) {
	var base *ast.Pattern
	switch p.current.Type {
	case lexer.TokenIdentifier:
		base = p.arena.NewPattern()
		base.Loc = ast.Loc{Start: p.current.Start, End: p.current.End}
		base.Kind = ast.PatternIdentifier
		base.Name = p.arena.Intern(p.current.Slice)
		p.bump()
	case lexer.TokenOperator:
		if p.current.Operator != ast.OpSpread {
			return nil, false
		}
		start := p.current.Start
		p.bump()
		arg, ok := p.tryParseParameter()
		if !ok {
			return nil, false
		}
		base = p.arena.NewPattern()
		base.Loc = ast.Loc{Start: start, End: arg.End}
		base.Kind = ast.PatternRestElement
		base.Argument = arg
		return base, true
	case lexer.TokenBracketOpen, lexer.TokenBraceOpen:
		expr := p.parsePrefixExpression()
		pat := ast.ToPattern(expr)
		if pat == nil {
			return nil, false
		}
		base = pat
	default:
		return nil, false
	}

	if p.current.Type == lexer.TokenOperator && p.current.Operator == ast.OpAssign {
		p.bump()
		def := p.parseAssignmentExpression()
		wrapped := p.arena.NewPattern()
		wrapped.Loc = ast.Loc{Start: base.Start, End: def.End}
		wrapped.Kind = ast.PatternAssignment
		wrapped.Left, wrapped.Right = base, def
		return wrapped, true
	}
	return base, true
}

func (p *Parser) parseArrayExpression() *ast.Expression {
	start := p.current.Start
	p.bump() // '['
	elements := ast.EmptyList[*ast.Expression]()
	var builder *ast.ListBuilder[*ast.Expression]

	for p.current.Type != lexer.TokenBracketClose && p.current.Type != lexer.TokenEOF {
		var el *ast.Expression
		if p.current.Type == lexer.TokenComma {
			el = p.newExpression(ast.ExprVoid, ast.Loc{Start: p.current.Start, End: p.current.Start})
		} else {
			el = p.parseAssignmentExpression()
		}
		if builder == nil {
			builder = ast.NewExpressionListBuilder(p.arena, el)
		} else {
			builder.Push(el)
		}
		if p.current.Type == lexer.TokenComma {
			p.bump()
			continue
		}
		break
	}
	if builder != nil {
		elements = builder.List()
	}
	end := p.current.End
	p.expect(lexer.TokenBracketClose)
	e := p.newExpression(ast.ExprArray, ast.Loc{Start: start, End: end})
	e.Elements = elements
	return e
}

func (p *Parser) parseObjectExpression() *ast.Expression {
	start := p.current.Start
	p.bump() // '{'
	members := ast.EmptyList[*ast.ObjectMember]()
	var builder *ast.ListBuilder[*ast.ObjectMember]

	for p.current.Type != lexer.TokenBraceClose && p.current.Type != lexer.TokenEOF {
		member := p.parseObjectMember()
		if builder == nil {
			builder = ast.NewObjectMemberListBuilder(p.arena, member)
		} else {
			builder.Push(member)
		}
		if p.current.Type == lexer.TokenComma {
			p.bump()
			continue
		}
		break
	}
	if builder != nil {
		members = builder.List()
	}
	end := p.current.End
	p.expect(lexer.TokenBraceClose)
	e := p.newExpression(ast.ExprObject, ast.Loc{Start: start, End: end})
	e.Members = members
	return e
}

func (p *Parser) parseObjectMember() *ast.ObjectMember {
	start := p.current.Start

	if p.current.Type == lexer.TokenOperator && p.current.Operator == ast.OpSpread {
		p.bump()
		arg := p.parseAssignmentExpression()
		m := p.arena.NewObjectMember()
		m.Loc = ast.Loc{Start: start, End: arg.End}
		m.Kind = ast.MemberSpread
		m.Value = arg
		return m
	}

	isGetter, isSetter := false, false
	var key ast.PropertyKey
	if p.current.Type == lexer.TokenGet || p.current.Type == lexer.TokenSet {
		wantGetter := p.current.Type == lexer.TokenGet
		savedLoc := ast.Loc{Start: p.current.Start, End: p.current.End}
		savedSlice := p.arena.Intern(p.current.Slice)
		p.bump()
		if p.peekStartsKeyAsPropertyName() {
			isGetter, isSetter = wantGetter, !wantGetter
			key = p.parsePropertyKey()
		} else {
			// `get`/`set` used plainly as a property name, not an accessor.
			key = ast.PropertyKey{Loc: savedLoc, Kind: ast.PropertyLiteral, Slice: savedSlice}
		}
	} else {
		key = p.parsePropertyKey()
	}

	if p.current.Type == lexer.TokenParenOpen || isGetter || isSetter {
		fn := p.parseMethodTail(key.Start)
		m := p.arena.NewObjectMember()
		m.Loc = ast.Loc{Start: start, End: fn.End}
		m.Kind = ast.MemberMethod
		m.Key, m.Method = key, fn
		return m
	}

	if p.current.Type == lexer.TokenColon {
		p.bump()
		value := p.parseAssignmentExpression()
		m := p.arena.NewObjectMember()
		m.Loc = ast.Loc{Start: start, End: value.End}
		m.Kind = ast.MemberValue
		m.Key, m.Value = key, value
		return m
	}

	m := p.arena.NewObjectMember()
	m.Loc = ast.Loc{Start: start, End: key.End}
	m.Kind = ast.MemberShorthand
	m.Name = key.Slice
	return m
}

// peekStartsKeyAsPropertyName is a one-token heuristic: `get`/`set`
// introduce an accessor only when followed by something that can start a
// property key, not `:` or `,` or `}` (which would mean `get`/`set` is
// itself the shorthand property name).
func (p *Parser) peekStartsKeyAsPropertyName() bool {
	switch p.current.Type {
	case lexer.TokenColon, lexer.TokenComma, lexer.TokenBraceClose, lexer.TokenParenOpen:
		return false
	default:
		return true
	}
}

func (p *Parser) parsePropertyKey() ast.PropertyKey {
	switch p.current.Type {
	case lexer.TokenBracketOpen:
		p.bump()
		expr := p.parseAssignmentExpression()
		loc := ast.Loc{Start: expr.Start, End: p.current.End}
		p.expect(lexer.TokenBracketClose)
		return ast.PropertyKey{Loc: loc, Kind: ast.PropertyComputed, Expression: expr}
	case lexer.TokenString:
		loc := ast.Loc{Start: p.current.Start, End: p.current.End}
		raw := p.current.Slice
		inner := raw
		if len(raw) >= 2 {
			inner = raw[1 : len(raw)-1]
		}
		slice := p.arena.Intern(inner)
		p.bump()
		return ast.PropertyKey{Loc: loc, Kind: ast.PropertyLiteral, Slice: slice}
	case lexer.TokenNumber:
		loc := ast.Loc{Start: p.current.Start, End: p.current.End}
		slice := p.arena.Intern(p.current.Slice)
		p.bump()
		return ast.PropertyKey{Loc: loc, Kind: ast.PropertyBinary, Slice: slice}
	default:
		loc := ast.Loc{Start: p.current.Start, End: p.current.End}
		slice := p.arena.Intern(p.current.Slice)
		p.bump()
		return ast.PropertyKey{Loc: loc, Kind: ast.PropertyLiteral, Slice: slice}
	}
}

// parseMethodTail parses `( params ) { body }` for a method/accessor whose
// key has already been consumed.
func (p *Parser) parseMethodTail(start int) *ast.Function {
	params := p.parseParameterList()
	body := p.parseBlock()
	return ast.NewMethodFunction(ast.Loc{Start: start, End: body.End}, false, params, body)
}

func (p *Parser) parseParameterList() ast.List[*ast.Pattern] {
	p.expect(lexer.TokenParenOpen)
	params := ast.EmptyList[*ast.Pattern]()
	var builder *ast.ListBuilder[*ast.Pattern]
	for p.current.Type != lexer.TokenParenClose && p.current.Type != lexer.TokenEOF {
		param, ok := p.tryParseParameter()
		if !ok {
			param = &ast.Pattern{Loc: ast.Loc{Start: p.current.Start, End: p.current.End}, Kind: ast.PatternVoid}
			p.unexpectedToken()
			p.bump()
		}
		if builder == nil {
			builder = ast.NewPatternListBuilder(p.arena, param)
		} else {
			builder.Push(param)
		}
		if p.current.Type == lexer.TokenComma {
			p.bump()
			continue
		}
		break
	}
	if builder != nil {
		params = builder.List()
	}
	p.expect(lexer.TokenParenClose)
	return params
}

func (p *Parser) parseFunctionExpression() *ast.Expression {
	start := p.current.Start
	p.bump() // 'function'
	generator := false
	if p.current.Type == lexer.TokenOperator && p.current.Operator == ast.OpMultiplication {
		generator = true
		p.bump()
	}
	hasName := p.current.Type == lexer.TokenIdentifier
	var name string
	if hasName {
		name = p.arena.Intern(p.current.Slice)
		p.bump()
	}
	params := p.parseParameterList()
	body := p.parseBlock()
	fn := ast.NewFunctionExpression(ast.Loc{Start: start, End: body.End}, name, hasName, generator, params, body)
	e := p.newExpression(ast.ExprFunction, fn.Loc)
	e.Function = fn
	return e
}

func (p *Parser) parseClassExpression() *ast.Expression {
	start := p.current.Start
	p.bump() // 'class'
	hasName := p.current.Type == lexer.TokenIdentifier
	var name string
	if hasName {
		name = p.arena.Intern(p.current.Slice)
		p.bump()
	}
	var extends *ast.Expression
	if p.current.Type == lexer.TokenExtends {
		p.bump()
		extends = p.parseExpression(ast.OpNew.BindingPower())
	}
	body := p.parseClassBody()
	cls := ast.NewClassExpression(ast.Loc{Start: start, End: body.End}, name, hasName, extends, body)
	e := p.newExpression(ast.ExprClass, cls.Loc)
	e.Class = cls
	return e
}

func (p *Parser) parseClassBody() *ast.Block[*ast.ClassMember] {
	start := p.current.Start
	p.expect(lexer.TokenBraceOpen)
	body := ast.EmptyList[*ast.ClassMember]()
	var builder *ast.ListBuilder[*ast.ClassMember]
	for p.current.Type != lexer.TokenBraceClose && p.current.Type != lexer.TokenEOF {
		if p.current.Type == lexer.TokenSemicolon {
			p.bump()
			continue
		}
		member := p.parseClassMember()
		if builder == nil {
			builder = ast.NewClassMemberListBuilder(p.arena, member)
		} else {
			builder.Push(member)
		}
	}
	end := p.current.End
	p.expect(lexer.TokenBraceClose)
	if builder != nil {
		body = builder.List()
	}
	return &ast.Block[*ast.ClassMember]{Loc: ast.Loc{Start: start, End: end}, Body: body}
}

func (p *Parser) parseClassMember() *ast.ClassMember {
	start := p.current.Start
	isStatic := false
	if p.current.Type == lexer.TokenStatic {
		isStatic = true
		p.bump()
	}

	isGetter, isSetter := false, false
	var key ast.PropertyKey
	if p.current.Type == lexer.TokenGet || p.current.Type == lexer.TokenSet {
		wantGetter := p.current.Type == lexer.TokenGet
		savedLoc := ast.Loc{Start: p.current.Start, End: p.current.End}
		savedSlice := p.arena.Intern(p.current.Slice)
		p.bump()
		if p.peekStartsKeyAsPropertyName() {
			isGetter, isSetter = wantGetter, !wantGetter
			key = p.parsePropertyKey()
		} else {
			key = ast.PropertyKey{Loc: savedLoc, Kind: ast.PropertyLiteral, Slice: savedSlice}
		}
	} else {
		key = p.parsePropertyKey()
	}

	if p.current.Type == lexer.TokenParenOpen {
		fn := p.parseMethodTail(key.Start)
		kind := ast.ClassMemberMethod
		switch {
		case isGetter:
			kind = ast.ClassMemberGetter
		case isSetter:
			kind = ast.ClassMemberSetter
		case !isStatic && key.Kind == ast.PropertyLiteral && key.Slice == "constructor":
			kind = ast.ClassMemberConstructor
		}
		return &ast.ClassMember{Loc: ast.Loc{Start: start, End: fn.End}, Kind: kind, IsStatic: isStatic, Key: key, Method: fn}
	}

	var value *ast.Expression
	if p.current.Type == lexer.TokenOperator && p.current.Operator == ast.OpAssign {
		p.bump()
		value = p.parseAssignmentExpression()
	}
	end := key.End
	if value != nil {
		end = value.End
	}
	p.consumeSemicolon()
	return &ast.ClassMember{Loc: ast.Loc{Start: start, End: end}, Kind: ast.ClassMemberLiteral, IsStatic: isStatic, Key: key, Value: value}
}
