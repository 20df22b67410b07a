package parser

import (
	"github.com/birchlang/birch/pkg/ast"
	"github.com/birchlang/birch/pkg/errs"
	"github.com/birchlang/birch/pkg/lexer"
)

// parseStatement dispatches on the current token, mirroring the donor's
// STMT_HANDLERS array (§4.5): each branch either recognizes a keyword that
// starts a statement form unambiguously, or falls through to parsing a bare
// expression statement.
func (p *Parser) parseStatement() *ast.Statement {
	p.enter()
	defer p.leave()

	switch p.current.Type {
	case lexer.TokenSemicolon:
		loc := ast.Loc{Start: p.current.Start, End: p.current.End}
		p.bump()
		return p.newStatement(ast.StmtEmpty, loc)
	case lexer.TokenBraceOpen:
		return p.parseBlockStatement()
	case lexer.TokenDeclaration:
		return p.parseDeclarationStatement()
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	case lexer.TokenBreak:
		return p.parseBreakOrContinue(ast.StmtBreak)
	case lexer.TokenContinue:
		return p.parseBreakOrContinue(ast.StmtContinue)
	case lexer.TokenThrow:
		return p.parseThrowStatement()
	case lexer.TokenIf:
		return p.parseIfStatement()
	case lexer.TokenWhile:
		return p.parseWhileStatement()
	case lexer.TokenDo:
		return p.parseDoWhileStatement()
	case lexer.TokenFor:
		return p.parseForStatement()
	case lexer.TokenFunction:
		return p.parseFunctionStatement()
	case lexer.TokenClass:
		return p.parseClassStatement()
	case lexer.TokenTry:
		return p.parseTryStatement()
	case lexer.TokenSwitch:
		return p.parseSwitchStatement()
	case lexer.TokenImport:
		return p.parseImportStatement()
	case lexer.TokenExport:
		p.bump()
		return p.parseStatement()
	case lexer.TokenDebugger:
		loc := ast.Loc{Start: p.current.Start, End: p.current.End}
		p.bump()
		p.consumeSemicolon()
		return p.newStatement(ast.StmtEmpty, loc)
	case lexer.TokenIdentifier:
		if label, ok := p.tryParseLabel(); ok {
			return label
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlock() *ast.Block[*ast.Statement] {
	start := p.current.Start
	p.expect(lexer.TokenBraceOpen)
	body := ast.EmptyList[*ast.Statement]()
	var builder *ast.ListBuilder[*ast.Statement]
	for p.current.Type != lexer.TokenBraceClose && p.current.Type != lexer.TokenEOF {
		stmt := p.parseStatement()
		if builder == nil {
			builder = ast.NewStatementListBuilder(p.arena, stmt)
		} else {
			builder.Push(stmt)
		}
	}
	end := p.current.End
	p.expect(lexer.TokenBraceClose)
	if builder != nil {
		body = builder.List()
	}
	return &ast.Block[*ast.Statement]{Loc: ast.Loc{Start: start, End: end}, Body: body}
}

func (p *Parser) parseBlockStatement() *ast.Statement {
	start := p.current.Start
	block := p.parseBlock()
	s := p.newStatement(ast.StmtBlock, ast.Loc{Start: start, End: block.End})
	s.BlockBody = block
	return s
}

func (p *Parser) parseDeclarationStatement() *ast.Statement {
	start := p.current.Start
	kind := p.current.Declaration
	p.bump()
	stmt := p.parseDeclaratorList(kind, start)
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseDeclaratorList(kind ast.DeclarationKind, start int) *ast.Statement {
	first := p.parseDeclarator()
	builder := ast.NewDeclaratorListBuilder(p.arena, first)
	last := first
	for p.current.Type == lexer.TokenComma {
		p.bump()
		d := p.parseDeclarator()
		builder.Push(d)
		last = d
	}
	s := p.newStatement(ast.StmtDeclaration, ast.Loc{Start: start, End: last.End})
	s.DeclarationKind = kind
	s.Declarators = builder.List()
	return s
}

func (p *Parser) parseDeclarator() *ast.Declarator {
	start := p.current.Start
	var id *ast.Pattern
	if p.current.Type == lexer.TokenBracketOpen || p.current.Type == lexer.TokenBraceOpen {
		expr := p.parsePrefixExpression()
		id = ast.ToPattern(expr)
		if id == nil {
			p.errorAt(errs.CodeInvalidAssignmentTarget, "invalid destructuring target", expr.Start, expr.End)
			id = &ast.Pattern{Loc: expr.Loc, Kind: ast.PatternVoid}
		}
	} else if p.current.Type == lexer.TokenIdentifier {
		id = p.arena.NewPattern()
		id.Loc = ast.Loc{Start: p.current.Start, End: p.current.End}
		id.Kind = ast.PatternIdentifier
		id.Name = p.arena.Intern(p.current.Slice)
		p.bump()
	} else {
		p.unexpectedToken()
		id = &ast.Pattern{Loc: ast.Loc{Start: p.current.Start, End: p.current.End}, Kind: ast.PatternVoid}
	}

	var init *ast.Expression
	end := id.End
	if p.current.Type == lexer.TokenOperator && p.current.Operator == ast.OpAssign {
		p.bump()
		init = p.parseAssignmentExpression()
		end = init.End
	}
	return &ast.Declarator{Loc: ast.Loc{Start: start, End: end}, ID: id, Init: init}
}

func (p *Parser) parseReturnStatement() *ast.Statement {
	start := p.current.Start
	end := p.current.End
	p.bump()
	var value *ast.Expression
	if p.current.Type != lexer.TokenSemicolon && !lexer.ASI(p.current) {
		value = p.parseExpression(0)
		end = value.End
	}
	p.consumeSemicolon()
	s := p.newStatement(ast.StmtReturn, ast.Loc{Start: start, End: end})
	s.Value = value
	return s
}

func (p *Parser) parseThrowStatement() *ast.Statement {
	start := p.current.Start
	p.bump()
	value := p.parseExpression(0)
	p.consumeSemicolon()
	s := p.newStatement(ast.StmtThrow, ast.Loc{Start: start, End: value.End})
	s.Value = value
	return s
}

func (p *Parser) parseBreakOrContinue(kind ast.StmtKind) *ast.Statement {
	start := p.current.Start
	end := p.current.End
	p.bump()
	var label string
	hasLabel := false
	if p.current.Type == lexer.TokenIdentifier && !p.current.NewlineBefore {
		label = p.arena.Intern(p.current.Slice)
		hasLabel = true
		end = p.current.End
		p.bump()
	}
	p.consumeSemicolon()
	s := p.newStatement(kind, ast.Loc{Start: start, End: end})
	s.Label, s.HasLabel = label, hasLabel
	return s
}

func (p *Parser) parseIfStatement() *ast.Statement {
	start := p.current.Start
	p.bump()
	p.expect(lexer.TokenParenOpen)
	test := p.parseExpression(0)
	p.expect(lexer.TokenParenClose)
	consequent := p.parseStatement()
	end := consequent.End
	var alternate *ast.Statement
	if p.current.Type == lexer.TokenElse {
		p.bump()
		alternate = p.parseStatement()
		end = alternate.End
	}
	s := p.newStatement(ast.StmtIf, ast.Loc{Start: start, End: end})
	s.Test, s.Consequent, s.Alternate = test, consequent, alternate
	return s
}

func (p *Parser) parseWhileStatement() *ast.Statement {
	start := p.current.Start
	p.bump()
	p.expect(lexer.TokenParenOpen)
	test := p.parseExpression(0)
	p.expect(lexer.TokenParenClose)
	body := p.parseStatement()
	s := p.newStatement(ast.StmtWhile, ast.Loc{Start: start, End: body.End})
	s.Test, s.Body = test, body
	return s
}

func (p *Parser) parseDoWhileStatement() *ast.Statement {
	start := p.current.Start
	p.bump()
	body := p.parseStatement()
	p.expect(lexer.TokenWhile)
	p.expect(lexer.TokenParenOpen)
	test := p.parseExpression(0)
	end := p.current.End
	p.expect(lexer.TokenParenClose)
	p.consumeSemicolon()
	s := p.newStatement(ast.StmtDo, ast.Loc{Start: start, End: end})
	s.Test, s.Body = test, body
	return s
}

// parseForStatement disambiguates classic `for (init; test; update)` from
// `for (binding in obj)` / `for (binding of iterable)` by parsing the init
// clause first and checking what follows it (§4.5.7).
func (p *Parser) parseForStatement() *ast.Statement {
	start := p.current.Start
	p.bump()
	p.expect(lexer.TokenParenOpen)

	var left *ast.Statement
	if p.current.Type == lexer.TokenSemicolon {
		left = nil
	} else if p.current.Type == lexer.TokenDeclaration {
		declStart := p.current.Start
		kind := p.current.Declaration
		p.bump()
		p.noIn = true
		declarator := p.parseDeclarator()
		p.noIn = false
		if p.current.Type == lexer.TokenIdentifier && (p.current.Slice == "of") {
			p.bump()
			right := p.parseAssignmentExpression()
			p.expect(lexer.TokenParenClose)
			body := p.parseStatement()
			leftStmt := p.newStatement(ast.StmtDeclaration, declarator.Loc)
			leftStmt.DeclarationKind = kind
			leftStmt.Declarators = ast.NewDeclaratorListBuilder(p.arena, declarator).List()
			s := p.newStatement(ast.StmtForOf, ast.Loc{Start: start, End: body.End})
			s.Left, s.Right, s.Body = leftStmt, right, body
			return s
		}
		if p.current.Type == lexer.TokenOperator && p.current.Operator == ast.OpIn {
			p.bump()
			right := p.parseExpression(0)
			p.expect(lexer.TokenParenClose)
			body := p.parseStatement()
			leftStmt := p.newStatement(ast.StmtDeclaration, declarator.Loc)
			leftStmt.DeclarationKind = kind
			leftStmt.Declarators = ast.NewDeclaratorListBuilder(p.arena, declarator).List()
			s := p.newStatement(ast.StmtForIn, ast.Loc{Start: start, End: body.End})
			s.Left, s.Right, s.Body = leftStmt, right, body
			return s
		}
		builder := ast.NewDeclaratorListBuilder(p.arena, declarator)
		last := declarator
		for p.current.Type == lexer.TokenComma {
			p.bump()
			p.noIn = true
			d := p.parseDeclarator()
			p.noIn = false
			builder.Push(d)
			last = d
		}
		leftStmt := p.newStatement(ast.StmtDeclaration, ast.Loc{Start: declStart, End: last.End})
		leftStmt.DeclarationKind = kind
		leftStmt.Declarators = builder.List()
		left = leftStmt
	} else {
		p.noIn = true
		expr := p.parseExpression(0)
		p.noIn = false
		if p.current.Type == lexer.TokenIdentifier && p.current.Slice == "of" {
			p.bump()
			right := p.parseAssignmentExpression()
			p.expect(lexer.TokenParenClose)
			body := p.parseStatement()
			leftStmt := p.newStatement(ast.StmtExpression, expr.Loc)
			leftStmt.Expression = expr
			s := p.newStatement(ast.StmtForOf, ast.Loc{Start: start, End: body.End})
			s.Left, s.Right, s.Body = leftStmt, right, body
			return s
		}
		if p.current.Type == lexer.TokenOperator && p.current.Operator == ast.OpIn {
			p.bump()
			right := p.parseExpression(0)
			p.expect(lexer.TokenParenClose)
			body := p.parseStatement()
			leftStmt := p.newStatement(ast.StmtExpression, expr.Loc)
			leftStmt.Expression = expr
			s := p.newStatement(ast.StmtForIn, ast.Loc{Start: start, End: body.End})
			s.Left, s.Right, s.Body = leftStmt, right, body
			return s
		}
		leftStmt := p.newStatement(ast.StmtExpression, expr.Loc)
		leftStmt.Expression = expr
		left = leftStmt
	}

	p.expect(lexer.TokenSemicolon)
	var test *ast.Expression
	if p.current.Type != lexer.TokenSemicolon {
		test = p.parseExpression(0)
	}
	p.expect(lexer.TokenSemicolon)
	var update *ast.Expression
	if p.current.Type != lexer.TokenParenClose {
		update = p.parseExpression(0)
	}
	p.expect(lexer.TokenParenClose)
	body := p.parseStatement()

	s := p.newStatement(ast.StmtFor, ast.Loc{Start: start, End: body.End})
	s.Init, s.Test, s.Update, s.Body = left, test, update, body
	return s
}

func (p *Parser) parseFunctionStatement() *ast.Statement {
	start := p.current.Start
	p.bump()
	generator := false
	if p.current.Type == lexer.TokenOperator && p.current.Operator == ast.OpMultiplication {
		generator = true
		p.bump()
	}
	name := ""
	if p.current.Type == lexer.TokenIdentifier {
		name = p.arena.Intern(p.current.Slice)
		p.bump()
	} else {
		p.unexpectedToken()
	}
	params := p.parseParameterList()
	body := p.parseBlock()
	fn := ast.NewFunctionStatement(ast.Loc{Start: start, End: body.End}, name, generator, params, body)
	s := p.newStatement(ast.StmtFunction, fn.Loc)
	s.Function = fn
	return s
}

func (p *Parser) parseClassStatement() *ast.Statement {
	start := p.current.Start
	p.bump()
	name := ""
	if p.current.Type == lexer.TokenIdentifier {
		name = p.arena.Intern(p.current.Slice)
		p.bump()
	} else {
		p.unexpectedToken()
	}
	var extends *ast.Expression
	if p.current.Type == lexer.TokenExtends {
		p.bump()
		extends = p.parseExpression(ast.OpNew.BindingPower())
	}
	body := p.parseClassBody()
	cls := ast.NewClassStatement(ast.Loc{Start: start, End: body.End}, name, extends, body)
	s := p.newStatement(ast.StmtClass, cls.Loc)
	s.Class = cls
	return s
}

func (p *Parser) parseTryStatement() *ast.Statement {
	start := p.current.Start
	p.bump()
	block := p.parseBlock()
	end := block.End

	var handler *ast.CatchClause
	if p.current.Type == lexer.TokenCatch {
		hStart := p.current.Start
		p.bump()
		var param *ast.Pattern
		if p.current.Type == lexer.TokenParenOpen {
			p.bump()
			pat, ok := p.tryParseParameter()
			if ok {
				param = pat
			} else {
				p.unexpectedToken()
			}
			p.expect(lexer.TokenParenClose)
		}
		body := p.parseBlock()
		handler = &ast.CatchClause{Loc: ast.Loc{Start: hStart, End: body.End}, Param: param, Body: body}
		end = body.End
	}

	var finalizer *ast.Block[*ast.Statement]
	if p.current.Type == lexer.TokenFinally {
		p.bump()
		finalizer = p.parseBlock()
		end = finalizer.End
	}

	if handler == nil && finalizer == nil {
		p.errorAt(errs.CodeUnexpectedToken, "try statement requires a catch or finally clause", start, end)
	}

	s := p.newStatement(ast.StmtTry, ast.Loc{Start: start, End: end})
	s.Block, s.Handler, s.Finalizer = block, handler, finalizer
	return s
}

func (p *Parser) parseSwitchStatement() *ast.Statement {
	start := p.current.Start
	p.bump()
	p.expect(lexer.TokenParenOpen)
	discriminant := p.parseExpression(0)
	p.expect(lexer.TokenParenClose)
	p.expect(lexer.TokenBraceOpen)

	cases := ast.EmptyList[*ast.SwitchCase]()
	var builder *ast.ListBuilder[*ast.SwitchCase]
	for p.current.Type != lexer.TokenBraceClose && p.current.Type != lexer.TokenEOF {
		c := p.parseSwitchCase()
		if builder == nil {
			builder = ast.NewSwitchCaseListBuilder(p.arena, c)
		} else {
			builder.Push(c)
		}
	}
	end := p.current.End
	p.expect(lexer.TokenBraceClose)
	if builder != nil {
		cases = builder.List()
	}

	s := p.newStatement(ast.StmtSwitch, ast.Loc{Start: start, End: end})
	s.Discriminant, s.Cases = discriminant, cases
	return s
}

func (p *Parser) parseSwitchCase() *ast.SwitchCase {
	start := p.current.Start
	var test *ast.Expression
	if p.current.Type == lexer.TokenCase {
		p.bump()
		test = p.parseExpression(0)
	} else {
		p.expect(lexer.TokenDefault)
	}
	p.expect(lexer.TokenColon)

	consequent := ast.EmptyList[*ast.Statement]()
	var builder *ast.ListBuilder[*ast.Statement]
	end := p.current.Start
	for p.current.Type != lexer.TokenCase && p.current.Type != lexer.TokenDefault &&
		p.current.Type != lexer.TokenBraceClose && p.current.Type != lexer.TokenEOF {
		stmt := p.parseStatement()
		end = stmt.End
		if builder == nil {
			builder = ast.NewStatementListBuilder(p.arena, stmt)
		} else {
			builder.Push(stmt)
		}
	}
	if builder != nil {
		consequent = builder.List()
	}
	return &ast.SwitchCase{Loc: ast.Loc{Start: start, End: end}, Test: test, Consequent: consequent}
}

func (p *Parser) parseImportStatement() *ast.Statement {
	start := p.current.Start
	p.bump()
	for p.current.Type != lexer.TokenSemicolon && p.current.Type != lexer.TokenEOF && !lexer.ASI(p.current) {
		p.bump()
	}
	end := p.current.End
	p.consumeSemicolon()
	return p.newStatement(ast.StmtImport, ast.Loc{Start: start, End: end})
}

// tryParseLabel recognizes `identifier:` as a labeled statement without
// consuming an ordinary identifier-led expression statement on failure.
func (p *Parser) tryParseLabel() (*ast.Statement, bool) {
	savedLexer := *p.lexer
	savedCurrent, savedPrev := p.current, p.prev

	start := p.current.Start
	label := p.current.Slice
	p.bump()
	if p.current.Type != lexer.TokenColon {
		*p.lexer = savedLexer
		p.current, p.prev = savedCurrent, savedPrev
		return nil, false
	}
	p.bump()
	body := p.parseStatement()
	s := p.newStatement(ast.StmtLabeled, ast.Loc{Start: start, End: body.End})
	s.Label, s.HasLabel, s.LabeledBody = p.arena.Intern(label), true, body
	return s, true
}

func (p *Parser) parseExpressionStatement() *ast.Statement {
	expr := p.parseExpression(0)
	if !expr.IsAllowedAsBareStatement() {
		p.errorAt(errs.CodeUnexpectedToken, "this expression form cannot appear as a bare statement", expr.Start, expr.End)
	}
	p.consumeSemicolon()
	s := p.newStatement(ast.StmtExpression, expr.Loc)
	s.Expression = expr
	return s
}
