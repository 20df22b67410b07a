// Package parser implements the recursive-descent/Pratt parser (C5): it
// consumes tokens from pkg/lexer one at a time and builds an AST in an
// ast.Arena. It keeps a donor-style parser cursor shape (a struct
// holding the lexer plus a current/prev lookahead token pair and an
// accumulated error list) while replacing its JSONata grammar with this
// language's statement and expression grammar.
package parser

import (
	"fmt"
	"strings"

	"github.com/birchlang/birch/pkg/ast"
	"github.com/birchlang/birch/pkg/errs"
	"github.com/birchlang/birch/pkg/lexer"
)

// assignmentBp is the binding power at which an assignment expression
// parses; used wherever a single element (array/object entry, call
// argument, conditional branch) must stop before the comma operator.
const assignmentBp = 3

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth bounds recursive-descent nesting (expressions, statement
// blocks) to guard against stack exhaustion on pathological input, the Go
// analogue of the donor's allocation-failure abort (§5).
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.maxDepth = n }
}

// Parser holds one lookahead token over one source string and the arena
// nodes are allocated from. Independent Parsers share no state (§5), so
// concurrent Parse calls across goroutines are safe.
type Parser struct {
	arena  *ast.Arena
	source string
	lexer  *lexer.Lexer

	current lexer.Token
	prev    lexer.Token

	errors   *errs.List
	depth    int
	maxDepth int

	// noIn suppresses `in` as an infix-operator continuation, the
	// ECMAScript [~In] restriction used while parsing a for-header's
	// initial clause so that `in` can instead be recognized as the
	// for-in separator (stmt.go's parseForStatement).
	noIn bool
}

// New creates a parser positioned at the first token of source.
func New(source string, arena *ast.Arena, opts ...Option) *Parser {
	p := &Parser{
		arena:    arena,
		source:   source,
		lexer:    lexer.NewLexer(source),
		errors:   errs.NewList(),
		maxDepth: 1024,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.current = p.lexer.Next(true)
	return p
}

// Parse runs a full program parse and returns the resulting module along
// with the aggregate error list (nil if there were no errors). Per §4.5.8,
// a parse that encounters errors still returns every statement it could
// recover, with ExprError/StmtError sentinels standing in for the parts it
// could not, rather than aborting at the first problem.
func Parse(source string, opts ...Option) (mod *ast.Module, err error) {
	arena := ast.NewArena()
	p := New(source, arena, opts...)
	defer func() {
		if r := recover(); r != nil {
			if fatal, ok := r.(fatalParseError); ok {
				err = fatal.err
				return
			}
			panic(r)
		}
	}()
	return p.parseModule()
}

// ParseWithArena is Parse but lets the caller supply (and later inspect or
// reuse statistics on) the arena directly.
func ParseWithArena(source string, arena *ast.Arena, opts ...Option) (mod *ast.Module, err error) {
	p := New(source, arena, opts...)
	defer func() {
		if r := recover(); r != nil {
			if fatal, ok := r.(fatalParseError); ok {
				err = fatal.err
				return
			}
			panic(r)
		}
	}()
	return p.parseModule()
}

// fatalParseError unwinds the recursive-descent call stack on conditions
// the donor treats as an aborted allocation: here, exceeding maxDepth,
// since Go has no fallible-allocation signal to propagate instead (§5).
type fatalParseError struct{ err error }

func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		panic(fatalParseError{fmt.Errorf("maximum nesting depth %d exceeded", p.maxDepth)})
	}
}

func (p *Parser) leave() { p.depth-- }

func (p *Parser) parseModule() (*ast.Module, error) {
	var builder *ast.ListBuilder[*ast.Statement]
	for p.current.Type != lexer.TokenEOF {
		stmt := p.parseStatement()
		if builder == nil {
			builder = ast.NewStatementListBuilder(p.arena, stmt)
		} else {
			builder.Push(stmt)
		}
	}

	body := ast.EmptyList[*ast.Statement]()
	if builder != nil {
		body = builder.List()
	}

	mod := &ast.Module{Source: p.source, Body: body, Arena: p.arena}
	return mod, p.errors.ErrorOrNil()
}

// bump advances the lookahead by one token, deciding whether the lexer
// should read a leading `/` as regex or division from the token being
// left behind (§4.5's division/regex disambiguation).
func (p *Parser) bump() {
	allow := p.regexAllowed()
	p.prev = p.current
	p.current = p.lexer.Next(allow)
}

func (p *Parser) regexAllowed() bool {
	switch p.current.Type {
	case lexer.TokenIdentifier, lexer.TokenNumber, lexer.TokenString, lexer.TokenRegex,
		lexer.TokenParenClose, lexer.TokenBracketClose, lexer.TokenBraceClose,
		lexer.TokenThis, lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNull, lexer.TokenUndefined:
		return false
	case lexer.TokenOperator:
		return p.current.Operator != ast.OpIncrement && p.current.Operator != ast.OpDecrement
	default:
		return true
	}
}

// expect consumes the current token if it matches tt, reporting a syntax
// error and leaving the cursor in place otherwise.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.current.Type == tt {
		p.bump()
		return true
	}
	p.unexpectedToken()
	return false
}

func (p *Parser) unexpectedToken() {
	if p.current.Type == lexer.TokenEOF {
		p.errors.Add(errs.New(errs.CodeUnexpectedEndOfProgram, "unexpected end of program", p.source, p.current.Start, p.current.End))
		return
	}
	if p.current.Type == lexer.TokenError {
		code := errs.CodeUnexpectedToken
		if strings.HasPrefix(p.current.Slice, "unterminated") {
			code = errs.CodeUnterminatedLiteral
		}
		p.errors.Add(errs.New(code, p.current.Slice, p.source, p.current.Start, p.current.End))
		return
	}
	msg := fmt.Sprintf("unexpected token %s", p.current.Type)
	if p.current.Slice != "" {
		msg = fmt.Sprintf("unexpected token %s %q", p.current.Type, p.current.Slice)
	}
	p.errors.Add(errs.New(errs.CodeUnexpectedToken, msg, p.source, p.current.Start, p.current.End))
}

func (p *Parser) errorAt(code errs.Code, msg string, start, end int) {
	p.errors.Add(errs.New(code, msg, p.source, start, end))
}

// errorExpression builds an ExprError sentinel and advances past the
// offending token, so callers always get a non-nil node back (§4.5.8).
func (p *Parser) errorExpression() *ast.Expression {
	p.unexpectedToken()
	e := p.arena.NewExpression()
	e.Loc = ast.Loc{Start: p.current.Start, End: p.current.End}
	e.Kind = ast.ExprError
	if p.current.Type != lexer.TokenEOF {
		p.bump()
	}
	return e
}

func (p *Parser) errorStatement() *ast.Statement {
	p.unexpectedToken()
	s := p.arena.NewStatement()
	s.Loc = ast.Loc{Start: p.current.Start, End: p.current.End}
	s.Kind = ast.StmtError
	if p.current.Type != lexer.TokenEOF {
		p.bump()
	}
	return s
}

// consumeSemicolon enforces statement termination, forgiving a missing `;`
// per ASI (§4.4/§4.5): a line break, a following `}`, or end-of-program all
// excuse the omission.
func (p *Parser) consumeSemicolon() {
	if p.current.Type == lexer.TokenSemicolon {
		p.bump()
		return
	}
	if lexer.ASI(p.current) {
		return
	}
	p.unexpectedToken()
}

func (p *Parser) newExpression(kind ast.ExprKind, loc ast.Loc) *ast.Expression {
	e := p.arena.NewExpression()
	e.Kind = kind
	e.Loc = loc
	return e
}

func (p *Parser) newStatement(kind ast.StmtKind, loc ast.Loc) *ast.Statement {
	s := p.arena.NewStatement()
	s.Kind = kind
	s.Loc = loc
	return s
}
