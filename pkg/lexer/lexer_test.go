package lexer

import (
	"testing"

	"github.com/birchlang/birch/pkg/ast"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src)
	var toks []Token
	for {
		tok := l.Next(false)
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks
		}
	}
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "(a+b)*c>=1")
	types := []TokenType{
		TokenParenOpen, TokenIdentifier, TokenOperator, TokenIdentifier, TokenParenClose,
		TokenOperator, TokenIdentifier, TokenOperator, TokenNumber, TokenEOF,
	}
	if len(toks) != len(types) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(types))
	}
	for i, want := range types {
		if toks[i].Type != want {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, want)
		}
	}
	if toks[5].Operator != ast.OpMultiplication {
		t.Errorf("token 5 operator = %s, want *", toks[5].Operator)
	}
	if toks[7].Operator != ast.OpGreaterEquals {
		t.Errorf("token 7 operator = %s, want >=", toks[7].Operator)
	}
}

func TestLexerKeywordsAndDeclarations(t *testing.T) {
	toks := scanAll(t, "let x = function() {}")
	if toks[0].Type != TokenDeclaration || toks[0].Declaration != ast.DeclLet {
		t.Fatalf("expected let declaration token, got %+v", toks[0])
	}
	if toks[2].Type != TokenOperator || toks[2].Operator != ast.OpAssign {
		t.Fatalf("expected = operator, got %+v", toks[2])
	}
	if toks[3].Type != TokenFunction {
		t.Fatalf("expected function keyword, got %+v", toks[3])
	}
}

func TestLexerWordOperators(t *testing.T) {
	toks := scanAll(t, "typeof x instanceof y")
	if toks[0].Type != TokenOperator || toks[0].Operator != ast.OpTypeof {
		t.Fatalf("expected typeof operator, got %+v", toks[0])
	}
	if toks[2].Type != TokenOperator || toks[2].Operator != ast.OpInstanceof {
		t.Fatalf("expected instanceof operator, got %+v", toks[2])
	}
}

func TestLexerReservedWord(t *testing.T) {
	toks := scanAll(t, "interface")
	if toks[0].Type != TokenReserved || toks[0].Reserved != ReservedInterface {
		t.Fatalf("expected reserved interface, got %+v", toks[0])
	}
}

func TestLexerNumbers(t *testing.T) {
	cases := []struct {
		src  string
		kind NumberKind
	}{
		{"42", NumberDecimal},
		{"3.14", NumberDecimal},
		{"1e10", NumberDecimal},
		{"1.5e-3", NumberDecimal},
		{"0xFF", NumberRadix},
		{"0o17", NumberRadix},
		{"0b1010", NumberRadix},
	}
	for _, c := range cases {
		toks := scanAll(t, c.src)
		if toks[0].Type != TokenNumber {
			t.Fatalf("%q: got %s, want number", c.src, toks[0].Type)
		}
		if toks[0].Slice != c.src {
			t.Errorf("%q: slice = %q", c.src, toks[0].Slice)
		}
		if toks[0].NumberKind != c.kind {
			t.Errorf("%q: kind = %d, want %d", c.src, toks[0].NumberKind, c.kind)
		}
	}
}

func TestLexerStrings(t *testing.T) {
	toks := scanAll(t, `"hello \"world\""`)
	if toks[0].Type != TokenString {
		t.Fatalf("got %s, want string", toks[0].Type)
	}

	unterminated := scanAll(t, `"no closing quote`)
	if unterminated[0].Type != TokenError {
		t.Fatalf("expected error token for unterminated string")
	}
}

func TestLexerTemplateSimple(t *testing.T) {
	l := NewLexer("`hi`")
	tok := l.Next(false)
	if tok.Type != TokenTemplateClosed {
		t.Fatalf("got %s, want template-closed", tok.Type)
	}
}

func TestLexerTemplateInterpolation(t *testing.T) {
	l := NewLexer("`a${x}b`")
	head := l.Next(false)
	if head.Type != TokenTemplateOpen {
		t.Fatalf("head: got %s, want template-open", head.Type)
	}
	ident := l.Next(false)
	if ident.Type != TokenIdentifier || ident.Slice != "x" {
		t.Fatalf("interpolation: got %+v", ident)
	}
	closeBrace := l.Next(false)
	if closeBrace.Type != TokenBraceClose {
		t.Fatalf("expected `}` closing the interpolation, got %+v", closeBrace)
	}
	tail := l.NextTemplatePart()
	if tail.Type != TokenTemplateClosed {
		t.Fatalf("tail: got %s, want template-closed", tail.Type)
	}
}

func TestLexerRegexVsDivision(t *testing.T) {
	l := NewLexer("/abc/g")
	tok := l.Next(true)
	if tok.Type != TokenRegex {
		t.Fatalf("got %s, want regex", tok.Type)
	}

	l2 := NewLexer("/ x")
	tok2 := l2.Next(false)
	if tok2.Type != TokenOperator || tok2.Operator != ast.OpDivision {
		t.Fatalf("got %+v, want division operator", tok2)
	}
}

func TestLexerASI(t *testing.T) {
	l := NewLexer("a\nb")
	first := l.Next(false)
	if first.NewlineBefore {
		t.Fatal("first token should not report a leading newline")
	}
	second := l.Next(false)
	if !second.NewlineBefore {
		t.Fatal("second token should report the newline that preceded it")
	}
	if !ASI(second) {
		t.Fatal("ASI should forgive a missing semicolon before a newline-led token")
	}
}

func TestLexerComments(t *testing.T) {
	toks := scanAll(t, "a // comment\n/* block */ b")
	if toks[0].Slice != "a" || toks[1].Slice != "b" {
		t.Fatalf("comments not skipped: %+v", toks)
	}
	if !toks[1].NewlineBefore {
		t.Fatal("newline inside the skipped comments should still be tracked")
	}
}
