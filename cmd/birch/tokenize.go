package main

import (
	"fmt"
	"strings"

	"github.com/hashicorp/cli"

	"github.com/birchlang/birch/pkg/ast"
	"github.com/birchlang/birch/pkg/lexer"
)

// TokenizeCommand runs only C4, printing the token stream: one line per
// token with its tag, byte span, and (for variable-payload tokens) its
// source slice.
type TokenizeCommand struct {
	Ui cli.Ui
}

func (c *TokenizeCommand) Help() string {
	return strings.TrimSpace(`
Usage: birch tokenize <file>

  Lexes <file> and prints the token stream: tag, byte span, and source
  slice, one token per line.
`)
}

func (c *TokenizeCommand) Synopsis() string {
	return "Print the token stream for a source file"
}

func (c *TokenizeCommand) Run(args []string) int {
	_, source, err := readSource(args)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	l := lexer.NewLexer(source)
	allowRegex := true
	for {
		tok := l.Next(allowRegex)
		c.Ui.Output(formatToken(tok))
		if tok.Type == lexer.TokenEOF {
			return 0
		}
		if tok.Type == lexer.TokenError {
			return 1
		}
		allowRegex = regexAllowedAfter(tok)
	}
}

// regexAllowedAfter mirrors pkg/parser's own regexAllowed heuristic: a `/`
// immediately following tok should lex as a regex literal unless tok is the
// kind of token a division operand could trail (an identifier, a literal,
// a closing bracket, or a postfix ++/--).
func regexAllowedAfter(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.TokenIdentifier, lexer.TokenNumber, lexer.TokenString, lexer.TokenRegex,
		lexer.TokenParenClose, lexer.TokenBracketClose, lexer.TokenBraceClose,
		lexer.TokenThis, lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNull, lexer.TokenUndefined:
		return false
	case lexer.TokenOperator:
		return tok.Operator != ast.OpIncrement && tok.Operator != ast.OpDecrement
	default:
		return true
	}
}

func formatToken(tok lexer.Token) string {
	if tok.Slice == "" {
		return fmt.Sprintf("%-16s [%d,%d)", tok.Type, tok.Start, tok.End)
	}
	return fmt.Sprintf("%-16s [%d,%d) %q", tok.Type, tok.Start, tok.End, tok.Slice)
}
