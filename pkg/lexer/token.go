package lexer

import "github.com/birchlang/birch/pkg/ast"

// TokenType tags the token set of §4.4: punctuation, operators, keywords,
// literal tokens, template sub-tokens, and sentinels.
type TokenType uint8

const (
	TokenEOF TokenType = iota
	TokenError

	TokenSemicolon
	TokenColon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenQuestion
	TokenParenOpen
	TokenParenClose
	TokenBracketOpen
	TokenBracketClose
	TokenBraceOpen
	TokenBraceClose

	// TokenOperator carries its specific ast.OperatorKind in Token.Operator.
	// Covers binary/unary/assignment operators and the word-form operators
	// (typeof, instanceof, in, void, delete, new), per OperatorKind.IsWord.
	TokenOperator

	// TokenDeclaration carries ast.DeclarationKind in Token.Declaration.
	TokenDeclaration

	TokenBreak
	TokenDo
	TokenCase
	TokenElse
	TokenCatch
	TokenExport
	TokenClass
	TokenExtends
	TokenReturn
	TokenWhile
	TokenFinally
	TokenSuper
	TokenWith
	TokenContinue
	TokenFor
	TokenSwitch
	TokenYield
	TokenDebugger
	TokenFunction
	TokenThis
	TokenDefault
	TokenIf
	TokenThrow
	TokenImport
	TokenTry
	TokenStatic
	TokenGet
	TokenSet

	TokenTrue
	TokenFalse
	TokenNull
	TokenUndefined
	TokenNumber // Token.Slice + Token.NumberKind
	TokenString
	TokenRegex

	TokenTemplateOpen   // quasi followed by `${`
	TokenTemplateMiddle // quasi between `}` and the next `${`
	TokenTemplateClosed // quasi followed by the closing backtick (tail)

	TokenReserved // future-reserved word; Token.Reserved holds which one.
	TokenIdentifier
)

// ReservedKind enumerates the future-reserved words (§12 supplement, ported
// from the donor's lexicon::ReservedKind): lexically distinguished from
// plain identifiers even though no production currently dispatches on them.
type ReservedKind uint8

const (
	ReservedEnum ReservedKind = iota
	ReservedImplements
	ReservedPackage
	ReservedProtected
	ReservedInterface
	ReservedPrivate
	ReservedPublic
)

var reservedWords = map[string]ReservedKind{
	"enum":       ReservedEnum,
	"implements": ReservedImplements,
	"package":    ReservedPackage,
	"protected":  ReservedProtected,
	"interface":  ReservedInterface,
	"private":    ReservedPrivate,
	"public":     ReservedPublic,
}

// NumberKind distinguishes which Literal variant a scanned number maps to.
type NumberKind uint8

const (
	NumberDecimal NumberKind = iota
	NumberRadix              // hex/octal/binary, preserved with its prefix
)

// Token is the lexer's sole output unit: a tag plus, for variable-payload
// tokens, the exact source slice (never copied) and its byte span.
type Token struct {
	Type  TokenType
	Start int
	End   int
	Slice string // borrowed from the source for variable-payload tokens

	Operator    ast.OperatorKind // TokenOperator
	Declaration ast.DeclarationKind
	Reserved    ReservedKind
	NumberKind  NumberKind

	// NewlineBefore is true if a line terminator occurred between the
	// previous token and this one, the input the ASI predicate needs (§4.4).
	NewlineBefore bool
}

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "error"
	case TokenSemicolon:
		return ";"
	case TokenColon:
		return ":"
	case TokenComma:
		return ","
	case TokenDot:
		return "."
	case TokenEllipsis:
		return "..."
	case TokenQuestion:
		return "?"
	case TokenParenOpen:
		return "("
	case TokenParenClose:
		return ")"
	case TokenBracketOpen:
		return "["
	case TokenBracketClose:
		return "]"
	case TokenBraceOpen:
		return "{"
	case TokenBraceClose:
		return "}"
	case TokenOperator:
		return "operator"
	case TokenDeclaration:
		return "declaration"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenRegex:
		return "regex"
	case TokenTemplateOpen:
		return "template-open"
	case TokenTemplateMiddle:
		return "template-middle"
	case TokenTemplateClosed:
		return "template-closed"
	case TokenReserved:
		return "reserved"
	case TokenIdentifier:
		return "identifier"
	default:
		return "keyword"
	}
}

// keywords maps every reserved-word statement/expression keyword (other
// than the word-form operators and var/let/const) to its token type.
var keywords = map[string]TokenType{
	"break":    TokenBreak,
	"do":       TokenDo,
	"case":     TokenCase,
	"else":     TokenElse,
	"catch":    TokenCatch,
	"export":   TokenExport,
	"class":    TokenClass,
	"extends":  TokenExtends,
	"return":   TokenReturn,
	"while":    TokenWhile,
	"finally":  TokenFinally,
	"super":    TokenSuper,
	"with":     TokenWith,
	"continue": TokenContinue,
	"for":      TokenFor,
	"switch":   TokenSwitch,
	"yield":    TokenYield,
	"debugger": TokenDebugger,
	"function": TokenFunction,
	"this":     TokenThis,
	"default":  TokenDefault,
	"if":       TokenIf,
	"throw":    TokenThrow,
	"import":   TokenImport,
	"try":      TokenTry,
	"static":   TokenStatic,
	"get":      TokenGet,
	"set":      TokenSet,
	"true":     TokenTrue,
	"false":    TokenFalse,
	"null":     TokenNull,
	"undefined": TokenUndefined,
}

var declarationKeywords = map[string]ast.DeclarationKind{
	"var":   ast.DeclVar,
	"let":   ast.DeclLet,
	"const": ast.DeclConst,
}

// wordOperators are keywords that lex into TokenOperator rather than a
// dedicated keyword token, matching OperatorKind.IsWord.
var wordOperators = map[string]ast.OperatorKind{
	"typeof":     ast.OpTypeof,
	"instanceof": ast.OpInstanceof,
	"in":         ast.OpIn,
	"void":       ast.OpVoid,
	"delete":     ast.OpDelete,
	"new":        ast.OpNew,
}
