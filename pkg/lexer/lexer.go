// Package lexer implements the byte-dispatched tokenizer (C4): a 256-entry
// table of byte handlers maps the first unread byte of a token to the
// routine that scans it, per §4.4. This replaces the donor's per-rune
// switch-based cursor (see DESIGN.md) while keeping its pos/start cursor,
// accept, and whitespace-skipping vocabulary.
package lexer

import "github.com/birchlang/birch/pkg/ast"

// handler consumes one token starting at l.pos (already known to hold the
// byte that selected this handler) and returns it.
type handler func(l *Lexer) Token

// dispatch is the 256-entry byte-handler table, built once at package
// init time: the donor's own "one-time-initialized constant tables" design
// note (§9) applies equally to a byte-dispatch table.
var dispatch [256]handler

func init() {
	for b := 0; b < 256; b++ {
		dispatch[b] = (*Lexer).scanInvalid
	}
	for b := 'a'; b <= 'z'; b++ {
		dispatch[b] = (*Lexer).scanIdentifier
	}
	for b := 'A'; b <= 'Z'; b++ {
		dispatch[b] = (*Lexer).scanIdentifier
	}
	dispatch['_'] = (*Lexer).scanIdentifier
	dispatch['$'] = (*Lexer).scanIdentifier
	for b := '1'; b <= '9'; b++ {
		dispatch[b] = (*Lexer).scanNumber
	}
	dispatch['0'] = (*Lexer).scanNumber
	dispatch['.'] = (*Lexer).scanDotOrNumber
	dispatch['"'] = (*Lexer).scanString
	dispatch['\''] = (*Lexer).scanString
	dispatch['`'] = (*Lexer).scanTemplateHead

	dispatch[';'] = single(TokenSemicolon)
	dispatch[':'] = single(TokenColon)
	dispatch[','] = single(TokenComma)
	dispatch['('] = single(TokenParenOpen)
	dispatch[')'] = single(TokenParenClose)
	dispatch['['] = single(TokenBracketOpen)
	dispatch[']'] = single(TokenBracketClose)
	dispatch['{'] = single(TokenBraceOpen)
	dispatch['}'] = single(TokenBraceClose)
	dispatch['?'] = single(TokenQuestion)

	dispatch['+'] = (*Lexer).scanPlus
	dispatch['-'] = (*Lexer).scanMinus
	dispatch['*'] = (*Lexer).scanStar
	dispatch['/'] = (*Lexer).scanSlash
	dispatch['%'] = (*Lexer).scanPercent
	dispatch['!'] = (*Lexer).scanBang
	dispatch['~'] = operatorByte(ast.OpBitwiseNot)
	dispatch['<'] = (*Lexer).scanLess
	dispatch['>'] = (*Lexer).scanGreater
	dispatch['='] = (*Lexer).scanEquals
	dispatch['&'] = (*Lexer).scanAmp
	dispatch['|'] = (*Lexer).scanPipe
	dispatch['^'] = (*Lexer).scanCaret
}

// Lexer holds a read cursor and a token-start cursor over a borrowed byte
// slice of source (§4.4 Input). It mutates only its own cursor and the
// last-scanned-token bookkeeping; it touches no external state (§5).
type Lexer struct {
	src    string
	length int
	pos    int
	start  int
}

// NewLexer creates a lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, length: len(src)}
}

func (l *Lexer) eof() bool { return l.pos >= l.length }

func (l *Lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= l.length {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	return b
}

// accept consumes the current byte if it equals b, reporting whether it did.
func (l *Lexer) accept(b byte) bool {
	if l.peek() == b {
		l.pos++
		return true
	}
	return false
}

func (l *Lexer) tokenSlice() string { return l.src[l.start:l.pos] }

func (l *Lexer) newToken(t TokenType) Token {
	return Token{Type: t, Start: l.start, End: l.pos, Slice: l.tokenSlice()}
}

func (l *Lexer) errorToken(msg string) Token {
	tok := l.newToken(TokenError)
	tok.Slice = msg
	return tok
}

// Next scans and returns the next token. allowRegex tells the lexer
// whether a leading `/` should be read as the start of a regular
// expression literal rather than a division operator; the parser decides
// this from the preceding token (§4.5's division/regex disambiguation).
func (l *Lexer) Next(allowRegex bool) Token {
	newline := l.skipWhitespaceAndComments()
	l.start = l.pos

	if l.eof() {
		tok := l.newToken(TokenEOF)
		tok.NewlineBefore = newline
		return tok
	}

	b := l.peek()
	var tok Token
	if b == '/' && allowRegex {
		tok = l.scanRegex()
	} else {
		tok = dispatch[b](l)
	}
	tok.NewlineBefore = newline
	return tok
}

// skipWhitespaceAndComments advances past whitespace, line comments, and
// block comments, reporting whether a line terminator was crossed.
func (l *Lexer) skipWhitespaceAndComments() bool {
	sawNewline := false
	for !l.eof() {
		switch b := l.peek(); {
		case b == '\n':
			sawNewline = true
			l.pos++
		case b == ' ' || b == '\t' || b == '\r' || b == '\v' || b == '\f':
			l.pos++
		case b == '/' && l.peekAt(1) == '/':
			for !l.eof() && l.peek() != '\n' {
				l.pos++
			}
		case b == '/' && l.peekAt(1) == '*':
			l.pos += 2
			for !l.eof() {
				if l.peek() == '\n' {
					sawNewline = true
				}
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.pos += 2
					break
				}
				l.pos++
			}
		default:
			return sawNewline
		}
	}
	return sawNewline
}

func single(t TokenType) handler {
	return func(l *Lexer) Token {
		l.pos++
		return l.newToken(t)
	}
}

func operatorByte(op ast.OperatorKind) handler {
	return func(l *Lexer) Token {
		l.pos++
		tok := l.newToken(TokenOperator)
		tok.Operator = op
		return tok
	}
}

func (l *Lexer) opToken(op ast.OperatorKind) Token {
	tok := l.newToken(TokenOperator)
	tok.Operator = op
	return tok
}

func (l *Lexer) scanInvalid() Token {
	l.pos++
	return l.errorToken("invalid byte")
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func (l *Lexer) scanIdentifier() Token {
	for !l.eof() && isIdentPart(l.peek()) {
		l.pos++
	}
	word := l.tokenSlice()

	if kind, ok := declarationKeywords[word]; ok {
		tok := l.newToken(TokenDeclaration)
		tok.Declaration = kind
		return tok
	}
	if op, ok := wordOperators[word]; ok {
		return l.opToken(op)
	}
	if kw, ok := keywords[word]; ok {
		return l.newToken(kw)
	}
	if rk, ok := reservedWords[word]; ok {
		tok := l.newToken(TokenReserved)
		tok.Reserved = rk
		return tok
	}
	return l.newToken(TokenIdentifier)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (l *Lexer) scanDotOrNumber() Token {
	if isDigit(l.peekAt(1)) {
		return l.scanNumber()
	}
	if l.peekAt(1) == '.' && l.peekAt(2) == '.' {
		l.pos += 3
		return l.opToken(ast.OpSpread)
	}
	l.pos++
	return l.newToken(TokenDot)
}

// scanNumber handles decimal (with optional fraction/exponent), hex `0x…`,
// octal `0o…`, and binary `0b…` forms (§4.4).
func (l *Lexer) scanNumber() Token {
	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.pos += 2
		for !l.eof() && isHexDigit(l.peek()) {
			l.pos++
		}
		return l.radixNumberToken()
	}
	if l.peek() == '0' && (l.peekAt(1) == 'o' || l.peekAt(1) == 'O') {
		l.pos += 2
		for !l.eof() && l.peek() >= '0' && l.peek() <= '7' {
			l.pos++
		}
		return l.radixNumberToken()
	}
	if l.peek() == '0' && (l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		l.pos += 2
		for !l.eof() && (l.peek() == '0' || l.peek() == '1') {
			l.pos++
		}
		return l.radixNumberToken()
	}

	for !l.eof() && isDigit(l.peek()) {
		l.pos++
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) || (l.peek() == '.' && !isIdentStart(l.peekAt(1)) && l.peekAt(1) != '.') {
		l.pos++
		for !l.eof() && isDigit(l.peek()) {
			l.pos++
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		save := l.pos
		l.pos++
		if l.peek() == '+' || l.peek() == '-' {
			l.pos++
		}
		if isDigit(l.peek()) {
			for !l.eof() && isDigit(l.peek()) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}

	tok := l.newToken(TokenNumber)
	tok.NumberKind = NumberDecimal
	return tok
}

func (l *Lexer) radixNumberToken() Token {
	tok := l.newToken(TokenNumber)
	tok.NumberKind = NumberRadix
	return tok
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanString scans to the matching terminator, honoring backslash escapes
// without interpreting them (§4.4): the stored slice keeps escapes raw, for
// a later pass to unescape when building a runtime value.
func (l *Lexer) scanString() Token {
	quote := l.advance()
	for {
		if l.eof() {
			return l.errorToken("unterminated string")
		}
		b := l.advance()
		if b == '\\' {
			if l.eof() {
				return l.errorToken("unterminated string")
			}
			l.pos++
			continue
		}
		if b == quote {
			return l.newToken(TokenString)
		}
		if b == '\n' {
			return l.errorToken("unterminated string")
		}
	}
}

// scanRegex is engaged only when the parser has told Next that a leading
// `/` begins a regex, not a division (§4.5's disambiguation).
func (l *Lexer) scanRegex() Token {
	l.pos++ // opening '/'
	inClass := false
	for {
		if l.eof() {
			return l.errorToken("unterminated regular expression")
		}
		b := l.advance()
		switch b {
		case '\\':
			if l.eof() {
				return l.errorToken("unterminated regular expression")
			}
			l.pos++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				for !l.eof() && isIdentPart(l.peek()) {
					l.pos++
				}
				return l.newToken(TokenRegex)
			}
		case '\n':
			return l.errorToken("unterminated regular expression")
		}
	}
}

// scanTemplateHead scans the opening backtick through either the closing
// backtick (a standalone template, TokenTemplateClosed) or the first `${`
// (TokenTemplateOpen).
func (l *Lexer) scanTemplateHead() Token {
	l.pos++ // opening backtick
	return l.scanTemplatePart(TokenTemplateClosed, TokenTemplateOpen)
}

// NextTemplatePart re-lexes the quasi following a `}` that closed a
// template interpolation, as a template continuation rather than generic
// punctuation (§4.4's read_template_kind). The parser calls this instead of
// Next once it has consumed the closing `}` token of `${ … }` as ordinary
// punctuation; l.pos is already positioned just past that `}`.
func (l *Lexer) NextTemplatePart() Token {
	l.start = l.pos
	return l.scanTemplatePart(TokenTemplateClosed, TokenTemplateMiddle)
}

func (l *Lexer) scanTemplatePart(onClose, onInterp TokenType) Token {
	for {
		if l.eof() {
			return l.errorToken("unterminated template literal")
		}
		b := l.advance()
		switch b {
		case '\\':
			if l.eof() {
				return l.errorToken("unterminated template literal")
			}
			l.pos++
		case '`':
			return l.newToken(onClose)
		case '$':
			if l.peek() == '{' {
				l.pos++
				return l.newToken(onInterp)
			}
		}
	}
}

func (l *Lexer) scanPlus() Token {
	l.pos++
	if l.accept('+') {
		return l.opToken(ast.OpIncrement)
	}
	if l.accept('=') {
		return l.opToken(ast.OpAddAssign)
	}
	return l.opToken(ast.OpAddition)
}

func (l *Lexer) scanMinus() Token {
	l.pos++
	if l.accept('-') {
		return l.opToken(ast.OpDecrement)
	}
	if l.accept('=') {
		return l.opToken(ast.OpSubtractAssign)
	}
	return l.opToken(ast.OpSubtraction)
}

func (l *Lexer) scanStar() Token {
	l.pos++
	if l.accept('*') {
		if l.accept('=') {
			return l.opToken(ast.OpExponentAssign)
		}
		return l.opToken(ast.OpExponent)
	}
	if l.accept('=') {
		return l.opToken(ast.OpMultiplyAssign)
	}
	return l.opToken(ast.OpMultiplication)
}

func (l *Lexer) scanSlash() Token {
	l.pos++
	if l.accept('=') {
		return l.opToken(ast.OpDivideAssign)
	}
	return l.opToken(ast.OpDivision)
}

func (l *Lexer) scanPercent() Token {
	l.pos++
	if l.accept('=') {
		return l.opToken(ast.OpRemainderAssign)
	}
	return l.opToken(ast.OpRemainder)
}

func (l *Lexer) scanBang() Token {
	l.pos++
	if l.accept('=') {
		if l.accept('=') {
			return l.opToken(ast.OpStrictInequality)
		}
		return l.opToken(ast.OpLooseInequality)
	}
	return l.opToken(ast.OpLogicalNot)
}

func (l *Lexer) scanLess() Token {
	l.pos++
	if l.accept('<') {
		if l.accept('=') {
			return l.opToken(ast.OpBitShiftLeftAssign)
		}
		return l.opToken(ast.OpBitShiftLeft)
	}
	if l.accept('=') {
		return l.opToken(ast.OpLesserEquals)
	}
	return l.opToken(ast.OpLesser)
}

func (l *Lexer) scanGreater() Token {
	l.pos++
	if l.accept('>') {
		if l.accept('>') {
			if l.accept('=') {
				return l.opToken(ast.OpUnsignedBitShiftRightAssign)
			}
			return l.opToken(ast.OpUnsignedBitShiftRight)
		}
		if l.accept('=') {
			return l.opToken(ast.OpBitShiftRightAssign)
		}
		return l.opToken(ast.OpBitShiftRight)
	}
	if l.accept('=') {
		return l.opToken(ast.OpGreaterEquals)
	}
	return l.opToken(ast.OpGreater)
}

func (l *Lexer) scanEquals() Token {
	l.pos++
	if l.accept('=') {
		if l.accept('=') {
			return l.opToken(ast.OpStrictEquality)
		}
		return l.opToken(ast.OpLooseEquality)
	}
	if l.accept('>') {
		return l.opToken(ast.OpFatArrow)
	}
	return l.opToken(ast.OpAssign)
}

func (l *Lexer) scanAmp() Token {
	l.pos++
	if l.accept('&') {
		return l.opToken(ast.OpLogicalAnd)
	}
	if l.accept('=') {
		return l.opToken(ast.OpBitAndAssign)
	}
	return l.opToken(ast.OpBitwiseAnd)
}

func (l *Lexer) scanPipe() Token {
	l.pos++
	if l.accept('|') {
		return l.opToken(ast.OpLogicalOr)
	}
	if l.accept('=') {
		return l.opToken(ast.OpBitOrAssign)
	}
	return l.opToken(ast.OpBitwiseOr)
}

func (l *Lexer) scanCaret() Token {
	l.pos++
	if l.accept('=') {
		return l.opToken(ast.OpBitXorAssign)
	}
	return l.opToken(ast.OpBitwiseXor)
}

// ASI answers whether a missing semicolon is forgivable immediately before
// tok: true if a line terminator separated tok from the previous token, or
// tok is `}` or end-of-program (§4.4).
func ASI(tok Token) bool {
	return tok.NewlineBefore || tok.Type == TokenBraceClose || tok.Type == TokenEOF
}
