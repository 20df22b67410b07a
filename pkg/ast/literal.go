package ast

// LiteralKind tags the eight literal forms in §3. Numeric forms keep their
// original lexical text (decimal, hex, octal, binary, scientific) rather
// than a parsed numeric value, so a serializer can reconstruct or reparse
// them exactly as written.
type LiteralKind uint8

const (
	LitUndefined LiteralKind = iota
	LitNull
	LitTrue
	LitFalse
	// LitNumber covers decimal and scientific forms: "3.14", "1e3".
	LitNumber
	// LitBinary covers radix-prefixed integer forms: "0xff", "0o17", "0b1010".
	// The donor's Binary/Number split is ambiguous between a numeric-literal
	// radix split and an object-property-key split; this
	// implementation resolves it as the radix split, since §8's scenario 6
	// groups hex/octal/binary together as forms needing lexical preservation.
	LitBinary
	LitString // Slice holds the raw, unescaped source text between quotes.
	LitRegExp // Slice holds the full /pattern/flags text.
)

// Literal is a leaf value. Slice is empty for Undefined/Null/True/False.
type Literal struct {
	Loc
	Kind  LiteralKind
	Slice string
}
