package ast

// Loc is the byte-offset span every AST node carries: Start <= End, both
// within the source. No line/column is ever stored on a node (§3); those
// are computed on demand by pkg/errs from an offset when reporting to a
// human.
type Loc struct {
	Start int
	End   int
}

// NameKind parameterizes whether a Function or Class carries no name at
// all, an optional name, or a mandatory one. The donor encodes this as a
// generic trait parameter (Name); Go has no equivalent compile-time
// parameterization of struct fields, so NameKind is carried as a runtime
// tag instead, with constructor functions fixing it per call site so a
// statement-position function can't be built nameless (see DESIGN.md).
type NameKind uint8

const (
	// NameEmpty means the entity carries no identifier at all (class/object methods).
	NameEmpty NameKind = iota
	// NameOptional means an identifier may or may not be present (function/class expressions).
	NameOptional
	// NameMandatory means an identifier must be present (function/class declarations).
	NameMandatory
)

// DeclarationKind distinguishes var/let/const declarations.
type DeclarationKind uint8

const (
	DeclVar DeclarationKind = iota
	DeclLet
	DeclConst
)

func (k DeclarationKind) String() string {
	switch k {
	case DeclVar:
		return "var"
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	default:
		return "<unknown declaration kind>"
	}
}
