package ast

// ExprKind tags the expression variants of §3. Error and Void are sentinels:
// Error substitutes for a production the parser could not complete (§4.5.8);
// Void stands for an elided array hole (`[, , 1]`).
type ExprKind uint8

const (
	ExprError ExprKind = iota
	ExprThis
	ExprIdentifier
	ExprLiteral
	ExprSequence
	ExprArray
	ExprMember
	ExprComputedMember
	ExprMetaProperty
	ExprCall
	ExprBinary
	ExprPrefix
	ExprPostfix
	ExprConditional
	ExprTemplate
	ExprTaggedTemplate
	ExprSpread
	ExprArrow
	ExprObject
	ExprFunction
	ExprClass
	ExprVoid
)

// TemplateElement is one literal fragment (quasi) of a template literal.
type TemplateElement struct {
	Loc
	Raw  string
	Tail bool
}

// Expression is a tagged-union node: one flat record whose fields cover
// every variant, discriminated by Kind. This mirrors the donor's own
// ASTNode (a single struct with a Kind tag and the union of possible
// fields) rather than a Go interface-per-variant, because the parser's hot
// path is "match on current token, produce a variant" and a dense struct
// keeps that branchless (§4.3 rationale).
type Expression struct {
	Loc
	Kind ExprKind

	// Identifier, Member.Property (non-computed name)
	Name string

	// Literal
	Literal Literal

	// Sequence, Array (Array may hold ExprVoid elements for holes)
	Elements List[*Expression]

	// Member, ComputedMember, Call (callee), Postfix/Prefix (operand),
	// Conditional.Test, Spread.Argument, TaggedTemplate (object reused as Tag)
	Object *Expression

	// ComputedMember.Property, Conditional branches, Binary operands
	Property   *Expression
	Left       *Expression
	Right      *Expression
	Consequent *Expression
	Alternate  *Expression

	// MetaProperty: `new.target` style two-word forms.
	Meta     string
	MetaName string

	// Call
	Arguments List[*Expression]
	IsNew     bool

	// Binary/Prefix/Postfix
	Operator      OperatorKind
	Parenthesized bool

	// Template / TaggedTemplate
	Quasis      []TemplateElement
	Expressions List[*Expression]

	// Arrow
	Params           List[*Pattern]
	ExpressionBody   *Expression
	BlockBody        *Block[*Statement]
	IsExpressionBody bool

	// Object literal
	Members List[*ObjectMember]

	// Function / Class expressions
	Function *Function
	Class    *Class
}

// BindingPower mirrors the donor's Expression::binding_power: the
// precedence the expression was constructed at, used by a code generator
// to decide whether a child needs parenthesization. Most leaf kinds return
// 100 ("never needs parens unless explicitly marked").
func (e *Expression) BindingPower() uint8 {
	switch e.Kind {
	case ExprMember, ExprComputedMember, ExprArrow:
		return 18
	case ExprCall:
		return 17
	case ExprPrefix:
		return 15
	case ExprBinary, ExprPostfix:
		return e.Operator.BindingPower()
	case ExprConditional:
		return 4
	default:
		return 100
	}
}

// NeedsParens reports whether this expression, nested inside a context
// requiring at least bp, must be parenthesized to preserve its grouping.
func (e *Expression) NeedsParens(bp uint8) bool {
	if e.Kind != ExprBinary {
		return false
	}
	return e.Parenthesized && bp >= e.Operator.BindingPower()
}

// IsAllowedAsBareStatement reports whether this expression may appear as a
// bare expression statement. Object, Function, and Class literals are
// excluded because at statement-start those token sequences are reparsed
// as a block, a function declaration, and a class declaration respectively
// — ported from the donor's Expression::is_allowed_as_bare_statement.
func (e *Expression) IsAllowedAsBareStatement() bool {
	switch e.Kind {
	case ExprObject, ExprFunction, ExprClass:
		return false
	default:
		return true
	}
}
