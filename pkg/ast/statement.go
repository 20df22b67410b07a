package ast

// StmtKind tags the statement variants of §3.
type StmtKind uint8

const (
	StmtError StmtKind = iota
	StmtEmpty
	StmtExpression
	StmtDeclaration
	StmtReturn
	StmtBreak
	StmtContinue
	StmtThrow
	StmtIf
	StmtWhile
	StmtDo
	StmtFor
	StmtForIn
	StmtForOf
	StmtTry
	StmtBlock
	StmtLabeled
	StmtFunction
	StmtClass
	StmtSwitch
	StmtImport
)

// Declarator is one `pattern = init?` entry of a var/let/const declaration.
type Declarator struct {
	Loc
	ID   *Pattern
	Init *Expression // nil if uninitialized
}

// CatchClause is the `catch (param) body` part of a try statement.
type CatchClause struct {
	Loc
	Param *Pattern // nil for a parameterless `catch {}`
	Body  *Block[*Statement]
}

// SwitchCase is one `case test:` or `default:` arm.
type SwitchCase struct {
	Loc
	Test       *Expression // nil for default
	Consequent List[*Statement]
}

// Statement is a flat tagged-union node, following the same
// dense-tag-plus-fields representation as Expression (§4.3).
type Statement struct {
	Loc
	Kind StmtKind

	// StmtExpression
	Expression *Expression

	// StmtDeclaration
	DeclarationKind DeclarationKind
	Declarators     List[*Declarator]

	// StmtReturn, StmtThrow
	Value *Expression

	// StmtBreak, StmtContinue, StmtLabeled
	Label string
	HasLabel bool

	// StmtIf, StmtWhile, StmtDo, StmtFor, StmtForIn, StmtForOf
	Test   *Expression
	Update *Expression
	Init   *Statement // nil, or a StmtDeclaration / StmtExpression for classic `for`
	Left   *Statement // ForIn/ForOf binding (declaration or expression)
	Right  *Expression
	Body   *Statement

	// StmtIf
	Consequent *Statement
	Alternate  *Statement

	// StmtTry
	Block     *Block[*Statement]
	Handler   *CatchClause
	Finalizer *Block[*Statement]

	// StmtLabeled
	LabeledBody *Statement

	// StmtBlock
	BlockBody *Block[*Statement]

	// StmtFunction, StmtClass
	Function *Function
	Class    *Class

	// StmtSwitch
	Discriminant *Expression
	Cases        List[*SwitchCase]

	// StmtImport (thin: no module-resolution semantics, §1 Non-goals)
	ImportSource string
}

// IsBlock reports whether this statement is a `{ ... }` block, ported from
// the donor's Statement::is_block (used by the parser to decide whether an
// `if` consequent/`for` body etc. needs no extra wrapping).
func (s *Statement) IsBlock() bool { return s.Kind == StmtBlock }
