package ast

// Function covers statement, expression, method, and arrow-adjacent
// function forms. NameKind fixes whether Name must, may, or never holds an
// identifier; construction happens through NewFunctionStatement /
// NewFunctionExpression / NewMethodFunction so a caller cannot build a
// nameless statement-position function (§4.3).
type Function struct {
	Loc
	NameKind  NameKind
	Name      string
	Generator bool
	Params    List[*Pattern]
	Body      *Block[*Statement]
}

// NewFunctionStatement builds a function with a mandatory name, the only
// form allowed in statement position.
func NewFunctionStatement(loc Loc, name string, generator bool, params List[*Pattern], body *Block[*Statement]) *Function {
	return &Function{Loc: loc, NameKind: NameMandatory, Name: name, Generator: generator, Params: params, Body: body}
}

// NewFunctionExpression builds a function whose name is optional, the form
// used in expression position (named or anonymous function expressions).
func NewFunctionExpression(loc Loc, name string, hasName bool, generator bool, params List[*Pattern], body *Block[*Statement]) *Function {
	f := &Function{Loc: loc, NameKind: NameOptional, Generator: generator, Params: params, Body: body}
	if hasName {
		f.Name = name
	}
	return f
}

// NewMethodFunction builds a function with no name slot at all, the form
// used for class and object-literal methods (the name lives on the
// enclosing member's key, not on the function itself).
func NewMethodFunction(loc Loc, generator bool, params List[*Pattern], body *Block[*Statement]) *Function {
	return &Function{Loc: loc, NameKind: NameEmpty, Generator: generator, Params: params, Body: body}
}

// ClassMemberKind tags a class body entry.
type ClassMemberKind uint8

const (
	ClassMemberError ClassMemberKind = iota
	ClassMemberConstructor
	ClassMemberMethod
	ClassMemberGetter
	ClassMemberSetter
	ClassMemberLiteral
)

// ClassMember is one entry of a class body: either a method-shaped member
// (constructor/method/getter/setter) or a literal field.
type ClassMember struct {
	Loc
	Kind     ClassMemberKind
	IsStatic bool
	Key      PropertyKey
	Method   *Function   // Constructor/Method/Getter/Setter
	Value    *Expression // Literal field initializer
}

// Class covers statement and expression forms, with the same NameKind
// discipline as Function: mandatory in statement position, optional in
// expression position.
type Class struct {
	Loc
	NameKind NameKind
	Name     string
	Extends  *Expression
	Body     *Block[*ClassMember]
}

// NewClassStatement builds a class with a mandatory name.
func NewClassStatement(loc Loc, name string, extends *Expression, body *Block[*ClassMember]) *Class {
	return &Class{Loc: loc, NameKind: NameMandatory, Name: name, Extends: extends, Body: body}
}

// NewClassExpression builds a class with an optional name.
func NewClassExpression(loc Loc, name string, hasName bool, extends *Expression, body *Block[*ClassMember]) *Class {
	c := &Class{Loc: loc, NameKind: NameOptional, Extends: extends, Body: body}
	if hasName {
		c.Name = name
	}
	return c
}
