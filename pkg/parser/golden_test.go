package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/birchlang/birch/pkg/ast"
)

// exprShape is a location-erased, comparable projection of an expression
// tree, used to diff a parsed tree against a golden shape with go-cmp
// instead of asserting one field at a time.
type exprShape struct {
	Kind     string
	Name     string
	Literal  string
	Operator string
	Left     *exprShape
	Right    *exprShape
	Object   *exprShape
	Args     []exprShape
}

func shapeOf(e *ast.Expression) *exprShape {
	if e == nil {
		return nil
	}
	s := &exprShape{Kind: exprKindNameFor(e.Kind), Name: e.Name}
	switch e.Kind {
	case ast.ExprLiteral:
		s.Literal = e.Literal.Slice
	case ast.ExprBinary:
		s.Operator = operatorNameFor(e.Operator)
		s.Left = shapeOf(e.Left)
		s.Right = shapeOf(e.Right)
	case ast.ExprCall:
		s.Object = shapeOf(e.Object)
		for it := e.Arguments.Iter(); ; {
			arg, ok := it.Next()
			if !ok {
				break
			}
			s.Args = append(s.Args, *shapeOf(arg))
		}
	}
	return s
}

func exprKindNameFor(k ast.ExprKind) string {
	switch k {
	case ast.ExprIdentifier:
		return "Identifier"
	case ast.ExprLiteral:
		return "Literal"
	case ast.ExprBinary:
		return "Binary"
	case ast.ExprCall:
		return "Call"
	default:
		return "Other"
	}
}

func operatorNameFor(op ast.OperatorKind) string {
	switch op {
	case ast.OpAddition:
		return "Addition"
	default:
		return "Other"
	}
}

func TestBinaryExpressionShapeMatchesGolden(t *testing.T) {
	mod := mustParse(t, "foo + bar;")
	got := shapeOf(onlyStatement(t, mod).Expression)

	want := &exprShape{
		Kind:     "Binary",
		Operator: "Addition",
		Left:     &exprShape{Kind: "Identifier", Name: "foo"},
		Right:    &exprShape{Kind: "Identifier", Name: "bar"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expression shape mismatch (-want +got):\n%s", diff)
	}
}

func TestNumericLiteralFormsShapeMatchesGolden(t *testing.T) {
	mod := mustParse(t, "0xff + 0b1010;")
	got := shapeOf(onlyStatement(t, mod).Expression)

	want := &exprShape{
		Kind:     "Binary",
		Operator: "Addition",
		Left:     &exprShape{Kind: "Literal", Literal: "0xff"},
		Right:    &exprShape{Kind: "Literal", Literal: "0b1010"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expression shape mismatch (-want +got):\n%s", diff)
	}
}
