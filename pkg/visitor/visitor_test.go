package visitor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birchlang/birch/pkg/ast"
	"github.com/birchlang/birch/pkg/parser"
	"github.com/birchlang/birch/pkg/visitor"
)

type countingVisitor struct {
	expressions int
	statements  int
	identifiers []string
}

func (c *countingVisitor) VisitExpression(e *ast.Expression) bool {
	c.expressions++
	if e.Kind == ast.ExprIdentifier {
		c.identifiers = append(c.identifiers, e.Name)
	}
	return true
}

func (c *countingVisitor) VisitStatement(s *ast.Statement) bool {
	c.statements++
	return true
}

func TestWalkVisitsEveryStatementAndExpression(t *testing.T) {
	mod, err := parser.Parse(`
		function add(a, b) {
			return a + b;
		}
		const result = add(1, 2);
	`)
	require.NoError(t, err)

	v := &countingVisitor{}
	visitor.Walk(v, mod)

	require.Equal(t, 3, v.statements)
	require.NotZero(t, v.expressions)
	require.Subset(t, v.identifiers, []string{"a", "b", "add"})
}

type stoppingVisitor struct {
	entered map[string]bool
}

func (s *stoppingVisitor) VisitExpression(e *ast.Expression) bool {
	if e.Kind == ast.ExprFunction {
		s.entered["function"] = true
		return false // don't descend into the function body
	}
	if e.Kind == ast.ExprIdentifier {
		s.entered[e.Name] = true
	}
	return true
}

func (s *stoppingVisitor) VisitStatement(st *ast.Statement) bool { return true }

func TestWalkHonorsFalseReturnToSkipChildren(t *testing.T) {
	mod, err := parser.Parse(`const f = function() { return secretIdentifier; };`)
	require.NoError(t, err)

	v := &stoppingVisitor{entered: map[string]bool{}}
	visitor.Walk(v, mod)

	require.True(t, v.entered["function"], "expected the function expression to be visited")
	require.False(t, v.entered["secretIdentifier"], "expected the function body to be skipped")
}

func TestWalkNilModuleIsNoOp(t *testing.T) {
	v := &countingVisitor{}
	visitor.Walk(v, nil)
	require.Zero(t, v.statements)
	require.Zero(t, v.expressions)
}
