// Package visitor implements the read-only AST traversal framework named as
// an external collaborator: a fixed left-to-right, outer-to-inner walk over
// a parsed module, driven entirely by the Visitor interface a caller
// supplies. It does not rewrite the tree; a transformer that needs to is a
// separate, out-of-scope concern.
package visitor

import "github.com/birchlang/birch/pkg/ast"

// Visitor receives every expression and statement node Walk descends
// through. Returning false from either method skips that node's children —
// the conventional early-exit shape Go's own ast.Inspect uses.
type Visitor interface {
	VisitExpression(e *ast.Expression) bool
	VisitStatement(s *ast.Statement) bool
}

// Walk traverses mod's body in source order, visiting every statement and
// expression reference exactly once.
func Walk(v Visitor, mod *ast.Module) {
	if mod == nil {
		return
	}
	walkStatementList(v, mod.Body)
}

func walkStatementList(v Visitor, list ast.List[*ast.Statement]) {
	for it := list.Iter(); ; {
		s, ok := it.Next()
		if !ok {
			return
		}
		walkStatement(v, s)
	}
}

func walkStatement(v Visitor, s *ast.Statement) {
	if s == nil || !v.VisitStatement(s) {
		return
	}
	switch s.Kind {
	case ast.StmtExpression:
		walkExpression(v, s.Expression)
	case ast.StmtDeclaration:
		for it := s.Declarators.Iter(); ; {
			d, ok := it.Next()
			if !ok {
				break
			}
			walkPattern(v, d.ID)
			walkExpression(v, d.Init)
		}
	case ast.StmtReturn, ast.StmtThrow:
		walkExpression(v, s.Value)
	case ast.StmtIf:
		walkExpression(v, s.Test)
		walkStatement(v, s.Consequent)
		walkStatement(v, s.Alternate)
	case ast.StmtWhile:
		walkExpression(v, s.Test)
		walkStatement(v, s.Body)
	case ast.StmtDo:
		walkStatement(v, s.Body)
		walkExpression(v, s.Test)
	case ast.StmtFor:
		walkStatement(v, s.Init)
		walkExpression(v, s.Test)
		walkExpression(v, s.Update)
		walkStatement(v, s.Body)
	case ast.StmtForIn, ast.StmtForOf:
		walkStatement(v, s.Left)
		walkExpression(v, s.Right)
		walkStatement(v, s.Body)
	case ast.StmtTry:
		walkBlock(v, s.Block)
		if s.Handler != nil {
			walkPattern(v, s.Handler.Param)
			walkBlock(v, s.Handler.Body)
		}
		walkBlock(v, s.Finalizer)
	case ast.StmtBlock:
		walkBlock(v, s.BlockBody)
	case ast.StmtLabeled:
		walkStatement(v, s.LabeledBody)
	case ast.StmtFunction:
		walkFunction(v, s.Function)
	case ast.StmtClass:
		walkClass(v, s.Class)
	case ast.StmtSwitch:
		walkExpression(v, s.Discriminant)
		for it := s.Cases.Iter(); ; {
			c, ok := it.Next()
			if !ok {
				break
			}
			walkExpression(v, c.Test)
			walkStatementList(v, c.Consequent)
		}
	}
}

func walkBlock(v Visitor, b *ast.Block[*ast.Statement]) {
	if b == nil {
		return
	}
	walkStatementList(v, b.Body)
}

func walkExpression(v Visitor, e *ast.Expression) {
	if e == nil || !v.VisitExpression(e) {
		return
	}
	switch e.Kind {
	case ast.ExprSequence, ast.ExprArray:
		for it := e.Elements.Iter(); ; {
			el, ok := it.Next()
			if !ok {
				break
			}
			walkExpression(v, el)
		}
	case ast.ExprMember:
		walkExpression(v, e.Object)
	case ast.ExprComputedMember:
		walkExpression(v, e.Object)
		walkExpression(v, e.Property)
	case ast.ExprCall:
		walkExpression(v, e.Object)
		for it := e.Arguments.Iter(); ; {
			arg, ok := it.Next()
			if !ok {
				break
			}
			walkExpression(v, arg)
		}
	case ast.ExprBinary:
		walkExpression(v, e.Left)
		walkExpression(v, e.Right)
	case ast.ExprPrefix, ast.ExprPostfix, ast.ExprSpread:
		walkExpression(v, e.Object)
	case ast.ExprConditional:
		walkExpression(v, e.Object) // Test
		walkExpression(v, e.Consequent)
		walkExpression(v, e.Alternate)
	case ast.ExprTemplate, ast.ExprTaggedTemplate:
		if e.Kind == ast.ExprTaggedTemplate {
			walkExpression(v, e.Object) // Tag
		}
		for it := e.Expressions.Iter(); ; {
			ex, ok := it.Next()
			if !ok {
				break
			}
			walkExpression(v, ex)
		}
	case ast.ExprArrow:
		for it := e.Params.Iter(); ; {
			p, ok := it.Next()
			if !ok {
				break
			}
			walkPattern(v, p)
		}
		if e.IsExpressionBody {
			walkExpression(v, e.ExpressionBody)
		} else {
			walkBlock(v, e.BlockBody)
		}
	case ast.ExprObject:
		for it := e.Members.Iter(); ; {
			m, ok := it.Next()
			if !ok {
				break
			}
			walkPropertyKey(v, m.Key)
			walkExpression(v, m.Value)
			if m.Method != nil {
				walkFunction(v, m.Method)
			}
		}
	case ast.ExprFunction:
		walkFunction(v, e.Function)
	case ast.ExprClass:
		walkClass(v, e.Class)
	}
}

func walkPropertyKey(v Visitor, key ast.PropertyKey) {
	if key.Kind == ast.PropertyComputed {
		walkExpression(v, key.Expression)
	}
}

func walkFunction(v Visitor, fn *ast.Function) {
	if fn == nil {
		return
	}
	for it := fn.Params.Iter(); ; {
		p, ok := it.Next()
		if !ok {
			break
		}
		walkPattern(v, p)
	}
	walkBlock(v, fn.Body)
}

func walkClass(v Visitor, cls *ast.Class) {
	if cls == nil {
		return
	}
	walkExpression(v, cls.Extends)
	if cls.Body == nil {
		return
	}
	for it := cls.Body.Body.Iter(); ; {
		m, ok := it.Next()
		if !ok {
			break
		}
		walkPropertyKey(v, m.Key)
		if m.Method != nil {
			walkFunction(v, m.Method)
		}
		walkExpression(v, m.Value)
	}
}

func walkPattern(v Visitor, p *ast.Pattern) {
	if p == nil {
		return
	}
	switch p.Kind {
	case ast.PatternObject:
		for it := p.Properties.Iter(); ; {
			prop, ok := it.Next()
			if !ok {
				break
			}
			walkPropertyKey(v, prop.Key)
			walkPattern(v, prop.Value)
		}
	case ast.PatternArray:
		for it := p.Elements.Iter(); ; {
			el, ok := it.Next()
			if !ok {
				break
			}
			walkPattern(v, el)
		}
	case ast.PatternRestElement:
		walkPattern(v, p.Argument)
	case ast.PatternAssignment:
		walkPattern(v, p.Left)
		walkExpression(v, p.Right)
	}
}
