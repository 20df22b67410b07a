package parser

import (
	"testing"

	"github.com/hashicorp/go-multierror"

	"github.com/birchlang/birch/pkg/ast"
	"github.com/birchlang/birch/pkg/errs"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return mod
}

func onlyStatement(t *testing.T, mod *ast.Module) *ast.Statement {
	t.Helper()
	s, ok := mod.Body.OnlyElement()
	if !ok {
		t.Fatalf("expected exactly one statement, got %d", mod.Body.Len())
	}
	return s
}

func TestParseVariableDeclaration(t *testing.T) {
	mod := mustParse(t, "let x = 1;")
	s := onlyStatement(t, mod)
	if s.Kind != ast.StmtDeclaration || s.DeclarationKind != ast.DeclLet {
		t.Fatalf("got %+v", s)
	}
	d, ok := s.Declarators.OnlyElement()
	if !ok {
		t.Fatal("expected one declarator")
	}
	if d.ID.Kind != ast.PatternIdentifier || d.ID.Name != "x" {
		t.Fatalf("declarator id = %+v", d.ID)
	}
	if d.Init == nil || d.Init.Kind != ast.ExprLiteral || d.Init.Literal.Kind != ast.LitNumber {
		t.Fatalf("declarator init = %+v", d.Init)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	mod := mustParse(t, "1 + 2 * 3;")
	s := onlyStatement(t, mod)
	top := s.Expression
	if top.Kind != ast.ExprBinary || top.Operator != ast.OpAddition {
		t.Fatalf("top = %+v", top)
	}
	if top.Right.Kind != ast.ExprBinary || top.Right.Operator != ast.OpMultiplication {
		t.Fatalf("right = %+v", top.Right)
	}
}

func TestParseExponentRightAssociative(t *testing.T) {
	mod := mustParse(t, "2 ** 3 ** 2;")
	top := onlyStatement(t, mod).Expression
	if top.Operator != ast.OpExponent {
		t.Fatalf("top = %+v", top)
	}
	if top.Right.Kind != ast.ExprBinary || top.Right.Operator != ast.OpExponent {
		t.Fatalf("right should itself be an exponent: %+v", top.Right)
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	mod := mustParse(t, "function add(a, b) { return a + b; }")
	s := onlyStatement(t, mod)
	if s.Kind != ast.StmtFunction {
		t.Fatalf("got %+v", s)
	}
	fn := s.Function
	if fn.Name != "add" || fn.NameKind != ast.NameMandatory {
		t.Fatalf("fn = %+v", fn)
	}
	if fn.Params.Len() != 2 {
		t.Fatalf("params len = %d", fn.Params.Len())
	}
}

func TestParseArrowFunctionSingleParam(t *testing.T) {
	mod := mustParse(t, "const f = x => x + 1;")
	decl := onlyStatement(t, mod)
	d, _ := decl.Declarators.OnlyElement()
	arrow := d.Init
	if arrow.Kind != ast.ExprArrow || !arrow.IsExpressionBody {
		t.Fatalf("arrow = %+v", arrow)
	}
	param, ok := arrow.Params.OnlyElement()
	if !ok || param.Name != "x" {
		t.Fatalf("param = %+v", param)
	}
}

func TestParseArrowFunctionParenParams(t *testing.T) {
	mod := mustParse(t, "const f = (a, b) => { return a + b; };")
	decl := onlyStatement(t, mod)
	d, _ := decl.Declarators.OnlyElement()
	arrow := d.Init
	if arrow.Kind != ast.ExprArrow || arrow.IsExpressionBody {
		t.Fatalf("arrow = %+v", arrow)
	}
	if arrow.Params.Len() != 2 {
		t.Fatalf("params len = %d", arrow.Params.Len())
	}
}

func TestParseParenthesizedExpressionNotArrow(t *testing.T) {
	mod := mustParse(t, "(1 + 2) * 3;")
	top := onlyStatement(t, mod).Expression
	if top.Kind != ast.ExprBinary || top.Operator != ast.OpMultiplication {
		t.Fatalf("top = %+v", top)
	}
	if !top.Left.Parenthesized {
		t.Fatal("left operand should be marked parenthesized")
	}
}

func TestParseIfElse(t *testing.T) {
	mod := mustParse(t, "if (a) { b(); } else { c(); }")
	s := onlyStatement(t, mod)
	if s.Kind != ast.StmtIf || s.Consequent == nil || s.Alternate == nil {
		t.Fatalf("if = %+v", s)
	}
}

func TestParseForClassic(t *testing.T) {
	mod := mustParse(t, "for (let i = 0; i < 10; i = i + 1) { f(i); }")
	s := onlyStatement(t, mod)
	if s.Kind != ast.StmtFor || s.Init == nil || s.Test == nil || s.Update == nil {
		t.Fatalf("for = %+v", s)
	}
}

func TestParseForOf(t *testing.T) {
	mod := mustParse(t, "for (const item of items) { use(item); }")
	s := onlyStatement(t, mod)
	if s.Kind != ast.StmtForOf {
		t.Fatalf("for-of = %+v", s)
	}
}

func TestParseForIn(t *testing.T) {
	mod := mustParse(t, "for (let key in obj) { use(key); }")
	s := onlyStatement(t, mod)
	if s.Kind != ast.StmtForIn {
		t.Fatalf("for-in = %+v", s)
	}
}

func TestParseForInBareIdentifierTarget(t *testing.T) {
	mod := mustParse(t, "for (key in obj) { use(key); }")
	s := onlyStatement(t, mod)
	if s.Kind != ast.StmtForIn {
		t.Fatalf("for-in = %+v", s)
	}
	if s.Left.Kind != ast.StmtExpression || s.Left.Expression.Kind != ast.ExprIdentifier || s.Left.Expression.Name != "key" {
		t.Fatalf("for-in left = %+v", s.Left)
	}
	if s.Right.Kind != ast.ExprIdentifier || s.Right.Name != "obj" {
		t.Fatalf("for-in right = %+v", s.Right)
	}
}

func TestParseClassWithMethodsAndExtends(t *testing.T) {
	mod := mustParse(t, `
		class Animal {
			constructor(name) {
				this.name = name;
			}
			speak() {
				return this.name;
			}
		}
		class Dog extends Animal {
			static kind = "dog";
		}
	`)
	if mod.Body.Len() != 2 {
		t.Fatalf("expected 2 statements, got %d", mod.Body.Len())
	}
}

func TestParseObjectLiteralShorthandAndMethod(t *testing.T) {
	mod := mustParse(t, "const o = { x, y: 1, f() { return 1; }, get g() { return 2; } };")
	decl := onlyStatement(t, mod)
	d, _ := decl.Declarators.OnlyElement()
	obj := d.Init
	if obj.Kind != ast.ExprObject || obj.Members.Len() != 4 {
		t.Fatalf("object = %+v", obj)
	}
}

func TestParseArrayWithHoleAndSpread(t *testing.T) {
	mod := mustParse(t, "const a = [1, , ...rest];")
	decl := onlyStatement(t, mod)
	d, _ := decl.Declarators.OnlyElement()
	arr := d.Init
	if arr.Kind != ast.ExprArray || arr.Elements.Len() != 3 {
		t.Fatalf("array = %+v", arr)
	}
}

func TestParseTemplateLiteral(t *testing.T) {
	mod := mustParse(t, "const s = `hello ${name}!`;")
	decl := onlyStatement(t, mod)
	d, _ := decl.Declarators.OnlyElement()
	tpl := d.Init
	if tpl.Kind != ast.ExprTemplate {
		t.Fatalf("template = %+v", tpl)
	}
	if len(tpl.Quasis) != 2 || tpl.Expressions.Len() != 1 {
		t.Fatalf("quasis/expressions: %+v / %d", tpl.Quasis, tpl.Expressions.Len())
	}
}

func TestParseNewExpression(t *testing.T) {
	mod := mustParse(t, "const p = new Point(1, 2);")
	decl := onlyStatement(t, mod)
	d, _ := decl.Declarators.OnlyElement()
	call := d.Init
	if call.Kind != ast.ExprCall || !call.IsNew || call.Arguments.Len() != 2 {
		t.Fatalf("new-call = %+v", call)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	mod := mustParse(t, `
		try {
			risky();
		} catch (e) {
			handle(e);
		} finally {
			cleanup();
		}
	`)
	s := onlyStatement(t, mod)
	if s.Kind != ast.StmtTry || s.Handler == nil || s.Finalizer == nil {
		t.Fatalf("try = %+v", s)
	}
}

func TestParseSwitchStatement(t *testing.T) {
	mod := mustParse(t, `
		switch (x) {
			case 1:
				f();
				break;
			default:
				g();
		}
	`)
	s := onlyStatement(t, mod)
	if s.Kind != ast.StmtSwitch || s.Cases.Len() != 2 {
		t.Fatalf("switch = %+v", s)
	}
}

func TestParseLabeledStatement(t *testing.T) {
	mod := mustParse(t, "outer: while (true) { break outer; }")
	s := onlyStatement(t, mod)
	if s.Kind != ast.StmtLabeled || s.Label != "outer" {
		t.Fatalf("labeled = %+v", s)
	}
}

func TestParseStrictEqualityOperator(t *testing.T) {
	mod := mustParse(t, "a === b;")
	top := onlyStatement(t, mod).Expression
	if top.Operator != ast.OpStrictEquality {
		t.Fatalf("top = %+v", top)
	}
}

func TestParseSequenceExpression(t *testing.T) {
	mod := mustParse(t, "a, b, c;")
	top := onlyStatement(t, mod).Expression
	if top.Kind != ast.ExprSequence || top.Elements.Len() != 3 {
		t.Fatalf("sequence = %+v", top)
	}
}

func TestParseUnexpectedTokenProducesErrorAndSentinel(t *testing.T) {
	mod, err := Parse("let = ;")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if mod == nil {
		t.Fatal("expected a module with recovered statements even on error")
	}
}

func TestParseUnterminatedStringReportsUnterminatedLiteral(t *testing.T) {
	_, err := Parse(`"unterminated`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		t.Fatalf("expected *multierror.Error, got %T", err)
	}
	pe, ok := merr.Errors[0].(*errs.ParseError)
	if !ok {
		t.Fatalf("expected *errs.ParseError, got %T", merr.Errors[0])
	}
	if pe.Code != errs.CodeUnterminatedLiteral {
		t.Fatalf("code = %v, want %v", pe.Code, errs.CodeUnterminatedLiteral)
	}
}

func TestParseDestructuringDeclaration(t *testing.T) {
	mod := mustParse(t, "const { a, b: bee } = obj;")
	decl := onlyStatement(t, mod)
	d, _ := decl.Declarators.OnlyElement()
	if d.ID.Kind != ast.PatternObject || d.ID.Properties.Len() != 2 {
		t.Fatalf("pattern = %+v", d.ID)
	}
}
