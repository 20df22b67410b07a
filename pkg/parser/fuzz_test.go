package parser

import "testing"

// FuzzParse feeds arbitrary byte strings through Parse and requires only
// that it returns without panicking (a recovered fatalParseError still
// surfaces as a normal error return, never a propagated panic) and that
// every statement it does produce has a well-formed span within source.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		";",
		";;;",
		"const pi = 3.14;",
		"foo + bar;",
		"(a, b) => a + b",
		"class Foo extends Bar { static m(x) { return x; } }",
		"`hello ${name}!`",
		"0xff + 0b1010 + 0o17 + 1e3",
		"[, , 1];",
		"return\nfoo",
		"return foo",
		"let = ;",
		"\"unterminated",
		"`unterminated ${",
		"`unterminated",
		"/unterminated",
		"a / b / c;",
		"function",
		"class",
		"{",
		"}",
		"((((((((((1))))))))))",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, source string) {
		mod, err := Parse(source, WithMaxDepth(256))
		if mod == nil {
			t.Fatalf("Parse(%q) returned a nil module", source)
		}
		for it := mod.Body.Iter(); ; {
			s, ok := it.Next()
			if !ok {
				break
			}
			if s.Start < 0 || s.End < s.Start || s.End > len(source) {
				t.Fatalf("statement span out of range: %+v for source %q", s.Loc, source)
			}
		}
		_ = err
	})
}
