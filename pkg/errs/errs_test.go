package errs

import (
	"strings"
	"testing"
)

func TestParseErrorSingleLine(t *testing.T) {
	src := "let x = ;"
	e := New(CodeUnexpectedToken, "expected expression", src, 8, 9)
	msg := e.Error()
	if !strings.Contains(msg, "P0002") {
		t.Fatalf("Error() = %q, missing code", msg)
	}
	if !strings.Contains(msg, "1:9") {
		t.Fatalf("Error() = %q, wrong position", msg)
	}
}

func TestParseErrorFormatShowsCaret(t *testing.T) {
	src := "line one\nline two has a bad ;token\nline three\n"
	start := strings.Index(src, ";token")
	e := New(CodeUnexpectedToken, "unexpected ;", src, start, start+1)
	out := e.Format(false)
	if !strings.Contains(out, "line two has a bad ;token") {
		t.Fatalf("Format() missing offending line:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("Format() missing caret:\n%s", out)
	}
}

func TestParseErrorFormatMultilineContext(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "stmt;"
	}
	src := strings.Join(lines, "\n")
	start := 5 * len("stmt;")
	e := New(CodeUnexpectedToken, "", src, start, start+1)
	out := e.Format(false)
	if strings.Count(out, "stmt;") != 5 {
		t.Fatalf("Format() should show exactly 5 lines of context, got:\n%s", out)
	}
}

func TestListAggregatesErrors(t *testing.T) {
	l := NewList()
	if l.ErrorOrNil() != nil {
		t.Fatal("empty list should report no error")
	}
	l.Add(New(CodeUnexpectedToken, "a", "src", 0, 1))
	l.Add(New(CodeUnexpectedEndOfProgram, "b", "src", 1, 2))
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if err := l.ErrorOrNil(); err == nil {
		t.Fatal("non-empty list should report an error")
	}
	errs := l.Errors()
	if errs[0].Code != CodeUnexpectedToken || errs[1].Code != CodeUnexpectedEndOfProgram {
		t.Fatalf("Errors() order/codes wrong: %+v", errs)
	}
}
