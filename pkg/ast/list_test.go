package ast

import "testing"

func TestListBuilderPushAndIterate(t *testing.T) {
	a := NewArena()
	b := NewExpressionListBuilder(a, &Expression{Kind: ExprIdentifier, Name: "a"})
	b.Push(&Expression{Kind: ExprIdentifier, Name: "b"})
	b.Push(&Expression{Kind: ExprIdentifier, Name: "c"})
	list := b.List()

	if list.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", list.Len())
	}

	var names []string
	for it := list.Iter(); ; {
		e, ok := it.Next()
		if !ok {
			break
		}
		names = append(names, e.Name)
	}
	want := []string{"a", "b", "c"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("names[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestEmptyListIsEmpty(t *testing.T) {
	l := EmptyList[*Statement]()
	if !l.IsEmpty() {
		t.Fatal("EmptyList should be empty")
	}
	if l.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", l.Len())
	}
}

func TestOnlyElement(t *testing.T) {
	a := NewArena()
	b := NewStatementListBuilder(a, &Statement{Kind: StmtEmpty})
	single := b.List()
	if _, ok := single.OnlyElement(); !ok {
		t.Fatal("single-element list should report OnlyElement")
	}

	b2 := NewStatementListBuilder(a, &Statement{Kind: StmtEmpty})
	b2.Push(&Statement{Kind: StmtEmpty})
	multi := b2.List()
	if _, ok := multi.OnlyElement(); ok {
		t.Fatal("two-element list should not report OnlyElement")
	}
}

func TestListCopySharesRoot(t *testing.T) {
	a := NewArena()
	b := NewStatementListBuilder(a, &Statement{Kind: StmtEmpty})
	original := b.List()
	copyOfList := original
	if copyOfList.Len() != original.Len() {
		t.Fatal("copying a List should preserve its contents")
	}
	if copyOfList.root != original.root {
		t.Fatal("copying a List should share its root cell")
	}
}
