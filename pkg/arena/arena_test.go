package arena

import "testing"

func TestPoolAllocStable(t *testing.T) {
	p := NewPool[int](4)
	ptrs := make([]*int, 0, 10)
	for i := 0; i < 10; i++ {
		v := p.Alloc()
		*v = i
		ptrs = append(ptrs, v)
	}
	if p.Chunks() != 3 {
		t.Fatalf("expected 3 chunks for chunkLen=4 and 10 allocs, got %d", p.Chunks())
	}
	for i, ptr := range ptrs {
		if *ptr != i {
			t.Fatalf("pointer %d was clobbered by a later chunk growth: got %d", i, *ptr)
		}
	}
}

func TestPoolLen(t *testing.T) {
	p := NewPool[string](2)
	for i := 0; i < 5; i++ {
		p.Alloc()
	}
	if p.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", p.Len())
	}
}

func TestBytesInternCopies(t *testing.T) {
	b := NewBytes(WithBlockSize(16))
	src := []byte("hello")
	s := b.Intern(string(src))
	src[0] = 'X'
	if s != "hello" {
		t.Fatalf("Intern did not copy: got %q", s)
	}
}

func TestBytesInternDedicatedBlock(t *testing.T) {
	b := NewBytes(WithBlockSize(4))
	big := "this string is bigger than the block size"
	s := b.Intern(big)
	if s != big {
		t.Fatalf("got %q, want %q", s, big)
	}
	blocks, interned := b.Stats()
	if blocks != 1 || interned != 1 {
		t.Fatalf("blocks=%d interned=%d, want 1,1", blocks, interned)
	}
}

func TestBytesInternSpansMultipleBlocks(t *testing.T) {
	b := NewBytes(WithBlockSize(4))
	a := b.Intern("ab")
	c := b.Intern("cd")
	e := b.Intern("ef")
	if a != "ab" || c != "cd" || e != "ef" {
		t.Fatalf("got %q %q %q", a, c, e)
	}
	blocks, _ := b.Stats()
	if blocks < 2 {
		t.Fatalf("expected multiple blocks, got %d", blocks)
	}
}

func TestBytesInternEmpty(t *testing.T) {
	b := NewBytes()
	if b.Intern("") != "" {
		t.Fatal("interning empty string should return empty string")
	}
}
