package ast

import "github.com/birchlang/birch/pkg/arena"

// listItem is a singly-linked cons cell. next is a plain pointer rather than
// an interior-mutable cell: a *listItem already supports in-place mutation
// through the pointer, so the donor's extra Cell wrapper has no Go
// equivalent need (see DESIGN.md).
type listItem[T any] struct {
	value T
	next  *listItem[T]
}

// List is an ordered, append-only, arena-backed sequence of T. The zero
// value is the empty list. Lists are cheap to copy (a single pointer) and
// safe to iterate any number of times.
type List[T any] struct {
	root *listItem[T]
}

// EmptyList returns the empty list for T.
func EmptyList[T any]() List[T] { return List[T]{} }

// IsEmpty reports whether the list has no elements.
func (l List[T]) IsEmpty() bool { return l.root == nil }

// OnlyElement returns the list's single element if, and only if, the list
// contains exactly one element.
func (l List[T]) OnlyElement() (T, bool) {
	var zero T
	if l.root == nil || l.root.next != nil {
		return zero, false
	}
	return l.root.value, true
}

// Len walks the list and counts its elements. O(n).
func (l List[T]) Len() int {
	n := 0
	for it := l.root; it != nil; it = it.next {
		n++
	}
	return n
}

// ToSlice materializes the list into a plain slice, for callers (codegen,
// serialization, tests) that want random access or JSON marshaling.
func (l List[T]) ToSlice() []T {
	out := make([]T, 0, l.Len())
	for it := l.root; it != nil; it = it.next {
		out = append(out, it.value)
	}
	return out
}

// ListIter walks a List forward, once.
type ListIter[T any] struct {
	next *listItem[T]
}

// Iter returns a forward iterator positioned before the first element.
func (l List[T]) Iter() *ListIter[T] { return &ListIter[T]{next: l.root} }

// Next advances the iterator and reports whether a value was produced.
func (it *ListIter[T]) Next() (T, bool) {
	var zero T
	if it.next == nil {
		return zero, false
	}
	v := it.next.value
	it.next = it.next.next
	return v, true
}

// ListBuilder appends elements to a List in O(1) each, from an arena-backed
// pool of cons cells, then freezes into an immutable List.
type ListBuilder[T any] struct {
	pool  *arena.Pool[listItem[T]]
	first *listItem[T]
	last  *listItem[T]
}

// NewListBuilder creates a builder seeded with one element, allocating its
// cons cell from pool.
func NewListBuilder[T any](pool *arena.Pool[listItem[T]], first T) *ListBuilder[T] {
	cell := pool.Alloc()
	cell.value = first
	return &ListBuilder[T]{pool: pool, first: cell, last: cell}
}

// Push appends value in O(1).
func (b *ListBuilder[T]) Push(value T) {
	cell := b.pool.Alloc()
	cell.value = value
	b.last.next = cell
	b.last = cell
}

// List freezes the builder into an immutable List. The builder must not be
// reused afterward.
func (b *ListBuilder[T]) List() List[T] {
	return List[T]{root: b.first}
}
