package ast

// Block is a braced sequence of T, itself a node so it carries its own
// source location distinct from its children's combined span (§3).
type Block[T any] struct {
	Loc
	Body List[T]
}
