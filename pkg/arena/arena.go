// Package arena implements bump allocation for the parser front end: a
// typed slab pool for fixed-layout values (AST nodes, list cells) and a raw
// byte arena for interned source slices (identifiers, literal text).
//
// Go's garbage collector is precise: it needs type metadata to scan a
// pointer-containing value correctly. That rules out the donor language's
// trick of carving arbitrary structs out of one big []byte via an unsafe
// cast, since a raw byte slice carries no such metadata and the GC would
// not see pointers living inside it. Pool[T] sidesteps this by allocating
// real [](T) chunks, so every node the parser hands out is an ordinary,
// GC-visible Go value; only the byte arena (Bytes), which never holds
// pointers, uses an unsafe, zero-copy string conversion.
package arena

import (
	"unsafe"

	"github.com/hashicorp/go-hclog"
)

// DefaultChunkLen is the number of elements per slab in a Pool. On a 64-bit
// platform a Pool[Expression] chunk of this length is roughly 136 KiB, about
// twice the 64 KiB block size used by Bytes.
const DefaultChunkLen = 512

// Pool is a chunked bump allocator for a single fixed-layout type T. Once
// handed out, a *T from Alloc never moves: the backing chunk is allocated at
// full length up front and never reallocated.
type Pool[T any] struct {
	chunks   [][]T
	pos      int
	chunkLen int
	count    int
}

// NewPool creates a Pool whose chunks hold chunkLen elements each. A
// non-positive chunkLen falls back to DefaultChunkLen.
func NewPool[T any](chunkLen int) *Pool[T] {
	if chunkLen <= 0 {
		chunkLen = DefaultChunkLen
	}
	return &Pool[T]{chunkLen: chunkLen}
}

// Alloc returns a pointer to a new zero-valued T, allocated from the current
// chunk or a freshly grown one.
func (p *Pool[T]) Alloc() *T {
	if len(p.chunks) == 0 || p.pos == p.chunkLen {
		p.chunks = append(p.chunks, make([]T, p.chunkLen))
		p.pos = 0
	}
	chunk := p.chunks[len(p.chunks)-1]
	v := &chunk[p.pos]
	p.pos++
	p.count++
	return v
}

// Len returns the number of values allocated so far.
func (p *Pool[T]) Len() int { return p.count }

// Chunks returns the number of slabs grown so far, for diagnostics.
func (p *Pool[T]) Chunks() int { return len(p.chunks) }

// BlockSize is the default raw byte block size for Bytes: 64 KiB, matching
// the donor implementation's ARENA_BLOCK constant.
const BlockSize = 64 * 1024

// Bytes is a raw byte arena used exclusively for interning source slices.
// Unlike Pool, it is safe to back with unsafe-converted strings because a
// byte slice never contains pointers the garbage collector needs to trace.
type Bytes struct {
	blockSize int
	blocks    [][]byte
	offset    int
	interned  int
	log       hclog.Logger
}

// Option configures a Bytes arena.
type Option func(*Bytes)

// WithBlockSize overrides the default 64 KiB block size.
func WithBlockSize(n int) Option {
	return func(b *Bytes) {
		if n > 0 {
			b.blockSize = n
		}
	}
}

// WithLogger attaches a logger that traces block-growth events at trace
// level. A nil logger (the default) disables this entirely.
func WithLogger(l hclog.Logger) Option {
	return func(b *Bytes) { b.log = l }
}

// NewBytes creates an empty byte arena.
func NewBytes(opts ...Option) *Bytes {
	b := &Bytes{blockSize: BlockSize}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Intern copies s into the arena and returns a string backed by that copy,
// never by the caller's original memory. Oversized values (>= the block
// size) get a dedicated, exactly-sized block rather than wasting the
// current block's remaining space.
func (b *Bytes) Intern(s string) string {
	if len(s) == 0 {
		return ""
	}
	if len(s) >= b.blockSize {
		block := []byte(s)
		if n := len(b.blocks); n > 0 {
			// Keep the current bump block last, so later small values are
			// never copied into this dedicated block.
			last := b.blocks[n-1]
			b.blocks[n-1] = block
			b.blocks = append(b.blocks, last)
		} else {
			b.blocks = append(b.blocks, block)
			b.offset = b.blockSize
		}
		b.interned++
		b.trace("dedicated block", len(block))
		return unsafeString(block)
	}
	if len(b.blocks) == 0 || b.blockSize-b.offset < len(s) {
		b.blocks = append(b.blocks, make([]byte, b.blockSize))
		b.offset = 0
		b.trace("grow", b.blockSize)
	}
	block := b.blocks[len(b.blocks)-1]
	start := b.offset
	copy(block[start:], s)
	b.offset += len(s)
	b.interned++
	return unsafeString(block[start:b.offset])
}

// Stats reports the number of allocated blocks and interned strings, for
// diagnostics and tests.
func (b *Bytes) Stats() (blocks, interned int) {
	return len(b.blocks), b.interned
}

func (b *Bytes) trace(event string, n int) {
	if b.log == nil {
		return
	}
	b.log.Trace("arena block event", "event", event, "bytes", n)
}

// unsafeString reinterprets a byte slice as a string without copying. Safe
// here because the caller never mutates the underlying block after this
// call: Bytes only ever appends past the returned range.
func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
