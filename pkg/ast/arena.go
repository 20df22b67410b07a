package ast

import (
	"github.com/hashicorp/go-hclog"

	"github.com/birchlang/birch/pkg/arena"
)

// Arena composes one typed arena.Pool per concrete node/list-cell type the
// grammar actually produces, plus a shared raw-byte arena for interned
// source slices. This is the Go realization of C1 (§4.1): the donor's
// single untyped byte arena with unsafe reinterpretation has no safe Go
// equivalent once the allocated values contain pointers (see
// pkg/arena's package doc), so "the arena" here is a fixed, enumerable set
// of typed slabs behind one façade rather than one generic heap.
type Arena struct {
	bytes *arena.Bytes

	expressions         *arena.Pool[Expression]
	statements          *arena.Pool[Statement]
	patterns            *arena.Pool[Pattern]
	functions           *arena.Pool[Function]
	classes             *arena.Pool[Class]
	classMembers        *arena.Pool[ClassMember]
	objectMembers       *arena.Pool[ObjectMember]
	objectPatternProps  *arena.Pool[ObjectPatternProperty]
	declarators         *arena.Pool[Declarator]
	switchCases         *arena.Pool[SwitchCase]
	catchClauses        *arena.Pool[CatchClause]

	listStatements          *arena.Pool[listItem[*Statement]]
	listExpressions         *arena.Pool[listItem[*Expression]]
	listPatterns            *arena.Pool[listItem[*Pattern]]
	listObjectMembers       *arena.Pool[listItem[*ObjectMember]]
	listClassMembers        *arena.Pool[listItem[*ClassMember]]
	listSwitchCases         *arena.Pool[listItem[*SwitchCase]]
	listDeclarators         *arena.Pool[listItem[*Declarator]]
	listObjectPatternProps  *arena.Pool[listItem[*ObjectPatternProperty]]
}

// ArenaOption configures a new Arena.
type ArenaOption func(*arenaConfig)

type arenaConfig struct {
	blockSize int
	chunkLen  int
	logger    hclog.Logger
}

// WithArenaBlockSize overrides the default 64 KiB raw byte block size.
func WithArenaBlockSize(n int) ArenaOption {
	return func(c *arenaConfig) { c.blockSize = n }
}

// WithArenaChunkLen overrides the default slab length for typed node pools.
func WithArenaChunkLen(n int) ArenaOption {
	return func(c *arenaConfig) { c.chunkLen = n }
}

// WithArenaLogger attaches a logger used to trace byte-arena block growth.
func WithArenaLogger(l hclog.Logger) ArenaOption {
	return func(c *arenaConfig) { c.logger = l }
}

// NewArena creates an empty Arena ready to back one Parse call.
func NewArena(opts ...ArenaOption) *Arena {
	cfg := arenaConfig{blockSize: arena.BlockSize, chunkLen: arena.DefaultChunkLen}
	for _, opt := range opts {
		opt(&cfg)
	}

	bytesOpts := []arena.Option{arena.WithBlockSize(cfg.blockSize)}
	if cfg.logger != nil {
		bytesOpts = append(bytesOpts, arena.WithLogger(cfg.logger))
	}

	return &Arena{
		bytes: arena.NewBytes(bytesOpts...),

		expressions:        arena.NewPool[Expression](cfg.chunkLen),
		statements:         arena.NewPool[Statement](cfg.chunkLen),
		patterns:           arena.NewPool[Pattern](cfg.chunkLen),
		functions:          arena.NewPool[Function](cfg.chunkLen),
		classes:            arena.NewPool[Class](cfg.chunkLen),
		classMembers:       arena.NewPool[ClassMember](cfg.chunkLen),
		objectMembers:      arena.NewPool[ObjectMember](cfg.chunkLen),
		objectPatternProps: arena.NewPool[ObjectPatternProperty](cfg.chunkLen),
		declarators:        arena.NewPool[Declarator](cfg.chunkLen),
		switchCases:        arena.NewPool[SwitchCase](cfg.chunkLen),
		catchClauses:       arena.NewPool[CatchClause](cfg.chunkLen),

		listStatements:         arena.NewPool[listItem[*Statement]](cfg.chunkLen),
		listExpressions:        arena.NewPool[listItem[*Expression]](cfg.chunkLen),
		listPatterns:           arena.NewPool[listItem[*Pattern]](cfg.chunkLen),
		listObjectMembers:      arena.NewPool[listItem[*ObjectMember]](cfg.chunkLen),
		listClassMembers:       arena.NewPool[listItem[*ClassMember]](cfg.chunkLen),
		listSwitchCases:        arena.NewPool[listItem[*SwitchCase]](cfg.chunkLen),
		listDeclarators:        arena.NewPool[listItem[*Declarator]](cfg.chunkLen),
		listObjectPatternProps: arena.NewPool[listItem[*ObjectPatternProperty]](cfg.chunkLen),
	}
}

// Intern copies s into the shared byte arena and returns the interned slice.
func (a *Arena) Intern(s string) string { return a.bytes.Intern(s) }

func (a *Arena) NewExpression() *Expression             { return a.expressions.Alloc() }
func (a *Arena) NewStatement() *Statement               { return a.statements.Alloc() }
func (a *Arena) NewPattern() *Pattern                   { return a.patterns.Alloc() }
func (a *Arena) NewFunction() *Function                 { return a.functions.Alloc() }
func (a *Arena) NewClass() *Class                       { return a.classes.Alloc() }
func (a *Arena) NewClassMember() *ClassMember           { return a.classMembers.Alloc() }
func (a *Arena) NewObjectMember() *ObjectMember         { return a.objectMembers.Alloc() }
func (a *Arena) NewObjectPatternProperty() *ObjectPatternProperty {
	return a.objectPatternProps.Alloc()
}
func (a *Arena) NewDeclarator() *Declarator   { return a.declarators.Alloc() }
func (a *Arena) NewSwitchCase() *SwitchCase   { return a.switchCases.Alloc() }
func (a *Arena) NewCatchClause() *CatchClause { return a.catchClauses.Alloc() }

func NewStatementListBuilder(a *Arena, first *Statement) *ListBuilder[*Statement] {
	return NewListBuilder(a.listStatements, first)
}
func NewExpressionListBuilder(a *Arena, first *Expression) *ListBuilder[*Expression] {
	return NewListBuilder(a.listExpressions, first)
}
func NewPatternListBuilder(a *Arena, first *Pattern) *ListBuilder[*Pattern] {
	return NewListBuilder(a.listPatterns, first)
}
func NewObjectMemberListBuilder(a *Arena, first *ObjectMember) *ListBuilder[*ObjectMember] {
	return NewListBuilder(a.listObjectMembers, first)
}
func NewClassMemberListBuilder(a *Arena, first *ClassMember) *ListBuilder[*ClassMember] {
	return NewListBuilder(a.listClassMembers, first)
}
func NewSwitchCaseListBuilder(a *Arena, first *SwitchCase) *ListBuilder[*SwitchCase] {
	return NewListBuilder(a.listSwitchCases, first)
}
func NewDeclaratorListBuilder(a *Arena, first *Declarator) *ListBuilder[*Declarator] {
	return NewListBuilder(a.listDeclarators, first)
}
func NewObjectPatternPropertyListBuilder(a *Arena, first *ObjectPatternProperty) *ListBuilder[*ObjectPatternProperty] {
	return NewListBuilder(a.listObjectPatternProps, first)
}

// Stats reports total node and interned-string counts, for diagnostics.
func (a *Arena) Stats() map[string]int {
	blocks, interned := a.bytes.Stats()
	return map[string]int{
		"expressions":    a.expressions.Len(),
		"statements":     a.statements.Len(),
		"patterns":       a.patterns.Len(),
		"functions":      a.functions.Len(),
		"classes":        a.classes.Len(),
		"bytes_blocks":   blocks,
		"bytes_interned": interned,
	}
}
