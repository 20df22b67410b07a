// Package birch is a parser toolchain for a dynamically-typed, C-family
// scripting language: source text in, a typed AST out, built from an
// arena-backed node model (pkg/ast), a byte-dispatched lexer (pkg/lexer),
// and a Pratt-style statement/expression parser (pkg/parser).
//
// # Quick Start
//
//	mod, err := birch.Parse("let total = price * quantity;")
//
//	// Parse once, reuse the same module from cache on repeat calls with
//	// the same source string.
//	mod, err := birch.Compile(source)
//
//	// With options
//	mod, err := birch.Parse(source,
//	    birch.WithMaxDepth(256),
//	    birch.WithLogger(myLogger),
//	)
//
// # More Information
//
// For detailed documentation, see:
//   - AST model: github.com/birchlang/birch/pkg/ast
//   - Lexer: github.com/birchlang/birch/pkg/lexer
//   - Parser: github.com/birchlang/birch/pkg/parser
//   - Error set: github.com/birchlang/birch/pkg/errs
package birch

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/mapstructure"

	"github.com/birchlang/birch/pkg/ast"
	"github.com/birchlang/birch/pkg/cache"
	"github.com/birchlang/birch/pkg/parser"
)

// Version returns the current version of birch.
func Version() string {
	return "v0.1.0-dev"
}

// defaultLogger is used by Parse/Compile whenever no WithLogger option
// overrides it. Parse logs at Trace/Debug level only (§10.1): the start of
// each parse, a parse that finished with errors, and block growth in the
// arena — a library has no business deciding what its caller's operator
// needs to see above that, and no log line here ever substitutes for a
// returned error. Its level is Warn, so these lines are not emitted unless
// a caller supplies its own logger.
var defaultLogger = hclog.New(&hclog.LoggerOptions{
	Name:  "birch",
	Level: hclog.Warn,
})

var defaultCache = cache.New(256)

// Option configures a Parse or Compile call.
type Option func(*config)

type config struct {
	logger         hclog.Logger
	maxDepth       int
	arenaBlockSize int
}

func newConfig() config {
	return config{logger: defaultLogger, maxDepth: 0, arenaBlockSize: 0}
}

// WithLogger overrides the default package logger for one call.
func WithLogger(l hclog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxDepth bounds recursive-descent nesting for one call; zero keeps
// the parser's own default (see pkg/parser.WithMaxDepth).
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithArenaBlockSize overrides the arena's raw byte-block size (§4.1,
// default 64 KiB) for one call; useful for callers parsing many small
// sources who want smaller blocks.
func WithArenaBlockSize(n int) Option {
	return func(c *config) { c.arenaBlockSize = n }
}

func (c config) parserOptions() []parser.Option {
	var opts []parser.Option
	if c.maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(c.maxDepth))
	}
	return opts
}

func (c config) arenaOptions() []ast.ArenaOption {
	opts := []ast.ArenaOption{ast.WithArenaLogger(c.logger)}
	if c.arenaBlockSize > 0 {
		opts = append(opts, ast.WithArenaBlockSize(c.arenaBlockSize))
	}
	return opts
}

// Parse runs a full parse of source, always allocating a fresh arena. Use
// Compile instead when the same source string is likely to be parsed
// again and the resulting module may be shared read-only.
func Parse(source string, opts ...Option) (*ast.Module, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.logger.Trace("parsing", "bytes", len(source))
	arena := ast.NewArena(cfg.arenaOptions()...)
	mod, err := parser.ParseWithArena(source, arena, cfg.parserOptions()...)
	if err != nil {
		cfg.logger.Debug("parse finished with errors", "bytes", len(source), "error", err)
	}
	return mod, err
}

// Compile is Parse with an LRU cache keyed on the exact source string, the
// way a caller re-checking the same file on every keystroke avoids paying
// for a fresh arena and re-lex/re-parse each time. A source that fails to
// parse is not cached, and is attempted again on the next Compile call.
func Compile(source string, opts ...Option) (*ast.Module, error) {
	return defaultCache.GetOrParse(source, func() (*ast.Module, error) {
		return Parse(source, opts...)
	})
}

// MustParse is like Parse but panics if source cannot be parsed. Useful for
// initializing package-level test fixtures and other must-succeed call
// sites.
func MustParse(source string, opts ...Option) *ast.Module {
	mod, err := Parse(source, opts...)
	if err != nil {
		panic(fmt.Sprintf("birch: Parse: %v", err))
	}
	return mod
}

// Config is a decode target for a caller's own configuration format (a
// `.birchrc`-style map, parsed from JSON/HCL by the caller) via
// github.com/mitchellh/mapstructure, translated into an Option slice by
// Options. This is the one place mapstructure is exercised; it is never
// used inside the core parser itself.
type Config struct {
	MaxDepth       int `mapstructure:"max_depth"`
	ArenaBlockSize int `mapstructure:"arena_block_size"`
}

// DecodeConfig decodes an arbitrary map (e.g. from a parsed JSON/HCL
// document) into a Config via mapstructure.
func DecodeConfig(raw map[string]interface{}) (Config, error) {
	var cfg Config
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("birch: decode config: %w", err)
	}
	return cfg, nil
}

// Options translates a decoded Config into the Option slice Parse/Compile
// accept.
func (c Config) Options() []Option {
	var opts []Option
	if c.MaxDepth > 0 {
		opts = append(opts, WithMaxDepth(c.MaxDepth))
	}
	if c.ArenaBlockSize > 0 {
		opts = append(opts, WithArenaBlockSize(c.ArenaBlockSize))
	}
	return opts
}
