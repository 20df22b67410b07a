// Package plugin defines the thin FFI interface the core parser is allowed
// to depend on, and a wazero-backed host adapter for it. The core never
// imports this package; it is wired the other direction, by a caller that
// has both a parsed module and a compiled guest plugin.
package plugin

import "github.com/birchlang/birch/pkg/ast"

// CodeGenerator turns a parsed module back into source text, optionally
// minified. Left unimplemented in this repository beyond the WazeroHost
// adapter: a real code generator is a separate, out-of-scope concern.
type CodeGenerator interface {
	Generate(mod *ast.Module, minify bool) ([]byte, error)
}

// Serializer turns a parsed module into a portable tree representation
// (an ESTree-compatible byte encoding, typically JSON). Left unimplemented
// beyond the WazeroHost adapter for the same reason as CodeGenerator.
type Serializer interface {
	ToESTree(mod *ast.Module) ([]byte, error)
}
