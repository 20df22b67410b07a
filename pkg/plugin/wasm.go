package plugin

import (
	"context"
	"fmt"

	"github.com/birchlang/birch/pkg/ast"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// WazeroHost adapts a compiled WASM guest module to CodeGenerator and
// Serializer over a byte-buffer ABI: the host calls the guest's exported
// alloc(size) to reserve a scratch region, writes the request bytes into
// guest linear memory at the returned offset, calls the guest's entry
// point with (ptr, len), and reads the result back from the
// (outPtr, outLen) pair the entry point returns packed into a single
// i64 (outPtr<<32 | outLen). This is the donor's cmd/wasm/wasi/main.go
// pattern turned inside-out: there a WASI guest calls back into a Go host
// over stdio; here the Go host calls out to an arbitrary guest directly
// through its exported functions, the shape "foreign function bindings"
// calls for.
//
// Generate and ToESTree take no context.Context, matching the interfaces
// in plugin.go; the ctx supplied to NewWazeroHost is reused for every call
// made through the returned host.
type WazeroHost struct {
	ctx     context.Context
	runtime wazero.Runtime
	module  api.Module
}

// NewWazeroHost compiles and instantiates wasmBytes, returning a host ready
// to serve Generate/ToESTree calls. The guest must export a linear memory
// named "memory", a function `alloc(size i32) -> i32`, and the entry point
// each method calls (`generate` or `to_estree`), each shaped
// `(ptr i32, len i32) -> i64`.
func NewWazeroHost(ctx context.Context, wasmBytes []byte) (*WazeroHost, error) {
	runtime := wazero.NewRuntime(ctx)
	compiled, err := runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		runtime.Close(ctx)
		return nil, fmt.Errorf("plugin: compile guest module: %w", err)
	}
	mod, err := runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		runtime.Close(ctx)
		return nil, fmt.Errorf("plugin: instantiate guest module: %w", err)
	}
	return &WazeroHost{ctx: ctx, runtime: runtime, module: mod}, nil
}

// Close releases the wazero runtime and every resource it owns.
func (h *WazeroHost) Close() error {
	return h.runtime.Close(h.ctx)
}

// Generate implements CodeGenerator by calling the guest's `generate` entry
// point with the module's source text. minify is passed as a single
// leading flag byte; a guest that does not distinguish the two may ignore
// it, which is exactly what the proof-of-concept fixture in wasm_test.go
// does.
func (h *WazeroHost) Generate(mod *ast.Module, minify bool) ([]byte, error) {
	flag := byte(0)
	if minify {
		flag = 1
	}
	return h.call("generate", append([]byte{flag}, mod.Source...))
}

// ToESTree implements Serializer by calling the guest's `to_estree` entry
// point with the module's source text.
func (h *WazeroHost) ToESTree(mod *ast.Module) ([]byte, error) {
	return h.call("to_estree", []byte(mod.Source))
}

func (h *WazeroHost) call(fnName string, input []byte) ([]byte, error) {
	alloc := h.module.ExportedFunction("alloc")
	if alloc == nil {
		return nil, fmt.Errorf("plugin: guest module does not export alloc")
	}
	fn := h.module.ExportedFunction(fnName)
	if fn == nil {
		return nil, fmt.Errorf("plugin: guest module does not export %q", fnName)
	}

	allocResults, err := alloc.Call(h.ctx, uint64(len(input)))
	if err != nil {
		return nil, fmt.Errorf("plugin: alloc call: %w", err)
	}
	ptr := uint32(allocResults[0])

	mem := h.module.Memory()
	if !mem.Write(ptr, input) {
		return nil, fmt.Errorf("plugin: writing %d bytes at guest offset %d out of bounds", len(input), ptr)
	}

	callResults, err := fn.Call(h.ctx, uint64(ptr), uint64(len(input)))
	if err != nil {
		return nil, fmt.Errorf("plugin: %s call: %w", fnName, err)
	}
	packed := callResults[0]
	outPtr := uint32(packed >> 32)
	outLen := uint32(packed)

	view, ok := mem.Read(outPtr, outLen)
	if !ok {
		return nil, fmt.Errorf("plugin: reading %d bytes at guest offset %d out of bounds", outLen, outPtr)
	}
	out := make([]byte, len(view))
	copy(out, view)
	return out, nil
}
