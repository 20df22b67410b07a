package plugin

import (
	"context"
	"testing"

	"github.com/birchlang/birch/pkg/ast"
)

// echoGuestWASM is a hand-assembled WASM module (no build toolchain
// involved) equivalent to the following WAT source:
//
//	(module
//	  (memory (export "memory") 1)
//	  (func (export "generate") (param $ptr i32) (param $len i32) (result i64)
//	    local.get $ptr
//	    i64.extend_i32_u
//	    i64.const 32
//	    i64.shl
//	    local.get $len
//	    i64.extend_i32_u
//	    i64.or)
//	  (func (export "to_estree") (param $ptr i32) (param $len i32) (result i64)
//	    local.get $ptr
//	    i64.extend_i32_u
//	    i64.const 32
//	    i64.shl
//	    local.get $len
//	    i64.extend_i32_u
//	    i64.or)
//	  (func (export "alloc") (param $size i32) (result i32)
//	    i32.const 8))
//
// "generate" and "to_estree" both alias the same function body (function
// index 0): they hand back the exact (ptr, len) they were given, packed
// into the i64 the WazeroHost ABI expects, so the guest "generates" or
// "serializes" by doing nothing — proving the round trip without needing
// a real code generator or serializer running inside the guest. "alloc"
// always returns offset 8, which is more than enough headroom below the
// one 64KiB page this module's linear memory provides for any input the
// tests below send it.
var echoGuestWASM = buildEchoGuestWASM()

func buildEchoGuestWASM() []byte {
	var b []byte
	b = append(b, 0x00, 0x61, 0x73, 0x6D) // magic "\0asm"
	b = append(b, 0x01, 0x00, 0x00, 0x00) // version 1

	// Type section: type0 (i32,i32)->i64, type1 (i32)->i32.
	typeSection := []byte{
		0x02,                   // 2 types
		0x60, 0x02, 0x7F, 0x7F, 0x01, 0x7E, // func (i32 i32) -> i64
		0x60, 0x01, 0x7F, 0x01, 0x7F, // func (i32) -> i32
	}
	b = append(b, 0x01, byte(len(typeSection)))
	b = append(b, typeSection...)

	// Function section: func0 uses type0 (the echo body), func1 uses type1 (alloc).
	funcSection := []byte{0x02, 0x00, 0x01}
	b = append(b, 0x03, byte(len(funcSection)))
	b = append(b, funcSection...)

	// Memory section: one memory, minimum 1 page.
	memSection := []byte{0x01, 0x00, 0x01}
	b = append(b, 0x05, byte(len(memSection)))
	b = append(b, memSection...)

	// Export section: memory, generate->func0, to_estree->func0, alloc->func1.
	var exportSection []byte
	exportSection = append(exportSection, 0x04) // 4 exports
	exportSection = appendExport(exportSection, "memory", 0x02, 0)
	exportSection = appendExport(exportSection, "generate", 0x00, 0)
	exportSection = appendExport(exportSection, "to_estree", 0x00, 0)
	exportSection = appendExport(exportSection, "alloc", 0x00, 1)
	b = append(b, 0x07, byte(len(exportSection)))
	b = append(b, exportSection...)

	// Code section: func0 (echo), func1 (alloc).
	echoBody := []byte{
		0x00,       // 0 local declarations
		0x20, 0x00, // local.get 0 (ptr)
		0xAD,       // i64.extend_i32_u
		0x42, 0x20, // i64.const 32
		0x86,       // i64.shl
		0x20, 0x01, // local.get 1 (len)
		0xAD, // i64.extend_i32_u
		0x84, // i64.or
		0x0B, // end
	}
	allocBody := []byte{
		0x00,       // 0 local declarations
		0x41, 0x08, // i32.const 8
		0x0B, // end
	}
	var codeSection []byte
	codeSection = append(codeSection, 0x02) // 2 function bodies
	codeSection = append(codeSection, byte(len(echoBody)))
	codeSection = append(codeSection, echoBody...)
	codeSection = append(codeSection, byte(len(allocBody)))
	codeSection = append(codeSection, allocBody...)
	b = append(b, 0x0A, byte(len(codeSection)))
	b = append(b, codeSection...)

	return b
}

func appendExport(b []byte, name string, kind byte, index byte) []byte {
	b = append(b, byte(len(name)))
	b = append(b, name...)
	b = append(b, kind, index)
	return b
}

func TestWazeroHostGenerateRoundTrips(t *testing.T) {
	ctx := context.Background()
	host, err := NewWazeroHost(ctx, echoGuestWASM)
	if err != nil {
		t.Fatalf("NewWazeroHost: %v", err)
	}
	defer host.Close()

	mod := &ast.Module{Source: "let x = 1;"}
	out, err := host.Generate(mod, false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := "\x00" + mod.Source
	if string(out) != want {
		t.Fatalf("Generate round-trip = %q, want %q", out, want)
	}
}

func TestWazeroHostToESTreeRoundTrips(t *testing.T) {
	ctx := context.Background()
	host, err := NewWazeroHost(ctx, echoGuestWASM)
	if err != nil {
		t.Fatalf("NewWazeroHost: %v", err)
	}
	defer host.Close()

	mod := &ast.Module{Source: `const s = "hi";`}
	out, err := host.ToESTree(mod)
	if err != nil {
		t.Fatalf("ToESTree: %v", err)
	}
	if string(out) != mod.Source {
		t.Fatalf("ToESTree round-trip = %q, want %q", out, mod.Source)
	}
}

func TestWazeroHostMissingExportErrors(t *testing.T) {
	ctx := context.Background()
	// A module with no exports at all: magic+version only, no sections.
	bare := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}
	host, err := NewWazeroHost(ctx, bare)
	if err != nil {
		t.Fatalf("NewWazeroHost: %v", err)
	}
	defer host.Close()

	if _, err := host.Generate(&ast.Module{Source: "x;"}, false); err == nil {
		t.Fatal("expected an error calling a guest with no alloc/generate exports")
	}
}
