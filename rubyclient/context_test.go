package rubyclient

import (
	"testing"

	"github.com/boynton/smithyruby/smithy"
)

func TestNewGenContextInitializesSymbolsAndManifest(test *testing.T) {
	ast := &smithy.AST{}
	ctx := NewGenContext(ast, "example#Svc", "Acme", "acme_client", "build")
	if ctx.AST != ast || ctx.ServiceId != "example#Svc" || ctx.Module != "Acme" ||
		ctx.Gem != "acme_client" || ctx.OutDir != "build" {
		test.Errorf("unexpected context fields: %+v", ctx)
	}
	if ctx.Symbols == nil {
		test.Fatalf("expected a non-nil SymbolProvider")
	}
	if ctx.Manifest == nil {
		test.Fatalf("expected a non-nil FileManifest")
	}
	if ctx.Manifest.Len() != 0 {
		test.Errorf("expected a fresh manifest, got %d entries", ctx.Manifest.Len())
	}
}

func TestGenContextWriteFilePutsFinalizedTextInManifest(test *testing.T) {
	ctx := NewGenContext(&smithy.AST{}, "example#Svc", "Acme", "acme_client", "build")
	w := NewCodeWriter("types.rb")
	w.Write("module Acme")
	if err := ctx.WriteFile("Acme/types.rb", w); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	text, ok := ctx.Manifest.Get("Acme/types.rb")
	if !ok {
		test.Fatalf("expected Acme/types.rb to be in the manifest")
	}
	if text != "module Acme\n" {
		test.Errorf("unexpected manifest content: %q", text)
	}
}

func TestGenContextWriteFilePropagatesUnbalancedBlockError(test *testing.T) {
	ctx := NewGenContext(&smithy.AST{}, "example#Svc", "Acme", "acme_client", "build")
	w := NewCodeWriter("types.rb")
	w.OpenBlock("module Acme", "end")
	if err := ctx.WriteFile("Acme/types.rb", w); err == nil {
		test.Fatalf("expected an UnbalancedBlockError from an unclosed block")
	}
}
