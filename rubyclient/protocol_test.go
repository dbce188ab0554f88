package rubyclient

import (
	"encoding/json"
	"testing"

	"github.com/boynton/smithyruby/smithy"
)

const protocolModel = `{
  "smithy": "2.0",
  "shapes": {
    "example#Svc": {
      "type": "service",
      "version": "2020-01-01",
      "traits": { "example.protocols#railsJson1": {} }
    },
    "example#UnknownProtoSvc": {
      "type": "service",
      "version": "2020-01-01",
      "traits": { "example.protocols#notRegistered": {} }
    }
  }
}`

func loadProtocolAST(test *testing.T) *smithy.AST {
	var ast smithy.AST
	if err := json.Unmarshal([]byte(protocolModel), &ast); err != nil {
		test.Fatalf("failed to parse fixture model: %v", err)
	}
	return &ast
}

func TestServiceProtocolsFindsRegisteredTrait(test *testing.T) {
	ast := loadProtocolAST(test)
	ctx := NewGenContext(ast, "example#Svc", "Acme", "acme", "/tmp/out")
	protocols := ServiceProtocols(ctx)
	if len(protocols) != 1 || protocols[0] != RailsJsonProtocolId {
		test.Errorf("expected [%q], got %v", RailsJsonProtocolId, protocols)
	}
}

func TestResolveProtocolReturnsUnsupportedProtocolError(test *testing.T) {
	ast := loadProtocolAST(test)
	ctx := NewGenContext(ast, "example#UnknownProtoSvc", "Acme", "acme", "/tmp/out")
	protocols := ServiceProtocols(ctx)
	if len(protocols) != 0 {
		test.Fatalf("expected no recognized protocol traits, got %v", protocols)
	}
	_, err := ResolveProtocol(ctx.ServiceId, protocols)
	if err == nil {
		test.Fatalf("expected an UnsupportedProtocolError")
	}
	if _, ok := err.(*UnsupportedProtocolError); !ok {
		test.Errorf("expected *UnsupportedProtocolError, got %T: %v", err, err)
	}
}

func TestResolveProtocolReturnsRegisteredGenerator(test *testing.T) {
	gen, err := ResolveProtocol("example#Svc", []string{RailsJsonProtocolId})
	if err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	if gen.ProtocolId() != RailsJsonProtocolId {
		test.Errorf("ProtocolId() = %q, want %q", gen.ProtocolId(), RailsJsonProtocolId)
	}
}
