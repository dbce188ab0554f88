package rubyclient

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/boynton/smithyruby/smithy"
)

const railsjsonModel = `{
  "smithy": "2.0",
  "shapes": {
    "example#Svc": {
      "type": "service",
      "version": "2020-01-01",
      "traits": { "example.protocols#railsJson1": {} },
      "operations": [
        { "target": "example#GetThing" },
        { "target": "example#Ping" }
      ]
    },
    "example#GetThing": {
      "type": "operation",
      "traits": { "smithy.api#http": { "method": "GET", "uri": "/things/{id}" } },
      "input": { "target": "example#GetThingInput" },
      "output": { "target": "example#GetThingOutput" },
      "errors": [ { "target": "example#NotFoundError" } ]
    },
    "example#GetThingInput": {
      "type": "structure",
      "members": {
        "id": { "target": "smithy.api#String", "traits": { "smithy.api#httpLabel": {}, "smithy.api#required": {} } }
      }
    },
    "example#GetThingOutput": {
      "type": "structure",
      "members": { "name": { "target": "smithy.api#String" } }
    },
    "example#NotFoundError": {
      "type": "structure",
      "traits": { "smithy.api#error": "client" },
      "members": {}
    },
    "example#Ping": {
      "type": "operation"
    }
  }
}`

func loadRailsjsonAST(test *testing.T) *smithy.AST {
	var ast smithy.AST
	if err := json.Unmarshal([]byte(railsjsonModel), &ast); err != nil {
		test.Fatalf("failed to parse fixture model: %v", err)
	}
	return &ast
}

func newRailsjsonContext(test *testing.T) *GenContext {
	ast := loadRailsjsonAST(test)
	return NewGenContext(ast, "example#Svc", "Acme", "acme", "/tmp/out")
}

func TestRailsJsonGenerateBuildersSkipsOperationsWithoutHttpTrait(test *testing.T) {
	ctx := newRailsjsonContext(test)
	gen := &RailsJsonGenerator{}
	if err := gen.GenerateBuilders(ctx); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	text, ok := ctx.Manifest.Get(ctx.Module + "/builders.rb")
	if !ok {
		test.Fatalf("expected builders.rb to be written")
	}
	if !strings.Contains(text, "def build_get_thing") {
		test.Errorf("expected a builder for GetThing, got:\n%s", text)
	}
	if strings.Contains(text, "def build_ping") {
		test.Errorf("did not expect a builder for Ping (no http trait), got:\n%s", text)
	}
}

func TestRailsJsonGenerateParsersEmitsErrorDispatchOnlyWhenErrorsDeclared(test *testing.T) {
	ctx := newRailsjsonContext(test)
	gen := &RailsJsonGenerator{}
	if err := gen.GenerateParsers(ctx); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	text, ok := ctx.Manifest.Get(ctx.Module + "/parsers.rb")
	if !ok {
		test.Fatalf("expected parsers.rb to be written")
	}
	if !strings.Contains(text, "def parse_get_thing_error(response)") {
		test.Errorf("expected an error dispatch parser for GetThing, got:\n%s", text)
	}
	if !strings.Contains(text, `when "NotFoundError"`) {
		test.Errorf("expected NotFoundError in the dispatch, got:\n%s", text)
	}
}

func TestRailsJsonClientMiddlewareAddsContentType(test *testing.T) {
	ctx := newRailsjsonContext(test)
	gen := &RailsJsonGenerator{}
	records := gen.ClientMiddleware(ctx)
	found := false
	for _, r := range records {
		if r.Klass == "ContentType" {
			found = true
			if r.AdditionalParams["content_type"] != "application/json" {
				test.Errorf("expected application/json content type, got %v", r.AdditionalParams)
			}
		}
	}
	if !found {
		test.Errorf("expected a ContentType middleware record among %v", records)
	}
}

func TestRailsJsonGenerateStubsAcceptsOverrides(test *testing.T) {
	ctx := newRailsjsonContext(test)
	gen := &RailsJsonGenerator{}
	if err := gen.GenerateStubs(ctx); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	text, ok := ctx.Manifest.Get(ctx.Module + "/stubs.rb")
	if !ok {
		test.Fatalf("expected stubs.rb to be written")
	}
	if !strings.Contains(text, "def self.deep_merge(base, overrides)") {
		test.Errorf("expected a deep_merge helper, got:\n%s", text)
	}
	if !strings.Contains(text, "def self.stub_get_thing(overrides = {})") {
		test.Errorf("expected stub_get_thing to accept an overrides hash, got:\n%s", text)
	}
	if !strings.Contains(text, "merged = deep_merge(defaults, overrides)") {
		test.Errorf("expected stub_get_thing to merge overrides over its defaults, got:\n%s", text)
	}
	if !strings.Contains(text, "GetThingOutput.new(**merged)") {
		test.Errorf("expected stub_get_thing to materialize its output record, got:\n%s", text)
	}
	if !strings.Contains(text, "def self.stub_ping(overrides = {})") {
		test.Errorf("expected stub_ping to accept an overrides hash, got:\n%s", text)
	}
}

func TestRailsJsonProtocolIdMatchesRegisteredTrait(test *testing.T) {
	gen := &RailsJsonGenerator{}
	if gen.ProtocolId() != RailsJsonProtocolId {
		test.Errorf("ProtocolId() = %q, want %q", gen.ProtocolId(), RailsJsonProtocolId)
	}
}
