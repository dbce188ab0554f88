package rubyclient

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const generatorModel = `{
  "smithy": "2.0",
  "shapes": {
    "example#Svc": {
      "type": "service",
      "version": "2020-01-01",
      "traits": { "example.protocols#railsJson1": {} },
      "operations": [ { "target": "example#GetThing" } ]
    },
    "example#GetThing": {
      "type": "operation",
      "traits": {
        "smithy.api#http": { "method": "GET", "uri": "/things/{id}" }
      },
      "input": { "target": "example#GetThingInput" },
      "output": { "target": "example#GetThingOutput" },
      "errors": [ { "target": "example#NotFoundError" } ]
    },
    "example#GetThingInput": {
      "type": "structure",
      "members": {
        "id": {
          "target": "smithy.api#String",
          "traits": { "smithy.api#httpLabel": {}, "smithy.api#required": {} }
        }
      }
    },
    "example#GetThingOutput": {
      "type": "structure",
      "members": {
        "name": { "target": "smithy.api#String" }
      }
    },
    "example#NotFoundError": {
      "type": "structure",
      "traits": { "smithy.api#error": "client" },
      "members": {}
    }
  }
}`

func writeGeneratorModel(test *testing.T) string {
	dir := test.TempDir()
	path := filepath.Join(dir, "model.json")
	if err := os.WriteFile(path, []byte(generatorModel), 0644); err != nil {
		test.Fatalf("failed to write fixture model: %v", err)
	}
	return path
}

func TestGenerateProducesExpectedFileSet(test *testing.T) {
	settings := &Settings{
		ModelPath: writeGeneratorModel(test),
		ServiceId: "example#Svc",
		OutDir:    test.TempDir(),
		Module:    "Acme",
	}
	manifest, err := Generate(settings)
	if err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	paths := manifest.Paths()
	wantSuffixes := []string{
		"types.rb", "validators.rb", "errors.rb", "builders.rb",
		"parsers.rb", "stubs.rb", "params.rb", "config.rb", "client.rb",
	}
	for _, suffix := range wantSuffixes {
		found := false
		for _, p := range paths {
			if strings.HasSuffix(p, "/"+suffix) {
				found = true
			}
		}
		if !found {
			test.Errorf("expected a generated file ending in %q, got %v", suffix, paths)
		}
	}
}

func TestGenerateDerivesModuleAndGemFromServiceWhenUnset(test *testing.T) {
	settings := &Settings{
		ModelPath: writeGeneratorModel(test),
		ServiceId: "example#Svc",
		OutDir:    test.TempDir(),
	}
	manifest, err := Generate(settings)
	if err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, p := range manifest.Paths() {
		if strings.HasPrefix(p, "Svc/") {
			found = true
		}
	}
	if !found {
		test.Errorf("expected files to be emitted under a Svc/ module directory, got %v", manifest.Paths())
	}
}

func TestGenerateRejectsUnsupportedProtocol(test *testing.T) {
	model := strings.Replace(generatorModel, "example.protocols#railsJson1", "example.protocols#notRegistered", 1)
	dir := test.TempDir()
	path := filepath.Join(dir, "model.json")
	if err := os.WriteFile(path, []byte(model), 0644); err != nil {
		test.Fatalf("failed to write fixture model: %v", err)
	}
	settings := &Settings{
		ModelPath: path,
		ServiceId: "example#Svc",
		OutDir:    test.TempDir(),
		Module:    "Acme",
	}
	_, err := Generate(settings)
	if err == nil {
		test.Fatalf("expected an UnsupportedProtocolError")
	}
	if _, ok := err.(*UnsupportedProtocolError); !ok {
		test.Errorf("expected *UnsupportedProtocolError, got %T: %v", err, err)
	}
}
