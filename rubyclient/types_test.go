package rubyclient

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/boynton/smithyruby/smithy"
)

const typesModel = `{
  "smithy": "2.0",
  "shapes": {
    "example#Widget": {
      "type": "structure",
      "traits": { "smithy.api#documentation": "A widget." },
      "members": {
        "name": { "target": "smithy.api#String", "traits": { "smithy.api#required": {} } },
        "tag": { "target": "smithy.api#String" }
      }
    },
    "example#Shape": {
      "type": "union",
      "members": {
        "circle": { "target": "example#Circle" },
        "square": { "target": "example#Square" }
      }
    },
    "example#Circle": { "type": "structure", "members": {} },
    "example#Square": { "type": "structure", "members": {} },
    "example#Names": {
      "type": "list",
      "member": { "target": "smithy.api#String" }
    }
  }
}`

func loadTypesAST(test *testing.T) *smithy.AST {
	var ast smithy.AST
	if err := json.Unmarshal([]byte(typesModel), &ast); err != nil {
		test.Fatalf("failed to parse fixture model: %v", err)
	}
	return &ast
}

func TestGenerateStructureTypeEmitsKeywordStruct(test *testing.T) {
	ast := loadTypesAST(test)
	ctx := NewGenContext(ast, "", "Acme", "acme", "/tmp/out")
	w := NewCodeWriter("types.rb")
	if err := GenerateStructureType(ctx, w, "example#Widget"); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	text := w.Text()
	if !strings.Contains(text, `Struct.new(:name, :tag, keyword_init: true) do`) {
		test.Errorf("expected a keyword_init Struct.new, got:\n%s", text)
	}
	if !strings.Contains(text, "# A widget.") {
		test.Errorf("expected the documentation trait to render as a doc comment, got:\n%s", text)
	}
}

func TestGenerateUnionTypeEmitsVariantsAndUnknown(test *testing.T) {
	ast := loadTypesAST(test)
	ctx := NewGenContext(ast, "", "Acme", "acme", "/tmp/out")
	w := NewCodeWriter("types.rb")
	if err := GenerateUnionType(ctx, w, "example#Shape"); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	text := w.Text()
	if !strings.Contains(text, "module Shape") {
		test.Errorf("expected a Shape module wrapper, got:\n%s", text)
	}
	if !strings.Contains(text, "class Unknown") {
		test.Errorf("expected an Unknown forward-compatibility variant, got:\n%s", text)
	}
	if !strings.Contains(text, "class Circle < Struct.new(:value)") {
		test.Errorf("expected a Circle variant class, got:\n%s", text)
	}
	if !strings.Contains(text, "class Square < Struct.new(:value)") {
		test.Errorf("expected a Square variant class, got:\n%s", text)
	}
}

func TestGenerateTypeRejectsNonStructureUnion(test *testing.T) {
	ast := loadTypesAST(test)
	ctx := NewGenContext(ast, "", "Acme", "acme", "/tmp/out")
	w := NewCodeWriter("types.rb")
	err := GenerateType(ctx, w, "example#Names")
	if err == nil {
		test.Fatalf("expected an error for a list shape")
	}
	if _, ok := err.(*NotImplemented); !ok {
		test.Errorf("expected *NotImplemented, got %T: %v", err, err)
	}
}
