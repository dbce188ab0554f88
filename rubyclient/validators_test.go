package rubyclient

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/boynton/smithyruby/smithy"
)

const validatorsModel = `{
  "smithy": "2.0",
  "shapes": {
    "example#Widget": {
      "type": "structure",
      "members": {
        "name": {
          "target": "smithy.api#String",
          "traits": { "smithy.api#required": {} }
        },
        "owner": { "target": "example#Owner" },
        "tag": { "target": "smithy.api#String" },
        "accessories": { "target": "example#AccessoryList" },
        "body": { "target": "smithy.api#Blob", "traits": { "smithy.api#streaming": {} } }
      }
    },
    "example#Owner": {
      "type": "structure",
      "members": {
        "email": { "target": "smithy.api#String", "traits": { "smithy.api#required": {} } }
      }
    },
    "example#AccessoryList": {
      "type": "list",
      "member": { "target": "example#Accessory" }
    },
    "example#Accessory": {
      "type": "structure",
      "members": {
        "sku": { "target": "smithy.api#String", "traits": { "smithy.api#required": {} } }
      }
    }
  }
}`

func loadValidatorsAST(test *testing.T) *smithy.AST {
	var ast smithy.AST
	if err := json.Unmarshal([]byte(validatorsModel), &ast); err != nil {
		test.Fatalf("failed to parse fixture model: %v", err)
	}
	return &ast
}

func TestGenerateValidatorRequiresMarkedMembers(test *testing.T) {
	ast := loadValidatorsAST(test)
	ctx := NewGenContext(ast, "", "Acme", "acme", "/tmp/out")
	w := NewCodeWriter("validators.rb")
	if err := GenerateValidator(ctx, w, "example#Widget"); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	text := w.Text()
	if !strings.Contains(text, "if input.name.nil?") {
		test.Errorf("expected a required-member nil check for name, got:\n%s", text)
	}
	if strings.Contains(text, "if input.tag.nil?") {
		test.Errorf("did not expect a required-member nil check for the optional tag member, got:\n%s", text)
	}
}

func TestGenerateValidatorRecursesIntoNestedStructure(test *testing.T) {
	ast := loadValidatorsAST(test)
	ctx := NewGenContext(ast, "", "Acme", "acme", "/tmp/out")
	w := NewCodeWriter("validators.rb")
	if err := GenerateValidator(ctx, w, "example#Widget"); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	text := w.Text()
	if !strings.Contains(text, "OwnerValidator.validate!(input.owner, context:") {
		test.Errorf("expected a recursive call into OwnerValidator, got:\n%s", text)
	}
}

func TestGenerateValidatorRecursesIntoListElements(test *testing.T) {
	ast := loadValidatorsAST(test)
	ctx := NewGenContext(ast, "", "Acme", "acme", "/tmp/out")
	w := NewCodeWriter("validators.rb")
	if err := GenerateValidator(ctx, w, "example#Widget"); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	text := w.Text()
	if !strings.Contains(text, "unless input.accessories.is_a?(Array)") {
		test.Errorf("expected a type check for the accessories list, got:\n%s", text)
	}
	if !strings.Contains(text, "AccessoryValidator.validate!(v, context:") {
		test.Errorf("expected recursion into each accessory element, got:\n%s", text)
	}
}

func TestGenerateValidatorChecksScalarMemberKind(test *testing.T) {
	ast := loadValidatorsAST(test)
	ctx := NewGenContext(ast, "", "Acme", "acme", "/tmp/out")
	w := NewCodeWriter("validators.rb")
	if err := GenerateValidator(ctx, w, "example#Widget"); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	text := w.Text()
	if !strings.Contains(text, "unless input.tag.is_a?(String)") {
		test.Errorf("expected a type check for the optional string member, got:\n%s", text)
	}
}

func TestGenerateValidatorChecksStreamingMemberIsIOLike(test *testing.T) {
	ast := loadValidatorsAST(test)
	ctx := NewGenContext(ast, "", "Acme", "acme", "/tmp/out")
	w := NewCodeWriter("validators.rb")
	if err := GenerateValidator(ctx, w, "example#Widget"); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	text := w.Text()
	if !strings.Contains(text, "input.body.respond_to?(:read)") {
		test.Errorf("expected an IO-like check for the streaming member, got:\n%s", text)
	}
}

func TestGenerateValidationErrorClassIsArgumentError(test *testing.T) {
	w := NewCodeWriter("validators.rb")
	GenerateValidationErrorClass(w)
	text := w.Text()
	if !strings.Contains(text, "class ValidationError < ArgumentError") {
		test.Errorf("expected ValidationError to subclass ArgumentError, got:\n%s", text)
	}
}
