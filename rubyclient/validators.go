/*
Copyright 2021 Lee R. Boynton

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package rubyclient

import (
	"fmt"

	"github.com/boynton/smithyruby/smithy"
)

// GenerateValidationErrorClass emits the Ruby exception validate! raises.
// It is written once per client, not per shape.
func GenerateValidationErrorClass(w *CodeWriter) {
	w.OpenBlock("class ValidationError < ArgumentError", "end")
	w.CloseBlock()
}

// rubyClassCheck names the Ruby class a scalar-kind member's runtime value
// must satisfy, or "" for a shape kind this validator does not type-check
// directly (structures and unions recurse into their own validator instead;
// documents have no fixed shape; booleans get no class check).
func rubyClassCheck(shapeType string) string {
	switch shapeType {
	case "string", "enum", "blob":
		return "String"
	case "byte", "short", "integer", "long", "intEnum":
		return "Integer"
	case "float", "double":
		return "Float"
	case "bigInteger", "bigDecimal":
		return "Numeric"
	case "timestamp":
		return "Time"
	case "list", "set":
		return "Array"
	case "map":
		return "Hash"
	default:
		return ""
	}
}

// GenerateValidator emits a Ruby `self.validate!(input, context:)` class
// method for a structure shape: every required member must be present and
// non-nil, a scalar member's runtime class must match its Smithy kind, a
// streaming member must look like an IO (respond to read), and a member
// targeting a structure/union recurses into that shape's own validator,
// through a list/set/map's element or value shape where that element
// itself is a structure/union. A growing dotted context path
// ("ListThings.filter") names exactly where the input went wrong.
func GenerateValidator(ctx *GenContext, w *CodeWriter, shapeId string) error {
	members, err := ctx.AST.OrderedMembers(shapeId)
	if err != nil {
		return err
	}
	sym := ctx.Symbols.ShapeSymbol(shapeId, "structure")
	w.OpenBlock(fmt.Sprintf("module %sValidator", sym.Name), "end")
	w.OpenBlock("def self.validate!(input, context:)", "end")
	for _, m := range members {
		memberCtx := fmt.Sprintf("\"#{context}.%s\"", m.Name)
		memberExpr := "input." + MemberName(m.Name)
		if ctx.AST.HasMemberTrait(shapeId, m.Name, "smithy.api#required") {
			w.OpenBlock(fmt.Sprintf("if %s.nil?", memberExpr), "end")
			w.Write("raise ValidationError, %s + \" is missing a required value\"", memberCtx)
			w.CloseBlock()
		}
		targetShape := resolveShape(ctx.AST, m.Member.Target)
		if targetShape == nil {
			continue
		}
		streaming := ctx.AST.HasMemberTrait(shapeId, m.Name, "smithy.api#streaming")
		if streaming {
			w.OpenBlock(fmt.Sprintf("unless %s.nil? || %s.respond_to?(:read)", memberExpr, memberExpr), "end")
			w.Write("raise ValidationError, %s + \" must be IO-like (respond to :read)\"", memberCtx)
			w.CloseBlock()
		} else {
			w.OpenBlock(fmt.Sprintf("unless %s.nil?", memberExpr), "end")
			emitMemberValidation(ctx, w, m.Member.Target, targetShape, memberExpr, memberCtx)
			w.CloseBlock()
		}
	}
	w.CloseBlock()
	w.CloseBlock()
	return nil
}

// emitMemberValidation emits the body of the "unless x.nil?" guard for one
// member: a type check for every shape kind this validator recognizes, plus
// recursion into a structure/union's own validator, or into a list/set/map's
// element or value shape when that element is itself a structure/union.
func emitMemberValidation(ctx *GenContext, w *CodeWriter, targetId string, targetShape *smithy.Shape, expr string, memberCtx string) {
	switch targetShape.Type {
	case "structure", "union":
		targetSym := ctx.Symbols.ShapeSymbol(targetId, targetShape.Type)
		w.Write("%sValidator.validate!(%s, context: %s)", targetSym.Name, expr, memberCtx)
	case "list", "set":
		w.Write("unless %s.is_a?(Array)", expr)
		w.indentOnce(func() {
			w.Write("raise ValidationError, %s + \" must be an Array\"", memberCtx)
		})
		w.Write("end")
		if targetShape.Member != nil {
			elementId := targetShape.Member.Target
			if elementShape := resolveShape(ctx.AST, elementId); elementShape != nil &&
				(elementShape.Type == "structure" || elementShape.Type == "union") {
				elementSym := ctx.Symbols.ShapeSymbol(elementId, elementShape.Type)
				w.OpenBlock(fmt.Sprintf("%s.each_with_index do |v, i|", expr), "end")
				w.Write("%sValidator.validate!(v, context: %s + \"[#{i}]\")", elementSym.Name, memberCtx)
				w.CloseBlock()
			}
		}
	case "map":
		w.Write("unless %s.is_a?(Hash)", expr)
		w.indentOnce(func() {
			w.Write("raise ValidationError, %s + \" must be a Hash\"", memberCtx)
		})
		w.Write("end")
		if targetShape.Value != nil {
			valueId := targetShape.Value.Target
			if valueShape := resolveShape(ctx.AST, valueId); valueShape != nil &&
				(valueShape.Type == "structure" || valueShape.Type == "union") {
				valueSym := ctx.Symbols.ShapeSymbol(valueId, valueShape.Type)
				w.OpenBlock(fmt.Sprintf("%s.each do |k, v|", expr), "end")
				w.Write("%sValidator.validate!(v, context: %s + \".#{k}\")", valueSym.Name, memberCtx)
				w.CloseBlock()
			}
		}
	default:
		if class := rubyClassCheck(targetShape.Type); class != "" {
			w.Write("unless %s.is_a?(%s)", expr, class)
			w.indentOnce(func() {
				w.Write("raise ValidationError, %s + \" must be a %s\"", memberCtx, class)
			})
			w.Write("end")
		}
	}
}
