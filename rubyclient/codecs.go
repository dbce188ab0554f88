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
	"strings"
)

// CollectCodecShapes returns every structure, union, list, set, and map
// shape reachable from the service's operations (transitively, through
// member targets), in ast.Walk's deterministic DFS order, for the builder
// to emit a shape-level codec for.
func CollectCodecShapes(ctx *GenContext) ([]string, error) {
	order, err := ctx.AST.Walk(ctx.ServiceId)
	if err != nil {
		return nil, err
	}
	var shapes []string
	for _, id := range order {
		shape := ctx.AST.GetShape(id)
		if shape == nil {
			continue
		}
		switch shape.Type {
		case "structure", "union", "list", "set", "map":
			shapes = append(shapes, id)
		}
	}
	return shapes, nil
}

// codecClassName is the Ruby class id's build/parse pair lives in.
func codecClassName(ctx *GenContext, id string) string {
	shape := ctx.AST.GetShape(id)
	kind := "structure"
	if shape != nil {
		kind = shape.Type
	}
	return ctx.Symbols.ShapeSymbol(id, kind).Name + "Codec"
}

// GenerateShapeCodecs emits one Ruby class per id in shapeIds with a
// self.build(value)/self.parse(value) class-method pair: build turns the
// shape's Ruby representation (Struct/union variant/Array/Hash) into a
// JSON-ready Hash/Array/scalar, parse does the reverse. bodyTimestampFormat
// is the protocol's default wire format for a timestamp member with no
// explicit timestampFormat trait of its own.
func GenerateShapeCodecs(ctx *GenContext, w *CodeWriter, shapeIds []string, bodyTimestampFormat string) error {
	for _, id := range shapeIds {
		if err := generateShapeCodec(ctx, w, id, bodyTimestampFormat); err != nil {
			return err
		}
		w.Blank()
	}
	return nil
}

func generateShapeCodec(ctx *GenContext, w *CodeWriter, id string, bodyTimestampFormat string) error {
	shape, err := ctx.AST.ExpectShape(id)
	if err != nil {
		return err
	}
	switch shape.Type {
	case "structure":
		return generateStructureCodec(ctx, w, id, bodyTimestampFormat)
	case "union":
		return generateUnionCodec(ctx, w, id, bodyTimestampFormat)
	case "list", "set":
		return generateListCodec(ctx, w, id, bodyTimestampFormat)
	case "map":
		return generateMapCodec(ctx, w, id, bodyTimestampFormat)
	}
	return nil
}

// valueBuildExprForTarget renders expr (a Ruby runtime value targeting
// shape targetId) as its JSON-ready counterpart: composite shapes delegate
// to their own codec class, timestamps format per bodyTimestampFormat,
// every other scalar passes through unchanged (JSON.generate already knows
// how to render strings/numbers/booleans).
func valueBuildExprForTarget(ctx *GenContext, targetId string, expr string, bodyTimestampFormat string) string {
	target := resolveShape(ctx.AST, targetId)
	if target == nil {
		return expr
	}
	switch target.Type {
	case "structure", "union", "list", "set", "map":
		return fmt.Sprintf("%s.build(%s)", codecClassName(ctx, targetId), expr)
	case "timestamp":
		return timestampBuildExpr(bodyTimestampFormat, expr)
	default:
		return expr
	}
}

// valueParseExprForTarget is the inverse of valueBuildExprForTarget.
func valueParseExprForTarget(ctx *GenContext, targetId string, expr string, bodyTimestampFormat string) string {
	target := resolveShape(ctx.AST, targetId)
	if target == nil {
		return expr
	}
	switch target.Type {
	case "structure", "union", "list", "set", "map":
		return fmt.Sprintf("%s.parse(%s)", codecClassName(ctx, targetId), expr)
	case "timestamp":
		return timestampParseExpr(bodyTimestampFormat, expr)
	default:
		return expr
	}
}

// bodyValueBuildExpr is valueBuildExprForTarget for a named member, honoring
// an explicit per-member timestampFormat override.
func bodyValueBuildExpr(ctx *GenContext, ownerId string, memberName string, expr string, bodyTimestampFormat string) string {
	targetId := targetIdOf(ctx, ownerId, memberName)
	if target := resolveShape(ctx.AST, targetId); target != nil && target.Type == "timestamp" {
		format := timestampFormatFor(ctx, ownerId, memberName, bodyTimestampFormat)
		return timestampBuildExpr(format, expr)
	}
	return valueBuildExprForTarget(ctx, targetId, expr, bodyTimestampFormat)
}

// bodyValueParseExpr is the inverse of bodyValueBuildExpr.
func bodyValueParseExpr(ctx *GenContext, ownerId string, memberName string, expr string, bodyTimestampFormat string) string {
	targetId := targetIdOf(ctx, ownerId, memberName)
	if target := resolveShape(ctx.AST, targetId); target != nil && target.Type == "timestamp" {
		format := timestampFormatFor(ctx, ownerId, memberName, bodyTimestampFormat)
		return timestampParseExpr(format, expr)
	}
	return valueParseExprForTarget(ctx, targetId, expr, bodyTimestampFormat)
}

func generateStructureCodec(ctx *GenContext, w *CodeWriter, id string, bodyTimestampFormat string) error {
	members, err := ctx.AST.OrderedMembers(id)
	if err != nil {
		return err
	}
	sym := ctx.Symbols.ShapeSymbol(id, "structure")
	w.OpenBlock(fmt.Sprintf("class %s", codecClassName(ctx, id)), "end")
	w.OpenBlock("def self.build(input)", "end")
	w.Write("return nil if input.nil?")
	w.Write("hash = {}")
	for _, m := range members {
		member := "input." + MemberName(m.Name)
		w.OpenBlock(fmt.Sprintf("unless %s.nil?", member), "end")
		w.Write("hash[%q] = %s", m.Name, bodyValueBuildExpr(ctx, id, m.Name, member, bodyTimestampFormat))
		w.CloseBlock()
	}
	w.Write("hash")
	w.CloseBlock()
	w.Blank()
	w.OpenBlock("def self.parse(data)", "end")
	w.Write("return nil if data.nil?")
	var args []string
	for _, m := range members {
		expr := fmt.Sprintf("data[%q]", m.Name)
		args = append(args, fmt.Sprintf("%s: %s", MemberName(m.Name), bodyValueParseExpr(ctx, id, m.Name, expr, bodyTimestampFormat)))
	}
	w.Write("%s.new(%s)", sym.Name, strings.Join(args, ", "))
	w.CloseBlock()
	w.CloseBlock()
	return nil
}

func generateUnionCodec(ctx *GenContext, w *CodeWriter, id string, bodyTimestampFormat string) error {
	members, err := ctx.AST.OrderedMembers(id)
	if err != nil {
		return err
	}
	unionSym := ctx.Symbols.ShapeSymbol(id, "union")
	w.OpenBlock(fmt.Sprintf("class %s", codecClassName(ctx, id)), "end")
	w.OpenBlock("def self.build(input)", "end")
	w.Write("return nil if input.nil?")
	for _, m := range members {
		variant := ctx.Symbols.ShapeSymbol(m.Member.Target, "structure")
		w.OpenBlock(fmt.Sprintf("if input.is_a?(%s::%s)", unionSym.Name, variant.Name), "end")
		w.Write("return { %q => %s }", m.Name, bodyValueBuildExpr(ctx, id, m.Name, "input.value", bodyTimestampFormat))
		w.CloseBlock()
	}
	w.Write("{ input.name => input.value }")
	w.CloseBlock()
	w.Blank()
	w.OpenBlock("def self.parse(data)", "end")
	w.Write("return nil if data.nil?")
	for _, m := range members {
		variant := ctx.Symbols.ShapeSymbol(m.Member.Target, "structure")
		w.OpenBlock(fmt.Sprintf("if data.key?(%q)", m.Name), "end")
		w.Write("return %s::%s.new(%s)", unionSym.Name, variant.Name, bodyValueParseExpr(ctx, id, m.Name, fmt.Sprintf("data[%q]", m.Name), bodyTimestampFormat))
		w.CloseBlock()
	}
	w.Write("key = data.keys.first")
	w.Write("%s::Unknown.new(key, data[key])", unionSym.Name)
	w.CloseBlock()
	w.CloseBlock()
	return nil
}

func generateListCodec(ctx *GenContext, w *CodeWriter, id string, bodyTimestampFormat string) error {
	shape, err := ctx.AST.ExpectShape(id)
	if err != nil {
		return err
	}
	sparse := ctx.AST.HasShapeTrait(id, "smithy.api#sparse")
	elementTarget := ""
	if shape.Member != nil {
		elementTarget = shape.Member.Target
	}
	buildExpr := valueBuildExprForTarget(ctx, elementTarget, "v", bodyTimestampFormat)
	parseExpr := valueParseExprForTarget(ctx, elementTarget, "v", bodyTimestampFormat)
	w.OpenBlock(fmt.Sprintf("class %s", codecClassName(ctx, id)), "end")
	w.OpenBlock("def self.build(input)", "end")
	w.Write("return nil if input.nil?")
	if sparse {
		w.Write("input.map { |v| v.nil? ? nil : %s }", buildExpr)
	} else {
		w.Write("input.compact.map { |v| %s }", buildExpr)
	}
	w.CloseBlock()
	w.Blank()
	w.OpenBlock("def self.parse(data)", "end")
	w.Write("return nil if data.nil?")
	if sparse {
		w.Write("data.map { |v| v.nil? ? nil : %s }", parseExpr)
	} else {
		w.Write("data.compact.map { |v| %s }", parseExpr)
	}
	w.CloseBlock()
	w.CloseBlock()
	return nil
}

func generateMapCodec(ctx *GenContext, w *CodeWriter, id string, bodyTimestampFormat string) error {
	shape, err := ctx.AST.ExpectShape(id)
	if err != nil {
		return err
	}
	sparse := ctx.AST.HasShapeTrait(id, "smithy.api#sparse")
	valueTarget := ""
	if shape.Value != nil {
		valueTarget = shape.Value.Target
	}
	buildExpr := valueBuildExprForTarget(ctx, valueTarget, "v", bodyTimestampFormat)
	parseExpr := valueParseExprForTarget(ctx, valueTarget, "v", bodyTimestampFormat)
	w.OpenBlock(fmt.Sprintf("class %s", codecClassName(ctx, id)), "end")
	w.OpenBlock("def self.build(input)", "end")
	w.Write("return nil if input.nil?")
	w.OpenBlock("input.each_with_object({}) do |(k, v), hash|", "end")
	if sparse {
		w.Write("hash[k.to_s] = v.nil? ? nil : %s", buildExpr)
	} else {
		w.Write("hash[k.to_s] = %s unless v.nil?", buildExpr)
	}
	w.CloseBlock()
	w.CloseBlock()
	w.Blank()
	w.OpenBlock("def self.parse(data)", "end")
	w.Write("return nil if data.nil?")
	w.OpenBlock("data.each_with_object({}) do |(k, v), hash|", "end")
	if sparse {
		w.Write("hash[k] = v.nil? ? nil : %s", parseExpr)
	} else {
		w.Write("hash[k] = %s unless v.nil?", parseExpr)
	}
	w.CloseBlock()
	w.CloseBlock()
	w.CloseBlock()
	return nil
}
