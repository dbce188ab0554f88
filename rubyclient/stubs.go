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
	"github.com/boynton/smithyruby/smithy"
)

// idempotencyTokenPlaceholder is what a stub emits for a member carrying
// smithy.api#idempotencyToken, in place of a live UUID. Determinism
// requires the same text on every run over the same model; a real client
// still generates a fresh token at request time, this placeholder is
// stub/test data only.
const idempotencyTokenPlaceholder = "00000000-0000-4000-8000-000000000000"

// StubGenerator builds example/default values for shapes, used both to
// populate a generated Stubs module (one hand-reviewable example response
// per operation) and by tests that exercise round-trip serialization.
//
// ast is set for the duration of one Default call; the visitor callback
// signature has no room for it, and the whole pipeline is single-threaded
// and synchronous, so a field is simpler than threading a context struct
// through every visitor callback.
type StubGenerator struct {
	ast     *smithy.AST
	visitor *ShapeVisitor
}

func NewStubGenerator() *StubGenerator {
	sg := &StubGenerator{}
	sg.visitor = &ShapeVisitor{
		Structure: sg.defaultStructure,
		Union:     sg.defaultUnion,
		List:      sg.defaultList,
		Set:       sg.defaultList,
		Map:       sg.defaultMap,
		Enum:      sg.defaultEnum,
		Scalar:    sg.defaultScalar,
		OnCycle: func(id string) (interface{}, error) {
			return nil, nil
		},
	}
	return sg
}

// Default returns a Ruby-literal-shaped value (string, int, float, bool,
// []interface{}, map[string]interface{}, or nil) describing the example
// instance of shapeId. The return type mirrors the eventual Ruby literal;
// rendering that value to Ruby source text is the caller's job.
func (sg *StubGenerator) Default(ast *smithy.AST, shapeId string, visited Visited) (interface{}, error) {
	sg.ast = ast
	return sg.visitor.Visit(ast, shapeId, visited)
}

func (sg *StubGenerator) defaultScalar(id string, shape *smithy.Shape, visited Visited) (interface{}, error) {
	switch shape.Type {
	case "boolean":
		return false, nil
	case "byte", "short", "integer", "long", "bigInteger":
		return 1, nil
	case "float", "double", "bigDecimal":
		return 1.0, nil
	case "string":
		return shapeLocalName(id), nil
	case "blob":
		return shapeLocalName(id), nil
	case "timestamp":
		return "now", nil
	case "document":
		return map[string]interface{}{shapeLocalName(id): []interface{}{0, 1, 2}}, nil
	default:
		return nil, nil
	}
}

func (sg *StubGenerator) defaultEnum(id string, shape *smithy.Shape, visited Visited) (interface{}, error) {
	if shape.Members == nil || len(shape.Members.Keys()) == 0 {
		return "", nil
	}
	first := shape.Members.Keys()[0]
	return EnumSymbolValue(first), nil
}

// defaultList builds a single-element list/set example. A list whose
// member carries the sparse trait gets a second, nil, element so the stub
// also demonstrates the sparse case; a non-sparse list gets no extra nil
// (its one element is nil only when the element shape is already on the
// visit path, i.e. a cycle).
func (sg *StubGenerator) defaultList(id string, shape *smithy.Shape, visited Visited) (interface{}, error) {
	if shape.Member == nil {
		return []interface{}{}, nil
	}
	elem, err := sg.visitor.Visit(sg.ast, shape.Member.Target, visited)
	if err != nil {
		return nil, err
	}
	if sg.ast.HasShapeTrait(id, "smithy.api#sparse") {
		return []interface{}{elem, nil}, nil
	}
	return []interface{}{elem}, nil
}

func (sg *StubGenerator) defaultMap(id string, shape *smithy.Shape, visited Visited) (interface{}, error) {
	if shape.Value == nil {
		return map[string]interface{}{}, nil
	}
	val, err := sg.visitor.Visit(sg.ast, shape.Value.Target, visited)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"test_key": val}, nil
}

func (sg *StubGenerator) defaultStructure(id string, shape *smithy.Shape, visited Visited) (interface{}, error) {
	return sg.fieldsOf(id, shape, visited, false)
}

func (sg *StubGenerator) defaultUnion(id string, shape *smithy.Shape, visited Visited) (interface{}, error) {
	return sg.fieldsOf(id, shape, visited, true)
}

// fieldsOf builds the member->value map shared by structure and union
// defaults; a union default only ever picks its first declared member,
// since a union instance carries exactly one variant.
func (sg *StubGenerator) fieldsOf(id string, shape *smithy.Shape, visited Visited, onlyFirst bool) (interface{}, error) {
	out := make(map[string]interface{})
	if shape.Members == nil {
		return out, nil
	}
	keys := shape.Members.Keys()
	if onlyFirst && len(keys) > 0 {
		keys = keys[:1]
	}
	for _, name := range keys {
		if sg.ast.HasMemberTrait(id, name, "smithy.api#idempotencyToken") {
			out[name] = idempotencyTokenPlaceholder
			continue
		}
		member := shape.Members.Get(name)
		val, err := sg.visitor.Visit(sg.ast, member.Target, visited)
		if err != nil {
			return nil, err
		}
		out[name] = val
	}
	return out, nil
}

// StubOperation builds the example output value for an operation's output
// shape, the value a generated Stubs module hands back for that operation
// when no caller-supplied stub overrides it.
func (sg *StubGenerator) StubOperation(ast *smithy.AST, opId string) (interface{}, error) {
	op, err := ast.ExpectShape(opId)
	if err != nil {
		return nil, err
	}
	if op.Output == nil {
		return map[string]interface{}{}, nil
	}
	return sg.Default(ast, op.Output.Target, make(Visited))
}

// GenerateDeepMergeHelper emits the Stubs.deep_merge class method every
// per-operation stub method calls to fold a caller-supplied override hash
// over its modeled default, recursing into nested hashes rather than
// replacing a whole nested structure for one overridden leaf field.
func GenerateDeepMergeHelper(w *CodeWriter) {
	w.OpenBlock("def self.deep_merge(base, overrides)", "end")
	w.Write("return overrides unless base.is_a?(Hash) && overrides.is_a?(Hash)")
	w.OpenBlock("base.merge(overrides) do |_key, b, o|", "end")
	w.Write("deep_merge(b, o)")
	w.CloseBlock()
	w.CloseBlock()
}

func shapeLocalName(id string) string {
	n := len(id) - 1
	for n >= 0 && id[n] != '#' {
		n--
	}
	if n < 0 {
		return id
	}
	return id[n+1:]
}
