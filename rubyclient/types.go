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
)

// GenerateStructureType emits a Ruby Struct.new-based data record for a
// structure shape: one keyword argument per member. A required member is
// marked only by a comment inside the Struct body; keyword_init leaves an
// absent member nil and does not raise.
func GenerateStructureType(ctx *GenContext, w *CodeWriter, shapeId string) error {
	members, err := ctx.AST.OrderedMembers(shapeId)
	if err != nil {
		return err
	}
	sym := ctx.Symbols.ShapeSymbol(shapeId, "structure")
	var names []string
	for _, m := range members {
		names = append(names, ":"+MemberName(m.Name))
	}
	WriteDocComment(w, ctx.AST, shapeId)
	w.Write("%s = Struct.new(%s, keyword_init: true) do", sym.Name, joinQuoted(names))
	w.indentOnce(func() {
		for _, m := range members {
			if ctx.AST.HasMemberTrait(shapeId, m.Name, "smithy.api#required") {
				w.Write("# %s is required", MemberName(m.Name))
			}
		}
	})
	w.Write("end")
	return nil
}

// GenerateUnionType emits a Ruby class hierarchy for a union shape: a base
// class per member variant plus an Unknown variant for forward
// compatibility with server-added members the client doesn't know about
// yet.
func GenerateUnionType(ctx *GenContext, w *CodeWriter, shapeId string) error {
	members, err := ctx.AST.OrderedMembers(shapeId)
	if err != nil {
		return err
	}
	sym := ctx.Symbols.ShapeSymbol(shapeId, "union")
	WriteDocComment(w, ctx.AST, shapeId)
	w.OpenBlock(fmt.Sprintf("module %s", sym.Name), "end")
	w.OpenBlock("class Unknown", "end")
	w.Write("attr_reader :name, :value")
	w.OpenBlock("def initialize(name, value)", "end")
	w.Write("@name = name")
	w.Write("@value = value")
	w.CloseBlock()
	w.CloseBlock()
	for _, m := range members {
		variant := ctx.Symbols.ShapeSymbol(m.Member.Target, "structure")
		w.OpenBlock(fmt.Sprintf("class %s < Struct.new(:value)", variant.Name), "end")
		w.CloseBlock()
	}
	w.CloseBlock()
	return nil
}

// GenerateType dispatches on shape.Type between GenerateStructureType and
// GenerateUnionType; list/set/map/enum shapes have no standalone Ruby
// class and are not handled here.
func GenerateType(ctx *GenContext, w *CodeWriter, shapeId string) error {
	shape, err := ctx.AST.ExpectShape(shapeId)
	if err != nil {
		return err
	}
	switch shape.Type {
	case "structure":
		return GenerateStructureType(ctx, w, shapeId)
	case "union":
		return GenerateUnionType(ctx, w, shapeId)
	default:
		return &NotImplemented{Feature: fmt.Sprintf("standalone Ruby type for shape kind %q", shape.Type)}
	}
}

func joinQuoted(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
