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

// GenerateClient emits the Ruby client class: one method per operation,
// each building a middleware stack in (step, order) sequence and invoking
// it with the input, raising whatever error the transport or the parsed
// output carries.
func GenerateClient(ctx *GenContext, w *CodeWriter) error {
	if _, err := ctx.AST.ExpectShape(ctx.ServiceId); err != nil {
		return err
	}
	serviceSym := ctx.Symbols.ShapeSymbol(ctx.ServiceId, "service")
	opIds, err := ctx.AST.TopDownOperations(ctx.ServiceId)
	if err != nil {
		return err
	}

	w.OpenBlock(fmt.Sprintf("class %s", serviceSym.Name+"Client"), "end")
	w.OpenBlock("def initialize(config = {})", "end")
	w.Write("@config = Config.new(**config)")
	w.CloseBlock()
	w.Blank()
	for _, opId := range opIds {
		if err := generateOperationMethod(ctx, w, opId); err != nil {
			return err
		}
		w.Blank()
	}
	w.CloseBlock()
	return nil
}

func generateOperationMethod(ctx *GenContext, w *CodeWriter, opId string) error {
	opSym := ctx.Symbols.ShapeSymbol(opId, "operation")
	methodName := MemberName(opSym.Name)
	records := ctx.Stack.Resolve(ctx.ServiceId, opId)

	WriteDocComment(w, ctx.AST, opId)
	w.OpenBlock(fmt.Sprintf("def %s(params = {})", methodName), "end")
	w.Write("input = Params.coerce(params)")
	w.Write("%sValidator.validate!(input, context: %q)", inputStructName(ctx, opId), opSym.Name)
	w.Write("stack = MiddlewareStack.new")
	for _, rec := range records {
		w.Write("stack.use(%s)", rec.Klass)
	}
	w.Write("response = stack.call(self, input)")
	w.OpenBlock("if response.error", "end")
	w.Write("raise response.error")
	w.CloseBlock()
	w.Write("response.output")
	w.CloseBlock()
	return nil
}

func inputStructName(ctx *GenContext, opId string) string {
	op := ctx.AST.GetShape(opId)
	if op == nil || op.Input == nil {
		return "Object"
	}
	return ctx.Symbols.ShapeSymbol(op.Input.Target, "structure").Name
}
