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

import "fmt"

// RailsJsonProtocolId is the Smithy trait shape id this generator
// recognizes as "railsjson". The binding rules it follows are the
// canonical HTTP-binding generator's (builders.go, parsers.go), including
// greedy label support: the historical railsjson-specific builder that
// lacked it is not reproduced here, since nothing in this model depends on
// that gap and every operation gets full label support instead.
const RailsJsonProtocolId = "example.protocols#railsJson1"

// railsJsonBodyTimestampFormat is railsjson's default wire format for a body
// timestamp member carrying no explicit timestampFormat trait.
const railsJsonBodyTimestampFormat = "epoch-seconds"

func init() {
	RegisterProtocol(&RailsJsonGenerator{
		builders: HttpBuilderGenerator{BodyTimestampFormat: railsJsonBodyTimestampFormat},
		parsers:  HttpParserGenerator{BodyTimestampFormat: railsJsonBodyTimestampFormat},
	})
}

// RailsJsonGenerator implements ProtocolGenerator for the railsjson wire
// protocol: JSON request/response bodies framed by the shared HTTP binding
// rules, with a fixed Content-Type header and the x-error-code response
// header used to resolve error responses to a specific error shape.
type RailsJsonGenerator struct {
	builders HttpBuilderGenerator
	parsers  HttpParserGenerator
}

func (g *RailsJsonGenerator) ProtocolId() string {
	return RailsJsonProtocolId
}

func (g *RailsJsonGenerator) ApplicationTransport() *ApplicationTransport {
	return nil // set by the orchestrator via NewHttpApplicationTransport(ctx.Module)
}

func (g *RailsJsonGenerator) GenerateBuilders(ctx *GenContext) error {
	opIds, err := ctx.AST.TopDownOperations(ctx.ServiceId)
	if err != nil {
		return err
	}
	codecShapes, err := CollectCodecShapes(ctx)
	if err != nil {
		return err
	}
	w := NewCodeWriter(ctx.Module + "/builders.rb")
	if err := GenerateShapeCodecs(ctx, w, codecShapes, g.builders.BodyTimestampFormat); err != nil {
		return err
	}
	w.OpenBlock("module Builders", "end")
	for _, opId := range opIds {
		if GetHttpTrait(ctx.AST, opId) == nil {
			continue
		}
		if err := g.builders.GenerateOperationBuilder(ctx, w, opId); err != nil {
			return err
		}
		w.Blank()
	}
	w.CloseBlock()
	return ctx.WriteFile(ctx.Module+"/builders.rb", w)
}

func (g *RailsJsonGenerator) GenerateParsers(ctx *GenContext) error {
	opIds, err := ctx.AST.TopDownOperations(ctx.ServiceId)
	if err != nil {
		return err
	}
	w := NewCodeWriter(ctx.Module + "/parsers.rb")
	w.OpenBlock("module Parsers", "end")
	for _, opId := range opIds {
		if GetHttpTrait(ctx.AST, opId) == nil {
			continue
		}
		if err := g.parsers.GenerateOperationParser(ctx, w, opId); err != nil {
			return err
		}
		w.Blank()
		op := ctx.AST.GetShape(opId)
		if op != nil && len(op.Errors) > 0 {
			opSym := ctx.Symbols.ShapeSymbol(opId, "operation")
			w.OpenBlock(fmt.Sprintf("def parse_%s_error(response)", MemberName(opSym.Name)), "end")
			if err := g.parsers.GenerateErrorDispatch(ctx, w, opId, "response.headers[\"x-error-code\"]"); err != nil {
				return err
			}
			w.CloseBlock()
			w.Blank()
		}
	}
	w.CloseBlock()
	return ctx.WriteFile(ctx.Module+"/parsers.rb", w)
}

// GenerateStubs emits one self.stub_x(overrides = {}) class method per
// operation: it deep-merges a caller-supplied overrides hash over the
// shape's own modeled default, then materializes the operation's output
// record from the merged fields, so a test can stub just the one field it
// cares about instead of restating the whole response.
func (g *RailsJsonGenerator) GenerateStubs(ctx *GenContext) error {
	opIds, err := ctx.AST.TopDownOperations(ctx.ServiceId)
	if err != nil {
		return err
	}
	sg := NewStubGenerator()
	w := NewCodeWriter(ctx.Module + "/stubs.rb")
	w.OpenBlock("module Stubs", "end")
	GenerateDeepMergeHelper(w)
	w.Blank()
	for _, opId := range opIds {
		val, err := sg.StubOperation(ctx.AST, opId)
		if err != nil {
			return err
		}
		op := ctx.AST.GetShape(opId)
		opSym := ctx.Symbols.ShapeSymbol(opId, "operation")
		w.OpenBlock(fmt.Sprintf("def self.stub_%s(overrides = {})", MemberName(opSym.Name)), "end")
		w.Write("defaults = %s", RenderRubyLiteral(val))
		w.Write("merged = deep_merge(defaults, overrides)")
		if op != nil && op.Output != nil {
			outSym := ctx.Symbols.ShapeSymbol(op.Output.Target, "structure")
			w.Write("%s.new(**merged)", outSym.Name)
		} else {
			w.Write("merged")
		}
		w.CloseBlock()
		w.Blank()
	}
	w.CloseBlock()
	return ctx.WriteFile(ctx.Module+"/stubs.rb", w)
}

func (g *RailsJsonGenerator) GenerateErrors(ctx *GenContext) error {
	errors, err := CollectErrors(ctx.AST, ctx.ServiceId)
	if err != nil {
		return err
	}
	w := NewCodeWriter(ctx.Module + "/errors.rb")
	GenerateErrorClasses(ctx, w, errors)
	return ctx.WriteFile(ctx.Module+"/errors.rb", w)
}

// ClientMiddleware adds the railsjson-specific Content-Type header
// middleware on top of DefaultMiddleware's protocol-agnostic set.
func (g *RailsJsonGenerator) ClientMiddleware(ctx *GenContext) []*MiddlewareRecord {
	records := DefaultMiddleware(ctx.AST, ctx.ServiceId)
	records = append(records, &MiddlewareRecord{
		Klass: "ContentType",
		Step:  StepBuild,
		Order: 5,
		AdditionalParams: map[string]string{"content_type": "application/json"},
	})
	return records
}
