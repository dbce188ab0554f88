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

// httpOutputBindings mirrors httpBoundMembers for the response side: every
// output member is either bound to a header, the response code, the body
// payload, or falls into the remaining-members body structure.
type httpOutputBindings struct {
	Headers       []string
	PrefixHeaders string
	ResponseCode  string
	Payload       string
	Body          []string
}

func classifyHttpOutputBindings(ast *smithy.AST, shapeId string) (*httpOutputBindings, error) {
	members, err := ast.OrderedMembers(shapeId)
	if err != nil {
		return nil, err
	}
	out := &httpOutputBindings{}
	for _, m := range members {
		switch {
		case ast.HasMemberTrait(shapeId, m.Name, "smithy.api#httpResponseCode"):
			out.ResponseCode = m.Name
		case ast.HasMemberTrait(shapeId, m.Name, "smithy.api#httpPrefixHeaders"):
			out.PrefixHeaders = m.Name
		case ast.HasMemberTrait(shapeId, m.Name, "smithy.api#httpHeader"):
			out.Headers = append(out.Headers, m.Name)
		case ast.HasMemberTrait(shapeId, m.Name, "smithy.api#httpPayload"):
			out.Payload = m.Name
		default:
			out.Body = append(out.Body, m.Name)
		}
	}
	return out, nil
}

// HttpParserGenerator is the response-side counterpart to
// HttpBuilderGenerator: shared across every JSON-over-HTTP protocol since
// header/status binding rules do not vary by protocol, only body framing
// does (and body framing is handled by the protocol's own serializer,
// invoked from emitBodyParser below). BodyTimestampFormat is the protocol's
// default wire format for a body timestamp member with no explicit
// timestampFormat trait; the zero value falls back to date-time.
type HttpParserGenerator struct {
	BodyTimestampFormat string
}

func (g HttpParserGenerator) GenerateOperationParser(ctx *GenContext, w *CodeWriter, opId string) error {
	op := ctx.AST.GetShape(opId)
	if op == nil {
		return &smithy.ModelIntegrityError{ShapeId: opId}
	}
	opName := ctx.Symbols.ShapeSymbol(opId, "operation").Name

	var outputId string
	var bindings *httpOutputBindings
	if op.Output != nil {
		outputId = op.Output.Target
		var err error
		bindings, err = classifyHttpOutputBindings(ctx.AST, outputId)
		if err != nil {
			return err
		}
	} else {
		bindings = &httpOutputBindings{}
	}

	w.OpenBlock(fmt.Sprintf("def parse_%s(response)", MemberName(opName)), "end")
	w.Write("output = {}")
	for _, name := range bindings.Headers {
		headerName := ctx.AST.GetMemberTrait(outputId, name, "smithy.api#httpHeader").AsString()
		w.OpenBlock(fmt.Sprintf("if response.headers.key?(%q)", headerName), "end")
		w.Write("output[:%s] = %s", MemberName(name), headerParseExpr(ctx, outputId, name, fmt.Sprintf("response.headers[%q]", headerName)))
		w.CloseBlock()
	}
	if bindings.PrefixHeaders != "" {
		prefix := ctx.AST.GetMemberTrait(outputId, bindings.PrefixHeaders, "smithy.api#httpPrefixHeaders").AsString()
		w.Write("output[:%s] = {}", MemberName(bindings.PrefixHeaders))
		w.OpenBlock("response.headers.each do |k, v|", "end")
		w.OpenBlock(fmt.Sprintf("if k.start_with?(%q)", prefix), "end")
		w.Write("output[:%s][k[%d..-1]] = v", MemberName(bindings.PrefixHeaders), len(prefix))
		w.CloseBlock()
		w.CloseBlock()
	}
	if bindings.ResponseCode != "" {
		w.Write("output[:%s] = response.status", MemberName(bindings.ResponseCode))
	}
	emitBodyParser(ctx, w, outputId, bindings, g.BodyTimestampFormat)
	w.Write("%s.new(**output)", ctx.Symbols.ShapeSymbol(outputId, "structure").Name)
	w.CloseBlock()
	return nil
}

// headerParseExpr is the inverse of headerValueExpr: mediaType headers are
// base64-decoded, list/set headers are split on quote-aware commas, a
// timestamp parses per timestampFormat (default http-date, explicit
// override wins), everything else passes through as the raw header string.
func headerParseExpr(ctx *GenContext, ownerId string, memberName string, expr string) string {
	if ctx.AST.HasMemberTrait(ownerId, memberName, "smithy.api#mediaType") {
		return fmt.Sprintf("Base64.strict_decode64(%s)", expr)
	}
	targetShape := memberTargetShape(ctx, ownerId, memberName)
	if targetShape != nil && (targetShape.Type == "list" || targetShape.Type == "set") {
		return fmt.Sprintf("Params.split_header_list(%s)", expr)
	}
	if targetShape != nil && targetShape.Type == "timestamp" {
		format := timestampFormatFor(ctx, ownerId, memberName, "http-date")
		return timestampParseExpr(format, expr)
	}
	return expr
}

// emitBodyParser parses the response body. A single httpPayload member that
// targets a structure/union deserializes through its own shape codec; any
// other httpPayload member (blob/string/document) is assigned the raw body.
// A set of unbound members is parsed once as a JSON hash, then each member
// is pulled through its own codec-aware value expression, rather than a
// flat, non-recursive copy of raw decoded fields.
func emitBodyParser(ctx *GenContext, w *CodeWriter, outputId string, b *httpOutputBindings, bodyTimestampFormat string) {
	switch {
	case b.Payload != "":
		target := memberTargetShape(ctx, outputId, b.Payload)
		if target != nil && (target.Type == "structure" || target.Type == "union") {
			w.Write("output[:%s] = %s.parse(JSON.parse(response.body))", MemberName(b.Payload), codecClassName(ctx, targetIdOf(ctx, outputId, b.Payload)))
		} else {
			w.Write("output[:%s] = response.body", MemberName(b.Payload))
		}
	case len(b.Body) > 0:
		w.Write("data = response.body.nil? || response.body.empty? ? {} : JSON.parse(response.body)")
		for _, name := range b.Body {
			expr := fmt.Sprintf("data[%q]", name)
			w.Write("output[:%s] = %s", MemberName(name), bodyValueParseExpr(ctx, outputId, name, expr, bodyTimestampFormat))
		}
	}
}

// GenerateErrorDispatch emits a protocol's error-shape dispatch: given a
// response already known to carry an error (by status code or a protocol-
// specific discriminator field), resolve it to one of the operation's
// declared error shapes, falling back to a generic ApiError for an
// unrecognized code.
func (HttpParserGenerator) GenerateErrorDispatch(ctx *GenContext, w *CodeWriter, opId string, discriminatorExpr string) error {
	op := ctx.AST.GetShape(opId)
	if op == nil {
		return &smithy.ModelIntegrityError{ShapeId: opId}
	}
	w.OpenBlock("case "+discriminatorExpr, "end")
	for _, errRef := range op.Errors {
		code := errorCode(errRef.Target)
		sym := ctx.Symbols.ShapeSymbol(errRef.Target, "structure")
		w.Write("when %q", code)
		w.indentOnce(func() {
			w.Write("return %s.new(response)", sym.Name)
		})
	}
	w.Write("else")
	w.indentOnce(func() {
		w.Write("return ApiError.new(response)")
	})
	w.CloseBlock()
	return nil
}

func errorCode(errId string) string {
	name := errId
	if i := lastHash(errId); i >= 0 {
		name = errId[i+1:]
	}
	return name
}

func lastHash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '#' {
			return i
		}
	}
	return -1
}

// indentOnce runs fn with one extra indent level, used for a single
// sub-block line inside a `case`/`when` arm without needing a dedicated
// opener/closer pair tracked on the block stack.
func (w *CodeWriter) indentOnce(fn func()) {
	w.indent++
	fn()
	w.indent--
}
