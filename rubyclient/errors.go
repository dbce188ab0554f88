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

	"github.com/boynton/smithyruby/smithy"
)

// ValidationError reports a problem at a dotted member path, either while
// validating generation input (a model that fails ast.Validate) or while
// emitting a generated client's own validate! method, whose runtime
// errors follow the same "path: message" shape as this type's Error().
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// NotImplemented marks a model feature this generator recognizes but does
// not yet emit code for (a resource lifecycle shape with no registered
// handling, an unsupported trait combination). It is always a generator
// limitation, never a malformed model.
type NotImplemented struct {
	Feature string
}

func (e *NotImplemented) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Feature)
}

// ErrorShapeInfo describes one Smithy error shape: its HTTP status code
// and whether the server or the client is at fault, per the error trait.
type ErrorShapeInfo struct {
	ShapeId    string
	Code       string
	HttpStatus int
	Fault      string // "client" or "server"
	Retryable  bool
}

// CollectErrors returns ErrorShapeInfo for every error shape reachable from
// the service (via its operations' declared errors), in first-seen order:
// operations in TopDownOperations order, each operation's errors in model
// order, a shape shared by several operations listed once.
func CollectErrors(ast *smithy.AST, serviceId string) ([]ErrorShapeInfo, error) {
	opIds, err := ast.TopDownOperations(serviceId)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var infos []ErrorShapeInfo
	for _, opId := range opIds {
		op := ast.GetShape(opId)
		if op == nil {
			continue
		}
		for _, ref := range op.Errors {
			if seen[ref.Target] {
				continue
			}
			seen[ref.Target] = true
			infos = append(infos, errorShapeInfo(ast, ref.Target))
		}
	}
	return infos, nil
}

func errorShapeInfo(ast *smithy.AST, errId string) ErrorShapeInfo {
	fault := ast.GetShapeTrait(errId, "smithy.api#error").AsString()
	status := 400
	if fault == "server" {
		status = 500
	}
	if v := ast.GetShapeTrait(errId, "smithy.api#httpError"); v != nil {
		status = v.AsInt()
	}
	retryable := ast.HasShapeTrait(errId, "smithy.api#retryable")
	return ErrorShapeInfo{
		ShapeId:    errId,
		Code:       shapeLocalName(errId),
		HttpStatus: status,
		Fault:      fault,
		Retryable:  retryable,
	}
}

// GenerateErrorClasses emits a Ruby exception class for every collected
// error shape, each inheriting from a shared ApiError base so callers can
// rescue either a specific error or the whole family. An error shape's
// initialize takes the raw response, parses its body through the shape's
// own codec, and exposes every modeled member as an attr_reader rather than
// folding the whole response into a single "message" field.
func GenerateErrorClasses(ctx *GenContext, w *CodeWriter, errors []ErrorShapeInfo) {
	w.OpenBlock("class ApiError < StandardError", "end")
	w.Write("attr_reader :http_status, :retryable")
	w.Blank()
	w.OpenBlock("def initialize(message = nil, http_status: nil, retryable: false)", "end")
	w.Write("super(message)")
	w.Write("@http_status = http_status")
	w.Write("@retryable = retryable")
	w.CloseBlock()
	w.CloseBlock()
	w.Blank()
	for _, e := range errors {
		generateErrorClass(ctx, w, e)
		w.Blank()
	}
}

func generateErrorClass(ctx *GenContext, w *CodeWriter, e ErrorShapeInfo) {
	members, err := ctx.AST.OrderedMembers(e.ShapeId)
	if err != nil {
		members = nil
	}
	sym := ctx.Symbols.ShapeSymbol(e.ShapeId, "structure")
	hasMessage := false
	var attrs []string
	for _, m := range members {
		if MemberName(m.Name) == "message" {
			hasMessage = true
			continue
		}
		attrs = append(attrs, ":"+MemberName(m.Name))
	}
	WriteDocComment(w, ctx.AST, e.ShapeId)
	w.OpenBlock(fmt.Sprintf("class %s < ApiError", sym.Name), "end")
	if len(attrs) > 0 {
		w.Write("attr_reader %s", strings.Join(attrs, ", "))
		w.Blank()
	}
	w.OpenBlock("def initialize(response)", "end")
	w.Write("body = response.body.nil? || response.body.to_s.empty? ? {} : JSON.parse(response.body)")
	w.Write("parsed = %s.parse(body)", codecClassName(ctx, e.ShapeId))
	for _, m := range members {
		if MemberName(m.Name) == "message" {
			continue
		}
		w.Write("@%s = parsed.%s", MemberName(m.Name), MemberName(m.Name))
	}
	message := "nil"
	if hasMessage {
		message = "parsed.message"
	}
	w.Write("super(%s, http_status: response.status, retryable: %t)", message, e.Retryable)
	w.CloseBlock()
	w.CloseBlock()
}
