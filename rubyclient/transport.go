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

import "github.com/boynton/smithyruby/smithy"

// ApplicationTransport names the Ruby request/response/connection classes
// a protocol generator builds against. The config keys every generated
// client exposes come from BaseConfigKeys, not from this struct.
type ApplicationTransport struct {
	RequestClass  string
	ResponseClass string
	ClientClass   string
}

func NewHttpApplicationTransport(module string) *ApplicationTransport {
	return &ApplicationTransport{
		RequestClass:  module + "::HTTP::Request",
		ResponseClass: module + "::HTTP::Response",
		ClientClass:   module + "::HTTP::Client",
	}
}

// BaseConfigKeys are the config keys every generated client exposes, wired
// by the transport layer rather than any individual middleware.
func BaseConfigKeys() []ConfigKey {
	return []ConfigKey{
		{Name: "logger", Type: "Logger", Docs: "Logger to use for the client.", AllowOperationOverride: false},
		{Name: "log_level", Type: "Symbol", Default: ":info", Docs: "Default log level to use.", AllowOperationOverride: false},
		{Name: "http_wire_trace", Type: "boolean", Default: "false", Docs: "Log wire-level HTTP traffic.", AllowOperationOverride: false},
		{Name: "endpoint", Type: "String", Docs: "Endpoint to send requests to.", AllowOperationOverride: true},
	}
}

// isEventStreaming reports whether member carries the streaming trait and
// targets a union (Smithy's signal for an event stream, as opposed to a
// plain blob/document streaming payload, which still has a finite,
// measurable length and so still gets Content-Length).
func isEventStreaming(ast *smithy.AST, ownerId string, memberName string) bool {
	if !ast.HasMemberTrait(ownerId, memberName, "smithy.api#streaming") {
		return false
	}
	member := ast.GetShape(ownerId)
	if member == nil || member.Members == nil {
		return false
	}
	m := member.Members.Get(memberName)
	if m == nil {
		return false
	}
	target := ast.GetShape(m.Target)
	return target != nil && target.Type == "union"
}

// DefaultMiddleware builds the fixed set of middleware every HTTP-protocol
// client carries, ContentLength skipped for event-streaming payloads and
// ContentMD5 gated on the httpChecksumRequired trait, both read directly
// off the operation's input shape.
func DefaultMiddleware(ast *smithy.AST, serviceId string) []*MiddlewareRecord {
	payloadMemberName := func(opId string) (string, bool) {
		op := ast.GetShape(opId)
		if op == nil || op.Input == nil {
			return "", false
		}
		input := ast.GetShape(op.Input.Target)
		if input == nil || input.Members == nil {
			return "", false
		}
		for _, name := range input.Members.Keys() {
			if ast.HasMemberTrait(op.Input.Target, name, "smithy.api#httpPayload") {
				return name, true
			}
		}
		return "", false
	}

	return []*MiddlewareRecord{
		{
			Klass: "Build",
			Step:  StepSerialize,
			Order: 0,
		},
		{
			Klass: "ContentLength",
			Step:  StepBuild,
			Order: 10,
			OperationPredicate: func(_ string, opId string) bool {
				name, ok := payloadMemberName(opId)
				if !ok {
					return true
				}
				op := ast.GetShape(opId)
				return !isEventStreaming(ast, op.Input.Target, name)
			},
		},
		{
			Klass: "ContentMD5",
			Step:  StepBuild,
			Order: 20,
			OperationPredicate: func(_ string, opId string) bool {
				op := ast.GetShape(opId)
				return op != nil && ast.HasShapeTrait(opId, "smithy.api#httpChecksumRequired")
			},
		},
		{
			Klass: "Send",
			Step:  StepFinalize,
			Order: 0,
			ClientConfig: []ConfigKey{
				{Name: "http_wire_trace", Type: "boolean", Default: "false", AllowOperationOverride: false},
			},
		},
		{
			Klass: "Parse",
			Step:  StepDeserialize,
			Order: 0,
		},
	}
}
