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

// timestampFormatFor resolves the wire format a timestamp member uses: an
// explicit timestampFormat trait (member-wins-over-target, the same
// resolution GetMemberTrait applies to every other binding trait) overrides
// defaultFormat, the format the binding location or protocol assumes when
// the model is silent.
func timestampFormatFor(ctx *GenContext, ownerId string, memberName string, defaultFormat string) string {
	if s := ctx.AST.GetMemberTrait(ownerId, memberName, "smithy.api#timestampFormat").AsString(); s != "" {
		return s
	}
	return defaultFormat
}

// timestampBuildExpr renders a Ruby Time value (expr) as its wire form per
// format.
func timestampBuildExpr(format string, expr string) string {
	switch format {
	case "epoch-seconds":
		return expr + ".to_i"
	case "http-date":
		return expr + ".httpdate"
	default: // "date-time"
		return expr + ".utc.iso8601"
	}
}

// timestampParseExpr renders a raw wire value (expr) back into a Ruby Time.
func timestampParseExpr(format string, expr string) string {
	switch format {
	case "epoch-seconds":
		return "Time.at(" + expr + ".to_i)"
	case "http-date":
		return "Time.httpdate(" + expr + ")"
	default: // "date-time"
		return "Time.iso8601(" + expr + ")"
	}
}

// memberTargetShape resolves the shape ownerId's memberName member targets,
// or nil if either is unresolvable.
func memberTargetShape(ctx *GenContext, ownerId string, memberName string) *smithy.Shape {
	return resolveShape(ctx.AST, targetIdOf(ctx, ownerId, memberName))
}

// resolveShape resolves id to its shape the way a member target must be
// resolved: a model-declared shape comes back as-is, a Smithy prelude
// reference (smithy.api#String and friends, never declared in the model's
// own shapes map) is synthesized to the scalar shape its id implies, and
// anything else (a dangling reference, or an empty id) comes back nil.
func resolveShape(ast *smithy.AST, id string) *smithy.Shape {
	if id == "" {
		return nil
	}
	if shape := ast.GetShape(id); shape != nil {
		return shape
	}
	if smithy.IsPreludeType(id) {
		return preludeShape(id)
	}
	return nil
}

// targetIdOf returns the shape id ownerId's memberName member targets, or
// "" if either is unresolvable.
func targetIdOf(ctx *GenContext, ownerId string, memberName string) string {
	owner := ctx.AST.GetShape(ownerId)
	if owner == nil || owner.Members == nil {
		return ""
	}
	m := owner.Members.Get(memberName)
	if m == nil {
		return ""
	}
	return m.Target
}
