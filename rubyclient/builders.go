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

// LabelBindingError means an httpLabel member could not be bound: either
// the URI template names a label with no matching input member, or the
// member it names is not marked required, which Smithy requires for every
// httpLabel member.
type LabelBindingError struct {
	Operation string
	Label     string
}

func (e *LabelBindingError) Error() string {
	return fmt.Sprintf("cannot bind label %q for operation %s: no required httpLabel member matches", e.Label, e.Operation)
}

// UriSegment is one '/'-delimited piece of an http trait's uri pattern.
type UriSegment struct {
	Literal string // set when this segment is not a label
	Label   string // set when this segment is a {label} or {label+}
	Greedy  bool
}

// UriPattern is a parsed http trait uri: path segments plus any literal
// query string carried after '?' in the pattern itself.
type UriPattern struct {
	Segments    []UriSegment
	StaticQuery string
}

// ParseUriPattern splits a Smithy http trait uri into its path segments and
// trailing literal query string. Labels are recognized as "{name}" (plain)
// or "{name+}" (greedy, matches one or more path segments including '/').
func ParseUriPattern(uri string) *UriPattern {
	path := uri
	static := ""
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		path = uri[:i]
		static = uri[i+1:]
	}
	p := &UriPattern{StaticQuery: static}
	for _, part := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]
			greedy := strings.HasSuffix(name, "+")
			if greedy {
				name = strings.TrimSuffix(name, "+")
			}
			p.Segments = append(p.Segments, UriSegment{Label: name, Greedy: greedy})
		} else {
			p.Segments = append(p.Segments, UriSegment{Literal: part})
		}
	}
	return p
}

// HttpTrait is the method/uri/code carried by a Smithy http trait.
type HttpTrait struct {
	Method string
	Uri    string
	Code   int
}

func GetHttpTrait(ast *smithy.AST, opId string) *HttpTrait {
	v := ast.GetShapeTrait(opId, "smithy.api#http")
	if v == nil {
		return nil
	}
	code := v.GetInt("code", 200)
	return &HttpTrait{Method: v.GetString("method"), Uri: v.GetString("uri"), Code: code}
}

// httpBoundMembers classifies an operation's input members by their HTTP
// binding trait. Members with no HTTP binding trait fall into Body (they
// serialize into a structure body), unless a single member is marked
// httpPayload, in which case that member alone is the body.
type httpBoundMembers struct {
	Labels        map[string]string // label name -> member name
	Query         []string          // member names bound with httpQuery
	QueryParams   string            // member name bound with httpQueryParams, if any
	Headers       []string          // member names bound with httpHeader
	PrefixHeaders string            // member name bound with httpPrefixHeaders, if any
	Payload       string            // member name bound with httpPayload, if any
	Body          []string          // remaining members, serialized as the body structure
}

func classifyHttpBindings(ast *smithy.AST, shapeId string) (*httpBoundMembers, error) {
	members, err := ast.OrderedMembers(shapeId)
	if err != nil {
		return nil, err
	}
	out := &httpBoundMembers{Labels: make(map[string]string)}
	for _, m := range members {
		switch {
		case ast.HasMemberTrait(shapeId, m.Name, "smithy.api#httpLabel"):
			out.Labels[m.Name] = m.Name
		case ast.HasMemberTrait(shapeId, m.Name, "smithy.api#httpQueryParams"):
			out.QueryParams = m.Name
		case ast.HasMemberTrait(shapeId, m.Name, "smithy.api#httpQuery"):
			out.Query = append(out.Query, m.Name)
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

// HttpBuilderGenerator emits the request-building side of an HTTP-bound
// operation: the canonical binder every protocol generator (railsjson
// included) shares, since path/query/header binding rules do not vary
// across the JSON-over-HTTP protocols in this model. BodyTimestampFormat is
// the protocol's default wire format for a body timestamp member with no
// explicit timestampFormat trait; the zero value falls back to date-time.
type HttpBuilderGenerator struct {
	BodyTimestampFormat string
}

// GenerateOperationBuilder emits a Ruby `build` method for opId onto w. The
// caller is responsible for wrapping this in whatever class/module
// structure the protocol generator uses.
func (g HttpBuilderGenerator) GenerateOperationBuilder(ctx *GenContext, w *CodeWriter, opId string) error {
	op := ctx.AST.GetShape(opId)
	if op == nil {
		return &smithy.ModelIntegrityError{ShapeId: opId}
	}
	http := GetHttpTrait(ctx.AST, opId)
	if http == nil {
		return fmt.Errorf("operation %s has no http binding", opId)
	}
	pattern := ParseUriPattern(http.Uri)
	opName := ctx.Symbols.ShapeSymbol(opId, "operation").Name

	var inputId string
	var bindings *httpBoundMembers
	if op.Input != nil {
		inputId = op.Input.Target
		var err error
		bindings, err = classifyHttpBindings(ctx.AST, inputId)
		if err != nil {
			return err
		}
		for _, seg := range pattern.Segments {
			if seg.Label == "" {
				continue
			}
			if _, ok := bindings.Labels[seg.Label]; !ok {
				return &LabelBindingError{Operation: opId, Label: seg.Label}
			}
			if !ctx.AST.HasMemberTrait(inputId, seg.Label, "smithy.api#required") {
				return &LabelBindingError{Operation: opId, Label: seg.Label}
			}
		}
	} else {
		bindings = &httpBoundMembers{Labels: map[string]string{}}
	}

	w.OpenBlock(fmt.Sprintf("def build_%s(request, input)", MemberName(opName)), "end")
	w.Write("request.http_method = %q", http.Method)
	w.CallOut(func(w *CodeWriter) { emitPathBuilder(ctx, w, pattern, inputId) })
	w.CallOut(func(w *CodeWriter) { emitQueryBuilder(ctx, w, inputId, bindings, pattern.StaticQuery) })
	w.CallOut(func(w *CodeWriter) { emitHeaderBuilder(ctx, w, inputId, bindings) })
	if err := emitBodyBuilder(ctx, w, inputId, bindings, g.BodyTimestampFormat); err != nil {
		return err
	}
	w.CloseBlock()
	return nil
}

func emitPathBuilder(ctx *GenContext, w *CodeWriter, pattern *UriPattern, inputId string) {
	w.WriteInline("%s", w.pad())
	w.WriteInline("%s", `path = String.new("`)
	for _, seg := range pattern.Segments {
		w.WriteInline("/")
		if seg.Label != "" {
			w.WriteInline("#{%s}", pathInterpolation(ctx, inputId, seg))
		} else {
			w.WriteInline("%s", seg.Literal)
		}
	}
	w.WriteInline("%s\n", `")`)
	w.Write("request.path = path")
}

// pathInterpolation renders a label segment's value expression: a timestamp
// label formats per timestampFormat (default date-time, override wins)
// before escaping, everything else escapes its plain string form.
func pathInterpolation(ctx *GenContext, inputId string, seg UriSegment) string {
	member := "input." + MemberName(seg.Label)
	expr := member + ".to_s"
	if target := memberTargetShape(ctx, inputId, seg.Label); target != nil && target.Type == "timestamp" {
		format := timestampFormatFor(ctx, inputId, seg.Label, "date-time")
		expr = timestampBuildExpr(format, member)
	}
	if seg.Greedy {
		return "Rack::Utils.escape_path(" + expr + ").gsub('%2F', '/')"
	}
	return "Rack::Utils.escape_path(" + expr + ")"
}

func emitQueryBuilder(ctx *GenContext, w *CodeWriter, inputId string, b *httpBoundMembers, static string) {
	w.Write("params = []")
	if static != "" {
		for _, pair := range strings.Split(static, "&") {
			if pair == "" {
				continue
			}
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) == 2 {
				w.Write("params << [%q, %q]", kv[0], kv[1])
			} else {
				w.Write("params << [%q, nil]", kv[0])
			}
		}
	}
	for _, name := range b.Query {
		queryName := ctx.AST.GetMemberTrait(inputId, name, "smithy.api#httpQuery").AsString()
		member := "input." + MemberName(name)
		target := memberTargetShape(ctx, inputId, name)
		elementTarget := target
		if target != nil && (target.Type == "list" || target.Type == "set") {
			elementTarget = nil
		}
		w.OpenBlock(fmt.Sprintf("unless %s.nil?", member), "end")
		w.OpenBlock(fmt.Sprintf("if %s.is_a?(Array)", member), "end")
		w.Write("%s.each { |v| params << [%q, %s] }", member, queryName, queryScalarExpr(ctx, inputId, name, listElementShape(ctx, inputId, name), "v"))
		w.Else()
		w.Write("params << [%q, %s]", queryName, queryScalarExpr(ctx, inputId, name, elementTarget, member))
		w.CloseBlock()
		w.CloseBlock()
	}
	if b.QueryParams != "" {
		member := "input." + MemberName(b.QueryParams)
		w.OpenBlock(fmt.Sprintf("(%s || {}).each do |k, v|", member), "end")
		w.Write("params << [k.to_s, v.to_s]")
		w.CloseBlock()
	}
	w.Write("request.append_query_params(params)")
}

// listElementShape resolves the element target of a list/set-typed query
// member, or nil if the member is not a list/set.
func listElementShape(ctx *GenContext, ownerId string, memberName string) *smithy.Shape {
	target := memberTargetShape(ctx, ownerId, memberName)
	if target == nil || (target.Type != "list" && target.Type != "set") || target.Member == nil {
		return nil
	}
	return resolveShape(ctx.AST, target.Member.Target)
}

// queryScalarExpr renders a query value expression: a timestamp (directly
// bound, or the element of a list/set-bound member) formats per
// timestampFormat (default date-time, override wins), everything else uses
// its plain string form.
func queryScalarExpr(ctx *GenContext, ownerId string, memberName string, target *smithy.Shape, expr string) string {
	if target != nil && target.Type == "timestamp" {
		format := timestampFormatFor(ctx, ownerId, memberName, "date-time")
		return timestampBuildExpr(format, expr)
	}
	return expr + ".to_s"
}

func emitHeaderBuilder(ctx *GenContext, w *CodeWriter, inputId string, b *httpBoundMembers) {
	for _, name := range b.Headers {
		headerName := ctx.AST.GetMemberTrait(inputId, name, "smithy.api#httpHeader").AsString()
		member := "input." + MemberName(name)
		w.OpenBlock(fmt.Sprintf("unless %s.nil?", member), "end")
		w.Write("request.headers[%q] = %s", headerName, headerValueExpr(ctx, inputId, name, member))
		w.CloseBlock()
	}
	if b.PrefixHeaders != "" {
		prefix := ctx.AST.GetMemberTrait(inputId, b.PrefixHeaders, "smithy.api#httpPrefixHeaders").AsString()
		member := "input." + MemberName(b.PrefixHeaders)
		w.OpenBlock(fmt.Sprintf("(%s || {}).each do |k, v|", member), "end")
		w.Write("request.headers[\"%s#{k}\"] = v.to_s", prefix)
		w.CloseBlock()
	}
}

// headerListElementBuildExpr quotes a header list/set element with
// double-quotes (escaping an embedded double-quote with a backslash) when
// it contains a comma or a double-quote, and leaves it bare otherwise.
const headerListElementBuildExpr = `v.to_s.match?(/[,"]/) ? "\"#{v.to_s.gsub('"', '\"')}\"" : v.to_s`

// headerValueExpr renders the Ruby expression that turns member's runtime
// value into a header string: lists/sets join comma-separated with
// double-quote escaping for values containing a comma or a quote, mediaType
// members are base64-encoded, timestamps format per timestampFormat
// (default http-date, explicit override wins).
func headerValueExpr(ctx *GenContext, ownerId string, memberName string, member string) string {
	if ctx.AST.HasMemberTrait(ownerId, memberName, "smithy.api#mediaType") {
		return fmt.Sprintf("Base64.strict_encode64(%s.to_s).strip", member)
	}
	targetShape := memberTargetShape(ctx, ownerId, memberName)
	if targetShape != nil && (targetShape.Type == "list" || targetShape.Type == "set") {
		return fmt.Sprintf("%s.map { |v| %s }.join(', ')", member, headerListElementBuildExpr)
	}
	if targetShape != nil && targetShape.Type == "timestamp" {
		format := timestampFormatFor(ctx, ownerId, memberName, "http-date")
		return timestampBuildExpr(format, member)
	}
	return member + ".to_s"
}

// emitBodyBuilder builds the request body. A single httpPayload member that
// targets a structure/union serializes through its own shape codec; any
// other httpPayload member (blob/string/document) is assigned directly. A
// set of unbound members is assembled into a hash via each member's own
// codec-aware value expression before being JSON-encoded, rather than a
// flat, non-recursive dump of raw member values.
func emitBodyBuilder(ctx *GenContext, w *CodeWriter, inputId string, b *httpBoundMembers, bodyTimestampFormat string) error {
	switch {
	case b.Payload != "":
		member := "input." + MemberName(b.Payload)
		target := memberTargetShape(ctx, inputId, b.Payload)
		if target != nil && (target.Type == "structure" || target.Type == "union") {
			w.Write("request.body = JSON.generate(%s)", bodyValueBuildExpr(ctx, inputId, b.Payload, member, bodyTimestampFormat))
		} else {
			w.Write("request.body = %s", member)
		}
	case len(b.Body) > 0:
		w.Write("hash = {}")
		for _, name := range b.Body {
			member := "input." + MemberName(name)
			w.OpenBlock(fmt.Sprintf("unless %s.nil?", member), "end")
			w.Write("hash[%q] = %s", name, bodyValueBuildExpr(ctx, inputId, name, member, bodyTimestampFormat))
			w.CloseBlock()
		}
		w.Write("request.body = JSON.generate(hash)")
	}
	return nil
}
