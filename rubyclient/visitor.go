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

// Visited threads cycle-detection state through a traversal. It is passed
// explicitly rather than held on the visitor so the same visitor instance
// can be reused for independent traversals (e.g. one per emitted file).
type Visited map[string]bool

// ShapeVisitor double-dispatches on shape.Type. Every field is optional;
// a kind with no handler set falls through to Scalar, which is also where
// string/number/boolean/blob/timestamp/document shapes land directly since
// none of those need a dedicated case.
type ShapeVisitor struct {
	Structure func(id string, shape *smithy.Shape, visited Visited) (interface{}, error)
	Union     func(id string, shape *smithy.Shape, visited Visited) (interface{}, error)
	List      func(id string, shape *smithy.Shape, visited Visited) (interface{}, error)
	Set       func(id string, shape *smithy.Shape, visited Visited) (interface{}, error)
	Map       func(id string, shape *smithy.Shape, visited Visited) (interface{}, error)
	Enum      func(id string, shape *smithy.Shape, visited Visited) (interface{}, error)
	Operation func(id string, shape *smithy.Shape, visited Visited) (interface{}, error)
	Service   func(id string, shape *smithy.Shape, visited Visited) (interface{}, error)
	Resource  func(id string, shape *smithy.Shape, visited Visited) (interface{}, error)

	// Scalar handles every shape kind without a dedicated field above,
	// and is required: a visitor with no Scalar handler is a programming
	// error, not a valid empty visitor.
	Scalar func(id string, shape *smithy.Shape, visited Visited) (interface{}, error)

	// OnCycle, if set, is called instead of recursing when id has already
	// been visited in this traversal. Stub generation uses this to emit a
	// placeholder for a self-referential shape rather than recursing
	// forever; generators that need a hard error on a cycle can have
	// OnCycle return one.
	OnCycle func(id string) (interface{}, error)
}

// Visit dispatches on the Smithy type of the shape named by id, recording
// id as visited before recursing so a handler's own recursive calls into
// Visit are automatically cycle-safe. The mark is removed when the handler
// returns, so visited holds only the shapes on the current path and two
// sibling members targeting the same shape are both visited in full.
func (v *ShapeVisitor) Visit(ast *smithy.AST, id string, visited Visited) (interface{}, error) {
	if visited == nil {
		visited = make(Visited)
	}
	if visited[id] {
		if v.OnCycle != nil {
			return v.OnCycle(id)
		}
		return nil, nil
	}
	visited[id] = true
	defer delete(visited, id)
	shape, err := ast.ExpectShape(id)
	if err != nil {
		if !smithy.IsPreludeType(id) {
			return nil, err
		}
		// Prelude shapes (smithy.api#String and friends) are never present
		// in a model's own shapes map; synthesize the scalar shape their id
		// implies instead of treating an absent definition as a dangling
		// reference.
		shape = preludeShape(id)
	}
	switch shape.Type {
	case "structure":
		if v.Structure != nil {
			return v.Structure(id, shape, visited)
		}
	case "union":
		if v.Union != nil {
			return v.Union(id, shape, visited)
		}
	case "list":
		if v.List != nil {
			return v.List(id, shape, visited)
		}
	case "set":
		if v.Set != nil {
			return v.Set(id, shape, visited)
		}
	case "map":
		if v.Map != nil {
			return v.Map(id, shape, visited)
		}
	case "enum", "intEnum":
		if v.Enum != nil {
			return v.Enum(id, shape, visited)
		}
	case "operation":
		if v.Operation != nil {
			return v.Operation(id, shape, visited)
		}
	case "service":
		if v.Service != nil {
			return v.Service(id, shape, visited)
		}
	case "resource":
		if v.Resource != nil {
			return v.Resource(id, shape, visited)
		}
	}
	if v.Scalar == nil {
		return nil, fmt.Errorf("visitor has no Scalar handler and shape %s (%s) matched no specific case", id, shape.Type)
	}
	return v.Scalar(id, shape, visited)
}

// preludeShape synthesizes the scalar Shape a prelude shape id implies, e.g.
// "smithy.api#BigInteger" becomes a Shape with Type "bigInteger".
func preludeShape(id string) *smithy.Shape {
	local := id[strings.IndexByte(id, '#')+1:]
	return &smithy.Shape{Type: strings.ToLower(local[:1]) + local[1:]}
}

// VisitMember resolves a member's target and visits it, the common case of
// recursing from a structure/union/list/map handler into its member types.
func (v *ShapeVisitor) VisitMember(ast *smithy.AST, member *smithy.Member, visited Visited) (interface{}, error) {
	if member == nil {
		return nil, nil
	}
	return v.Visit(ast, member.Target, visited)
}
