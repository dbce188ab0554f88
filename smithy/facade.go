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
package smithy

import (
	"fmt"
	"sort"
)

// ModelIntegrityError is raised when a shape reference cannot be resolved
// against the assembled model. It is always fatal: the caller aborts the
// generation rather than guessing at a replacement shape.
type ModelIntegrityError struct {
	ShapeId string
}

func (e *ModelIntegrityError) Error() string {
	return fmt.Sprintf("model integrity error: shape not defined: %s", e.ShapeId)
}

// ExpectShape resolves id against the assembly or fails with a
// ModelIntegrityError. Every other facade method that needs a shape routes
// through this so a dangling reference is reported uniformly.
func (ast *AST) ExpectShape(id string) (*Shape, error) {
	shape := ast.GetShape(id)
	if shape == nil {
		return nil, &ModelIntegrityError{ShapeId: id}
	}
	return shape, nil
}

// MemberRef pairs a member name with its definition and the id of the shape
// that declares it, in the model's insertion order.
type MemberRef struct {
	ShapeId string
	Name    string
	Member  *Member
}

// OrderedMembers returns shape's members in model order. Lists, sets and
// maps have no named members and return nil.
func (ast *AST) OrderedMembers(shapeId string) ([]MemberRef, error) {
	shape, err := ast.ExpectShape(shapeId)
	if err != nil {
		return nil, err
	}
	if shape.Members == nil {
		return nil, nil
	}
	var out []MemberRef
	for _, name := range shape.Members.Keys() {
		out = append(out, MemberRef{ShapeId: shapeId, Name: name, Member: shape.Members.Get(name)})
	}
	return out, nil
}

// HasShapeTrait reports whether shapeId carries trait, ignoring any member
// override (use HasMemberTrait for member-aware resolution).
func (ast *AST) HasShapeTrait(shapeId string, trait string) bool {
	shape := ast.GetShape(shapeId)
	if shape == nil {
		return false
	}
	return shape.Traits != nil && shape.Traits.Has(trait)
}

// GetShapeTrait returns the trait value on shapeId itself, or nil.
func (ast *AST) GetShapeTrait(shapeId string, trait string) *NodeValue {
	shape := ast.GetShape(shapeId)
	if shape == nil {
		return nil
	}
	return shape.GetTrait(trait)
}

// HasMemberTrait resolves trait presence the way Smithy binds traits to
// members: the member's own trait wins; if absent there, fall back to the
// trait on the member's target shape.
func (ast *AST) HasMemberTrait(ownerId string, memberName string, trait string) bool {
	return ast.GetMemberTrait(ownerId, memberName, trait) != nil
}

// GetMemberTrait implements the same member-wins-over-target fallback as
// HasMemberTrait, returning the resolved value (or nil).
func (ast *AST) GetMemberTrait(ownerId string, memberName string, trait string) *NodeValue {
	owner := ast.GetShape(ownerId)
	if owner == nil || owner.Members == nil {
		return nil
	}
	member := owner.Members.Get(memberName)
	if member == nil {
		return nil
	}
	if member.Traits != nil && member.Traits.Has(trait) {
		return member.Traits.Get(trait)
	}
	return ast.GetShapeTrait(member.Target, trait)
}

// Walk performs a deterministic depth-first traversal of the shape closure
// reachable from rootId, visiting every shape exactly once. Member targets
// are walked in model order; Smithy prelude shapes (smithy.api#...) are not
// emitted as standalone nodes and are skipped.
func (ast *AST) Walk(rootId string) ([]string, error) {
	visited := make(map[string]bool)
	var order []string
	var visit func(id string) error
	visit = func(id string) error {
		if id == "" || ast.isSmithyType(id) {
			return nil
		}
		if visited[id] {
			return nil
		}
		visited[id] = true
		shape, err := ast.ExpectShape(id)
		if err != nil {
			return err
		}
		order = append(order, id)
		switch shape.Type {
		case "structure", "union":
			if shape.Members != nil {
				for _, name := range shape.Members.Keys() {
					if err := visit(shape.Members.Get(name).Target); err != nil {
						return err
					}
				}
			}
		case "list", "set":
			if shape.Member != nil {
				if err := visit(shape.Member.Target); err != nil {
					return err
				}
			}
		case "map":
			if shape.Key != nil {
				if err := visit(shape.Key.Target); err != nil {
					return err
				}
			}
			if shape.Value != nil {
				if err := visit(shape.Value.Target); err != nil {
					return err
				}
			}
		case "operation":
			if shape.Input != nil {
				if err := visit(shape.Input.Target); err != nil {
					return err
				}
			}
			if shape.Output != nil {
				if err := visit(shape.Output.Target); err != nil {
					return err
				}
			}
			for _, e := range shape.Errors {
				if err := visit(e.Target); err != nil {
					return err
				}
			}
		case "service":
			for _, o := range shape.Operations {
				if err := visit(o.Target); err != nil {
					return err
				}
			}
			for _, r := range shape.Resources {
				if err := visit(r.Target); err != nil {
					return err
				}
			}
		case "resource":
			for _, ref := range []*ShapeRef{shape.Create, shape.Put, shape.Read, shape.Update, shape.Delete, shape.List} {
				if ref != nil {
					if err := visit(ref.Target); err != nil {
						return err
					}
				}
			}
			for _, o := range shape.CollectionOperations {
				if err := visit(o.Target); err != nil {
					return err
				}
			}
			for _, o := range shape.Operations {
				if err := visit(o.Target); err != nil {
					return err
				}
			}
			for _, r := range shape.Resources {
				if err := visit(r.Target); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := visit(rootId); err != nil {
		return nil, err
	}
	return order, nil
}

// TopDownOperations returns every operation shape id reachable from the
// service (directly or via its resources), sorted by unqualified shape name
// so downstream emission order is deterministic. This is the sort spec.md
// §3 requires: "Operations across a service are sorted by name before
// emission".
func (ast *AST) TopDownOperations(serviceId string) ([]string, error) {
	service, err := ast.ExpectShape(serviceId)
	if err != nil {
		return nil, err
	}
	if service.Type != "service" {
		return nil, fmt.Errorf("shape is not a service: %s", serviceId)
	}
	seen := make(map[string]bool)
	var ops []string
	var collect func(shape *Shape) error
	collect = func(shape *Shape) error {
		for _, ref := range shape.Operations {
			if !seen[ref.Target] {
				seen[ref.Target] = true
				ops = append(ops, ref.Target)
			}
		}
		for _, ref := range shape.Resources {
			rez, err := ast.ExpectShape(ref.Target)
			if err != nil {
				return err
			}
			for _, oref := range []*ShapeRef{rez.Create, rez.Put, rez.Read, rez.Update, rez.Delete, rez.List} {
				if oref != nil && !seen[oref.Target] {
					seen[oref.Target] = true
					ops = append(ops, oref.Target)
				}
			}
			for _, oref := range rez.CollectionOperations {
				if !seen[oref.Target] {
					seen[oref.Target] = true
					ops = append(ops, oref.Target)
				}
			}
			if err := collect(rez); err != nil {
				return err
			}
		}
		return nil
	}
	if err := collect(service); err != nil {
		return nil, err
	}
	sort.Slice(ops, func(i, j int) bool {
		return shapeName(ops[i]) < shapeName(ops[j])
	})
	return ops, nil
}

func shapeName(id string) string {
	n := len(id) - 1
	for n >= 0 && id[n] != '#' {
		n--
	}
	if n < 0 {
		return id
	}
	return id[n+1:]
}
