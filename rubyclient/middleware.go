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

import "sort"

// Step names the phase of the middleware pipeline a MiddlewareRecord runs
// in, matching the generated client's stack order.
type Step string

const (
	StepInitialize Step = "INITIALIZE"
	StepSerialize  Step = "SERIALIZE"
	StepBuild      Step = "BUILD"
	StepFinalize   Step = "FINALIZE"
	StepDeserialize Step = "DESERIALIZE"
)

var stepOrder = map[Step]int{
	StepInitialize:  0,
	StepSerialize:   1,
	StepBuild:       2,
	StepFinalize:    3,
	StepDeserialize: 4,
}

// Predicate decides whether a middleware applies to a given service or
// operation shape id. A nil Predicate always applies. A Predicate that
// panics is a generator bug and is allowed to propagate: only an explicit
// false/true return is a normal predicate outcome.
type Predicate func(serviceId string, operationId string) bool

// MiddlewareRecord describes one middleware's placement and configuration
// contribution. Records are immutable once built: Register on
// MiddlewareStack takes ownership of the values, nothing mutates a record
// in place afterward.
type MiddlewareRecord struct {
	Klass             string
	Step              Step
	Order             int8
	ServicePredicate  Predicate
	OperationPredicate Predicate
	ClientConfig      []ConfigKey
	OperationParams   []string
	AdditionalParams  map[string]string
	RenderHook        func(w *CodeWriter)
	ExtraFiles        []string

	insertion int
}

// ConfigKey is one named, typed value a middleware or the transport layer
// contributes to the generated client's Config class.
type ConfigKey struct {
	Name            string
	Type            string
	Default         string
	Docs            string
	AllowOperationOverride bool
}

// MiddlewareStack accumulates MiddlewareRecords in registration order and
// produces a deterministic, sorted pipeline for a given service/operation
// pair.
type MiddlewareStack struct {
	records []*MiddlewareRecord
}

func NewMiddlewareStack() *MiddlewareStack {
	return &MiddlewareStack{}
}

// Register appends rec to the stack, stamping its insertion index so ties
// in (step, order) resolve to registration order rather than sort
// instability.
func (s *MiddlewareStack) Register(rec *MiddlewareRecord) {
	rec.insertion = len(s.records)
	s.records = append(s.records, rec)
}

// Resolve returns the records that apply to serviceId/operationId, sorted
// by step, then by order within a step, then by registration order. A
// predicate that returns false omits its record silently; there is no
// separate "predicate failed" signal, since a middleware simply not
// applying to an operation is not an error condition.
func (s *MiddlewareStack) Resolve(serviceId string, operationId string) []*MiddlewareRecord {
	var applicable []*MiddlewareRecord
	for _, rec := range s.records {
		if rec.ServicePredicate != nil && !rec.ServicePredicate(serviceId, operationId) {
			continue
		}
		if rec.OperationPredicate != nil && !rec.OperationPredicate(serviceId, operationId) {
			continue
		}
		applicable = append(applicable, rec)
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		a, b := applicable[i], applicable[j]
		if stepOrder[a.Step] != stepOrder[b.Step] {
			return stepOrder[a.Step] < stepOrder[b.Step]
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.insertion < b.insertion
	})
	return applicable
}

// ClientConfigKeys collects the deduplicated set of config keys every
// registered middleware contributes, in first-registration order, for the
// generated Config class to enumerate.
func (s *MiddlewareStack) ClientConfigKeys() []ConfigKey {
	seen := make(map[string]bool)
	var keys []ConfigKey
	for _, rec := range s.records {
		for _, k := range rec.ClientConfig {
			if seen[k.Name] {
				continue
			}
			seen[k.Name] = true
			keys = append(keys, k)
		}
	}
	return keys
}
