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

// UnsupportedProtocolError is returned when a service's protocol trait
// does not match any registered ProtocolGenerator's ProtocolId.
type UnsupportedProtocolError struct {
	ServiceId string
	Protocol  string
}

func (e *UnsupportedProtocolError) Error() string {
	return fmt.Sprintf("unsupported protocol %q on service %s", e.Protocol, e.ServiceId)
}

// ProtocolGenerator is what a wire protocol (railsjson, restJson1, and so
// on) implements to plug into the orchestrator. Every method receives the
// same GenContext the orchestrator built for the run; a ProtocolGenerator
// holds no state of its own between calls.
type ProtocolGenerator interface {
	// ProtocolId is the Smithy trait shape id this generator handles, e.g.
	// "example.protocols#railsJson1".
	ProtocolId() string

	ApplicationTransport() *ApplicationTransport

	GenerateBuilders(ctx *GenContext) error
	GenerateParsers(ctx *GenContext) error
	GenerateStubs(ctx *GenContext) error
	GenerateErrors(ctx *GenContext) error
}

// ClientMiddlewareContributor is an optional ProtocolGenerator extension
// for a protocol that needs to add middleware beyond DefaultMiddleware
// (e.g. a signing step, or a protocol-specific content-type header).
type ClientMiddlewareContributor interface {
	ClientMiddleware(ctx *GenContext) []*MiddlewareRecord
}

// ExtraConfigContributor is an optional ProtocolGenerator extension for a
// protocol that exposes config keys beyond BaseConfigKeys.
type ExtraConfigContributor interface {
	ExtraConfigKeys() []ConfigKey
}

// protocolRegistry holds every ProtocolGenerator known to this binary,
// keyed by ProtocolId.
type protocolRegistry struct {
	byId map[string]ProtocolGenerator
}

var registry = &protocolRegistry{byId: make(map[string]ProtocolGenerator)}

// RegisterProtocol makes gen available to ResolveProtocol under its own
// ProtocolId. Called from init() by each concrete protocol package.
func RegisterProtocol(gen ProtocolGenerator) {
	registry.byId[gen.ProtocolId()] = gen
}

// ResolveProtocol looks up the service's smithy.api#protocolDefinition-
// tagged protocol trait against the registry. serviceProtocols is the set
// of protocol trait shape ids found on the service shape; exactly one is
// expected to match a registered generator.
func ResolveProtocol(serviceId string, serviceProtocols []string) (ProtocolGenerator, error) {
	for _, p := range serviceProtocols {
		if gen, ok := registry.byId[p]; ok {
			return gen, nil
		}
	}
	protocol := ""
	if len(serviceProtocols) > 0 {
		protocol = serviceProtocols[0]
	}
	return nil, &UnsupportedProtocolError{ServiceId: serviceId, Protocol: protocol}
}

// ServiceProtocols returns the protocol trait shape ids applied to the
// service, read off its traits list. Smithy allows a service to declare
// more than one protocol binding; the generator honors the first one it
// recognizes.
func ServiceProtocols(ctx *GenContext) []string {
	shape := ctx.AST.GetShape(ctx.ServiceId)
	if shape == nil || shape.Traits == nil {
		return nil
	}
	var protocols []string
	for _, trait := range shape.Traits.Keys() {
		if isKnownProtocolTrait(trait) {
			protocols = append(protocols, trait)
		}
	}
	return protocols
}

// isKnownProtocolTrait reports whether trait names one of the protocol
// traits this generator understands. Smithy itself marks protocol traits
// with @protocolDefinition in the model's own trait definitions, which are
// not present in a service's JSON AST; the generator instead recognizes
// protocol trait ids directly, the same way a hand-written Smithy build
// plugin would.
func isKnownProtocolTrait(trait string) bool {
	_, ok := registry.byId[trait]
	return ok
}
