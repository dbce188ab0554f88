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
	"github.com/boynton/smithyruby/smithy"
)

// Settings are the resolved generation inputs, one step removed from the
// CLI flags that populate them (see cmd/rubyclient).
type Settings struct {
	ModelPath string
	ServiceId string
	OutDir    string
	Module    string
	Gem       string
	Diag      *Diagnostics
}

// defaultModuleName derives a Ruby module name from the service shape's
// unqualified name when the caller does not supply --module explicitly.
func defaultModuleName(serviceId string) string {
	return PascalCase(shapeLocalName(serviceId))
}

// Generate runs the full pipeline against settings and returns the
// resulting FileManifest, every entry relative to settings.OutDir. It does
// not touch the filesystem beyond reading the model file; writing the
// manifest to disk is the caller's job.
func Generate(settings *Settings) (*FileManifest, error) {
	diag := settings.Diag
	if diag == nil {
		diag = NewDiagnostics(nil)
	}
	ast, err := smithy.LoadAST(settings.ModelPath)
	if err != nil {
		return nil, err
	}
	if err := ast.ExpandMixins(); err != nil {
		return nil, err
	}
	if err := ast.ForAllShapes(func(id string, shape *smithy.Shape) error {
		if shape.Type == "apply" {
			return ast.Apply(id, shape.Traits)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if err := ast.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	module := settings.Module
	if module == "" {
		module = defaultModuleName(settings.ServiceId)
	}
	gem := settings.Gem
	if gem == "" {
		gem = SnakeCase(module)
	}

	ctx := NewGenContext(ast, settings.ServiceId, module, gem, settings.OutDir)

	protocols := ServiceProtocols(ctx)
	proto, err := ResolveProtocol(settings.ServiceId, protocols)
	if err != nil {
		return nil, err
	}

	diag.ResolvedProtocol(settings.ServiceId, proto.ProtocolId())

	ctx.Transport = proto.ApplicationTransport()
	if ctx.Transport == nil {
		ctx.Transport = NewHttpApplicationTransport(module)
	}

	ctx.Stack = NewMiddlewareStack()
	var extraConfig []ConfigKey
	var middlewareRecords []*MiddlewareRecord
	if contributor, ok := proto.(ClientMiddlewareContributor); ok {
		middlewareRecords = contributor.ClientMiddleware(ctx)
	} else {
		middlewareRecords = DefaultMiddleware(ast, settings.ServiceId)
	}
	for _, rec := range middlewareRecords {
		ctx.Stack.Register(rec)
	}
	if contributor, ok := proto.(ExtraConfigContributor); ok {
		extraConfig = contributor.ExtraConfigKeys()
	}

	if err := generateTypes(ctx, diag); err != nil {
		return nil, err
	}
	if err := generateValidators(ctx); err != nil {
		return nil, err
	}
	if err := proto.GenerateErrors(ctx); err != nil {
		return nil, err
	}
	if err := proto.GenerateBuilders(ctx); err != nil {
		return nil, err
	}
	if err := proto.GenerateParsers(ctx); err != nil {
		return nil, err
	}
	if err := proto.GenerateStubs(ctx); err != nil {
		return nil, err
	}

	paramsWriter := NewCodeWriter(ctx.Module + "/params.rb")
	GenerateParamsModule(paramsWriter)
	if err := ctx.WriteFile(ctx.Module+"/params.rb", paramsWriter); err != nil {
		return nil, err
	}

	configWriter := NewCodeWriter(ctx.Module + "/config.rb")
	GenerateConfig(ctx, configWriter, extraConfig)
	if err := ctx.WriteFile(ctx.Module+"/config.rb", configWriter); err != nil {
		return nil, err
	}

	clientWriter := NewCodeWriter(ctx.Module + "/client.rb")
	if err := GenerateClient(ctx, clientWriter); err != nil {
		return nil, err
	}
	if err := ctx.WriteFile(ctx.Module+"/client.rb", clientWriter); err != nil {
		return nil, err
	}

	for _, path := range ctx.Manifest.Paths() {
		diag.WroteFile(path)
	}
	return ctx.Manifest, nil
}

// generateTypes walks every shape reachable from the service and emits a
// Ruby type for each structure and union, in Walk's deterministic order.
func generateTypes(ctx *GenContext, diag *Diagnostics) error {
	order, err := ctx.AST.Walk(ctx.ServiceId)
	if err != nil {
		return err
	}
	w := NewCodeWriter(ctx.Module + "/types.rb")
	w.OpenBlock("module Types", "end")
	for _, id := range order {
		shape := ctx.AST.GetShape(id)
		if shape == nil {
			continue
		}
		if shape.Type != "structure" && shape.Type != "union" {
			continue
		}
		if err := GenerateType(ctx, w, id); err != nil {
			if ni, ok := err.(*NotImplemented); ok {
				diag.SkippedShape(id, ni.Error())
				continue
			}
			return err
		}
		w.Blank()
	}
	w.CloseBlock()
	return ctx.WriteFile(ctx.Module+"/types.rb", w)
}

// generateValidators emits a *Validator module for every structure shape
// reachable from the service, mirroring generateTypes' traversal.
func generateValidators(ctx *GenContext) error {
	order, err := ctx.AST.Walk(ctx.ServiceId)
	if err != nil {
		return err
	}
	w := NewCodeWriter(ctx.Module + "/validators.rb")
	GenerateValidationErrorClass(w)
	w.Blank()
	for _, id := range order {
		shape := ctx.AST.GetShape(id)
		if shape == nil || shape.Type != "structure" {
			continue
		}
		if err := GenerateValidator(ctx, w, id); err != nil {
			return err
		}
		w.Blank()
	}
	return ctx.WriteFile(ctx.Module+"/validators.rb", w)
}
