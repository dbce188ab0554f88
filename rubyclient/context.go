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

// GenContext is the shared state every generator stage (builders, parsers,
// stubs, errors, client, config) reads from and writes through. One
// GenContext is built per run, never mutated concurrently: the whole
// pipeline is single-threaded and synchronous.
type GenContext struct {
	AST       *smithy.AST
	ServiceId string
	Module    string
	Gem       string
	OutDir    string
	Symbols   *SymbolProvider
	Manifest  *FileManifest
	Transport *ApplicationTransport
	Stack     *MiddlewareStack
}

func NewGenContext(ast *smithy.AST, serviceId string, module string, gem string, outDir string) *GenContext {
	return &GenContext{
		AST:       ast,
		ServiceId: serviceId,
		Module:    module,
		Gem:       gem,
		OutDir:    outDir,
		Symbols:   NewSymbolProvider(module),
		Manifest:  NewFileManifest(),
	}
}

// WriteFile hands a CodeWriter's finalized text to the manifest under path,
// relative to OutDir. Callers should always go through WriteFile rather
// than calling Manifest.Put directly so a relative path mistake in one
// generator is easy to grep for.
func (ctx *GenContext) WriteFile(path string, w *CodeWriter) error {
	text, err := w.Finalize()
	if err != nil {
		return err
	}
	return ctx.Manifest.Put(path, text)
}
