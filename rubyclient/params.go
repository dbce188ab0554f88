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

// GenerateParamsModule emits the shared Params module every generated
// operation method and header parser calls into: coerce normalizes a
// loosely-typed params hash (string or symbol keys) into the symbol-keyed
// hash a generated input Struct's keyword constructor expects;
// split_header_list reverses the quote-aware comma join builders.go emits
// for a list/set-bound header.
func GenerateParamsModule(w *CodeWriter) {
	w.OpenBlock("module Params", "end")
	w.OpenBlock("def self.coerce(params)", "end")
	w.Write("params.each_with_object({}) { |(k, v), h| h[k.to_sym] = v }")
	w.CloseBlock()
	w.Blank()
	w.OpenBlock("def self.split_header_list(value)", "end")
	w.OpenBlock(`value.scan(/"(?:[^"\\]|\\.)*"|[^,\s][^,]*/).map do |tok|`, "end")
	w.Write("tok = tok.strip")
	w.OpenBlock(`if tok.start_with?('"') && tok.end_with?('"')`, "end")
	w.Write(`tok[1..-2].gsub('\\"', '"')`)
	w.Else()
	w.Write("tok")
	w.CloseBlock()
	w.CloseBlock()
	w.CloseBlock()
	w.CloseBlock()
}
