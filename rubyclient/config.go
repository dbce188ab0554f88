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

// GenerateConfig emits the Ruby Config class, a Struct.new(keyword_init:
// true) record listing every config key contributed by the transport
// layer and every registered middleware, deduplicated by name.
func GenerateConfig(ctx *GenContext, w *CodeWriter, extra []ConfigKey) {
	keys := append([]ConfigKey{}, BaseConfigKeys()...)
	keys = append(keys, ctx.Stack.ClientConfigKeys()...)
	keys = append(keys, extra...)
	seen := make(map[string]bool)
	var deduped []ConfigKey
	for _, k := range keys {
		if seen[k.Name] {
			continue
		}
		seen[k.Name] = true
		deduped = append(deduped, k)
	}

	var names []string
	for _, k := range deduped {
		names = append(names, ":"+k.Name)
	}
	w.Write("Config = Struct.new(%s, keyword_init: true) do", joinQuoted(names))
	w.indentOnce(func() {
		for _, k := range deduped {
			if k.Docs != "" {
				w.Write("# %s", k.Docs)
			}
		}
		w.OpenBlock("def initialize(*)", "end")
		w.Write("super")
		for _, k := range deduped {
			if k.Default != "" {
				w.Write("self.%s ||= %s", k.Name, k.Default)
			}
		}
		w.CloseBlock()
	})
	w.Write("end")
}
