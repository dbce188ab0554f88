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
	"sort"
	"strconv"
	"strings"
)

// RenderRubyLiteral turns a value produced by StubGenerator.Default into
// Ruby source text: a Hash literal for map[string]interface{}, an Array
// literal for []interface{}, a quoted String for string, and the obvious
// literal for everything else.
func RenderRubyLiteral(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		if v == "now" {
			return "Time.now"
		}
		return fmt.Sprintf("%q", v)
	case []interface{}:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = RenderRubyLiteral(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", MemberName(k), RenderRubyLiteral(v[k])))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "nil"
	}
}
