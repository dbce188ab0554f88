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
	"strings"
	"unicode"
)

// EmittedSymbol is the result of resolving a shape id to a name in the
// generated Ruby module. Instances are cached for the run so repeated
// lookups (and repeated runs against the same model) are stable.
type EmittedSymbol struct {
	ShapeId        string
	Name           string // unqualified, e.g. "GetThing"
	QualifiedName  string // "Module::GetThing"
	Namespace      string // "Module"
	FilePath       string // relative file this symbol's definition lives in
}

// rubyReservedWords lists every word the Ruby lexer treats specially.
// Member names colliding with one of these get a stable "_member" suffix
// rather than being renamed unpredictably.
var rubyReservedWords = map[string]bool{
	"__FILE__": true, "__LINE__": true, "BEGIN": true, "END": true,
	"alias": true, "and": true, "begin": true, "break": true, "case": true,
	"class": true, "def": true, "defined?": true, "do": true, "else": true,
	"elsif": true, "end": true, "ensure": true, "false": true, "for": true,
	"if": true, "in": true, "module": true, "next": true, "nil": true,
	"not": true, "or": true, "redo": true, "rescue": true, "retry": true,
	"return": true, "self": true, "super": true, "then": true, "true": true,
	"undef": true, "unless": true, "until": true, "when": true, "while": true,
	"yield": true,
}

// leadingDigitTokens maps a shape kind to the fixed prefix the symbol
// provider uses when a shape's name starts with a digit, since that name
// would otherwise not be a legal Ruby constant.
var leadingDigitTokens = map[string]string{
	"structure": "Struct____",
	"union":     "Union____",
	"list":      "List____",
	"set":       "Set____",
	"map":       "Map____",
	"operation": "Operation____",
	"service":   "Service____",
	"string":    "String____",
	"enum":      "Enum____",
}

// SymbolProvider is stateless beyond its memoization cache: given the same
// shape id it always returns the same EmittedSymbol, in this run and in any
// future run over the same model.
type SymbolProvider struct {
	module string
	cache  map[string]*EmittedSymbol
}

func NewSymbolProvider(module string) *SymbolProvider {
	return &SymbolProvider{module: module, cache: make(map[string]*EmittedSymbol)}
}

// ShapeSymbol returns the emitted type/operation name for shapeId. kind is
// the Smithy shape type ("structure", "union", "list", "set", "map",
// "operation", "service", "enum", ...); it only matters for picking the
// leading-digit disambiguation token.
func (sp *SymbolProvider) ShapeSymbol(shapeId string, kind string) *EmittedSymbol {
	if sym, ok := sp.cache[shapeId]; ok {
		return sym
	}
	name := unqualify(shapeId)
	pascal := PascalCase(name)
	if len(pascal) > 0 && unicode.IsDigit(rune(pascal[0])) {
		token := leadingDigitTokens[kind]
		if token == "" {
			token = "Shape____"
		}
		pascal = token + pascal
	}
	sym := &EmittedSymbol{
		ShapeId:       shapeId,
		Name:          pascal,
		QualifiedName: sp.module + "::" + pascal,
		Namespace:     sp.module,
	}
	sp.cache[shapeId] = sym
	return sym
}

// MemberName returns the snake_case Ruby identifier for a Smithy member
// name, suffixed with "_member" if the snake_case form collides with a
// Ruby keyword.
func MemberName(name string) string {
	s := SnakeCase(name)
	if rubyReservedWords[s] {
		return s + "_member"
	}
	return s
}

// EnumSymbolValue exposes a Smithy enum member's value verbatim: the model
// is the source of truth for wire values, the generator never alters them.
func EnumSymbolValue(value string) string {
	return value
}

func unqualify(shapeId string) string {
	n := strings.IndexByte(shapeId, '#')
	if n < 0 {
		return shapeId
	}
	return shapeId[n+1:]
}

// PascalCase upper-cases the first letter of each '_'-delimited word and
// joins them with no separator. Smithy shape names are conventionally
// already PascalCase; this also normalizes the rare snake_cased or
// kebab-cased shape name found in looser models.
func PascalCase(name string) string {
	words := splitWords(name)
	var b strings.Builder
	for _, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

// SnakeCase converts a PascalCase or camelCase identifier to snake_case,
// the Ruby member-name convention. Runs of uppercase letters (as in an
// acronym like "ID" or "URL") are treated as a single word.
func SnakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			startsNewWord := i > 0 && (unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if startsNewWord {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else if r == '-' || r == ' ' {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "_")
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
}
