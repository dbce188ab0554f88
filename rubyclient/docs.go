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

	"github.com/boynton/smithyruby/common"
	"github.com/boynton/smithyruby/smithy"
)

const docCommentWidth = 76

// WriteDocComment emits a Ruby "#"-prefixed doc comment for shapeId's
// documentation trait, if it has one. Indentation is read off w's current
// level so the comment lines up with whatever follows it.
func WriteDocComment(w *CodeWriter, ast *smithy.AST, shapeId string) {
	doc := ast.GetShapeTrait(shapeId, "smithy.api#documentation")
	writeDocCommentText(w, doc.AsString())
}

// WriteMemberDocComment is WriteDocComment's member-aware counterpart,
// following the same member-wins-over-target trait resolution as every
// other member trait lookup in this package.
func WriteMemberDocComment(w *CodeWriter, ast *smithy.AST, ownerId string, memberName string) {
	doc := ast.GetMemberTrait(ownerId, memberName, "smithy.api#documentation")
	writeDocCommentText(w, doc.AsString())
}

func writeDocCommentText(w *CodeWriter, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	formatted := common.FormatComment(w.pad(), "# ", text, docCommentWidth, false)
	for _, line := range strings.Split(strings.TrimRight(formatted, "\n"), "\n") {
		w.WriteInline("%s\n", line)
	}
}
