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
)

// ManifestConflictError means two generator calls tried to write different
// content to the same relative file path in one run.
type ManifestConflictError struct {
	Path string
}

func (e *ManifestConflictError) Error() string {
	return fmt.Sprintf("manifest conflict: %s was written twice with different content", e.Path)
}

// FileManifest collects every file a generation run produces, keyed by its
// path relative to the output root. Writing the same path twice with
// identical content is tolerated (two generators legitimately touching the
// same shared file, such as a requires list, in the same way); writing it
// twice with different content is a ManifestConflictError.
type FileManifest struct {
	entries map[string]string
}

func NewFileManifest() *FileManifest {
	return &FileManifest{entries: make(map[string]string)}
}

func (m *FileManifest) Put(path string, content string) error {
	if existing, ok := m.entries[path]; ok {
		if existing != content {
			return &ManifestConflictError{Path: path}
		}
		return nil
	}
	m.entries[path] = content
	return nil
}

func (m *FileManifest) Get(path string) (string, bool) {
	content, ok := m.entries[path]
	return content, ok
}

// Paths returns every path in the manifest, sorted, so callers that write
// files to disk do so in a deterministic order.
func (m *FileManifest) Paths() []string {
	paths := make([]string, 0, len(m.entries))
	for p := range m.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (m *FileManifest) Len() int {
	return len(m.entries)
}
