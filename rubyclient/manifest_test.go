package rubyclient

import "testing"

func TestFileManifestPutIdempotentOnIdenticalContent(test *testing.T) {
	m := NewFileManifest()
	if err := m.Put("a.rb", "same"); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	if err := m.Put("a.rb", "same"); err != nil {
		test.Errorf("expected identical re-write to be tolerated, got: %v", err)
	}
	if m.Len() != 1 {
		test.Errorf("expected 1 entry, got %d", m.Len())
	}
}

func TestFileManifestPutConflictsOnDifferentContent(test *testing.T) {
	m := NewFileManifest()
	if err := m.Put("a.rb", "first"); err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	err := m.Put("a.rb", "second")
	if err == nil {
		test.Fatalf("expected a ManifestConflictError")
	}
	if _, ok := err.(*ManifestConflictError); !ok {
		test.Errorf("expected *ManifestConflictError, got %T: %v", err, err)
	}
}

func TestFileManifestPathsSorted(test *testing.T) {
	m := NewFileManifest()
	m.Put("b.rb", "x")
	m.Put("a.rb", "y")
	m.Put("c.rb", "z")
	paths := m.Paths()
	want := []string{"a.rb", "b.rb", "c.rb"}
	if len(paths) != len(want) {
		test.Fatalf("expected %d paths, got %d", len(want), len(paths))
	}
	for i := range want {
		if paths[i] != want[i] {
			test.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestFileManifestGetMissingPath(test *testing.T) {
	m := NewFileManifest()
	if _, ok := m.Get("missing.rb"); ok {
		test.Errorf("expected Get on a missing path to report not found")
	}
}
