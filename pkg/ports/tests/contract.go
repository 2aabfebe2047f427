package tests

import (
	"testing"

	"github.com/aretw0/sliderepl/pkg/ports"
)

// SourceLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.SourceLoader.
func SourceLoaderContractTest(t *testing.T, loader ports.SourceLoader, setupData map[string][]byte) {
	t.Helper()

	t.Run("Load_Success", func(t *testing.T) {
		for path, expectedContent := range setupData {
			content, err := loader.Load(path)
			if err != nil {
				t.Fatalf("unexpected error loading %s: %v", path, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", path, content, expectedContent)
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load("non-existent-deck.star")
		if err == nil {
			t.Error("expected error for non-existent source, got nil")
		}
	})

	if w, ok := loader.(ports.Watchable); ok {
		t.Run("Loaded", func(t *testing.T) {
			for path := range setupData {
				if _, err := loader.Load(path); err != nil {
					t.Fatalf("unexpected error loading %s: %v", path, err)
				}
			}
			lookup := make(map[string]bool)
			for _, p := range w.Loaded() {
				lookup[p] = true
			}
			for path := range setupData {
				if !lookup[path] {
					t.Errorf("path %s missing from Loaded()", path)
				}
			}
		})
	}
}
