package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/extarray/internal/jsonarray"
	"github.com/roach88/extarray/internal/value"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestColumn builds a small column with one missing element.
func createTestColumn(t *testing.T) *jsonarray.Array {
	t.Helper()
	a, err := jsonarray.FromAny(nil, []any{
		map[string]any{"name": "bolt", "count": 3},
		map[string]any{},
		map[string]any{"name": "nut", "count": 9007199254740993, "tags": []any{"m4", nil}},
	})
	if err != nil {
		t.Fatalf("FromAny() failed: %v", err)
	}
	return a
}

func keysOf(t *testing.T, elems []value.Object) []string {
	t.Helper()
	out := make([]string, len(elems))
	for i, e := range elems {
		k, err := e.CanonicalKey()
		if err != nil {
			t.Fatalf("CanonicalKey() failed: %v", err)
		}
		out[i] = k
	}
	return out
}
