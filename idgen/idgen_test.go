package idgen

import (
	"strings"
	"testing"
)

func TestUUIDv7_Unique(t *testing.T) {
	gen := UUIDv7()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestPrefixed(t *testing.T) {
	id := Prefixed("run_", Default)()
	if !strings.HasPrefix(id, "run_") {
		t.Errorf("got %q, want run_ prefix", id)
	}
}

func TestTimestamped(t *testing.T) {
	id := Timestamped(Default)()
	parts := strings.SplitN(id, "_", 2)
	if len(parts) != 2 || len(parts[0]) != 16 {
		t.Errorf("got %q, want timestamped form", id)
	}
}
