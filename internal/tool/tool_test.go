package tool_test

import (
	"testing"

	"github.com/dshills/toolframe/internal/tool"
)

func TestMakeIDDeterministic(t *testing.T) {
	a := tool.MakeID("move")
	b := tool.MakeID("move")

	if a != b {
		t.Errorf("expected stable id for same name, got %d and %d", a, b)
	}
}

func TestMakeIDDistinctNames(t *testing.T) {
	names := []string{"move", "select", "draw", "zoom", "pan", "measure"}
	seen := make(map[tool.ID]string, len(names))

	for _, name := range names {
		id := tool.MakeID(name)
		if id < 0 {
			t.Errorf("expected non-negative id for %q, got %d", name, id)
		}
		if prev, ok := seen[id]; ok {
			t.Errorf("id collision between %q and %q", prev, name)
		}
		seen[id] = name
	}
}

func TestInteractiveName(t *testing.T) {
	base := tool.NewInteractive("move")
	if base.Name() != "move" {
		t.Errorf("expected name %q, got %q", "move", base.Name())
	}
	if base.Manager() != nil {
		t.Error("expected nil manager before Init")
	}
}
