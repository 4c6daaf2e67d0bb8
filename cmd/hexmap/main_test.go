package main

import (
	"strings"
	"testing"

	"github.com/Faultbox/hexes/internal/world"
	"github.com/Faultbox/hexes/pkg/hex"
)

func TestParseInts(t *testing.T) {
	got, err := parseInts([]string{"3", "-4", "0"})
	if err != nil {
		t.Fatalf("parseInts failed: %v", err)
	}
	if len(got) != 3 || got[0] != 3 || got[1] != -4 || got[2] != 0 {
		t.Errorf("unexpected result %v", got)
	}

	if _, err := parseInts([]string{"3", "x"}); err == nil {
		t.Error("expected error for non-numeric input")
	}
}

func TestRenderField(t *testing.T) {
	m := world.NewWithStorage(hex.NewGrid[world.Tile](), hex.NewGrid[hex.Direction](), world.DefaultRules())
	m.SetTile(hex.NewAxial(0, 0), world.NewTile(0))
	m.SetTile(hex.NewAxial(1, 0), world.NewTile(0))
	m.SetTile(hex.NewAxial(-1, 0), world.NewTile(3))
	m.UpdateField([]hex.Axial{{Q: 0, R: 0}})

	out := renderField(m, hex.NewAxial(0, 0), 1)
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", len(rows), out)
	}

	// Middle row: wall at (-1,0), goal, then a tile pointing Left.
	if got := strings.TrimSpace(rows[1]); got != "# * a" {
		t.Errorf("middle row = %q, want %q", got, "# * a")
	}
	if strings.TrimSpace(rows[0]) != "" || strings.TrimSpace(rows[2]) != "" {
		t.Errorf("expected empty outer rows:\n%s", out)
	}
}
