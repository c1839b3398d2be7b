package assets

import "testing"

func TestDemoProject(t *testing.T) {
	p, err := DemoProject()
	if err != nil {
		t.Fatalf("DemoProject: %v", err)
	}
	levels := p.AllLevels()
	if len(levels) != 2 {
		t.Fatalf("got %d levels, want 2", len(levels))
	}
	for _, lvl := range levels {
		if len(lvl.LayerInstances) != 3 {
			t.Fatalf("level %s has %d layers", lvl.Identifier, len(lvl.LayerInstances))
		}
	}
	ts, ok := p.Tileset(10)
	if !ok || ts.RelPath == nil {
		t.Fatal("demo tileset missing")
	}
	if _, err := LoadFile(*ts.RelPath); err != nil {
		t.Fatalf("tileset image not embedded: %v", err)
	}
}

func TestCleanAssetPath(t *testing.T) {
	tests := map[string]string{
		"":                     "",
		"demo.ldtk":            "demo.ldtk",
		"assets/demo.ldtk":     "demo.ldtk",
		"/x/y/assets/tile.png": "tile.png",
		"/elsewhere/tile.png":  "tile.png",
	}
	for in, want := range tests {
		if got := cleanAssetPath(in); got != want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", in, got, want)
		}
	}
}
