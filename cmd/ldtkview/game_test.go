package main

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/ecs/entity"
	"github.com/milk9111/ldtkworld/ecs/system"
	"github.com/milk9111/ldtkworld/ldtk"
	"github.com/milk9111/ldtkworld/ldtk/ldtktest"
	"github.com/milk9111/ldtkworld/settings"
)

func TestInitialSelection(t *testing.T) {
	p := ldtktest.Project()
	tests := []struct {
		level string
		want  component.LevelSelection
	}{
		{"", component.SelectIndex(0)},
		{ldtktest.Level2, component.SelectIid(ldtktest.Level2)},
		{"2", component.SelectIndex(2)},
		{"Cave", component.SelectIdentifier("Cave")},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			if got := initialSelection(p, tc.level); got != tc.want {
				t.Fatalf("initialSelection(%q) = %v, want %v", tc.level, got, tc.want)
			}
		})
	}
}

func TestWatchDirs(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "world.ldtk")
	if got := watchDirs(project); !slices.Equal(got, []string{dir}) {
		t.Fatalf("watchDirs = %v", got)
	}

	levels := filepath.Join(dir, "world")
	if err := os.Mkdir(levels, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if got := watchDirs(project); !slices.Equal(got, []string{dir, levels}) {
		t.Fatalf("watchDirs with level dir = %v", got)
	}
}

func TestDemoProjectWalkthrough(t *testing.T) {
	handle, err := openProject("")
	if err != nil {
		t.Fatalf("openProject: %v", err)
	}
	project, ok := handle.Project()
	if !ok {
		t.Fatal("demo project should be ready immediately")
	}

	w := ecs.NewWorld()
	world, err := entity.NewWorld(w, handle)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	sched := system.NewLevelScheduler(settings.Default(), newRegistry(entity.NewScripts(settings.LoadScript)))
	step := func(level string) []entity.Diagnostic {
		t.Helper()
		if err := entity.SelectLevel(w, world, initialSelection(project, level)); err != nil {
			t.Fatalf("SelectLevel: %v", err)
		}
		sched.Update(w)
		sched.Update(w)
		return system.Diagnostics(w.Events().Drain())
	}

	if diags := step("Meadow"); len(diags) != 0 {
		t.Fatalf("demo spawn reported %v", diags)
	}
	if got := entity.RealizedLevels(w, world); !slices.Equal(got, []string{"demo-meadow"}) {
		t.Fatalf("realized = %v", got)
	}
	if got := entity.WorldlyIids(w, world); !slices.Equal(got, []string{"demo-player"}) {
		t.Fatalf("worldly = %v", got)
	}

	step("1")
	if got := entity.RealizedLevels(w, world); !slices.Equal(got, []string{"demo-hills"}) {
		t.Fatalf("realized after switch = %v", got)
	}
	if got := entity.WorldlyIids(w, world); !slices.Equal(got, []string{"demo-player"}) {
		t.Fatalf("player should outlive the meadow, worldly = %v", got)
	}

	coins := 0
	ecs.ForEach(w, component.EntityInstanceComponent.Kind(), func(_ ecs.Entity, inst *ldtk.EntityInstance) {
		if inst.Identifier == "Coin" {
			coins++
		}
	})
	if coins != 2 {
		t.Fatalf("got %d coins in the hills, want 2", coins)
	}

	points := map[string]any{}
	ecs.ForEach2(w, component.EntityInstanceComponent.Kind(), component.ScriptDataComponent.Kind(), func(_ ecs.Entity, inst *ldtk.EntityInstance, data *component.ScriptData) {
		points[inst.Iid] = data.Values["points"]
	})
	want := map[string]any{"demo-coin-2": float64(10), "demo-coin-3": float64(50)}
	if !maps.Equal(points, want) {
		t.Fatalf("coin script points = %v, want %v", points, want)
	}
}
