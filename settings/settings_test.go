package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Settings
		wantErr string
	}{
		{
			name: "empty_keeps_defaults",
			data: "",
			want: Default(),
		},
		{
			name: "overlay",
			data: "level_spawn_behavior: world_translation\nload_level_neighbors: true\nint_grid_rendering: invisible\n",
			want: Settings{
				LevelSpawnBehavior: WorldTranslation,
				LoadLevelNeighbors: true,
				IntGridRendering:   IntGridInvisible,
				LevelBackground:    BackgroundRendered,
			},
		},
		{
			name:    "unknown_behavior",
			data:    "level_spawn_behavior: sideways\n",
			wantErr: "level_spawn_behavior",
		},
		{
			name:    "unknown_background",
			data:    "level_background: maybe\n",
			wantErr: "level_background",
		},
		{
			name:    "bad_yaml",
			data:    "level_spawn_behavior: [",
			wantErr: "unmarshal",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse([]byte(tc.data))
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestNeighboursNeedWorldTranslation(t *testing.T) {
	s := Default()
	s.LoadLevelNeighbors = true
	if s.LoadNeighbors() {
		t.Fatalf("neighbours loaded with zero translation")
	}
	s.LevelSpawnBehavior = WorldTranslation
	if !s.LoadNeighbors() || !s.UseWorldTranslation() {
		t.Fatalf("neighbours not loaded with world translation")
	}
}

func TestLoadSettings(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		s, err := LoadSettings("settings/" + DefaultFile)
		if err != nil {
			t.Fatalf("LoadSettings: %v", err)
		}
		if !s.SetClearColor || s.LevelSpawnBehavior != ZeroTranslation {
			t.Fatalf("embedded settings not read: %+v", s)
		}
	})

	t.Run("disk_override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("level_background: nonexistent\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		s, err := LoadSettings(path)
		if err != nil {
			t.Fatalf("LoadSettings: %v", err)
		}
		if s.LevelBackground != BackgroundNonexistent {
			t.Fatalf("disk file ignored: %+v", s)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("expected error for a file neither on disk nor embedded")
		}
	})
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	disk := filepath.Join(dir, "door.tengo")
	if err := os.WriteFile(disk, []byte("data := {}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "embedded", path: "scripts/coin.tengo", want: "data :="},
		{name: "embedded_bare", path: "coin.tengo", want: "data :="},
		{name: "embedded_prefixed", path: "settings/scripts/coin.tengo", want: "data :="},
		{name: "disk", path: disk, want: "data := {}"},
		{name: "missing", path: "nope.tengo", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := LoadScript(tc.path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadScript: %v", err)
			}
			if !strings.Contains(string(data), tc.want) {
				t.Fatalf("LoadScript(%q) = %q", tc.path, data)
			}
		})
	}
}

func TestCleanSettingsPath(t *testing.T) {
	tests := map[string]string{
		"settings/ldtk.yaml":   "ldtk.yaml",
		"ldtk.yaml":            "ldtk.yaml",
		"some/where/ldtk.yaml": "ldtk.yaml",
	}
	for in, want := range tests {
		if got := cleanSettingsPath(in); got != want {
			t.Fatalf("cleanSettingsPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsWatchedFile(t *testing.T) {
	for path, want := range map[string]bool{
		"world.ldtk":          true,
		"world/Level_0.ldtkl": true,
		"ldtk.YAML":           true,
		"scripts/coin.tengo":  true,
		"tiles.png":           false,
		"world.ldtk~":         false,
	} {
		if got := IsWatchedFile(path); got != want {
			t.Fatalf("IsWatchedFile(%q) = %v", path, got)
		}
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "ignored.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	target := filepath.Join(dir, "world.ldtk")
	if err := os.WriteFile(target, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != target {
			t.Fatalf("event for %q, want %q", got, target)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the project file")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	for range w.Events {
	}
}

func TestNewWatcherBadDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}
