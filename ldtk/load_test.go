package ldtk

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLoadSample(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "sample.ldtk"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	levels := p.AllLevels()
	if len(levels) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(levels))
	}

	t.Run("inline_level", func(t *testing.T) {
		lvl, ok := p.LevelByIid("inline-level")
		if !ok {
			t.Fatalf("inline level missing")
		}
		if len(lvl.LayerInstances) != 2 || lvl.LayerInstances[0].Type != LayerEntities {
			t.Fatalf("unexpected layers %+v", lvl.LayerInstances)
		}
		door := lvl.LayerInstances[0].EntityInstances[0]
		var target string
		f, ok := door.Field("target")
		if !ok {
			t.Fatalf("target field missing")
		}
		if err := f.Decode(&target); err != nil || target != "external-level" {
			t.Fatalf("target = %q err=%v", target, err)
		}
		var locked bool
		f, _ = door.Field("locked")
		if err := f.Decode(&locked); err != nil || !locked {
			t.Fatalf("locked = %v err=%v", locked, err)
		}
		if _, ok := door.Field("nope"); ok {
			t.Fatalf("unknown field reported present")
		}
	})

	t.Run("external_level", func(t *testing.T) {
		lvl, ok := p.LevelByIdentifier("Cellar")
		if !ok {
			t.Fatalf("external level missing")
		}
		if len(lvl.LayerInstances) != 1 || lvl.LayerInstances[0].Iid != "cellar-walls" {
			t.Fatalf("external layers not resolved: %+v", lvl.LayerInstances)
		}
		if len(lvl.FieldInstances) != 1 {
			t.Fatalf("external level fields not copied")
		}
		if lvl.Neighbours[0].LevelIid != "inline-level" {
			t.Fatalf("neighbours come from the project file")
		}
	})

	t.Run("legacy_iids", func(t *testing.T) {
		lvl, ok := p.LevelByUid(2)
		if !ok {
			t.Fatalf("legacy level missing")
		}
		if _, err := uuid.Parse(lvl.Iid); err != nil {
			t.Fatalf("legacy level iid %q is not a uuid: %v", lvl.Iid, err)
		}
		ent := lvl.LayerInstances[0].EntityInstances[0]
		if ent.Iid == "" || lvl.LayerInstances[0].Iid == "" {
			t.Fatalf("legacy layer and entity iids not filled")
		}

		again, err := Load(filepath.Join("testdata", "sample.ldtk"))
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		other, _ := again.LevelByUid(2)
		if other.Iid != lvl.Iid || other.LayerInstances[0].EntityInstances[0].Iid != ent.Iid {
			t.Fatalf("legacy iids must be stable across loads")
		}
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no_levels", `{"iid":"x","levels":[],"worlds":[]}`, ErrNoLevels},
		{"bad_json", `{"levels":`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), "")
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := Load(filepath.Join("testdata", "broken_external.ldtk")); !errors.Is(err, ErrExternalLevel) {
		t.Fatalf("expected ErrExternalLevel, got %v", err)
	}
	if _, err := Load(filepath.Join("testdata", "does-not-exist.ldtk")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestParseWithoutDirSkipsExternalLevels(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "sample.ldtk"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	p, err := Parse(data, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lvl, _ := p.LevelByIid("external-level")
	if lvl.LayerInstances != nil {
		t.Fatalf("external level should stay unresolved without a dir")
	}
}

func TestHandle(t *testing.T) {
	t.Run("nil_project_not_ready", func(t *testing.T) {
		h := NewHandle(nil)
		if _, ok := h.Project(); ok {
			t.Fatalf("empty handle reported ready")
		}
		if !errors.Is(h.Err(), ErrNotReady) {
			t.Fatalf("expected ErrNotReady, got %v", h.Err())
		}
		if h.Version() != 0 {
			t.Fatalf("version should start at 0")
		}
	})

	t.Run("set_bumps_version", func(t *testing.T) {
		h := NewHandle(&Project{})
		if h.Version() != 1 || h.Err() != nil {
			t.Fatalf("ready handle: version=%d err=%v", h.Version(), h.Err())
		}
		next := &Project{Iid: "next"}
		h.Set(next)
		if p, _ := h.Project(); p != next || h.Version() != 2 {
			t.Fatalf("Set did not publish the new project")
		}
	})

	t.Run("nil_handle", func(t *testing.T) {
		var h *Handle
		if _, ok := h.Project(); ok || h.Version() != 0 || h.Path() != "" {
			t.Fatalf("nil handle must be inert")
		}
		h.Reload()
		h.Set(&Project{})
	})

	t.Run("load_async", func(t *testing.T) {
		path := filepath.Join("testdata", "sample.ldtk")
		h := LoadAsync(path)
		if h.Path() != path {
			t.Fatalf("Path = %q", h.Path())
		}
		waitFor(t, func() bool { return h.Version() > 0 })
		p, ok := h.Project()
		if !ok || len(p.AllLevels()) != 3 {
			t.Fatalf("async project not usable")
		}

		h.Reload()
		waitFor(t, func() bool { return h.Version() > 1 })
		if h.Err() != nil {
			t.Fatalf("unexpected error %v", h.Err())
		}
	})

	t.Run("load_async_failure", func(t *testing.T) {
		h := LoadAsync(filepath.Join("testdata", "does-not-exist.ldtk"))
		waitFor(t, func() bool { return !errors.Is(h.Err(), ErrNotReady) })
		if !errors.Is(h.Err(), os.ErrNotExist) {
			t.Fatalf("expected ErrNotExist, got %v", h.Err())
		}
		if _, ok := h.Project(); ok {
			t.Fatalf("failed load must not publish a project")
		}
	})
}

func TestHandlePublishOrder(t *testing.T) {
	older := &Project{Iid: "older"}
	newer := &Project{Iid: "newer"}
	failed := errors.New("parse failed")

	tests := []struct {
		name        string
		first       uint64
		firstP      *Project
		firstErr    error
		second      uint64
		secondP     *Project
		secondErr   error
		wantProject *Project
		wantErr     error
		wantVersion uint64
	}{
		{
			name:  "in_order",
			first: 1, firstP: older,
			second: 2, secondP: newer,
			wantProject: newer, wantVersion: 2,
		},
		{
			name:  "stale_result_dropped",
			first: 2, firstP: newer,
			second: 1, secondP: older,
			wantProject: newer, wantVersion: 1,
		},
		{
			name:  "stale_error_dropped",
			first: 2, firstP: newer,
			second: 1, secondErr: failed,
			wantProject: newer, wantVersion: 1,
		},
		{
			name:  "newer_error_kept",
			first: 1, firstP: older,
			second: 2, secondErr: failed,
			wantProject: older, wantErr: failed, wantVersion: 1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &Handle{}
			if !h.publish(tc.first, tc.firstP, tc.firstErr) {
				t.Fatalf("first publish dropped")
			}
			kept := h.publish(tc.second, tc.secondP, tc.secondErr)
			if kept != (tc.second > tc.first) {
				t.Fatalf("second publish kept = %v", kept)
			}
			if p, _ := h.Project(); p != tc.wantProject {
				t.Fatalf("project = %v, want %v", p, tc.wantProject)
			}
			if err := h.Err(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("Err = %v, want %v", err, tc.wantErr)
			}
			if h.Version() != tc.wantVersion {
				t.Fatalf("version = %d, want %d", h.Version(), tc.wantVersion)
			}
		})
	}
}

func TestHandleSetSupersedesPendingReload(t *testing.T) {
	h := &Handle{path: "unused.ldtk"}
	pending := h.seq.Add(1)
	set := &Project{Iid: "set"}
	h.Set(set)
	if h.publish(pending, &Project{Iid: "late"}, nil) {
		t.Fatalf("reload started before Set must not replace it")
	}
	if p, _ := h.Project(); p != set {
		t.Fatalf("project = %v, want the Set one", p)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
