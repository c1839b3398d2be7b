package entity

import (
	"fmt"
	"maps"
	"strings"
	"testing"

	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/ldtk"
	"github.com/milk9111/ldtkworld/ldtk/ldtktest"
	"github.com/milk9111/ldtkworld/settings"
)

func memScripts(files map[string]string) *Scripts {
	return NewScripts(func(name string) ([]byte, error) {
		src, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("no script %s", name)
		}
		return []byte(src), nil
	})
}

func TestScriptHookAttachesData(t *testing.T) {
	scripts := memScripts(map[string]string{
		"player.tengo": `
data := {
	name: identifier + "@" + level + "/" + layer,
	iid: iid,
	lives: fields.lives,
	cell: grid[0] * 10 + grid[1],
	width: size[0],
	tagged: len(tags)
}`,
	})
	r := NewRegistry()
	r.RegisterEntity("Player", Hooks(DefaultEntityHook, scripts.Hook("player.tengo")))

	w, _, lvl, diags := spawnFixture(t, settings.Default(), r, ldtktest.Level1)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	player, ok := entityByIid(w, layerByIdentifier(t, w, lvl, "Entities"), ldtktest.PlayerIid)
	if !ok {
		t.Fatal("player not spawned")
	}
	got, ok := ecs.Get(w, player, component.ScriptDataComponent.Kind())
	if !ok {
		t.Fatal("script data missing")
	}
	want := map[string]any{
		"name":   "Player@Level_0/Entities",
		"iid":    ldtktest.PlayerIid,
		"lives":  float64(3),
		"cell":   int64(10),
		"width":  int64(16),
		"tagged": int64(0),
	}
	if got.Script != "player.tengo" || !maps.Equal(got.Values, want) {
		t.Fatalf("script data = %+v, want %v", *got, want)
	}
}

func TestScriptHookFailures(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantMsg string
	}{
		{name: "compile_error", script: "data := {", wantMsg: "broken.tengo"},
		{name: "runtime_error", script: "data := {x: 1 / 0}", wantMsg: "broken.tengo"},
		{name: "no_data", script: "x := 1", wantMsg: "'data' not set"},
		{name: "data_not_map", script: "data := [1, 2]", wantMsg: "must be a map"},
		{name: "missing_file", wantMsg: "no script"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			files := map[string]string{}
			if tc.script != "" {
				files["broken.tengo"] = tc.script
			}
			r := playerRegistry()
			r.RegisterEntity("Coin", Hooks(DefaultEntityHook, memScripts(files).Hook("broken.tengo")))

			w, _, lvl, diags := spawnFixture(t, settings.Default(), r, ldtktest.Level1)
			if len(diags) != 1 || diags[0].Kind != DiagnosticHookFailed || diags[0].Iid != "c-1" {
				t.Fatalf("diagnostics = %v", diags)
			}
			if !strings.Contains(diags[0].Message, tc.wantMsg) {
				t.Fatalf("message %q missing %q", diags[0].Message, tc.wantMsg)
			}
			entities := layerByIdentifier(t, w, lvl, "Entities")
			if _, ok := entityByIid(w, entities, "c-1"); ok {
				t.Fatal("coin with a failing script should not spawn")
			}
			if _, ok := entityByIid(w, entities, ldtktest.PlayerIid); !ok {
				t.Fatal("player should spawn regardless")
			}
		})
	}
}

func TestScriptFieldHook(t *testing.T) {
	loads := 0
	scripts := NewScripts(func(name string) ([]byte, error) {
		loads++
		return []byte(`data := {kind: fields.kind}`), nil
	})
	hook := scripts.FieldHook("script")

	tests := []struct {
		name   string
		fields []ldtk.FieldInstance
		want   string
	}{
		{name: "no_field"},
		{name: "null_field", fields: []ldtk.FieldInstance{{Identifier: "script", Type: "String", Value: []byte("null")}}},
		{name: "empty_field", fields: []ldtk.FieldInstance{{Identifier: "script", Type: "String", Value: []byte(`""`)}}},
		{
			name: "scripted",
			fields: []ldtk.FieldInstance{
				{Identifier: "script", Type: "String", Value: []byte(`"door.tengo"`)},
				{Identifier: "kind", Type: "String", Value: []byte(`"door"`)},
			},
			want: "door",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			info := EntityInfo{Instance: &ldtk.EntityInstance{Identifier: "Door", Iid: "d-1", FieldInstances: tc.fields}}
			if err := hook(w, e, info); err != nil {
				t.Fatalf("hook: %v", err)
			}
			data, ok := ecs.Get(w, e, component.ScriptDataComponent.Kind())
			if tc.want == "" {
				if ok {
					t.Fatalf("unexpected script data %+v", *data)
				}
				return
			}
			if !ok || data.Values["kind"] != tc.want {
				t.Fatalf("script data = %v, want kind %q", data, tc.want)
			}
		})
	}

	if loads != 1 {
		t.Fatalf("script loaded %d times, want 1", loads)
	}
	scripts.Reset()
	w := ecs.NewWorld()
	info := EntityInfo{Instance: &ldtk.EntityInstance{FieldInstances: []ldtk.FieldInstance{
		{Identifier: "script", Type: "String", Value: []byte(`"door.tengo"`)},
	}}}
	if err := hook(w, ecs.CreateEntity(w), info); err != nil {
		t.Fatalf("hook after reset: %v", err)
	}
	if loads != 2 {
		t.Fatalf("reset should force a reload, loads = %d", loads)
	}
}
