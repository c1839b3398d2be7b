package component

import (
	"strings"
	"testing"
)

func TestComponentKindNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"struct", TransformComponent.Kind().Name(), "component.Transform"},
		{"foreign_struct", EntityInstanceComponent.Kind().Name(), "ldtk.EntityInstance"},
		{"script_data", ScriptDataComponent.Kind().Name(), "component.ScriptData"},
		{"builtin", NewComponent[string]().Kind().Name(), "string"},
		{"zero_kind", ComponentKind[int]{}.Name(), "component#0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("Name() = %q, want %q", tc.got, tc.want)
			}
		})
	}

	a, b := NewComponentKind[int](), NewComponentKind[int]()
	if !a.Valid() || a.ID() == b.ID() {
		t.Fatalf("kinds for the same type must still be distinct: %d %d", a.ID(), b.ID())
	}
	if !strings.HasPrefix(NameOf(a.ID()+1000), "component#") {
		t.Fatalf("unissued id should fall back to a numbered name")
	}
}
