package entity

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/settings"
)

// Globals a spawn script can read.
var scriptVars = []string{"identifier", "iid", "level", "layer", "grid", "size", "tags", "fields"}

// Scripts compiles tengo spawn scripts once per path and hands out hooks
// that run them against each entity.
type Scripts struct {
	load     func(name string) ([]byte, error)
	compiled map[string]*tengo.Compiled
}

// NewScripts reads script sources through load. A nil load uses
// settings.LoadScript.
func NewScripts(load func(name string) ([]byte, error)) *Scripts {
	if load == nil {
		load = settings.LoadScript
	}
	return &Scripts{load: load, compiled: make(map[string]*tengo.Compiled)}
}

// ScriptHook runs the script at path for every entity it is registered for.
func ScriptHook(path string) EntityHook {
	return NewScripts(nil).Hook(path)
}

// Reset drops every compiled script so the next spawn reads them again.
func (s *Scripts) Reset() {
	clear(s.compiled)
}

// Hook runs the script at path and attaches its data global as a
// component.ScriptData.
func (s *Scripts) Hook(path string) EntityHook {
	return func(w *ecs.World, e ecs.Entity, info EntityInfo) error {
		values, err := s.run(path, info)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.ScriptDataComponent.Kind(), &component.ScriptData{Script: path, Values: values})
	}
}

// FieldHook runs the script named by the entity's String field. Entities
// without the field, or with it left empty, are skipped.
func (s *Scripts) FieldHook(field string) EntityHook {
	return func(w *ecs.World, e ecs.Entity, info EntityInfo) error {
		f, ok := info.Instance.Field(field)
		if !ok {
			return nil
		}
		var path *string
		if err := f.Decode(&path); err != nil {
			return fmt.Errorf("field %s: %w", field, err)
		}
		if path == nil || *path == "" {
			return nil
		}
		return s.Hook(*path)(w, e, info)
	}
}

func (s *Scripts) compile(path string) (*tengo.Compiled, error) {
	if c, ok := s.compiled[path]; ok {
		return c, nil
	}
	src, err := s.load(path)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for _, name := range scriptVars {
		if err := script.Add(name, nil); err != nil {
			return nil, fmt.Errorf("script %s: %w", path, err)
		}
	}
	c, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	s.compiled[path] = c
	return c, nil
}

func (s *Scripts) run(path string, info EntityInfo) (map[string]any, error) {
	c, err := s.compile(path)
	if err != nil {
		return nil, err
	}
	vars, err := scriptGlobals(info)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	run := c.Clone()
	for _, name := range scriptVars {
		if err := run.Set(name, vars[name]); err != nil {
			return nil, fmt.Errorf("script %s: set %s: %w", path, name, err)
		}
	}
	if err := run.Run(); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}

	data := run.Get("data")
	if data == nil || data.IsUndefined() {
		return nil, fmt.Errorf("script %s: global 'data' not set", path)
	}
	m, ok := toStringAnyMap(data.Value())
	if !ok {
		return nil, fmt.Errorf("script %s: global 'data' must be a map", path)
	}
	return m, nil
}

// scriptGlobals converts the entity into values tengo can hold.
func scriptGlobals(info EntityInfo) (map[string]any, error) {
	inst := info.Instance
	fields := make(map[string]any, len(inst.FieldInstances))
	for _, f := range inst.FieldInstances {
		var v any
		if err := f.Decode(&v); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Identifier, err)
		}
		fields[f.Identifier] = v
	}
	tags := make([]any, len(inst.Tags))
	for i, tag := range inst.Tags {
		tags[i] = tag
	}

	vars := map[string]any{
		"identifier": inst.Identifier,
		"iid":        inst.Iid,
		"grid":       []any{int(inst.Grid[0]), int(inst.Grid[1])},
		"size":       []any{int(inst.Width), int(inst.Height)},
		"tags":       tags,
		"fields":     fields,
		"level":      "",
		"layer":      "",
	}
	if info.Level != nil {
		vars["level"] = info.Level.Identifier
	}
	if info.Layer != nil {
		vars["layer"] = info.Layer.Identifier
	}
	return vars, nil
}

func toStringAnyMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
