package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/milk9111/ldtkworld/assets"
	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/ecs/entity"
	"github.com/milk9111/ldtkworld/ecs/system"
	"github.com/milk9111/ldtkworld/ldtk"
	"github.com/milk9111/ldtkworld/settings"
)

func main() {
	settingsPath := flag.String("settings", settings.DefaultFile, "spawn settings file")
	levels := flag.String("levels", "", "comma-separated level iids or identifiers (default: all)")
	cells := flag.Bool("cells", false, "list every tile and int grid cell")
	flag.Parse()

	s, err := settings.LoadSettings(*settingsPath)
	if err != nil {
		log.Fatal(err)
	}

	var project *ldtk.Project
	if flag.NArg() > 0 {
		project, err = ldtk.Load(flag.Arg(0))
	} else {
		project, err = assets.DemoProject()
	}
	if err != nil {
		log.Fatal(err)
	}

	iids, err := resolveLevels(project, *levels)
	if err != nil {
		log.Fatal(err)
	}
	if err := dump(os.Stdout, project, s, iids, *cells); err != nil {
		log.Fatal(err)
	}
}

// resolveLevels maps a comma-separated list of iids or identifiers to iids.
func resolveLevels(p *ldtk.Project, list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		var iids []string
		for _, lvl := range p.AllLevels() {
			iids = append(iids, lvl.Iid)
		}
		return iids, nil
	}
	var iids []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if lvl, ok := p.LevelByIid(name); ok {
			iids = append(iids, lvl.Iid)
			continue
		}
		if lvl, ok := p.LevelByIdentifier(name); ok {
			iids = append(iids, lvl.Iid)
			continue
		}
		return nil, fmt.Errorf("unknown level %q", name)
	}
	return iids, nil
}

// dump spawns iids into a fresh world and prints the resulting tree.
func dump(out io.Writer, p *ldtk.Project, s settings.Settings, iids []string, cells bool) error {
	w := ecs.NewWorld()
	world, err := entity.NewWorld(w, ldtk.NewHandle(p), iids...)
	if err != nil {
		return err
	}
	sched := system.NewLevelScheduler(s, entity.NewRegistry())
	sched.Update(w)
	// Worldly entities move under the world one pass after they spawn.
	sched.Update(w)

	var diags []entity.Diagnostic
	diags = append(diags, system.Diagnostics(w.Events().Drain())...)

	nodes, _ := entity.LevelNodes(w, world)
	for _, iid := range entity.RealizedLevels(w, world) {
		lvl := nodes[iid]
		info, _ := ecs.Get(w, lvl, component.LevelComponent.Kind())
		pos := entity.GlobalPosition(w, lvl)
		fmt.Fprintf(out, "level %s %q at (%g,%g)\n", iid, info.Identifier, pos.X, pos.Y)
		for _, layer := range ecs.Children(w, lvl) {
			dumpLayer(out, w, layer, cells)
		}
	}
	for _, iid := range entity.WorldlyIids(w, world) {
		fmt.Fprintf(out, "worldly %s\n", iid)
	}
	for _, d := range diags {
		fmt.Fprintf(out, "diagnostic %s\n", d)
	}
	return nil
}

func dumpLayer(out io.Writer, w *ecs.World, layer ecs.Entity, cells bool) {
	meta, ok := ecs.Get(w, layer, component.LayerMetadataComponent.Kind())
	if !ok {
		return
	}
	children := ecs.Children(w, layer)
	z := 0
	if rl, ok := ecs.Get(w, layer, component.RenderLayerComponent.Kind()); ok {
		z = rl.Index
	}
	fmt.Fprintf(out, "  layer %s %s z=%d nodes=%d\n", meta.Identifier, meta.Type, z, len(children))
	for _, e := range children {
		if inst, ok := ecs.Get(w, e, component.EntityInstanceComponent.Kind()); ok {
			pos := entity.GlobalPosition(w, e)
			fmt.Fprintf(out, "    entity %s %s at (%g,%g)\n", inst.Identifier, inst.Iid, pos.X, pos.Y)
			continue
		}
		if !cells {
			continue
		}
		g, ok := ecs.Get(w, e, component.GridCoordsComponent.Kind())
		if !ok {
			continue
		}
		line := fmt.Sprintf("    cell (%d,%d)", g.X, g.Y)
		if c, ok := ecs.Get(w, e, component.IntGridCellComponent.Kind()); ok {
			line += fmt.Sprintf(" value=%d", c.Value)
		}
		if t, ok := ecs.Get(w, e, component.TileComponent.Kind()); ok {
			ids := make([]string, len(t.Stack))
			for i, ref := range t.Stack {
				ids[i] = fmt.Sprint(ref.TileID)
			}
			line += " tiles=" + strings.Join(ids, "+")
		}
		if m, ok := ecs.Get(w, e, component.TileMetadataComponent.Kind()); ok {
			line += fmt.Sprintf(" data=%q", m.Data)
		}
		fmt.Fprintln(out, line)
	}
}
