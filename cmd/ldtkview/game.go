package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ldtkworld/assets"
	"github.com/milk9111/ldtkworld/common"
	"github.com/milk9111/ldtkworld/config"
	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/ecs/entity"
	"github.com/milk9111/ldtkworld/ecs/render"
	"github.com/milk9111/ldtkworld/ecs/system"
	"github.com/milk9111/ldtkworld/ldtk"
	"github.com/milk9111/ldtkworld/settings"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	cfg      config.Config
	settings settings.Settings

	w         *ecs.World
	world     ecs.Entity
	handle    *ldtk.Handle
	registry  *entity.Registry
	scripts   *entity.Scripts
	scheduler *ecs.Scheduler
	renderer  *render.Renderer
	watcher   *settings.Watcher

	selected  int
	selecting bool
	version   uint64
	camera    render.Camera
	lastDiag  string
}

func NewGame(cfg config.Config, s settings.Settings) (*Game, error) {
	handle, err := openProject(cfg.Project)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	world, err := entity.NewWorld(w, handle)
	if err != nil {
		return nil, err
	}

	scripts := entity.NewScripts(settings.LoadScript)
	registry := newRegistry(scripts)
	g := &Game{
		cfg:       cfg,
		settings:  s,
		w:         w,
		world:     world,
		handle:    handle,
		registry:  registry,
		scripts:   scripts,
		scheduler: system.NewLevelScheduler(s, registry),
		renderer:  &render.Renderer{Debug: cfg.Debug},
		camera:    render.Camera{Scale: cfg.Scale},
	}

	if cfg.Watch {
		g.watcher, err = settings.NewWatcher(watchDirs(cfg.Project)...)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", cfg.Project, err)
		}
	}
	return g, nil
}

func openProject(path string) (*ldtk.Handle, error) {
	if path != "" {
		return ldtk.LoadAsync(path), nil
	}
	p, err := assets.DemoProject()
	if err != nil {
		return nil, fmt.Errorf("load demo project: %w", err)
	}
	return ldtk.NewHandle(p), nil
}

// newRegistry keeps every entity's instance and grid cell, runs the tengo
// script named by a "script" field, and lets entities tagged "worldly"
// outlive their level.
func newRegistry(scripts *entity.Scripts) *entity.Registry {
	r := entity.NewRegistry()
	r.RegisterEntity("", entity.Hooks(entity.DefaultEntityHook, entity.GridCoordsHook, scripts.FieldHook("script"), worldlyIfTagged))
	return r
}

func worldlyIfTagged(w *ecs.World, e ecs.Entity, info entity.EntityInfo) error {
	if !slices.Contains(info.Instance.Tags, "worldly") {
		return nil
	}
	return entity.WorldlyHook(w, e, info)
}

// watchDirs is the project directory plus, when they exist, the directory
// LDtk writes external levels to and the local scripts directory.
func watchDirs(project string) []string {
	dirs := []string{filepath.Dir(project)}
	for _, dir := range []string{strings.TrimSuffix(project, filepath.Ext(project)), "scripts"} {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// initialSelection turns the configured level into a selection: an iid, an
// index, or an identifier, tried in that order.
func initialSelection(p *ldtk.Project, level string) component.LevelSelection {
	if level == "" {
		return component.SelectIndex(0)
	}
	if _, ok := p.LevelByIid(level); ok {
		return component.SelectIid(level)
	}
	if i, err := strconv.Atoi(level); err == nil {
		return component.SelectIndex(i)
	}
	return component.SelectIdentifier(level)
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("watch: %v", err)
		}
	}
}

func (g *Game) Update() error {
	project, ready := g.handle.Project()
	if ready && !g.selecting {
		g.selecting = true
		g.selectLevel(initialSelection(project, g.cfg.Level))
	}

	g.pollWatcher()
	if v := g.handle.Version(); v != g.version {
		if g.version != 0 {
			log.Printf("ldtk: project reloaded (version %d)", v)
			render.ForgetImages()
			if err := entity.Respawn(g.w, g.world); err != nil {
				log.Printf("respawn world: %v", err)
			}
		}
		g.version = v
	}

	if ready {
		g.handleInput(project)
	}

	g.scheduler.Update(g.w)
	for _, evt := range g.w.Events().Drain() {
		switch data := evt.Data.(type) {
		case system.LevelEvent:
			if g.cfg.Debug {
				log.Printf("level %s: %s", data.Iid, data.Kind)
			}
		case entity.Diagnostic:
			g.lastDiag = data.String()
		}
	}

	if ready {
		g.follow(project)
	}
	return nil
}

func (g *Game) selectLevel(sel component.LevelSelection) {
	if err := entity.SelectLevel(g.w, g.world, sel); err != nil {
		log.Printf("select level: %v", err)
	}
}

func (g *Game) handleInput(project *ldtk.Project) {
	n := len(project.AllLevels())
	if n == 0 {
		return
	}
	if sel, ok := ecs.Get(g.w, g.world, component.LevelSelectionComponent.Kind()); ok {
		if lvl, ok := sel.Resolve(project); ok {
			g.selected = slices.Index(project.AllLevels(), lvl)
		}
	}

	step := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		step = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		step = -1
	}
	if step != 0 {
		g.selected = (g.selected + step + n) % n
		g.selectLevel(component.SelectIndex(g.selected))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		target := g.world
		if !ebiten.IsKeyPressed(ebiten.KeyShift) {
			lvl, ok := g.selectedNode(project)
			if !ok {
				return
			}
			target = lvl
		}
		if err := entity.Respawn(g.w, target); err != nil {
			log.Printf("respawn: %v", err)
		}
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				return
			}
			g.fileChanged(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) fileChanged(path string) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".tengo" {
		g.scripts.Reset()
		if err := entity.Respawn(g.w, g.world); err != nil {
			log.Printf("respawn world: %v", err)
		}
		return
	}
	if ext != ".yaml" && ext != ".yml" {
		g.handle.Reload()
		return
	}
	if filepath.Base(path) != filepath.Base(g.cfg.Settings) {
		return
	}
	s, err := settings.LoadSettings(g.cfg.Settings)
	if err != nil {
		log.Printf("settings: %v", err)
		return
	}
	g.settings = s
	g.scheduler = system.NewLevelScheduler(s, g.registry)
	if err := entity.Respawn(g.w, g.world); err != nil {
		log.Printf("respawn world: %v", err)
	}
}

func (g *Game) selectedLevel(project *ldtk.Project) (*ldtk.Level, bool) {
	sel, ok := ecs.Get(g.w, g.world, component.LevelSelectionComponent.Kind())
	if !ok {
		return nil, false
	}
	return sel.Resolve(project)
}

func (g *Game) selectedNode(project *ldtk.Project) (ecs.Entity, bool) {
	lvl, ok := g.selectedLevel(project)
	if !ok {
		return 0, false
	}
	return entity.LevelNode(g.w, g.world, lvl.Iid)
}

// follow centres the camera on the selected level once it is spawned.
func (g *Game) follow(project *ldtk.Project) {
	lvl, ok := g.selectedLevel(project)
	if !ok {
		return
	}
	node, ok := entity.LevelNode(g.w, g.world, lvl.Iid)
	if !ok {
		return
	}
	pos := entity.GlobalPosition(g.w, node)
	g.camera.X = pos.X + float64(lvl.PxWid)/2
	g.camera.Y = pos.Y + float64(lvl.PxHei)/2
}

func (g *Game) clearColor(project *ldtk.Project) (color.RGBA, bool) {
	if !g.settings.SetClearColor || project == nil {
		return color.RGBA{}, false
	}
	if lvl, ok := g.selectedLevel(project); ok {
		if c, ok := common.ParseHexColor(lvl.BgColor); ok {
			return c, true
		}
	}
	return common.ParseHexColor(project.BgColor)
}

func (g *Game) Draw(screen *ebiten.Image) {
	project, ready := g.handle.Project()
	if c, ok := g.clearColor(project); ok {
		screen.Fill(c)
	}

	g.renderer.Draw(screen, g.w, g.world, g.camera)

	status := fmt.Sprintf("FPS: %.2f", ebiten.ActualFPS())
	switch {
	case !ready:
		status += fmt.Sprintf("    loading %s", g.handle.Path())
		if err := g.handle.Err(); err != nil && !errors.Is(err, ldtk.ErrNotReady) {
			status += fmt.Sprintf(": %v", err)
		}
	default:
		if lvl, ok := g.selectedLevel(project); ok {
			status += fmt.Sprintf("    level %d/%d %s", g.selected+1, len(project.AllLevels()), lvl.Identifier)
		}
		status += fmt.Sprintf("    spawned %v    worldly %d", entity.RealizedLevels(g.w, g.world), len(entity.WorldlyIids(g.w, g.world)))
	}
	if g.lastDiag != "" {
		status += "\n" + g.lastDiag
	}
	ebitenutil.DebugPrint(screen, status+"\narrows: level    R: respawn level    shift+R: respawn world")
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
