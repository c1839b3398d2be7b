// Package settings holds the spawn settings read from ldtk.yaml.
package settings

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var SettingsFS embed.FS

// DefaultFile is the settings file looked up when none is named.
const DefaultFile = "ldtk.yaml"

type SpawnBehavior string

const (
	// ZeroTranslation spawns every level at the world origin.
	ZeroTranslation SpawnBehavior = "zero_translation"
	// WorldTranslation places levels at their LDtk world position.
	WorldTranslation SpawnBehavior = "world_translation"
)

type IntGridRendering string

const (
	IntGridColorful  IntGridRendering = "colorful"
	IntGridInvisible IntGridRendering = "invisible"
)

type LevelBackground string

const (
	BackgroundRendered    LevelBackground = "rendered"
	BackgroundNonexistent LevelBackground = "nonexistent"
)

type Settings struct {
	LevelSpawnBehavior SpawnBehavior    `yaml:"level_spawn_behavior"`
	LoadLevelNeighbors bool             `yaml:"load_level_neighbors"`
	IntGridRendering   IntGridRendering `yaml:"int_grid_rendering"`
	LevelBackground    LevelBackground  `yaml:"level_background"`
	SetClearColor      bool             `yaml:"set_clear_color"`
}

func Default() Settings {
	return Settings{
		LevelSpawnBehavior: ZeroTranslation,
		IntGridRendering:   IntGridColorful,
		LevelBackground:    BackgroundRendered,
	}
}

// UseWorldTranslation reports whether levels keep their world position.
func (s Settings) UseWorldTranslation() bool {
	return s.LevelSpawnBehavior == WorldTranslation
}

// LoadNeighbors reports whether a level selection also pulls in neighbours.
// Neighbours only make sense when levels sit at their world positions.
func (s Settings) LoadNeighbors() bool {
	return s.UseWorldTranslation() && s.LoadLevelNeighbors
}

func (s Settings) Validate() error {
	switch s.LevelSpawnBehavior {
	case ZeroTranslation, WorldTranslation:
	default:
		return fmt.Errorf("settings: unknown level_spawn_behavior %q", s.LevelSpawnBehavior)
	}
	switch s.IntGridRendering {
	case IntGridColorful, IntGridInvisible:
	default:
		return fmt.Errorf("settings: unknown int_grid_rendering %q", s.IntGridRendering)
	}
	switch s.LevelBackground {
	case BackgroundRendered, BackgroundNonexistent:
	default:
		return fmt.Errorf("settings: unknown level_background %q", s.LevelBackground)
	}
	return nil
}

// Parse overlays data on the defaults.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettings reads name from disk, falling back to the embedded copy.
func LoadSettings(name string) (Settings, error) {
	if name == "" {
		name = DefaultFile
	}
	data, err := Load(name)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: load %s: %w", name, err)
	}
	return Parse(data)
}

// Load prefers a file on disk so settings can be tuned without a rebuild.
func Load(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return SettingsFS.ReadFile(cleanSettingsPath(name))
}

func cleanSettingsPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "settings/"); ok {
		return after
	}
	return filepath.Base(s)
}
