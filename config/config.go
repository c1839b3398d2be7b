// Package config reads process configuration for the viewer: a .env file,
// then the environment, then command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds viewer configuration. An empty Project opens the embedded demo.
type Config struct {
	Project  string  `env:"LDTK_PROJECT"`
	Level    string  `env:"LDTK_LEVEL"`
	Settings string  `env:"LDTK_SETTINGS" envDefault:"ldtk.yaml"`
	Watch    bool    `env:"LDTK_WATCH"`
	Debug    bool    `env:"LDTK_DEBUG"`
	Scale    float64 `env:"LDTK_SCALE"    envDefault:"2"`
}

// LoadDotEnv reads files (".env" when none are named) into the environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig parses the environment and then flags into a Config. The first
// positional argument, if any, overrides the project path.
func ParseConfig(fset *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fset.StringVar(&cfg.Project, "project", cfg.Project, "path to the .ldtk project")
	fset.StringVar(&cfg.Level, "level", cfg.Level, "level to select first (iid or identifier)")
	fset.StringVar(&cfg.Settings, "settings", cfg.Settings, "spawn settings file")
	fset.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload the project when it changes on disk")
	fset.BoolVar(&cfg.Debug, "debug", cfg.Debug, "draw grid and entity outlines")
	fset.Float64Var(&cfg.Scale, "scale", cfg.Scale, "pixel scale")
	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}
	if fset.NArg() > 0 {
		cfg.Project = fset.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Watch && c.Project == "" {
		return errors.New("config: -watch needs a project file")
	}
	if c.Scale <= 0 {
		return fmt.Errorf("config: scale must be positive, got %v", c.Scale)
	}
	return nil
}

// Load is ParseConfig preceded by the .env file.
func Load(fset *flag.FlagSet, args []string) (Config, error) {
	if err := LoadDotEnv(); err != nil {
		log.Printf("config: %v", err)
	}
	return ParseConfig(fset, args)
}
