// Package config loads "earth file" style YAML descriptions of a map and
// its terrain engine, with optional overrides from the process
// environment (and a .env file, for development convenience).
//
// A minimal earth file:
//
//	map:
//	  name: world
//	  layers:
//	    - name: imagery
//	      kind: image
//	    - name: dem
//	      kind: elevation
//	engine:
//	  name: grid
//	  vertical_scale: 1.5
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/RealRui/osgearth/mapmodel"
	"github.com/RealRui/osgearth/terrain"
)

// Config is the root of an earth file.
type Config struct {
	Map    MapConfig    `yaml:"map"`
	Engine EngineConfig `yaml:"engine"`
}

// MapConfig describes the map model to build.
type MapConfig struct {
	Name   string        `yaml:"name"`
	Layers []LayerConfig `yaml:"layers"`
}

// LayerConfig describes one layer. Kind is "image", "elevation" or
// "model". Omitted Visible/Opacity keep the layer defaults (visible,
// fully opaque).
type LayerConfig struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"`
	Visible  *bool    `yaml:"visible"`
	Opacity  *float64 `yaml:"opacity"`
	MinRange float64  `yaml:"min_range"`
	MaxRange float64  `yaml:"max_range"`
}

// EngineConfig selects and tunes the terrain engine. An empty Name means
// "best available" via the factory registry.
type EngineConfig struct {
	Name          string  `yaml:"name" env:"OSGEARTH_ENGINE"`
	VerticalScale float64 `yaml:"vertical_scale" env:"OSGEARTH_VERTICAL_SCALE"`
}

// Parse decodes an earth file and applies environment overrides on top.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := env.Parse(&cfg.Engine); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	return &cfg, nil
}

// Load reads an earth file from disk. A .env file in the working
// directory is honored if present; a missing one is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// BuildMap constructs the map model the config describes, layers in
// declaration order.
func (c *Config) BuildMap() (*mapmodel.Map, error) {
	m := mapmodel.New(c.Map.Name)
	for _, lc := range c.Map.Layers {
		layer, err := buildLayer(lc)
		if err != nil {
			return nil, err
		}
		m.AddLayer(layer)
	}
	return m, nil
}

// CreateEngine constructs and attaches the configured terrain engine to
// the map.
func (c *Config) CreateEngine(m *mapmodel.Map) (*terrain.Engine, error) {
	var opts []terrain.Option
	if c.Engine.VerticalScale != 0 {
		opts = append(opts, terrain.WithVerticalScale(c.Engine.VerticalScale))
	}
	if c.Engine.Name == "" {
		return terrain.CreateDefault(m, opts...)
	}
	return terrain.CreateEngine(c.Engine.Name, m, opts...)
}

func buildLayer(lc LayerConfig) (mapmodel.Layer, error) {
	switch lc.Kind {
	case "image":
		l := mapmodel.NewImageLayer(lc.Name)
		if lc.Visible != nil {
			l.SetVisible(*lc.Visible)
		}
		if lc.Opacity != nil {
			l.SetOpacity(*lc.Opacity)
		}
		if lc.MinRange != 0 || lc.MaxRange != 0 {
			l.SetVisibleRange(mapmodel.VisibleRange{Min: lc.MinRange, Max: lc.MaxRange})
		}
		return l, nil
	case "elevation":
		l := mapmodel.NewElevationLayer(lc.Name)
		if lc.Visible != nil {
			l.SetVisible(*lc.Visible)
		}
		return l, nil
	case "model":
		l := mapmodel.NewModelLayer(lc.Name)
		if lc.Visible != nil {
			l.SetVisible(*lc.Visible)
		}
		return l, nil
	default:
		return nil, fmt.Errorf("config: unknown layer kind %q for layer %q", lc.Kind, lc.Name)
	}
}
