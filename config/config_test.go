package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RealRui/osgearth/geo"
	"github.com/RealRui/osgearth/mapmodel"
	"github.com/RealRui/osgearth/terrain"
)

const earthFile = `
map:
  name: world
  layers:
    - name: imagery
      kind: image
      opacity: 0.8
      max_range: 50000
    - name: overlay
      kind: image
      visible: false
    - name: dem
      kind: elevation
    - name: buildings
      kind: model
engine:
  name: test-config-engine
  vertical_scale: 1.5
`

// stubImpl is the minimal engine implementation for registry tests.
type stubImpl struct{}

func (stubImpl) PreInitialize(*terrain.Engine, *mapmodel.Map) error { return nil }
func (stubImpl) PostInitialize(*terrain.Engine) error               { return nil }
func (stubImpl) CreateTileNode(geo.TileKey) (terrain.TileNode, error) {
	return nil, os.ErrNotExist
}

func TestParseAndBuildMap(t *testing.T) {
	cfg, err := Parse([]byte(earthFile))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	m, err := cfg.BuildMap()
	if err != nil {
		t.Fatalf("BuildMap: %v", err)
	}
	if m.Name() != "world" {
		t.Errorf("map name = %q, want %q", m.Name(), "world")
	}
	layers := m.Layers()
	if len(layers) != 4 {
		t.Fatalf("len(layers) = %d, want 4", len(layers))
	}

	img := layers[0].(*mapmodel.ImageLayer)
	if img.Opacity() != 0.8 {
		t.Errorf("imagery opacity = %g, want 0.8", img.Opacity())
	}
	if img.VisibleRange().Max != 50000 {
		t.Errorf("imagery max range = %g, want 50000", img.VisibleRange().Max)
	}
	if overlay := layers[1].(*mapmodel.ImageLayer); overlay.Visible() {
		t.Error("overlay should be hidden")
	}
	if layers[2].Kind() != mapmodel.KindElevation || layers[3].Kind() != mapmodel.KindModel {
		t.Error("layer kinds not preserved in declaration order")
	}
}

func TestParseUnknownLayerKind(t *testing.T) {
	cfg, err := Parse([]byte("map:\n  layers:\n    - name: x\n      kind: vector\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := cfg.BuildMap(); err == nil {
		t.Error("BuildMap should reject unknown layer kinds")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("map: [")); err == nil {
		t.Error("Parse should fail on malformed YAML")
	}
}

func TestEnvironmentOverridesEngine(t *testing.T) {
	t.Setenv("OSGEARTH_ENGINE", "env-engine")

	cfg, err := Parse([]byte(earthFile))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Engine.Name != "env-engine" {
		t.Errorf("engine name = %q, want env override %q", cfg.Engine.Name, "env-engine")
	}
	if cfg.Engine.VerticalScale != 1.5 {
		t.Errorf("vertical scale = %g, want YAML value 1.5", cfg.Engine.VerticalScale)
	}
}

func TestCreateEngineFromConfig(t *testing.T) {
	terrain.RegisterEngine("test-config-engine", func() terrain.Impl { return stubImpl{} })
	defer terrain.UnregisterEngine("test-config-engine")

	cfg, err := Parse([]byte(earthFile))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := cfg.BuildMap()
	if err != nil {
		t.Fatalf("BuildMap: %v", err)
	}

	e, err := cfg.CreateEngine(m)
	if err != nil {
		t.Fatalf("CreateEngine: %v", err)
	}
	defer e.Close()

	if e.VerticalScale() != 1.5 {
		t.Errorf("VerticalScale() = %g, want 1.5", e.VerticalScale())
	}
	if e.State() != terrain.StatePostInitDone {
		t.Errorf("State() = %v, want PostInitDone", e.State())
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.earth.yaml")
	if err := os.WriteFile(path, []byte(earthFile), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Map.Name != "world" {
		t.Errorf("map name = %q, want %q", cfg.Map.Name, "world")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}
