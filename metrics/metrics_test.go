package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/RealRui/osgearth/geo"
	"github.com/RealRui/osgearth/mapmodel"
	"github.com/RealRui/osgearth/terrain"
	"github.com/RealRui/osgearth/terrain/gridengine"
)

func gather(t *testing.T, c *Collector) map[string]float64 {
	t.Helper()
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				out[mf.GetName()] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	return out
}

func TestCollectorSamplesEngine(t *testing.T) {
	m := mapmodel.New("test")
	e, err := terrain.CreateEngine(gridengine.Name, m)
	if err != nil {
		t.Fatalf("CreateEngine: %v", err)
	}
	defer e.Close()

	g := e.Impl().(*gridengine.Engine)
	if _, err := g.CreateTileNode(geo.TileKey{Level: 0, X: 0, Y: 0}); err != nil {
		t.Fatalf("CreateTileNode: %v", err)
	}
	e.InvalidateRegion(geo.WGS84().WorldExtent())

	got := gather(t, NewCollector(e))

	if got["osgearth_terrain_dirty_total"] != float64(e.DirtyCount()) {
		t.Errorf("dirty_total = %g, want %d", got["osgearth_terrain_dirty_total"], e.DirtyCount())
	}
	if got["osgearth_terrain_lifecycle_state"] != float64(terrain.StatePostInitDone) {
		t.Errorf("lifecycle_state = %g, want %d",
			got["osgearth_terrain_lifecycle_state"], terrain.StatePostInitDone)
	}
	if got["osgearth_terrain_stale_tiles"] != 1 {
		t.Errorf("stale_tiles = %g, want 1", got["osgearth_terrain_stale_tiles"])
	}
	if _, ok := got["osgearth_terrain_effects"]; !ok {
		t.Error("effects gauge missing")
	}
}

func TestCollectorOmitsStaleTilesWithoutSupport(t *testing.T) {
	e := terrain.New(nil)
	defer e.Close()

	got := gather(t, NewCollector(e))
	if _, ok := got["osgearth_terrain_stale_tiles"]; ok {
		t.Error("stale_tiles should be absent for engines without a stale set")
	}
	if _, ok := got["osgearth_terrain_dirty_total"]; !ok {
		t.Error("dirty_total missing")
	}
}
