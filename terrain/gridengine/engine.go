// Package gridengine is the reference terrain engine implementation: a
// uniform grid over the geodetic tiling profile with lazily built tiles
// and incremental, set-based region invalidation.
//
// Importing the package registers it with the terrain factory registry
// under [Name]:
//
//	import _ "github.com/RealRui/osgearth/terrain/gridengine"
//	eng, err := terrain.CreateEngine(gridengine.Name, m)
package gridengine

import (
	"fmt"

	"github.com/RealRui/osgearth"
	"github.com/RealRui/osgearth/geo"
	"github.com/RealRui/osgearth/mapmodel"
	"github.com/RealRui/osgearth/terrain"
)

// Name is the registry name of this engine.
const Name = "grid"

// TileSize is the edge length of a tile in samples.
const TileSize = 256

// DefaultMaxDepth is the deepest level tiles are built at unless
// overridden with WithMaxDepth.
const DefaultMaxDepth = 10

func init() {
	terrain.RegisterEngine(Name, func() terrain.Impl { return New() })
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithMaxDepth limits how deep tiles may be built. Depths beyond
// geo.MaxLevel are clamped.
func WithMaxDepth(d int) Option {
	return func(e *Engine) {
		if d < 0 {
			d = 0
		}
		if d > geo.MaxLevel {
			d = geo.MaxLevel
		}
		e.maxDepth = d
	}
}

// Engine is the grid tiling strategy. It tracks which tiles have been
// built and which of those are stale; stale tiles rebuild from the
// current map state the next time they are requested.
//
// Engine implements terrain.Impl, terrain.RegionInvalidator,
// terrain.VerticalScaleObserver and terrain.TerrainProvider. Like the
// core it serves, it expects a single owner goroutine.
type Engine struct {
	maxDepth int

	core  *terrain.Engine
	m     *mapmodel.Map
	world geo.Extent
	scale float64

	generated map[geo.TileKey]*TileNode
	stale     map[geo.TileKey]struct{}
}

// New creates an unattached grid engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxDepth:  DefaultMaxDepth,
		scale:     1.0,
		generated: make(map[geo.TileKey]*TileNode),
		stale:     make(map[geo.TileKey]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PreInitialize captures the map and its world extent. Part of attach
// phase 1.
func (e *Engine) PreInitialize(core *terrain.Engine, m *mapmodel.Map) error {
	e.core = core
	e.m = m
	e.world = m.SRS().WorldExtent()
	e.scale = core.VerticalScale()
	return nil
}

// PostInitialize completes attach phase 2. Tiles are built lazily, so
// there is no content to bootstrap here.
func (e *Engine) PostInitialize(core *terrain.Engine) error {
	osgearth.Logger().Debug("gridengine: ready",
		"maxDepth", e.maxDepth, "world", e.world.String())
	return nil
}

// CreateTileNode builds (or rebuilds) the standalone renderable for one
// tile and clears any stale mark on it. The node carries no children and
// no live update wiring; the host composes nodes itself.
func (e *Engine) CreateTileNode(key geo.TileKey) (terrain.TileNode, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("gridengine: invalid tile key %v", key)
	}
	if key.Level > e.maxDepth {
		return nil, fmt.Errorf("gridengine: level %d beyond max depth %d", key.Level, e.maxDepth)
	}
	node := &TileNode{key: key, bound: key.Extent(e.world)}
	e.generated[key] = node
	delete(e.stale, key)
	return node, nil
}

// InvalidateRegion marks exactly the built tiles intersecting the extent
// within the level range as stale. Set semantics make repeated
// invalidation of the same region idempotent.
func (e *Engine) InvalidateRegion(extent geo.Extent, levels geo.LevelRange) {
	for key := range e.generated {
		if !levels.Contains(key.Level) {
			continue
		}
		if key.Extent(e.world).Intersects(extent) {
			e.stale[key] = struct{}{}
		}
	}
	osgearth.Logger().Debug("gridengine: invalidated region",
		"extent", extent.String(), "levels", levels.String(), "stale", len(e.stale))
}

// VerticalScaleChanged tracks the engine's exaggeration for height
// queries.
func (e *Engine) VerticalScaleChanged(scale float64) { e.scale = scale }

// Terrain exposes this engine as the core's queryable terrain view.
func (e *Engine) Terrain() terrain.Terrain { return e }

// HeightAt samples the first visible elevation layer with data at the
// coordinate, scaled by the engine's vertical exaggeration.
func (e *Engine) HeightAt(lon, lat float64) (float64, bool) {
	if e.m == nil || !e.world.Contains(lon, lat) {
		return 0, false
	}
	for _, l := range e.m.Layers() {
		el, ok := l.(*mapmodel.ElevationLayer)
		if !ok {
			continue
		}
		if h, ok := el.ElevationAt(lon, lat); ok {
			return h * e.scale, true
		}
	}
	return 0, false
}

// HasTile reports whether current (built and non-stale) content exists
// for the tile.
func (e *Engine) HasTile(key geo.TileKey) bool {
	if _, ok := e.generated[key]; !ok {
		return false
	}
	_, stale := e.stale[key]
	return !stale
}

// Resolution returns degrees per sample at the given level.
func (e *Engine) Resolution(level int) float64 {
	if !e.world.IsValid() || level < 0 {
		return 0
	}
	cols, _ := geo.TilesAtLevel(level)
	return e.world.Width() / float64(cols) / TileSize
}

// StaleCount returns the number of built tiles currently marked stale.
func (e *Engine) StaleCount() int { return len(e.stale) }

// GeneratedCount returns the number of tiles built so far.
func (e *Engine) GeneratedCount() int { return len(e.generated) }
