package terrain

import (
	"github.com/RealRui/osgearth/geo"
	"github.com/RealRui/osgearth/mapmodel"
)

// Impl is the surface a concrete tiling strategy implements. The core
// owns lifecycle, dirty signaling and the effect stack; the Impl owns
// tile content.
//
// PreInitialize runs during the first attach phase, after the engine's
// map and spatial reference are set but before the engine is observable
// as PreInitDone. PostInitialize runs during the second phase and may
// rely on the spatial reference established by the first.
//
// CreateTileNode produces a standalone renderable for one tile: no
// children, no paging, no live update wiring. The host assembles those
// into whatever graph it traverses.
type Impl interface {
	PreInitialize(e *Engine, m *mapmodel.Map) error
	PostInitialize(e *Engine) error
	CreateTileNode(key geo.TileKey) (TileNode, error)
}

// RegionInvalidator is implemented by Impls that support incremental
// tile replacement. Absent this interface, InvalidateRegion on the core
// degrades to requesting full regeneration (a correctness-preserving
// fallback). The level range is normalized before the call.
type RegionInvalidator interface {
	InvalidateRegion(extent geo.Extent, levels geo.LevelRange)
}

// VerticalScaleObserver is implemented by Impls that react to runtime
// vertical-scale changes. The hook fires only after PostInitDone.
type VerticalScaleObserver interface {
	VerticalScaleChanged(scale float64)
}

// SamplingRatioObserver is implemented by Impls that react to runtime
// elevation-sampling-ratio changes. The hook fires only after
// PostInitDone.
type SamplingRatioObserver interface {
	ElevationSamplingRatioChanged(ratio float64)
}

// TextureCombiningObserver is implemented by Impls that need to rebuild
// state after the texture compositor changes. The hook fires only after
// PostInitDone.
type TextureCombiningObserver interface {
	TextureCombiningUpdated()
}

// TerrainProvider is implemented by Impls that back the engine's
// queryable terrain view. Without it the engine serves an empty view.
type TerrainProvider interface {
	Terrain() Terrain
}

// TileNode is a standalone renderable for one tile.
type TileNode interface {
	// Key returns the tile identity the node was built for.
	Key() geo.TileKey

	// Bound returns the geographic area the node covers.
	Bound() geo.Extent
}

// Terrain is the queryable view of the live terrain.
type Terrain interface {
	// HeightAt returns the terrain height in meters at a geodetic
	// coordinate, and whether any elevation data covers it.
	HeightAt(lon, lat float64) (float64, bool)

	// HasTile reports whether current (non-stale) content exists for the
	// tile.
	HasTile(key geo.TileKey) bool

	// Resolution returns the ground resolution in degrees per sample at
	// the given level.
	Resolution(level int) float64
}

// emptyTerrain answers every query with "no data". Used before attach
// and for Impls that provide no terrain view.
type emptyTerrain struct{}

func (emptyTerrain) HeightAt(lon, lat float64) (float64, bool) { return 0, false }
func (emptyTerrain) HasTile(geo.TileKey) bool                  { return false }
func (emptyTerrain) Resolution(int) float64                    { return 0 }
