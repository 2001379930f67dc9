// Package osgearth provides the control core of a geospatial terrain
// rendering engine.
//
// # Overview
//
// osgearth owns the lifecycle of a live terrain representation attached to
// a map model, coordinates incremental updates as the model's layers
// change, and manages a stack of rendering effects composed over the
// terrain. Actual geometry generation and draw submission are delegated to
// a scene-graph host; this module decides when that work must happen.
//
// # Quick Start
//
//	import (
//	    "github.com/RealRui/osgearth/mapmodel"
//	    "github.com/RealRui/osgearth/terrain"
//	    _ "github.com/RealRui/osgearth/terrain/gridengine"
//	)
//
//	m := mapmodel.New("world")
//	m.AddLayer(mapmodel.NewImageLayer("imagery"))
//
//	eng, err := terrain.CreateDefault(m)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
// # Architecture
//
// The module is organized into:
//   - geo: spatial primitives (Extent, TileKey, LevelRange)
//   - mapmodel: the layered map model and its change stream
//   - terrain: the engine core (lifecycle, dirty protocol, effects,
//     invalidation) and the engine factory registry
//   - terrain/gridengine: a simple concrete engine implementation
//   - compositor: CPU texture compositing of image layers
//   - scene: the adapter a scene-graph host traverses
//
// This package itself only carries the shared logger configuration; see
// [SetLogger].
package osgearth
