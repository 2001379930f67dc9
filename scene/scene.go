// Package scene adapts the terrain engine core to a scene-graph host.
// The core itself is a plain object; TerrainNode is the thin shim a host
// mounts into its graph, answering bounding queries and observing
// pending dirty state once per traversal cycle.
package scene

import (
	"github.com/RealRui/osgearth/geo"
	"github.com/RealRui/osgearth/terrain"
)

// Node is what the host asks of anything mounted in its graph.
type Node interface {
	// Bound returns the node's geographic bounding area. A degenerate
	// extent means "nothing to cull against yet".
	Bound() geo.Extent

	// Traverse is invoked once per host update/traversal cycle.
	Traverse(tv *Traversal)
}

// Traversal carries per-cycle state between the host and nodes.
type Traversal struct {
	// Frame is the host's frame number for this cycle.
	Frame uint64

	// DirtyCount is the engine dirty counter observed this cycle. The
	// host can compare against a stored value to detect staleness.
	DirtyCount uint64

	// RedrawRequired reports whether any traversed node had pending
	// dirty state this cycle.
	RedrawRequired bool
}

// TerrainNode mounts a terrain engine in a host scene graph.
type TerrainNode struct {
	engine *terrain.Engine
}

// Compile-time check that TerrainNode is mountable.
var _ Node = (*TerrainNode)(nil)

// NewTerrainNode wraps an engine for mounting. The engine keeps its own
// lifecycle; the node holds a non-owning reference.
func NewTerrainNode(e *terrain.Engine) *TerrainNode {
	return &TerrainNode{engine: e}
}

// Engine returns the wrapped engine.
func (n *TerrainNode) Engine() *terrain.Engine { return n.engine }

// Bound returns the attached map's world extent. Before the engine
// reaches PreInitDone the bound is degenerate, which hosts must accept.
func (n *TerrainNode) Bound() geo.Extent {
	if n.engine.State() < terrain.StatePreInitDone {
		return geo.Extent{}
	}
	return n.engine.SRS().WorldExtent()
}

// Traverse observes the engine's pending dirty state; after it returns,
// that state counts as seen by the host for this cycle.
func (n *TerrainNode) Traverse(tv *Traversal) {
	count, redraw := n.engine.ObserveRedraw()
	tv.DirtyCount = count
	if redraw {
		tv.RedrawRequired = true
	}
}
