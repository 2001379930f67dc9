package terrain

import (
	"github.com/RealRui/osgearth/geo"
	"github.com/RealRui/osgearth/mapmodel"
)

// Compositor is the attach point for the texture-compositing engine that
// blends image layers into tile textures. Its blending internals are its
// own business; the core only tells it which layers exist and which
// areas went stale.
type Compositor interface {
	// LayerAdded notifies that an image layer joined the map.
	LayerAdded(l *mapmodel.ImageLayer)

	// LayerRemoved notifies that an image layer left the map.
	LayerRemoved(l *mapmodel.ImageLayer)

	// Invalidate drops cached texture state intersecting the extent.
	Invalidate(extent geo.Extent)
}

// Compositor returns the current texture compositor, or nil.
func (e *Engine) Compositor() Compositor { return e.comp }

// SetCompositor replaces the texture compositor attach point. A live
// engine's implementation is notified through its TextureCombiningUpdated
// hook, and a redraw is requested.
func (e *Engine) SetCompositor(c Compositor) {
	e.comp = c
	if e.state == StatePostInitDone {
		if o, ok := e.impl.(TextureCombiningObserver); ok {
			o.TextureCombiningUpdated()
		}
	}
	e.Dirty()
}
