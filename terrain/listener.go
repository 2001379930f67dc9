package terrain

import (
	"github.com/RealRui/osgearth"
	"github.com/RealRui/osgearth/mapmodel"
)

// layerListener translates raw map changes into redraw requests. Only
// image-layer changes affect the redraw contract; elevation- and
// model-layer changes, and change kinds this core does not model, are
// silently ignored so newer map versions stay forward compatible.
//
// Every recognized change results in exactly one Dirty on the engine.
// The listener never invalidates regions itself — that decision belongs
// to the implementation.
type layerListener struct {
	engine *Engine

	// snapshot resolves layer identity without touching the live map on
	// the hot path. Entries are added lazily for layers that joined the
	// map after subscription.
	snapshot map[mapmodel.LayerUID]mapmodel.Layer
}

func newLayerListener(e *Engine) *layerListener {
	l := &layerListener{
		engine:   e,
		snapshot: make(map[mapmodel.LayerUID]mapmodel.Layer),
	}
	for _, layer := range e.m.Layers() {
		l.snapshot[layer.UID()] = layer
	}
	return l
}

// onChange is the subscription handler. Runs synchronously on the
// mutating goroutine, in map emission order.
func (l *layerListener) onChange(ch mapmodel.Change) {
	layer := ch.Layer
	if layer == nil {
		return
	}

	// Resolve against the snapshot; a miss means the layer appeared after
	// subscription, so re-resolve against the live map rather than drop
	// the event. Removal events resolve to the payload itself since the
	// layer no longer lives in the map.
	if _, known := l.snapshot[layer.UID()]; !known && ch.Kind != mapmodel.ChangeLayerRemoved {
		if live := l.engine.m.LayerByUID(layer.UID()); live != nil {
			layer = live
		}
		l.snapshot[layer.UID()] = layer
	}

	img, isImage := layer.(*mapmodel.ImageLayer)

	switch ch.Kind {
	case mapmodel.ChangeLayerAdded:
		if !isImage {
			return
		}
		if l.engine.comp != nil {
			l.engine.comp.LayerAdded(img)
		}
	case mapmodel.ChangeLayerRemoved:
		delete(l.snapshot, layer.UID())
		if !isImage {
			return
		}
		if l.engine.comp != nil {
			l.engine.comp.LayerRemoved(img)
		}
	case mapmodel.ChangeToggleVisible,
		mapmodel.ChangeOpacity,
		mapmodel.ChangeColorFilters,
		mapmodel.ChangeVisibleRange:
		if !isImage {
			return
		}
	default:
		// Forward compatibility: unknown change kinds are not errors.
		osgearth.Logger().Debug("terrain: ignoring unrecognized map change",
			"kind", ch.Kind.String(), "layer", layer.Name())
		return
	}

	l.engine.Dirty()
}
