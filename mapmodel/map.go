package mapmodel

import (
	"sync"

	"github.com/RealRui/osgearth/geo"
)

// Map is an ordered collection of layers plus spatial-reference metadata.
// Layer order is insertion order and doubles as draw order: later image
// layers composite on top of earlier ones.
//
// A Map's own methods are safe for concurrent use. Layers are not
// independently synchronized: mutate a layer's properties from one
// goroutine at a time, normally the host's update thread. Change
// delivery is synchronous on the mutating goroutine, so changes arrive
// in mutation order; handlers may call back into the Map (the layer
// list lock is not held during delivery).
type Map struct {
	mu       sync.RWMutex
	name     string
	srs      *geo.SpatialReference
	layers   []Layer
	revision uint64
	subs     map[int]func(Change)
	nextSub  int
}

// MapOption configures a Map during creation.
type MapOption func(*Map)

// WithSRS sets the map's spatial reference. The default is WGS84.
func WithSRS(srs *geo.SpatialReference) MapOption {
	return func(m *Map) {
		if srs != nil {
			m.srs = srs
		}
	}
}

// New creates an empty map with the given name.
func New(name string, opts ...MapOption) *Map {
	m := &Map{
		name: name,
		srs:  geo.WGS84(),
		subs: make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the map's display name.
func (m *Map) Name() string { return m.name }

// SRS returns the map's spatial reference. Never nil.
func (m *Map) SRS() *geo.SpatialReference {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.srs
}

// Revision returns a counter incremented by every layer mutation. A
// consumer holding a stale revision knows its derived state is out of
// date.
func (m *Map) Revision() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revision
}

// AddLayer appends a layer to the map and emits ChangeLayerAdded.
// Adding a layer that is already owned by a map is a no-op.
func (m *Map) AddLayer(l Layer) {
	if l == nil {
		return
	}
	base := ownerOf(l)
	if base == nil || base.owner != nil {
		return
	}

	m.mu.Lock()
	base.owner = m
	m.layers = append(m.layers, l)
	m.revision++
	m.mu.Unlock()

	m.emit(Change{Kind: ChangeLayerAdded, Layer: l})
}

// RemoveLayer removes a layer and emits ChangeLayerRemoved. Removing a
// layer the map does not contain is a no-op.
func (m *Map) RemoveLayer(l Layer) {
	if l == nil {
		return
	}

	m.mu.Lock()
	idx := -1
	for i, existing := range m.layers {
		if existing == l {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return
	}
	m.layers = append(m.layers[:idx], m.layers[idx+1:]...)
	if base := ownerOf(l); base != nil {
		base.owner = nil
	}
	m.revision++
	m.mu.Unlock()

	m.emit(Change{Kind: ChangeLayerRemoved, Layer: l})
}

// Layers returns a snapshot of the layer list in order.
func (m *Map) Layers() []Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// ImageLayers returns a snapshot of the image layers in order.
func (m *Map) ImageLayers() []*ImageLayer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*ImageLayer
	for _, l := range m.layers {
		if il, ok := l.(*ImageLayer); ok {
			out = append(out, il)
		}
	}
	return out
}

// LayerByUID resolves a layer by identity against the live layer list.
// Returns nil if no such layer is present.
func (m *Map) LayerByUID(uid LayerUID) Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.layers {
		if l.UID() == uid {
			return l
		}
	}
	return nil
}

// NumLayers returns the number of layers in the map.
func (m *Map) NumLayers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.layers)
}

// Watch subscribes to the map's change stream. The handler runs
// synchronously on the mutating goroutine; keep it short and never block.
func (m *Map) Watch(handler func(Change)) *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = handler
	return &Subscription{m: m, id: id}
}

// emit bumps the revision for property changes and delivers the change to
// every subscriber. The lock is released before delivery so handlers can
// re-resolve layers through the map.
func (m *Map) emit(ch Change) {
	m.mu.Lock()
	if ch.Kind != ChangeLayerAdded && ch.Kind != ChangeLayerRemoved {
		m.revision++
	}
	handlers := make([]func(Change), 0, len(m.subs))
	for _, h := range m.subs {
		handlers = append(handlers, h)
	}
	m.mu.Unlock()

	for _, h := range handlers {
		h(ch)
	}
}

// ownerOf extracts the embedded baseLayer of a concrete layer type.
func ownerOf(l Layer) *baseLayer {
	switch t := l.(type) {
	case *ImageLayer:
		return &t.baseLayer
	case *ElevationLayer:
		return &t.baseLayer
	case *ModelLayer:
		return &t.baseLayer
	default:
		return nil
	}
}
