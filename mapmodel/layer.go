package mapmodel

import "github.com/google/uuid"

// LayerKind identifies what a layer contributes to the terrain.
type LayerKind uint8

// Layer kind constants.
const (
	// KindImage layers contribute pixels to composited tile textures.
	KindImage LayerKind = iota

	// KindElevation layers contribute height samples to tile geometry.
	KindElevation

	// KindModel layers place external models on the terrain surface.
	KindModel
)

// String returns a human-readable name for the layer kind.
func (k LayerKind) String() string {
	switch k {
	case KindImage:
		return "Image"
	case KindElevation:
		return "Elevation"
	case KindModel:
		return "Model"
	default:
		return "Unknown"
	}
}

// LayerUID is the identity of a layer, stable for the layer's lifetime
// and unique across maps within a process.
type LayerUID uuid.UUID

// NewLayerUID returns a fresh layer identity.
func NewLayerUID() LayerUID { return LayerUID(uuid.New()) }

// String returns the canonical UUID form of the identity.
func (u LayerUID) String() string { return uuid.UUID(u).String() }

// Layer is the common surface of all map layers. Concrete layers are
// *ImageLayer, *ElevationLayer and *ModelLayer.
type Layer interface {
	// UID returns the layer's stable identity.
	UID() LayerUID

	// Name returns the display name given at construction.
	Name() string

	// Kind returns what the layer contributes.
	Kind() LayerKind
}

// baseLayer carries the state shared by all layer kinds. The owner
// back-pointer is set when the layer is added to a Map and cleared on
// removal; property setters emit through it.
type baseLayer struct {
	uid   LayerUID
	name  string
	owner *Map
}

func newBaseLayer(name string) baseLayer {
	return baseLayer{uid: NewLayerUID(), name: name}
}

// UID returns the layer's stable identity.
func (l *baseLayer) UID() LayerUID { return l.uid }

// Name returns the display name given at construction.
func (l *baseLayer) Name() string { return l.name }

// emit forwards a change to the owning map, if any. Layers not yet added
// to a map mutate silently.
func (l *baseLayer) emit(kind ChangeKind, layer Layer) {
	if l.owner != nil {
		l.owner.emit(Change{Kind: kind, Layer: layer})
	}
}
