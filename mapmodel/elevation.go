package mapmodel

// ElevationSource supplies height samples for an elevation layer.
// ElevationAt returns the height in meters at a geodetic coordinate and
// whether the source has data there.
type ElevationSource interface {
	ElevationAt(lon, lat float64) (float64, bool)
}

// ElevationLayer contributes height samples to tile geometry. Elevation
// changes affect geometry, not textures; the engine's layer listener
// deliberately ignores them for redraw purposes.
type ElevationLayer struct {
	baseLayer

	visible bool
	source  ElevationSource
}

// NewElevationLayer creates a visible elevation layer.
func NewElevationLayer(name string) *ElevationLayer {
	return &ElevationLayer{baseLayer: newBaseLayer(name), visible: true}
}

// Kind returns KindElevation.
func (l *ElevationLayer) Kind() LayerKind { return KindElevation }

// Visible reports whether the layer contributes samples.
func (l *ElevationLayer) Visible() bool { return l.visible }

// SetVisible toggles the layer's contribution.
func (l *ElevationLayer) SetVisible(v bool) {
	if l.visible == v {
		return
	}
	l.visible = v
	l.emit(ChangeToggleVisible, l)
}

// Source returns the layer's height source, or nil.
func (l *ElevationLayer) Source() ElevationSource { return l.source }

// SetSource sets the layer's height source.
func (l *ElevationLayer) SetSource(s ElevationSource) { l.source = s }

// ElevationAt samples the layer at a geodetic coordinate. An invisible
// or sourceless layer has no data anywhere.
func (l *ElevationLayer) ElevationAt(lon, lat float64) (float64, bool) {
	if !l.visible || l.source == nil {
		return 0, false
	}
	return l.source.ElevationAt(lon, lat)
}
