package mapmodel

// ModelLayer places external models (buildings, vegetation, markers) on
// the terrain surface. The terrain core only tracks its presence and
// visibility; model paging belongs to the scene-graph host.
type ModelLayer struct {
	baseLayer

	visible bool
}

// NewModelLayer creates a visible model layer.
func NewModelLayer(name string) *ModelLayer {
	return &ModelLayer{baseLayer: newBaseLayer(name), visible: true}
}

// Kind returns KindModel.
func (l *ModelLayer) Kind() LayerKind { return KindModel }

// Visible reports whether the layer's models are shown.
func (l *ModelLayer) Visible() bool { return l.visible }

// SetVisible toggles the layer's models.
func (l *ModelLayer) SetVisible(v bool) {
	if l.visible == v {
		return
	}
	l.visible = v
	l.emit(ChangeToggleVisible, l)
}
