package mapmodel

import (
	"image"

	"github.com/RealRui/osgearth/geo"
)

// ColorMatrix is a 4x5 row-major color transform applied to RGBA pixels:
// each output channel is a weighted sum of the input channels plus a bias
// (the fifth column, in [0,1] channel units). The zero value is NOT the
// identity; use IdentityColorMatrix.
type ColorMatrix [20]float64

// IdentityColorMatrix returns the matrix that leaves pixels unchanged.
func IdentityColorMatrix() ColorMatrix {
	var m ColorMatrix
	m[0], m[6], m[12], m[18] = 1, 1, 1, 1
	return m
}

// ColorFilter is one entry of an image layer's filter chain.
type ColorFilter struct {
	// Name identifies the filter for diagnostics ("grayscale", "gamma"...).
	Name string

	// Matrix is the color transform the filter applies.
	Matrix ColorMatrix
}

// VisibleRange bounds the camera distances at which a layer is drawn.
// A zero Max means unlimited.
type VisibleRange struct {
	Min, Max float64
}

// ImageSource supplies pixels for an image layer. Render returns an image
// covering the requested extent at the requested size; returning nil means
// the source has no data there.
type ImageSource interface {
	Render(extent geo.Extent, width, height int) image.Image
}

// ImageLayer is a visual layer composited into tile textures. Its
// property setters emit exactly one change through the owning map per
// actual mutation; setting a property to its current value is a no-op.
type ImageLayer struct {
	baseLayer

	visible      bool
	opacity      float64
	filters      []ColorFilter
	visibleRange VisibleRange
	source       ImageSource
}

// NewImageLayer creates a visible image layer with full opacity.
func NewImageLayer(name string) *ImageLayer {
	return &ImageLayer{
		baseLayer: newBaseLayer(name),
		visible:   true,
		opacity:   1.0,
	}
}

// Kind returns KindImage.
func (l *ImageLayer) Kind() LayerKind { return KindImage }

// Visible reports whether the layer is drawn.
func (l *ImageLayer) Visible() bool { return l.visible }

// SetVisible toggles drawing of the layer.
func (l *ImageLayer) SetVisible(v bool) {
	if l.visible == v {
		return
	}
	l.visible = v
	l.emit(ChangeToggleVisible, l)
}

// Opacity returns the layer opacity in [0, 1].
func (l *ImageLayer) Opacity() float64 { return l.opacity }

// SetOpacity sets the layer opacity, clamped to [0, 1].
func (l *ImageLayer) SetOpacity(o float64) {
	if o < 0 {
		o = 0
	} else if o > 1 {
		o = 1
	}
	if l.opacity == o {
		return
	}
	l.opacity = o
	l.emit(ChangeOpacity, l)
}

// ColorFilters returns the filter chain in application order.
func (l *ImageLayer) ColorFilters() []ColorFilter {
	out := make([]ColorFilter, len(l.filters))
	copy(out, l.filters)
	return out
}

// AddColorFilter appends a filter to the chain.
func (l *ImageLayer) AddColorFilter(f ColorFilter) {
	l.filters = append(l.filters, f)
	l.emit(ChangeColorFilters, l)
}

// ClearColorFilters removes every filter. Clearing an empty chain is a
// no-op and emits nothing.
func (l *ImageLayer) ClearColorFilters() {
	if len(l.filters) == 0 {
		return
	}
	l.filters = nil
	l.emit(ChangeColorFilters, l)
}

// VisibleRange returns the camera-distance bounds for drawing.
func (l *ImageLayer) VisibleRange() VisibleRange { return l.visibleRange }

// SetVisibleRange sets the camera-distance bounds for drawing.
func (l *ImageLayer) SetVisibleRange(r VisibleRange) {
	if l.visibleRange == r {
		return
	}
	l.visibleRange = r
	l.emit(ChangeVisibleRange, l)
}

// Source returns the layer's pixel source, or nil.
func (l *ImageLayer) Source() ImageSource { return l.source }

// SetSource sets the layer's pixel source. Changing the source does not
// emit a change; callers that swap sources at runtime should invalidate
// the affected region through the engine instead.
func (l *ImageLayer) SetSource(s ImageSource) { l.source = s }
