package mapmodel

// ChangeKind identifies what mutated on the map.
type ChangeKind uint8

// Change kind constants. Kinds unknown to a consumer must be ignored,
// not treated as errors; new kinds may appear in later versions.
const (
	// ChangeLayerAdded fires after a layer joins the map.
	ChangeLayerAdded ChangeKind = iota

	// ChangeLayerRemoved fires after a layer leaves the map.
	ChangeLayerRemoved

	// ChangeToggleVisible fires when a layer's visibility flips.
	ChangeToggleVisible

	// ChangeOpacity fires when an image layer's opacity changes.
	ChangeOpacity

	// ChangeColorFilters fires when an image layer's filter chain changes.
	ChangeColorFilters

	// ChangeVisibleRange fires when an image layer's visible range changes.
	ChangeVisibleRange
)

// String returns a human-readable name for the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeLayerAdded:
		return "LayerAdded"
	case ChangeLayerRemoved:
		return "LayerRemoved"
	case ChangeToggleVisible:
		return "ToggleVisible"
	case ChangeOpacity:
		return "Opacity"
	case ChangeColorFilters:
		return "ColorFilters"
	case ChangeVisibleRange:
		return "VisibleRange"
	default:
		return "Unknown"
	}
}

// Change is one map mutation notification. Layer is the affected layer;
// for ChangeLayerRemoved it is the layer that was just removed and no
// longer resolves through the map.
type Change struct {
	Kind  ChangeKind
	Layer Layer
}

// Subscription is the handle returned by [Map.Watch]. Cancel releases it;
// canceling twice is safe.
type Subscription struct {
	m  *Map
	id int
}

// Cancel detaches the subscription from the map. After Cancel returns no
// further changes are delivered. Idempotent.
func (s *Subscription) Cancel() {
	if s == nil || s.m == nil {
		return
	}
	s.m.mu.Lock()
	delete(s.m.subs, s.id)
	s.m.mu.Unlock()
	s.m = nil
}
