package terrain

import (
	"fmt"
	"sync/atomic"

	"github.com/RealRui/osgearth"
	"github.com/RealRui/osgearth/geo"
	"github.com/RealRui/osgearth/mapmodel"
)

// Engine is the terrain engine core. It owns the lifecycle state
// machine, the effect stack, the layer-change listener and the texture
// compositor attach point, and funnels every redraw request through
// Dirty.
//
// All entry points except DirtyCount must run on the engine's owner
// goroutine (normally the host's update/traversal thread). An Engine is
// bound to at most one map, once, via Attach.
type Engine struct {
	impl Impl

	m        *mapmodel.Map
	srs      *geo.SpatialReference
	state    State
	closed   bool
	listener *layerListener
	sub      *mapmodel.Subscription

	dirty  atomic.Uint64
	redraw atomic.Bool

	// verticalScale is a legacy exaggeration knob kept for compatibility;
	// prefer scaling elevation data at the source.
	verticalScale float64
	samplingRatio float64

	effects []Effect
	comp    Compositor
	terrain Terrain
}

// Option configures an Engine during creation or attach.
type Option func(*Engine)

// WithCompositor sets the texture compositor attach point up front,
// before the attach phases run.
func WithCompositor(c Compositor) Option {
	return func(e *Engine) { e.comp = c }
}

// WithVerticalScale sets the initial vertical exaggeration.
//
// Deprecated: scale elevation data at the source instead.
func WithVerticalScale(s float64) Option {
	return func(e *Engine) { e.verticalScale = s }
}

// WithElevationSamplingRatio sets the initial elevation sampling ratio.
func WithElevationSamplingRatio(r float64) Option {
	return func(e *Engine) { e.samplingRatio = r }
}

// New creates an unattached engine around the given implementation.
// A nil impl yields a core-only engine (useful for tests and for hosts
// that drive tiles themselves).
func New(impl Impl, opts ...Option) *Engine {
	e := &Engine{
		impl:          impl,
		verticalScale: 1.0,
		samplingRatio: 1.0,
		terrain:       emptyTerrain{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Attach binds the engine to a map and runs the two initialization
// phases: pre-initialize (spatial reference, terrain view, layer
// listener) then post-initialize (implementation bootstrap). Attach may
// be called at most once per engine; a second call, or a nil map, is a
// precondition violation and leaves the engine unchanged.
func (e *Engine) Attach(m *mapmodel.Map, opts ...Option) error {
	if e.closed {
		return ErrClosed
	}
	if e.state != StateNone {
		return ErrAlreadyAttached
	}
	if m == nil {
		return ErrNilMap
	}
	for _, opt := range opts {
		opt(e)
	}

	// Phase 1: pre-initialize.
	e.m = m
	e.srs = m.SRS()
	if e.impl != nil {
		if err := e.impl.PreInitialize(e, m); err != nil {
			e.m = nil
			e.srs = nil
			return fmt.Errorf("terrain: pre-initialize: %w", err)
		}
	}
	if tp, ok := e.impl.(TerrainProvider); ok {
		e.terrain = tp.Terrain()
	}
	e.listener = newLayerListener(e)
	e.sub = m.Watch(e.listener.onChange)
	e.state = StatePreInitDone
	osgearth.Logger().Info("terrain: pre-initialize done",
		"map", m.Name(), "srs", e.srs.Name())

	// Phase 2: post-initialize. On failure the engine stays at
	// PreInitDone: lifecycle state never reverses.
	if e.impl != nil {
		if err := e.impl.PostInitialize(e); err != nil {
			return fmt.Errorf("terrain: post-initialize: %w", err)
		}
	}
	e.state = StatePostInitDone
	osgearth.Logger().Info("terrain: post-initialize done", "map", m.Name())
	e.Dirty()
	return nil
}

// Close uninstalls every effect (newest first), cancels the map
// subscription and releases the map reference. Close is idempotent and
// the engine is unusable afterwards.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	for i := len(e.effects) - 1; i >= 0; i-- {
		e.effects[i].Uninstall(e)
	}
	e.effects = nil
	if e.sub != nil {
		e.sub.Cancel()
		e.sub = nil
	}
	e.listener = nil
	e.m = nil
	return nil
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Map returns the attached map, or nil before attach.
func (e *Engine) Map() *mapmodel.Map { return e.m }

// SRS returns the spatial reference resolved at attach, or nil before.
func (e *Engine) SRS() *geo.SpatialReference { return e.srs }

// Impl returns the concrete implementation, or nil for a core-only
// engine.
func (e *Engine) Impl() Impl { return e.impl }

// Terrain returns the queryable terrain view. Before attach, and for
// implementations without a terrain view, every query answers "no data".
func (e *Engine) Terrain() Terrain { return e.terrain }

// Dirty records a redraw request: it increments the dirty counter and
// raises the redraw-required flag. Dirty is the single funnel for the
// core, the layer listener and effect mutations; calls between host
// traversals accumulate in the counter and are never lost.
func (e *Engine) Dirty() {
	n := e.dirty.Add(1)
	e.redraw.Store(true)
	osgearth.Logger().Debug("terrain: dirty", "count", n)
}

// DirtyCount returns the monotonically increasing dirty counter. A
// consumer holding a previously observed value can compare to detect
// staleness. Safe to call from any goroutine.
func (e *Engine) DirtyCount() uint64 { return e.dirty.Load() }

// NeedsRedraw reports whether a redraw request is pending.
func (e *Engine) NeedsRedraw() bool { return e.redraw.Load() }

// ObserveRedraw marks pending dirty state as observed, as the host does
// once per traversal cycle. It returns the current counter and whether
// a redraw was pending.
func (e *Engine) ObserveRedraw() (count uint64, redraw bool) {
	return e.dirty.Load(), e.redraw.Swap(false)
}

// VerticalScale returns the vertical exaggeration multiplier.
func (e *Engine) VerticalScale() float64 { return e.verticalScale }

// SetVerticalScale updates the vertical exaggeration. A live engine's
// implementation is notified if it observes the property. Setting the
// current value is a no-op.
//
// Deprecated: scale elevation data at the source instead.
func (e *Engine) SetVerticalScale(s float64) {
	if e.verticalScale == s {
		return
	}
	e.verticalScale = s
	if e.state == StatePostInitDone {
		if o, ok := e.impl.(VerticalScaleObserver); ok {
			o.VerticalScaleChanged(s)
		}
	}
	e.Dirty()
}

// ElevationSamplingRatio returns the elevation sampling ratio.
func (e *Engine) ElevationSamplingRatio() float64 { return e.samplingRatio }

// SetElevationSamplingRatio updates the elevation sampling ratio. A live
// engine's implementation is notified if it observes the property.
// Setting the current value is a no-op.
func (e *Engine) SetElevationSamplingRatio(r float64) {
	if e.samplingRatio == r {
		return
	}
	e.samplingRatio = r
	if e.state == StatePostInitDone {
		if o, ok := e.impl.(SamplingRatioObserver); ok {
			o.ElevationSamplingRatioChanged(r)
		}
	}
	e.Dirty()
}

// InvalidateRegion marks previously generated content within the extent
// stale at every level. Equivalent to InvalidateRegionLevels with
// [geo.FullLevelRange].
func (e *Engine) InvalidateRegion(extent geo.Extent) {
	e.InvalidateRegionLevels(extent, geo.FullLevelRange())
}

// InvalidateRegionLevels marks previously generated content intersecting
// the extent within the inclusive level range stale. Stale content is
// regenerated from the current map state on next access; invalidation
// schedules that work and never blocks. Repeating an invalidation is
// safe: stale sets do not double-count.
//
// Implementations without incremental replacement degrade to full
// regeneration.
func (e *Engine) InvalidateRegionLevels(extent geo.Extent, levels geo.LevelRange) {
	if e.state == StateNone {
		return
	}
	levels = levels.Normalized()
	if ri, ok := e.impl.(RegionInvalidator); ok {
		ri.InvalidateRegion(extent, levels)
	} else if e.impl != nil {
		osgearth.Logger().Warn("terrain: engine lacks incremental invalidation, full regeneration",
			"extent", extent.String())
	}
	if e.comp != nil {
		e.comp.Invalidate(extent)
	}
	e.Dirty()
}
