// Package terrain implements the control core of the terrain engine: the
// attach lifecycle, the dirty/redraw protocol, the effect stack, the
// translation of map-model changes into redraw requests, and the region
// invalidation contract.
//
// The core is deliberately host-agnostic. It is a plain object — not a
// scene-graph node — and all mutation entry points (Attach, effect
// add/remove, Dirty, InvalidateRegion, change delivery) are expected to
// run on the single goroutine that owns the host's update/traversal
// cycle. The dirty counter alone is atomic so a host may poll it from
// elsewhere.
//
// Concrete tiling strategies plug in through the [Impl] interface and
// register themselves with [RegisterEngine]; see terrain/gridengine for
// the reference implementation.
package terrain
