package terrain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the terrain package.
var (
	// ErrNilMap is returned by Attach when the map is nil. This is a
	// precondition violation by the caller, not a runtime condition.
	ErrNilMap = errors.New("terrain: attach with nil map")

	// ErrAlreadyAttached is returned by Attach after a successful attach.
	// An engine is bound to exactly one map for its lifetime.
	ErrAlreadyAttached = errors.New("terrain: engine already attached")

	// ErrClosed is returned by Attach on a closed engine.
	ErrClosed = errors.New("terrain: engine closed")

	// ErrNilEffect is returned by AddEffect for a nil effect.
	ErrNilEffect = errors.New("terrain: nil effect")

	// ErrUnknownEngine is returned by CreateEngine for an unregistered
	// engine name.
	ErrUnknownEngine = errors.New("terrain: unknown engine")

	// ErrNoEngineAvailable is returned by CreateDefault when no engine
	// implementation is registered.
	ErrNoEngineAvailable = errors.New("terrain: no engine available")
)

// DuplicateEffectError is returned by AddEffect when the same effect
// instance is already in the stack. Remove the effect first to move it.
type DuplicateEffectError struct {
	Effect Effect
}

func (e *DuplicateEffectError) Error() string {
	return fmt.Sprintf("terrain: effect %T already added", e.Effect)
}
