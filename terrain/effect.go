package terrain

// Effect is a composable rendering-state modifier applied across the
// whole terrain, independent of any single tile. Effects install against
// the engine's live rendering state when added and uninstall when
// removed or when the engine closes.
//
// Effect instances must be comparable (in practice: pointer types); the
// stack rejects the same instance twice by identity.
type Effect interface {
	// Install applies the effect to the engine's rendering state. Called
	// immediately on AddEffect, even if the engine is not yet live.
	Install(e *Engine)

	// Uninstall reverts the effect. Called on RemoveEffect and on Close.
	Uninstall(e *Engine)
}

// AddEffect appends an effect to the stack and installs it immediately.
// Stack order is insertion order: later effects install on top of
// earlier ones. Adding an instance that is already present fails with
// *DuplicateEffectError and changes nothing.
func (e *Engine) AddEffect(ef Effect) error {
	if ef == nil {
		return ErrNilEffect
	}
	for _, existing := range e.effects {
		if existing == ef {
			return &DuplicateEffectError{Effect: ef}
		}
	}
	e.effects = append(e.effects, ef)
	ef.Install(e)
	e.Dirty()
	return nil
}

// RemoveEffect uninstalls the effect and removes it from the stack.
// Removing an effect that is not present is a no-op: nothing changes and
// no redraw is requested. The asymmetry with AddEffect is intentional —
// add is a "must be new" operation, remove is idempotent cleanup.
func (e *Engine) RemoveEffect(ef Effect) {
	for i, existing := range e.effects {
		if existing == ef {
			ef.Uninstall(e)
			e.effects = append(e.effects[:i], e.effects[i+1:]...)
			e.Dirty()
			return
		}
	}
}

// Effects returns a snapshot of the effect stack in insertion order.
func (e *Engine) Effects() []Effect {
	out := make([]Effect, len(e.effects))
	copy(out, e.effects)
	return out
}

// NumEffects returns the number of effects in the stack.
func (e *Engine) NumEffects() int { return len(e.effects) }

// EffectOf returns the first effect in stack order implementing the
// capability T, scanning front to back. The boolean is false when no
// effect in the stack has the capability. This is a lookup, not an
// ownership transfer; the effect stays in the stack.
func EffectOf[T any](e *Engine) (T, bool) {
	for _, ef := range e.effects {
		if t, ok := ef.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
