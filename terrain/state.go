package terrain

// State is the lifecycle stage of an Engine. States are strictly
// monotonic: an engine moves NONE → PRE_INIT_DONE → POST_INIT_DONE and
// never skips or reverses a stage.
type State uint8

// Lifecycle states.
const (
	// StateNone is the initial state; no map is attached.
	StateNone State = iota

	// StatePreInitDone means the map reference and spatial reference are
	// established and the terrain view is constructible.
	StatePreInitDone

	// StatePostInitDone means implementation bootstrap has completed and
	// terrain content generation may begin. The engine is live.
	StatePostInitDone
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNone:
		return "None"
	case StatePreInitDone:
		return "PreInitDone"
	case StatePostInitDone:
		return "PostInitDone"
	default:
		return "Unknown"
	}
}
