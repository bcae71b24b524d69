package wm

// Mode is the interaction mode of the pointer and keyboard handlers.
type Mode int

const (
	// ModeIdle means no gesture is in progress.
	ModeIdle Mode = iota
	// ModeMoving means the focused window follows the pointer.
	ModeMoving
	// ModeResizing means the focused window's far corner follows the pointer.
	ModeResizing
	// ModeCycling means a focus-cycling session is open until the cycle
	// modifier is released.
	ModeCycling
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeMoving:
		return "moving"
	case ModeResizing:
		return "resizing"
	case ModeCycling:
		return "cycling"
	default:
		return "unknown"
	}
}

// trigger is an input that may change the mode.
type trigger int

const (
	triggerMoveStart trigger = iota
	triggerResizeStart
	triggerCycleStart
	triggerCycleEnd
	triggerRelease
)

// transition is the only place the mode changes. A button release returns
// to idle from every mode.
func transition(from Mode, t trigger) Mode {
	switch t {
	case triggerRelease:
		return ModeIdle
	case triggerMoveStart:
		if from == ModeIdle {
			return ModeMoving
		}
	case triggerResizeStart:
		if from == ModeIdle {
			return ModeResizing
		}
	case triggerCycleStart:
		if from == ModeIdle || from == ModeCycling {
			return ModeCycling
		}
	case triggerCycleEnd:
		if from == ModeCycling {
			return ModeIdle
		}
	}
	return from
}

// gesture holds the pointer offset captured when a move or resize starts.
type gesture struct {
	offsetX int
	offsetY int
}

// Reset clears the captured offset.
func (g *gesture) Reset() {
	g.offsetX = 0
	g.offsetY = 0
}
