package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games work with logical intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move one lane left
	ActionRight          // D, Right arrow - move one lane right
	ActionJump           // Space, W, Up - jump (double jump when airborne)
	ActionPower          // E, Shift - activate the owned power
	ActionConfirm        // Enter - confirm selection / leave shop
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// actionCount is the number of defined actions, used for bitmask encoding.
const actionCount = int(ActionPause) + 1

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionPower:
		return "Power"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Mask packs the triggered actions into a bitmask (bit n = Action n).
// Used by replay recording.
func (f InputFrame) Mask() uint16 {
	var m uint16
	for a, on := range f.Actions {
		if on && a > ActionNone && int(a) < actionCount {
			m |= 1 << uint(a)
		}
	}
	return m
}

// InputFrameFromMask rebuilds an input frame from a bitmask produced by Mask.
func InputFrameFromMask(m uint16) InputFrame {
	f := NewInputFrame()
	for a := ActionLeft; int(a) < actionCount; a++ {
		if m&(1<<uint(a)) != 0 {
			f.Set(a)
		}
	}
	return f
}
