package core

// Action represents a semantic game action, abstracted from physical key presses.
// The engine polls actions; it never sees terminal key codes.
type Action int

const (
	ActionNone      Action = iota
	ActionSoftDrop         // Down arrow - force a soft drop this frame
	ActionHardDrop         // Up arrow - drop to the floor and lock
	ActionHold             // Space - swap the active piece into hold
	ActionLeft             // Left arrow
	ActionRight            // Right arrow
	ActionRotateCCW        // Z
	ActionRotateCW         // X
	ActionRestart          // R - new game after game over
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionHold:
		return "Hold"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the key state for a single simulation tick.
// An action present in the frame is "down" for that tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
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
