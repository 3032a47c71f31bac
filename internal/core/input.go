package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow, K - move highlight up
	ActionDown           // Down arrow, J - move highlight down
	ActionLeft           // Left arrow, H - move highlight left
	ActionRight          // Right arrow, L - move highlight right
	ActionConfirm        // Enter, Space - answer, grab or drop
	ActionNext           // N - advance to the next level
	ActionRestart        // R - reset the level, or restart a finished game
	ActionPause          // P - pause/unpause
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionNext:
		return "Next"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// PointerKind distinguishes mouse gestures.
type PointerKind int

const (
	PointerPress PointerKind = iota + 1
	PointerRelease
	PointerMove
)

// Pointer is a mouse event in screen cells.
type Pointer struct {
	Kind PointerKind
	X, Y int
}

// InputFrame represents the input for a single step.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pick is a 1-based option chosen by number key, 0 when none.
	Pick int

	// Pointer is the mouse event of this frame, nil when none.
	Pointer *Pointer
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

// SetPointer records a mouse event for this frame.
func (f *InputFrame) SetPointer(kind PointerKind, x, y int) {
	f.Pointer = &Pointer{Kind: kind, X: x, Y: y}
}

// Empty reports whether the frame carries no input at all.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Pick == 0 && f.Pointer == nil
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pick = 0
	f.Pointer = nil
}
