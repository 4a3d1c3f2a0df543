package core

import "github.com/zyedidia/generic/mapset"

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone   Action = iota
	ActionUp            // W, Up arrow
	ActionDown          // S, Down arrow
	ActionLeft          // A, Left arrow
	ActionRight         // D, Right arrow
	ActionAttack        // Space
	ActionPause         // P, Escape
	ActionCraft         // C - toggle crafting panel
	ActionReset         // X - clear inventory
	ActionQuit          // Q, Ctrl+C
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
	case ActionAttack:
		return "Attack"
	case ActionPause:
		return "Pause"
	case ActionCraft:
		return "Craft"
	case ActionReset:
		return "Reset"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input snapshot for one simulation tick.
//
// Held actions are keys that are down for the whole tick (movement, attack).
// Pressed actions are one-shot edges that happened since the previous tick
// (pause toggle, panel toggles). A frame is read once per tick.
type InputFrame struct {
	held    mapset.Set[Action]
	pressed mapset.Set[Action]
	ready   bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		held:    mapset.New[Action](),
		pressed: mapset.New[Action](),
		ready:   true,
	}
}

// ensure allocates the sets of a zero-value frame before it is written to.
func (f *InputFrame) ensure() {
	if !f.ready {
		*f = NewInputFrame()
	}
}

// Hold marks an action as held for this frame.
func (f *InputFrame) Hold(a Action) {
	f.ensure()
	f.held.Put(a)
}

// Press records a one-shot action for this frame.
func (f *InputFrame) Press(a Action) {
	f.ensure()
	f.pressed.Put(a)
}

// Set is an alias for Hold.
func (f *InputFrame) Set(a Action) {
	f.Hold(a)
}

// Held reports whether the action is held down this frame.
func (f InputFrame) Held(a Action) bool {
	return f.ready && f.held.Has(a)
}

// Pressed reports whether the action was pressed since the previous frame.
func (f InputFrame) Pressed(a Action) bool {
	return f.ready && f.pressed.Has(a)
}

// Has returns true if the action is either held or pressed.
func (f InputFrame) Has(a Action) bool {
	return f.Held(a) || f.Pressed(a)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	*f = NewInputFrame()
}

// ClearPressed drops one-shot actions but keeps held ones.
func (f *InputFrame) ClearPressed() {
	f.ensure()
	f.pressed = mapset.New[Action]()
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	if !f.ready {
		return clone
	}
	f.held.Each(func(a Action) { clone.held.Put(a) })
	f.pressed.Each(func(a Action) { clone.pressed.Put(a) })
	return clone
}
