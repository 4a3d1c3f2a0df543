package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-forager/internal/core"
)

// KeyMap holds the in-game key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Attack     key.Binding
	Pause      key.Binding
	Craft      key.Binding
	Clear      key.Binding
	Recipe     key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default in-game bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/up", "move up")),
		Down:       key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/down", "move down")),
		Left:       key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/left", "move left")),
		Right:      key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/right", "move right")),
		Attack:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "attack")),
		Pause:      key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Craft:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "crafting")),
		Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear inventory")),
		Recipe:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "craft")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Attack, k.Craft, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Attack, k.Craft, k.Recipe, k.Clear},
		{k.Pause, k.Screenshot, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Attack):
		return core.ActionAttack, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Craft):
		return core.ActionCraft, false
	case key.Matches(msg, k.Clear):
		return core.ActionReset, false
	}
	return core.ActionNone, false
}

// RecipeIndex returns the zero-based recipe slot for a digit key.
func (km *KeyMapper) RecipeIndex(msg tea.KeyMsg) (int, bool) {
	if !key.Matches(msg, km.keys.Recipe) {
		return 0, false
	}
	s := msg.String()
	return int(s[0] - '1'), true
}

// IsScreenshot reports whether the key requests a screenshot.
func (km *KeyMapper) IsScreenshot(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.keys.Screenshot)
}

// isMovement reports whether the action is one of the four directions.
func isMovement(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// Hold timings for terminals that only report key presses and repeats.
const (
	// DefaultInitialHold covers the pause before the terminal starts
	// auto-repeating a held key.
	DefaultInitialHold = 550 * time.Millisecond
	// DefaultRepeatHold covers the gap between two auto-repeats.
	DefaultRepeatHold = 150 * time.Millisecond
)

// HeldKeys reconstructs held movement keys from press events. A key stays
// held until no repeat arrives within the hold window. Pressing a direction
// releases the opposite one.
type HeldKeys struct {
	until   map[core.Action]time.Time
	initial time.Duration
	repeat  time.Duration
}

// NewHeldKeys creates a tracker. Zero durations select the defaults.
func NewHeldKeys(initial, repeat time.Duration) *HeldKeys {
	if initial <= 0 {
		initial = DefaultInitialHold
	}
	if repeat <= 0 {
		repeat = DefaultRepeatHold
	}
	return &HeldKeys{
		until:   make(map[core.Action]time.Time),
		initial: initial,
		repeat:  repeat,
	}
}

// Press records a key event for a movement action at now.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if !isMovement(a) {
		return
	}
	delete(h.until, opposite(a))
	if h.Held(a, now) {
		h.until[a] = now.Add(h.repeat)
		return
	}
	h.until[a] = now.Add(h.initial)
}

// Held reports whether the action is still held at now.
func (h *HeldKeys) Held(a core.Action, now time.Time) bool {
	t, ok := h.until[a]
	return ok && now.Before(t)
}

// Fill marks the actions held at now on the frame and forgets expired ones.
func (h *HeldKeys) Fill(frame *core.InputFrame, now time.Time) {
	for a := range h.until {
		if h.Held(a, now) {
			frame.Hold(a)
		} else {
			delete(h.until, a)
		}
	}
}

// Reset releases every key.
func (h *HeldKeys) Reset() {
	clear(h.until)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
