package core

import "testing"

func TestInputFrameHoldAndPress(t *testing.T) {
	f := NewInputFrame()
	f.Hold(ActionLeft)
	f.Press(ActionPause)

	if !f.Held(ActionLeft) || f.Pressed(ActionLeft) {
		t.Error("Left should be held, not pressed")
	}
	if !f.Pressed(ActionPause) || f.Held(ActionPause) {
		t.Error("Pause should be pressed, not held")
	}
	if !f.Has(ActionLeft) || !f.Has(ActionPause) || f.Has(ActionUp) {
		t.Error("Has should cover held and pressed actions only")
	}

	f.ClearPressed()
	if f.Pressed(ActionPause) || !f.Held(ActionLeft) {
		t.Error("ClearPressed should keep held actions")
	}

	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear should drop everything")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}

	f.Hold(ActionUp)
	if !f.Held(ActionUp) {
		t.Error("zero frame should allocate on first write")
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := NewInputFrame()
	f.Hold(ActionRight)

	c := f.Clone()
	f.Clear()

	if !c.Held(ActionRight) {
		t.Error("clone should keep actions after original is cleared")
	}
}

func TestActionString(t *testing.T) {
	if ActionAttack.String() != "Attack" {
		t.Errorf("ActionAttack.String() = %q", ActionAttack.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
