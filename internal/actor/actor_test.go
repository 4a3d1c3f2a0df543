package actor

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-forager/internal/core"
)

var surface = core.NewRect(0, 0, 800, 600)

func hold(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Hold(a)
	}
	return f
}

func newActor(t *testing.T) *Actor {
	t.Helper()
	return New(DefaultConfig(), core.Vec2{X: 380, Y: 280}, nil)
}

func TestHandleInputVelocity(t *testing.T) {
	tests := []struct {
		name   string
		in     core.InputFrame
		vx, vy float64
		state  State
	}{
		{"none", hold(), 0, 0, StateIdle},
		{"right", hold(core.ActionRight), 4, 0, StateWalk},
		{"up", hold(core.ActionUp), 0, -4, StateWalk},
		{"opposing cancel", hold(core.ActionLeft, core.ActionRight), 0, 0, StateIdle},
		{"diagonal", hold(core.ActionDown, core.ActionLeft), -4 * math.Sqrt2 / 2, 4 * math.Sqrt2 / 2, StateWalk},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newActor(t)
			a.HandleInput(tc.in)
			v := a.Velocity()
			if math.Abs(v.X-tc.vx) > 1e-9 || math.Abs(v.Y-tc.vy) > 1e-9 {
				t.Errorf("velocity = %+v, expected (%v, %v)", v, tc.vx, tc.vy)
			}
			if a.State() != tc.state {
				t.Errorf("state = %v, expected %v", a.State(), tc.state)
			}
		})
	}
}

func TestDiagonalMagnitude(t *testing.T) {
	a := newActor(t)
	a.HandleInput(hold(core.ActionUp, core.ActionRight))

	v := a.Velocity()
	if mag := math.Hypot(v.X, v.Y); math.Abs(mag-4) > 1e-9 {
		t.Errorf("diagonal speed = %v, expected 4", mag)
	}
}

func TestFacingFollowsHorizontalInput(t *testing.T) {
	a := newActor(t)
	a.HandleInput(hold(core.ActionLeft))
	if a.Facing() != FacingLeft {
		t.Error("expected facing left")
	}
	a.HandleInput(hold(core.ActionUp))
	if a.Facing() != FacingLeft {
		t.Error("vertical input should keep facing")
	}
	a.HandleInput(hold(core.ActionRight))
	if a.Facing() != FacingRight {
		t.Error("expected facing right")
	}
}

func TestAdvanceClampsToBounds(t *testing.T) {
	tests := []struct {
		name   string
		start  core.Vec2
		in     core.InputFrame
		check  func(r core.Rect) bool
		detail string
	}{
		{"left edge", core.Vec2{X: 2, Y: 100}, hold(core.ActionLeft), func(r core.Rect) bool { return r.X == 0 }, "X == 0"},
		{"right edge", core.Vec2{X: 758, Y: 100}, hold(core.ActionRight), func(r core.Rect) bool { return r.Right() == 800 }, "Right == 800"},
		{"top edge", core.Vec2{X: 100, Y: 1}, hold(core.ActionUp), func(r core.Rect) bool { return r.Y == 0 }, "Y == 0"},
		{"bottom edge", core.Vec2{X: 100, Y: 559}, hold(core.ActionDown), func(r core.Rect) bool { return r.Bottom() == 600 }, "Bottom == 600"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := New(DefaultConfig(), tc.start, nil)
			for i := 0; i < 10; i++ {
				a.HandleInput(tc.in)
				a.Advance(surface, ReferenceStep)
				if !surface.ContainsRect(a.Bounds()) {
					t.Fatalf("box %+v crossed the surface edge", a.Bounds())
				}
			}
			if !tc.check(a.Bounds()) {
				t.Errorf("box %+v, expected %s", a.Bounds(), tc.detail)
			}
		})
	}
}

func TestAdvanceScalesWithElapsedTime(t *testing.T) {
	a := newActor(t)
	a.HandleInput(hold(core.ActionRight))
	a.Advance(surface, 2*ReferenceStep)

	if got := a.Position().X; math.Abs(got-388) > 1e-9 {
		t.Errorf("X = %v, expected 388 after two reference steps", got)
	}
}

func TestAttackFreezePolicy(t *testing.T) {
	a := newActor(t)
	a.HandleInput(hold(core.ActionAttack, core.ActionRight))

	if a.State() != StateAttack || !a.Attacking() {
		t.Fatalf("state = %v, expected attack", a.State())
	}
	if !a.Velocity().IsZero() {
		t.Errorf("freeze policy velocity = %+v, expected zero", a.Velocity())
	}
}

func TestAttackDampedPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AttackPolicy = PolicyDamped
	cfg.AttackDamping = 0.5
	a := New(cfg, core.Vec2{X: 100, Y: 100}, nil)

	a.HandleInput(hold(core.ActionAttack, core.ActionRight))
	if v := a.Velocity(); v.X != 2 || v.Y != 0 {
		t.Errorf("damped velocity = %+v, expected (2, 0)", v)
	}
}

func TestAttackCompletesAfterFinalFrame(t *testing.T) {
	cfg := DefaultConfig()
	attack := cfg.Animations[StateAttack]
	a := New(cfg, core.Vec2{X: 100, Y: 100}, nil)

	a.HandleInput(hold(core.ActionAttack))
	step := attack.FrameDelay + time.Millisecond

	for i := 1; i < attack.Frames; i++ {
		a.HandleInput(hold())
		a.Advance(surface, step)
		if !a.Attacking() || a.Frame() != i {
			t.Fatalf("after %d steps: attacking=%v frame=%d", i, a.Attacking(), a.Frame())
		}
	}

	a.HandleInput(hold())
	a.Advance(surface, step)
	if a.Attacking() || a.State() != StateIdle {
		t.Errorf("attack should finish after the final frame, state=%v", a.State())
	}

	a.HandleInput(hold(core.ActionRight))
	if a.State() != StateWalk || a.Velocity().X == 0 {
		t.Error("movement should resume after the attack")
	}
}

func TestLoopingAnimationWraps(t *testing.T) {
	a := newActor(t)
	walk := a.Config().Animations[StateWalk]
	a.HandleInput(hold(core.ActionDown))

	for i := 0; i < walk.Frames; i++ {
		a.Advance(surface, walk.FrameDelay+time.Millisecond)
	}
	if a.Frame() != 0 {
		t.Errorf("frame = %d, expected wrap to 0", a.Frame())
	}
}

func TestGainExperienceLoops(t *testing.T) {
	a := newActor(t)

	if got := a.GainExperience(250); got != 2 {
		t.Errorf("levels gained = %d, expected 2", got)
	}
	if a.Level() != 3 || a.Experience() != 0 {
		t.Errorf("level=%d exp=%d, expected 3/0", a.Level(), a.Experience())
	}
	if a.ExpToNext() < 225 {
		t.Errorf("next threshold = %d, expected >= 225", a.ExpToNext())
	}
	if math.Abs(a.Speed()-4.4) > 1e-9 {
		t.Errorf("speed = %v, expected 4.4", a.Speed())
	}
	if a.Experience() >= a.ExpToNext() {
		t.Error("experience must stay below the threshold")
	}
}

func TestOnCollectRewards(t *testing.T) {
	a := newActor(t)
	for i := 0; i < 9; i++ {
		a.OnCollect()
	}
	if a.Level() != 1 || a.Experience() != 90 {
		t.Errorf("level=%d exp=%d after 9 collections", a.Level(), a.Experience())
	}
	if a.OnCollect() != 1 || a.Level() != 2 {
		t.Errorf("tenth collection should level up, level=%d", a.Level())
	}
	if a.GainExperience(0) != 0 || a.GainExperience(-5) != 0 {
		t.Error("non-positive gains are ignored")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := DefaultConfig()
	bad.AttackPolicy = "half"
	if err := bad.Validate(); err == nil {
		t.Error("unknown policy should fail")
	}

	bad = DefaultConfig()
	bad.Growth = 0.5
	if err := bad.Validate(); err == nil {
		t.Error("shrinking growth should fail")
	}
}

func TestReset(t *testing.T) {
	a := newActor(t)
	a.GainExperience(500)
	a.HandleInput(hold(core.ActionAttack))
	a.Reset(core.Vec2{X: 10, Y: 20})

	s := a.Snapshot()
	if s.Level != 1 || s.Exp != 0 || s.ExpToNext != 100 || s.Speed != 4 || s.Attacking || s.X != 10 {
		t.Errorf("snapshot after reset = %+v", s)
	}
}
