package actor

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-forager/internal/core"
)

// ReferenceStep is the frame length at which Speed is defined.
// Advance scales velocity by dt/ReferenceStep.
const ReferenceStep = time.Second / 60

var diagonal = math.Sqrt2 / 2

// Snapshot is the read-only actor view handed to renderers.
type Snapshot struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	VX        float64 `json:"vx"`
	VY        float64 `json:"vy"`
	Speed     float64 `json:"speed"`
	Facing    string  `json:"facing"`
	State     string  `json:"state"`
	Frame     int     `json:"frame"`
	Attacking bool    `json:"attacking"`
	Level     int     `json:"level"`
	Exp       int     `json:"experience"`
	ExpToNext int     `json:"experience_to_next"`
}

// Actor is the controllable entity.
type Actor struct {
	cfg    Config
	logger *log.Logger

	pos   core.Vec2
	vel   core.Vec2
	speed float64

	level int
	exp   int
	next  int

	facing    Facing
	state     State
	attacking bool
	frame     int
	acc       time.Duration
}

// New creates an actor with its top-left corner at pos.
// A nil logger discards output.
func New(cfg Config, pos core.Vec2, logger *log.Logger) *Actor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Animations == nil {
		cfg.Animations = DefaultAnimations()
	}
	a := &Actor{cfg: cfg, logger: logger}
	a.Reset(pos)
	return a
}

// Reset restores the initial level, speed and animation state at pos.
func (a *Actor) Reset(pos core.Vec2) {
	a.pos = pos
	a.vel = core.Vec2{}
	a.speed = a.cfg.Speed
	a.level = 1
	a.exp = 0
	a.next = a.cfg.ExpToNext
	if a.next <= 0 {
		a.next = 1
	}
	a.facing = FacingRight
	a.state = StateIdle
	a.attacking = false
	a.frame = 0
	a.acc = 0
}

// HandleInput derives velocity, facing and animation state from the held keys.
//
// Opposing keys cancel. Diagonal input is scaled by √2/2 so diagonal speed
// equals axial speed. An attack starts on Attack input when none is playing.
func (a *Actor) HandleInput(in core.InputFrame) {
	dx, dy := 0.0, 0.0
	if in.Held(core.ActionLeft) {
		dx--
	}
	if in.Held(core.ActionRight) {
		dx++
	}
	if in.Held(core.ActionUp) {
		dy--
	}
	if in.Held(core.ActionDown) {
		dy++
	}

	if !a.attacking && in.Has(core.ActionAttack) {
		a.attacking = true
		a.setState(StateAttack)
	}

	vel := core.Vec2{X: dx * a.speed, Y: dy * a.speed}
	if dx != 0 && dy != 0 {
		vel = vel.Scale(diagonal)
	}

	if a.attacking {
		switch a.cfg.AttackPolicy {
		case PolicyDamped:
			vel = vel.Scale(a.cfg.AttackDamping)
		default:
			vel = core.Vec2{}
		}
	}
	a.vel = vel

	if !vel.IsZero() || !a.attacking {
		switch {
		case dx < 0:
			a.facing = FacingLeft
		case dx > 0:
			a.facing = FacingRight
		}
	}

	if a.attacking {
		return
	}
	if dx != 0 || dy != 0 {
		a.setState(StateWalk)
	} else {
		a.setState(StateIdle)
	}
}

// Advance integrates the position over dt, clamps the bounding box inside
// bounds and advances the animation frame timer.
func (a *Actor) Advance(bounds core.Rect, dt time.Duration) {
	if dt <= 0 {
		return
	}
	step := float64(dt) / float64(ReferenceStep)
	a.pos = a.pos.Add(a.vel.Scale(step))
	box := bounds.ClampInside(a.Bounds())
	a.pos = core.Vec2{X: box.X, Y: box.Y}

	a.animate(dt)
}

func (a *Actor) animate(dt time.Duration) {
	anim := a.animation()
	a.acc += dt
	for a.acc > anim.FrameDelay {
		a.acc -= anim.FrameDelay
		a.frame++
		if a.frame < anim.Frames {
			continue
		}
		if anim.Loop {
			a.frame %= anim.Frames
			continue
		}
		a.frame = anim.Frames - 1
		if a.state == StateAttack {
			a.finishAttack()
			return
		}
		a.acc = 0
		return
	}
}

func (a *Actor) finishAttack() {
	a.attacking = false
	a.vel = core.Vec2{}
	a.setState(StateIdle)
	a.logger.Debug("attack finished")
}

func (a *Actor) animation() Animation {
	anim, ok := a.cfg.Animations[a.state]
	if !ok || anim.Frames <= 0 || anim.FrameDelay <= 0 {
		def := DefaultAnimations()[a.state]
		if anim.Frames <= 0 {
			anim.Frames = def.Frames
		}
		if anim.FrameDelay <= 0 {
			anim.FrameDelay = def.FrameDelay
		}
		if !ok {
			anim.Loop = def.Loop
		}
	}
	return anim
}

func (a *Actor) setState(s State) {
	if a.state == s {
		return
	}
	a.state = s
	a.frame = 0
	a.acc = 0
}

// GainExperience adds amount and applies every level-up it pays for.
// It returns the number of levels gained.
func (a *Actor) GainExperience(amount int) int {
	if amount <= 0 {
		return 0
	}
	a.exp += amount
	gained := 0
	for a.exp >= a.next {
		a.exp -= a.next
		a.level++
		a.next = int(math.Floor(float64(a.next) * a.cfg.Growth))
		if a.next < 1 {
			a.next = 1
		}
		a.speed += a.cfg.SpeedPerLevel
		gained++
		a.logger.Debug("level up", "level", a.level, "next", a.next, "speed", a.speed)
	}
	return gained
}

// OnCollect grants the per-collection experience reward.
func (a *Actor) OnCollect() int {
	return a.GainExperience(a.cfg.CollectReward)
}

// Bounds returns the actor's bounding box.
func (a *Actor) Bounds() core.Rect {
	return core.Rect{X: a.pos.X, Y: a.pos.Y, W: a.cfg.Width, H: a.cfg.Height}
}

// Position returns the top-left corner.
func (a *Actor) Position() core.Vec2 { return a.pos }

// Velocity returns the velocity set by the last HandleInput.
func (a *Actor) Velocity() core.Vec2 { return a.vel }

// Speed returns the current axial speed.
func (a *Actor) Speed() float64 { return a.speed }

// State returns the animation state.
func (a *Actor) State() State { return a.state }

// Facing returns the horizontal facing.
func (a *Actor) Facing() Facing { return a.facing }

// Frame returns the current frame index of the active animation.
func (a *Actor) Frame() int { return a.frame }

func (a *Actor) Attacking() bool { return a.attacking }
func (a *Actor) Level() int { return a.level }
func (a *Actor) Experience() int { return a.exp }
func (a *Actor) ExpToNext() int { return a.next }
func (a *Actor) Config() Config { return a.cfg }

// Snapshot returns a copy of the observable state.
func (a *Actor) Snapshot() Snapshot {
	return Snapshot{
		X:         a.pos.X,
		Y:         a.pos.Y,
		W:         a.cfg.Width,
		H:         a.cfg.Height,
		VX:        a.vel.X,
		VY:        a.vel.Y,
		Speed:     a.speed,
		Facing:    a.facing.String(),
		State:     a.state.String(),
		Frame:     a.frame,
		Attacking: a.attacking,
		Level:     a.level,
		Exp:       a.exp,
		ExpToNext: a.next,
	}
}
