// Package actor implements the controllable forager: movement, bounds
// clamping, the idle/walk/attack animation machine and leveling.
package actor

import (
	"fmt"
	"time"
)

// State is the animation state of the actor.
type State int

const (
	StateIdle State = iota
	StateWalk
	StateAttack
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalk:
		return "walk"
	case StateAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// ParseState converts an animation name to a State.
func ParseState(s string) (State, bool) {
	switch s {
	case "idle":
		return StateIdle, true
	case "walk":
		return StateWalk, true
	case "attack":
		return StateAttack, true
	}
	return StateIdle, false
}

// Facing is the horizontal direction the actor looks at.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// MovePolicy decides what movement input does while an attack plays.
type MovePolicy string

const (
	// PolicyFreeze ignores movement input during an attack.
	PolicyFreeze MovePolicy = "freeze"
	// PolicyDamped scales movement by Config.AttackDamping during an attack.
	PolicyDamped MovePolicy = "damped"
)

// Valid reports whether p is a known policy.
func (p MovePolicy) Valid() bool {
	return p == PolicyFreeze || p == PolicyDamped
}

// Animation describes one frame sequence.
type Animation struct {
	Frames     int           `yaml:"frames" json:"frames"`
	FrameDelay time.Duration `yaml:"frame_delay" json:"frame_delay"`
	Loop       bool          `yaml:"loop" json:"loop"`
}

// Config holds the actor tuning values.
type Config struct {
	Width         float64
	Height        float64
	Speed         float64 // World units per reference step
	SpeedPerLevel float64
	ExpToNext     int     // Threshold for the first level-up
	Growth        float64 // Threshold multiplier applied on each level-up
	CollectReward int
	AttackPolicy  MovePolicy
	AttackDamping float64
	Animations    map[State]Animation
}

// DefaultAnimations returns the standard frame timings.
func DefaultAnimations() map[State]Animation {
	return map[State]Animation{
		StateIdle:   {Frames: 4, FrameDelay: 200 * time.Millisecond, Loop: true},
		StateWalk:   {Frames: 6, FrameDelay: 100 * time.Millisecond, Loop: true},
		StateAttack: {Frames: 4, FrameDelay: 80 * time.Millisecond, Loop: false},
	}
}

// DefaultConfig returns the standard actor settings.
func DefaultConfig() Config {
	return Config{
		Width:         40,
		Height:        40,
		Speed:         4,
		SpeedPerLevel: 0.2,
		ExpToNext:     100,
		Growth:        1.5,
		CollectReward: 10,
		AttackPolicy:  PolicyFreeze,
		AttackDamping: 0.5,
		Animations:    DefaultAnimations(),
	}
}

// Validate checks the config for values the actor cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("actor size must be positive, got %vx%v", c.Width, c.Height)
	case c.Speed < 0:
		return fmt.Errorf("actor speed must not be negative")
	case c.ExpToNext <= 0:
		return fmt.Errorf("experience threshold must be positive")
	case c.Growth < 1:
		return fmt.Errorf("experience growth must be at least 1, got %v", c.Growth)
	case !c.AttackPolicy.Valid():
		return fmt.Errorf("unknown attack policy %q", c.AttackPolicy)
	case c.AttackPolicy == PolicyDamped && (c.AttackDamping < 0 || c.AttackDamping > 1):
		return fmt.Errorf("attack damping must be within [0, 1], got %v", c.AttackDamping)
	}
	for state, anim := range c.Animations {
		if anim.Frames <= 0 || anim.FrameDelay <= 0 {
			return fmt.Errorf("animation %s needs positive frames and delay", state)
		}
	}
	return nil
}
