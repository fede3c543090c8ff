package behavior

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
)

// wanderLegRange bounds how far a single wander leg may reach.
const wanderLegRange float32 = 80

// Wander strolls toward a random nearby point until it arrives or the leg
// timer runs out. It is the scripted fallback and the only built-in behavior
// that leaves the agent open to social interruption.
type Wander struct {
	owner  ecs.Entity
	target components.Position
	left   int
	picked bool
}

// NewWander creates a wander instance. Params are ignored.
func NewWander(owner ecs.Entity, _ Params) (Instance, error) {
	return &Wander{owner: owner}, nil
}

func (w *Wander) ID() string { return IDWander }

func (w *Wander) SociallyInterruptible() bool { return true }

func (w *Wander) Interrupt() {}

func (w *Wander) Step(ctx *Context) StepStatus {
	if !w.picked {
		pos := ctx.Access.Pos.Get(w.owner)
		if pos == nil {
			return StatusFailed
		}
		w.target = components.Position{
			X: clampCoord(pos.X+(ctx.Rng.Float32()*2-1)*wanderLegRange, ctx.Cfg.Derived.WorldW32),
			Y: clampCoord(pos.Y+(ctx.Rng.Float32()*2-1)*wanderLegRange, ctx.Cfg.Derived.WorldH32),
		}
		w.left = ticksFor(ctx.Cfg.Behavior.WanderDuration, ctx.DT)
		w.picked = true
	}

	w.left--
	if w.left <= 0 {
		return StatusCompleted
	}
	arrived, err := ctx.Services.Movement.MoveToward(w.owner, w.target, ctx.DT)
	if err != nil {
		return StatusFailed
	}
	if arrived {
		return StatusCompleted
	}
	return StatusContinuing
}
