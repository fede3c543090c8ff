package behavior

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
)

// eatTicks is how long a meal takes once the food is in hand.
const eatTicks = 3

// Eat consumes one unit of carried food, lowering hunger. It fails on the
// first step when the inventory holds no food, which routes the cascade
// toward gathering instead.
type Eat struct {
	owner ecs.Entity
	left  int
	began bool
}

// NewEat creates an eat-from-inventory instance. Params are ignored.
func NewEat(owner ecs.Entity, _ Params) (Instance, error) {
	return &Eat{owner: owner, left: eatTicks}, nil
}

func (e *Eat) ID() string { return IDEat }

func (e *Eat) SociallyInterruptible() bool { return false }

func (e *Eat) Interrupt() {}

func (e *Eat) Step(ctx *Context) StepStatus {
	inv := ctx.Access.Inv.Get(e.owner)
	if inv == nil {
		return StatusFailed
	}
	if !e.began {
		if inv.Take(components.ResourceBerry, 1) == 0 {
			return StatusFailed
		}
		e.began = true
	}

	e.left--
	if e.left > 0 {
		return StatusContinuing
	}

	if needs := ctx.Access.Needs.Get(e.owner); needs != nil {
		needs.Hunger -= float32(ctx.Cfg.Behavior.EatRestoresHunger)
		needs.Clamp()
	}
	if mem := ctx.Access.Mem.Get(e.owner); mem != nil {
		mem.Remember("ate a meal from my pack")
	}
	return StatusCompleted
}
