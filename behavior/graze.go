package behavior

import (
	"errors"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/services"
)

// grazeSatedHunger is the hunger level at which a grazer stops feeding.
const grazeSatedHunger float32 = 20

// grazeBiteFraction scales per-bite hunger relief relative to a full meal.
const grazeBiteFraction = 0.25

// Graze feeds in place at a berry deposit, taking one bite per tick straight
// from the ground. Used by animals and by agents that forage hand to mouth
// instead of filling a pack.
type Graze struct {
	owner     ecs.Entity
	target    ecs.Entity
	hasTarget bool
	fed       bool
}

// NewGraze creates a graze instance. Params are ignored.
func NewGraze(owner ecs.Entity, _ Params) (Instance, error) {
	return &Graze{owner: owner}, nil
}

func (g *Graze) ID() string { return IDGraze }

func (g *Graze) SociallyInterruptible() bool { return false }

func (g *Graze) Interrupt() {}

func (g *Graze) Step(ctx *Context) StepStatus {
	needs := ctx.Access.Needs.Get(g.owner)
	if needs == nil {
		return StatusFailed
	}
	if needs.Hunger <= grazeSatedHunger {
		return g.finish(ctx)
	}

	if !g.hasTarget && !g.retarget(ctx) {
		return g.finish(ctx)
	}

	dist, ok := distanceTo(ctx, g.owner, g.target)
	if !ok {
		g.hasTarget = false
		return StatusContinuing
	}
	if dist > ctx.Cfg.Derived.Interact32 {
		pos, ok := entityPos(ctx, g.target)
		if !ok {
			g.hasTarget = false
			return StatusContinuing
		}
		if _, err := ctx.Services.Movement.MoveToward(g.owner, pos, ctx.DT); err != nil {
			return StatusFailed
		}
		return StatusContinuing
	}

	err := ctx.Services.Interaction.Use(g.owner, g.target, services.InteractHarvest, ctx.Tick)
	switch {
	case err == nil:
		// Bites go straight to the stomach, not the pack.
		if inv := ctx.Access.Inv.Get(g.owner); inv != nil {
			inv.Take(components.ResourceBerry, 1)
		}
		needs.Hunger -= float32(ctx.Cfg.Behavior.EatRestoresHunger) * grazeBiteFraction
		needs.Clamp()
		g.fed = true
		return StatusContinuing
	case errors.Is(err, services.ErrExhausted):
		g.hasTarget = false
		return StatusContinuing
	default:
		return StatusFailed
	}
}

func (g *Graze) retarget(ctx *Context) bool {
	candidates := ctx.Lookup.Resources(components.ResourceBerry)
	target, err := ctx.Services.Targeting.SelectBest(g.owner, candidates, services.CriterionNearest)
	if err != nil {
		return false
	}
	g.target = target
	g.hasTarget = true
	return true
}

func (g *Graze) finish(ctx *Context) StepStatus {
	if !g.fed {
		return StatusFailed
	}
	if mem := ctx.Access.Mem.Get(g.owner); mem != nil {
		mem.Remember("grazed on berries")
	}
	return StatusCompleted
}
