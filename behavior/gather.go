package behavior

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/services"
)

// Gather walks to the nearest deposit of the requested resource kind and
// harvests until the haul target is met. When a deposit runs dry it retargets;
// running out of deposits completes with whatever was collected, or fails if
// nothing was.
type Gather struct {
	owner     ecs.Entity
	kind      components.ResourceKind
	target    ecs.Entity
	hasTarget bool
	collected int
}

// NewGather creates a gather instance. The "resource" param selects the kind
// and defaults to berry.
func NewGather(owner ecs.Entity, params Params) (Instance, error) {
	name := params.String("resource", "berry")
	kind := components.ResourceKindFromString(name)
	if kind == components.ResourceNone {
		return nil, fmt.Errorf("gather: unknown resource %q", name)
	}
	return &Gather{owner: owner, kind: kind}, nil
}

func (g *Gather) ID() string { return IDGather }

func (g *Gather) SociallyInterruptible() bool { return false }

func (g *Gather) Interrupt() {}

func (g *Gather) Step(ctx *Context) StepStatus {
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
		g.collected++
		if g.collected >= ctx.Cfg.Behavior.GatherAmount {
			return g.finish(ctx)
		}
		return StatusContinuing
	case errors.Is(err, services.ErrExhausted):
		g.hasTarget = false
		return StatusContinuing
	default:
		return StatusFailed
	}
}

func (g *Gather) retarget(ctx *Context) bool {
	candidates := ctx.Lookup.Resources(g.kind)
	target, err := ctx.Services.Targeting.SelectBest(g.owner, candidates, services.CriterionNearest)
	if err != nil {
		return false
	}
	g.target = target
	g.hasTarget = true
	return true
}

func (g *Gather) finish(ctx *Context) StepStatus {
	if g.collected == 0 {
		return StatusFailed
	}
	if mem := ctx.Access.Mem.Get(g.owner); mem != nil {
		mem.Remember(fmt.Sprintf("gathered %d %s", g.collected, g.kind))
	}
	return StatusCompleted
}
