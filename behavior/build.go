package behavior

import (
	"errors"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/services"
)

// Build walks to a construction site and advances it one stage per tick,
// consuming carried wood. An explicit "site" param pins the target; otherwise
// the nearest incomplete structure is chosen. Running out of wood fails the
// behavior so the cascade can send the agent gathering.
type Build struct {
	owner     ecs.Entity
	site      ecs.Entity
	hasSite   bool
	anyStaged bool
}

// NewBuild creates a build instance.
func NewBuild(owner ecs.Entity, params Params) (Instance, error) {
	b := &Build{owner: owner}
	if site, ok := params.Entity("site"); ok {
		b.site = site
		b.hasSite = true
	}
	return b, nil
}

func (b *Build) ID() string { return IDBuild }

func (b *Build) SociallyInterruptible() bool { return false }

func (b *Build) Interrupt() {}

func (b *Build) Step(ctx *Context) StepStatus {
	if !b.hasSite && !b.retarget(ctx) {
		return StatusFailed
	}
	if !ctx.World.Alive(b.site) {
		return StatusFailed
	}

	dist, ok := distanceTo(ctx, b.owner, b.site)
	if !ok {
		return StatusFailed
	}
	if dist > ctx.Cfg.Derived.Interact32 {
		pos, ok := entityPos(ctx, b.site)
		if !ok {
			return StatusFailed
		}
		if _, err := ctx.Services.Movement.MoveToward(b.owner, pos, ctx.DT); err != nil {
			return StatusFailed
		}
		return StatusContinuing
	}

	err := ctx.Services.Interaction.Use(b.owner, b.site, services.InteractBuild, ctx.Tick)
	switch {
	case err == nil:
		b.anyStaged = true
		if st := ctx.Access.Struct.Get(b.site); st != nil && st.Complete() {
			return b.finish(ctx)
		}
		return StatusContinuing
	case errors.Is(err, services.ErrAlreadyComplete):
		if b.anyStaged {
			return b.finish(ctx)
		}
		return StatusCompleted
	case errors.Is(err, services.ErrNoMaterials):
		return StatusFailed
	default:
		return StatusFailed
	}
}

func (b *Build) retarget(ctx *Context) bool {
	candidates := ctx.Lookup.IncompleteStructures()
	site, err := ctx.Services.Targeting.SelectBest(b.owner, candidates, services.CriterionNearest)
	if err != nil {
		return false
	}
	b.site = site
	b.hasSite = true
	return true
}

func (b *Build) finish(ctx *Context) StepStatus {
	if mem := ctx.Access.Mem.Get(b.owner); mem != nil {
		mem.Remember("finished building a structure")
	}
	return StatusCompleted
}
