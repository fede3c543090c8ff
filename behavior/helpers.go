package behavior

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
)

// distanceTo returns the distance from the owner to the target entity.
// ok is false when either side is gone or lacks a position.
func distanceTo(ctx *Context, owner, target ecs.Entity) (float32, bool) {
	if !ctx.World.Alive(target) {
		return 0, false
	}
	a := ctx.Access.Pos.Get(owner)
	b := ctx.Access.Pos.Get(target)
	if a == nil || b == nil {
		return 0, false
	}
	dx := b.X - a.X
	dy := b.Y - a.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy))), true
}

// ticksFor converts a duration in simulation seconds to a tick count,
// never returning less than one.
func ticksFor(seconds float64, dt float32) int {
	n := int(seconds / float64(dt))
	if n < 1 {
		n = 1
	}
	return n
}

func clampCoord(v, max float32) float32 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// entityPos reads the target's position by value so the caller can keep
// steering toward it even while it moves.
func entityPos(ctx *Context, e ecs.Entity) (components.Position, bool) {
	if !ctx.World.Alive(e) {
		return components.Position{}, false
	}
	p := ctx.Access.Pos.Get(e)
	if p == nil {
		return components.Position{}, false
	}
	return *p, true
}
