package services

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/config"
)

// Movement translates "move toward X" intents into position and heading
// writes on the moving entity.
type Movement struct {
	world   *ecs.World
	posMap  *ecs.Map1[components.Position]
	headMap *ecs.Map1[components.Heading]
	cfg     *config.Config
}

// NewMovement creates the movement facade.
func NewMovement(w *ecs.World, cfg *config.Config) *Movement {
	return &Movement{
		world:   w,
		posMap:  ecs.NewMap1[components.Position](w),
		headMap: ecs.NewMap1[components.Heading](w),
		cfg:     cfg,
	}
}

// MoveToward steps the entity toward the target at the configured speed and
// turns its heading to face the direction of travel. Returns true once the
// entity is within arrive range of the target.
func (m *Movement) MoveToward(e ecs.Entity, target components.Position, dt float32) (bool, error) {
	if !m.world.Alive(e) {
		return false, fmt.Errorf("%w: %v", ErrInvalidEntity, e)
	}
	pos := m.posMap.Get(e)
	if pos == nil {
		return false, fmt.Errorf("%w: %v lacks Position", ErrMissingComponent, e)
	}

	dx := target.X - pos.X
	dy := target.Y - pos.Y
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))

	arrive := m.cfg.Derived.ArriveRange32
	if dist <= arrive {
		return true, nil
	}

	step := m.cfg.Derived.Speed32 * dt
	if step >= dist {
		pos.X = target.X
		pos.Y = target.Y
	} else {
		pos.X += dx / dist * step
		pos.Y += dy / dist * step
	}
	pos.X = clampCoord(pos.X, m.cfg.Derived.WorldW32)
	pos.Y = clampCoord(pos.Y, m.cfg.Derived.WorldH32)

	if head := m.headMap.Get(e); head != nil {
		head.Angle = float32(math.Atan2(float64(dy), float64(dx)))
	}

	newDx := target.X - pos.X
	newDy := target.Y - pos.Y
	return newDx*newDx+newDy*newDy <= arrive*arrive, nil
}

// AwayFrom computes a destination directly away from a point, clamped to the
// world bounds. Behaviors use it to build flee targets for MoveToward.
func (m *Movement) AwayFrom(e ecs.Entity, from components.Position, distance float32) (components.Position, error) {
	if !m.world.Alive(e) {
		return components.Position{}, fmt.Errorf("%w: %v", ErrInvalidEntity, e)
	}
	pos := m.posMap.Get(e)
	if pos == nil {
		return components.Position{}, fmt.Errorf("%w: %v lacks Position", ErrMissingComponent, e)
	}

	dx := pos.X - from.X
	dy := pos.Y - from.Y
	norm := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if norm < 0.001 {
		// Standing on the threat: pick the current heading as the escape line.
		angle := float32(0)
		if head := m.headMap.Get(e); head != nil {
			angle = head.Angle
		}
		dx = float32(math.Cos(float64(angle)))
		dy = float32(math.Sin(float64(angle)))
		norm = 1
	}

	target := components.Position{
		X: clampCoord(pos.X+dx/norm*distance, m.cfg.Derived.WorldW32),
		Y: clampCoord(pos.Y+dy/norm*distance, m.cfg.Derived.WorldH32),
	}
	return target, nil
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
