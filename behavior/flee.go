package behavior

import (
	"errors"

	"github.com/mlange-42/ark/ecs"
)

// fleeStepDistance is how far ahead each flee leg aims.
const fleeStepDistance float32 = 40

// fleeSafetyRelief is how much the safety need eases once the agent escapes.
const fleeSafetyRelief float32 = 40

// ErrNoThreat means a flee instance was requested without a threat to flee.
var ErrNoThreat = errors.New("behavior: flee requires a threat param")

// Flee runs directly away from a threat until the gap exceeds the configured
// safe distance or the threat is gone. It is never socially interruptible and
// is expected to preempt everything else via the reflex tier.
type Flee struct {
	owner  ecs.Entity
	threat ecs.Entity
}

// NewFlee creates a flee instance. The "threat" param names the entity to
// escape from and is required.
func NewFlee(owner ecs.Entity, params Params) (Instance, error) {
	threat, ok := params.Entity("threat")
	if !ok {
		return nil, ErrNoThreat
	}
	return &Flee{owner: owner, threat: threat}, nil
}

func (f *Flee) ID() string { return IDFlee }

func (f *Flee) SociallyInterruptible() bool { return false }

func (f *Flee) Interrupt() {}

func (f *Flee) Step(ctx *Context) StepStatus {
	threatPos, ok := entityPos(ctx, f.threat)
	if !ok {
		return f.escaped(ctx)
	}
	dist, ok := distanceTo(ctx, f.owner, f.threat)
	if !ok {
		return f.escaped(ctx)
	}
	if dist >= float32(ctx.Cfg.Behavior.FleeSafetyDistance) {
		return f.escaped(ctx)
	}

	dest, err := ctx.Services.Movement.AwayFrom(f.owner, threatPos, fleeStepDistance)
	if err != nil {
		return StatusFailed
	}
	if _, err := ctx.Services.Movement.MoveToward(f.owner, dest, ctx.DT); err != nil {
		return StatusFailed
	}
	return StatusContinuing
}

func (f *Flee) escaped(ctx *Context) StepStatus {
	if needs := ctx.Access.Needs.Get(f.owner); needs != nil {
		needs.Safety -= fleeSafetyRelief
		needs.Clamp()
	}
	if mem := ctx.Access.Mem.Get(f.owner); mem != nil {
		mem.Remember("fled from danger")
	}
	return StatusCompleted
}
