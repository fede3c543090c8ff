package behavior

import (
	"github.com/mlange-42/ark/ecs"
)

// sleepRestedFatigue is the fatigue level at which the sleeper wakes.
const sleepRestedFatigue float32 = 5

// Sleep holds the agent in place while fatigue drains at the configured
// recovery rate. The agent is deaf to conversation but not to reflexes;
// a threat will still wake it through the cascade.
type Sleep struct {
	owner ecs.Entity
}

// NewSleep creates a sleep instance. Params are ignored.
func NewSleep(owner ecs.Entity, _ Params) (Instance, error) {
	return &Sleep{owner: owner}, nil
}

func (s *Sleep) ID() string { return IDSleep }

func (s *Sleep) SociallyInterruptible() bool { return false }

func (s *Sleep) Interrupt() {}

func (s *Sleep) Step(ctx *Context) StepStatus {
	needs := ctx.Access.Needs.Get(s.owner)
	if needs == nil {
		return StatusFailed
	}
	needs.Fatigue -= float32(ctx.Cfg.Behavior.SleepRecoveryRate) * ctx.DT
	needs.Clamp()
	if needs.Fatigue > sleepRestedFatigue {
		return StatusContinuing
	}
	if mem := ctx.Access.Mem.Get(s.owner); mem != nil {
		mem.Remember("slept until rested")
	}
	return StatusCompleted
}
