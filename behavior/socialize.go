package behavior

import (
	"errors"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/services"
)

// ErrNoPartner means a socialize instance was requested without someone to
// talk to.
var ErrNoPartner = errors.New("behavior: socialize requires a partner param")

// Socialize approaches a chosen partner, greets them once in conversation
// range, and lingers for the configured duration while the social need eases.
// The partner wandering off mid-conversation fails the behavior.
type Socialize struct {
	owner   ecs.Entity
	partner ecs.Entity
	greeted bool
	left    int
}

// NewSocialize creates a socialize instance. The "partner" param names the
// agent to approach and is required.
func NewSocialize(owner ecs.Entity, params Params) (Instance, error) {
	partner, ok := params.Entity("partner")
	if !ok {
		return nil, ErrNoPartner
	}
	return &Socialize{owner: owner, partner: partner}, nil
}

func (s *Socialize) ID() string { return IDSocialize }

func (s *Socialize) SociallyInterruptible() bool { return false }

func (s *Socialize) Interrupt() {}

func (s *Socialize) Step(ctx *Context) StepStatus {
	dist, ok := distanceTo(ctx, s.owner, s.partner)
	if !ok {
		return StatusFailed
	}

	if !s.greeted {
		if dist > ctx.Cfg.Derived.TalkRadius {
			pos, ok := entityPos(ctx, s.partner)
			if !ok {
				return StatusFailed
			}
			if _, err := ctx.Services.Movement.MoveToward(s.owner, pos, ctx.DT); err != nil {
				return StatusFailed
			}
			return StatusContinuing
		}
		if err := ctx.Services.Interaction.Use(s.owner, s.partner, services.InteractGreet, ctx.Tick); err != nil {
			return StatusFailed
		}
		s.greeted = true
		s.left = ticksFor(ctx.Cfg.Behavior.SocializeDuration, ctx.DT)
		return StatusContinuing
	}

	// Conversation over distance doesn't work; drifting apart ends it.
	if dist > ctx.Cfg.Derived.TalkRadius*2 {
		return StatusFailed
	}

	total := ticksFor(ctx.Cfg.Behavior.SocializeDuration, ctx.DT)
	if needs := ctx.Access.Needs.Get(s.owner); needs != nil {
		needs.Social -= components.NeedMax / float32(total)
		needs.Clamp()
	}

	s.left--
	if s.left > 0 {
		return StatusContinuing
	}
	if mem := ctx.Access.Mem.Get(s.owner); mem != nil {
		mem.Remember("had a chat with a neighbor")
	}
	return StatusCompleted
}
