// Package services provides the stateless facades behaviors act through:
// movement, targeting, and interaction. Each validates its inputs and returns
// a typed error instead of silently doing nothing.
package services

import (
	"errors"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/config"
	"github.com/lizTheDeveloper/ai-village-sub004/events"
)

// Typed service failures. Behaviors treat these as a failed step; they are
// never swallowed inside a service.
var (
	ErrInvalidEntity    = errors.New("services: entity is not alive")
	ErrMissingComponent = errors.New("services: entity lacks a required component")
	ErrOutOfRange       = errors.New("services: target out of range")
	ErrNoCandidates     = errors.New("services: no candidates to select from")
	ErrExhausted        = errors.New("services: resource is exhausted")
	ErrAlreadyComplete  = errors.New("services: structure is already complete")
	ErrNoMaterials      = errors.New("services: missing required materials")
	ErrWrongKind        = errors.New("services: target kind does not support this interaction")
)

// Services bundles the three facades for injection into behaviors.
type Services struct {
	Movement    *Movement
	Targeting   *Targeting
	Interaction *Interaction
}

// New creates the service facades over a world.
func New(w *ecs.World, bus *events.Bus, cfg *config.Config) *Services {
	return &Services{
		Movement:    NewMovement(w, cfg),
		Targeting:   NewTargeting(w),
		Interaction: NewInteraction(w, bus, cfg),
	}
}
