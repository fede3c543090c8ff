// Package behavior provides the behavior catalog and execution layer: each
// behavior is a small state machine instantiated from a registered factory and
// stepped once per tick by the brain orchestrator.
package behavior

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/config"
	"github.com/lizTheDeveloper/ai-village-sub004/events"
	"github.com/lizTheDeveloper/ai-village-sub004/services"
)

// Canonical behavior IDs. The decision tiers speak this vocabulary; an ID the
// registry does not know indicates drift and is a hard error.
const (
	IDWander    = "wander"
	IDEat       = "eat-from-inventory"
	IDGather    = "gather"
	IDGraze     = "graze"
	IDSleep     = "sleep"
	IDFlee      = "flee"
	IDBuild     = "build"
	IDSocialize = "socialize"
)

// StepStatus is the outcome of one behavior step.
type StepStatus uint8

const (
	StatusContinuing StepStatus = iota
	StatusCompleted
	StatusFailed
)

// String returns the display name for a StepStatus.
func (s StepStatus) String() string {
	switch s {
	case StatusContinuing:
		return "continuing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Params carries the parameters a decision attached to a behavior.
type Params map[string]any

// String reads a string parameter, with a default for missing or mistyped values.
func (p Params) String(key, def string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Int reads an integer parameter, tolerating float64 from decoded JSON.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}

// Entity reads an entity-valued parameter, as set by reflex rules that
// point a behavior at something the agent just perceived.
func (p Params) Entity(key string) (ecs.Entity, bool) {
	if v, ok := p[key]; ok {
		if e, ok := v.(ecs.Entity); ok {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// Context bundles what a behavior may touch during a step: the world (its own
// agent's components only), the shared service facades, and the event bus.
type Context struct {
	World    *ecs.World
	Access   *Access
	Services *services.Services
	Bus      *events.Bus
	Cfg      *config.Config
	Lookup   *Lookup
	Rng      *rand.Rand
	Tick     int64
	DT       float32
}

// Instance is a running behavior owned by the orchestrator for its lifetime.
type Instance interface {
	// ID returns the behavior's registry identifier.
	ID() string
	// Step advances the state machine by one tick.
	Step(ctx *Context) StepStatus
	// Interrupt tells the instance it is being discarded before completion.
	Interrupt()
	// SociallyInterruptible reports whether the agent counts as available for
	// conversation while running this behavior.
	SociallyInterruptible() bool
}

// Factory creates a behavior instance bound to its owning agent.
type Factory func(owner ecs.Entity, params Params) (Instance, error)

// Access holds the component mappers behaviors use for their own agent's
// state. Shared across all instances; created once per world.
type Access struct {
	Pos    *ecs.Map1[components.Position]
	Head   *ecs.Map1[components.Heading]
	Needs  *ecs.Map1[components.Needs]
	Inv    *ecs.Map1[components.Inventory]
	Mem    *ecs.Map1[components.Memory]
	Meta   *ecs.Map1[components.Meta]
	Res    *ecs.Map1[components.Resource]
	Struct *ecs.Map1[components.Structure]
}

// NewAccess creates the shared component mappers for a world.
func NewAccess(w *ecs.World) *Access {
	return &Access{
		Pos:    ecs.NewMap1[components.Position](w),
		Head:   ecs.NewMap1[components.Heading](w),
		Needs:  ecs.NewMap1[components.Needs](w),
		Inv:    ecs.NewMap1[components.Inventory](w),
		Mem:    ecs.NewMap1[components.Memory](w),
		Meta:   ecs.NewMap1[components.Meta](w),
		Res:    ecs.NewMap1[components.Resource](w),
		Struct: ecs.NewMap1[components.Structure](w),
	}
}
