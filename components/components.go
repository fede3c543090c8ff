// Package components defines ECS components for the village simulation.
package components

import "github.com/lizTheDeveloper/ai-village-sub004/traits"

// Kind classifies an entity for perception and targeting.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAgent
	KindAnimal
	KindResource
	KindStructure
)

// String returns the display name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindAgent:
		return "agent"
	case KindAnimal:
		return "animal"
	case KindResource:
		return "resource"
	case KindStructure:
		return "structure"
	default:
		return "unknown"
	}
}

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Heading represents an entity's facing direction in radians.
type Heading struct {
	Angle float32
}

// Meta identifies what an entity is. Present on every perceivable entity.
// Traits is only meaningful for agents; zero elsewhere.
type Meta struct {
	ID     uint32
	Kind   Kind
	Name   string
	Traits traits.Trait
}

// Threat marks an entity as dangerous to agents.
// Danger scales flee urgency; the reflex tier treats any visible threat as an
// immediate survival condition.
type Threat struct {
	Danger float32 // 0..1
}

// ResourceKind identifies a harvestable resource type.
type ResourceKind uint8

const (
	ResourceNone ResourceKind = iota
	ResourceWood
	ResourceBerry
	ResourceStone
	ResourceWater
)

// String returns the display name for a ResourceKind.
func (r ResourceKind) String() string {
	switch r {
	case ResourceWood:
		return "wood"
	case ResourceBerry:
		return "berry"
	case ResourceStone:
		return "stone"
	case ResourceWater:
		return "water"
	default:
		return "none"
	}
}

// ResourceKindFromString parses a resource name. Unknown names map to ResourceNone.
func ResourceKindFromString(s string) ResourceKind {
	switch s {
	case "wood":
		return ResourceWood
	case "berry":
		return ResourceBerry
	case "stone":
		return ResourceStone
	case "water":
		return ResourceWater
	default:
		return ResourceNone
	}
}

// Resource is a harvestable deposit in the world.
type Resource struct {
	Kind   ResourceKind
	Amount float32
}

// Structure is a construction site advanced by the build behavior.
type Structure struct {
	Stage    uint8
	MaxStage uint8
}

// Complete reports whether construction has reached the final stage.
func (s *Structure) Complete() bool {
	return s.Stage >= s.MaxStage
}
