package events

import "github.com/mlange-42/ark/ecs"

// Event types emitted by the core. Payload shapes are part of the bus contract:
// every field documented here is guaranteed present on emission.
const (
	// TypeSound is an ambient sound audible to nearby agents on the next tick.
	TypeSound Type = "sound:ambient"

	// TypeGreeting is emitted when one agent greets another.
	TypeGreeting Type = "agent:greeting"

	// TypeAgentDespawned signals external teardown of an agent; the orchestrator
	// subscribes to this to interrupt and discard its state.
	TypeAgentDespawned Type = "agent:despawned"

	// TypeDamageRequest asks the combat collaborator to apply damage. Cross-agent
	// harm always goes through this event, never through direct component writes.
	TypeDamageRequest Type = "damage:request"

	// TypeStageChanged reports construction progress on a structure.
	TypeStageChanged Type = "build:stage-changed"

	// TypeHarvest reports a completed resource harvest.
	TypeHarvest Type = "resource:harvested"

	// TypeDecision reports the decision taken for an agent this tick.
	TypeDecision Type = "decision:made"

	// TypeStaleDiscard reports a late deliberative response that was dropped.
	TypeStaleDiscard Type = "decision:stale-discarded"

	// TypeBehaviorStarted, TypeBehaviorEnded report behavior lifecycle changes.
	TypeBehaviorStarted Type = "behavior:started"
	TypeBehaviorEnded   Type = "behavior:ended"
)

// SoundData is the payload of TypeSound. Position is captured at emission time
// so hearing works even if the source moved or despawned since.
type SoundData struct {
	X, Y     float32
	Loudness float32 // 0..1, scales effective audibility
	Kind     string  // e.g. "footsteps", "chopping", "speech"
}

// GreetingData is the payload of TypeGreeting.
type GreetingData struct {
	From ecs.Entity
	To   ecs.Entity
}

// DespawnData is the payload of TypeAgentDespawned.
type DespawnData struct {
	Agent ecs.Entity
}

// DamageRequestData is the payload of TypeDamageRequest.
type DamageRequestData struct {
	Attacker ecs.Entity
	Target   ecs.Entity
	Amount   float32
}

// StageChangedData is the payload of TypeStageChanged. Agent is the acting
// builder; downstream construction and memory consumers require it.
type StageChangedData struct {
	Structure ecs.Entity
	Agent     ecs.Entity
	Stage     uint8
}

// HarvestData is the payload of TypeHarvest.
type HarvestData struct {
	Agent    ecs.Entity
	Resource ecs.Entity
	Kind     string
	Amount   uint16
}

// DecisionData is the payload of TypeDecision.
type DecisionData struct {
	Agent      ecs.Entity
	Tier       string
	BehaviorID string
}

// StaleDiscardData is the payload of TypeStaleDiscard.
type StaleDiscardData struct {
	Agent     ecs.Entity
	RequestID string
	Reason    string // "timeout" or "preempted"
}

// BehaviorData is the payload of the behavior lifecycle events.
type BehaviorData struct {
	Agent      ecs.Entity
	BehaviorID string
	Status     string // "started", "completed", "failed", "interrupted"
}
