package perception

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
)

// VisibleEntity is one entry in the vision scan, nearest first.
type VisibleEntity struct {
	Entity   ecs.Entity
	Distance float32
	Kind     components.Kind
	Danger   float32 // from the Threat component; 0 for harmless entities
}

// AudibleEvent is one ambient sound within hearing range, most salient first.
type AudibleEvent struct {
	Source   ecs.Entity
	Kind     string
	Distance float32
	Loudness float32
}

// Snapshot is the per-tick, ephemeral summary of what an agent can currently
// see, hear, and socially engage with. It is rebuilt from current ECS state
// every tick and must never be retained across ticks.
type Snapshot struct {
	Tick              int64
	Visible           []VisibleEntity
	Audible           []AudibleEvent
	MeetingCandidates []ecs.Entity
}

// NearestThreat returns the closest visible threat, if any. Visible is ordered
// nearest-first, so the first dangerous entry wins.
func (s *Snapshot) NearestThreat() (VisibleEntity, bool) {
	for _, v := range s.Visible {
		if v.Danger > 0 {
			return v, true
		}
	}
	return VisibleEntity{}, false
}

// NearestOfKind returns the closest visible entity of the given kind.
func (s *Snapshot) NearestOfKind(kind components.Kind) (VisibleEntity, bool) {
	for _, v := range s.Visible {
		if v.Kind == kind {
			return v, true
		}
	}
	return VisibleEntity{}, false
}
