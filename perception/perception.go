// Package perception builds the per-tick sensory snapshot for an agent:
// a vision cone over nearby entities, ambient sounds within hearing range,
// and social meeting opportunities.
package perception

import (
	"fmt"
	"math"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/config"
	"github.com/lizTheDeveloper/ai-village-sub004/events"
)

// OcclusionChecker answers line-of-sight queries. Terrain occlusion is owned
// by an external spatial collaborator; a nil checker means open terrain.
type OcclusionChecker interface {
	HasLineOfSight(x1, y1, x2, y2 float32) bool
}

// SocialDirectory reports whether an agent is idle enough to converse:
// no active behavior, or one explicitly interruptible for social contact.
type SocialDirectory interface {
	SociallyAvailable(e ecs.Entity) bool
}

// System derives perception snapshots from current ECS state and the current
// tick's ambient event log. It has no side effects on the world.
type System struct {
	posMap    *ecs.Map1[components.Position]
	headMap   *ecs.Map1[components.Heading]
	metaMap   *ecs.Map1[components.Meta]
	threatMap *ecs.Map1[components.Threat]

	grid      *SpatialGrid
	occlusion OcclusionChecker
	social    SocialDirectory
	cfg       *config.Config

	// Agents greeted this tick are excluded from meeting candidates.
	greetedTick map[ecs.Entity]int64

	scratch []Neighbor
}

// NewSystem creates a perception system. It subscribes to greeting events on
// the bus so meeting detection can exclude agents already greeted this tick.
func NewSystem(w *ecs.World, grid *SpatialGrid, occ OcclusionChecker, social SocialDirectory, bus *events.Bus, cfg *config.Config) *System {
	s := &System{
		posMap:      ecs.NewMap1[components.Position](w),
		headMap:     ecs.NewMap1[components.Heading](w),
		metaMap:     ecs.NewMap1[components.Meta](w),
		threatMap:   ecs.NewMap1[components.Threat](w),
		grid:        grid,
		occlusion:   occ,
		social:      social,
		cfg:         cfg,
		greetedTick: make(map[ecs.Entity]int64),
	}
	bus.Subscribe(events.TypeGreeting, func(ev events.Event) {
		if data, ok := ev.Data.(events.GreetingData); ok {
			s.greetedTick[data.To] = ev.Tick
		}
	})
	return s
}

// Perceive builds a fresh snapshot for the agent from current ECS state and
// the ambient event log of this tick. A missing Position or Heading component
// on the agent is a programming error and panics.
func (s *System) Perceive(agent ecs.Entity, eventLog []events.Event, tick int64) Snapshot {
	pos := s.posMap.Get(agent)
	if pos == nil {
		panic(fmt.Sprintf("perception: agent %v has no Position component", agent))
	}
	head := s.headMap.Get(agent)
	if head == nil {
		panic(fmt.Sprintf("perception: agent %v has no Heading component", agent))
	}

	snap := Snapshot{Tick: tick}
	snap.Visible = s.scanVision(agent, *pos, head.Angle)
	snap.Audible = s.scanHearing(*pos, eventLog)
	snap.MeetingCandidates = s.scanMeetings(agent, *pos, tick)
	return snap
}

// scanVision returns entities within the vision cone, nearest first.
func (s *System) scanVision(agent ecs.Entity, pos components.Position, heading float32) []VisibleEntity {
	radius := s.cfg.Derived.VisionRadius
	halfFOV := s.cfg.Derived.HalfFOV

	s.scratch = s.grid.QueryRadiusInto(s.scratch[:0], pos.X, pos.Y, radius, agent, s.posMap)

	visible := make([]VisibleEntity, 0, len(s.scratch))
	for _, n := range s.scratch {
		angleTo := float32(math.Atan2(float64(n.DY), float64(n.DX)))
		if absAngle(normalizeAngle(angleTo-heading)) > halfFOV {
			continue
		}
		if s.occlusion != nil && !s.occlusion.HasLineOfSight(pos.X, pos.Y, pos.X+n.DX, pos.Y+n.DY) {
			continue
		}
		meta := s.metaMap.Get(n.E)
		if meta == nil {
			continue
		}
		var danger float32
		if t := s.threatMap.Get(n.E); t != nil {
			danger = t.Danger
		}
		visible = append(visible, VisibleEntity{
			Entity:   n.E,
			Distance: float32(math.Sqrt(float64(n.DistSq))),
			Kind:     meta.Kind,
			Danger:   danger,
		})
	}

	// Nearest first; ties broken by entity ID for determinism.
	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].Distance != visible[j].Distance {
			return visible[i].Distance < visible[j].Distance
		}
		return entityID(s.metaMap, visible[i].Entity) < entityID(s.metaMap, visible[j].Entity)
	})
	return visible
}

// scanHearing returns ambient sounds within the hearing radius, ordered by
// salience: louder and closer events first.
func (s *System) scanHearing(pos components.Position, eventLog []events.Event) []AudibleEvent {
	radius := s.cfg.Derived.HearingRadius

	var audible []AudibleEvent
	for _, ev := range eventLog {
		if ev.Type != events.TypeSound {
			continue
		}
		data, ok := ev.Data.(events.SoundData)
		if !ok {
			continue
		}
		dx := data.X - pos.X
		dy := data.Y - pos.Y
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if dist > radius {
			continue
		}
		audible = append(audible, AudibleEvent{
			Source:   ev.Source.Entity,
			Kind:     data.Kind,
			Distance: dist,
			Loudness: data.Loudness,
		})
	}

	sort.SliceStable(audible, func(i, j int) bool {
		return salience(audible[i], radius) > salience(audible[j], radius)
	})
	return audible
}

// salience ranks a sound by how strongly it registers: loud and close beats
// quiet and far.
func salience(a AudibleEvent, radius float32) float32 {
	return a.Loudness * (1 - a.Distance/radius)
}

// scanMeetings returns other agents close and idle enough to converse with,
// excluding any greeted earlier this tick.
func (s *System) scanMeetings(agent ecs.Entity, pos components.Position, tick int64) []ecs.Entity {
	radius := s.cfg.Derived.TalkRadius

	s.scratch = s.grid.QueryRadiusInto(s.scratch[:0], pos.X, pos.Y, radius, agent, s.posMap)

	var candidates []ecs.Entity
	for _, n := range s.scratch {
		meta := s.metaMap.Get(n.E)
		if meta == nil || meta.Kind != components.KindAgent {
			continue
		}
		if t, ok := s.greetedTick[n.E]; ok && t == tick {
			continue
		}
		if s.social != nil && !s.social.SociallyAvailable(n.E) {
			continue
		}
		candidates = append(candidates, n.E)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return entityID(s.metaMap, candidates[i]) < entityID(s.metaMap, candidates[j])
	})
	return candidates
}

func entityID(metaMap *ecs.Map1[components.Meta], e ecs.Entity) uint32 {
	if meta := metaMap.Get(e); meta != nil {
		return meta.ID
	}
	return 0
}

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float32) float32 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

func absAngle(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}
