package services

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/config"
	"github.com/lizTheDeveloper/ai-village-sub004/events"
)

// InteractionKind identifies what an agent is doing to a target.
type InteractionKind uint8

const (
	InteractHarvest InteractionKind = iota
	InteractBuild
	InteractGreet
	InteractAttack
)

// String returns the display name for an InteractionKind.
func (k InteractionKind) String() string {
	switch k {
	case InteractHarvest:
		return "harvest"
	case InteractBuild:
		return "build"
	case InteractGreet:
		return "greet"
	case InteractAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Interaction applies "use the nearest Y" intents: harvesting resources,
// advancing construction, greeting, attacking. Mutations of non-agent targets
// happen here, the sanctioned shared-service path; harm to other agents is
// emitted as a damage:request event instead of written directly.
type Interaction struct {
	world     *ecs.World
	posMap    *ecs.Map1[components.Position]
	metaMap   *ecs.Map1[components.Meta]
	resMap    *ecs.Map1[components.Resource]
	structMap *ecs.Map1[components.Structure]
	invMap    *ecs.Map1[components.Inventory]
	bus       *events.Bus
	cfg       *config.Config
}

// NewInteraction creates the interaction facade.
func NewInteraction(w *ecs.World, bus *events.Bus, cfg *config.Config) *Interaction {
	return &Interaction{
		world:     w,
		posMap:    ecs.NewMap1[components.Position](w),
		metaMap:   ecs.NewMap1[components.Meta](w),
		resMap:    ecs.NewMap1[components.Resource](w),
		structMap: ecs.NewMap1[components.Structure](w),
		invMap:    ecs.NewMap1[components.Inventory](w),
		bus:       bus,
		cfg:       cfg,
	}
}

// Use performs one tick's worth of interaction between actor and target.
func (s *Interaction) Use(actor, target ecs.Entity, kind InteractionKind, tick int64) error {
	if !s.world.Alive(actor) {
		return fmt.Errorf("%w: actor %v", ErrInvalidEntity, actor)
	}
	if !s.world.Alive(target) {
		return fmt.Errorf("%w: target %v", ErrInvalidEntity, target)
	}
	actorPos := s.posMap.Get(actor)
	targetPos := s.posMap.Get(target)
	if actorPos == nil || targetPos == nil {
		return fmt.Errorf("%w: interaction requires Position on both sides", ErrMissingComponent)
	}

	maxRange := s.cfg.Derived.Interact32
	if kind == InteractGreet {
		maxRange = s.cfg.Derived.TalkRadius
	}
	dx := targetPos.X - actorPos.X
	dy := targetPos.Y - actorPos.Y
	if dist := float32(math.Sqrt(float64(dx*dx + dy*dy))); dist > maxRange {
		return fmt.Errorf("%w: %.1f > %.1f", ErrOutOfRange, dist, maxRange)
	}

	switch kind {
	case InteractHarvest:
		return s.harvest(actor, target, *targetPos, tick)
	case InteractBuild:
		return s.build(actor, target, *targetPos, tick)
	case InteractGreet:
		return s.greet(actor, target, *actorPos, tick)
	case InteractAttack:
		return s.attack(actor, target, tick)
	default:
		return fmt.Errorf("services: unsupported interaction kind %d", kind)
	}
}

func (s *Interaction) harvest(actor, target ecs.Entity, targetPos components.Position, tick int64) error {
	res := s.resMap.Get(target)
	if res == nil {
		return fmt.Errorf("%w: target has no Resource", ErrWrongKind)
	}
	if res.Amount < 1 {
		return fmt.Errorf("%w: %s", ErrExhausted, res.Kind)
	}
	inv := s.invMap.Get(actor)
	if inv == nil {
		return fmt.Errorf("%w: actor lacks Inventory", ErrMissingComponent)
	}

	res.Amount--
	inv.Add(res.Kind, 1)

	s.bus.Defer(events.Event{
		Type:   events.TypeHarvest,
		Source: events.Source{Entity: actor, System: "interaction"},
		Tick:   tick,
		Data:   events.HarvestData{Agent: actor, Resource: target, Kind: res.Kind.String(), Amount: 1},
	})
	s.emitSound(actor, targetPos, 0.4, "rustling", tick)
	return nil
}

func (s *Interaction) build(actor, target ecs.Entity, targetPos components.Position, tick int64) error {
	str := s.structMap.Get(target)
	if str == nil {
		return fmt.Errorf("%w: target has no Structure", ErrWrongKind)
	}
	if str.Complete() {
		return ErrAlreadyComplete
	}
	inv := s.invMap.Get(actor)
	if inv == nil {
		return fmt.Errorf("%w: actor lacks Inventory", ErrMissingComponent)
	}
	if inv.Take(components.ResourceWood, 1) == 0 {
		return fmt.Errorf("%w: wood", ErrNoMaterials)
	}

	str.Stage++

	// Stage changes carry the acting agent: construction and memory consumers
	// require it.
	s.bus.Defer(events.Event{
		Type:   events.TypeStageChanged,
		Source: events.Source{Entity: actor, System: "interaction"},
		Tick:   tick,
		Data:   events.StageChangedData{Structure: target, Agent: actor, Stage: str.Stage},
	})
	s.emitSound(actor, targetPos, 0.7, "hammering", tick)
	return nil
}

func (s *Interaction) greet(actor, target ecs.Entity, actorPos components.Position, tick int64) error {
	meta := s.metaMap.Get(target)
	if meta == nil || meta.Kind != components.KindAgent {
		return fmt.Errorf("%w: greeting requires an agent target", ErrWrongKind)
	}

	// Immediate dispatch: later-scheduled agents' meeting detection must see
	// this greeting within the same tick.
	s.bus.Publish(events.Event{
		Type:   events.TypeGreeting,
		Source: events.Source{Entity: actor, System: "interaction"},
		Tick:   tick,
		Data:   events.GreetingData{From: actor, To: target},
	})
	s.emitSound(actor, actorPos, 0.5, "speech", tick)
	return nil
}

func (s *Interaction) attack(actor, target ecs.Entity, tick int64) error {
	// Cross-entity harm goes through the event bus; the combat collaborator
	// applies the damage.
	s.bus.Defer(events.Event{
		Type:   events.TypeDamageRequest,
		Source: events.Source{Entity: actor, System: "interaction"},
		Tick:   tick,
		Data:   events.DamageRequestData{Attacker: actor, Target: target, Amount: 1},
	})
	return nil
}

func (s *Interaction) emitSound(source ecs.Entity, at components.Position, loudness float32, kind string, tick int64) {
	s.bus.Defer(events.Event{
		Type:   events.TypeSound,
		Source: events.Source{Entity: source, System: "interaction"},
		Tick:   tick,
		Data:   events.SoundData{X: at.X, Y: at.Y, Loudness: loudness, Kind: kind},
	})
}
