package perception

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/config"
	"github.com/lizTheDeveloper/ai-village-sub004/events"
)

func init() {
	config.MustInit("")
}

// blockAll is an occlusion checker that denies every sight line.
type blockAll struct{}

func (blockAll) HasLineOfSight(x1, y1, x2, y2 float32) bool { return false }

// socialStub marks which entities count as available for conversation.
type socialStub map[ecs.Entity]bool

func (s socialStub) SociallyAvailable(e ecs.Entity) bool { return s[e] }

type fixture struct {
	w      *ecs.World
	bus    *events.Bus
	grid   *SpatialGrid
	social socialStub

	agentMapper  *ecs.Map3[components.Position, components.Heading, components.Meta]
	thingMapper  *ecs.Map2[components.Position, components.Meta]
	threatMapper *ecs.Map3[components.Position, components.Meta, components.Threat]

	nextID uint32
}

func newFixture(occ OcclusionChecker) (*fixture, *System) {
	cfg := config.Cfg()
	w := ecs.NewWorld()
	f := &fixture{
		w:            w,
		bus:          events.NewBus(),
		grid:         NewSpatialGrid(cfg.Derived.WorldW32, cfg.Derived.WorldH32, float32(cfg.World.GridCellSize)),
		social:       socialStub{},
		agentMapper:  ecs.NewMap3[components.Position, components.Heading, components.Meta](w),
		thingMapper:  ecs.NewMap2[components.Position, components.Meta](w),
		threatMapper: ecs.NewMap3[components.Position, components.Meta, components.Threat](w),
	}
	sys := NewSystem(w, f.grid, occ, f.social, f.bus, cfg)
	return f, sys
}

func (f *fixture) agent(x, y, heading float32) ecs.Entity {
	f.nextID++
	e := f.agentMapper.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Heading{Angle: heading},
		&components.Meta{ID: f.nextID, Kind: components.KindAgent},
	)
	f.grid.Insert(e, x, y)
	return e
}

func (f *fixture) thing(x, y float32, kind components.Kind) ecs.Entity {
	f.nextID++
	e := f.thingMapper.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Meta{ID: f.nextID, Kind: kind},
	)
	f.grid.Insert(e, x, y)
	return e
}

func (f *fixture) threat(x, y, danger float32) ecs.Entity {
	f.nextID++
	e := f.threatMapper.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Meta{ID: f.nextID, Kind: components.KindAnimal},
		&components.Threat{Danger: danger},
	)
	f.grid.Insert(e, x, y)
	return e
}

func TestPerceiveRequiresAgentComponents(t *testing.T) {
	f, sys := newFixture(nil)
	headless := f.thing(500, 500, components.KindAgent) // no Heading component

	defer func() {
		if recover() == nil {
			t.Fatal("perceiving an entity without its agent components must panic")
		}
	}()
	sys.Perceive(headless, nil, 1)
}

func TestVisionSeesAheadNotBehind(t *testing.T) {
	f, sys := newFixture(nil)
	observer := f.agent(500, 500, 0) // facing +X
	ahead := f.thing(560, 500, components.KindResource)
	f.thing(400, 500, components.KindResource) // directly behind

	snap := sys.Perceive(observer, nil, 1)
	if len(snap.Visible) != 1 {
		t.Fatalf("expected 1 visible entity, got %d", len(snap.Visible))
	}
	if snap.Visible[0].Entity != ahead {
		t.Errorf("expected the entity ahead to be visible")
	}
}

func TestVisionRespectsRadius(t *testing.T) {
	f, sys := newFixture(nil)
	observer := f.agent(500, 500, 0)
	f.thing(500+config.Cfg().Derived.VisionRadius+10, 500, components.KindResource)

	snap := sys.Perceive(observer, nil, 1)
	if len(snap.Visible) != 0 {
		t.Errorf("entity beyond vision radius should be invisible, got %d", len(snap.Visible))
	}
}

func TestVisionOrdersNearestFirst(t *testing.T) {
	f, sys := newFixture(nil)
	observer := f.agent(500, 500, 0)
	far := f.thing(580, 500, components.KindResource)
	near := f.thing(530, 500, components.KindResource)
	mid := f.thing(560, 500, components.KindResource)

	snap := sys.Perceive(observer, nil, 1)
	if len(snap.Visible) != 3 {
		t.Fatalf("expected 3 visible entities, got %d", len(snap.Visible))
	}
	want := []ecs.Entity{near, mid, far}
	for i, w := range want {
		if snap.Visible[i].Entity != w {
			t.Errorf("visible[%d] = %v, want %v (distances %v)", i, snap.Visible[i].Entity, w, snap.Visible)
		}
	}
	for i := 1; i < len(snap.Visible); i++ {
		if snap.Visible[i-1].Distance > snap.Visible[i].Distance {
			t.Errorf("distances not ascending: %f then %f", snap.Visible[i-1].Distance, snap.Visible[i].Distance)
		}
	}
}

func TestVisionOcclusionHidesEverything(t *testing.T) {
	f, sys := newFixture(blockAll{})
	observer := f.agent(500, 500, 0)
	f.thing(530, 500, components.KindResource)
	f.threat(540, 500, 0.9)

	snap := sys.Perceive(observer, nil, 1)
	if len(snap.Visible) != 0 {
		t.Errorf("occluded entities should be invisible, got %d", len(snap.Visible))
	}
}

func TestVisionAnnotatesDanger(t *testing.T) {
	f, sys := newFixture(nil)
	observer := f.agent(500, 500, 0)
	wolf := f.threat(540, 500, 0.8)
	f.thing(530, 500, components.KindResource)

	snap := sys.Perceive(observer, nil, 1)

	threat, ok := snap.NearestThreat()
	if !ok {
		t.Fatal("expected a visible threat")
	}
	if threat.Entity != wolf || threat.Danger != 0.8 {
		t.Errorf("threat = %+v, want wolf with danger 0.8", threat)
	}

	berry, ok := snap.NearestOfKind(components.KindResource)
	if !ok || berry.Danger != 0 {
		t.Errorf("harmless entity should carry zero danger, got %+v ok=%v", berry, ok)
	}
}

func soundEvent(source ecs.Entity, x, y, loudness float32, kind string) events.Event {
	return events.Event{
		Type:   events.TypeSound,
		Source: events.Source{Entity: source, System: "test"},
		Data:   events.SoundData{X: x, Y: y, Loudness: loudness, Kind: kind},
	}
}

func TestHearingRespectsRadiusAndSalience(t *testing.T) {
	f, sys := newFixture(nil)
	observer := f.agent(500, 500, 0)
	hearing := config.Cfg().Derived.HearingRadius

	log := []events.Event{
		soundEvent(ecs.Entity{}, 550, 500, 0.5, "rustling"),          // quiet, mid distance
		soundEvent(ecs.Entity{}, 510, 500, 0.9, "hammering"),         // loud and close
		soundEvent(ecs.Entity{}, 500+hearing+50, 500, 1.0, "scream"), // out of range
		{Type: events.TypeHarvest, Data: events.HarvestData{}},       // not a sound
	}

	snap := sys.Perceive(observer, log, 1)
	if len(snap.Audible) != 2 {
		t.Fatalf("expected 2 audible events, got %d", len(snap.Audible))
	}
	if snap.Audible[0].Kind != "hammering" {
		t.Errorf("loud-and-close should rank first, got %q", snap.Audible[0].Kind)
	}
	if snap.Audible[1].Kind != "rustling" {
		t.Errorf("quiet-and-far should rank second, got %q", snap.Audible[1].Kind)
	}
}

func TestMeetingCandidatesWantIdleAgentsOnly(t *testing.T) {
	f, sys := newFixture(nil)
	observer := f.agent(500, 500, 0)
	idle := f.agent(510, 500, 0)
	busy := f.agent(505, 500, 0)
	f.thing(502, 500, components.KindResource) // in range but not an agent
	f.agent(900, 900, 0)                       // far out of conversation range

	f.social[idle] = true
	f.social[busy] = false

	snap := sys.Perceive(observer, nil, 1)
	if len(snap.MeetingCandidates) != 1 || snap.MeetingCandidates[0] != idle {
		t.Errorf("expected only the idle neighbor, got %v", snap.MeetingCandidates)
	}
}

func TestMeetingExcludesAgentsGreetedThisTick(t *testing.T) {
	f, sys := newFixture(nil)
	observer := f.agent(500, 500, 0)
	neighbor := f.agent(510, 500, 0)
	f.social[neighbor] = true

	f.bus.Publish(events.Event{
		Type: events.TypeGreeting,
		Tick: 5,
		Data: events.GreetingData{From: observer, To: neighbor},
	})

	snap := sys.Perceive(observer, nil, 5)
	if len(snap.MeetingCandidates) != 0 {
		t.Errorf("a neighbor greeted this tick should be excluded, got %v", snap.MeetingCandidates)
	}

	// The exclusion is per tick, not permanent.
	snap = sys.Perceive(observer, nil, 6)
	if len(snap.MeetingCandidates) != 1 {
		t.Errorf("the exclusion should lapse next tick, got %v", snap.MeetingCandidates)
	}
}

func TestPerceiveExcludesSelf(t *testing.T) {
	f, sys := newFixture(nil)
	observer := f.agent(500, 500, 0)

	snap := sys.Perceive(observer, nil, 1)
	if len(snap.Visible) != 0 || len(snap.MeetingCandidates) != 0 {
		t.Errorf("an agent must not perceive itself, got %+v", snap)
	}
}

func TestSpatialGridQueryAndClear(t *testing.T) {
	grid := NewSpatialGrid(1024, 1024, 64)
	w := ecs.NewWorld()
	posMapper := ecs.NewMap1[components.Position](w)

	a := posMapper.NewEntity(&components.Position{X: 100, Y: 100})
	b := posMapper.NewEntity(&components.Position{X: 110, Y: 100})
	c := posMapper.NewEntity(&components.Position{X: 400, Y: 400})
	grid.Insert(a, 100, 100)
	grid.Insert(b, 110, 100)
	grid.Insert(c, 400, 400)

	got := grid.QueryRadiusInto(nil, 100, 100, 50, a, posMapper)
	if len(got) != 1 || got[0].E != b {
		t.Fatalf("expected only the close neighbor, got %v", got)
	}
	if got[0].DistSq != 100 {
		t.Errorf("DistSq = %f, want 100", got[0].DistSq)
	}

	grid.Clear()
	if got := grid.QueryRadiusInto(nil, 100, 100, 50, a, posMapper); len(got) != 0 {
		t.Errorf("cleared grid should return nothing, got %v", got)
	}
}
