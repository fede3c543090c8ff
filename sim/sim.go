// Package sim owns the tick loop: passive needs decay, spatial index rebuild,
// perception, agent brains in creation order, and the single per-tick event
// flush that makes this tick's effects audible next tick.
package sim

import (
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/sirupsen/logrus"

	"github.com/lizTheDeveloper/ai-village-sub004/behavior"
	"github.com/lizTheDeveloper/ai-village-sub004/brain"
	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/config"
	"github.com/lizTheDeveloper/ai-village-sub004/decision"
	"github.com/lizTheDeveloper/ai-village-sub004/events"
	"github.com/lizTheDeveloper/ai-village-sub004/perception"
	"github.com/lizTheDeveloper/ai-village-sub004/services"
	"github.com/lizTheDeveloper/ai-village-sub004/telemetry"
	"github.com/lizTheDeveloper/ai-village-sub004/terrain"
)

// safetyRaiseRate is how fast the safety need climbs, in units per simulation
// second, while a threat is nearby.
const safetyRaiseRate = 25.0

// Sim is the whole simulation: world, bus, services, perception, brains, and
// telemetry. The tick loop is single-threaded; the only concurrency in the
// core is the deliberative oracle's request goroutines.
type Sim struct {
	world *ecs.World
	bus   *events.Bus
	cfg   *config.Config
	log   *logrus.Logger
	rng   *rand.Rand

	grid     *perception.SpatialGrid
	terrain  *terrain.Map
	percepts *perception.System
	brains   *brain.System
	services *services.Services
	registry *behavior.Registry

	collector *telemetry.Collector
	perf      *telemetry.PerfTracker
	output    *telemetry.OutputManager
	statsHook func(telemetry.WindowStats)

	posFilter   *ecs.Filter1[components.Position]
	needsFilter *ecs.Filter2[components.Position, components.Needs]
	posMap      *ecs.Map1[components.Position]
	threatMap   *ecs.Map1[components.Threat]
	needsMap    *ecs.Map1[components.Needs]

	agentMapper    *ecs.Map6[components.Position, components.Heading, components.Meta, components.Needs, components.Inventory, components.Memory]
	threatMapper   *ecs.Map4[components.Position, components.Heading, components.Meta, components.Threat]
	resourceMapper *ecs.Map3[components.Position, components.Meta, components.Resource]
	structMapper   *ecs.Map3[components.Position, components.Meta, components.Structure]

	scratch []perception.Neighbor
	nextID  uint32
	tick    int64

	pace *time.Ticker
}

// New wires the simulation together. oracle may be nil to run without the
// deliberative tier; outputDir may be empty to disable CSV output.
func New(cfg *config.Config, oracle decision.Oracle, outputDir string, seed int64, log *logrus.Logger) (*Sim, error) {
	world := ecs.NewWorld()
	bus := events.NewBus()
	rng := rand.New(rand.NewSource(seed))

	registry := behavior.NewRegistry()
	behavior.RegisterDefaults(registry)

	svcs := services.New(world, bus, cfg)
	cascade := decision.NewCascade(
		brain.DefaultReflexes(cfg),
		oracle,
		brain.DefaultScripted(cfg),
		registry,
		bus,
		cfg,
		log,
	)
	brains := brain.NewSystem(world, cascade, registry, svcs, bus, cfg, rng, log)

	grid := perception.NewSpatialGrid(cfg.Derived.WorldW32, cfg.Derived.WorldH32, float32(cfg.World.GridCellSize))
	terra := terrain.NewMap(cfg.Derived.WorldW32, cfg.Derived.WorldH32, seed)
	percepts := perception.NewSystem(world, grid, terra, brains, bus, cfg)

	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	return &Sim{
		world:    world,
		bus:      bus,
		cfg:      cfg,
		log:      log,
		rng:      rng,
		grid:     grid,
		terrain:  terra,
		percepts: percepts,
		brains:   brains,
		services: svcs,
		registry: registry,

		collector: telemetry.NewCollector(bus, cfg.Telemetry.StatsWindow, cfg.Derived.DT32),
		perf:      telemetry.NewPerfTracker(),
		output:    output,

		posFilter:   ecs.NewFilter1[components.Position](world),
		needsFilter: ecs.NewFilter2[components.Position, components.Needs](world),
		posMap:      ecs.NewMap1[components.Position](world),
		threatMap:   ecs.NewMap1[components.Threat](world),
		needsMap:    ecs.NewMap1[components.Needs](world),

		agentMapper: ecs.NewMap6[
			components.Position,
			components.Heading,
			components.Meta,
			components.Needs,
			components.Inventory,
			components.Memory,
		](world),
		threatMapper: ecs.NewMap4[
			components.Position,
			components.Heading,
			components.Meta,
			components.Threat,
		](world),
		resourceMapper: ecs.NewMap3[
			components.Position,
			components.Meta,
			components.Resource,
		](world),
		structMapper: ecs.NewMap3[
			components.Position,
			components.Meta,
			components.Structure,
		](world),
	}, nil
}

// World exposes the ECS world, primarily for tests and tooling.
func (s *Sim) World() *ecs.World { return s.world }

// Bus exposes the event bus for downstream subscribers.
func (s *Sim) Bus() *events.Bus { return s.bus }

// Brains exposes the orchestrator, primarily for tests and tooling.
func (s *Sim) Brains() *brain.System { return s.brains }

// Tick returns the current tick number.
func (s *Sim) Tick() int64 { return s.tick }

// SetStatsHook installs a callback invoked with every flushed telemetry
// window. Tooling uses it to collect windows without CSV output.
func (s *Sim) SetStatsHook(hook func(telemetry.WindowStats)) {
	s.statsHook = hook
}

// SetPace throttles the tick loop to one tick per interval of wall time.
// Deliberative deadlines are measured in ticks, so a loop running as fast as
// the CPU allows would expire every oracle request in microseconds; pacing
// keeps tick time and the oracle's real latency on the same clock.
func (s *Sim) SetPace(interval time.Duration) {
	if s.pace != nil {
		s.pace.Stop()
		s.pace = nil
	}
	if interval > 0 {
		s.pace = time.NewTicker(interval)
	}
}

// Step advances the simulation by one tick.
func (s *Sim) Step() {
	if s.pace != nil {
		<-s.pace.C
	}
	start := time.Now()
	s.tick++

	s.rebuildGrid()
	s.decayNeeds()

	// This tick's ambient event log is last tick's flushed batch.
	eventLog := s.bus.LastFlushed()

	agents := make([]ecs.Entity, len(s.brains.Agents()))
	copy(agents, s.brains.Agents())
	for _, agent := range agents {
		if !s.world.Alive(agent) {
			continue
		}
		snap := s.percepts.Perceive(agent, eventLog, s.tick)
		s.brains.Step(agent, &snap, s.tick)
	}

	// Exactly one flush per tick, after every agent has stepped.
	s.bus.Flush(s.tick)

	s.perf.RecordTick(time.Since(start))
	if s.collector.ShouldFlush(s.tick) {
		s.flushTelemetry()
	}
}

// Run advances the simulation for the given number of ticks.
func (s *Sim) Run(ticks int64) {
	for i := int64(0); i < ticks; i++ {
		s.Step()
	}
}

// Close flushes one final telemetry window and closes output files.
func (s *Sim) Close() error {
	if s.pace != nil {
		s.pace.Stop()
		s.pace = nil
	}
	s.flushTelemetry()
	return s.output.Close()
}

// rebuildGrid reindexes every positioned entity.
func (s *Sim) rebuildGrid() {
	s.grid.Clear()
	query := s.posFilter.Query()
	for query.Next() {
		pos := query.Get()
		s.grid.Insert(query.Entity(), pos.X, pos.Y)
	}
}

// decayNeeds applies passive need drift: hunger, fatigue, and social rise over
// time; safety spikes while a threat is in earshot and relaxes otherwise.
func (s *Sim) decayNeeds() {
	dt := s.cfg.Derived.DT32
	hungerDecay := float32(s.cfg.Needs.HungerDecay) * dt
	fatigueDecay := float32(s.cfg.Needs.FatigueDecay) * dt
	socialDecay := float32(s.cfg.Needs.SocialDecay) * dt
	safetyRelax := float32(s.cfg.Needs.SafetyRelax) * dt
	safetyRaise := float32(safetyRaiseRate) * dt
	hearing := s.cfg.Derived.HearingRadius

	query := s.needsFilter.Query()
	for query.Next() {
		pos, needs := query.Get()

		needs.Hunger += hungerDecay
		needs.Fatigue += fatigueDecay
		needs.Social += socialDecay

		if s.threatNearby(query.Entity(), pos, hearing) {
			needs.Safety += safetyRaise
		} else {
			needs.Safety -= safetyRelax
		}
		needs.Clamp()
	}
}

func (s *Sim) threatNearby(e ecs.Entity, pos *components.Position, radius float32) bool {
	s.scratch = s.grid.QueryRadiusInto(s.scratch[:0], pos.X, pos.Y, radius, e, s.posMap)
	for _, n := range s.scratch {
		if t := s.threatMap.Get(n.E); t != nil && t.Danger > 0 {
			return true
		}
	}
	return false
}

func (s *Sim) flushTelemetry() {
	samples := make([]telemetry.NeedSample, 0, len(s.brains.Agents()))
	for _, agent := range s.brains.Agents() {
		if !s.world.Alive(agent) {
			continue
		}
		if n := s.needsMap.Get(agent); n != nil {
			samples = append(samples, telemetry.NeedSample{
				Hunger:  float64(n.Hunger),
				Fatigue: float64(n.Fatigue),
				Social:  float64(n.Social),
				Safety:  float64(n.Safety),
			})
		}
	}

	stats := s.collector.Flush(s.tick, samples)
	stats.LogStats(s.log)
	if s.statsHook != nil {
		s.statsHook(stats)
	}
	if err := s.output.WriteTelemetry(stats); err != nil {
		s.log.WithError(err).Warn("writing telemetry window")
	}
	if err := s.output.WritePerf(s.perf.Flush(s.tick)); err != nil {
		s.log.WithError(err).Warn("writing perf window")
	}
}
