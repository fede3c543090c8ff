// Package brain orchestrates one agent's perceive-decide-act loop each tick:
// it runs the reflex tier, advances or interrupts the active behavior, and
// applies the cascade's decision through the behavior registry.
package brain

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"github.com/sirupsen/logrus"

	"github.com/lizTheDeveloper/ai-village-sub004/behavior"
	"github.com/lizTheDeveloper/ai-village-sub004/config"
	"github.com/lizTheDeveloper/ai-village-sub004/decision"
	"github.com/lizTheDeveloper/ai-village-sub004/events"
	"github.com/lizTheDeveloper/ai-village-sub004/perception"
	"github.com/lizTheDeveloper/ai-village-sub004/services"
)

// agentState is the orchestrator's bookkeeping for one agent.
type agentState struct {
	agent  ecs.Entity
	oracle *decision.OracleState
	active behavior.Instance
	tier   decision.Tier
	// interim marks a scripted bridge behavior that holds the agent while a
	// deliberative request is in flight. A resolved plan replaces it.
	interim bool
}

type failureKey struct {
	agentID    uint32
	behaviorID string
}

// failureWindow tracks one agent-behavior pair's failure logging window:
// the tick of the last full log line and how many repeats it absorbed since.
type failureWindow struct {
	loggedTick int64
	suppressed int64
}

// System owns the per-agent brains. It is single-threaded: the scheduler calls
// Step for each registered agent in creation order within a tick.
type System struct {
	world    *ecs.World
	cascade  *decision.Cascade
	registry *behavior.Registry
	services *services.Services
	bus      *events.Bus
	cfg      *config.Config
	log      *logrus.Logger

	access *behavior.Access
	lookup *behavior.Lookup
	rng    *rand.Rand

	agents map[ecs.Entity]*agentState
	order  []ecs.Entity

	// Fixed-window rate limiting for behavior failure logs.
	failLogs map[failureKey]*failureWindow
}

// NewSystem creates the orchestrator. It subscribes to despawn events so dead
// agents are torn down before their next scheduled step.
func NewSystem(w *ecs.World, cascade *decision.Cascade, reg *behavior.Registry, svcs *services.Services, bus *events.Bus, cfg *config.Config, rng *rand.Rand, log *logrus.Logger) *System {
	s := &System{
		world:    w,
		cascade:  cascade,
		registry: reg,
		services: svcs,
		bus:      bus,
		cfg:      cfg,
		log:      log,
		access:   behavior.NewAccess(w),
		lookup:   behavior.NewLookup(w),
		rng:      rng,
		agents:   make(map[ecs.Entity]*agentState),
		failLogs: make(map[failureKey]*failureWindow),
	}
	bus.Subscribe(events.TypeAgentDespawned, func(ev events.Event) {
		if data, ok := ev.Data.(events.DespawnData); ok {
			s.remove(data.Agent)
		}
	})
	return s
}

// Register adds an agent to the scheduling order. Agents step in the order
// they were registered.
func (s *System) Register(agent ecs.Entity) {
	if _, exists := s.agents[agent]; exists {
		return
	}
	s.agents[agent] = &agentState{agent: agent, oracle: decision.NewOracleState()}
	s.order = append(s.order, agent)
}

// Agents returns the registered agents in scheduling order.
func (s *System) Agents() []ecs.Entity {
	return s.order
}

// SociallyAvailable reports whether an agent can be engaged in conversation.
// Implements perception.SocialDirectory.
func (s *System) SociallyAvailable(e ecs.Entity) bool {
	st, ok := s.agents[e]
	if !ok {
		return false
	}
	if st.active == nil {
		return true
	}
	return st.active.SociallyInterruptible()
}

// Step runs one agent's full tick: reflex check, cascade, behavior execution.
// snap is this tick's perception snapshot for the agent.
func (s *System) Step(agent ecs.Entity, snap *perception.Snapshot, tick int64) {
	st, ok := s.agents[agent]
	if !ok {
		return
	}
	if !s.world.Alive(agent) {
		s.teardown(st, tick)
		s.remove(agent)
		return
	}

	in := s.buildInput(agent, snap, tick)

	if res, fired := s.cascade.EvaluateReflex(in); fired {
		// A pending deliberative request dies with the situation that
		// prompted it.
		s.cascade.Preempt(in, st.oracle)
		s.apply(st, in, res, tick)
		s.advance(st, tick)
		return
	}

	// Continuation: an active non-interim behavior keeps running without
	// consulting the lower tiers, unless a deliberative reply may be waiting.
	if st.active != nil && !st.interim && !st.oracle.Pending() {
		s.advance(st, tick)
		return
	}

	res := s.cascade.Decide(in, st.oracle)
	s.apply(st, in, res, tick)
	s.advance(st, tick)
}

// buildInput snapshots the agent's decision-relevant state. Tiers get copies;
// only behaviors mutate components. A registered agent missing one of the
// agent components is a programming error and panics.
func (s *System) buildInput(agent ecs.Entity, snap *perception.Snapshot, tick int64) decision.Input {
	in := decision.Input{Agent: agent, Snapshot: snap, Tick: tick}
	meta := s.access.Meta.Get(agent)
	if meta == nil {
		panic(fmt.Sprintf("brain: agent %v has no Meta component", agent))
	}
	in.AgentID = meta.ID
	in.Kind = meta.Kind
	in.Traits = meta.Traits

	needs := s.access.Needs.Get(agent)
	if needs == nil {
		panic(fmt.Sprintf("brain: agent %v has no Needs component", agent))
	}
	in.Needs = *needs

	inv := s.access.Inv.Get(agent)
	if inv == nil {
		panic(fmt.Sprintf("brain: agent %v has no Inventory component", agent))
	}
	in.Inventory = *inv

	mem := s.access.Mem.Get(agent)
	if mem == nil {
		panic(fmt.Sprintf("brain: agent %v has no Memory component", agent))
	}
	in.Memory = mem.Excerpt()
	return in
}

// apply reconciles the tick's decision with the active behavior. A decision
// naming the currently-running behavior continues it; anything else is an
// explicit behavior change and interrupts.
func (s *System) apply(st *agentState, in decision.Input, res decision.Result, tick int64) {
	if st.active != nil && st.active.ID() == res.BehaviorID {
		// Same behavior: keep the running instance and its state. A resolved
		// deliberative decision still claims the tier for bookkeeping.
		st.tier = res.Tier
		if res.Tier == decision.TierDeliberative {
			st.interim = false
		} else {
			st.interim = st.interim && st.oracle.Pending()
		}
		s.emitDecision(st.agent, res, tick)
		return
	}

	if st.active != nil {
		st.active.Interrupt()
		s.emitBehavior(st.agent, st.active.ID(), "interrupted", tick)
		st.active = nil
	}

	inst, err := s.registry.Instantiate(res.BehaviorID, st.agent, behavior.Params(res.Params))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"agent":    in.AgentID,
			"behavior": res.BehaviorID,
			"tier":     res.Tier.String(),
		}).WithError(err).Warn("could not start behavior, agent idles this tick")
		return
	}

	st.active = inst
	st.tier = res.Tier
	st.interim = res.Tier == decision.TierScripted && st.oracle.Pending()
	s.emitDecision(st.agent, res, tick)
	s.emitBehavior(st.agent, res.BehaviorID, "started", tick)
}

// advance steps the active behavior once, with panic containment: a panicking
// behavior is logged, counted as failed, and discarded, never taking the
// scheduler down.
func (s *System) advance(st *agentState, tick int64) {
	if st.active == nil {
		return
	}

	status := s.stepGuarded(st, tick)
	switch status {
	case behavior.StatusContinuing:
	case behavior.StatusCompleted:
		s.emitBehavior(st.agent, st.active.ID(), "completed", tick)
		st.active = nil
		st.interim = false
	case behavior.StatusFailed:
		s.emitBehavior(st.agent, st.active.ID(), "failed", tick)
		st.active = nil
		st.interim = false
	}
}

func (s *System) stepGuarded(st *agentState, tick int64) (status behavior.StepStatus) {
	defer func() {
		if r := recover(); r != nil {
			s.logFailure(st, tick, r)
			status = behavior.StatusFailed
		}
	}()
	ctx := &behavior.Context{
		World:    s.world,
		Access:   s.access,
		Services: s.services,
		Bus:      s.bus,
		Cfg:      s.cfg,
		Lookup:   s.lookup,
		Rng:      s.rng,
		Tick:     tick,
		DT:       s.cfg.Derived.DT32,
	}
	return st.active.Step(ctx)
}

// logFailure reports a behavior panic, at most one full log line per
// agent-behavior pair per logging window. Repeats inside the window are
// counted, not dropped: when the window rolls, the next failure carries the
// count of repeats it absorbed so a noisy behavior is never invisible.
func (s *System) logFailure(st *agentState, tick int64, cause any) {
	var agentID uint32
	if meta := s.access.Meta.Get(st.agent); meta != nil {
		agentID = meta.ID
	}
	key := failureKey{agentID: agentID, behaviorID: st.active.ID()}
	window := int64(s.cfg.Logging.FailureWindowTicks)

	fw, ok := s.failLogs[key]
	if ok && window > 0 && tick-fw.loggedTick < window {
		fw.suppressed++
		return
	}

	fields := logrus.Fields{
		"agent":    agentID,
		"behavior": key.behaviorID,
		"tick":     tick,
		"panic":    cause,
	}
	if ok && fw.suppressed > 0 {
		fields["suppressed_repeats"] = fw.suppressed
	}
	s.failLogs[key] = &failureWindow{loggedTick: tick}
	s.log.WithFields(fields).Error("behavior step panicked, treating as failed")
}

// teardown interrupts whatever a departing agent was doing and abandons its
// oracle request so a late reply is discarded.
func (s *System) teardown(st *agentState, tick int64) {
	if st.active != nil {
		st.active.Interrupt()
		s.emitBehavior(st.agent, st.active.ID(), "interrupted", tick)
		st.active = nil
	}
	in := decision.Input{Agent: st.agent, Tick: tick}
	if meta := s.access.Meta.Get(st.agent); meta != nil {
		in.AgentID = meta.ID
	}
	s.cascade.Preempt(in, st.oracle)
}

func (s *System) remove(agent ecs.Entity) {
	if _, ok := s.agents[agent]; !ok {
		return
	}
	delete(s.agents, agent)
	for i, e := range s.order {
		if e == agent {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *System) emitDecision(agent ecs.Entity, res decision.Result, tick int64) {
	s.bus.Defer(events.Event{
		Type:   events.TypeDecision,
		Source: events.Source{Entity: agent, System: "brain"},
		Tick:   tick,
		Data:   events.DecisionData{Agent: agent, Tier: res.Tier.String(), BehaviorID: res.BehaviorID},
	})
}

func (s *System) emitBehavior(agent ecs.Entity, id, status string, tick int64) {
	evType := events.TypeBehaviorEnded
	if status == "started" {
		evType = events.TypeBehaviorStarted
	}
	s.bus.Defer(events.Event{
		Type:   evType,
		Source: events.Source{Entity: agent, System: "brain"},
		Tick:   tick,
		Data:   events.BehaviorData{Agent: agent, BehaviorID: id, Status: status},
	})
}

var _ perception.SocialDirectory = (*System)(nil)
