// Package decision implements the three-tier decision cascade: reflexive
// survival overrides, deliberative planning through an external oracle, and a
// deterministic scripted fallback. Exactly one Result is produced per agent
// per tick.
package decision

import (
	"github.com/mlange-42/ark/ecs"
	"github.com/sirupsen/logrus"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/config"
	"github.com/lizTheDeveloper/ai-village-sub004/events"
	"github.com/lizTheDeveloper/ai-village-sub004/perception"
	"github.com/lizTheDeveloper/ai-village-sub004/traits"
)

// Tier identifies which cascade stage claimed the tick.
type Tier uint8

const (
	TierReflex Tier = iota
	TierDeliberative
	TierScripted
)

// String returns the display name for a Tier.
func (t Tier) String() string {
	switch t {
	case TierReflex:
		return "reflex"
	case TierDeliberative:
		return "deliberative"
	case TierScripted:
		return "scripted"
	default:
		return "unknown"
	}
}

// Params carries behavior parameters chosen by a decision tier.
type Params map[string]any

// Result is the single decision produced for an agent in a tick. It is never
// partially populated: BehaviorID is always a registered behavior.
type Result struct {
	Tier       Tier
	BehaviorID string
	Params     Params
}

// Input bundles everything a tier may read when deciding for one agent.
// Needs and Inventory are copies; tiers never mutate agent state.
type Input struct {
	Agent     ecs.Entity
	AgentID   uint32
	Kind      components.Kind
	Traits    traits.Trait
	Snapshot  *perception.Snapshot
	Needs     components.Needs
	Inventory components.Inventory
	Memory    []string
	Tick      int64
}

// Vocabulary reports whether a behavior ID is registered. The cascade uses it
// to reject oracle responses that drifted from the behavior catalog.
type Vocabulary interface {
	Known(behaviorID string) bool
}

// Cascade evaluates the deliberative and scripted tiers. The reflex tier is
// exposed separately through EvaluateReflex so the orchestrator can apply its
// unconditional-interrupt semantics before consulting the rest of the cascade.
// Cascade itself is stateless across agents; per-agent oracle bookkeeping
// lives in OracleState.
type Cascade struct {
	reflex   *ReflexSet
	oracle   Oracle
	scripted *RuleTable
	vocab    Vocabulary
	bus      *events.Bus
	cfg      *config.Config
	log      *logrus.Logger
}

// NewCascade wires the three tiers together. oracle may be nil, in which case
// every non-reflex decision falls through to the scripted tier.
func NewCascade(reflex *ReflexSet, oracle Oracle, scripted *RuleTable, vocab Vocabulary, bus *events.Bus, cfg *config.Config, log *logrus.Logger) *Cascade {
	return &Cascade{
		reflex:   reflex,
		oracle:   oracle,
		scripted: scripted,
		vocab:    vocab,
		bus:      bus,
		cfg:      cfg,
		log:      log,
	}
}

// EvaluateReflex runs the reflex tier alone. Deterministic, pure, and bounded:
// it never suspends and never calls out of process.
func (c *Cascade) EvaluateReflex(in Input) (Result, bool) {
	return c.reflex.Evaluate(in)
}

// Decide produces the non-reflex decision for this tick. It advances the
// agent's oracle state machine: issuing a request when none is pending,
// polling for a response when one is, expiring requests past their deadline,
// and discarding stale replies. Whatever the oracle's fate, Decide always
// returns a valid Result within the tick - the scripted tier is total.
func (c *Cascade) Decide(in Input, st *OracleState) Result {
	// Only agents consult the oracle; animals stay on the scripted tier.
	if c.oracle == nil || in.Kind != components.KindAgent {
		return c.scripted.Decide(in)
	}

	// Collect any replies that arrived since the agent was last scheduled.
	resolved, ok := c.drainReplies(in, st)
	if ok {
		if c.vocab == nil || c.vocab.Known(resolved.BehaviorID) {
			return Result{Tier: TierDeliberative, BehaviorID: resolved.BehaviorID, Params: resolved.Params}
		}
		c.log.WithFields(logrus.Fields{
			"agent":    in.AgentID,
			"behavior": resolved.BehaviorID,
		}).Warn("oracle returned unknown behavior, falling back to scripted tier")
		return c.scripted.Decide(in)
	}

	if st.phase == oraclePending {
		if in.Tick > st.deadline {
			// Deadline passed with no reply: abandon the request. The reply,
			// if it ever arrives, is discarded by ID mismatch.
			c.log.WithFields(logrus.Fields{
				"agent":   in.AgentID,
				"request": st.requestID.String(),
			}).Debug("deliberative request timed out")
			c.bus.Defer(events.Event{
				Type:   events.TypeStaleDiscard,
				Source: events.Source{Entity: in.Agent, System: "decision"},
				Tick:   in.Tick,
				Data:   events.StaleDiscardData{Agent: in.Agent, RequestID: st.requestID.String(), Reason: "timeout"},
			})
			st.abandon()
			return c.scripted.Decide(in)
		}
		// Still waiting: hold the agent on scripted behavior for this tick.
		// The response is applied at the next tick boundary after it arrives.
		return c.scripted.Decide(in)
	}

	// No request in flight: issue one and bridge this tick with the scripted
	// tier. The oracle call runs off the scheduler goroutine; the scheduler
	// never blocks on it.
	c.issueRequest(in, st)
	return c.scripted.Decide(in)
}

// Preempt abandons any pending oracle request because a reflex decision took
// over. The eventual reply is discarded as stale.
func (c *Cascade) Preempt(in Input, st *OracleState) {
	if st == nil || st.phase != oraclePending {
		return
	}
	c.log.WithFields(logrus.Fields{
		"agent":   in.AgentID,
		"request": st.requestID.String(),
	}).Debug("deliberative request preempted by reflex")
	c.bus.Defer(events.Event{
		Type:   events.TypeStaleDiscard,
		Source: events.Source{Entity: in.Agent, System: "decision"},
		Tick:   in.Tick,
		Data:   events.StaleDiscardData{Agent: in.Agent, RequestID: st.requestID.String(), Reason: "preempted"},
	})
	st.abandon()
}
