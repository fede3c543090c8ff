package decision

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lizTheDeveloper/ai-village-sub004/events"
)

// PlanRequest is the payload sent to the external planning oracle.
type PlanRequest struct {
	AgentID     uint32
	Personality string
	Needs       NeedsSummary
	Visible     []string // "kind@distance" summaries, nearest first
	Audible     []string // "kind@distance" sound summaries
	Meetings    int      // number of conversation candidates
	Inventory   InventorySummary
	Memory      []string
}

// NeedsSummary is the compact needs view handed to the oracle.
type NeedsSummary struct {
	Hunger  float32
	Fatigue float32
	Social  float32
	Safety  float32
}

// InventorySummary is the compact inventory view handed to the oracle.
type InventorySummary struct {
	Food  uint16
	Wood  uint16
	Stone uint16
}

// PlanResponse is what the oracle answers with: a behavior and its parameters.
type PlanResponse struct {
	BehaviorID string
	Params     Params
}

// Oracle is the external planning adapter consulted by the deliberative tier.
// Plan may take an externally-bounded amount of time; the cascade always calls
// it off the scheduler goroutine with a deadline on ctx.
type Oracle interface {
	Plan(ctx context.Context, req PlanRequest) (PlanResponse, error)
}

// oracleReply is what the request goroutine posts back to the agent's mailbox.
type oracleReply struct {
	id   uuid.UUID
	resp PlanResponse
	err  error
}

type oraclePhase uint8

const (
	oracleIdle oraclePhase = iota
	oraclePending
)

// OracleState is the per-agent deliberative request state machine: an explicit
// idle/pending tag with request ID and deadline tick, rather than any
// language-level suspension. The scheduler stays a plain synchronous loop.
type OracleState struct {
	phase     oraclePhase
	requestID uuid.UUID
	deadline  int64
	replies   chan oracleReply
}

// NewOracleState creates the mailbox for one agent's deliberative requests.
func NewOracleState() *OracleState {
	return &OracleState{replies: make(chan oracleReply, 4)}
}

// Pending reports whether a deliberative request is awaiting a reply.
func (st *OracleState) Pending() bool {
	return st != nil && st.phase == oraclePending
}

func (st *OracleState) abandon() {
	st.phase = oracleIdle
}

// issueRequest launches the oracle call on its own goroutine with a deadline
// matching the configured timeout, and marks the agent pending.
func (c *Cascade) issueRequest(in Input, st *OracleState) {
	id := uuid.New()
	timeoutTicks := c.cfg.Decision.OracleTimeoutTicks
	st.phase = oraclePending
	st.requestID = id
	st.deadline = in.Tick + int64(timeoutTicks)

	req := buildPlanRequest(in)
	timeout := time.Duration(float64(timeoutTicks) * c.cfg.World.DT * float64(time.Second))
	replies := st.replies

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := c.oracle.Plan(ctx, req)
		// Buffered mailbox: drop on overflow rather than block forever.
		select {
		case replies <- oracleReply{id: id, resp: resp, err: err}:
		default:
		}
	}()
}

// drainReplies empties the agent's mailbox. The reply matching the live
// request within its deadline resolves the state machine; anything else is
// stale and is discarded with a debug log and a bus event.
func (c *Cascade) drainReplies(in Input, st *OracleState) (PlanResponse, bool) {
	var resolved PlanResponse
	found := false

	for {
		select {
		case reply := <-st.replies:
			if st.phase == oraclePending && reply.id == st.requestID && in.Tick <= st.deadline && reply.err == nil {
				resolved = reply.resp
				found = true
				st.phase = oracleIdle
				continue
			}
			if reply.err != nil {
				c.log.WithFields(logrus.Fields{
					"agent":   in.AgentID,
					"request": reply.id.String(),
				}).WithError(reply.err).Debug("deliberative request failed")
				if st.phase == oraclePending && reply.id == st.requestID {
					st.abandon()
				}
				continue
			}
			c.log.WithFields(logrus.Fields{
				"agent":   in.AgentID,
				"request": reply.id.String(),
			}).Debug("discarding stale deliberative response")
			c.bus.Defer(events.Event{
				Type:   events.TypeStaleDiscard,
				Source: events.Source{Entity: in.Agent, System: "decision"},
				Tick:   in.Tick,
				Data:   events.StaleDiscardData{Agent: in.Agent, RequestID: reply.id.String(), Reason: "stale"},
			})
			// A reply to the live request past its deadline settles that
			// request here; the timeout branch must not discard it again.
			if st.phase == oraclePending && reply.id == st.requestID {
				st.abandon()
			}
		default:
			return resolved, found
		}
	}
}

// buildPlanRequest formats the agent's situation for the oracle.
func buildPlanRequest(in Input) PlanRequest {
	req := PlanRequest{
		AgentID:     in.AgentID,
		Personality: in.Traits.String(),
		Needs: NeedsSummary{
			Hunger:  in.Needs.Hunger,
			Fatigue: in.Needs.Fatigue,
			Social:  in.Needs.Social,
			Safety:  in.Needs.Safety,
		},
		Inventory: InventorySummary{
			Food:  in.Inventory.Food,
			Wood:  in.Inventory.Wood,
			Stone: in.Inventory.Stone,
		},
		Memory: in.Memory,
	}
	if in.Snapshot != nil {
		for _, v := range in.Snapshot.Visible {
			req.Visible = append(req.Visible, summarize(v.Kind.String(), v.Distance))
		}
		for _, a := range in.Snapshot.Audible {
			req.Audible = append(req.Audible, summarize(a.Kind, a.Distance))
		}
		req.Meetings = len(in.Snapshot.MeetingCandidates)
	}
	return req
}

func summarize(kind string, distance float32) string {
	return kind + "@" + strconv.Itoa(int(distance))
}
