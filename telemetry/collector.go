package telemetry

import (
	"github.com/lizTheDeveloper/ai-village-sub004/events"
)

// NeedSample is one agent's needs at window end, used for distribution stats.
type NeedSample struct {
	Hunger  float64
	Fatigue float64
	Social  float64
	Safety  float64
}

// Collector accumulates decision and behavior events within time windows and
// produces WindowStats. It feeds entirely off the event bus; the decision core
// never calls it directly.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float32

	windowStartTick int64

	reflex       int
	deliberative int
	scripted     int
	stale        int

	started     int
	completed   int
	failed      int
	interrupted int
}

// NewCollector creates a stats collector subscribed to the bus.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick.
func NewCollector(bus *events.Bus, windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int64(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	c := &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}

	bus.Subscribe(events.TypeDecision, func(ev events.Event) {
		data, ok := ev.Data.(events.DecisionData)
		if !ok {
			return
		}
		switch data.Tier {
		case "reflex":
			c.reflex++
		case "deliberative":
			c.deliberative++
		case "scripted":
			c.scripted++
		}
	})
	bus.Subscribe(events.TypeStaleDiscard, func(ev events.Event) {
		c.stale++
	})
	bus.Subscribe(events.TypeBehaviorStarted, func(ev events.Event) {
		c.started++
	})
	bus.Subscribe(events.TypeBehaviorEnded, func(ev events.Event) {
		data, ok := ev.Data.(events.BehaviorData)
		if !ok {
			return
		}
		switch data.Status {
		case "completed":
			c.completed++
		case "failed":
			c.failed++
		case "interrupted":
			c.interrupted++
		}
	})

	return c
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// samples are the living agents' needs at window end.
func (c *Collector) Flush(currentTick int64, samples []NeedSample) WindowStats {
	hungers := make([]float64, 0, len(samples))
	fatigues := make([]float64, 0, len(samples))
	socials := make([]float64, 0, len(samples))
	safeties := make([]float64, 0, len(samples))
	for _, s := range samples {
		hungers = append(hungers, s.Hunger)
		fatigues = append(fatigues, s.Fatigue)
		socials = append(socials, s.Social)
		safeties = append(safeties, s.Safety)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		AgentCount: len(samples),

		ReflexDecisions:       c.reflex,
		DeliberativeDecisions: c.deliberative,
		ScriptedDecisions:     c.scripted,
		StaleDiscards:         c.stale,

		BehaviorsStarted:     c.started,
		BehaviorsCompleted:   c.completed,
		BehaviorsFailed:      c.failed,
		BehaviorsInterrupted: c.interrupted,
	}
	stats.HungerMean, stats.HungerStd = ComputeNeedStats(hungers)
	stats.FatigueMean, stats.FatigueStd = ComputeNeedStats(fatigues)
	stats.SocialMean, stats.SocialStd = ComputeNeedStats(socials)
	stats.SafetyMean, stats.SafetyStd = ComputeNeedStats(safeties)

	c.windowStartTick = currentTick
	c.reflex = 0
	c.deliberative = 0
	c.scripted = 0
	c.stale = 0
	c.started = 0
	c.completed = 0
	c.failed = 0
	c.interrupted = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
