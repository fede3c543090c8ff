package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/lizTheDeveloper/ai-village-sub004/events"
)

func TestComputeNeedStats(t *testing.T) {
	if mean, std := ComputeNeedStats(nil); mean != 0 || std != 0 {
		t.Errorf("empty input should yield zeros, got %f/%f", mean, std)
	}

	mean, std := ComputeNeedStats([]float64{10, 20, 30})
	if mean != 20 {
		t.Errorf("mean = %f, want 20", mean)
	}
	if math.Abs(std-10) > 1e-9 {
		t.Errorf("std = %f, want 10", std)
	}

	// A single sample has no spread; NaN must not leak into output.
	if _, std := ComputeNeedStats([]float64{42}); std != 0 {
		t.Errorf("single sample std = %f, want 0", std)
	}
}

func TestCollectorCountsByTierAndStatus(t *testing.T) {
	bus := events.NewBus()
	c := NewCollector(bus, 30, 0.1)

	decide := func(tier string) {
		bus.Publish(events.Event{Type: events.TypeDecision, Data: events.DecisionData{Tier: tier}})
	}
	ended := func(status string) {
		bus.Publish(events.Event{Type: events.TypeBehaviorEnded, Data: events.BehaviorData{Status: status}})
	}

	decide("reflex")
	decide("deliberative")
	decide("scripted")
	decide("scripted")
	bus.Publish(events.Event{Type: events.TypeStaleDiscard, Data: events.StaleDiscardData{}})
	bus.Publish(events.Event{Type: events.TypeBehaviorStarted, Data: events.BehaviorData{}})
	ended("completed")
	ended("failed")
	ended("interrupted")

	stats := c.Flush(300, []NeedSample{
		{Hunger: 10, Fatigue: 20, Social: 30, Safety: 40},
		{Hunger: 30, Fatigue: 40, Social: 50, Safety: 60},
	})

	if stats.ReflexDecisions != 1 || stats.DeliberativeDecisions != 1 || stats.ScriptedDecisions != 2 {
		t.Errorf("tier counts = %d/%d/%d", stats.ReflexDecisions, stats.DeliberativeDecisions, stats.ScriptedDecisions)
	}
	if stats.StaleDiscards != 1 {
		t.Errorf("stale discards = %d", stats.StaleDiscards)
	}
	if stats.BehaviorsStarted != 1 || stats.BehaviorsCompleted != 1 || stats.BehaviorsFailed != 1 || stats.BehaviorsInterrupted != 1 {
		t.Errorf("behavior counts = %+v", stats)
	}
	if stats.AgentCount != 2 {
		t.Errorf("agent count = %d", stats.AgentCount)
	}
	if stats.HungerMean != 20 {
		t.Errorf("hunger mean = %f, want 20", stats.HungerMean)
	}
	if stats.SimTimeSec != 30 {
		t.Errorf("sim time = %f, want 30", stats.SimTimeSec)
	}
}

func TestCollectorResetsBetweenWindows(t *testing.T) {
	bus := events.NewBus()
	c := NewCollector(bus, 30, 0.1)

	bus.Publish(events.Event{Type: events.TypeDecision, Data: events.DecisionData{Tier: "reflex"}})
	first := c.Flush(300, nil)
	if first.ReflexDecisions != 1 {
		t.Fatalf("first window reflex = %d", first.ReflexDecisions)
	}

	second := c.Flush(600, nil)
	if second.ReflexDecisions != 0 {
		t.Errorf("counters should reset on flush, got %d", second.ReflexDecisions)
	}
	if second.WindowStartTick != 300 {
		t.Errorf("window start should advance, got %d", second.WindowStartTick)
	}
}

func TestShouldFlush(t *testing.T) {
	bus := events.NewBus()
	c := NewCollector(bus, 30, 0.1) // 300 ticks per window

	if c.WindowDurationTicks() != 300 {
		t.Fatalf("window ticks = %d, want 300", c.WindowDurationTicks())
	}
	if c.ShouldFlush(299) {
		t.Error("window should not flush early")
	}
	if !c.ShouldFlush(300) {
		t.Error("window should flush at its boundary")
	}

	c.Flush(300, nil)
	if c.ShouldFlush(599) {
		t.Error("next window should restart the countdown")
	}
}

func TestCollectorWindowNeverBelowOneTick(t *testing.T) {
	bus := events.NewBus()
	c := NewCollector(bus, 0.001, 0.1)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("window ticks = %d, want 1", c.WindowDurationTicks())
	}
}

func TestPerfTrackerQuantiles(t *testing.T) {
	p := NewPerfTracker()
	for i := 1; i <= 100; i++ {
		p.RecordTick(time.Duration(i) * time.Millisecond)
	}

	stats := p.Flush(500)
	if stats.Ticks != 100 {
		t.Fatalf("ticks = %d, want 100", stats.Ticks)
	}
	if math.Abs(stats.TickMeanMs-50.5) > 0.01 {
		t.Errorf("mean = %f, want 50.5", stats.TickMeanMs)
	}
	if stats.TickP95Ms < 94 || stats.TickP95Ms > 96 {
		t.Errorf("p95 = %f, want about 95", stats.TickP95Ms)
	}
	if stats.TicksPerSec <= 0 {
		t.Errorf("ticks per second = %f", stats.TicksPerSec)
	}

	// Flush resets the window.
	if again := p.Flush(600); again.Ticks != 0 {
		t.Errorf("flushed tracker should be empty, got %d ticks", again.Ticks)
	}
}
