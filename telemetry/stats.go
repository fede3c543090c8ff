package telemetry

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	AgentCount int `csv:"agents"`

	// Decisions during window, by tier
	ReflexDecisions       int `csv:"reflex_decisions"`
	DeliberativeDecisions int `csv:"deliberative_decisions"`
	ScriptedDecisions     int `csv:"scripted_decisions"`
	StaleDiscards         int `csv:"stale_discards"`

	// Behavior lifecycle during window
	BehaviorsStarted     int `csv:"behaviors_started"`
	BehaviorsCompleted   int `csv:"behaviors_completed"`
	BehaviorsFailed      int `csv:"behaviors_failed"`
	BehaviorsInterrupted int `csv:"behaviors_interrupted"`

	// Need distribution (sampled at window end)
	HungerMean  float64 `csv:"hunger_mean"`
	HungerStd   float64 `csv:"hunger_std"`
	FatigueMean float64 `csv:"fatigue_mean"`
	FatigueStd  float64 `csv:"fatigue_std"`
	SocialMean  float64 `csv:"social_mean"`
	SocialStd   float64 `csv:"social_std"`
	SafetyMean  float64 `csv:"safety_mean"`
	SafetyStd   float64 `csv:"safety_std"`
}

// ComputeNeedStats calculates mean and standard deviation of need samples.
func ComputeNeedStats(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean = stat.Mean(values, nil)
	std = stat.StdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

// LogStats logs the window stats through the structured logger.
func (s WindowStats) LogStats(log *logrus.Logger) {
	log.WithFields(logrus.Fields{
		"window_end":   s.WindowEndTick,
		"sim_time":     s.SimTimeSec,
		"agents":       s.AgentCount,
		"reflex":       s.ReflexDecisions,
		"deliberative": s.DeliberativeDecisions,
		"scripted":     s.ScriptedDecisions,
		"stale":        s.StaleDiscards,
		"started":      s.BehaviorsStarted,
		"completed":    s.BehaviorsCompleted,
		"failed":       s.BehaviorsFailed,
		"interrupted":  s.BehaviorsInterrupted,
		"hunger_mean":  s.HungerMean,
		"fatigue_mean": s.FatigueMean,
		"social_mean":  s.SocialMean,
		"safety_mean":  s.SafetyMean,
	}).Info("stats")
}
