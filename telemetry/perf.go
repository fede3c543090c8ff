package telemetry

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// PerfTracker accumulates per-tick wall-clock durations for one stats window.
type PerfTracker struct {
	durationsMs []float64
}

// NewPerfTracker creates an empty tracker.
func NewPerfTracker() *PerfTracker {
	return &PerfTracker{}
}

// RecordTick records one tick's wall-clock duration.
func (p *PerfTracker) RecordTick(d time.Duration) {
	p.durationsMs = append(p.durationsMs, float64(d.Microseconds())/1000.0)
}

// PerfStats is one window's performance summary.
type PerfStats struct {
	WindowEndTick int64   `csv:"window_end"`
	Ticks         int     `csv:"ticks"`
	TickMeanMs    float64 `csv:"tick_mean_ms"`
	TickP95Ms     float64 `csv:"tick_p95_ms"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
}

// Flush summarizes the window and resets the tracker.
func (p *PerfTracker) Flush(windowEndTick int64) PerfStats {
	stats := PerfStats{WindowEndTick: windowEndTick, Ticks: len(p.durationsMs)}
	if len(p.durationsMs) > 0 {
		sorted := make([]float64, len(p.durationsMs))
		copy(sorted, p.durationsMs)
		sort.Float64s(sorted)

		stats.TickMeanMs = stat.Mean(sorted, nil)
		stats.TickP95Ms = stat.Quantile(0.95, stat.Empirical, sorted, nil)
		if stats.TickMeanMs > 0 {
			stats.TicksPerSec = 1000.0 / stats.TickMeanMs
		}
	}
	p.durationsMs = p.durationsMs[:0]
	return stats
}
