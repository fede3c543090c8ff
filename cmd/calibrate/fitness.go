package main

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lizTheDeveloper/ai-village-sub004/config"
	"github.com/lizTheDeveloper/ai-village-sub004/sim"
	"github.com/lizTheDeveloper/ai-village-sub004/telemetry"
)

// Village sizing for every evaluation run.
const (
	evalAgents  = 8
	evalAnimals = 4
	evalBerries = 12
	evalTrees   = 8
)

// FitnessEvaluator scores parameter vectors by running headless simulations
// across several seeds. Lower fitness is better.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int64
	seeds      []int64
	baseConfig *config.Config
	log        *logrus.Logger
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config, log *logrus.Logger) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		log:        log,
	}
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, r := range results {
		total += r
	}
	return total / float64(len(fe.seeds))
}

// runSimulation executes one headless run and scores its telemetry windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	s, err := sim.New(cfg, nil, "", seed, fe.log)
	if err != nil {
		return math.Inf(1)
	}
	s.SetStatsHook(func(stats telemetry.WindowStats) {
		windows = append(windows, stats)
	})
	s.SpawnVillage(evalAgents, evalAnimals, evalBerries, evalTrees)

	s.Run(fe.maxTicks)
	s.Close()
	return computeQuality(windows)
}

// computeQuality scores a run from its telemetry windows. A healthy village
// keeps mean needs low and rarely fails behaviors; both raise the score.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) == 0 {
		return math.Inf(1)
	}

	var needSum, failRatio float64
	for _, w := range windows {
		needSum += (w.HungerMean + w.FatigueMean + w.SocialMean + w.SafetyMean) / 4
		acted := w.BehaviorsCompleted + w.BehaviorsFailed
		if acted > 0 {
			failRatio += float64(w.BehaviorsFailed) / float64(acted)
		}
	}
	n := float64(len(windows))
	meanNeed := needSum / n
	meanFail := failRatio / n

	// Needs dominate; failures add a stiff penalty on top.
	return meanNeed + 100*meanFail
}

// copyConfig clones the base config so evaluations never share state.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
