package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lizTheDeveloper/ai-village-sub004/behavior"
	"github.com/lizTheDeveloper/ai-village-sub004/config"
	"github.com/lizTheDeveloper/ai-village-sub004/decision"
	"github.com/lizTheDeveloper/ai-village-sub004/logging"
	"github.com/lizTheDeveloper/ai-village-sub004/planner"
	"github.com/lizTheDeveloper/ai-village-sub004/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	useOracle := flag.Bool("oracle", false, "Enable the LLM deliberative tier (needs GEMINI_API_KEY)")
	oracleModel := flag.String("oracle-model", "gemini-2.0-flash", "Gemini model for the deliberative tier")
	agents := flag.Int("agents", 8, "Number of villagers to spawn")
	animals := flag.Int("animals", 4, "Number of grazing animals to spawn")

	flag.Parse()

	log := logging.Init()

	if err := config.Init(*configPath); err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var oracle decision.Oracle
	if *useOracle {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			log.Fatal("oracle enabled but GEMINI_API_KEY is not set")
		}
		catalog := behavior.NewRegistry()
		behavior.RegisterDefaults(catalog)

		g, err := planner.NewGeminiOracle(context.Background(), apiKey, *oracleModel, catalog.IDs(), log)
		if err != nil {
			log.WithError(err).Fatal("failed to create oracle")
		}
		oracle = g
	}

	s, err := sim.New(config.Cfg(), oracle, *outputDir, rngSeed, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build simulation")
	}
	defer s.Close()

	s.SpawnVillage(*agents, *animals, 12, 8)

	// Pace ticks against wall time when the oracle is live, so tick-denominated
	// deliberative deadlines leave room for real network latency.
	if oracle != nil {
		s.SetPace(time.Duration(config.Cfg().World.DT * float64(time.Second)))
	}

	log.WithFields(logrus.Fields{
		"seed":      rngSeed,
		"max_ticks": *maxTicks,
		"oracle":    oracle != nil,
	}).Info("starting simulation")

	for {
		s.Step()
		if *maxTicks > 0 && s.Tick() >= *maxTicks {
			log.WithField("tick", s.Tick()).Info("max ticks reached")
			return
		}
	}
}
