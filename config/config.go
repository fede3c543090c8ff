// Package config provides configuration loading and access for the simulation core.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tunable parameters of the decision and behavior core.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Perception PerceptionConfig `yaml:"perception"`
	Needs      NeedsConfig      `yaml:"needs"`
	Decision   DecisionConfig   `yaml:"decision"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	Movement   MovementConfig   `yaml:"movement"`
	Logging    LoggingConfig    `yaml:"logging"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world dimensions and the tick rate.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	DT           float64 `yaml:"dt"`             // simulation seconds per tick
	GridCellSize float64 `yaml:"grid_cell_size"` // spatial grid cell size
}

// PerceptionConfig holds the sensory envelope of an agent.
type PerceptionConfig struct {
	VisionRadius       float64 `yaml:"vision_radius"`
	VisionFOV          float64 `yaml:"vision_fov"` // radians, full cone angle
	HearingRadius      float64 `yaml:"hearing_radius"`
	ConversationRadius float64 `yaml:"conversation_radius"`
}

// NeedsConfig holds critical thresholds and passive decay rates.
// Decay rates are need units per simulation second.
type NeedsConfig struct {
	HungerCritical  float64 `yaml:"hunger_critical"`
	FatigueCritical float64 `yaml:"fatigue_critical"`
	SafetyCritical  float64 `yaml:"safety_critical"`
	SocialHigh      float64 `yaml:"social_high"` // scripted tier seeks company above this

	HungerDecay  float64 `yaml:"hunger_decay"`
	FatigueDecay float64 `yaml:"fatigue_decay"`
	SocialDecay  float64 `yaml:"social_decay"`
	SafetyRelax  float64 `yaml:"safety_relax"` // safety need eases off when no threat is visible
}

// DecisionConfig holds cascade parameters.
type DecisionConfig struct {
	OracleTimeoutTicks int `yaml:"oracle_timeout_ticks"` // deliberative deadline
}

// BehaviorConfig holds behavior tuning shared by the built-in behavior bodies.
type BehaviorConfig struct {
	InteractionRange   float64 `yaml:"interaction_range"`
	EatRestoresHunger  float64 `yaml:"eat_restores_hunger"`  // hunger removed per food unit
	SleepRecoveryRate  float64 `yaml:"sleep_recovery_rate"`  // fatigue removed per second asleep
	FleeSafetyDistance float64 `yaml:"flee_safety_distance"` // stop fleeing beyond this
	WanderDuration     float64 `yaml:"wander_duration"`      // seconds per wander leg
	GatherAmount       int     `yaml:"gather_amount"`        // units harvested before completing
	SocializeDuration  float64 `yaml:"socialize_duration"`   // seconds spent conversing
}

// MovementConfig holds locomotion parameters applied by the movement service.
type MovementConfig struct {
	Speed       float64 `yaml:"speed"`        // world units per second
	ArriveRange float64 `yaml:"arrive_range"` // close enough to count as arrived
}

// LoggingConfig holds failure-log rate limiting.
type LoggingConfig struct {
	FailureWindowTicks int `yaml:"failure_window_ticks"`
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // window length in simulation seconds
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32          float32
	WorldW32      float32
	WorldH32      float32
	VisionRadius  float32
	HearingRadius float32
	TalkRadius    float32
	HalfFOV       float32
	Speed32       float32
	ArriveRange32 float32
	Interact32    float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.World.DT)
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
	c.Derived.VisionRadius = float32(c.Perception.VisionRadius)
	c.Derived.HearingRadius = float32(c.Perception.HearingRadius)
	c.Derived.TalkRadius = float32(c.Perception.ConversationRadius)
	c.Derived.HalfFOV = float32(c.Perception.VisionFOV) / 2
	c.Derived.Speed32 = float32(c.Movement.Speed)
	c.Derived.ArriveRange32 = float32(c.Movement.ArriveRange)
	c.Derived.Interact32 = float32(c.Behavior.InteractionRange)
}

// WriteYAML saves the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
