package brain

import (
	"github.com/lizTheDeveloper/ai-village-sub004/behavior"
	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/config"
	"github.com/lizTheDeveloper/ai-village-sub004/decision"
	"github.com/lizTheDeveloper/ai-village-sub004/traits"
)

// Scripted-tier thresholds. These sit below the reflex criticals so the
// scripted tier handles a need before it becomes an emergency.
const (
	scriptedHungerSeekFood = 60
	scriptedFatigueRest    = 70
)

// DefaultReflexes builds the survival override rules. Priorities: danger
// outranks starvation outranks collapse; ties go to registration order.
func DefaultReflexes(cfg *config.Config) *decision.ReflexSet {
	set := decision.NewReflexSet()

	set.Register(decision.ReflexRule{
		Name:     "flee-visible-threat",
		Priority: 100,
		Eval: func(in decision.Input) (decision.Result, bool) {
			if in.Snapshot == nil {
				return decision.Result{}, false
			}
			threat, ok := in.Snapshot.NearestThreat()
			if !ok {
				return decision.Result{}, false
			}
			// Courage sets the danger level worth running from: the timid
			// bolt at anything, the brave shrug off minor dangers.
			fleeAt := float32(0.3)
			if in.Traits.Has(traits.Brave) {
				fleeAt = 0.5
			}
			if in.Traits.Has(traits.Timid) {
				fleeAt = 0.0
			}
			if threat.Danger <= fleeAt {
				return decision.Result{}, false
			}
			return decision.Result{
				BehaviorID: behavior.IDFlee,
				Params:     decision.Params{"threat": threat.Entity},
			}, true
		},
	})

	set.Register(decision.ReflexRule{
		Name:     "eat-critical-hunger",
		Priority: 90,
		Eval: func(in decision.Input) (decision.Result, bool) {
			if float64(in.Needs.Hunger) < cfg.Needs.HungerCritical {
				return decision.Result{}, false
			}
			if !in.Inventory.Has(components.ResourceBerry) {
				return decision.Result{}, false
			}
			return decision.Result{BehaviorID: behavior.IDEat}, true
		},
	})

	set.Register(decision.ReflexRule{
		Name:     "collapse-from-fatigue",
		Priority: 80,
		Eval: func(in decision.Input) (decision.Result, bool) {
			if float64(in.Needs.Fatigue) < cfg.Needs.FatigueCritical {
				return decision.Result{}, false
			}
			return decision.Result{BehaviorID: behavior.IDSleep}, true
		},
	})

	return set
}

// DefaultScripted builds the fallback rule table. Rules are checked in order;
// wandering is the total fallthrough.
func DefaultScripted(cfg *config.Config) *decision.RuleTable {
	table := decision.NewRuleTable(func(in decision.Input) decision.Result {
		return decision.Result{BehaviorID: behavior.IDWander}
	})

	table.Add(decision.ScriptedRule{
		Name: "hungry",
		When: func(in decision.Input) bool {
			return in.Needs.Hunger > scriptedHungerSeekFood
		},
		Then: func(in decision.Input) decision.Result {
			if in.Kind == components.KindAnimal {
				return decision.Result{BehaviorID: behavior.IDGraze}
			}
			if in.Inventory.Has(components.ResourceBerry) {
				return decision.Result{BehaviorID: behavior.IDEat}
			}
			return decision.Result{
				BehaviorID: behavior.IDGather,
				Params:     decision.Params{"resource": "berry"},
			}
		},
	})

	table.Add(decision.ScriptedRule{
		Name: "tired",
		When: func(in decision.Input) bool {
			return in.Needs.Fatigue > scriptedFatigueRest
		},
		Then: func(in decision.Input) decision.Result {
			return decision.Result{BehaviorID: behavior.IDSleep}
		},
	})

	table.Add(decision.ScriptedRule{
		Name: "lonely",
		When: func(in decision.Input) bool {
			threshold := cfg.Needs.SocialHigh
			if in.Traits.Has(traits.Gregarious) {
				threshold *= 0.7
			}
			if in.Traits.Has(traits.Loner) {
				threshold *= 1.3
			}
			return float64(in.Needs.Social) > threshold &&
				in.Snapshot != nil && len(in.Snapshot.MeetingCandidates) > 0
		},
		Then: func(in decision.Input) decision.Result {
			return decision.Result{
				BehaviorID: behavior.IDSocialize,
				Params:     decision.Params{"partner": in.Snapshot.MeetingCandidates[0]},
			}
		},
	})

	table.Add(decision.ScriptedRule{
		Name: "industrious-stockpile",
		When: func(in decision.Input) bool {
			return in.Traits.Has(traits.Industrious) && in.Inventory.Wood < 5
		},
		Then: func(in decision.Input) decision.Result {
			return decision.Result{
				BehaviorID: behavior.IDGather,
				Params:     decision.Params{"resource": "wood"},
			}
		},
	})

	return table
}
