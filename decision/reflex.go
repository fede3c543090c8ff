package decision

// ReflexRule is one survival override. Eval must be deterministic and pure:
// no external calls, no suspension, no mutation of the input.
type ReflexRule struct {
	Name     string
	Priority float64
	Eval     func(in Input) (Result, bool)
}

// ReflexSet holds reflex rules in registration order. When several rules fire
// in the same tick, the highest priority wins; equal priorities resolve to the
// first-registered rule, keeping evaluation deterministic for testing.
type ReflexSet struct {
	rules []ReflexRule
}

// NewReflexSet creates an empty reflex set.
func NewReflexSet() *ReflexSet {
	return &ReflexSet{}
}

// Register appends a rule. Registration order is the declaration order used
// for tie-breaking.
func (s *ReflexSet) Register(rule ReflexRule) {
	s.rules = append(s.rules, rule)
}

// Evaluate runs every rule and returns the winning reflex decision, if any.
func (s *ReflexSet) Evaluate(in Input) (Result, bool) {
	var best Result
	bestPriority := 0.0
	fired := false

	for _, rule := range s.rules {
		res, ok := rule.Eval(in)
		if !ok {
			continue
		}
		// Strict > keeps the first-registered rule on priority ties.
		if !fired || rule.Priority > bestPriority {
			best = res
			bestPriority = rule.Priority
			fired = true
		}
	}

	if !fired {
		return Result{}, false
	}
	best.Tier = TierReflex
	return best, true
}
