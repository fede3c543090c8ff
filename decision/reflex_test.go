package decision

import "testing"

func fireRule(name string, priority float64) ReflexRule {
	return ReflexRule{
		Name:     name,
		Priority: priority,
		Eval: func(Input) (Result, bool) {
			return Result{BehaviorID: name}, true
		},
	}
}

func silentRule(name string, priority float64) ReflexRule {
	return ReflexRule{
		Name:     name,
		Priority: priority,
		Eval:     func(Input) (Result, bool) { return Result{}, false },
	}
}

func TestReflexEmptySet(t *testing.T) {
	set := NewReflexSet()
	if _, fired := set.Evaluate(Input{}); fired {
		t.Error("empty set should never fire")
	}
}

func TestReflexHighestPriorityWins(t *testing.T) {
	set := NewReflexSet()
	set.Register(fireRule("low", 10))
	set.Register(fireRule("high", 100))
	set.Register(fireRule("mid", 50))

	res, fired := set.Evaluate(Input{})
	if !fired {
		t.Fatal("expected a reflex to fire")
	}
	if res.BehaviorID != "high" {
		t.Errorf("highest priority should win, got %q", res.BehaviorID)
	}
	if res.Tier != TierReflex {
		t.Errorf("reflex results must carry TierReflex, got %v", res.Tier)
	}
}

func TestReflexTieGoesToFirstRegistered(t *testing.T) {
	set := NewReflexSet()
	set.Register(fireRule("first", 50))
	set.Register(fireRule("second", 50))

	res, _ := set.Evaluate(Input{})
	if res.BehaviorID != "first" {
		t.Errorf("priority ties should resolve to registration order, got %q", res.BehaviorID)
	}
}

func TestReflexSkipsSilentRules(t *testing.T) {
	set := NewReflexSet()
	set.Register(silentRule("quiet", 200))
	set.Register(fireRule("active", 10))

	res, fired := set.Evaluate(Input{})
	if !fired || res.BehaviorID != "active" {
		t.Errorf("non-firing rules should not block lower priorities, got %v fired=%v", res, fired)
	}
}
