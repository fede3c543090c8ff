package decision

import "testing"

func TestRuleTableRequiresFallback(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("nil fallback should panic at construction")
		}
	}()
	NewRuleTable(nil)
}

func TestRuleTableFallbackIsTotal(t *testing.T) {
	table := NewRuleTable(func(Input) Result {
		return Result{BehaviorID: "idle"}
	})

	res := table.Decide(Input{})
	if res.BehaviorID != "idle" {
		t.Errorf("empty table should yield the fallback, got %q", res.BehaviorID)
	}
	if res.Tier != TierScripted {
		t.Errorf("scripted results must carry TierScripted, got %v", res.Tier)
	}
}

func TestRuleTableFirstMatchWins(t *testing.T) {
	table := NewRuleTable(func(Input) Result { return Result{BehaviorID: "idle"} })
	table.Add(ScriptedRule{
		Name: "never",
		When: func(Input) bool { return false },
		Then: func(Input) Result { return Result{BehaviorID: "never"} },
	})
	table.Add(ScriptedRule{
		Name: "a",
		When: func(in Input) bool { return in.Needs.Hunger > 50 },
		Then: func(Input) Result { return Result{BehaviorID: "a"} },
	})
	table.Add(ScriptedRule{
		Name: "b",
		When: func(in Input) bool { return in.Needs.Hunger > 10 },
		Then: func(Input) Result { return Result{BehaviorID: "b"} },
	})

	in := Input{}
	in.Needs.Hunger = 60
	if res := table.Decide(in); res.BehaviorID != "a" {
		t.Errorf("first matching rule should win, got %q", res.BehaviorID)
	}

	in.Needs.Hunger = 20
	if res := table.Decide(in); res.BehaviorID != "b" {
		t.Errorf("later rule should fire when earlier ones miss, got %q", res.BehaviorID)
	}

	in.Needs.Hunger = 0
	if res := table.Decide(in); res.BehaviorID != "idle" {
		t.Errorf("no match should fall through, got %q", res.BehaviorID)
	}
}
