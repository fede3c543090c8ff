package decision

// ScriptedRule maps a condition on the agent's situation to a behavior.
type ScriptedRule struct {
	Name string
	When func(in Input) bool
	Then func(in Input) Result
}

// RuleTable is the scripted fallback tier: a fixed, ordered rule list that
// always terminates synchronously and always yields a valid decision. The
// final fallthrough behavior guarantees totality.
type RuleTable struct {
	rules    []ScriptedRule
	fallback func(in Input) Result
}

// NewRuleTable creates a table with the given fallthrough decision.
func NewRuleTable(fallback func(in Input) Result) *RuleTable {
	if fallback == nil {
		panic("decision: rule table requires a fallback")
	}
	return &RuleTable{fallback: fallback}
}

// Add appends a rule. Rules are evaluated in insertion order; the first match
// wins.
func (t *RuleTable) Add(rule ScriptedRule) {
	t.rules = append(t.rules, rule)
}

// Decide returns the first matching rule's decision, or the fallback.
func (t *RuleTable) Decide(in Input) Result {
	for _, rule := range t.rules {
		if rule.When(in) {
			res := rule.Then(in)
			res.Tier = TierScripted
			return res
		}
	}
	res := t.fallback(in)
	res.Tier = TierScripted
	return res
}
