// Package traits defines villager personality traits. Traits tilt the
// decision tiers: they never add behaviors, only shift when the built-in
// rules fire.
package traits

import "strings"

// Trait is a personality trait set.
type Trait uint32

const (
	// Courage
	Brave Trait = 1 << iota // shrugs off minor dangers
	Timid                   // rattled by any threat

	// Sociability
	Gregarious // seeks company early
	Loner      // tolerates solitude longer than most

	// Work ethic
	Industrious // prefers gathering and building over idling
)

// Has checks if a trait set contains a trait.
func (t Trait) Has(other Trait) bool {
	return t&other != 0
}

// Add adds a trait to the set.
func (t Trait) Add(other Trait) Trait {
	return t | other
}

// Remove removes a trait from the set.
func (t Trait) Remove(other Trait) Trait {
	return t &^ other
}

// String lists the set's trait names, comma separated.
func (t Trait) String() string {
	var names []string
	if t.Has(Brave) {
		names = append(names, "brave")
	}
	if t.Has(Timid) {
		names = append(names, "timid")
	}
	if t.Has(Gregarious) {
		names = append(names, "gregarious")
	}
	if t.Has(Loner) {
		names = append(names, "loner")
	}
	if t.Has(Industrious) {
		names = append(names, "industrious")
	}
	if len(names) == 0 {
		return "plain"
	}
	return strings.Join(names, ",")
}
