package sim

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"github.com/sirupsen/logrus"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
	"github.com/lizTheDeveloper/ai-village-sub004/traits"
)

// SpawnAgent creates a villager at the given position and registers its brain.
// Personality is rolled at spawn and shapes the default decision rules.
func (s *Sim) SpawnAgent(name string, x, y float32) ecs.Entity {
	s.nextID++
	x, y = s.terrain.FindOpen(x, y)
	pos := &components.Position{X: x, Y: y}
	head := &components.Heading{Angle: s.rng.Float32() * 2 * 3.14159265}
	meta := &components.Meta{ID: s.nextID, Kind: components.KindAgent, Name: name, Traits: s.rollTraits()}
	needs := &components.Needs{
		Hunger:  s.rng.Float32() * 30,
		Fatigue: s.rng.Float32() * 30,
		Social:  s.rng.Float32() * 30,
	}
	inv := &components.Inventory{}
	mem := &components.Memory{}

	e := s.agentMapper.NewEntity(pos, head, meta, needs, inv, mem)
	s.brains.Register(e)
	return e
}

// SpawnAnimal creates a grazing animal and registers its brain.
func (s *Sim) SpawnAnimal(name string, x, y float32) ecs.Entity {
	s.nextID++
	x, y = s.terrain.FindOpen(x, y)
	pos := &components.Position{X: x, Y: y}
	head := &components.Heading{Angle: s.rng.Float32() * 2 * 3.14159265}
	meta := &components.Meta{ID: s.nextID, Kind: components.KindAnimal, Name: name}
	needs := &components.Needs{Hunger: s.rng.Float32() * 40}
	inv := &components.Inventory{}
	mem := &components.Memory{}

	e := s.agentMapper.NewEntity(pos, head, meta, needs, inv, mem)
	s.brains.Register(e)
	return e
}

// SpawnThreat creates a dangerous animal. Threats have no brain in this core;
// their mere presence drives safety needs and flee reflexes.
func (s *Sim) SpawnThreat(name string, x, y, danger float32) ecs.Entity {
	s.nextID++
	x, y = s.terrain.FindOpen(x, y)
	pos := &components.Position{X: x, Y: y}
	head := &components.Heading{Angle: s.rng.Float32() * 2 * 3.14159265}
	meta := &components.Meta{ID: s.nextID, Kind: components.KindAnimal, Name: name}
	threat := &components.Threat{Danger: danger}
	return s.threatMapper.NewEntity(pos, head, meta, threat)
}

// SpawnResource creates a harvestable deposit.
func (s *Sim) SpawnResource(kind components.ResourceKind, x, y, amount float32) ecs.Entity {
	s.nextID++
	x, y = s.terrain.FindOpen(x, y)
	pos := &components.Position{X: x, Y: y}
	meta := &components.Meta{ID: s.nextID, Kind: components.KindResource, Name: kind.String()}
	res := &components.Resource{Kind: kind, Amount: amount}
	return s.resourceMapper.NewEntity(pos, meta, res)
}

// SpawnStructure creates a construction site with the given number of stages.
func (s *Sim) SpawnStructure(name string, x, y float32, stages uint8) ecs.Entity {
	s.nextID++
	x, y = s.terrain.FindOpen(x, y)
	pos := &components.Position{X: x, Y: y}
	meta := &components.Meta{ID: s.nextID, Kind: components.KindStructure, Name: name}
	str := &components.Structure{Stage: 0, MaxStage: stages}
	return s.structMapper.NewEntity(pos, meta, str)
}

// rollTraits draws a random personality: one courage trait, one sociability
// trait, each with a coin flip, plus a one-in-three chance of Industrious.
func (s *Sim) rollTraits() traits.Trait {
	var t traits.Trait
	switch s.rng.Intn(3) {
	case 0:
		t = t.Add(traits.Brave)
	case 1:
		t = t.Add(traits.Timid)
	}
	switch s.rng.Intn(3) {
	case 0:
		t = t.Add(traits.Gregarious)
	case 1:
		t = t.Add(traits.Loner)
	}
	if s.rng.Intn(3) == 0 {
		t = t.Add(traits.Industrious)
	}
	return t
}

// SpawnVillage populates a starting settlement: villagers around the center,
// berry and wood deposits scattered across the map, a couple of build sites,
// and a predator roaming the edge.
func (s *Sim) SpawnVillage(agents, animals, berries, trees int) {
	w := s.cfg.Derived.WorldW32
	h := s.cfg.Derived.WorldH32
	cx, cy := w/2, h/2

	for i := 0; i < agents; i++ {
		x := cx + (s.rng.Float32()*2-1)*w/8
		y := cy + (s.rng.Float32()*2-1)*h/8
		s.SpawnAgent(fmt.Sprintf("villager-%d", i+1), x, y)
	}
	for i := 0; i < animals; i++ {
		s.SpawnAnimal(fmt.Sprintf("goat-%d", i+1), s.rng.Float32()*w, s.rng.Float32()*h)
	}
	for i := 0; i < berries; i++ {
		s.SpawnResource(components.ResourceBerry, s.rng.Float32()*w, s.rng.Float32()*h, 20+s.rng.Float32()*30)
	}
	for i := 0; i < trees; i++ {
		s.SpawnResource(components.ResourceWood, s.rng.Float32()*w, s.rng.Float32()*h, 30+s.rng.Float32()*50)
	}

	s.SpawnStructure("granary", cx+w/10, cy, 6)
	s.SpawnStructure("well", cx-w/10, cy-h/10, 4)
	s.SpawnThreat("wolf", w*0.05, h*0.05, 0.8)

	s.log.WithFields(logrus.Fields{
		"agents":  agents,
		"animals": animals,
		"berries": berries,
		"trees":   trees,
	}).Info("village spawned")
}
