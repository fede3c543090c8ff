package components

import (
	"fmt"
	"testing"
)

func TestNeedsClamp(t *testing.T) {
	n := Needs{Hunger: -5, Fatigue: 150, Social: 50, Safety: NeedMax}
	n.Clamp()

	if n.Hunger != 0 {
		t.Errorf("negative hunger should clamp to 0, got %f", n.Hunger)
	}
	if n.Fatigue != NeedMax {
		t.Errorf("overflowing fatigue should clamp to %f, got %f", NeedMax, n.Fatigue)
	}
	if n.Social != 50 {
		t.Errorf("in-range social should be untouched, got %f", n.Social)
	}
	if n.Safety != NeedMax {
		t.Errorf("safety at max should stay at max, got %f", n.Safety)
	}
}

func TestInventoryAddTakeCount(t *testing.T) {
	var inv Inventory

	if inv.Has(ResourceBerry) {
		t.Error("empty inventory should have nothing")
	}

	inv.Add(ResourceBerry, 3)
	inv.Add(ResourceWood, 2)
	if inv.Count(ResourceBerry) != 3 || inv.Count(ResourceWood) != 2 {
		t.Errorf("counts after add: berry=%d wood=%d", inv.Count(ResourceBerry), inv.Count(ResourceWood))
	}

	if got := inv.Take(ResourceBerry, 2); got != 2 {
		t.Errorf("take within stock should return requested amount, got %d", got)
	}
	// Taking more than available drains the slot and reports the real amount.
	if got := inv.Take(ResourceBerry, 5); got != 1 {
		t.Errorf("take beyond stock should return remaining amount, got %d", got)
	}
	if inv.Has(ResourceBerry) {
		t.Error("berry slot should be empty")
	}

	if got := inv.Take(ResourceNone, 1); got != 0 {
		t.Errorf("taking an unknown kind should yield 0, got %d", got)
	}
}

func TestMemoryRing(t *testing.T) {
	var m Memory

	if got := m.Excerpt(); got != nil {
		t.Errorf("empty memory excerpt should be nil, got %v", got)
	}

	m.Remember("first")
	m.Remember("second")
	got := m.Excerpt()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("excerpt should be oldest first, got %v", got)
	}

	// Overfill: the oldest entries drop, order stays chronological.
	for i := 0; i < MemoryCapacity+2; i++ {
		m.Remember(fmt.Sprintf("line-%d", i))
	}
	got = m.Excerpt()
	if len(got) != MemoryCapacity {
		t.Fatalf("excerpt length should cap at %d, got %d", MemoryCapacity, len(got))
	}
	if got[0] != "line-2" || got[MemoryCapacity-1] != fmt.Sprintf("line-%d", MemoryCapacity+1) {
		t.Errorf("ring should keep the newest entries in order, got %v", got)
	}
}

func TestStructureComplete(t *testing.T) {
	s := Structure{Stage: 0, MaxStage: 3}
	if s.Complete() {
		t.Error("fresh structure should be incomplete")
	}
	s.Stage = 3
	if !s.Complete() {
		t.Error("structure at max stage should be complete")
	}
}

func TestResourceKindRoundtrip(t *testing.T) {
	for _, kind := range []ResourceKind{ResourceWood, ResourceBerry, ResourceStone, ResourceWater} {
		if got := ResourceKindFromString(kind.String()); got != kind {
			t.Errorf("round trip failed for %s: got %v", kind, got)
		}
	}
	if got := ResourceKindFromString("gold"); got != ResourceNone {
		t.Errorf("unknown name should map to ResourceNone, got %v", got)
	}
}
