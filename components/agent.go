package components

// NeedMax is the upper bound of every need scale. Needs are clamped to
// [0, NeedMax]; higher means more urgent for Hunger and Fatigue, and more
// deprived for Social and Safety.
const NeedMax float32 = 100

// Needs holds the bounded scalar needs of an agent. Behaviors and the passive
// decay system mutate it; the decision cascade only reads it.
type Needs struct {
	Hunger  float32
	Fatigue float32
	Social  float32
	Safety  float32
}

// Clamp bounds every need to [0, NeedMax].
func (n *Needs) Clamp() {
	n.Hunger = clampNeed(n.Hunger)
	n.Fatigue = clampNeed(n.Fatigue)
	n.Social = clampNeed(n.Social)
	n.Safety = clampNeed(n.Safety)
}

func clampNeed(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > NeedMax {
		return NeedMax
	}
	return v
}

// Inventory holds the goods an agent carries.
type Inventory struct {
	Food  uint16
	Wood  uint16
	Stone uint16
}

// Has reports whether the inventory contains any of the given resource kind.
func (inv *Inventory) Has(kind ResourceKind) bool {
	return inv.Count(kind) > 0
}

// Count returns the carried amount of the given resource kind.
func (inv *Inventory) Count(kind ResourceKind) uint16 {
	switch kind {
	case ResourceBerry:
		return inv.Food
	case ResourceWood:
		return inv.Wood
	case ResourceStone:
		return inv.Stone
	default:
		return 0
	}
}

// Add deposits harvested goods into the matching slot.
func (inv *Inventory) Add(kind ResourceKind, n uint16) {
	switch kind {
	case ResourceBerry:
		inv.Food += n
	case ResourceWood:
		inv.Wood += n
	case ResourceStone:
		inv.Stone += n
	}
}

// Take removes up to n units of the given kind and returns how many were taken.
func (inv *Inventory) Take(kind ResourceKind, n uint16) uint16 {
	var slot *uint16
	switch kind {
	case ResourceBerry:
		slot = &inv.Food
	case ResourceWood:
		slot = &inv.Wood
	case ResourceStone:
		slot = &inv.Stone
	default:
		return 0
	}
	if *slot < n {
		n = *slot
	}
	*slot -= n
	return n
}

// MemoryCapacity bounds the memory excerpt ring. Older entries are dropped;
// long-term memory formation lives outside this core and consumes bus events.
const MemoryCapacity = 8

// Memory holds the short excerpt of recent notable moments handed to the
// deliberative planner. Downstream memory formation owns the full record.
type Memory struct {
	Recent [MemoryCapacity]string
	Len    uint8
	next   uint8
}

// Remember appends a line, evicting the oldest once the ring is full.
func (m *Memory) Remember(line string) {
	m.Recent[m.next] = line
	m.next = (m.next + 1) % MemoryCapacity
	if m.Len < MemoryCapacity {
		m.Len++
	}
}

// Excerpt returns the remembered lines, oldest first.
func (m *Memory) Excerpt() []string {
	if m.Len == 0 {
		return nil
	}
	out := make([]string, 0, m.Len)
	start := (int(m.next) - int(m.Len) + MemoryCapacity) % MemoryCapacity
	for i := 0; i < int(m.Len); i++ {
		out = append(out, m.Recent[(start+i)%MemoryCapacity])
	}
	return out
}
