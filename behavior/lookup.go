package behavior

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
)

// Lookup answers world-wide entity queries that behaviors need when
// choosing targets. Filters are built once and reused every tick.
type Lookup struct {
	resources  *ecs.Filter2[components.Position, components.Resource]
	structures *ecs.Filter2[components.Position, components.Structure]
}

func NewLookup(w *ecs.World) *Lookup {
	return &Lookup{
		resources:  ecs.NewFilter2[components.Position, components.Resource](w),
		structures: ecs.NewFilter2[components.Position, components.Structure](w),
	}
}

// Resources returns every non-exhausted deposit of the given kind.
func (l *Lookup) Resources(kind components.ResourceKind) []ecs.Entity {
	var out []ecs.Entity
	query := l.resources.Query()
	for query.Next() {
		_, res := query.Get()
		if res.Kind == kind && res.Amount > 0 {
			out = append(out, query.Entity())
		}
	}
	return out
}

// IncompleteStructures returns every structure that still has stages left.
func (l *Lookup) IncompleteStructures() []ecs.Entity {
	var out []ecs.Entity
	query := l.structures.Query()
	for query.Next() {
		_, st := query.Get()
		if !st.Complete() {
			out = append(out, query.Entity())
		}
	}
	return out
}
