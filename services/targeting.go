package services

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/lizTheDeveloper/ai-village-sub004/components"
)

// Criterion selects how candidates are ranked.
type Criterion uint8

const (
	// CriterionNearest prefers the closest candidate.
	CriterionNearest Criterion = iota
	// CriterionMostDangerous prefers the highest Threat danger, distance as
	// tie-break.
	CriterionMostDangerous
	// CriterionRichest prefers the resource with the largest remaining amount.
	CriterionRichest
)

// Targeting ranks candidate entities for a behavior's intent. Read-only over
// the store.
type Targeting struct {
	world     *ecs.World
	posMap    *ecs.Map1[components.Position]
	threatMap *ecs.Map1[components.Threat]
	resMap    *ecs.Map1[components.Resource]
}

// NewTargeting creates the targeting facade.
func NewTargeting(w *ecs.World) *Targeting {
	return &Targeting{
		world:     w,
		posMap:    ecs.NewMap1[components.Position](w),
		threatMap: ecs.NewMap1[components.Threat](w),
		resMap:    ecs.NewMap1[components.Resource](w),
	}
}

// SelectBest picks the best candidate for the actor under the criterion.
// Dead candidates and candidates without a position are skipped; if nothing
// remains the call fails with ErrNoCandidates.
func (t *Targeting) SelectBest(actor ecs.Entity, candidates []ecs.Entity, criterion Criterion) (ecs.Entity, error) {
	if !t.world.Alive(actor) {
		return ecs.Entity{}, fmt.Errorf("%w: actor %v", ErrInvalidEntity, actor)
	}
	actorPos := t.posMap.Get(actor)
	if actorPos == nil {
		return ecs.Entity{}, fmt.Errorf("%w: actor %v lacks Position", ErrMissingComponent, actor)
	}

	var best ecs.Entity
	bestScore := float32(math.Inf(-1))
	found := false

	for _, cand := range candidates {
		if cand == actor || !t.world.Alive(cand) {
			continue
		}
		pos := t.posMap.Get(cand)
		if pos == nil {
			continue
		}
		score, ok := t.score(actorPos, cand, pos, criterion)
		if !ok {
			continue
		}
		if !found || score > bestScore {
			best = cand
			bestScore = score
			found = true
		}
	}

	if !found {
		return ecs.Entity{}, ErrNoCandidates
	}
	return best, nil
}

func (t *Targeting) score(actorPos *components.Position, cand ecs.Entity, pos *components.Position, criterion Criterion) (float32, bool) {
	dx := pos.X - actorPos.X
	dy := pos.Y - actorPos.Y
	distSq := dx*dx + dy*dy

	switch criterion {
	case CriterionNearest:
		return -distSq, true
	case CriterionMostDangerous:
		threat := t.threatMap.Get(cand)
		if threat == nil || threat.Danger <= 0 {
			return 0, false
		}
		// Danger dominates; nearer wins among equal danger.
		return threat.Danger*1e9 - distSq, true
	case CriterionRichest:
		res := t.resMap.Get(cand)
		if res == nil || res.Amount <= 0 {
			return 0, false
		}
		return res.Amount*1e6 - distSq, true
	default:
		return 0, false
	}
}
