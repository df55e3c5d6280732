// internal/domain/recommendation/scoring.go
package recommendation

import (
	"math"
	"sort"
)

const (
	maxDurationBonus   = 5.0
	secondsPerBonus    = 10.0
	categoryWeight     = 0.7
	popularityWeight   = 0.3
	scoreNormalization = 10.0
)

var interactionWeights = map[InteractionType]float64{
	InteractionView:     1,
	InteractionClick:    3,
	InteractionCartAdd:  5,
	InteractionPurchase: 10,
}

// IsValid reports whether t is a known interaction type
func (t InteractionType) IsValid() bool {
	_, ok := interactionWeights[t]
	return ok
}

// InteractionScore weights one interaction by type plus a dwell-time bonus
// of one point per 10 seconds, capped at 5.
func InteractionScore(i Interaction) float64 {
	score := interactionWeights[i.InteractionType]
	if i.DurationSeconds != nil && *i.DurationSeconds > 0 {
		score += math.Min(float64(*i.DurationSeconds)/secondsPerBonus, maxDurationBonus)
	}
	return score
}

// Engagement accumulates interaction scores per product and per category
type Engagement struct {
	Products   map[uint]float64
	Categories map[uint]float64

	// categoryOrder is first-seen order, used to break ties
	categoryOrder []uint
}

// ScoreInteractions folds interactions into product and category totals
func ScoreInteractions(interactions []Interaction) *Engagement {
	e := &Engagement{
		Products:   make(map[uint]float64),
		Categories: make(map[uint]float64),
	}
	for _, i := range interactions {
		score := InteractionScore(i)
		e.Products[i.ProductID] += score
		if _, seen := e.Categories[i.CategoryID]; !seen {
			e.categoryOrder = append(e.categoryOrder, i.CategoryID)
		}
		e.Categories[i.CategoryID] += score
	}
	return e
}

// TopCategories returns up to n category ids by descending score. Ties keep
// the order in which the categories were first seen.
func (e *Engagement) TopCategories(n int) []uint {
	ids := make([]uint, len(e.categoryOrder))
	copy(ids, e.categoryOrder)
	sort.SliceStable(ids, func(a, b int) bool {
		return e.Categories[ids[a]] > e.Categories[ids[b]]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

// FinalScore blends category engagement with product popularity and
// normalizes into [0, 1].
func FinalScore(categoryScore float64, popularity int64) float64 {
	raw := categoryScore*categoryWeight + float64(popularity)*popularityWeight
	return math.Min(raw/scoreNormalization, 1)
}
