package model

// Default penalty weights and search budget.
const (
	defaultSearchIterations    = 500
	defaultTierMismatchPenalty = 100
	defaultRematchPenalty      = 15
	defaultPanelBalancePenalty = 50
)

// Tuning bundles the fixed labels and penalty weights of one run into a
// single immutable value threaded through every call, instead of shared
// mutable globals.
type Tuning struct {
	// SearchIterations bounds the randomized pairing search.
	SearchIterations int
	// TierMismatchPenalty is charged when the two sides' skill-tier flags differ.
	TierMismatchPenalty int
	// RematchPenalty is charged per prior encounter between the two units.
	RematchPenalty int
	// PanelBalancePenalty is charged per adjudicator already on a pairing's
	// panel, so surplus adjudicators spread evenly.
	PanelBalancePenalty int
}

// DefaultTuning returns the standard weights.
func DefaultTuning() Tuning {
	return Tuning{
		SearchIterations:    defaultSearchIterations,
		TierMismatchPenalty: defaultTierMismatchPenalty,
		RematchPenalty:      defaultRematchPenalty,
		PanelBalancePenalty: defaultPanelBalancePenalty,
	}
}
