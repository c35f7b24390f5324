// Package resources binds adjudicators (possibly panels) and venues to the
// pairings of one round, in three ordered passes.
package resources

import (
	"context"
	"fmt"
	"sort"

	"github.com/mistergarrison/debatematcher/internal/domain/history"
	"github.com/mistergarrison/debatematcher/internal/domain/model"
	"github.com/mistergarrison/debatematcher/pkg/metrics"
)

// Assign fills every pairing's adjudicators and venue in place, or fails
// the whole run leaving no partial result worth persisting.
//
// The pool sizes are checked against the number of pairings before any
// work starts. Pass 1 covers every pairing with one adjudicator, hardest
// pairing first; the conflict exclusion there is absolute and never
// relaxed. Pass 2 folds surplus adjudicators into panels. Pass 3 gives
// each pairing its primary adjudicator's most-used free venue.
func Assign(ctx context.Context, pairings []*model.Pairing, adjudicators []model.Adjudicator, venues []model.Venue, view *history.View, tune model.Tuning) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(adjudicators) < len(pairings) {
		return fmt.Errorf("%w: %d pairings need %d adjudicators, have %d",
			ErrInsufficientResources, len(pairings), len(pairings), len(adjudicators))
	}
	if len(venues) < len(pairings) {
		return fmt.Errorf("%w: %d pairings need %d venues, have %d",
			ErrInsufficientResources, len(pairings), len(pairings), len(venues))
	}

	used := make(map[string]bool, len(adjudicators))

	if err := coverPairings(pairings, adjudicators, used, view); err != nil {
		return err
	}
	fillPanels(pairings, adjudicators, used, view, tune)
	assignVenues(pairings, venues, view)

	metrics.UpdateUnusedAdjudicators(len(adjudicators) - len(used))
	return nil
}

// coverPairings is pass 1: one conflict-free adjudicator per pairing,
// hardest pairings first, preferring the least familiar face.
func coverPairings(pairings []*model.Pairing, adjudicators []model.Adjudicator, used map[string]bool, view *history.View) error {
	order := make([]*model.Pairing, len(pairings))
	copy(order, pairings)
	sort.SliceStable(order, func(a, b int) bool {
		return order[a].Penalty > order[b].Penalty
	})

	for _, p := range order {
		bestIdx := -1
		bestPenalty := 0
		for i, adj := range adjudicators {
			if used[adj.Name] || conflicted(adj, p) {
				continue
			}
			penalty := readjudicationPenalty(adj, p, view)
			if bestIdx < 0 || penalty < bestPenalty {
				bestIdx = i
				bestPenalty = penalty
			}
		}
		if bestIdx < 0 {
			return fmt.Errorf("%w for pairing %s", ErrConflictExhausted, p.Key())
		}
		p.Adjudicators = append(p.Adjudicators, adjudicators[bestIdx].Name)
		used[adjudicators[bestIdx].Name] = true
	}
	return nil
}

// fillPanels is pass 2: every leftover adjudicator joins the single best
// fitting pairing, or stays unused when conflicted everywhere.
func fillPanels(pairings []*model.Pairing, adjudicators []model.Adjudicator, used map[string]bool, view *history.View, tune model.Tuning) {
	for _, adj := range adjudicators {
		if used[adj.Name] {
			continue
		}
		var best *model.Pairing
		bestPenalty := 0
		for _, p := range pairings {
			if conflicted(adj, p) {
				continue
			}
			penalty := readjudicationPenalty(adj, p, view) + tune.PanelBalancePenalty*len(p.Adjudicators)
			if best == nil || penalty < bestPenalty {
				best = p
				bestPenalty = penalty
			}
		}
		if best == nil {
			continue // fits nowhere conflict-free; acceptable, not a failure
		}
		best.Adjudicators = append(best.Adjudicators, adj.Name)
		used[adj.Name] = true
		metrics.RecordPanelAddition()
	}
}

// assignVenues is pass 3: a soft preference for the primary adjudicator's
// most-used venue among those still free; ties and unknown adjudicators
// fall back to the first free venue. Sufficiency is guaranteed upstream.
func assignVenues(pairings []*model.Pairing, venues []model.Venue, view *history.View) {
	taken := make(map[string]bool, len(pairings))
	for _, p := range pairings {
		uses := view.VenueUse(p.Primary())
		pick := ""
		pickUses := -1
		for _, v := range venues {
			if taken[v.Name] {
				continue
			}
			if pick == "" || uses[v.Name] > pickUses {
				pick = v.Name
				pickUses = uses[v.Name]
			}
		}
		p.Venue = pick
		taken[pick] = true
	}
}

// conflicted reports whether the adjudicator's conflict set intersects the
// pairing's competitor names. This rule is absolute.
func conflicted(adj model.Adjudicator, p *model.Pairing) bool {
	for _, name := range p.Competitors() {
		for _, c := range adj.Conflicts {
			if c == name {
				return true
			}
		}
	}
	return false
}

// readjudicationPenalty grows quadratically in the adjudicator's prior
// exposure to the pairing's competitors, so a second look is cheap and a
// fourth is expensive.
func readjudicationPenalty(adj model.Adjudicator, p *model.Pairing, view *history.View) int {
	penalty := 0
	for _, name := range p.Competitors() {
		n := view.ForCompetitor(name).Adjudicators[adj.Name]
		penalty += n * n
	}
	return penalty
}
