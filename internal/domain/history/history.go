// Package history turns the flat external log into per-competitor and
// per-adjudicator lookup structures used as penalty weights by the engine.
package history

import (
	"fmt"

	"github.com/mistergarrison/debatematcher/internal/domain/model"
)

// View is a derived, read-only snapshot of the external log for one run.
// The two-round orchestrator clones it and folds round one in; the
// original is never mutated in place.
type View struct {
	competitors map[string]*model.Stats
	venues      map[string]map[string]int // adjudicator -> venue -> uses
}

// NewView returns an empty view.
func NewView() *View {
	return &View{
		competitors: make(map[string]*model.Stats),
		venues:      make(map[string]map[string]int),
	}
}

// Aggregate builds a View from the full external log of one format.
//
// A real match judged by a panel of N adjudicators appears in the log as N
// rows differing only by adjudicator. Those rows count as one occupancy,
// opponent, or BYE event, but as N independent re-adjudication events.
// Rows with a missing competitor name are skipped, never fatal.
func Aggregate(rows []model.HistoryRow) *View {
	v := NewView()
	seen := make(map[string]struct{}, len(rows)) // occupancy keys already counted

	for _, row := range rows {
		if row.Competitor == "" {
			continue
		}
		stats := v.stats(row.Competitor)

		// Occupancy events count once per real match, keyed by the fields
		// that are identical across a panel's rows.
		occupancy := fmt.Sprintf("%s|%d|%s", row.Date, row.Round, row.Competitor)
		if _, dup := seen[occupancy]; !dup {
			seen[occupancy] = struct{}{}
			if row.Opponent == model.NoOpponent {
				stats.Byes++
			} else if row.Opponent != "" {
				stats.Sides[row.Side]++
				stats.Opponents[row.Opponent]++
			}
		}

		// Re-adjudication events count per row.
		if row.Adjudicator != "" {
			stats.Adjudicators[row.Adjudicator]++
			if row.Venue != "" {
				v.addVenueUse(row.Adjudicator, row.Venue)
			}
		}
	}
	return v
}

func (v *View) stats(competitor string) *model.Stats {
	s, ok := v.competitors[competitor]
	if !ok {
		s = model.NewStats()
		v.competitors[competitor] = s
	}
	return s
}

func (v *View) addVenueUse(adjudicator, venue string) {
	uses, ok := v.venues[adjudicator]
	if !ok {
		uses = make(map[string]int)
		v.venues[adjudicator] = uses
	}
	uses[venue]++
}

// ForCompetitor returns the recorded stats for a competitor, or a fresh
// empty Stats for somebody the log has never seen.
func (v *View) ForCompetitor(name string) *model.Stats {
	if s, ok := v.competitors[name]; ok {
		return s
	}
	return model.NewStats()
}

// VenueUse returns how often an adjudicator has used each venue.
func (v *View) VenueUse(adjudicator string) map[string]int {
	return v.venues[adjudicator]
}

// Size returns the number of competitors the view knows about.
func (v *View) Size() int { return len(v.competitors) }

// Clone returns an independent deep copy, safe to fold rounds into while
// the original keeps serving reads.
func (v *View) Clone() *View {
	c := NewView()
	for name, stats := range v.competitors {
		c.competitors[name] = stats.Clone()
	}
	for adj, uses := range v.venues {
		copied := make(map[string]int, len(uses))
		for venue, n := range uses {
			copied[venue] = n
		}
		c.venues[adj] = copied
	}
	return c
}

// Fold applies a finished round's outcome to the view, as if it were
// already on the external record: sides taken, opposing units met, every
// panel adjudicator seen, venues used, and BYE sit-outs.
func (v *View) Fold(pairings []*model.Pairing) {
	for _, p := range pairings {
		if p.IsBye() {
			for _, member := range p.SideA.Members {
				v.stats(member).Byes++
			}
			continue
		}
		v.foldSide(p.SideA, model.SideA, p.SideB.Key, p)
		v.foldSide(p.SideB, model.SideB, p.SideA.Key, p)
		for _, adj := range p.Adjudicators {
			if p.Venue != "" {
				v.addVenueUse(adj, p.Venue)
			}
		}
	}
}

func (v *View) foldSide(unit *model.Unit, side model.Side, opponent string, p *model.Pairing) {
	for _, member := range unit.Members {
		stats := v.stats(member)
		stats.Sides[side]++
		stats.Opponents[opponent]++
		for _, adj := range p.Adjudicators {
			stats.Adjudicators[adj]++
		}
	}
}
