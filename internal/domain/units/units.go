// Package units turns raw competitors into the entities actually paired:
// partnered two-member teams, one-member fallbacks, or solo competitors.
package units

import (
	"github.com/mistergarrison/debatematcher/internal/domain/history"
	"github.com/mistergarrison/debatematcher/internal/domain/model"
)

// InheritancePolicy decides which member's history a two-member unit
// carries. It is a policy choice, not a derivable rule, so it is pluggable.
type InheritancePolicy func(view *history.View, a, b string) string

// FewestByes inherits from the member with fewer recorded sit-outs, so BYE
// fairness is not skewed by an unrelated partner history. Ties break
// lexicographically.
func FewestByes(view *history.View, a, b string) string {
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	if view.ForCompetitor(second).Byes < view.ForCompetitor(first).Byes {
		return second
	}
	return first
}

// Former forms units for one format.
type Former struct {
	inherit InheritancePolicy
}

// Option applies a configuration option to the Former.
type Option func(*Former)

// WithInheritance overrides the history inheritance policy for two-member units.
func WithInheritance(policy InheritancePolicy) Option {
	return func(f *Former) {
		if policy != nil {
			f.inherit = policy
		}
	}
}

// New creates a Former with default configuration.
func New(opts ...Option) *Former {
	f := &Former{
		inherit: FewestByes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Form builds team-format units from the available competitors. A pair of
// competitors who mutually declare each other partner becomes one
// two-member unit; everybody else becomes a one-member fallback unit,
// visibly flagged. The resulting set of unit keys is independent of the
// input order.
func (f *Former) Form(competitors []model.Competitor, view *history.View) []model.Unit {
	byName := make(map[string]model.Competitor, len(competitors))
	for _, c := range competitors {
		byName[c.Name] = c
	}

	claimed := make(map[string]bool, len(competitors))
	units := make([]model.Unit, 0, len(competitors))

	for _, c := range competitors {
		if claimed[c.Name] {
			continue
		}
		partner, ok := byName[c.Partner]
		if ok && !claimed[partner.Name] && partner.Partner == c.Name {
			claimed[c.Name] = true
			claimed[partner.Name] = true
			units = append(units, model.Unit{
				Key:     model.UnitKey(c.Name, partner.Name),
				Members: orderedMembers(c.Name, partner.Name),
				Novice:  c.Novice,
				Stats:   view.ForCompetitor(f.inherit(view, c.Name, partner.Name)),
			})
			continue
		}
		claimed[c.Name] = true
		units = append(units, model.Unit{
			Key:      model.UnitKey(c.Name),
			Members:  []string{c.Name},
			Novice:   c.Novice,
			Fallback: true,
			Stats:    view.ForCompetitor(c.Name),
		})
	}
	return units
}

// FormSolo builds solo-format units: one competitor per unit, carrying that
// competitor's own history.
func (f *Former) FormSolo(competitors []model.Competitor, view *history.View) []model.Unit {
	units := make([]model.Unit, 0, len(competitors))
	for _, c := range competitors {
		units = append(units, model.Unit{
			Key:     model.UnitKey(c.Name),
			Members: []string{c.Name},
			Novice:  c.Novice,
			Stats:   view.ForCompetitor(c.Name),
		})
	}
	return units
}

func orderedMembers(a, b string) []string {
	if b < a {
		a, b = b, a
	}
	return []string{a, b}
}
