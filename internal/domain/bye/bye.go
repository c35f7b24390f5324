// Package bye chooses which unit sits out a round when the pool is odd.
package bye

import (
	"sort"

	"github.com/mistergarrison/debatematcher/internal/domain/model"
)

// Select removes and returns exactly one unit to sit out when the pool is
// odd, else returns the pool untouched and a nil bye.
//
// Candidates are ordered ascending by historical sit-out count and the
// first one whose key differs from exclude wins. When every remaining
// candidate is excluded the exclusion is waived: a complete assignment
// always beats the fairness rule.
func Select(units []model.Unit, exclude string) ([]model.Unit, *model.Unit) {
	if len(units)%2 == 0 {
		return units, nil
	}

	order := make([]int, len(units))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return units[order[a]].Stats.Byes < units[order[b]].Stats.Byes
	})

	pick := order[0]
	for _, idx := range order {
		if units[idx].Key != exclude {
			pick = idx
			break
		}
	}

	selected := units[pick]
	rest := make([]model.Unit, 0, len(units)-1)
	rest = append(rest, units[:pick]...)
	rest = append(rest, units[pick+1:]...)
	return rest, &selected
}
