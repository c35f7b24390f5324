// Package pairing produces a complete set of opposing-side pairings for
// one round via bounded randomized local search.
package pairing

import (
	"math/rand"

	"github.com/mistergarrison/debatematcher/internal/domain/model"
	"github.com/mistergarrison/debatematcher/pkg/metrics"
)

// Optimize returns pairings covering every unit of the even-sized pool
// exactly once, each tagged with its penalty.
//
// Each iteration shuffles the pool, pairs consecutive units, orients sides
// to best equalize each unit's historical side exposure, and scores the
// set: TierMismatchPenalty when skill-tier flags differ plus RematchPenalty
// per prior encounter summed over both units' histories. The lowest-total
// complete set found within the budget wins; a zero-penalty set stops the
// search early. The best set is always returned even when imperfect, so
// the round never fails for lack of an optimum.
func Optimize(units []model.Unit, tune model.Tuning) []*model.Pairing {
	if len(units) == 0 {
		metrics.RecordSearchIterations(0)
		return nil
	}

	pool := make([]model.Unit, len(units))
	copy(pool, units)

	var best []*model.Pairing
	bestTotal := 0
	iterations := 0

	for i := 0; i < tune.SearchIterations; i++ {
		iterations++
		rand.Shuffle(len(pool), func(a, b int) {
			pool[a], pool[b] = pool[b], pool[a]
		})

		candidate := make([]*model.Pairing, 0, len(pool)/2)
		total := 0
		for j := 0; j+1 < len(pool); j += 2 {
			p := makePairing(pool[j], pool[j+1], tune)
			total += p.Penalty
			candidate = append(candidate, p)
		}

		if best == nil || total < bestTotal {
			best = candidate
			bestTotal = total
		}
		if bestTotal == 0 {
			break
		}
	}

	metrics.RecordSearchIterations(iterations)
	metrics.UpdateRoundPenalty(bestTotal)
	return best
}

// makePairing orients x and y into sides and computes the pair's penalty.
func makePairing(x, y model.Unit, tune model.Tuning) *model.Pairing {
	a, b := orient(x, y)

	penalty := 0
	if a.Novice != b.Novice {
		penalty += tune.TierMismatchPenalty
	}
	penalty += tune.RematchPenalty * (a.Stats.Opponents[b.Key] + b.Stats.Opponents[a.Key])

	ca, cb := a, b
	return &model.Pairing{SideA: &ca, SideB: &cb, Penalty: penalty}
}

// orient picks which unit takes side A so that both units' historical A/B
// exposure evens out; a tie is broken randomly.
func orient(x, y model.Unit) (model.Unit, model.Unit) {
	// How much each unit "owes" side A.
	xNeedsA := x.Stats.Sides[model.SideB] - x.Stats.Sides[model.SideA]
	yNeedsA := y.Stats.Sides[model.SideB] - y.Stats.Sides[model.SideA]

	switch {
	case xNeedsA > yNeedsA:
		return x, y
	case yNeedsA > xNeedsA:
		return y, x
	default:
		if rand.Intn(2) == 0 { //nolint:gosec // soft preference, reproducibility not required
			return x, y
		}
		return y, x
	}
}
