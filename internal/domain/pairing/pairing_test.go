package pairing_test

import (
	"fmt"
	"testing"

	"github.com/mistergarrison/debatematcher/internal/domain/history"
	"github.com/mistergarrison/debatematcher/internal/domain/model"
	"github.com/mistergarrison/debatematcher/internal/domain/pairing"
	. "github.com/smartystreets/goconvey/convey"
)

func freshUnits(n int) []model.Unit {
	units := make([]model.Unit, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("U%02d", i)
		units = append(units, model.Unit{Key: name, Members: []string{name}, Stats: model.NewStats()})
	}
	return units
}

func coveredOnce(units []model.Unit, pairings []*model.Pairing) bool {
	seen := make(map[string]int, len(units))
	for _, p := range pairings {
		seen[p.SideA.Key]++
		seen[p.SideB.Key]++
	}
	if len(seen) != len(units) {
		return false
	}
	for _, n := range seen {
		if n != 1 {
			return false
		}
	}
	return true
}

func TestOptimizeMatching(t *testing.T) {
	Convey("Given even pools of several sizes", t, func() {
		tune := model.DefaultTuning()

		Convey("When optimized", func() {
			Convey("Then every unit appears in exactly one pairing", func() {
				for _, n := range []int{2, 4, 8, 16} {
					units := freshUnits(n)
					pairings := pairing.Optimize(units, tune)
					So(pairings, ShouldHaveLength, n/2)
					So(coveredOnce(units, pairings), ShouldBeTrue)
				}
			})
		})
	})

	Convey("Given an empty pool", t, func() {
		Convey("When optimized", func() {
			Convey("Then no pairings are produced", func() {
				So(pairing.Optimize(nil, model.DefaultTuning()), ShouldBeEmpty)
			})
		})
	})
}

func TestOptimizePenalties(t *testing.T) {
	tune := model.DefaultTuning()

	Convey("Given units with empty history and matching tiers", t, func() {
		units := freshUnits(6)

		Convey("When optimized", func() {
			pairings := pairing.Optimize(units, tune)

			Convey("Then the set is penalty-free", func() {
				total := 0
				for _, p := range pairings {
					total += p.Penalty
				}
				So(total, ShouldEqual, 0)
			})
		})
	})

	Convey("Given two units forced across skill tiers", t, func() {
		units := freshUnits(2)
		units[0].Novice = true

		Convey("When optimized", func() {
			pairings := pairing.Optimize(units, tune)

			Convey("Then the set is still complete, carrying the mismatch penalty", func() {
				So(pairings, ShouldHaveLength, 1)
				So(pairings[0].Penalty, ShouldEqual, tune.TierMismatchPenalty)
			})
		})
	})

	Convey("Given two units that already met twice", t, func() {
		rows := []model.HistoryRow{
			{Date: "d1", Round: 1, Competitor: "A", Side: model.SideA, Opponent: "B"},
			{Date: "d2", Round: 1, Competitor: "A", Side: model.SideB, Opponent: "B"},
			{Date: "d1", Round: 1, Competitor: "B", Side: model.SideB, Opponent: "A"},
			{Date: "d2", Round: 1, Competitor: "B", Side: model.SideA, Opponent: "A"},
		}
		view := history.Aggregate(rows)
		units := []model.Unit{
			{Key: "A", Members: []string{"A"}, Stats: view.ForCompetitor("A")},
			{Key: "B", Members: []string{"B"}, Stats: view.ForCompetitor("B")},
		}

		Convey("When optimized", func() {
			pairings := pairing.Optimize(units, tune)

			Convey("Then the rematch penalty sums over both units' histories", func() {
				So(pairings, ShouldHaveLength, 1)
				So(pairings[0].Penalty, ShouldEqual, tune.RematchPenalty*4)
			})
		})
	})

	Convey("Given four units where one perfect matching exists", t, func() {
		// A met B, C met D; the only penalty-free matching is A-C / B-D or A-D / B-C.
		rows := []model.HistoryRow{
			{Date: "d1", Round: 1, Competitor: "A", Side: model.SideA, Opponent: "B"},
			{Date: "d1", Round: 1, Competitor: "B", Side: model.SideB, Opponent: "A"},
			{Date: "d1", Round: 2, Competitor: "C", Side: model.SideA, Opponent: "D"},
			{Date: "d1", Round: 2, Competitor: "D", Side: model.SideB, Opponent: "C"},
		}
		view := history.Aggregate(rows)
		units := make([]model.Unit, 0, 4)
		for _, name := range []string{"A", "B", "C", "D"} {
			units = append(units, model.Unit{Key: name, Members: []string{name}, Stats: view.ForCompetitor(name)})
		}

		Convey("When optimized with the default budget", func() {
			pairings := pairing.Optimize(units, tune)

			Convey("Then the search finds the penalty-free matching", func() {
				// Three matchings exist for four units; 500 shuffles make
				// missing the rematch-free one vanishingly unlikely.
				total := 0
				for _, p := range pairings {
					total += p.Penalty
				}
				So(total, ShouldEqual, 0)
			})
		})
	})
}

func TestOptimizeSides(t *testing.T) {
	Convey("Given one unit that has only ever taken side A", t, func() {
		rows := []model.HistoryRow{
			{Date: "d1", Round: 1, Competitor: "A", Side: model.SideA, Opponent: "X"},
			{Date: "d2", Round: 1, Competitor: "A", Side: model.SideA, Opponent: "Y"},
		}
		view := history.Aggregate(rows)
		units := []model.Unit{
			{Key: "A", Members: []string{"A"}, Stats: view.ForCompetitor("A")},
			{Key: "B", Members: []string{"B"}, Stats: model.NewStats()},
		}

		Convey("When optimized", func() {
			pairings := pairing.Optimize(units, model.DefaultTuning())

			Convey("Then the lopsided unit gets the other side", func() {
				So(pairings, ShouldHaveLength, 1)
				So(pairings[0].SideB.Key, ShouldEqual, "A")
				So(pairings[0].SideA.Key, ShouldEqual, "B")
			})
		})
	})
}
