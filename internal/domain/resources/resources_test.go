package resources_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/mistergarrison/debatematcher/internal/domain/history"
	"github.com/mistergarrison/debatematcher/internal/domain/model"
	"github.com/mistergarrison/debatematcher/internal/domain/resources"
	. "github.com/smartystreets/goconvey/convey"
)

func soloPairing(a, b string, penalty int) *model.Pairing {
	ua := model.Unit{Key: a, Members: []string{a}, Stats: model.NewStats()}
	ub := model.Unit{Key: b, Members: []string{b}, Stats: model.NewStats()}
	return &model.Pairing{Round: 1, SideA: &ua, SideB: &ub, Penalty: penalty}
}

func adjudicators(names ...string) []model.Adjudicator {
	out := make([]model.Adjudicator, 0, len(names))
	for _, n := range names {
		out = append(out, model.Adjudicator{Name: n, Format: model.FormatSolo})
	}
	return out
}

func venues(names ...string) []model.Venue {
	out := make([]model.Venue, 0, len(names))
	for _, n := range names {
		out = append(out, model.Venue{Name: n, Format: model.FormatSolo})
	}
	return out
}

func TestAssignPrecondition(t *testing.T) {
	ctx := context.Background()
	tune := model.DefaultTuning()

	Convey("Given two pairings and a single adjudicator", t, func() {
		pairings := []*model.Pairing{soloPairing("A", "B", 0), soloPairing("C", "D", 0)}

		Convey("When assigning", func() {
			err := resources.Assign(ctx, pairings, adjudicators("J1"), venues("V1", "V2"), history.NewView(), tune)

			Convey("Then the run fails naming the shortfall and nothing is assigned", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, resources.ErrInsufficientResources)
				So(err.Error(), ShouldContainSubstring, "have 1")
				for _, p := range pairings {
					So(p.Adjudicators, ShouldBeEmpty)
					So(p.Venue, ShouldBeEmpty)
				}
			})
		})
	})

	Convey("Given two pairings and a single venue", t, func() {
		pairings := []*model.Pairing{soloPairing("A", "B", 0), soloPairing("C", "D", 0)}

		Convey("When assigning", func() {
			err := resources.Assign(ctx, pairings, adjudicators("J1", "J2"), venues("V1"), history.NewView(), tune)

			Convey("Then the run fails before any pairing work", func() {
				So(err, ShouldWrap, resources.ErrInsufficientResources)
				for _, p := range pairings {
					So(p.Adjudicators, ShouldBeEmpty)
				}
			})
		})
	})
}

func TestAssignConflicts(t *testing.T) {
	ctx := context.Background()
	tune := model.DefaultTuning()

	Convey("Given an adjudicator conflicted with every competitor of a pairing's side", t, func() {
		pairings := []*model.Pairing{soloPairing("A", "B", 0)}
		pool := []model.Adjudicator{{Name: "J1", Conflicts: []string{"A"}}}

		Convey("When assigning", func() {
			err := resources.Assign(ctx, pairings, pool, venues("V1"), history.NewView(), tune)

			Convey("Then the run fails naming the pairing", func() {
				So(err, ShouldWrap, resources.ErrConflictExhausted)
				So(err.Error(), ShouldContainSubstring, "A vs B")
			})
		})
	})

	Convey("Given a large pool with scattered conflicts", t, func() {
		var pairings []*model.Pairing
		for i := 0; i < 6; i++ {
			pairings = append(pairings, soloPairing(fmt.Sprintf("A%d", i), fmt.Sprintf("B%d", i), i))
		}
		pool := make([]model.Adjudicator, 0, 9)
		for i := 0; i < 9; i++ {
			adj := model.Adjudicator{Name: fmt.Sprintf("J%d", i)}
			// every adjudicator is conflicted with two competitors somewhere
			adj.Conflicts = []string{fmt.Sprintf("A%d", i%6), fmt.Sprintf("B%d", (i+3)%6)}
			pool = append(pool, adj)
		}

		Convey("When assigning", func() {
			err := resources.Assign(ctx, pairings, pool, venues("V1", "V2", "V3", "V4", "V5", "V6"), history.NewView(), tune)
			So(err, ShouldBeNil)

			Convey("Then no pairing ever carries a conflicted adjudicator", func() {
				byName := make(map[string]model.Adjudicator, len(pool))
				for _, adj := range pool {
					byName[adj.Name] = adj
				}
				for _, p := range pairings {
					So(p.Adjudicators, ShouldNotBeEmpty)
					for _, name := range p.Adjudicators {
						for _, conflict := range byName[name].Conflicts {
							So(p.Competitors(), ShouldNotContain, conflict)
						}
					}
				}
			})

			Convey("And every pairing received a distinct venue", func() {
				seen := make(map[string]bool)
				for _, p := range pairings {
					So(p.Venue, ShouldNotBeEmpty)
					So(seen[p.Venue], ShouldBeFalse)
					seen[p.Venue] = true
				}
			})
		})
	})
}

func TestAssignPasses(t *testing.T) {
	ctx := context.Background()
	tune := model.DefaultTuning()

	Convey("Given an adjudicator who has judged one competitor before", t, func() {
		rows := []model.HistoryRow{
			{Date: "d1", Round: 1, Competitor: "A", Side: model.SideA, Opponent: "X", Adjudicator: "J1", Venue: "V1"},
		}
		view := history.Aggregate(rows)
		pairings := []*model.Pairing{soloPairing("A", "B", 0)}

		Convey("When two adjudicators are available for one pairing", func() {
			err := resources.Assign(ctx, pairings, adjudicators("J1", "J2"), venues("V1", "V2"), view, tune)
			So(err, ShouldBeNil)

			Convey("Then the fresh face covers it and the familiar one joins the panel", func() {
				So(pairings[0].Adjudicators[0], ShouldEqual, "J2")
				So(pairings[0].Adjudicators, ShouldResemble, []string{"J2", "J1"})
			})
		})
	})

	Convey("Given four surplus adjudicators and two pairings", t, func() {
		pairings := []*model.Pairing{soloPairing("A", "B", 0), soloPairing("C", "D", 0)}

		Convey("When assigning", func() {
			err := resources.Assign(ctx, pairings, adjudicators("J1", "J2", "J3", "J4"), venues("V1", "V2"), history.NewView(), tune)
			So(err, ShouldBeNil)

			Convey("Then panels grow evenly", func() {
				So(len(pairings[0].Adjudicators), ShouldEqual, 2)
				So(len(pairings[1].Adjudicators), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a surplus adjudicator conflicted with everybody", t, func() {
		pairings := []*model.Pairing{soloPairing("A", "B", 0)}
		pool := []model.Adjudicator{
			{Name: "J1"},
			{Name: "J2", Conflicts: []string{"A", "B"}},
		}

		Convey("When assigning", func() {
			err := resources.Assign(ctx, pairings, pool, venues("V1"), history.NewView(), tune)

			Convey("Then the misfit is simply left unused", func() {
				So(err, ShouldBeNil)
				So(pairings[0].Adjudicators, ShouldResemble, []string{"J1"})
			})
		})
	})

	Convey("Given a primary adjudicator with a favorite venue", t, func() {
		rows := []model.HistoryRow{
			{Date: "d1", Round: 1, Competitor: "X", Side: model.SideA, Opponent: "Y", Adjudicator: "J1", Venue: "V2"},
			{Date: "d2", Round: 1, Competitor: "X", Side: model.SideA, Opponent: "Z", Adjudicator: "J1", Venue: "V2"},
		}
		view := history.Aggregate(rows)
		pairings := []*model.Pairing{soloPairing("A", "B", 0)}

		Convey("When assigning with several venues free", func() {
			err := resources.Assign(ctx, pairings, adjudicators("J1"), venues("V1", "V2", "V3"), view, tune)
			So(err, ShouldBeNil)

			Convey("Then the familiar venue is preferred", func() {
				So(pairings[0].Venue, ShouldEqual, "V2")
			})
		})
	})

	Convey("Given hard and easy pairings", t, func() {
		hard := soloPairing("A", "B", 200)
		easy := soloPairing("C", "D", 0)
		rows := []model.HistoryRow{
			// J2 has seen A once; J1 never has.
			{Date: "d1", Round: 1, Competitor: "A", Side: model.SideA, Opponent: "X", Adjudicator: "J2", Venue: "V9"},
		}
		view := history.Aggregate(rows)

		Convey("When assigning", func() {
			err := resources.Assign(ctx, []*model.Pairing{easy, hard}, adjudicators("J1", "J2"), venues("V1", "V2"), view, tune)
			So(err, ShouldBeNil)

			Convey("Then the hardest pairing chooses first and takes the fresh face", func() {
				So(hard.Adjudicators[0], ShouldEqual, "J1")
				So(easy.Adjudicators[0], ShouldEqual, "J2")
			})
		})
	})
}
