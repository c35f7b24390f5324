package precheck_test

import (
	"testing"

	"github.com/mistergarrison/debatematcher/internal/domain/model"
	"github.com/mistergarrison/debatematcher/internal/domain/precheck"
	. "github.com/smartystreets/goconvey/convey"
)

func soundRoster() model.Roster {
	return model.Roster{
		Competitors: []model.Competitor{
			{Name: "Avery", Format: model.FormatTeam, Partner: "Blake"},
			{Name: "Blake", Format: model.FormatTeam, Partner: "Avery"},
			{Name: "Casey", Format: model.FormatTeam},
		},
		Adjudicators: []model.Adjudicator{
			{Name: "Judge1", Format: model.FormatTeam, Conflicts: []string{"Avery"}},
			{Name: "Judge2", Format: model.FormatTeam},
		},
		Venues: []model.Venue{
			{Name: "Hall", Format: model.FormatTeam},
			{Name: "Annex", Format: model.FormatTeam},
		},
	}
}

func TestCheck(t *testing.T) {
	Convey("Given a sound roster", t, func() {
		Convey("Then the check passes", func() {
			So(precheck.Check(soundRoster()), ShouldBeNil)
		})
	})

	Convey("Given a duplicate venue", t, func() {
		roster := soundRoster()
		roster.Venues = append(roster.Venues, model.Venue{Name: "Hall", Format: model.FormatTeam})

		Convey("Then the check fails naming the venue", func() {
			err := precheck.Check(roster)
			So(err, ShouldWrap, precheck.ErrIntegrity)
			So(err.Error(), ShouldContainSubstring, `duplicate venue "Hall"`)
		})
	})

	Convey("Given a person listed as both adjudicator and competitor", t, func() {
		roster := soundRoster()
		roster.Adjudicators = append(roster.Adjudicators, model.Adjudicator{Name: "Casey"})

		Convey("Then the check fails naming the person", func() {
			err := precheck.Check(roster)
			So(err, ShouldWrap, precheck.ErrIntegrity)
			So(err.Error(), ShouldContainSubstring, "both adjudicator and competitor")
		})
	})

	Convey("Given a conflict entry naming nobody on the roster", t, func() {
		roster := soundRoster()
		roster.Adjudicators[1].Conflicts = []string{"Nobody"}

		Convey("Then the check fails naming the entry", func() {
			err := precheck.Check(roster)
			So(err, ShouldWrap, precheck.ErrIntegrity)
			So(err.Error(), ShouldContainSubstring, `conflict "Nobody"`)
		})
	})

	Convey("Given a non-mutual partnership", t, func() {
		roster := soundRoster()
		roster.Competitors[1].Partner = "Casey"

		Convey("Then the check fails naming the pair", func() {
			err := precheck.Check(roster)
			So(err, ShouldWrap, precheck.ErrIntegrity)
			So(err.Error(), ShouldContainSubstring, "not mutual")
		})
	})

	Convey("Given partners across skill tiers", t, func() {
		roster := soundRoster()
		roster.Competitors[1].Novice = true

		Convey("Then the check fails once for the pair", func() {
			err := precheck.Check(roster)
			So(err, ShouldWrap, precheck.ErrIntegrity)
			So(err.Error(), ShouldContainSubstring, "different skill tiers")
		})
	})

	Convey("Given several problems at once", t, func() {
		roster := soundRoster()
		roster.Venues = append(roster.Venues, model.Venue{Name: "Hall"})
		roster.Competitors[1].Partner = "Casey"

		Convey("Then every finding appears in one error", func() {
			err := precheck.Check(roster)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "duplicate venue")
			So(err.Error(), ShouldContainSubstring, "not mutual")
		})
	})
}
