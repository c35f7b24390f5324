package config_test

import (
	"context"
	"testing"

	"github.com/mistergarrison/debatematcher/internal/config"
	"github.com/mistergarrison/debatematcher/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file or environment overrides", t, func() {
		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults match the standard tuning", func() {
				So(err, ShouldBeNil)
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.Tuning(), ShouldResemble, model.DefaultTuning())
			})
		})
	})
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DEBATEMATCHER_SEARCH_ITERATIONS", "750")
	t.Setenv("DEBATEMATCHER_REMATCH_PENALTY", "30")

	Convey("Given environment overrides", t, func() {
		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env wins over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.SearchIterations, ShouldEqual, 750)
				So(cfg.RematchPenalty, ShouldEqual, 30)
				So(cfg.TierMismatchPenalty, ShouldEqual, model.DefaultTuning().TierMismatchPenalty)
			})
		})
	})
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("DEBATEMATCHER_SEARCH_ITERATIONS", "0")

	Convey("Given a zero search budget", t, func() {
		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then loading fails with the invalid-config sentinel", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}
