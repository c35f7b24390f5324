package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mistergarrison/debatematcher/internal/adapters/feed"
	"github.com/mistergarrison/debatematcher/internal/adapters/recorder"
	"github.com/mistergarrison/debatematcher/internal/app"
	"github.com/mistergarrison/debatematcher/internal/config"
	"github.com/mistergarrison/debatematcher/internal/domain/model"
	"github.com/mistergarrison/debatematcher/internal/domain/precheck"
	"github.com/mistergarrison/debatematcher/pkg/logger"
)

// Output file names inside --out-dir.
const (
	eventsFile  = "generated_events.csv"
	historyFile = "new_history.csv"
)

type runFlags struct {
	format       string
	date         string
	competitors  string
	adjudicators string
	venues       string
	attendance   string
	history      string
	outDir       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "debatematcher",
		Short:         "Assign sides, adjudicators, and venues for a competitive event",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one assignment for one event and format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := run(cmd.Context(), flags)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "event format: team or solo")
	cmd.Flags().StringVar(&flags.date, "date", "", "event date, e.g. 2026-08-31")
	cmd.Flags().StringVar(&flags.competitors, "competitors", "", "competitor roster CSV")
	cmd.Flags().StringVar(&flags.adjudicators, "adjudicators", "", "adjudicator roster CSV")
	cmd.Flags().StringVar(&flags.venues, "venues", "", "venue roster CSV")
	cmd.Flags().StringVar(&flags.attendance, "attendance", "", "attendance CSV")
	cmd.Flags().StringVar(&flags.history, "history", "", "history feed CSV (optional)")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", ".", "directory for generated rows")
	for _, required := range []string{"format", "date", "competitors", "adjudicators", "venues", "attendance"} {
		_ = cmd.MarkFlagRequired(required)
	}
	return cmd
}

func run(parent context.Context, flags *runFlags) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	format := model.Format(flags.format)
	if format != model.FormatTeam && format != model.FormatSolo {
		return fmt.Errorf("unknown format %q", flags.format)
	}

	roster, historyRows, present, err := loadFeeds(flags)
	if err != nil {
		return err
	}

	// Integrity gates the run before any engine work.
	if err := precheck.Check(roster); err != nil {
		return err
	}

	fixture := buildFixture(format, flags.date, roster, historyRows, present)
	log.Info(ctx, "fixture loaded",
		logger.String("format", flags.format),
		logger.Int("competitors", len(fixture.Competitors)),
		logger.Int("adjudicators", len(fixture.Adjudicators)),
		logger.Int("venues", len(fixture.Venues)),
		logger.Int("history_rows", len(fixture.History)),
	)

	svc := app.New(
		app.WithLogger(log),
		app.WithTuning(cfg.Tuning()),
	)
	result, err := svc.Run(ctx, fixture)
	if err != nil {
		return err
	}

	// The write is the commit boundary: it happens exactly once, only
	// after every assignment step succeeded.
	if err := writeResult(result, flags.outDir); err != nil {
		return err
	}
	log.Info(ctx, "result persisted",
		logger.String("events", filepath.Join(flags.outDir, eventsFile)),
		logger.String("history", filepath.Join(flags.outDir, historyFile)),
	)
	return nil
}

func loadFeeds(flags *runFlags) (model.Roster, []model.HistoryRow, map[string]bool, error) {
	var roster model.Roster
	var historyRows []model.HistoryRow
	var present map[string]bool

	err := withFile(flags.competitors, func(f *os.File) (err error) {
		roster.Competitors, err = feed.ReadCompetitors(f)
		return err
	})
	if err == nil {
		err = withFile(flags.adjudicators, func(f *os.File) (err error) {
			roster.Adjudicators, err = feed.ReadAdjudicators(f)
			return err
		})
	}
	if err == nil {
		err = withFile(flags.venues, func(f *os.File) (err error) {
			roster.Venues, err = feed.ReadVenues(f)
			return err
		})
	}
	if err == nil {
		err = withFile(flags.attendance, func(f *os.File) (err error) {
			present, err = feed.ReadAttendance(f)
			return err
		})
	}
	if err == nil && flags.history != "" {
		err = withFile(flags.history, func(f *os.File) (err error) {
			historyRows, err = feed.ReadHistory(f)
			return err
		})
	}
	if err != nil {
		return model.Roster{}, nil, nil, err
	}
	return roster, historyRows, present, nil
}

func withFile(path string, fn func(*os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}

// buildFixture narrows the feeds to one format and to present identities.
func buildFixture(format model.Format, date string, roster model.Roster, historyRows []model.HistoryRow, present map[string]bool) app.Fixture {
	fx := app.Fixture{Format: format, Date: date}
	for _, c := range roster.Competitors {
		if c.Format == format && present[c.Name] {
			fx.Competitors = append(fx.Competitors, c)
		}
	}
	for _, a := range roster.Adjudicators {
		if a.Format == format && present[a.Name] {
			fx.Adjudicators = append(fx.Adjudicators, a)
		}
	}
	for _, v := range roster.Venues {
		if v.Format == format {
			fx.Venues = append(fx.Venues, v)
		}
	}
	for _, h := range historyRows {
		if h.Format == format {
			fx.History = append(fx.History, h)
		}
	}
	return fx
}

func writeResult(result *app.Result, outDir string) error {
	rec := recorder.New()

	events, err := os.Create(filepath.Join(outDir, eventsFile))
	if err != nil {
		return err
	}
	defer events.Close()
	if err := rec.WriteEvents(events, result.Format, result.Pairings); err != nil {
		return err
	}

	history, err := os.Create(filepath.Join(outDir, historyFile))
	if err != nil {
		return err
	}
	defer history.Close()
	return rec.WriteHistory(history, rec.HistoryRows(result.Date, result.Format, result.Pairings))
}
