// Package recorder renders a finished run into the produced row sets: the
// generated-event table and new history-feed rows. Rows are written in one
// shot after the whole run succeeds; a failed run produces nothing.
package recorder

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mistergarrison/debatematcher/internal/domain/model"
)

// adjudicatorJoin delimits panel members inside one generated-event cell.
const adjudicatorJoin = ", "

// Recorder renders one run's result rows under a shared run id.
type Recorder struct {
	runID string
}

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithRunID overrides the generated run id; useful in tests.
func WithRunID(id string) Option {
	return func(r *Recorder) {
		if id != "" {
			r.runID = id
		}
	}
}

// New creates a Recorder with a fresh run id.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		runID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunID returns the id every row of this run carries.
func (r *Recorder) RunID() string { return r.runID }

// EventHeader returns the generated-event table header for a format. The
// solo format carries a leading round column.
func EventHeader(format model.Format) []string {
	if format == model.FormatSolo {
		return []string{"id", "run_id", "round", "side_a", "side_b", "adjudicators", "venue"}
	}
	return []string{"id", "run_id", "side_a", "side_b", "adjudicators", "venue"}
}

// EventRows renders one generated-event row per pairing.
func (r *Recorder) EventRows(format model.Format, pairings []*model.Pairing) [][]string {
	rows := make([][]string, 0, len(pairings))
	for _, p := range pairings {
		sideB := model.NoOpponent
		if !p.IsBye() {
			sideB = p.SideB.Key
		}
		row := []string{uuid.NewString(), r.runID}
		if format == model.FormatSolo {
			row = append(row, strconv.Itoa(p.Round))
		}
		row = append(row, p.SideA.Key, sideB, strings.Join(p.Adjudicators, adjudicatorJoin), p.Venue)
		rows = append(rows, row)
	}
	return rows
}

// HistoryRows denormalizes the run into history-feed rows: one row per
// competitor per adjudicator per match. A BYE emits one row per member
// with empty adjudicator and venue.
func (r *Recorder) HistoryRows(date string, format model.Format, pairings []*model.Pairing) []model.HistoryRow {
	var rows []model.HistoryRow
	for _, p := range pairings {
		if p.IsBye() {
			for _, member := range p.SideA.Members {
				rows = append(rows, model.HistoryRow{
					Date:       date,
					Format:     format,
					Round:      p.Round,
					Competitor: member,
					Fallback:   p.SideA.Fallback,
					Opponent:   model.NoOpponent,
				})
			}
			continue
		}
		rows = append(rows, sideRows(date, format, p, p.SideA, model.SideA, p.SideB.Key)...)
		rows = append(rows, sideRows(date, format, p, p.SideB, model.SideB, p.SideA.Key)...)
	}
	return rows
}

func sideRows(date string, format model.Format, p *model.Pairing, unit *model.Unit, side model.Side, opponent string) []model.HistoryRow {
	adjudicators := p.Adjudicators
	if len(adjudicators) == 0 {
		adjudicators = []string{""}
	}
	rows := make([]model.HistoryRow, 0, len(unit.Members)*len(adjudicators))
	for _, member := range unit.Members {
		for _, adj := range adjudicators {
			rows = append(rows, model.HistoryRow{
				Date:        date,
				Format:      format,
				Round:       p.Round,
				Competitor:  member,
				Fallback:    unit.Fallback,
				Side:        side,
				Opponent:    opponent,
				Adjudicator: adj,
				Venue:       p.Venue,
			})
		}
	}
	return rows
}

// WriteEvents emits the generated-event table as CSV, header included.
func (r *Recorder) WriteEvents(w io.Writer, format model.Format, pairings []*model.Pairing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EventHeader(format)); err != nil {
		return fmt.Errorf("write events: %w", err)
	}
	for _, row := range r.EventRows(format, pairings) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write events: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHistory emits new history-feed rows as CSV, header included, in the
// same column order the history reader consumes.
func (r *Recorder) WriteHistory(w io.Writer, rows []model.HistoryRow) error {
	cw := csv.NewWriter(w)
	header := []string{"date", "format", "round", "competitor", "fallback", "side", "opponent", "adjudicator", "venue"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Date,
			string(row.Format),
			strconv.Itoa(row.Round),
			row.Competitor,
			strconv.FormatBool(row.Fallback),
			string(row.Side),
			row.Opponent,
			row.Adjudicator,
			row.Venue,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write history: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
