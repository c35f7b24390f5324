// Package feed reads the consumed, row-oriented external feeds: roster,
// attendance, and history. All readers expect a header row and are
// read-only; nothing here writes back.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mistergarrison/debatematcher/internal/domain/model"
)

// conflictSeparator delimits entries of an adjudicator's conflict set
// inside a single roster cell.
const conflictSeparator = ";"

// statusPresent is the only attendance status visible to the engine.
const statusPresent = "present"

// Column counts per feed.
const (
	competitorColumns  = 4 // name, format, partner, novice
	adjudicatorColumns = 3 // name, format, conflicts
	venueColumns       = 2 // name, format
	attendanceColumns  = 2 // name, status
	historyColumns     = 9 // date, format, round, competitor, fallback, side, opponent, adjudicator, venue
)

// ReadCompetitors parses competitor roster rows.
func ReadCompetitors(r io.Reader) ([]model.Competitor, error) {
	rows, err := readRows(r, "competitors", competitorColumns)
	if err != nil {
		return nil, err
	}
	competitors := make([]model.Competitor, 0, len(rows))
	for _, row := range rows {
		competitors = append(competitors, model.Competitor{
			Name:    strings.TrimSpace(row[0]),
			Format:  model.Format(strings.TrimSpace(row[1])),
			Partner: strings.TrimSpace(row[2]),
			Novice:  parseBool(row[3]),
		})
	}
	return competitors, nil
}

// ReadAdjudicators parses adjudicator roster rows. The conflict set is a
// single delimited cell.
func ReadAdjudicators(r io.Reader) ([]model.Adjudicator, error) {
	rows, err := readRows(r, "adjudicators", adjudicatorColumns)
	if err != nil {
		return nil, err
	}
	adjudicators := make([]model.Adjudicator, 0, len(rows))
	for _, row := range rows {
		adjudicators = append(adjudicators, model.Adjudicator{
			Name:      strings.TrimSpace(row[0]),
			Format:    model.Format(strings.TrimSpace(row[1])),
			Conflicts: splitConflicts(row[2]),
		})
	}
	return adjudicators, nil
}

// ReadVenues parses venue roster rows.
func ReadVenues(r io.Reader) ([]model.Venue, error) {
	rows, err := readRows(r, "venues", venueColumns)
	if err != nil {
		return nil, err
	}
	venues := make([]model.Venue, 0, len(rows))
	for _, row := range rows {
		venues = append(venues, model.Venue{
			Name:   strings.TrimSpace(row[0]),
			Format: model.Format(strings.TrimSpace(row[1])),
		})
	}
	return venues, nil
}

// ReadAttendance parses the attendance feed into the set of present
// identities. Absent and unknown rows are invisible to the engine.
func ReadAttendance(r io.Reader) (map[string]bool, error) {
	rows, err := readRows(r, "attendance", attendanceColumns)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(rows))
	for _, row := range rows {
		if strings.EqualFold(strings.TrimSpace(row[1]), statusPresent) {
			present[strings.TrimSpace(row[0])] = true
		}
	}
	return present, nil
}

// ReadHistory parses the history feed. One real panel match appears as N
// rows differing only by adjudicator; grouping them back together is the
// aggregator's job, not the reader's.
func ReadHistory(r io.Reader) ([]model.HistoryRow, error) {
	rows, err := readRows(r, "history", historyColumns)
	if err != nil {
		return nil, err
	}
	history := make([]model.HistoryRow, 0, len(rows))
	for i, row := range rows {
		round, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: history row %d: bad round %q", ErrParse, i+1, row[2])
		}
		history = append(history, model.HistoryRow{
			Date:        strings.TrimSpace(row[0]),
			Format:      model.Format(strings.TrimSpace(row[1])),
			Round:       round,
			Competitor:  strings.TrimSpace(row[3]),
			Fallback:    parseBool(row[4]),
			Side:        model.Side(strings.TrimSpace(row[5])),
			Opponent:    strings.TrimSpace(row[6]),
			Adjudicator: strings.TrimSpace(row[7]),
			Venue:       strings.TrimSpace(row[8]),
		})
	}
	return history, nil
}

// readRows reads all data rows of a feed, skipping the header.
func readRows(r io.Reader, feed string, columns int) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columns
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s feed: %v", ErrParse, feed, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil // drop header
}

func splitConflicts(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, conflictSeparator)
	conflicts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			conflicts = append(conflicts, p)
		}
	}
	return conflicts
}

func parseBool(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}
