// Package model contains domain models passed between layers.
package model

import (
	"sort"
	"strings"
)

// Format identifies which event style a row or run belongs to.
type Format string

// Supported event formats.
const (
	// FormatTeam is the partnered two-person format, one round per event.
	FormatTeam Format = "team"
	// FormatSolo is the single-competitor format, two sequential rounds per event.
	FormatSolo Format = "solo"
)

// Side labels the two opposing positions of a pairing.
type Side string

// Sides of a pairing.
const (
	SideA Side = "A"
	SideB Side = "B"
)

// NoOpponent marks a unit sitting out a round in history and output rows.
const NoOpponent = "BYE"

// unitKeySeparator joins member names into a unit key.
const unitKeySeparator = " & "

// Competitor is one person on the roster. Immutable for the run.
type Competitor struct {
	Name    string
	Format  Format
	Partner string // declared partner, team format only
	Novice  bool   // skill-tier flag, soft pairing preference only
}

// Adjudicator is one person eligible to judge pairings of a format.
type Adjudicator struct {
	Name      string
	Format    Format
	Conflicts []string // competitor names this adjudicator may never evaluate
}

// Venue is a room available to a format.
type Venue struct {
	Name   string
	Format Format
}

// Roster bundles everything the pre-check and the engine consume for one format.
type Roster struct {
	Competitors  []Competitor
	Adjudicators []Adjudicator
	Venues       []Venue
}

// Stats is the per-competitor slice of a history view: how often they sat
// out, which sides they took, whom they met, and who judged them.
type Stats struct {
	Byes         int
	Sides        map[Side]int
	Opponents    map[string]int // past opposing-unit key -> encounters
	Adjudicators map[string]int // adjudicator name -> times judged by
}

// NewStats returns an empty Stats with all maps allocated.
func NewStats() *Stats {
	return &Stats{
		Sides:        make(map[Side]int),
		Opponents:    make(map[string]int),
		Adjudicators: make(map[string]int),
	}
}

// Clone returns an independent deep copy.
func (s *Stats) Clone() *Stats {
	c := &Stats{
		Byes:         s.Byes,
		Sides:        make(map[Side]int, len(s.Sides)),
		Opponents:    make(map[string]int, len(s.Opponents)),
		Adjudicators: make(map[string]int, len(s.Adjudicators)),
	}
	for k, v := range s.Sides {
		c.Sides[k] = v
	}
	for k, v := range s.Opponents {
		c.Opponents[k] = v
	}
	for k, v := range s.Adjudicators {
		c.Adjudicators[k] = v
	}
	return c
}

// Unit is the entity actually paired in a round: a solo competitor, a
// partnered team, or a one-member fallback when the partner is absent.
type Unit struct {
	Key      string
	Members  []string
	Novice   bool
	Fallback bool
	Stats    *Stats // inherited history, never nil after formation
}

// UnitKey canonicalizes member names into a unit identity. Members are
// sorted lexicographically before joining so formation order never changes
// the key a later run looks up in history.
func UnitKey(members ...string) string {
	sorted := make([]string, len(members))
	copy(sorted, members)
	sort.Strings(sorted)
	return strings.Join(sorted, unitKeySeparator)
}

// Pairing is one match of a round. The optimizer creates it with sides and
// penalty set; the resource assignor fills adjudicators and venue; it is
// terminal once handed back for persistence.
type Pairing struct {
	Round        int
	SideA        *Unit
	SideB        *Unit // nil when SideA sits out the round
	Adjudicators []string
	Venue        string
	Penalty      int
}

// IsBye reports whether the pairing has no opponent.
func (p *Pairing) IsBye() bool { return p.SideB == nil }

// Key renders the pairing identity for logs and errors.
func (p *Pairing) Key() string {
	if p.IsBye() {
		return p.SideA.Key + " vs " + NoOpponent
	}
	return p.SideA.Key + " vs " + p.SideB.Key
}

// Competitors returns every competitor name on either side.
func (p *Pairing) Competitors() []string {
	names := make([]string, 0, 4)
	names = append(names, p.SideA.Members...)
	if p.SideB != nil {
		names = append(names, p.SideB.Members...)
	}
	return names
}

// Primary returns the first assigned adjudicator, or empty if none.
func (p *Pairing) Primary() string {
	if len(p.Adjudicators) == 0 {
		return ""
	}
	return p.Adjudicators[0]
}

// HistoryRow is one observation from the external history feed. A real
// panel match appears as N rows differing only by adjudicator.
type HistoryRow struct {
	Date        string
	Format      Format
	Round       int
	Competitor  string
	Fallback    bool
	Side        Side
	Opponent    string // opposing-unit key, or NoOpponent
	Adjudicator string // may be empty
	Venue       string // may be empty
}
