// Package precheck validates roster integrity before a run starts. The
// engine itself never re-checks these rules.
package precheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mistergarrison/debatematcher/internal/domain/model"
)

// ErrIntegrity is the sentinel kind for every roster integrity finding.
var ErrIntegrity = errors.New("roster integrity")

// Check inspects one format's roster and returns a single descriptive
// error listing every finding, or nil when the roster is sound.
func Check(roster model.Roster) error {
	var findings []string

	competitors := make(map[string]model.Competitor, len(roster.Competitors))
	for _, c := range roster.Competitors {
		if _, dup := competitors[c.Name]; dup {
			findings = append(findings, fmt.Sprintf("duplicate competitor %q", c.Name))
			continue
		}
		competitors[c.Name] = c
	}

	adjudicators := make(map[string]bool, len(roster.Adjudicators))
	for _, a := range roster.Adjudicators {
		if adjudicators[a.Name] {
			findings = append(findings, fmt.Sprintf("duplicate adjudicator %q", a.Name))
			continue
		}
		adjudicators[a.Name] = true
		if _, both := competitors[a.Name]; both {
			findings = append(findings, fmt.Sprintf("%q is listed as both adjudicator and competitor", a.Name))
		}
		for _, conflict := range a.Conflicts {
			if _, known := competitors[conflict]; !known {
				findings = append(findings, fmt.Sprintf("adjudicator %q conflict %q is not on the roster", a.Name, conflict))
			}
		}
	}

	venues := make(map[string]bool, len(roster.Venues))
	for _, v := range roster.Venues {
		if venues[v.Name] {
			findings = append(findings, fmt.Sprintf("duplicate venue %q", v.Name))
		}
		venues[v.Name] = true
	}

	for _, c := range roster.Competitors {
		if c.Partner == "" {
			continue
		}
		partner, known := competitors[c.Partner]
		if !known {
			findings = append(findings, fmt.Sprintf("competitor %q declares unknown partner %q", c.Name, c.Partner))
			continue
		}
		if partner.Partner != c.Name {
			findings = append(findings, fmt.Sprintf("partnership %q -> %q is not mutual", c.Name, c.Partner))
		} else if partner.Novice != c.Novice && c.Name < partner.Name {
			// report a mismatched pair once, from its first member
			findings = append(findings, fmt.Sprintf("partners %q and %q are in different skill tiers", c.Name, partner.Name))
		}
	}

	if len(findings) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrIntegrity, strings.Join(findings, "; "))
}
