package match

import (
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/unicode/norm"
)

// Outcome is a match result from the primary team's point of view.
type Outcome string

const (
	Win  Outcome = "W"
	Draw Outcome = "D"
	Loss Outcome = "L"
)

// Emoji returns the symbol used for the outcome in published messages.
func (o Outcome) Emoji() string {
	switch o {
	case Win:
		return "✅"
	case Draw:
		return "➖"
	case Loss:
		return "❌"
	}
	return "?"
}

// ParseOutcome converts a result code from the fixtures table ("W", "D", "L").
func ParseOutcome(code string) (Outcome, error) {
	switch o := Outcome(strings.ToUpper(strings.TrimSpace(code))); o {
	case Win, Draw, Loss:
		return o, nil
	}
	return "", errors.Wrapf(ErrParsing, "unknown result code %q", code)
}

// Classify returns the outcome of a meeting for primaryTeam.
//
// Only a home win by a side other than primaryTeam counts as a loss; every other
// decided match is reported as a win. A defeat while primaryTeam plays at home
// therefore shows up as a win. This mirrors the long-standing published feed.
func Classify(primaryTeam, home string, homeGoals, awayGoals int) Outcome {
	if homeGoals == awayGoals {
		return Draw
	} else if homeGoals > awayGoals && !SameTeam(home, primaryTeam) {
		return Loss
	}
	return Win
}

// SameTeam reports whether two team names as printed by fbref refer to the same side.
func SameTeam(a, b string) bool {
	return norm.NFC.String(strings.TrimSpace(a)) == norm.NFC.String(strings.TrimSpace(b))
}
