package match

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// HistoryLength is the number of past meetings shown in the head-to-head reply.
const HistoryLength = 5

// shootoutPattern matches the penalty counts fbref prints around a drawn score: "(4) 1–1 (3)".
var shootoutPattern = regexp.MustCompile(`^\(\d+\)\s*|\s*\(\d+\)$`)

// HeadToHeadRow is one raw row of the head-to-head history table
type HeadToHeadRow struct {
	Date        string `json:"date"`
	Competition string `json:"competition"`
	Home        string `json:"home"`
	Score       string `json:"score"`
	Away        string `json:"away"`
}

// HeadToHead is a played meeting between the primary team and the next opponent
type HeadToHead struct {
	Date        time.Time `json:"date"`
	Competition string    `json:"competition"`
	Home        string    `json:"home"`
	Away        string    `json:"away"`
	HomeGoals   int       `json:"home_goals"`
	AwayGoals   int       `json:"away_goals"`
	Outcome     Outcome   `json:"outcome"`
}

// ParseScore splits a "home-away" score into goal counts. fbref separates the two
// numbers with an en dash; a plain hyphen is accepted too.
func ParseScore(score string) (int, int, error) {
	s := shootoutPattern.ReplaceAllString(strings.TrimSpace(score), "")
	s = strings.ReplaceAll(s, "–", "-")

	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, errors.Wrapf(ErrFormat, "score %q does not have exactly one separator", score)
	}

	home, err := parseGoals(parts[0])
	if err != nil {
		return 0, 0, errors.Wrapf(ErrFormat, "score %q: home goals: %v", score, err)
	}
	away, err := parseGoals(parts[1])
	if err != nil {
		return 0, 0, errors.Wrapf(ErrFormat, "score %q: away goals: %v", score, err)
	}
	return home, away, nil
}

func parseGoals(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Newf("negative goal count %d", n)
	}
	return n, nil
}

// History keeps the first HistoryLength rows, in table order, that were played strictly
// before now, and classifies each for primaryTeam. Rows with an unreadable date or an
// empty score are skipped; the page lists the upcoming fixture itself without a score.
// Dates are read in now's location.
func History(rows []HeadToHeadRow, primaryTeam string, now time.Time) ([]HeadToHead, error) {
	meetings := make([]HeadToHead, 0, HistoryLength)

	for _, row := range rows {
		if len(meetings) == HistoryLength {
			break
		}

		date := ParseDate(row.Date, now.Location())
		if date.IsZero() || !date.Before(now) {
			continue
		}
		if strings.TrimSpace(row.Score) == "" {
			continue
		}

		home, away, err := ParseScore(row.Score)
		if err != nil {
			return nil, errors.Wrapf(err, "meeting on %s", row.Date)
		}

		meetings = append(meetings, HeadToHead{
			Date:        date,
			Competition: strings.TrimSpace(row.Competition),
			Home:        strings.TrimSpace(row.Home),
			Away:        strings.TrimSpace(row.Away),
			HomeGoals:   home,
			AwayGoals:   away,
			Outcome:     Classify(primaryTeam, row.Home, home, away),
		})
	}

	return meetings, nil
}
