package match

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// FormLength is the number of played matches shown as recent form.
const FormLength = 5

// Fixture is one row of the season's scores and fixtures table
type Fixture struct {
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Kickoff      time.Time `json:"kickoff"`
	Competition  string    `json:"competition"`
	Round        string    `json:"round,omitempty"`
	Venue        string    `json:"venue"`
	Opponent     string    `json:"opponent"`
	Result       string    `json:"result,omitempty"`
	GoalsFor     string    `json:"goals_for,omitempty"`
	GoalsAgainst string    `json:"goals_against,omitempty"`
	Captain      string    `json:"captain,omitempty"` // empty until the match is played
	ReportLink   string    `json:"report_link,omitempty"`
}

// IsUpcoming reports whether the fixture is still to be played.
func (f Fixture) IsUpcoming() bool {
	return strings.TrimSpace(f.Captain) == ""
}

// HeadToHeadURL returns the absolute URL of the fixture's match report cell.
// Before kickoff fbref points that cell at the head-to-head history page.
func (f Fixture) HeadToHeadURL(baseURL string) (string, error) {
	link := strings.TrimSpace(f.ReportLink)
	if link == "" {
		return "", errors.Wrapf(ErrParsing, "fixture %s vs %s has no match report link", f.Date, f.Opponent)
	}
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link, nil
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(link, "/"), nil
}

// Result is one row of the completed matches table
type Result struct {
	Date     string `json:"date"`
	GoalsFor string `json:"goals_for,omitempty"` // empty when not yet played
	Result   string `json:"result,omitempty"`
}

// IsPlayed reports whether the row carries a score.
func (r Result) IsPlayed() bool {
	return strings.TrimSpace(r.GoalsFor) != ""
}

// NextFixture returns the first fixture, in source order, that has no captain recorded.
func NextFixture(fixtures []Fixture) (Fixture, error) {
	for _, f := range fixtures {
		if !f.IsUpcoming() {
			continue
		}
		if f.Kickoff.IsZero() {
			return Fixture{}, errors.Wrapf(ErrParsing, "next fixture against %s has unreadable date %q", f.Opponent, f.Date)
		}
		return f, nil
	}
	return Fixture{}, ErrNoUpcomingFixture
}

// Form returns the outcomes of the last FormLength played matches, oldest first.
func Form(results []Result) ([]Outcome, error) {
	played := make([]Outcome, 0, len(results))
	for _, r := range results {
		if !r.IsPlayed() {
			continue
		}
		o, err := ParseOutcome(r.Result)
		if err != nil {
			return nil, errors.Wrapf(err, "result on %s", r.Date)
		}
		played = append(played, o)
	}

	if len(played) > FormLength {
		played = played[len(played)-FormLength:]
	}
	return played, nil
}
