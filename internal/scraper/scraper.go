package scraper

import (
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/fixture-bot/internal/logger"
	"github.com/pfrederiksen/fixture-bot/internal/match"
)

const (
	TeamPageURL = "https://fbref.com/en/squads/19538871/all_comps/Manchester-United-Stats-All-Competitions"
	BaseURL     = "https://fbref.com"
	UserAgent   = "fixture-bot/1.0 (github.com/pfrederiksen/fixture-bot)"
	Timeout     = 30 * time.Second

	// FixturesPattern selects the scores and fixtures table: upcoming rows link to a
	// head-to-head page from their match report cell.
	FixturesPattern = "Head-to-Head"

	// ResultsPattern selects the results table on the team page and the meetings
	// table on a head-to-head page.
	ResultsPattern = "Match Report"
)

// ErrExtraction is returned when a page has no table matching a required pattern.
var ErrExtraction = errors.New("extraction error")

// Scraper handles fetching and parsing fbref team and head-to-head pages
type Scraper struct {
	client *http.Client
	loc    *time.Location
}

// Season holds the normalized tables of one team page
type Season struct {
	URL      string          `json:"url"`
	Fixtures []match.Fixture `json:"fixtures"`
	Results  []match.Result  `json:"results"`
}

// New creates a new Scraper. Kickoff times are read in loc, the team's home timezone.
func New(loc *time.Location) *Scraper {
	if loc == nil {
		loc = time.UTC
	}
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		loc: loc,
	}
}

// FetchTables fetches url and returns every table whose text matches pattern, in
// document order.
func (s *Scraper) FetchTables(url, pattern string) ([]Table, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling pattern %q", pattern)
	}

	doc, err := s.fetchDocument(url)
	if err != nil {
		return nil, err
	}
	return findTables(doc, re), nil
}

// Extract fetches the team's season page once and reads both the fixtures table and
// the results table from it.
func (s *Scraper) Extract(teamURL string) (*Season, error) {
	doc, err := s.fetchDocument(teamURL)
	if err != nil {
		return nil, err
	}

	season, err := s.parseSeason(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "extracting %s", teamURL)
	}
	season.URL = teamURL

	logger.Debug("Extracted season tables", logger.Fields{
		"url":      teamURL,
		"fixtures": len(season.Fixtures),
		"results":  len(season.Results),
	})
	return season, nil
}

// FetchHeadToHead fetches a head-to-head page and returns its meetings table rows.
func (s *Scraper) FetchHeadToHead(url string) ([]match.HeadToHeadRow, error) {
	tables, err := s.FetchTables(url, ResultsPattern)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, errors.Wrapf(ErrExtraction, "no table matching %q in %s", ResultsPattern, url)
	}

	rows, err := parseHeadToHead(&tables[0])
	if err != nil {
		return nil, errors.Wrapf(err, "extracting %s", url)
	}
	return rows, nil
}

// fetchDocument performs the GET request and parses the response body
func (s *Scraper) fetchDocument(url string) (*goquery.Document, error) {
	start := time.Now()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := parseDocument(resp.Body)
	if err != nil {
		return nil, err
	}

	logger.RecordTiming("scraper.fetch", time.Since(start))
	return doc, nil
}

func parseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing HTML")
	}
	return doc, nil
}

// parseSeason reads the fixtures and results tables from a team page
func (s *Scraper) parseSeason(doc *goquery.Document) (*Season, error) {
	fixturesTable, err := firstTable(doc, FixturesPattern)
	if err != nil {
		return nil, err
	}
	fixtures, err := parseFixtures(fixturesTable, s.loc)
	if err != nil {
		return nil, err
	}

	resultsTable, err := firstTable(doc, ResultsPattern)
	if err != nil {
		return nil, err
	}
	results, err := parseResults(resultsTable)
	if err != nil {
		return nil, err
	}

	return &Season{Fixtures: fixtures, Results: results}, nil
}

// firstTable returns the first table matching pattern, or ErrExtraction
func firstTable(doc *goquery.Document, pattern string) (*Table, error) {
	tables := findTables(doc, regexp.MustCompile(pattern))
	if len(tables) == 0 {
		return nil, errors.Wrapf(ErrExtraction, "no table matching %q", pattern)
	}
	return &tables[0], nil
}

func parseFixtures(t *Table, loc *time.Location) ([]match.Fixture, error) {
	if err := t.Require("Date", "Time", "Comp", "Venue", "Opponent", "Captain", "Match Report"); err != nil {
		return nil, err
	}

	fixtures := make([]match.Fixture, 0, len(t.Rows))
	for i := range t.Rows {
		date := t.Text(i, "Date")
		clock := t.Text(i, "Time")
		fixtures = append(fixtures, match.Fixture{
			Date:         date,
			Time:         clock,
			Kickoff:      match.ParseKickoff(date, clock, loc),
			Competition:  t.Text(i, "Comp"),
			Round:        t.Text(i, "Round"),
			Venue:        t.Text(i, "Venue"),
			Opponent:     t.Text(i, "Opponent"),
			Result:       t.Text(i, "Result"),
			GoalsFor:     t.Text(i, "GF"),
			GoalsAgainst: t.Text(i, "GA"),
			Captain:      t.Text(i, "Captain"),
			ReportLink:   t.Cell(i, "Match Report").Href,
		})
	}
	return fixtures, nil
}

func parseResults(t *Table) ([]match.Result, error) {
	if err := t.Require("GF", "Result"); err != nil {
		return nil, err
	}

	results := make([]match.Result, 0, len(t.Rows))
	for i := range t.Rows {
		results = append(results, match.Result{
			Date:     t.Text(i, "Date"),
			GoalsFor: t.Text(i, "GF"),
			Result:   t.Text(i, "Result"),
		})
	}
	return results, nil
}

func parseHeadToHead(t *Table) ([]match.HeadToHeadRow, error) {
	if err := t.Require("Date", "Home", "Score", "Away"); err != nil {
		return nil, err
	}

	rows := make([]match.HeadToHeadRow, 0, len(t.Rows))
	for i := range t.Rows {
		rows = append(rows, match.HeadToHeadRow{
			Date:        t.Text(i, "Date"),
			Competition: t.Text(i, "Comp"),
			Home:        t.Text(i, "Home"),
			Score:       t.Text(i, "Score"),
			Away:        t.Text(i, "Away"),
		})
	}
	return rows, nil
}
