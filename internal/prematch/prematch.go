// Package prematch runs one pre-match report cycle: extract the team's season tables,
// derive the report facts, and hand them to the publisher.
//
// A Service holds no state between cycles. It implements scheduler.Job so a cron
// schedule can drive it; RunCycle can also be called directly for a one-off run.
package prematch

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/fixture-bot/internal/logger"
	"github.com/pfrederiksen/fixture-bot/internal/match"
	"github.com/pfrederiksen/fixture-bot/internal/report"
	"github.com/pfrederiksen/fixture-bot/internal/scraper"
)

// Extractor reads the team and head-to-head pages
type Extractor interface {
	Extract(teamURL string) (*scraper.Season, error)
	FetchHeadToHead(url string) ([]match.HeadToHeadRow, error)
}

// Publisher publishes a derived report
type Publisher interface {
	Publish(r *match.Report) (report.Status, error)
}

// Options configures which team a Service reports on
type Options struct {
	TeamURL     string
	BaseURL     string
	PrimaryTeam string
	Location    *time.Location
}

// Service runs pre-match report cycles
type Service struct {
	extractor Extractor
	publisher Publisher
	opts      Options
	now       func() time.Time
}

// New creates a Service. publisher may be nil when only Derive is used.
func New(extractor Extractor, publisher Publisher, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{
		extractor: extractor,
		publisher: publisher,
		opts:      opts,
		now:       time.Now,
	}
}

// WithClock replaces the time source, for tests and backfills.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Name implements scheduler.Job
func (s *Service) Name() string {
	return "prematch-report"
}

// Run implements scheduler.Job
func (s *Service) Run() error {
	_, err := s.RunCycle()
	return err
}

// RunCycle derives the current report and publishes it.
func (s *Service) RunCycle() (report.Status, error) {
	if s.publisher == nil {
		return report.Status{}, errors.New("no publisher configured")
	}

	start := time.Now()
	defer func() {
		logger.RecordTiming("cycle", time.Since(start))
	}()

	r, err := s.Derive()
	if errors.Is(err, match.ErrNoUpcomingFixture) {
		logger.Info("No upcoming fixture, nothing to publish", nil)
		logger.IncrCounter("cycles.skipped")
		return report.Status{Reason: "no upcoming fixture"}, nil
	}
	if err != nil {
		logger.IncrCounter("cycles.failed")
		return report.Status{}, err
	}

	status, err := s.publisher.Publish(r)
	if err != nil {
		logger.IncrCounter("cycles.failed")
		return status, errors.Wrap(err, "publishing report")
	}

	if status.Published {
		logger.IncrCounter("cycles.published")
	} else {
		logger.IncrCounter("cycles.skipped")
	}
	return status, nil
}

// Derive fetches the pages and builds the report without publishing it.
func (s *Service) Derive() (*match.Report, error) {
	now := s.now().In(s.opts.Location)

	season, err := s.extractor.Extract(s.opts.TeamURL)
	if err != nil {
		return nil, errors.Wrap(err, "extracting season")
	}

	next, err := match.NextFixture(season.Fixtures)
	if err != nil {
		return nil, errors.Wrap(err, "finding next fixture")
	}

	form, err := match.Form(season.Results)
	if err != nil {
		return nil, errors.Wrap(err, "computing form")
	}

	h2hURL, err := next.HeadToHeadURL(s.opts.BaseURL)
	if err != nil {
		return nil, err
	}

	rows, err := s.extractor.FetchHeadToHead(h2hURL)
	if err != nil {
		return nil, errors.Wrap(err, "extracting head-to-head")
	}

	meetings, err := match.History(rows, s.opts.PrimaryTeam, now)
	if err != nil {
		return nil, errors.Wrap(err, "reading head-to-head")
	}

	minutes := match.MinutesToKickoff(next.Kickoff, now)
	logger.SetGauge("minutes_to_kickoff", float64(minutes))
	logger.Info("Derived pre-match report", logger.Fields{
		"opponent":           next.Opponent,
		"competition":        next.Competition,
		"kickoff":            next.Kickoff.Format(time.RFC3339),
		"minutes_to_kickoff": minutes,
		"form":               len(form),
		"meetings":           len(meetings),
	})

	return &match.Report{
		Form:             form,
		Next:             next,
		HeadToHead:       meetings,
		MinutesToKickoff: minutes,
		GeneratedAt:      now,
	}, nil
}
