package report

import (
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/fixture-bot/internal/logger"
	"github.com/pfrederiksen/fixture-bot/internal/match"
	"github.com/pfrederiksen/fixture-bot/internal/notifier"
)

// Status describes what a Publish call did
type Status struct {
	Published bool   `json:"published"`
	Reason    string `json:"reason,omitempty"`
	FixtureID string `json:"fixture_post_id,omitempty"`
	HistoryID string `json:"history_post_id,omitempty"`
}

// Publisher sends the pre-match report through a notifier
type Publisher struct {
	notifier notifier.Notifier
	gate     Gate
	handle   string
}

// NewPublisher creates a Publisher. handle is the team's account name used in the form line.
func NewPublisher(n notifier.Notifier, gate Gate, handle string) *Publisher {
	return &Publisher{notifier: n, gate: gate, handle: handle}
}

// Publish posts the fixture message and threads the head-to-head message under it.
// A report outside the gate window is skipped without error. If the reply fails the
// first post stays up on its own.
func (p *Publisher) Publish(r *match.Report) (Status, error) {
	if !p.gate.Allows(r.MinutesToKickoff) {
		logger.Info("Outside publishing window, skipping", logger.Fields{
			"opponent":           r.Next.Opponent,
			"minutes_to_kickoff": r.MinutesToKickoff,
		})
		return Status{Reason: "outside publishing window"}, nil
	}

	fixtureID, err := p.notifier.Post(notifier.Message{Text: FormatFixture(r, p.handle)})
	if err != nil {
		return Status{}, errors.Wrap(err, "publishing fixture post")
	}

	historyID, err := p.notifier.Post(notifier.Message{
		Text:      FormatHeadToHead(r.HeadToHead),
		InReplyTo: fixtureID,
	})
	if err != nil {
		return Status{FixtureID: fixtureID}, errors.Wrapf(err, "publishing head-to-head reply to %s", fixtureID)
	}

	logger.Info("Published pre-match report", logger.Fields{
		"opponent":        r.Next.Opponent,
		"fixture_post_id": fixtureID,
		"history_post_id": historyID,
	})
	return Status{Published: true, FixtureID: fixtureID, HistoryID: historyID}, nil
}
