package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/fixture-bot/internal/match"
	"github.com/pfrederiksen/fixture-bot/internal/report"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	GeneratedAt      time.Time          `json:"generated_at"`
	Next             match.Fixture      `json:"next_fixture"`
	Form             []match.Outcome    `json:"form"`
	HeadToHead       []match.HeadToHead `json:"head_to_head"`
	MinutesToKickoff int                `json:"minutes_to_kickoff"`
	WouldPublish     bool               `json:"would_publish"`
	FixturePost      string             `json:"fixture_post"`
	HistoryPost      string             `json:"history_post"`
}

// NewOutputResult renders both posts of a report and evaluates the gate against it.
func NewOutputResult(r *match.Report, handle string, gate report.Gate) *OutputResult {
	return &OutputResult{
		GeneratedAt:      r.GeneratedAt,
		Next:             r.Next,
		Form:             r.Form,
		HeadToHead:       r.HeadToHead,
		MinutesToKickoff: r.MinutesToKickoff,
		WouldPublish:     gate.Allows(r.MinutesToKickoff),
		FixturePost:      report.FormatFixture(r, handle),
		HistoryPost:      report.FormatHeadToHead(r.HeadToHead),
	}
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return errors.Newf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs both posts separated by a rule
func writeText(w io.Writer, result *OutputResult) error {
	window := "outside publishing window"
	if result.WouldPublish {
		window = "inside publishing window"
	}

	fmt.Fprintf(w, "Kickoff in %d minutes (%s)\n\n", result.MinutesToKickoff, window)
	fmt.Fprint(w, result.FixturePost)
	fmt.Fprintln(w, "----")
	fmt.Fprint(w, result.HistoryPost)
	return nil
}
