// Package report formats and publishes the pre-match report.
//
// A report is published as two posts: the next fixture with the primary team's
// recent form, and a threaded reply listing previous meetings with the opponent.
// Publication is gated to a window roughly one day before kickoff when running in
// production, so a scheduler may call Publish repeatedly without flooding the feed.
package report
