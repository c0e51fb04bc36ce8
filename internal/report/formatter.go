package report

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/fixture-bot/internal/match"
)

// FormatFixture builds the first post: the next fixture and the team's recent form.
//
//	🔔 NEXT FIXTURE
//	Leeds United (Home) in the Premier League
//
//	@ManUtd's recent form
//	 ✅ ❌ ➖
func FormatFixture(r *match.Report, handle string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔔 NEXT FIXTURE\n%s (%s) in the %s", r.Next.Opponent, r.Next.Venue, r.Next.Competition)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "@%s's recent form\n %s\n", strings.TrimPrefix(handle, "@"), FormatForm(r.Form))

	return b.String()
}

// FormatForm joins the outcome emojis, oldest first.
func FormatForm(form []match.Outcome) string {
	emojis := make([]string, len(form))
	for i, o := range form {
		emojis[i] = o.Emoji()
	}
	return strings.Join(emojis, " ")
}

// FormatHeadToHead builds the threaded reply listing previous meetings.
func FormatHeadToHead(meetings []match.HeadToHead) string {
	var b strings.Builder

	b.WriteString("PREVIOUS RESULTS\n\n")
	for _, m := range meetings {
		fmt.Fprintf(&b, "%s  %s  %d-%d  %s\n", m.Outcome.Emoji(), m.Home, m.HomeGoals, m.AwayGoals, m.Away)
	}

	return b.String()
}
