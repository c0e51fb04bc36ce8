package match

import "time"

// Report holds everything the pre-match messages are built from. It is derived
// fresh on every cycle and never stored.
type Report struct {
	Form             []Outcome    `json:"form"`
	Next             Fixture      `json:"next"`
	HeadToHead       []HeadToHead `json:"head_to_head"`
	MinutesToKickoff int          `json:"minutes_to_kickoff"`
	GeneratedAt      time.Time    `json:"generated_at"`
}

// MinutesToKickoff returns the whole minutes from now until kickoff, truncated
// toward zero. Negative once the match has started.
func MinutesToKickoff(kickoff, now time.Time) int {
	return int(kickoff.Sub(now) / time.Minute)
}
