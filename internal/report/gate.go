package report

const (
	// GateOpensAt is the earliest point, in minutes before kickoff, at which the report is published.
	GateOpensAt = 1400
	// GateClosesAt is the exclusive upper bound of the publishing window.
	GateClosesAt = 1500
)

// Gate decides whether a report may be published at a given distance from kickoff
type Gate struct {
	Enforce bool
	Min     int
	Max     int
}

// NewGate returns the default 1400-1500 minute window, enforced only when production is true.
func NewGate(production bool) Gate {
	return Gate{Enforce: production, Min: GateOpensAt, Max: GateClosesAt}
}

// Allows reports whether publishing is permitted minutesToKickoff minutes before
// kickoff. An unenforced gate always allows.
func (g Gate) Allows(minutesToKickoff int) bool {
	if !g.Enforce {
		return true
	}
	return minutesToKickoff >= g.Min && minutesToKickoff < g.Max
}
