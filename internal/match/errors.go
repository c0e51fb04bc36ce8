package match

import "github.com/cockroachdb/errors"

var (
	// ErrParsing marks a record or column that does not have the expected shape.
	ErrParsing = errors.New("parsing error")

	// ErrFormat marks a score string that cannot be split into two goal counts.
	ErrFormat = errors.New("format error")

	// ErrNoUpcomingFixture is returned when every fixture of the season has been played.
	ErrNoUpcomingFixture = errors.New("no upcoming fixture")
)
