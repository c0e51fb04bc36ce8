package notifier

import (
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Message is one post to publish
type Message struct {
	Text string
	// InReplyTo is the id of the post this one continues, empty for a new thread.
	InReplyTo string
}

// Notifier defines the interface for publishing messages
type Notifier interface {
	// Post publishes msg and returns the id of the created post
	Post(msg Message) (string, error)
}

// MaxLength is the longest message the platform accepts, in characters.
const MaxLength = 280

// ErrTooLong is returned instead of posting a message longer than MaxLength.
var ErrTooLong = errors.New("message too long")

// checkLength rejects text over MaxLength characters
func checkLength(text string) error {
	if n := utf8.RuneCountInString(text); n > MaxLength {
		return errors.Wrapf(ErrTooLong, "%d characters, limit %d", n, MaxLength)
	}
	return nil
}
