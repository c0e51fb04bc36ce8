package notifier

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DryRunNotifier prints what would be posted without contacting any platform
type DryRunNotifier struct {
	out   io.Writer
	count int
}

// NewDryRunNotifier creates a dry-run notifier writing to out, or stdout when out is nil.
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out}
}

// Post prints the message and returns a synthetic id
func (n *DryRunNotifier) Post(msg Message) (string, error) {
	if err := checkLength(msg.Text); err != nil {
		return "", err
	}
	n.count++
	id := fmt.Sprintf("dry-run-%d", n.count)
	text := msg.Text

	if msg.InReplyTo != "" {
		fmt.Fprintf(n.out, "--- Post %s (reply to %s) ---\n", id, msg.InReplyTo)
	} else {
		fmt.Fprintf(n.out, "--- Post %s ---\n", id)
	}
	fmt.Fprintln(n.out, strings.TrimRight(text, "\n"))
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", len([]rune(text)))

	return id, nil
}
