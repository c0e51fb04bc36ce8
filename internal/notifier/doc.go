// Package notifier provides the publishing interface and its implementations.
//
// The notifier package posts pre-match messages to Twitter, optionally as a reply
// that continues a thread. It handles OAuth1 authentication and rejects messages
// over the platform's length limit rather than cutting them. A dry-run implementation prints messages instead.
package notifier
