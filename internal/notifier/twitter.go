package notifier

import (
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/fixture-bot/internal/config"
)

// TwitterNotifier posts messages to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a Twitter notifier authenticated with the account's
// OAuth1 credentials.
func NewTwitterNotifier(creds config.Credentials) (*TwitterNotifier, error) {
	if !creds.Complete() {
		return nil, errors.New("missing required Twitter credentials")
	}

	cfg := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	return newTwitterNotifier(cfg.Client(oauth1.NoContext, token)), nil
}

func newTwitterNotifier(httpClient *http.Client) *TwitterNotifier {
	return &TwitterNotifier{client: twitter.NewClient(httpClient)}
}

// Post publishes a tweet. When msg.InReplyTo is set the tweet is threaded under it
// and Twitter fills in the reply mentions.
func (n *TwitterNotifier) Post(msg Message) (string, error) {
	if err := checkLength(msg.Text); err != nil {
		return "", err
	}

	params := &twitter.StatusUpdateParams{}

	if msg.InReplyTo != "" {
		id, err := strconv.ParseInt(msg.InReplyTo, 10, 64)
		if err != nil {
			return "", errors.Wrapf(err, "invalid reply id %q", msg.InReplyTo)
		}
		params.InReplyToStatusID = id
		params.AutoPopulateReplyMetadata = twitter.Bool(true)
	}

	tweet, _, err := n.client.Statuses.Update(msg.Text, params)
	if err != nil {
		return "", errors.Wrap(err, "failed to post tweet")
	}

	if tweet.IDStr != "" {
		return tweet.IDStr, nil
	}
	return strconv.FormatInt(tweet.ID, 10), nil
}
