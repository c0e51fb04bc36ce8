package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const previewTeamPage = `<table>
<thead><tr><th>Date</th><th>Time</th><th>Comp</th><th>Venue</th><th>Result</th><th>GF</th><th>Opponent</th><th>Captain</th><th>Match Report</th></tr></thead>
<tbody>
<tr><td>2026-09-20</td><td>15:00</td><td>Premier League</td><td>Home</td><td>W</td><td>3</td><td>Burnley</td><td>Bruno Fernandes</td><td><a href="/m/1">Match Report</a></td></tr>
<tr><td>2099-01-01</td><td>12:30</td><td>Premier League</td><td>Away</td><td></td><td></td><td>Chelsea</td><td></td><td><a href="/h2h/chelsea">Head-to-Head</a></td></tr>
</tbody>
</table>`

const previewHeadToHeadPage = `<table>
<thead><tr><th>Date</th><th>Home</th><th>Score</th><th>Away</th><th>Match Report</th></tr></thead>
<tbody>
<tr><td>2025-05-16</td><td>Chelsea</td><td>1–0</td><td>Manchester Utd</td><td>Match Report</td></tr>
</tbody>
</table>`

// clearEnv unsets variables so neither the environment nor a stray .env file leaks in
func clearEnv(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	for _, key := range []string{
		"APP_ENV", "TWITTER_API_KEY", "TWITTER_API_SECRET", "TWITTER_ACCESS_TOKEN",
		"TWITTER_ACCESS_SECRET", "TEAM_URL", "SITE_BASE_URL", "PRIMARY_TEAM", "TEAM_HANDLE",
		"TEAM_TIMEZONE", "SCHEDULE", "LOG_LEVEL", "LOG_PRETTY", "DRY_RUN",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// newSite serves the team and head-to-head pages and points the environment at them
func newSite(t *testing.T) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/team", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(previewTeamPage)) // nolint:errcheck
	})
	mux.HandleFunc("/h2h/chelsea", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(previewHeadToHeadPage)) // nolint:errcheck
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	clearEnv(t)
	t.Setenv("TEAM_URL", server.URL+"/team")
	t.Setenv("SITE_BASE_URL", server.URL)
	t.Setenv("TEAM_TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "error")
}

func TestPreviewCommand(t *testing.T) {
	newSite(t)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"preview", "--format", "json"})
	require.NoError(t, cmd.Execute())

	var decoded struct {
		Next struct {
			Opponent string `json:"opponent"`
		} `json:"next_fixture"`
		Form         []string `json:"form"`
		WouldPublish bool     `json:"would_publish"`
		HistoryPost  string   `json:"history_post"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))

	assert.Equal(t, "Chelsea", decoded.Next.Opponent)
	assert.Equal(t, []string{"W"}, decoded.Form)
	assert.True(t, decoded.WouldPublish, "gate is bypassed outside production")
	assert.Equal(t, "PREVIOUS RESULTS\n\n❌  Chelsea  1-0  Manchester Utd\n", decoded.HistoryPost)
}

func TestPreviewCommand_InvalidFormat(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"preview", "--format", "yaml"})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "invalid format")
}

func TestRunCommand_RequiresCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEAM_TIMEZONE", "UTC")

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--dry-run=false"})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "missing required Twitter credentials")
}

func TestRunCommand_DryRunWithoutCredentials(t *testing.T) {
	newSite(t)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--dry-run"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "--- Post dry-run-1 ---\n🔔 NEXT FIXTURE\nChelsea (Away) in the Premier League")
	assert.Contains(t, out.String(), "--- Post dry-run-2 (reply to dry-run-1) ---\nPREVIOUS RESULTS")
}
