package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		score    string
		wantHome int
		wantAway int
		wantErr  bool
	}{
		{"2-1", 2, 1, false},
		{"2–1", 2, 1, false},
		{" 0 - 0 ", 0, 0, false},
		{"10–2", 10, 2, false},
		{"(4) 1–1 (3)", 1, 1, false},
		{"2-1-0", 0, 0, true},
		{"21", 0, 0, true},
		{"a-b", 0, 0, true},
		{"-1", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			home, away, err := ParseScore(tt.score)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHome, home)
			assert.Equal(t, tt.wantAway, away)
		})
	}
}

func TestHistory(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	rows := []HeadToHeadRow{
		{Date: "2026-10-18", Competition: "Premier League", Home: "Manchester Utd", Score: "", Away: "Leeds United"},
		{Date: "2025-12-14", Competition: "Premier League", Home: "Manchester Utd", Score: "2–1", Away: "Leeds United"},
		{Date: "", Competition: "Premier League", Home: "Leeds United", Score: "1–1", Away: "Manchester Utd"},
		{Date: "2025-03-01", Competition: "FA Cup", Home: "Leeds United", Score: "", Away: "Manchester Utd"},
		{Date: "2024-08-20", Competition: "Premier League", Home: "Leeds United", Score: "0–0", Away: "Manchester Utd"},
	}

	got, err := History(rows, "Manchester Utd", now)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Manchester Utd", got[0].Home)
	assert.Equal(t, 2, got[0].HomeGoals)
	assert.Equal(t, 1, got[0].AwayGoals)
	assert.Equal(t, Win, got[0].Outcome)
	assert.Equal(t, time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC), got[0].Date)

	assert.Equal(t, "Leeds United", got[1].Home)
	assert.Equal(t, Draw, got[1].Outcome)
}

func TestHistory_StrictlyBeforeNow(t *testing.T) {
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	rows := []HeadToHeadRow{
		{Date: "2026-10-17", Home: "Leeds United", Score: "1-0", Away: "Manchester Utd"},
		{Date: "2026-10-16", Home: "Leeds United", Score: "1-0", Away: "Manchester Utd"},
	}

	got, err := History(rows, "Manchester Utd", now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Loss, got[0].Outcome)
}

func TestHistory_KeepsFirstFiveInTableOrder(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	dates := []string{"2025-01-01", "2019-05-05", "2024-02-02", "2023-03-03", "2022-04-04", "2021-05-05", "2020-06-06"}

	rows := make([]HeadToHeadRow, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, HeadToHeadRow{Date: d, Home: "Manchester Utd", Score: "1-0", Away: "Leeds United"})
	}

	got, err := History(rows, "Manchester Utd", now)
	require.NoError(t, err)
	require.Len(t, got, HistoryLength)
	for i, meeting := range got {
		assert.Equal(t, ParseDate(dates[i], time.UTC), meeting.Date)
	}
}

func TestHistory_MalformedScore(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	rows := []HeadToHeadRow{{Date: "2025-12-14", Home: "Manchester Utd", Score: "2:1", Away: "Leeds United"}}

	_, err := History(rows, "Manchester Utd", now)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestHistory_MalformedScoreOutsideWindowIgnored(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	rows := []HeadToHeadRow{
		{Date: "2027-01-01", Home: "Manchester Utd", Score: "2:1", Away: "Leeds United"},
		{Date: "2025-12-14", Home: "Manchester Utd", Score: "2-1", Away: "Leeds United"},
	}

	got, err := History(rows, "Manchester Utd", now)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestHistory_Idempotent(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	rows := []HeadToHeadRow{
		{Date: "2025-12-14", Home: "Manchester Utd", Score: "2-1", Away: "Leeds United"},
		{Date: "2024-08-20", Home: "Leeds United", Score: "3-1", Away: "Manchester Utd"},
	}

	first, err := History(rows, "Manchester Utd", now)
	require.NoError(t, err)
	second, err := History(rows, "Manchester Utd", now)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
