package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	tests := []struct {
		name      string
		dateText  string
		wantYear  int
		wantMonth time.Month
		wantDay   int
		wantZero  bool
	}{
		{name: "ISO date", dateText: "2024-08-16", wantYear: 2024, wantMonth: time.August, wantDay: 16},
		{name: "ISO date with spaces", dateText: " 2024-08-16 ", wantYear: 2024, wantMonth: time.August, wantDay: 16},
		{name: "long month", dateText: "October 7, 1970", wantYear: 1970, wantMonth: time.October, wantDay: 7},
		{name: "slash date", dateText: "2014/3/31", wantYear: 2014, wantMonth: time.March, wantDay: 31},
		{name: "empty", dateText: "", wantZero: true},
		{name: "garbage", dateText: "??", wantZero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.dateText, london)
			if tt.wantZero {
				assert.True(t, got.IsZero(), "ParseDate(%q) = %v, want zero", tt.dateText, got)
				return
			}
			assert.Equal(t, tt.wantYear, got.Year())
			assert.Equal(t, tt.wantMonth, got.Month())
			assert.Equal(t, tt.wantDay, got.Day())
			assert.Equal(t, london, got.Location())
		})
	}
}

func TestParseDate_NilLocation(t *testing.T) {
	got := ParseDate("2024-08-16", nil)
	assert.Equal(t, time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC), got)
}

func TestParseKickoff(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
		want  time.Time
	}{
		{"plain clock", "2026-10-18", "16:30", time.Date(2026, 10, 18, 16, 30, 0, 0, time.UTC)},
		{"visitor time in brackets", "2026-10-18", "20:00 (21:00)", time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)},
		{"missing clock", "2026-10-18", "", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)},
		{"unreadable clock", "2026-10-18", "TBC", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)},
		{"unreadable date", "", "16:30", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKickoff(tt.date, tt.clock, time.UTC))
		})
	}
}

func TestMinutesToKickoff(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 1450, MinutesToKickoff(now.Add(1450*time.Minute), now))
	assert.Equal(t, 1499, MinutesToKickoff(now.Add(1499*time.Minute+59*time.Second), now))
	assert.Equal(t, -30, MinutesToKickoff(now.Add(-30*time.Minute), now))
}
