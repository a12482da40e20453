package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExtractDate(t *testing.T) {
	// Tuesday, 10 March 2026.
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{"today at 5 PM", "2026-03-10", true},
		{"Tomorrow please", "2026-03-11", true},
		{"the 15th works", "2026-03-15", true},
		{"15/03", "2026-03-15", true},
		{"how about 25", "2026-03-25", true},
		// A past day/month rolls into the future instead of the past.
		{"15/01", "2027-01-15", true},
		// Numbers that belong to a time expression are not dates.
		{"5 PM", "", false},
		{"10:30 AM", "", false},
		{"10:30", "", false},
		{"5 o'clock", "", false},
		{"hello", "", false},
		// A day earlier in the current month is rejected, not booked last week.
		{"the 3rd", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractDate(tt.message, now)
		require.Equal(t, tt.ok, ok, "message %q", tt.message)
		require.Equal(t, tt.want, got, "message %q", tt.message)
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{"5 PM", "17:00", true},
		{"5pm", "17:00", true},
		{"10 AM", "10:00", true},
		{"10:30 AM", "10:30", true},
		{"17:45", "17:45", true},
		{"12 PM", "12:00", true},
		{"12 AM", "00:00", true},
		{"5 o'clock", "05:00", true},
		{"tomorrow at 11am", "11:00", true},
		{"tomorrow", "", false},
		{"hello", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractTime(tt.message)
		require.Equal(t, tt.ok, ok, "message %q", tt.message)
		require.Equal(t, tt.want, got, "message %q", tt.message)
	}
}
