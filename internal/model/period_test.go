package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMonth(t *testing.T) {
	m, ok := ParseMonth("March")
	assert.True(t, ok)
	assert.Equal(t, time.March, m)

	m, ok = ParseMonth("December")
	assert.True(t, ok)
	assert.Equal(t, time.December, m)

	for _, name := range []string{"", "march", "Marchh", "Mar", "13"} {
		_, ok := ParseMonth(name)
		assert.False(t, ok, name)
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		wantFrom string
		wantTo   string
	}{
		{name: "thirty one days", year: 2026, month: time.March, wantFrom: "2026-03-01", wantTo: "2026-04-01"},
		{name: "thirty days", year: 2026, month: time.April, wantFrom: "2026-04-01", wantTo: "2026-05-01"},
		{name: "february", year: 2026, month: time.February, wantFrom: "2026-02-01", wantTo: "2026-03-01"},
		{name: "leap february", year: 2024, month: time.February, wantFrom: "2024-02-01", wantTo: "2024-03-01"},
		{name: "december rolls the year", year: 2025, month: time.December, wantFrom: "2025-12-01", wantTo: "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MonthRange(tt.year, tt.month)
			assert.Equal(t, tt.wantFrom, r.FromString())
			assert.Equal(t, tt.wantTo, r.ToString())
		})
	}
}

func TestMonthRange_LexicographicBounds(t *testing.T) {
	r := MonthRange(2026, time.February)
	inside := []string{"2026-02-01", "2026-02-15", "2026-02-28"}
	outside := []string{"2026-01-31", "2026-03-01", "2025-02-10"}

	for _, d := range inside {
		assert.True(t, d >= r.FromString() && d < r.ToString(), d)
	}
	for _, d := range outside {
		assert.False(t, d >= r.FromString() && d < r.ToString(), d)
	}
}

func TestCategories(t *testing.T) {
	want := []string{"Food", "Rent", "Entertainment", "Transport", "Utilities", "Shopping", "Healthcare", "Miscellaneous"}
	assert.Equal(t, want, Categories())

	got := Categories()
	got[0] = "Changed"
	assert.Equal(t, want, Categories())
}
