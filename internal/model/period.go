package model

import "time"

var monthsByName = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// ParseMonth maps a full English month name ("March") to its time.Month.
// Matching is exact and case-sensitive.
func ParseMonth(name string) (time.Month, bool) {
	m, ok := monthsByName[name]
	return m, ok
}

// DateRange is a half-open interval of calendar days: From <= day < To.
type DateRange struct {
	From time.Time
	To   time.Time
}

// MonthRange returns the range covering every day of the given month.
// To is the first day of the following month, so short months and leap years need no special casing.
func MonthRange(year int, month time.Month) DateRange {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(0, 1, 0)}
}

// FromString formats the lower bound as YYYY-MM-DD.
func (r DateRange) FromString() string { return r.From.Format(DateLayout) }

// ToString formats the exclusive upper bound as YYYY-MM-DD.
func (r DateRange) ToString() string { return r.To.Format(DateLayout) }
