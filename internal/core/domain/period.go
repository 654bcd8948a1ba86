package domain

import (
	"fmt"
	"time"
)

// DateOnly is the wire format for report date boundaries.
const DateOnly = "2006-01-02"

// Period is a resolved reporting window. Since and Until are inclusive
// calendar dates.
type Period struct {
	Code  string    `json:"code"`
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
	Label string    `json:"label"`
}

// SinceDate returns the start of the window in date-only form.
func (p Period) SinceDate() string { return p.Since.Format(DateOnly) }

// UntilDate returns the end of the window in date-only form.
func (p Period) UntilDate() string { return p.Until.Format(DateOnly) }

// ResolvePeriod maps a period code to a concrete date window relative to
// the given reference time. Unknown codes fall back to last week, matching
// the default reporting window.
func ResolvePeriod(code string, now time.Time) Period {
	today := DayStart(now)

	switch code {
	case "7d":
		return Period{Code: code, Since: today.AddDate(0, 0, -7), Until: today, Label: "Past 7 Days"}
	case "14d":
		return Period{Code: code, Since: today.AddDate(0, 0, -14), Until: today, Label: "Past 14 Days"}
	case "week":
		return Period{Code: code, Since: WeekStart(today), Until: today, Label: "This Week"}
	case "month":
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return Period{Code: code, Since: first, Until: today, Label: "This Month"}
	case "lastmonth":
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end := firstOfThis.AddDate(0, 0, -1)
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
		return Period{Code: code, Since: start, Until: end, Label: "Last Month"}
	case "quarter":
		quarter := (int(today.Month()) - 1) / 3
		start := time.Date(today.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, today.Location())
		return Period{Code: code, Since: start, Until: today, Label: fmt.Sprintf("This Quarter (Q%d)", quarter+1)}
	case "year":
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return Period{Code: code, Since: start, Until: today, Label: "This Year"}
	default:
		// "lastweek" and anything unrecognized: previous Monday through Sunday.
		thisMonday := WeekStart(today)
		lastSunday := thisMonday.AddDate(0, 0, -1)
		lastMonday := lastSunday.AddDate(0, 0, -6)
		return Period{Code: "lastweek", Since: lastMonday, Until: lastSunday, Label: "Last Week"}
	}
}

// DayStart truncates a time to midnight in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday of the week containing day.
func WeekStart(day time.Time) time.Time {
	// time.Weekday counts Sunday as 0; the reporting week starts on Monday.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
