// Package period parses the date tokens used across the API and derives
// calendar boundaries from them. All dates are normalized to UTC midnight.
package period

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// token format errors
var (
	ErrBadDayToken   = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrBadMonthToken = errors.New("invalid month format, expected YYYY-MM")
)

var (
	dayPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// DayLayout wire format of a day token
const DayLayout = "2006-01-02"

// ParseDay parse a strict YYYY-MM-DD token into UTC midnight.
// Tokens that match the shape but name no real calendar day (eg. 2024-02-30)
// are rejected as well.
func ParseDay(token string) (time.Time, error) {
	if !dayPattern.MatchString(token) {
		return time.Time{}, ErrBadDayToken
	}
	t, err := time.ParseInLocation(DayLayout, token, time.UTC)
	if err != nil {
		return time.Time{}, ErrBadDayToken
	}
	return t, nil
}

// FormatDay render a date back into its wire token
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// Month one calendar month
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parse a strict YYYY-MM token
func ParseMonth(token string) (Month, error) {
	if !monthPattern.MatchString(token) {
		return Month{}, ErrBadMonthToken
	}
	t, err := time.ParseInLocation("2006-01", token, time.UTC)
	if err != nil {
		return Month{}, ErrBadMonthToken
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf month containing the given date
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Key monthKey token, eg. "2024-03"
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start first day of the month at UTC midnight
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End last day of the month at UTC midnight (inclusive)
func (m Month) End() time.Time {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// Days number of days in the month, leap years included
func (m Month) Days() int {
	return m.End().Day()
}

// Weeks number of week rows a month grid needs:
// ceil((firstWeekdayOffset + daysInMonth) / 7), always 4, 5 or 6
func (m Month) Weeks() int {
	offset := int(m.Start().Weekday())
	return (offset + m.Days() + 6) / 7
}

// Contains report whether the date falls inside the month
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// WeekIndexOf 1-based week slot of a day-of-month, as used by the weekly
// habit grid: days 1-7 are week 1, 8-14 week 2, and so on
func WeekIndexOf(dayOfMonth int) int {
	return (dayOfMonth-1)/7 + 1
}

// WeekEndSunday the Sunday closing the display week that starts at t.
// A date already on a Sunday maps to the next Sunday, which is what makes
// the first week of a Sunday-starting month run through two Sundays; the
// summary breakdown relies on that exact behavior.
func WeekEndSunday(t time.Time) time.Time {
	return t.AddDate(0, 0, 7-int(t.Weekday()))
}

// NextMonday the first Monday strictly after t's week position:
// one day ahead for a Sunday, otherwise the upcoming Monday
func NextMonday(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		return t.AddDate(0, 0, 1)
	}
	return t.AddDate(0, 0, 8-wd)
}

// MondayOnOrBefore the Monday starting the ISO-style week containing t,
// used to stamp weight entries with their week start
func MondayOnOrBefore(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return t.AddDate(0, 0, 1-wd)
}

// Day truncate a timestamp to its UTC calendar day
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
