package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, time.UTC, day.Location())
}

func TestParseDayRejectsBadTokens(t *testing.T) {
	cases := []string{
		"",
		"2024-3-15",
		"15-03-2024",
		"2024-03-15T00:00:00Z",
		"2024-02-30",
		"2024-13-01",
		"not-a-date",
	}
	for _, token := range cases {
		_, err := ParseDay(token)
		assert.Error(t, err, "token %q should not parse", token)
	}
}

func TestFormatDayRoundTrip(t *testing.T) {
	day, err := ParseDay("2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", FormatDay(day))
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 2024, m.Year)
	assert.Equal(t, time.February, m.Month)
	assert.Equal(t, "2024-02", m.Key())

	_, err = ParseMonth("2024-2")
	assert.Error(t, err)
	_, err = ParseMonth("2024-00")
	assert.Error(t, err)
}

func TestMonthDays(t *testing.T) {
	leap, _ := ParseMonth("2024-02")
	assert.Equal(t, 29, leap.Days())

	plain, _ := ParseMonth("2023-02")
	assert.Equal(t, 28, plain.Days())

	march, _ := ParseMonth("2024-03")
	assert.Equal(t, 31, march.Days())
}

func TestMonthWeeks(t *testing.T) {
	// March 2024 starts on a Friday: offset 5 over 31 days
	march, _ := ParseMonth("2024-03")
	assert.Equal(t, 6, march.Weeks())

	// April 2024 starts on a Monday
	april, _ := ParseMonth("2024-04")
	assert.Equal(t, 5, april.Weeks())

	// February 2026 starts on a Sunday with 28 days, the rare 4-row grid
	feb, _ := ParseMonth("2026-02")
	assert.Equal(t, 4, feb.Weeks())
}

func TestMonthBounds(t *testing.T) {
	m, _ := ParseMonth("2024-02")
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), m.Start())
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), m.End())
	assert.True(t, m.Contains(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestWeekIndexOf(t *testing.T) {
	assert.Equal(t, 1, WeekIndexOf(1))
	assert.Equal(t, 1, WeekIndexOf(7))
	assert.Equal(t, 2, WeekIndexOf(8))
	assert.Equal(t, 3, WeekIndexOf(15))
	assert.Equal(t, 5, WeekIndexOf(31))
}

func TestWeekEndSunday(t *testing.T) {
	friday := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), WeekEndSunday(friday))

	// a Sunday maps to the following Sunday, not itself
	sunday := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.September, 8, 0, 0, 0, 0, time.UTC), WeekEndSunday(sunday))
}

func TestNextMonday(t *testing.T) {
	sunday := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), NextMonday(sunday))

	wednesday := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), NextMonday(wednesday))

	monday := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), NextMonday(monday))
}

func TestMondayOnOrBefore(t *testing.T) {
	wednesday := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, MondayOnOrBefore(wednesday))
	assert.Equal(t, monday, MondayOnOrBefore(monday))

	// Sunday belongs to the week started by the previous Monday
	sunday := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, MondayOnOrBefore(sunday))
}

func TestDayTruncation(t *testing.T) {
	stamp := time.Date(2024, time.March, 15, 18, 42, 7, 12345, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), Day(stamp))
}
