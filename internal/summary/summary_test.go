package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/task-meadow/server/internal/period"
)

func TestSpansMarch2024(t *testing.T) {
	// March 2024 starts on a Friday
	m, _ := period.ParseMonth("2024-03")
	spans := Spans(m)
	require.Len(t, spans, 5)

	assert.Equal(t, "2024-03-01", period.FormatDay(spans[0].Start))
	assert.Equal(t, "2024-03-03", period.FormatDay(spans[0].End))
	assert.Equal(t, 3, spans[0].DayCount())

	assert.Equal(t, "2024-03-04", period.FormatDay(spans[1].Start))
	assert.Equal(t, "2024-03-10", period.FormatDay(spans[1].End))

	last := spans[len(spans)-1]
	assert.Equal(t, "2024-03-25", period.FormatDay(last.Start))
	assert.Equal(t, "2024-03-31", period.FormatDay(last.End))
}

func TestSpansSundayStartMonth(t *testing.T) {
	// September 2024 starts on a Sunday, so week 1 runs through the
	// following Sunday and spans 8 days
	m, _ := period.ParseMonth("2024-09")
	spans := Spans(m)
	require.Len(t, spans, 5)

	assert.Equal(t, "2024-09-01", period.FormatDay(spans[0].Start))
	assert.Equal(t, "2024-09-08", period.FormatDay(spans[0].End))
	assert.Equal(t, 8, spans[0].DayCount())

	last := spans[len(spans)-1]
	assert.Equal(t, "2024-09-30", period.FormatDay(last.Start))
	assert.Equal(t, "2024-09-30", period.FormatDay(last.End))
	assert.Equal(t, 1, last.DayCount())
}

// every calendar day of the month must land in exactly one span
func TestSpansPartitionMonth(t *testing.T) {
	for _, key := range []string{"2024-02", "2024-03", "2024-09", "2024-12", "2023-01", "2026-02"} {
		m, err := period.ParseMonth(key)
		require.NoError(t, err)

		seen := map[string]int{}
		spans := Spans(m)
		for i, ws := range spans {
			assert.Equal(t, i+1, ws.Number, "%s: week numbers follow emission order", key)
			assert.False(t, ws.End.Before(ws.Start), "%s: span %d inverted", key, i)
			ws.EachDay(func(day time.Time) {
				seen[period.FormatDay(day)]++
			})
		}

		assert.Len(t, seen, m.Days(), "%s: day coverage", key)
		for day, count := range seen {
			assert.Equal(t, 1, count, "%s: day %s bucketed %d times", key, day, count)
		}
		assert.GreaterOrEqual(t, len(spans), 4, key)
		assert.LessOrEqual(t, len(spans), 6, key)
	}
}

func TestSpansFirstWeekLength(t *testing.T) {
	for _, key := range []string{"2024-01", "2024-03", "2024-06", "2024-09", "2025-05"} {
		m, _ := period.ParseMonth(key)
		spans := Spans(m)
		firstWeekday := int(m.Start().Weekday())
		want := 8 - firstWeekday
		if firstWeekday == 0 {
			want = 8
		}
		if want > m.Days() {
			want = m.Days()
		}
		assert.Equal(t, want, spans[0].DayCount(), key)
	}
}

func TestSpansDeterministic(t *testing.T) {
	m, _ := period.ParseMonth("2024-03")
	assert.Equal(t, Spans(m), Spans(m))
}

func TestRoundedAvg(t *testing.T) {
	assert.Equal(t, 0, RoundedAvg(0, 0))
	assert.Equal(t, 0, RoundedAvg(100, 0))
	assert.Equal(t, 50, RoundedAvg(100, 2))
	assert.Equal(t, 33, RoundedAvg(100, 3))
	assert.Equal(t, 67, RoundedAvg(200, 3))
}

func TestRankDeterministicOnTies(t *testing.T) {
	counts := map[string]int{"chest": 2, "back": 2, "legs": 5}
	ranked := Rank(counts)
	require.Len(t, ranked, 3)
	assert.Equal(t, Frequency{Name: "legs", Count: 5}, ranked[0])
	assert.Equal(t, Frequency{Name: "back", Count: 2}, ranked[1])
	assert.Equal(t, Frequency{Name: "chest", Count: 2}, ranked[2])
}

func TestTop(t *testing.T) {
	counts := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6}
	top := Top(counts, 5)
	require.Len(t, top, 5)
	assert.Equal(t, "f", top[0].Name)
	assert.Equal(t, "b", top[4].Name)
}

func TestExtremesKeepTiesWhole(t *testing.T) {
	counts := map[string]int{"chest": 3, "back": 3, "legs": 1, "arms": 1}
	most, least := Extremes(counts)
	assert.Equal(t, []Frequency{{"back", 3}, {"chest", 3}}, most)
	assert.Equal(t, []Frequency{{"arms", 1}, {"legs", 1}}, least)

	most, least = Extremes(map[string]int{})
	assert.Nil(t, most)
	assert.Nil(t, least)
}
