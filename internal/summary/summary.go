// Package summary holds the calendar aggregation engine shared by the
// workout and mock-test monthly summaries: both bucket their records into
// the same display weeks and rank category frequencies the same way.
package summary

import (
	"math"
	"sort"
	"time"

	"github.com/task-meadow/server/internal/period"
)

// WeekSpan one display week inside a month. Start and End are inclusive
// UTC midnights and never leave the month.
type WeekSpan struct {
	Number int       // 1-based, in emission order
	Start  time.Time //
	End    time.Time //
}

// Spans partitions a month into display weeks. The first week closes on
// the Sunday given by period.WeekEndSunday, so it spans 1-7 days for
// months not starting on a Sunday; every later week starts on a Monday
// and runs 7 days; the final week is clamped to the month's last day,
// never padded into the next month.
func Spans(m period.Month) []WeekSpan {
	monthEnd := m.End()
	spans := make([]WeekSpan, 0, 6)

	cur := m.Start()
	first := true
	for !cur.After(monthEnd) {
		var weekEnd time.Time
		if first {
			weekEnd = period.WeekEndSunday(cur)
			first = false
		} else {
			weekEnd = cur.AddDate(0, 0, 6)
		}
		if weekEnd.After(monthEnd) {
			weekEnd = monthEnd
		}
		spans = append(spans, WeekSpan{
			Number: len(spans) + 1,
			Start:  cur,
			End:    weekEnd,
		})
		cur = period.NextMonday(weekEnd)
	}
	return spans
}

// EachDay visit every calendar day of the span in order
func (w WeekSpan) EachDay(fn func(day time.Time)) {
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// DayCount number of calendar days covered by the span
func (w WeekSpan) DayCount() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// RoundedAvg sum/count rounded to the nearest integer, 0 when count is 0
func RoundedAvg(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

// Frequency a ranked category entry
type Frequency struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Rank order categories by descending count. Equal counts fall back to
// name order so repeated aggregation of the same records emits identical
// output.
func Rank(counts map[string]int) []Frequency {
	ranked := make([]Frequency, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, Frequency{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// Top first n ranked categories
func Top(counts map[string]int, n int) []Frequency {
	ranked := Rank(counts)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Extremes every category tied at the highest count and every category
// tied at the lowest; ties are returned whole, not broken arbitrarily
func Extremes(counts map[string]int) (most []Frequency, least []Frequency) {
	ranked := Rank(counts)
	if len(ranked) == 0 {
		return nil, nil
	}
	max := ranked[0].Count
	min := ranked[len(ranked)-1].Count
	for _, f := range ranked {
		if f.Count == max {
			most = append(most, f)
		}
		if f.Count == min {
			least = append(least, f)
		}
	}
	return most, least
}
