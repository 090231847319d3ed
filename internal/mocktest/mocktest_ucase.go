package mocktest

import (
	"context"
	"math"
	"time"

	"go.elastic.co/apm"

	"github.com/task-meadow/server/internal/period"
	"github.com/task-meadow/server/internal/summary"
)

type MockTestUseCaseImpl struct {
	Repo Repository
}

func NewMockTestUseCase(repo Repository) *MockTestUseCaseImpl {
	return &MockTestUseCaseImpl{Repo: repo}
}

func (uc *MockTestUseCaseImpl) ListByDay(ctx context.Context, userID string, day time.Time) ([]*Model, error) {
	span, ctx := apm.StartSpan(ctx, "MockTestUseCaseImpl.ListByDay", "service")
	defer span.End()

	day = period.Day(day)
	return uc.Repo.FindByRange(ctx, userID, day, day)
}

// Record normalizes question counts and derives the percentage before
// persisting. Negative counts clamp to zero; a missing percentage is
// computed from correct/totalQuestions and always lands in [0, 100].
func (uc *MockTestUseCaseImpl) Record(ctx context.Context, test *Model) (*Model, error) {
	span, ctx := apm.StartSpan(ctx, "MockTestUseCaseImpl.Record", "service")
	defer span.End()

	test.Date = period.Day(test.Date)
	if test.TotalQuestions < 0 {
		test.TotalQuestions = 0
	}
	if test.Correct < 0 {
		test.Correct = 0
	}
	if test.Incorrect < 0 {
		test.Incorrect = 0
	}
	if test.Skipped < 0 {
		test.Skipped = 0
	}
	if test.Percentage == 0 && test.TotalQuestions > 0 {
		test.Percentage = int(math.Round(float64(test.Correct) / float64(test.TotalQuestions) * 100))
	}
	if test.Percentage < 0 {
		test.Percentage = 0
	} else if test.Percentage > 100 {
		test.Percentage = 100
	}
	return uc.Repo.Save(ctx, test)
}

func (uc *MockTestUseCaseImpl) Delete(ctx context.Context, userID, id string) (bool, error) {
	span, ctx := apm.StartSpan(ctx, "MockTestUseCaseImpl.Delete", "service")
	defer span.End()

	return uc.Repo.Delete(ctx, userID, id)
}

func (uc *MockTestUseCaseImpl) Summary(ctx context.Context, userID string, month period.Month) (*MonthlySummary, error) {
	span, ctx := apm.StartSpan(ctx, "MockTestUseCaseImpl.Summary", "service")
	defer span.End()

	tests, err := uc.Repo.FindByRange(ctx, userID, month.Start(), month.End())
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]*Model)
	dateCounts := make(map[string]int)
	seriesByType := make(map[string][]ScorePoint)
	for _, t := range tests {
		key := period.FormatDay(t.Date)
		byDay[key] = append(byDay[key], t)
		dateCounts[key]++
		seriesByType[t.TestType] = append(seriesByType[t.TestType], ScorePoint{Date: key, Percent: t.Percentage})
	}

	monthly := &MonthlyStats{ByType: map[string]int{}}
	var pctSum, best, worst int
	var weeks []*WeekStats
	for _, ws := range summary.Spans(month) {
		week := &WeekStats{
			WeekNumber:       ws.Number,
			StartDate:        period.FormatDay(ws.Start),
			EndDate:          period.FormatDay(ws.End),
			ByType:           map[string]int{},
			AvgPercentByType: map[string]int{},
			Mocks:            []*Model{},
		}
		weekPctSum := 0
		typeSums := map[string]int{}

		ws.EachDay(func(day time.Time) {
			for _, t := range byDay[period.FormatDay(day)] {
				week.TotalMocks++
				week.ByType[t.TestType]++
				week.Mocks = append(week.Mocks, t)
				weekPctSum += t.Percentage
				typeSums[t.TestType] += t.Percentage

				if monthly.TotalMocks == 0 {
					best, worst = t.Percentage, t.Percentage
				} else {
					if t.Percentage > best {
						best = t.Percentage
					}
					if t.Percentage < worst {
						worst = t.Percentage
					}
				}
				monthly.TotalMocks++
				monthly.ByType[t.TestType]++
				pctSum += t.Percentage
			}
		})

		week.AvgPercent = summary.RoundedAvg(weekPctSum, week.TotalMocks)
		for tt, sum := range typeSums {
			week.AvgPercentByType[tt] = summary.RoundedAvg(sum, week.ByType[tt])
		}
		weeks = append(weeks, week)
	}

	monthly.AvgPercent = summary.RoundedAvg(pctSum, monthly.TotalMocks)
	monthly.BestPercent = best
	monthly.WorstPercent = worst

	return &MonthlySummary{
		MonthlyStats:    monthly,
		WeeklyBreakdown: weeks,
		SeriesByType:    seriesByType,
		DateCounts:      dateCounts,
	}, nil
}
