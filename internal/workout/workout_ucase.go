package workout

import (
	"context"
	"sort"
	"time"

	"go.elastic.co/apm"

	"github.com/task-meadow/server/internal/period"
	"github.com/task-meadow/server/internal/summary"
)

type WorkoutUseCaseImpl struct {
	Repo Repository
}

func NewWorkoutUseCase(repo Repository) *WorkoutUseCaseImpl {
	return &WorkoutUseCaseImpl{Repo: repo}
}

func (uc *WorkoutUseCaseImpl) GetByDay(ctx context.Context, userID string, day time.Time) (*Model, error) {
	span, ctx := apm.StartSpan(ctx, "WorkoutUseCaseImpl.GetByDay", "service")
	defer span.End()

	return uc.Repo.FindByDay(ctx, userID, day)
}

func (uc *WorkoutUseCaseImpl) Save(ctx context.Context, post *Model) (*Model, error) {
	span, ctx := apm.StartSpan(ctx, "WorkoutUseCaseImpl.Save", "service")
	defer span.End()

	post.Date = period.Day(post.Date)
	return uc.Repo.Upsert(ctx, post)
}

func (uc *WorkoutUseCaseImpl) DeleteByDay(ctx context.Context, userID string, day time.Time) (bool, error) {
	span, ctx := apm.StartSpan(ctx, "WorkoutUseCaseImpl.DeleteByDay", "service")
	defer span.End()

	return uc.Repo.DeleteByDay(ctx, userID, day)
}

// Summary bucketizes the month's workouts into display weeks and rolls
// them up. Every calendar day of the month shows up in exactly one
// week's dailyBreakdown, workout or not.
func (uc *WorkoutUseCaseImpl) Summary(ctx context.Context, userID string, month period.Month) (*MonthlySummary, error) {
	span, ctx := apm.StartSpan(ctx, "WorkoutUseCaseImpl.Summary", "service")
	defer span.End()

	records, err := uc.Repo.FindByRange(ctx, userID, month.Start(), month.End())
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*Model, len(records))
	for _, m := range records {
		byDay[period.FormatDay(m.Date)] = m
	}

	monthly := &MonthlyStats{}
	muscleCounts := map[string]int{}
	exerciseCounts := map[string]int{}
	cardioCounts := map[string]int{}

	var weeks []*WeekStats
	for _, ws := range summary.Spans(month) {
		week := &WeekStats{
			WeekNumber: ws.Number,
			StartDate:  period.FormatDay(ws.Start),
			EndDate:    period.FormatDay(ws.End),
		}
		exercises := map[string]bool{}
		cardio := map[string]bool{}
		muscles := map[string]bool{}

		ws.EachDay(func(day time.Time) {
			key := period.FormatDay(day)
			stats := DayStats{Date: key}
			if m, ok := byDay[key]; ok {
				stats.TotalTime = m.Duration
				stats.Exercises = m.PersonalRecords
				stats.Cardio = m.Cardio
				stats.MusclesHit = m.MusclesHit

				week.TotalTime += m.Duration
				week.Sessions++
				week.ActiveDays++
				// cardio time only counts when an activity was named
				if m.Cardio != nil && m.Cardio.Activity != "" {
					stats.CardioTime = m.Cardio.Duration
					week.CardioTime += m.Cardio.Duration
					cardio[m.Cardio.Activity] = true
					cardioCounts[m.Cardio.Activity]++
				}
				for _, pr := range m.PersonalRecords {
					exercises[pr.Exercise] = true
					exerciseCounts[pr.Exercise]++
				}
				for _, muscle := range m.MusclesHit {
					muscles[muscle] = true
					muscleCounts[muscle]++
				}
			}
			week.DailyBreakdown = append(week.DailyBreakdown, stats)
		})

		week.UniqueExercises = len(exercises)
		week.UniqueCardio = len(cardio)
		week.MusclesHit = sortedKeys(muscles)

		monthly.TotalTime += week.TotalTime
		monthly.TotalCardioTime += week.CardioTime
		monthly.TotalSessions += week.Sessions
		monthly.TotalActiveDays += week.ActiveDays
		weeks = append(weeks, week)
	}

	monthly.AverageTimePerSession = summary.RoundedAvg(monthly.TotalTime, monthly.TotalSessions)
	monthly.MostFrequentMuscles = summary.Top(muscleCounts, 5)
	monthly.MostFrequentExercises = summary.Top(exerciseCounts, 5)
	monthly.MostFrequentCardio = summary.Top(cardioCounts, 5)
	monthly.TopMuscles, monthly.BottomMuscles = summary.Extremes(muscleCounts)

	return &MonthlySummary{MonthlyStats: monthly, WeeklyBreakdown: weeks}, nil
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
