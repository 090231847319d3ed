package analytics

import (
	"context"
	"time"

	"go.elastic.co/apm"

	"github.com/task-meadow/server/internal/event"
	"github.com/task-meadow/server/internal/habit"
	"github.com/task-meadow/server/internal/mocktest"
	"github.com/task-meadow/server/internal/period"
	"github.com/task-meadow/server/internal/workout"
)

type AnalyticsUseCaseImpl struct {
	Workouts  workout.Repository
	MockTests mocktest.Repository
	Events    event.Repository
	Habits    habit.Repository
}

func NewAnalyticsUseCase(w workout.Repository, m mocktest.Repository, e event.Repository, h habit.Repository) *AnalyticsUseCaseImpl {
	return &AnalyticsUseCaseImpl{Workouts: w, MockTests: m, Events: e, Habits: h}
}

// Day assembles everything the user recorded on one calendar day:
// the workout, every mock test and event, plus the day's daily habit
// states and the weekly habit states of the week the day falls in.
func (uc *AnalyticsUseCaseImpl) Day(ctx context.Context, userID string, day time.Time) (*DaySnapshot, error) {
	span, ctx := apm.StartSpan(ctx, "AnalyticsUseCaseImpl.Day", "service")
	defer span.End()

	day = period.Day(day)
	month := period.MonthOf(day)

	out := &DaySnapshot{
		Date:         period.FormatDay(day),
		MockTests:    []*mocktest.Model{},
		Events:       []*event.Model{},
		DailyHabits:  []HabitState{},
		WeeklyHabits: []HabitState{},
		WeekContext: WeekContext{
			MonthKey:     month.Key(),
			WeekIndex:    period.WeekIndexOf(day.Day()),
			WeeksInMonth: month.Weeks(),
		},
	}

	var err error
	if out.Workout, err = uc.Workouts.FindByDay(ctx, userID, day); err != nil {
		return nil, err
	}
	if out.MockTests, err = uc.MockTests.FindByRange(ctx, userID, day, day); err != nil {
		return nil, err
	}
	if out.MockTests == nil {
		out.MockTests = []*mocktest.Model{}
	}
	if out.Events, err = uc.Events.FindByRange(ctx, userID, day, day); err != nil {
		return nil, err
	}
	if out.Events == nil {
		out.Events = []*event.Model{}
	}

	if out.DailyHabits, err = uc.dailyStates(ctx, userID, month, day); err != nil {
		return nil, err
	}
	if out.WeeklyHabits, err = uc.weeklyStates(ctx, userID, month, out.WeekContext.WeekIndex); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *AnalyticsUseCaseImpl) dailyStates(ctx context.Context, userID string, month period.Month, day time.Time) ([]HabitState, error) {
	defs, err := uc.Habits.Definitions(ctx, userID, month.Key(), habit.KindDaily)
	if err != nil {
		return nil, err
	}
	marks, err := uc.Habits.DailyMarks(ctx, userID, month.Key())
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool)
	for _, m := range marks {
		if m.Date.Equal(day) {
			done[m.DefinitionID] = m.Completed
		}
	}

	out := make([]HabitState, 0, len(defs))
	for _, d := range defs {
		out = append(out, HabitState{ID: d.ID, Name: d.Name, Goal: d.Goal, Completed: done[d.ID]})
	}
	return out, nil
}

func (uc *AnalyticsUseCaseImpl) weeklyStates(ctx context.Context, userID string, month period.Month, weekIndex int) ([]HabitState, error) {
	defs, err := uc.Habits.Definitions(ctx, userID, month.Key(), habit.KindWeekly)
	if err != nil {
		return nil, err
	}
	marks, err := uc.Habits.WeeklyMarks(ctx, userID, month.Key())
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool)
	for _, m := range marks {
		if m.WeekIndex == weekIndex {
			done[m.DefinitionID] = m.Completed
		}
	}

	out := make([]HabitState, 0, len(defs))
	for _, d := range defs {
		out = append(out, HabitState{ID: d.ID, Name: d.Name, Goal: d.Goal, Completed: done[d.ID]})
	}
	return out, nil
}
