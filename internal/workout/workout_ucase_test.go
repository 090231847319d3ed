package workout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/task-meadow/server/internal/period"
	"github.com/task-meadow/server/internal/summary"
)

type fakeWorkoutRepo struct {
	records []*Model
}

func (f *fakeWorkoutRepo) FindByDay(ctx context.Context, userID string, day time.Time) (*Model, error) {
	for _, m := range f.records {
		if m.UserID == userID && m.Date.Equal(day) {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkoutRepo) FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Model, error) {
	var out []*Model
	for _, m := range f.records {
		if m.UserID == userID && !m.Date.Before(start) && !m.Date.After(end) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeWorkoutRepo) Upsert(ctx context.Context, post *Model) (*Model, error) {
	for i, m := range f.records {
		if m.UserID == post.UserID && m.Date.Equal(post.Date) {
			post.ID = m.ID
			f.records[i] = post
			return post, nil
		}
	}
	post.ID = "w1"
	f.records = append(f.records, post)
	return post, nil
}

func (f *fakeWorkoutRepo) DeleteByDay(ctx context.Context, userID string, day time.Time) (bool, error) {
	for i, m := range f.records {
		if m.UserID == userID && m.Date.Equal(day) {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func day(token string) time.Time {
	d, err := period.ParseDay(token)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSummaryPlacesWorkoutInItsWeek(t *testing.T) {
	repo := &fakeWorkoutRepo{records: []*Model{{
		ID:         "w1",
		UserID:     "u1",
		Date:       day("2024-03-15"),
		MusclesHit: []string{"chest", "triceps"},
		Duration:   60,
		Cardio:     &Cardio{Activity: "running", Duration: 20, Distance: 4},
		PersonalRecords: []PersonalRecord{
			{Exercise: "bench press", Weight: 80, Reps: 5},
		},
	}}}
	uc := NewWorkoutUseCase(repo)

	month, _ := period.ParseMonth("2024-03")
	out, err := uc.Summary(context.Background(), "u1", month)
	require.NoError(t, err)
	require.Len(t, out.WeeklyBreakdown, 5)

	// 2024-03-15 falls in the Mar 11-17 week, the third bucket
	for i, week := range out.WeeklyBreakdown {
		if i == 2 {
			assert.Equal(t, 60, week.TotalTime)
			assert.Equal(t, 20, week.CardioTime)
			assert.Equal(t, 1, week.Sessions)
			assert.Equal(t, 1, week.ActiveDays)
			assert.Equal(t, 1, week.UniqueExercises)
			assert.Equal(t, 1, week.UniqueCardio)
			assert.Equal(t, []string{"chest", "triceps"}, week.MusclesHit)
		} else {
			assert.Zero(t, week.TotalTime, "week %d", week.WeekNumber)
			assert.Zero(t, week.Sessions, "week %d", week.WeekNumber)
		}
	}

	assert.Equal(t, 60, out.MonthlyStats.TotalTime)
	assert.Equal(t, 20, out.MonthlyStats.TotalCardioTime)
	assert.Equal(t, 1, out.MonthlyStats.TotalSessions)
	assert.Equal(t, 60, out.MonthlyStats.AverageTimePerSession)
}

func TestSummaryDailyBreakdownIsDense(t *testing.T) {
	repo := &fakeWorkoutRepo{}
	uc := NewWorkoutUseCase(repo)

	month, _ := period.ParseMonth("2024-03")
	out, err := uc.Summary(context.Background(), "u1", month)
	require.NoError(t, err)

	total := 0
	for _, week := range out.WeeklyBreakdown {
		days := len(week.DailyBreakdown)
		assert.Equal(t, week.StartDate, week.DailyBreakdown[0].Date)
		assert.Equal(t, week.EndDate, week.DailyBreakdown[days-1].Date)
		total += days
		for _, d := range week.DailyBreakdown {
			assert.Zero(t, d.TotalTime)
		}
	}
	assert.Equal(t, month.Days(), total)
}

func TestSummaryFrequencyRankings(t *testing.T) {
	repo := &fakeWorkoutRepo{records: []*Model{
		{ID: "w1", UserID: "u1", Date: day("2024-03-04"), MusclesHit: []string{"chest"}, Duration: 30},
		{ID: "w2", UserID: "u1", Date: day("2024-03-05"), MusclesHit: []string{"chest", "back"}, Duration: 50},
		{ID: "w3", UserID: "u1", Date: day("2024-03-06"), MusclesHit: []string{"legs"}, Duration: 40},
	}}
	uc := NewWorkoutUseCase(repo)

	month, _ := period.ParseMonth("2024-03")
	out, err := uc.Summary(context.Background(), "u1", month)
	require.NoError(t, err)

	require.NotEmpty(t, out.MonthlyStats.MostFrequentMuscles)
	assert.Equal(t, summary.Frequency{Name: "chest", Count: 2}, out.MonthlyStats.MostFrequentMuscles[0])
	assert.Equal(t, []summary.Frequency{{Name: "chest", Count: 2}}, out.MonthlyStats.TopMuscles)
	assert.Equal(t, []summary.Frequency{{Name: "back", Count: 1}, {Name: "legs", Count: 1}}, out.MonthlyStats.BottomMuscles)

	assert.Equal(t, 3, out.MonthlyStats.TotalSessions)
	assert.Equal(t, 40, out.MonthlyStats.AverageTimePerSession)
}

func TestSummaryIgnoresUnnamedCardio(t *testing.T) {
	repo := &fakeWorkoutRepo{records: []*Model{
		{ID: "w1", UserID: "u1", Date: day("2024-03-12"), Duration: 40, Cardio: &Cardio{Duration: 15}},
		{ID: "w2", UserID: "u1", Date: day("2024-03-13"), Duration: 50, Cardio: &Cardio{Activity: "rowing", Duration: 10}},
	}}
	uc := NewWorkoutUseCase(repo)

	month, _ := period.ParseMonth("2024-03")
	out, err := uc.Summary(context.Background(), "u1", month)
	require.NoError(t, err)

	// only the named activity counts towards cardio time
	week := out.WeeklyBreakdown[2]
	assert.Equal(t, 10, week.CardioTime)
	assert.Equal(t, 1, week.UniqueCardio)
	assert.Equal(t, 10, out.MonthlyStats.TotalCardioTime)

	for _, d := range week.DailyBreakdown {
		if d.Date == "2024-03-12" {
			assert.Zero(t, d.CardioTime)
		}
	}
}

func TestSummaryIdempotent(t *testing.T) {
	repo := &fakeWorkoutRepo{records: []*Model{
		{ID: "w1", UserID: "u1", Date: day("2024-03-04"), MusclesHit: []string{"chest", "back"}, Duration: 30},
	}}
	uc := NewWorkoutUseCase(repo)

	month, _ := period.ParseMonth("2024-03")
	first, err := uc.Summary(context.Background(), "u1", month)
	require.NoError(t, err)
	second, err := uc.Summary(context.Background(), "u1", month)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSaveTruncatesDate(t *testing.T) {
	repo := &fakeWorkoutRepo{}
	uc := NewWorkoutUseCase(repo)

	saved, err := uc.Save(context.Background(), &Model{
		UserID:   "u1",
		Date:     time.Date(2024, time.March, 15, 17, 30, 0, 0, time.UTC),
		Duration: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, day("2024-03-15"), saved.Date)
}
