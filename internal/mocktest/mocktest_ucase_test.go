package mocktest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/task-meadow/server/internal/period"
)

type fakeMockTestRepo struct {
	records []*Model
	seq     int
}

func (f *fakeMockTestRepo) FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Model, error) {
	var out []*Model
	for _, m := range f.records {
		if m.UserID == userID && !m.Date.Before(start) && !m.Date.After(end) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMockTestRepo) Save(ctx context.Context, test *Model) (*Model, error) {
	f.seq++
	test.ID = fmt.Sprintf("m%d", f.seq)
	f.records = append(f.records, test)
	return test, nil
}

func (f *fakeMockTestRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	for i, m := range f.records {
		if m.ID == id && m.UserID == userID {
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

func TestRecordDerivesPercentage(t *testing.T) {
	repo := &fakeMockTestRepo{}
	uc := NewMockTestUseCase(repo)

	saved, err := uc.Record(context.Background(), &Model{
		UserID:         "u1",
		Date:           day("2024-03-15"),
		TestType:       TypeVARC,
		TotalQuestions: 50,
		Correct:        30,
		Incorrect:      15,
		Skipped:        5,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, saved.Percentage)
}

func TestRecordClampsCounts(t *testing.T) {
	repo := &fakeMockTestRepo{}
	uc := NewMockTestUseCase(repo)

	saved, err := uc.Record(context.Background(), &Model{
		UserID:         "u1",
		Date:           day("2024-03-15"),
		TestType:       TypeQA,
		TotalQuestions: -10,
		Correct:        -3,
		Incorrect:      -1,
		Skipped:        -2,
		Percentage:     140,
	})
	require.NoError(t, err)
	assert.Zero(t, saved.TotalQuestions)
	assert.Zero(t, saved.Correct)
	assert.Zero(t, saved.Incorrect)
	assert.Zero(t, saved.Skipped)
	assert.Equal(t, 100, saved.Percentage)
}

func TestRecordKeepsExplicitPercentage(t *testing.T) {
	repo := &fakeMockTestRepo{}
	uc := NewMockTestUseCase(repo)

	saved, err := uc.Record(context.Background(), &Model{
		UserID:         "u1",
		Date:           day("2024-03-15"),
		TestType:       TypeFull,
		TotalQuestions: 100,
		Correct:        50,
		Percentage:     47,
	})
	require.NoError(t, err)
	assert.Equal(t, 47, saved.Percentage)
}

func TestSummaryWeeklyAverages(t *testing.T) {
	repo := &fakeMockTestRepo{records: []*Model{
		{ID: "m1", UserID: "u1", Date: day("2024-03-12"), TestType: TypeVARC, Percentage: 60},
		{ID: "m2", UserID: "u1", Date: day("2024-03-13"), TestType: TypeVARC, Percentage: 70},
		{ID: "m3", UserID: "u1", Date: day("2024-03-14"), TestType: TypeQA, Percentage: 40},
	}}
	uc := NewMockTestUseCase(repo)

	month, _ := period.ParseMonth("2024-03")
	out, err := uc.Summary(context.Background(), "u1", month)
	require.NoError(t, err)
	require.Len(t, out.WeeklyBreakdown, 5)

	// all three tests land in the Mar 11-17 bucket
	week := out.WeeklyBreakdown[2]
	assert.Equal(t, 3, week.TotalMocks)
	assert.Equal(t, 57, week.AvgPercent) // round(170/3)
	assert.Equal(t, 65, week.AvgPercentByType[TypeVARC])
	assert.Equal(t, 40, week.AvgPercentByType[TypeQA])
	assert.Equal(t, 2, week.ByType[TypeVARC])

	assert.Equal(t, 3, out.MonthlyStats.TotalMocks)
	assert.Equal(t, 70, out.MonthlyStats.BestPercent)
	assert.Equal(t, 40, out.MonthlyStats.WorstPercent)
	assert.Equal(t, map[string]int{"2024-03-12": 1, "2024-03-13": 1, "2024-03-14": 1}, out.DateCounts)
	assert.Len(t, out.SeriesByType[TypeVARC], 2)
}

func TestSummaryEmptyMonth(t *testing.T) {
	uc := NewMockTestUseCase(&fakeMockTestRepo{})

	month, _ := period.ParseMonth("2024-03")
	out, err := uc.Summary(context.Background(), "u1", month)
	require.NoError(t, err)
	assert.Zero(t, out.MonthlyStats.TotalMocks)
	assert.Zero(t, out.MonthlyStats.AvgPercent)
	assert.Zero(t, out.MonthlyStats.BestPercent)
	for _, week := range out.WeeklyBreakdown {
		assert.Zero(t, week.AvgPercent)
	}
}
