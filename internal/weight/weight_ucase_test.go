package weight

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/task-meadow/server/internal/period"
	"github.com/task-meadow/server/internal/profile"
)

type fakeWeightRepo struct {
	entries []*Entry
	seq     int
}

func (f *fakeWeightRepo) FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Entry, error) {
	var out []*Entry
	for _, e := range f.entries {
		if e.UserID == userID && !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWeightRepo) FindLatest(ctx context.Context, userID string, limit int) ([]*Entry, error) {
	var out []*Entry
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeWeightRepo) HasEntryForWeek(ctx context.Context, userID string, weekStart time.Time) (bool, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.WeekStart.Equal(weekStart) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWeightRepo) Upsert(ctx context.Context, e *Entry) (*Entry, error) {
	for i, old := range f.entries {
		if old.UserID == e.UserID && old.Date.Equal(e.Date) {
			e.ID = old.ID
			f.entries[i] = e
			return e, nil
		}
	}
	f.seq++
	e.ID = fmt.Sprintf("w%d", f.seq)
	f.entries = append(f.entries, e)
	return e, nil
}

type fakeProfileRepo struct {
	model *profile.Model
}

func (f *fakeProfileRepo) Find(ctx context.Context, userID string) (*profile.Model, error) {
	return f.model, nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, p *profile.Model) error {
	f.model = p
	return nil
}

func (f *fakeProfileRepo) UpdateWeight(ctx context.Context, userID string, weight float64) error {
	if f.model == nil {
		f.model = &profile.Model{UserID: userID}
	}
	f.model.Weight = weight
	return nil
}

func newWeightUseCaseAt(t *testing.T, now string) (*WeightUseCaseImpl, *fakeWeightRepo, *fakeProfileRepo) {
	t.Helper()
	clock, err := time.Parse(time.RFC3339, now)
	require.NoError(t, err)

	repo := &fakeWeightRepo{}
	profiles := &fakeProfileRepo{}
	uc := NewWeightUseCase(repo, profiles)
	uc.Now = func() time.Time { return clock }
	return uc, repo, profiles
}

func TestEnterStampsWeekStart(t *testing.T) {
	uc, _, profiles := newWeightUseCaseAt(t, "2024-03-15T10:30:00Z") // Friday

	saved, err := uc.Enter(context.Background(), &Entry{UserID: "u1", Weight: 80.5})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", period.FormatDay(saved.Date))
	assert.Equal(t, "2024-03-11", period.FormatDay(saved.WeekStart))
	require.NotNil(t, profiles.model)
	assert.Equal(t, 80.5, profiles.model.Weight)
}

func TestCanEnterWeeklyGate(t *testing.T) {
	uc, _, _ := newWeightUseCaseAt(t, "2024-03-15T10:30:00Z")

	gate, err := uc.CanEnter(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, gate.CanEnter)
	assert.Equal(t, "2024-03-15", gate.NextDate)

	_, err = uc.Enter(context.Background(), &Entry{UserID: "u1", Weight: 80})
	require.NoError(t, err)

	gate, err = uc.CanEnter(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, gate.CanEnter)
	assert.Equal(t, "2024-03-18", gate.NextDate)
}

func TestAnalyticsTrend(t *testing.T) {
	uc, repo, profiles := newWeightUseCaseAt(t, "2024-03-15T10:30:00Z")
	profiles.model = &profile.Model{UserID: "u1", TargetWeight: 75}
	repo.entries = []*Entry{
		{ID: "w1", UserID: "u1", Date: day("2024-03-04"), WeekStart: day("2024-03-04"), Weight: 82},
		{ID: "w2", UserID: "u1", Date: day("2024-03-11"), WeekStart: day("2024-03-11"), Weight: 81.2},
	}

	out, err := uc.Analytics(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 81.2, out.CurrentWeight)
	assert.Equal(t, 75.0, out.TargetWeight)
	assert.InDelta(t, 6.2, out.Difference, 1e-9)
	assert.Equal(t, TrendDecreasing, out.Trend)
	assert.False(t, out.CanEnterToday) // this week already has w2
}

func TestAnalyticsStableBelowThreshold(t *testing.T) {
	uc, repo, _ := newWeightUseCaseAt(t, "2024-03-15T10:30:00Z")
	repo.entries = []*Entry{
		{ID: "w1", UserID: "u1", Date: day("2024-03-04"), WeekStart: day("2024-03-04"), Weight: 80.05},
		{ID: "w2", UserID: "u1", Date: day("2024-03-11"), WeekStart: day("2024-03-11"), Weight: 80.1},
	}

	out, err := uc.Analytics(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, TrendStable, out.Trend)
}

func TestListPeriodRejectsUnknownName(t *testing.T) {
	uc, _, _ := newWeightUseCaseAt(t, "2024-03-15T10:30:00Z")

	_, err := uc.ListPeriod(context.Background(), "u1", "decade")
	assert.Equal(t, ErrBadPeriod, err)
}

func day(token string) time.Time {
	d, err := period.ParseDay(token)
	if err != nil {
		panic(err)
	}
	return d
}
