package habit

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/period"
)

type fakeTx struct{}

func (fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (driver.ISQLRows, error) {
	return nil, nil
}
func (tx fakeTx) BeginTx(ctx context.Context, opts *driver.TxOptions) (driver.ITransactionalDB, error) {
	return tx, nil
}
func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }
func (fakeTx) Close(ctx context.Context) error    { return nil }
func (fakeTx) Ping() error                        { return nil }

type fakeHabitRepo struct {
	defs   map[string]*Definition
	daily  map[string]map[string]bool // defID -> day token -> completed
	weekly map[string]map[int]bool    // defID -> week index -> completed
	seq    int
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{
		defs:   map[string]*Definition{},
		daily:  map[string]map[string]bool{},
		weekly: map[string]map[int]bool{},
	}
}

func (f *fakeHabitRepo) Begin(ctx context.Context) (driver.ITransactionalDB, error) {
	return fakeTx{}, nil
}

func (f *fakeHabitRepo) WithConn(conn driver.ITransactionalDB) Repository { return f }

func (f *fakeHabitRepo) Definitions(ctx context.Context, userID, monthKey, kind string) ([]*Definition, error) {
	var out []*Definition
	for _, d := range f.defs {
		if d.UserID == userID && d.MonthKey == monthKey && d.Kind == kind {
			out = append(out, d)
		}
	}
	// position order, same as the storage query
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeHabitRepo) FindDefinition(ctx context.Context, userID, id string) (*Definition, error) {
	d, ok := f.defs[id]
	if !ok || d.UserID != userID {
		return nil, nil
	}
	return d, nil
}

func (f *fakeHabitRepo) CreateDefinition(ctx context.Context, def *Definition) error {
	f.seq++
	def.ID = fmt.Sprintf("def%d", f.seq)
	cp := *def
	f.defs[def.ID] = &cp
	return nil
}

func (f *fakeHabitRepo) UpdateDefinition(ctx context.Context, def *Definition) error {
	cp := *def
	f.defs[def.ID] = &cp
	return nil
}

func (f *fakeHabitRepo) DeleteDefinition(ctx context.Context, id string) error {
	delete(f.defs, id)
	return nil
}

func (f *fakeHabitRepo) DailyMarks(ctx context.Context, userID, monthKey string) ([]*DailyMark, error) {
	var out []*DailyMark
	for defID, marks := range f.daily {
		d, ok := f.defs[defID]
		if !ok || d.UserID != userID || d.MonthKey != monthKey {
			continue
		}
		for token, completed := range marks {
			date, err := period.ParseDay(token)
			if err != nil {
				return nil, err
			}
			out = append(out, &DailyMark{DefinitionID: defID, Date: date, Completed: completed})
		}
	}
	return out, nil
}

func (f *fakeHabitRepo) UpsertDailyMark(ctx context.Context, defID string, date time.Time, completed bool) error {
	if f.daily[defID] == nil {
		f.daily[defID] = map[string]bool{}
	}
	f.daily[defID][period.FormatDay(date)] = completed
	return nil
}

func (f *fakeHabitRepo) WeeklyMarks(ctx context.Context, userID, monthKey string) ([]*WeeklyMark, error) {
	var out []*WeeklyMark
	for defID, marks := range f.weekly {
		d, ok := f.defs[defID]
		if !ok || d.UserID != userID || d.MonthKey != monthKey {
			continue
		}
		for idx, completed := range marks {
			out = append(out, &WeeklyMark{DefinitionID: defID, WeekIndex: idx, Completed: completed})
		}
	}
	return out, nil
}

func (f *fakeHabitRepo) UpsertWeeklyMark(ctx context.Context, defID string, weekIndex int, completed bool) error {
	if f.weekly[defID] == nil {
		f.weekly[defID] = map[int]bool{}
	}
	f.weekly[defID][weekIndex] = completed
	return nil
}

func (f *fakeHabitRepo) DeleteMarks(ctx context.Context, defID string) error {
	delete(f.daily, defID)
	delete(f.weekly, defID)
	return nil
}

func month(t *testing.T, key string) period.Month {
	m, err := period.ParseMonth(key)
	require.NoError(t, err)
	return m
}

func checksWith(width int, ticked ...int) []bool {
	checks := make([]bool, width)
	for _, i := range ticked {
		checks[i] = true
	}
	return checks
}

func TestSaveGridCreatesDefinitions(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUseCase(repo)
	m := month(t, "2024-03")

	grid, err := uc.SaveGrid(context.Background(), "u1", m, KindDaily, []SaveHabit{
		{Name: "reading", Goal: 20, Checks: checksWith(31, 0, 2)},
		{Name: "meditation", Goal: 31, Checks: checksWith(31)},
	})
	require.NoError(t, err)
	require.Len(t, grid.Habits, 2)
	assert.Equal(t, 31, grid.Columns)
	assert.Equal(t, "reading", grid.Habits[0].Name)
	assert.Equal(t, 0, grid.Habits[0].Order)
	assert.Equal(t, "meditation", grid.Habits[1].Name)

	// sparse storage: only ticked slots got a row
	assert.Len(t, repo.daily[grid.Habits[0].ID], 2)
	assert.Empty(t, repo.daily[grid.Habits[1].ID])
}

func TestSaveGridGridIsDense(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUseCase(repo)
	m := month(t, "2024-02") // leap month, 29 days

	grid, err := uc.SaveGrid(context.Background(), "u1", m, KindDaily, []SaveHabit{
		{Name: "reading", Checks: checksWith(3, 1)}, // short row gets padded
	})
	require.NoError(t, err)
	require.Len(t, grid.Habits, 1)
	assert.Len(t, grid.Habits[0].Checks, 29)
	assert.True(t, grid.Habits[0].Checks[1])
}

func TestSaveGridReconcilesByDiff(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUseCase(repo)
	m := month(t, "2024-03")

	grid, err := uc.SaveGrid(context.Background(), "u1", m, KindDaily, []SaveHabit{
		{Name: "a", Checks: checksWith(31, 0)},
		{Name: "b", Checks: checksWith(31, 1)},
		{Name: "c", Checks: checksWith(31, 2)},
	})
	require.NoError(t, err)
	require.Len(t, grid.Habits, 3)
	idA, idB, idC := grid.Habits[0].ID, grid.Habits[1].ID, grid.Habits[2].ID

	// resubmit without b: a renamed, c untouched
	grid, err = uc.SaveGrid(context.Background(), "u1", m, KindDaily, []SaveHabit{
		{ID: idA, Name: "a2", Goal: 5, Checks: checksWith(31, 0, 3)},
		{ID: idC, Name: "c", Checks: checksWith(31, 2)},
	})
	require.NoError(t, err)
	require.Len(t, grid.Habits, 2)
	assert.Equal(t, "a2", grid.Habits[0].Name)
	assert.Equal(t, 5, grid.Habits[0].Goal)
	assert.Equal(t, idA, grid.Habits[0].ID)
	assert.Equal(t, idC, grid.Habits[1].ID)

	// b is gone together with its completions
	_, exists := repo.defs[idB]
	assert.False(t, exists)
	assert.Empty(t, repo.daily[idB])
}

func TestSaveGridDropsBlankNames(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUseCase(repo)
	m := month(t, "2024-03")

	grid, err := uc.SaveGrid(context.Background(), "u1", m, KindDaily, []SaveHabit{
		{Name: "   ", Checks: checksWith(31, 0)},
		{Name: "kept", Goal: -4, Checks: checksWith(31)},
	})
	require.NoError(t, err)
	require.Len(t, grid.Habits, 1)
	assert.Equal(t, "kept", grid.Habits[0].Name)
	assert.Zero(t, grid.Habits[0].Goal)
}

func TestSaveGridUnknownIDBecomesCreate(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUseCase(repo)
	m := month(t, "2024-03")

	grid, err := uc.SaveGrid(context.Background(), "u1", m, KindDaily, []SaveHabit{
		{ID: "someone-elses-id", Name: "stretch", Checks: checksWith(31)},
	})
	require.NoError(t, err)
	require.Len(t, grid.Habits, 1)
	assert.NotEqual(t, "someone-elses-id", grid.Habits[0].ID)
}

func TestWeeklyGridWidth(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUseCase(repo)
	m := month(t, "2024-03") // 6-row grid

	grid, err := uc.SaveGrid(context.Background(), "u1", m, KindWeekly, []SaveHabit{
		{Name: "meal prep", Checks: checksWith(6, 0, 5)},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, grid.Columns)
	require.Len(t, grid.Habits, 1)
	assert.Len(t, grid.Habits[0].Checks, 6)
	assert.True(t, grid.Habits[0].Checks[5])
}

func TestToggleDaily(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUseCase(repo)
	m := month(t, "2024-03")

	grid, err := uc.SaveGrid(context.Background(), "u1", m, KindDaily, []SaveHabit{
		{Name: "reading", Checks: checksWith(31)},
	})
	require.NoError(t, err)
	id := grid.Habits[0].ID
	date, _ := period.ParseDay("2024-03-15")

	grid, err = uc.ToggleDaily(context.Background(), "u1", id, date, true)
	require.NoError(t, err)
	assert.True(t, grid.Habits[0].Checks[14])

	// repeated toggles keep a single stored row per slot
	_, err = uc.ToggleDaily(context.Background(), "u1", id, date, false)
	require.NoError(t, err)
	_, err = uc.ToggleDaily(context.Background(), "u1", id, date, true)
	require.NoError(t, err)
	assert.Len(t, repo.daily[id], 1)
}

func TestToggleDailyUnknownHabit(t *testing.T) {
	uc := NewHabitUseCase(newFakeHabitRepo())
	date, _ := period.ParseDay("2024-03-15")

	_, err := uc.ToggleDaily(context.Background(), "u1", "missing", date, true)
	assert.Equal(t, ErrNoSuchHabit, err)
}

func TestToggleDailyOtherUsersHabit(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUseCase(repo)
	m := month(t, "2024-03")

	grid, err := uc.SaveGrid(context.Background(), "u1", m, KindDaily, []SaveHabit{
		{Name: "reading", Checks: checksWith(31)},
	})
	require.NoError(t, err)
	date, _ := period.ParseDay("2024-03-15")

	_, err = uc.ToggleDaily(context.Background(), "u2", grid.Habits[0].ID, date, true)
	assert.Equal(t, ErrNoSuchHabit, err)
}

func TestToggleDailyOutsideMonth(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUseCase(repo)
	m := month(t, "2024-03")

	grid, err := uc.SaveGrid(context.Background(), "u1", m, KindDaily, []SaveHabit{
		{Name: "reading", Checks: checksWith(31)},
	})
	require.NoError(t, err)
	date, _ := period.ParseDay("2024-04-01")

	_, err = uc.ToggleDaily(context.Background(), "u1", grid.Habits[0].ID, date, true)
	assert.Equal(t, ErrBadSlot, err)
}

func TestToggleWeekly(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUseCase(repo)
	m := month(t, "2024-03")

	grid, err := uc.SaveGrid(context.Background(), "u1", m, KindWeekly, []SaveHabit{
		{Name: "meal prep", Checks: checksWith(6)},
	})
	require.NoError(t, err)
	id := grid.Habits[0].ID

	grid, err = uc.ToggleWeekly(context.Background(), "u1", id, 3, true)
	require.NoError(t, err)
	assert.True(t, grid.Habits[0].Checks[2])

	_, err = uc.ToggleWeekly(context.Background(), "u1", id, 7, true)
	assert.Equal(t, ErrBadSlot, err)
}

func TestDeleteHabit(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUseCase(repo)
	m := month(t, "2024-03")

	grid, err := uc.SaveGrid(context.Background(), "u1", m, KindDaily, []SaveHabit{
		{Name: "reading", Checks: checksWith(31, 0, 1)},
	})
	require.NoError(t, err)
	id := grid.Habits[0].ID

	deleted, err := uc.DeleteHabit(context.Background(), "u1", id)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, repo.defs)
	assert.Empty(t, repo.daily[id])

	deleted, err = uc.DeleteHabit(context.Background(), "u1", id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
