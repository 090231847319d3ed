package habit

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.elastic.co/apm"

	"github.com/task-meadow/server/internal/period"
)

var (
	ErrNoSuchHabit = errors.New("no such habit")
	ErrBadSlot     = errors.New("slot out of range for month")
)

type HabitUseCaseImpl struct {
	Repo Repository
}

func NewHabitUseCase(repo Repository) *HabitUseCaseImpl {
	return &HabitUseCaseImpl{Repo: repo}
}

func columnCount(month period.Month, kind string) int {
	if kind == KindWeekly {
		return month.Weeks()
	}
	return month.Days()
}

func (uc *HabitUseCaseImpl) Grid(ctx context.Context, userID string, month period.Month, kind string) (*Grid, error) {
	span, ctx := apm.StartSpan(ctx, "HabitUseCaseImpl.Grid", "service")
	defer span.End()

	return uc.buildGrid(ctx, uc.Repo, userID, month, kind)
}

func (uc *HabitUseCaseImpl) buildGrid(ctx context.Context, repo Repository, userID string, month period.Month, kind string) (*Grid, error) {
	defs, err := repo.Definitions(ctx, userID, month.Key(), kind)
	if err != nil {
		return nil, err
	}

	checks := make(map[string][]bool, len(defs))
	width := columnCount(month, kind)
	for _, d := range defs {
		checks[d.ID] = make([]bool, width)
	}

	if kind == KindDaily {
		marks, err := repo.DailyMarks(ctx, userID, month.Key())
		if err != nil {
			return nil, err
		}
		for _, m := range marks {
			if row, ok := checks[m.DefinitionID]; ok && month.Contains(m.Date) {
				row[m.Date.Day()-1] = m.Completed
			}
		}
	} else {
		marks, err := repo.WeeklyMarks(ctx, userID, month.Key())
		if err != nil {
			return nil, err
		}
		for _, m := range marks {
			if row, ok := checks[m.DefinitionID]; ok && m.WeekIndex >= 1 && m.WeekIndex <= width {
				row[m.WeekIndex-1] = m.Completed
			}
		}
	}

	grid := &Grid{MonthKey: month.Key(), Columns: width, Habits: []GridHabit{}}
	for _, d := range defs {
		grid.Habits = append(grid.Habits, GridHabit{
			ID:     d.ID,
			Name:   d.Name,
			Goal:   d.Goal,
			Order:  d.Order,
			Checks: checks[d.ID],
		})
	}
	return grid, nil
}

// SaveGrid reconciles a full submitted grid against stored state in one
// transaction: rows carrying a known ID update that definition and its
// marks, rows without one create a new definition, and stored
// definitions missing from the submission are removed along with their
// marks. Blank-named rows are dropped before the diff.
func (uc *HabitUseCaseImpl) SaveGrid(ctx context.Context, userID string, month period.Month, kind string, habits []SaveHabit) (*Grid, error) {
	span, ctx := apm.StartSpan(ctx, "HabitUseCaseImpl.SaveGrid", "service")
	defer span.End()

	width := columnCount(month, kind)
	submitted := sanitize(habits, width)

	existing, err := uc.Repo.Definitions(ctx, userID, month.Key(), kind)
	if err != nil {
		return nil, err
	}
	known := make(map[string]*Definition, len(existing))
	for _, d := range existing {
		known[d.ID] = d
	}

	tx, err := uc.Repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)
	repo := uc.Repo.WithConn(tx)

	kept := make(map[string]bool, len(submitted))
	for order, h := range submitted {
		if def, ok := known[h.ID]; ok {
			kept[h.ID] = true
			def.Name = h.Name
			def.Goal = h.Goal
			def.Order = order
			if err = repo.UpdateDefinition(ctx, def); err != nil {
				return nil, err
			}
			// rewrite every slot so unticked cells overwrite stale marks
			if err = uc.writeMarks(ctx, repo, def.ID, month, kind, h.Checks, false); err != nil {
				return nil, err
			}
		} else {
			def := &Definition{
				UserID:   userID,
				MonthKey: month.Key(),
				Kind:     kind,
				Name:     h.Name,
				Goal:     h.Goal,
				Order:    order,
			}
			if err = repo.CreateDefinition(ctx, def); err != nil {
				return nil, err
			}
			if err = uc.writeMarks(ctx, repo, def.ID, month, kind, h.Checks, true); err != nil {
				return nil, err
			}
		}
	}

	for _, d := range existing {
		if kept[d.ID] {
			continue
		}
		if err = repo.DeleteMarks(ctx, d.ID); err != nil {
			return nil, err
		}
		if err = repo.DeleteDefinition(ctx, d.ID); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return uc.buildGrid(ctx, uc.Repo, userID, month, kind)
}

// sanitize drops blank-named rows, clamps goals and normalizes every
// check row to exactly width slots.
func sanitize(habits []SaveHabit, width int) []SaveHabit {
	out := make([]SaveHabit, 0, len(habits))
	for _, h := range habits {
		h.Name = strings.TrimSpace(h.Name)
		if h.Name == "" {
			continue
		}
		if h.Goal < 0 {
			h.Goal = 0
		}
		checks := make([]bool, width)
		copy(checks, h.Checks)
		h.Checks = checks
		out = append(out, h)
	}
	return out
}

// writeMarks persists one habit's check row. For fresh definitions only
// ticked slots are written, for existing ones every slot is, so a cell
// cleared in the submission clears in storage too.
func (uc *HabitUseCaseImpl) writeMarks(ctx context.Context, repo Repository, defID string, month period.Month, kind string, checks []bool, onlyTicked bool) error {
	for i, done := range checks {
		if onlyTicked && !done {
			continue
		}
		var err error
		if kind == KindDaily {
			err = repo.UpsertDailyMark(ctx, defID, month.Start().AddDate(0, 0, i), done)
		} else {
			err = repo.UpsertWeeklyMark(ctx, defID, i+1, done)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (uc *HabitUseCaseImpl) ToggleDaily(ctx context.Context, userID, defID string, date time.Time, completed bool) (*Grid, error) {
	span, ctx := apm.StartSpan(ctx, "HabitUseCaseImpl.ToggleDaily", "service")
	defer span.End()

	def, err := uc.Repo.FindDefinition(ctx, userID, defID)
	if err != nil {
		return nil, err
	}
	if def == nil || def.Kind != KindDaily {
		return nil, ErrNoSuchHabit
	}
	month, err := period.ParseMonth(def.MonthKey)
	if err != nil {
		return nil, err
	}
	date = period.Day(date)
	if !month.Contains(date) {
		return nil, ErrBadSlot
	}
	if err = uc.Repo.UpsertDailyMark(ctx, defID, date, completed); err != nil {
		return nil, err
	}
	return uc.buildGrid(ctx, uc.Repo, userID, month, KindDaily)
}

func (uc *HabitUseCaseImpl) ToggleWeekly(ctx context.Context, userID, defID string, weekIndex int, completed bool) (*Grid, error) {
	span, ctx := apm.StartSpan(ctx, "HabitUseCaseImpl.ToggleWeekly", "service")
	defer span.End()

	def, err := uc.Repo.FindDefinition(ctx, userID, defID)
	if err != nil {
		return nil, err
	}
	if def == nil || def.Kind != KindWeekly {
		return nil, ErrNoSuchHabit
	}
	month, err := period.ParseMonth(def.MonthKey)
	if err != nil {
		return nil, err
	}
	if weekIndex < 1 || weekIndex > month.Weeks() {
		return nil, ErrBadSlot
	}
	if err = uc.Repo.UpsertWeeklyMark(ctx, defID, weekIndex, completed); err != nil {
		return nil, err
	}
	return uc.buildGrid(ctx, uc.Repo, userID, month, KindWeekly)
}

func (uc *HabitUseCaseImpl) DeleteHabit(ctx context.Context, userID, id string) (bool, error) {
	span, ctx := apm.StartSpan(ctx, "HabitUseCaseImpl.DeleteHabit", "service")
	defer span.End()

	def, err := uc.Repo.FindDefinition(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if def == nil {
		return false, nil
	}

	tx, err := uc.Repo.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)
	repo := uc.Repo.WithConn(tx)

	if err = repo.DeleteMarks(ctx, def.ID); err != nil {
		return false, err
	}
	if err = repo.DeleteDefinition(ctx, def.ID); err != nil {
		return false, err
	}
	if err = tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
