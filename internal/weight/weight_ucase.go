package weight

import (
	"context"
	"errors"
	"math"
	"time"

	"go.elastic.co/apm"

	"github.com/task-meadow/server/internal/period"
	"github.com/task-meadow/server/internal/profile"
)

var ErrBadPeriod = errors.New("unknown period name")

type WeightUseCaseImpl struct {
	Repo        Repository
	ProfileRepo profile.Repository
	Now         func() time.Time
}

func NewWeightUseCase(repo Repository, profileRepo profile.Repository) *WeightUseCaseImpl {
	return &WeightUseCaseImpl{Repo: repo, ProfileRepo: profileRepo, Now: time.Now}
}

func (uc *WeightUseCaseImpl) today() time.Time {
	return period.Day(uc.Now().UTC())
}

func (uc *WeightUseCaseImpl) ListPeriod(ctx context.Context, userID, periodName string) ([]*Entry, error) {
	span, ctx := apm.StartSpan(ctx, "WeightUseCaseImpl.ListPeriod", "service")
	defer span.End()

	end := uc.today()
	var start time.Time
	switch periodName {
	case "week":
		start = end.AddDate(0, 0, -6)
	case "month":
		start = end.AddDate(0, -1, 0)
	case "year":
		start = end.AddDate(-1, 0, 0)
	default:
		return nil, ErrBadPeriod
	}
	return uc.Repo.FindByRange(ctx, userID, start, end)
}

func (uc *WeightUseCaseImpl) ListRange(ctx context.Context, userID string, start, end time.Time) ([]*Entry, error) {
	span, ctx := apm.StartSpan(ctx, "WeightUseCaseImpl.ListRange", "service")
	defer span.End()

	return uc.Repo.FindByRange(ctx, userID, period.Day(start), period.Day(end))
}

// Enter upserts the day's entry, stamps it with its Monday week start
// and mirrors the value into the profile so both screens agree.
func (uc *WeightUseCaseImpl) Enter(ctx context.Context, e *Entry) (*Entry, error) {
	span, ctx := apm.StartSpan(ctx, "WeightUseCaseImpl.Enter", "service")
	defer span.End()

	if e.Date.IsZero() {
		e.Date = uc.today()
	} else {
		e.Date = period.Day(e.Date)
	}
	e.WeekStart = period.MondayOnOrBefore(e.Date)

	saved, err := uc.Repo.Upsert(ctx, e)
	if err != nil {
		return nil, err
	}
	if err = uc.ProfileRepo.UpdateWeight(ctx, e.UserID, e.Weight); err != nil {
		return nil, err
	}
	return saved, nil
}

func (uc *WeightUseCaseImpl) Analytics(ctx context.Context, userID string) (*Analytics, error) {
	span, ctx := apm.StartSpan(ctx, "WeightUseCaseImpl.Analytics", "service")
	defer span.End()

	latest, err := uc.Repo.FindLatest(ctx, userID, 2)
	if err != nil {
		return nil, err
	}
	out := &Analytics{Trend: TrendStable}
	if len(latest) > 0 {
		out.CurrentWeight = latest[0].Weight
	}
	if len(latest) == 2 {
		delta := latest[0].Weight - latest[1].Weight
		if math.Abs(delta) >= 0.1 {
			if delta > 0 {
				out.Trend = TrendIncreasing
			} else {
				out.Trend = TrendDecreasing
			}
		}
	}

	p, err := uc.ProfileRepo.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		out.TargetWeight = p.TargetWeight
	}
	if out.CurrentWeight > 0 && out.TargetWeight > 0 {
		out.Difference = out.CurrentWeight - out.TargetWeight
	}

	gate, err := uc.CanEnter(ctx, userID)
	if err != nil {
		return nil, err
	}
	out.CanEnterToday = gate.CanEnter
	return out, nil
}

// CanEnter reports the weekly entry gate: one entry per Monday-aligned
// week. When blocked, NextDate names the Monday the gate reopens.
func (uc *WeightUseCaseImpl) CanEnter(ctx context.Context, userID string) (*EntryGate, error) {
	span, ctx := apm.StartSpan(ctx, "WeightUseCaseImpl.CanEnter", "service")
	defer span.End()

	today := uc.today()
	taken, err := uc.Repo.HasEntryForWeek(ctx, userID, period.MondayOnOrBefore(today))
	if err != nil {
		return nil, err
	}
	gate := &EntryGate{CanEnter: !taken}
	if taken {
		gate.NextDate = period.FormatDay(period.NextMonday(today))
	} else {
		gate.NextDate = period.FormatDay(today)
	}
	return gate, nil
}
