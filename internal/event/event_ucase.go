package event

import (
	"context"
	"errors"
	"time"

	"go.elastic.co/apm"

	"github.com/task-meadow/server/internal/period"
)

var ErrNoSuchEvent = errors.New("no such event")

type EventUseCaseImpl struct {
	Repo Repository
}

func NewEventUseCase(repo Repository) *EventUseCaseImpl {
	return &EventUseCaseImpl{Repo: repo}
}

func (uc *EventUseCaseImpl) ListByDay(ctx context.Context, userID string, day time.Time) ([]*Model, error) {
	span, ctx := apm.StartSpan(ctx, "EventUseCaseImpl.ListByDay", "service")
	defer span.End()

	day = period.Day(day)
	return uc.Repo.FindByRange(ctx, userID, day, day)
}

func (uc *EventUseCaseImpl) ListByRange(ctx context.Context, userID string, start, end time.Time) ([]*Model, error) {
	span, ctx := apm.StartSpan(ctx, "EventUseCaseImpl.ListByRange", "service")
	defer span.End()

	return uc.Repo.FindByRange(ctx, userID, period.Day(start), period.Day(end))
}

func (uc *EventUseCaseImpl) Create(ctx context.Context, ev *Model) (*Model, error) {
	span, ctx := apm.StartSpan(ctx, "EventUseCaseImpl.Create", "service")
	defer span.End()

	ev.Date = period.Day(ev.Date)
	if ev.EventType == "" {
		ev.EventType = "general"
	}
	return uc.Repo.Save(ctx, ev)
}

// Update replaces the stored event field for field. An event belonging
// to another user is reported as missing, not forbidden.
func (uc *EventUseCaseImpl) Update(ctx context.Context, ev *Model) (*Model, error) {
	span, ctx := apm.StartSpan(ctx, "EventUseCaseImpl.Update", "service")
	defer span.End()

	current, err := uc.Repo.FindByID(ctx, ev.UserID, ev.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoSuchEvent
	}
	ev.Date = period.Day(ev.Date)
	if ev.EventType == "" {
		ev.EventType = "general"
	}
	if err = uc.Repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (uc *EventUseCaseImpl) Delete(ctx context.Context, userID, id string) (bool, error) {
	span, ctx := apm.StartSpan(ctx, "EventUseCaseImpl.Delete", "service")
	defer span.End()

	current, err := uc.Repo.FindByID(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}
	if err = uc.Repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
