package event

import (
	"context"
	"time"
)

// Model a calendar event pinned to a single day. Value is free-form
// text, its meaning decided by EventType (a distance, a count, a tag).
type Model struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Date      time.Time `json:"date"`
	EventType string    `json:"eventType"`
	Value     string    `json:"value"`
	Notes     string    `json:"notes"`
}

type Repository interface {
	FindByID(ctx context.Context, userID, id string) (*Model, error)
	FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Model, error)
	Save(ctx context.Context, ev *Model) (*Model, error)
	Update(ctx context.Context, ev *Model) error
	Delete(ctx context.Context, id string) error
}

type UseCase interface {
	ListByDay(ctx context.Context, userID string, day time.Time) ([]*Model, error)
	ListByRange(ctx context.Context, userID string, start, end time.Time) ([]*Model, error)
	Create(ctx context.Context, ev *Model) (*Model, error)
	Update(ctx context.Context, ev *Model) (*Model, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}
