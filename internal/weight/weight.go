package weight

import (
	"context"
	"time"
)

// Entry one logged body weight, at most one per user per calendar day.
// WeekStart pins the entry to its Monday for the weekly entry gate.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Date      time.Time `json:"date"`
	WeekStart time.Time `json:"weekStart"`
	Weight    float64   `json:"weight" validate:"required,gt=0"`
	Notes     string    `json:"notes"`
}

// Trend direction of the two most recent entries
const (
	TrendStable     = "stable"
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// Analytics response payload of GET /weight-tracking/analytics
type Analytics struct {
	CurrentWeight float64 `json:"currentWeight"`
	TargetWeight  float64 `json:"targetWeight"`
	Difference    float64 `json:"difference"`
	Trend         string  `json:"trend"`
	CanEnterToday bool    `json:"canEnterToday"`
}

// EntryGate response payload of GET /weight-tracking/can-enter
type EntryGate struct {
	CanEnter bool   `json:"canEnter"`
	NextDate string `json:"nextDate"`
}

type Repository interface {
	FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Entry, error)
	FindLatest(ctx context.Context, userID string, limit int) ([]*Entry, error)
	HasEntryForWeek(ctx context.Context, userID string, weekStart time.Time) (bool, error)
	Upsert(ctx context.Context, e *Entry) (*Entry, error)
}

type UseCase interface {
	ListPeriod(ctx context.Context, userID, periodName string) ([]*Entry, error)
	ListRange(ctx context.Context, userID string, start, end time.Time) ([]*Entry, error)
	Enter(ctx context.Context, e *Entry) (*Entry, error)
	Analytics(ctx context.Context, userID string) (*Analytics, error)
	CanEnter(ctx context.Context, userID string) (*EntryGate, error)
}
