package analytics

import (
	"context"
	"time"

	"github.com/task-meadow/server/internal/event"
	"github.com/task-meadow/server/internal/mocktest"
	"github.com/task-meadow/server/internal/workout"
)

// HabitState one habit row collapsed to the queried day or week
type HabitState struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Goal      int    `json:"goal"`
	Completed bool   `json:"completed"`
}

// WeekContext locates the queried day inside its month grid
type WeekContext struct {
	MonthKey     string `json:"monthKey"`
	WeekIndex    int    `json:"weekIndex"`
	WeeksInMonth int    `json:"weeksInMonth"`
}

// DaySnapshot everything recorded for one calendar day, cross-feature
type DaySnapshot struct {
	Date         string           `json:"date"`
	Workout      *workout.Model   `json:"workout"`
	MockTests    []*mocktest.Model `json:"mockTests"`
	Events       []*event.Model   `json:"events"`
	DailyHabits  []HabitState     `json:"dailyHabits"`
	WeeklyHabits []HabitState     `json:"weeklyHabits"`
	WeekContext  WeekContext      `json:"weekContext"`
}

type UseCase interface {
	Day(ctx context.Context, userID string, day time.Time) (*DaySnapshot, error)
}
