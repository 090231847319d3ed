package workout

import (
	"context"
	"time"

	"github.com/task-meadow/server/internal/period"
	"github.com/task-meadow/server/internal/summary"
)

// Cardio optional cardio block of a workout, kept only when it names an
// activity or a duration
type Cardio struct {
	Activity string  `json:"activity"`
	Duration int     `json:"duration"` // minutes
	Distance float64 `json:"distance"` // kilometers
	Notes    string  `json:"notes"`
}

// PersonalRecord a lift logged inside a workout
type PersonalRecord struct {
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
	Notes    string  `json:"notes"`
}

// Model one workout, at most one per user per calendar day
type Model struct {
	ID              string           `json:"id"`
	UserID          string           `json:"-"`
	Date            time.Time        `json:"date"`
	MusclesHit      []string         `json:"musclesHit"`
	Duration        int              `json:"duration"` // minutes
	Cardio          *Cardio          `json:"cardio"`
	PersonalRecords []PersonalRecord `json:"personalRecords"`
	AdditionalNotes string           `json:"additionalNotes"`
}

// DayStats dense per-day entry of a week breakdown; days without a
// workout still appear, zero valued
type DayStats struct {
	Date       string           `json:"date"`
	TotalTime  int              `json:"totalTime"`
	CardioTime int              `json:"cardioTime"`
	Exercises  []PersonalRecord `json:"exercises"`
	Cardio     *Cardio          `json:"cardio"`
	MusclesHit []string         `json:"musclesHit"`
}

// WeekStats rollup of one display week
type WeekStats struct {
	WeekNumber      int        `json:"weekNumber"`
	StartDate       string     `json:"startDate"`
	EndDate         string     `json:"endDate"`
	TotalTime       int        `json:"totalTime"`
	CardioTime      int        `json:"cardioTime"`
	Sessions        int        `json:"sessions"`
	ActiveDays      int        `json:"activeDays"`
	UniqueExercises int        `json:"uniqueExercises"`
	UniqueCardio    int        `json:"uniqueCardio"`
	MusclesHit      []string   `json:"musclesHit"`
	DailyBreakdown  []DayStats `json:"dailyBreakdown"`
}

// MonthlyStats month rollup over the week breakdown
type MonthlyStats struct {
	TotalTime             int                 `json:"totalTime"`
	TotalCardioTime       int                 `json:"totalCardioTime"`
	TotalSessions         int                 `json:"totalSessions"`
	TotalActiveDays       int                 `json:"totalActiveDays"`
	AverageTimePerSession int                 `json:"averageTimePerSession"`
	MostFrequentMuscles   []summary.Frequency `json:"mostFrequentMuscles"`
	MostFrequentExercises []summary.Frequency `json:"mostFrequentExercises"`
	MostFrequentCardio    []summary.Frequency `json:"mostFrequentCardio"`
	TopMuscles            []summary.Frequency `json:"topMuscles"`    // every muscle tied at the highest count
	BottomMuscles         []summary.Frequency `json:"bottomMuscles"` // every muscle tied at the lowest count
}

// MonthlySummary response payload of GET /workouts/summary
type MonthlySummary struct {
	MonthlyStats    *MonthlyStats `json:"monthlyStats"`
	WeeklyBreakdown []*WeekStats  `json:"weeklyBreakdown"`
}

type Repository interface {
	FindByDay(ctx context.Context, userID string, day time.Time) (*Model, error)
	FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Model, error)
	Upsert(ctx context.Context, post *Model) (*Model, error)
	DeleteByDay(ctx context.Context, userID string, day time.Time) (bool, error)
}

type UseCase interface {
	GetByDay(ctx context.Context, userID string, day time.Time) (*Model, error)
	Save(ctx context.Context, post *Model) (*Model, error)
	DeleteByDay(ctx context.Context, userID string, day time.Time) (bool, error)
	Summary(ctx context.Context, userID string, month period.Month) (*MonthlySummary, error)
}
