package mocktest

import (
	"context"
	"time"

	"github.com/task-meadow/server/internal/period"
)

// Test section types. FULL marks a complete mock, the others single
// section attempts.
const (
	TypeVARC = "VARC"
	TypeLRDI = "LRDI"
	TypeQA   = "QA"
	TypeFull = "FULL"
)

func ValidType(t string) bool {
	switch t {
	case TypeVARC, TypeLRDI, TypeQA, TypeFull:
		return true
	}
	return false
}

// Model one recorded mock test attempt; several may share a day
type Model struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	Date           time.Time `json:"date"`
	TestType       string    `json:"testType" validate:"required"`
	TestName       string    `json:"testName"`
	Score          float64   `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Correct        int       `json:"correct"`
	Incorrect      int       `json:"incorrect"`
	Skipped        int       `json:"skipped"`
	Percentage     int       `json:"percentage"`
	Notes          string    `json:"notes"`
}

// ScorePoint one dot on a per-type percentage series
type ScorePoint struct {
	Date    string `json:"date"`
	Percent int    `json:"percent"`
}

// WeekStats rollup of one display week
type WeekStats struct {
	WeekNumber       int            `json:"weekNumber"`
	StartDate        string         `json:"startDate"`
	EndDate          string         `json:"endDate"`
	TotalMocks       int            `json:"totalMocks"`
	ByType           map[string]int `json:"byType"`
	AvgPercent       int            `json:"avgPercent"`
	AvgPercentByType map[string]int `json:"avgPercentByType"`
	Mocks            []*Model       `json:"mocks"`
}

// MonthlyStats month rollup of mock performance
type MonthlyStats struct {
	TotalMocks   int            `json:"totalMocks"`
	ByType       map[string]int `json:"byType"`
	AvgPercent   int            `json:"avgPercent"`
	BestPercent  int            `json:"bestPercent"`
	WorstPercent int            `json:"worstPercent"`
}

// MonthlySummary response payload of GET /cat/summary
type MonthlySummary struct {
	MonthlyStats    *MonthlyStats           `json:"monthlyStats"`
	WeeklyBreakdown []*WeekStats            `json:"weeklyBreakdown"`
	SeriesByType    map[string][]ScorePoint `json:"seriesByType"`
	DateCounts      map[string]int          `json:"dateCounts"`
}

type Repository interface {
	FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Model, error)
	Save(ctx context.Context, test *Model) (*Model, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type UseCase interface {
	ListByDay(ctx context.Context, userID string, day time.Time) ([]*Model, error)
	Record(ctx context.Context, test *Model) (*Model, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
	Summary(ctx context.Context, userID string, month period.Month) (*MonthlySummary, error)
}
