package habit

import (
	"context"
	"time"

	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/period"
)

// Habit kinds. Daily habits tick one cell per calendar day, weekly
// habits one cell per display week of the month.
const (
	KindDaily  = "daily"
	KindWeekly = "weekly"
)

func ValidKind(kind string) bool {
	return kind == KindDaily || kind == KindWeekly
}

// Definition a habit row scoped to a single month grid
type Definition struct {
	ID       string
	UserID   string
	MonthKey string
	Kind     string
	Name     string
	Goal     int
	Order    int
}

// DailyMark a single daily cell
type DailyMark struct {
	DefinitionID string
	Date         time.Time
	Completed    bool
}

// WeeklyMark a single weekly cell, week index 1-based
type WeeklyMark struct {
	DefinitionID string
	WeekIndex    int
	Completed    bool
}

// GridHabit one habit row as served to the client; Checks always has
// exactly one slot per column of the month grid
type GridHabit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Goal   int    `json:"goal"`
	Order  int    `json:"order"`
	Checks []bool `json:"checks"`
}

// Grid the full habit grid of one month
type Grid struct {
	MonthKey string      `json:"monthKey"`
	Columns  int         `json:"columns"`
	Habits   []GridHabit `json:"habits"`
}

// SaveHabit one habit row as submitted on a full-grid save. Rows with
// an ID reconcile against an existing definition, rows without one
// create a new definition.
type SaveHabit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Goal   int    `json:"goal"`
	Checks []bool `json:"checks"`
}

type Repository interface {
	Begin(ctx context.Context) (driver.ITransactionalDB, error)
	WithConn(conn driver.ITransactionalDB) Repository

	Definitions(ctx context.Context, userID, monthKey, kind string) ([]*Definition, error)
	FindDefinition(ctx context.Context, userID, id string) (*Definition, error)
	CreateDefinition(ctx context.Context, def *Definition) error
	UpdateDefinition(ctx context.Context, def *Definition) error
	DeleteDefinition(ctx context.Context, id string) error

	DailyMarks(ctx context.Context, userID, monthKey string) ([]*DailyMark, error)
	UpsertDailyMark(ctx context.Context, defID string, date time.Time, completed bool) error
	WeeklyMarks(ctx context.Context, userID, monthKey string) ([]*WeeklyMark, error)
	UpsertWeeklyMark(ctx context.Context, defID string, weekIndex int, completed bool) error
	DeleteMarks(ctx context.Context, defID string) error
}

type UseCase interface {
	Grid(ctx context.Context, userID string, month period.Month, kind string) (*Grid, error)
	SaveGrid(ctx context.Context, userID string, month period.Month, kind string, habits []SaveHabit) (*Grid, error)
	ToggleDaily(ctx context.Context, userID, defID string, date time.Time, completed bool) (*Grid, error)
	ToggleWeekly(ctx context.Context, userID, defID string, weekIndex int, completed bool) (*Grid, error)
	DeleteHabit(ctx context.Context, userID, id string) (bool, error)
}
