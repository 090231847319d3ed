package habit

import (
	"context"
	"database/sql"
	"time"

	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/uuid"
)

type PGHabitRepository struct {
	Conn        driver.ITransactionalDB
	IDGenerator uuid.Generator
}

func NewHabitRepository(conn driver.ITransactionalDB, gen uuid.Generator) *PGHabitRepository {
	return &PGHabitRepository{Conn: conn, IDGenerator: gen}
}

func (repo *PGHabitRepository) Begin(ctx context.Context) (driver.ITransactionalDB, error) {
	return repo.Conn.BeginTx(ctx, &driver.TxOptions{Isolation: sql.LevelReadCommitted})
}

// WithConn returns a copy of the repository bound to conn, so grid
// reconciliation can route every statement through one transaction.
func (repo *PGHabitRepository) WithConn(conn driver.ITransactionalDB) Repository {
	return &PGHabitRepository{Conn: conn, IDGenerator: repo.IDGenerator}
}

func (repo *PGHabitRepository) Definitions(ctx context.Context, userID, monthKey, kind string) ([]*Definition, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT id, user_id, month_key, kind, name, goal, position FROM habit_definitions
		 WHERE user_id = $1 AND month_key = $2 AND kind = $3 ORDER BY position ASC, id ASC`,
		userID, monthKey, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Definition
	for rows.Next() {
		var d Definition
		if err = rows.Scan(&d.ID, &d.UserID, &d.MonthKey, &d.Kind, &d.Name, &d.Goal, &d.Order); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, nil
}

func (repo *PGHabitRepository) FindDefinition(ctx context.Context, userID, id string) (*Definition, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT id, user_id, month_key, kind, name, goal, position FROM habit_definitions
		 WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	var d Definition
	if err = rows.Scan(&d.ID, &d.UserID, &d.MonthKey, &d.Kind, &d.Name, &d.Goal, &d.Order); err != nil {
		return nil, err
	}
	return &d, nil
}

func (repo *PGHabitRepository) CreateDefinition(ctx context.Context, def *Definition) error {
	id, err := repo.IDGenerator.Generate()
	if err != nil {
		return err
	}
	def.ID = id
	_, err = repo.Conn.ExecContext(ctx,
		`INSERT INTO habit_definitions (id, user_id, month_key, kind, name, goal, position) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		def.ID, def.UserID, def.MonthKey, def.Kind, def.Name, def.Goal, def.Order)
	return err
}

func (repo *PGHabitRepository) UpdateDefinition(ctx context.Context, def *Definition) error {
	_, err := repo.Conn.ExecContext(ctx,
		`UPDATE habit_definitions SET name = $1, goal = $2, position = $3 WHERE id = $4`,
		def.Name, def.Goal, def.Order, def.ID)
	return err
}

func (repo *PGHabitRepository) DeleteDefinition(ctx context.Context, id string) error {
	_, err := repo.Conn.ExecContext(ctx, `DELETE FROM habit_definitions WHERE id = $1`, id)
	return err
}

func (repo *PGHabitRepository) DailyMarks(ctx context.Context, userID, monthKey string) ([]*DailyMark, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT m.habit_definition_id, m.date, m.completed FROM habit_daily_marks m
		 JOIN habit_definitions d ON d.id = m.habit_definition_id
		 WHERE d.user_id = $1 AND d.month_key = $2`,
		userID, monthKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*DailyMark
	for rows.Next() {
		var m DailyMark
		if err = rows.Scan(&m.DefinitionID, &m.Date, &m.Completed); err != nil {
			return nil, err
		}
		m.Date = m.Date.UTC()
		out = append(out, &m)
	}
	return out, nil
}

func (repo *PGHabitRepository) UpsertDailyMark(ctx context.Context, defID string, date time.Time, completed bool) error {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT habit_definition_id FROM habit_daily_marks WHERE habit_definition_id = $1 AND date = $2`,
		defID, date)
	if err != nil {
		return err
	}
	exists := rows.Next()
	rows.Close()

	if exists {
		_, err = repo.Conn.ExecContext(ctx,
			`UPDATE habit_daily_marks SET completed = $1 WHERE habit_definition_id = $2 AND date = $3`,
			completed, defID, date)
	} else {
		_, err = repo.Conn.ExecContext(ctx,
			`INSERT INTO habit_daily_marks (habit_definition_id, date, completed) VALUES ($1, $2, $3)`,
			defID, date, completed)
	}
	return err
}

func (repo *PGHabitRepository) WeeklyMarks(ctx context.Context, userID, monthKey string) ([]*WeeklyMark, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT m.habit_definition_id, m.week_index, m.completed FROM habit_weekly_marks m
		 JOIN habit_definitions d ON d.id = m.habit_definition_id
		 WHERE d.user_id = $1 AND d.month_key = $2`,
		userID, monthKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*WeeklyMark
	for rows.Next() {
		var m WeeklyMark
		if err = rows.Scan(&m.DefinitionID, &m.WeekIndex, &m.Completed); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, nil
}

func (repo *PGHabitRepository) UpsertWeeklyMark(ctx context.Context, defID string, weekIndex int, completed bool) error {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT habit_definition_id FROM habit_weekly_marks WHERE habit_definition_id = $1 AND week_index = $2`,
		defID, weekIndex)
	if err != nil {
		return err
	}
	exists := rows.Next()
	rows.Close()

	if exists {
		_, err = repo.Conn.ExecContext(ctx,
			`UPDATE habit_weekly_marks SET completed = $1 WHERE habit_definition_id = $2 AND week_index = $3`,
			completed, defID, weekIndex)
	} else {
		_, err = repo.Conn.ExecContext(ctx,
			`INSERT INTO habit_weekly_marks (habit_definition_id, week_index, completed) VALUES ($1, $2, $3)`,
			defID, weekIndex, completed)
	}
	return err
}

func (repo *PGHabitRepository) DeleteMarks(ctx context.Context, defID string) error {
	if _, err := repo.Conn.ExecContext(ctx, `DELETE FROM habit_daily_marks WHERE habit_definition_id = $1`, defID); err != nil {
		return err
	}
	_, err := repo.Conn.ExecContext(ctx, `DELETE FROM habit_weekly_marks WHERE habit_definition_id = $1`, defID)
	return err
}
