package weight

import (
	"context"
	"time"

	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/uuid"
)

type PGWeightRepository struct {
	Conn        driver.ITransactionalDB
	IDGenerator uuid.Generator
}

func NewWeightRepository(conn driver.ITransactionalDB, gen uuid.Generator) *PGWeightRepository {
	return &PGWeightRepository{Conn: conn, IDGenerator: gen}
}

const weightColumns = `id, user_id, date, week_start, weight, notes`

func (repo *PGWeightRepository) FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Entry, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT `+weightColumns+` FROM weight_entries WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (repo *PGWeightRepository) FindLatest(ctx context.Context, userID string, limit int) ([]*Entry, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT `+weightColumns+` FROM weight_entries WHERE user_id = $1 ORDER BY date DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (repo *PGWeightRepository) HasEntryForWeek(ctx context.Context, userID string, weekStart time.Time) (bool, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT id FROM weight_entries WHERE user_id = $1 AND week_start = $2`, userID, weekStart)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	return rows.Next(), nil
}

func (repo *PGWeightRepository) Upsert(ctx context.Context, e *Entry) (*Entry, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT id FROM weight_entries WHERE user_id = $1 AND date = $2`, e.UserID, e.Date)
	if err != nil {
		return nil, err
	}
	var existingID string
	if rows.Next() {
		if err = rows.Scan(&existingID); err != nil {
			rows.Close()
			return nil, err
		}
	}
	rows.Close()

	if existingID == "" {
		e.ID, err = repo.IDGenerator.Generate()
		if err != nil {
			return nil, err
		}
		_, err = repo.Conn.ExecContext(ctx,
			`INSERT INTO weight_entries (`+weightColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
			e.ID, e.UserID, e.Date, e.WeekStart, e.Weight, e.Notes)
	} else {
		e.ID = existingID
		_, err = repo.Conn.ExecContext(ctx,
			`UPDATE weight_entries SET week_start = $1, weight = $2, notes = $3 WHERE id = $4`,
			e.WeekStart, e.Weight, e.Notes, e.ID)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func scanEntries(rows driver.ISQLRows) ([]*Entry, error) {
	var out []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.WeekStart, &e.Weight, &e.Notes); err != nil {
			return nil, err
		}
		e.Date = e.Date.UTC()
		e.WeekStart = e.WeekStart.UTC()
		out = append(out, &e)
	}
	return out, nil
}
