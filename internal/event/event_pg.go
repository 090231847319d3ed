package event

import (
	"context"
	"time"

	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/uuid"
)

type PGEventRepository struct {
	Conn        driver.ITransactionalDB
	IDGenerator uuid.Generator
}

func NewEventRepository(conn driver.ITransactionalDB, gen uuid.Generator) *PGEventRepository {
	return &PGEventRepository{Conn: conn, IDGenerator: gen}
}

const eventColumns = `id, user_id, date, event_type, value, notes`

func (repo *PGEventRepository) FindByID(ctx context.Context, userID, id string) (*Model, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	return scanEvent(rows)
}

func (repo *PGEventRepository) FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Model, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC, id ASC`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Model
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (repo *PGEventRepository) Save(ctx context.Context, ev *Model) (*Model, error) {
	id, err := repo.IDGenerator.Generate()
	if err != nil {
		return nil, err
	}
	ev.ID = id
	_, err = repo.Conn.ExecContext(ctx,
		`INSERT INTO events (`+eventColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.ID, ev.UserID, ev.Date, ev.EventType, ev.Value, ev.Notes)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (repo *PGEventRepository) Update(ctx context.Context, ev *Model) error {
	_, err := repo.Conn.ExecContext(ctx,
		`UPDATE events SET date = $1, event_type = $2, value = $3, notes = $4 WHERE id = $5`,
		ev.Date, ev.EventType, ev.Value, ev.Notes, ev.ID)
	return err
}

func (repo *PGEventRepository) Delete(ctx context.Context, id string) error {
	_, err := repo.Conn.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}

func scanEvent(rows driver.ISQLRows) (*Model, error) {
	var ev Model
	err := rows.Scan(&ev.ID, &ev.UserID, &ev.Date, &ev.EventType, &ev.Value, &ev.Notes)
	if err != nil {
		return nil, err
	}
	ev.Date = ev.Date.UTC()
	return &ev, nil
}
