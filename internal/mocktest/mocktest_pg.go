package mocktest

import (
	"context"
	"time"

	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/uuid"
)

type PGMockTestRepository struct {
	Conn        driver.ITransactionalDB
	IDGenerator uuid.Generator
}

func NewMockTestRepository(conn driver.ITransactionalDB, gen uuid.Generator) *PGMockTestRepository {
	return &PGMockTestRepository{Conn: conn, IDGenerator: gen}
}

const mockColumns = `id, user_id, date, test_type, test_name, score, total_questions, correct, incorrect, skipped, percentage, notes`

func (repo *PGMockTestRepository) FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Model, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT `+mockColumns+` FROM mock_tests WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC, id ASC`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Model
	for rows.Next() {
		var m Model
		err = rows.Scan(&m.ID, &m.UserID, &m.Date, &m.TestType, &m.TestName, &m.Score,
			&m.TotalQuestions, &m.Correct, &m.Incorrect, &m.Skipped, &m.Percentage, &m.Notes)
		if err != nil {
			return nil, err
		}
		m.Date = m.Date.UTC()
		out = append(out, &m)
	}
	return out, nil
}

func (repo *PGMockTestRepository) Save(ctx context.Context, test *Model) (*Model, error) {
	id, err := repo.IDGenerator.Generate()
	if err != nil {
		return nil, err
	}
	test.ID = id
	_, err = repo.Conn.ExecContext(ctx,
		`INSERT INTO mock_tests (`+mockColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		test.ID, test.UserID, test.Date, test.TestType, test.TestName, test.Score,
		test.TotalQuestions, test.Correct, test.Incorrect, test.Skipped, test.Percentage, test.Notes)
	if err != nil {
		return nil, err
	}
	return test, nil
}

func (repo *PGMockTestRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT id FROM mock_tests WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	found := rows.Next()
	rows.Close()
	if !found {
		return false, nil
	}
	if _, err = repo.Conn.ExecContext(ctx, `DELETE FROM mock_tests WHERE id = $1`, id); err != nil {
		return false, err
	}
	return true, nil
}
