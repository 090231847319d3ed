package exercise

import (
	"context"

	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/uuid"
)

type PGExerciseRepository struct {
	Conn        driver.ITransactionalDB
	IDGenerator uuid.Generator
}

func NewExerciseRepository(conn driver.ITransactionalDB, gen uuid.Generator) *PGExerciseRepository {
	return &PGExerciseRepository{Conn: conn, IDGenerator: gen}
}

const exerciseColumns = `id, user_id, name, muscle_group, equipment, notes`

func (repo *PGExerciseRepository) FindAll(ctx context.Context, userID string) ([]*Model, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE user_id = $1 ORDER BY name ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Model
	for rows.Next() {
		var ex Model
		if err = rows.Scan(&ex.ID, &ex.UserID, &ex.Name, &ex.MuscleGroup, &ex.Equipment, &ex.Notes); err != nil {
			return nil, err
		}
		out = append(out, &ex)
	}
	return out, nil
}

func (repo *PGExerciseRepository) FindByID(ctx context.Context, userID, id string) (*Model, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	var ex Model
	if err = rows.Scan(&ex.ID, &ex.UserID, &ex.Name, &ex.MuscleGroup, &ex.Equipment, &ex.Notes); err != nil {
		return nil, err
	}
	return &ex, nil
}

func (repo *PGExerciseRepository) Save(ctx context.Context, ex *Model) (*Model, error) {
	id, err := repo.IDGenerator.Generate()
	if err != nil {
		return nil, err
	}
	ex.ID = id
	_, err = repo.Conn.ExecContext(ctx,
		`INSERT INTO exercises (`+exerciseColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		ex.ID, ex.UserID, ex.Name, ex.MuscleGroup, ex.Equipment, ex.Notes)
	if err != nil {
		return nil, err
	}
	return ex, nil
}

func (repo *PGExerciseRepository) Update(ctx context.Context, ex *Model) error {
	_, err := repo.Conn.ExecContext(ctx,
		`UPDATE exercises SET name = $1, muscle_group = $2, equipment = $3, notes = $4 WHERE id = $5`,
		ex.Name, ex.MuscleGroup, ex.Equipment, ex.Notes, ex.ID)
	return err
}

func (repo *PGExerciseRepository) Delete(ctx context.Context, id string) error {
	_, err := repo.Conn.ExecContext(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	return err
}
