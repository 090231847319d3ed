package workout

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/uuid"
)

type PGWorkoutRepository struct {
	Conn        driver.ITransactionalDB
	IDGenerator uuid.Generator
}

func NewWorkoutRepository(conn driver.ITransactionalDB, gen uuid.Generator) *PGWorkoutRepository {
	return &PGWorkoutRepository{Conn: conn, IDGenerator: gen}
}

const workoutColumns = `id, user_id, date, muscles_hit, duration, cardio_activity, cardio_duration, cardio_distance, cardio_notes, additional_notes`

func (repo *PGWorkoutRepository) FindByDay(ctx context.Context, userID string, day time.Time) (*Model, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE user_id = $1 AND date = $2`,
		userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	m, err := scanWorkout(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()
	if err := repo.attachRecords(ctx, []*Model{m}); err != nil {
		return nil, err
	}
	return m, nil
}

func (repo *PGWorkoutRepository) FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Model, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Model
	for rows.Next() {
		m, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	rows.Close()
	if err := repo.attachRecords(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert keeps one workout per (user, day): an existing row for the day is
// overwritten in place, its lift records replaced wholesale.
func (repo *PGWorkoutRepository) Upsert(ctx context.Context, post *Model) (*Model, error) {
	tx, err := repo.Conn.BeginTx(ctx, &driver.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM workouts WHERE user_id = $1 AND date = $2`,
		post.UserID, post.Date)
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
		post.ID, err = repo.IDGenerator.Generate()
		if err != nil {
			return nil, err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO workouts (`+workoutColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			post.ID, post.UserID, post.Date, strings.Join(post.MusclesHit, ","), post.Duration,
			cardioActivity(post.Cardio), cardioDuration(post.Cardio), cardioDistance(post.Cardio), cardioNotes(post.Cardio),
			post.AdditionalNotes)
	} else {
		post.ID = existingID
		_, err = tx.ExecContext(ctx,
			`UPDATE workouts SET muscles_hit = $1, duration = $2, cardio_activity = $3, cardio_duration = $4, cardio_distance = $5, cardio_notes = $6, additional_notes = $7 WHERE id = $8`,
			strings.Join(post.MusclesHit, ","), post.Duration,
			cardioActivity(post.Cardio), cardioDuration(post.Cardio), cardioDistance(post.Cardio), cardioNotes(post.Cardio),
			post.AdditionalNotes, post.ID)
		if err == nil {
			_, err = tx.ExecContext(ctx, `DELETE FROM workout_records WHERE workout_id = $1`, post.ID)
		}
	}
	if err != nil {
		return nil, err
	}

	for i, pr := range post.PersonalRecords {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO workout_records (workout_id, position, exercise, weight, reps, notes) VALUES ($1, $2, $3, $4, $5, $6)`,
			post.ID, i, pr.Exercise, pr.Weight, pr.Reps, pr.Notes)
		if err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return post, nil
}

func (repo *PGWorkoutRepository) DeleteByDay(ctx context.Context, userID string, day time.Time) (bool, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT id FROM workouts WHERE user_id = $1 AND date = $2`, userID, day)
	if err != nil {
		return false, err
	}
	var id string
	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return false, err
		}
	}
	rows.Close()
	if id == "" {
		return false, nil
	}
	if _, err = repo.Conn.ExecContext(ctx, `DELETE FROM workout_records WHERE workout_id = $1`, id); err != nil {
		return false, err
	}
	if _, err = repo.Conn.ExecContext(ctx, `DELETE FROM workouts WHERE id = $1`, id); err != nil {
		return false, err
	}
	return true, nil
}

func (repo *PGWorkoutRepository) attachRecords(ctx context.Context, posts []*Model) error {
	byID := make(map[string]*Model, len(posts))
	for _, m := range posts {
		byID[m.ID] = m
	}
	for _, m := range posts {
		rows, err := repo.Conn.QueryContext(ctx,
			`SELECT exercise, weight, reps, notes FROM workout_records WHERE workout_id = $1 ORDER BY position ASC`,
			m.ID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var pr PersonalRecord
			if err = rows.Scan(&pr.Exercise, &pr.Weight, &pr.Reps, &pr.Notes); err != nil {
				rows.Close()
				return err
			}
			m.PersonalRecords = append(m.PersonalRecords, pr)
		}
		rows.Close()
	}
	return nil
}

func scanWorkout(rows driver.ISQLRows) (*Model, error) {
	var (
		m        Model
		muscles  string
		activity string
		cdur     int
		cdist    float64
		cnotes   string
	)
	err := rows.Scan(&m.ID, &m.UserID, &m.Date, &muscles, &m.Duration,
		&activity, &cdur, &cdist, &cnotes, &m.AdditionalNotes)
	if err != nil {
		return nil, err
	}
	m.Date = m.Date.UTC()
	if muscles != "" {
		m.MusclesHit = strings.Split(muscles, ",")
	}
	if activity != "" || cdur > 0 {
		m.Cardio = &Cardio{Activity: activity, Duration: cdur, Distance: cdist, Notes: cnotes}
	}
	return &m, nil
}

func cardioActivity(c *Cardio) string {
	if c == nil {
		return ""
	}
	return c.Activity
}

func cardioDuration(c *Cardio) int {
	if c == nil {
		return 0
	}
	return c.Duration
}

func cardioDistance(c *Cardio) float64 {
	if c == nil {
		return 0
	}
	return c.Distance
}

func cardioNotes(c *Cardio) string {
	if c == nil {
		return ""
	}
	return c.Notes
}
