package profile

import (
	"context"

	"github.com/task-meadow/server/internal/infrastructure/driver"
)

type PGProfileRepository struct {
	Conn driver.ITransactionalDB
}

func NewProfileRepository(conn driver.ITransactionalDB) *PGProfileRepository {
	return &PGProfileRepository{Conn: conn}
}

const profileColumns = `user_id, age, height, weight, gender, fitness_goal, activity_level, workout_split, target_weight, body_fat, calorie_goal, diet_type, meal_frequency, profile_image`

func (repo *PGProfileRepository) Find(ctx context.Context, userID string) (*Model, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	var p Model
	err = rows.Scan(&p.UserID, &p.Age, &p.Height, &p.Weight, &p.Gender, &p.FitnessGoal,
		&p.ActivityLevel, &p.WorkoutSplit, &p.TargetWeight, &p.BodyFat, &p.CalorieGoal,
		&p.DietType, &p.MealFrequency, &p.ProfileImage)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (repo *PGProfileRepository) Upsert(ctx context.Context, p *Model) error {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT user_id FROM profiles WHERE user_id = $1`, p.UserID)
	if err != nil {
		return err
	}
	exists := rows.Next()
	rows.Close()

	if exists {
		_, err = repo.Conn.ExecContext(ctx,
			`UPDATE profiles SET age = $1, height = $2, weight = $3, gender = $4, fitness_goal = $5,
			 activity_level = $6, workout_split = $7, target_weight = $8, body_fat = $9,
			 calorie_goal = $10, diet_type = $11, meal_frequency = $12, profile_image = $13
			 WHERE user_id = $14`,
			p.Age, p.Height, p.Weight, p.Gender, p.FitnessGoal, p.ActivityLevel, p.WorkoutSplit,
			p.TargetWeight, p.BodyFat, p.CalorieGoal, p.DietType, p.MealFrequency, p.ProfileImage,
			p.UserID)
	} else {
		_, err = repo.Conn.ExecContext(ctx,
			`INSERT INTO profiles (`+profileColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			p.UserID, p.Age, p.Height, p.Weight, p.Gender, p.FitnessGoal, p.ActivityLevel,
			p.WorkoutSplit, p.TargetWeight, p.BodyFat, p.CalorieGoal, p.DietType,
			p.MealFrequency, p.ProfileImage)
	}
	return err
}

// UpdateWeight refreshes just the weight column, creating the profile
// row if the user never saved one.
func (repo *PGProfileRepository) UpdateWeight(ctx context.Context, userID string, weight float64) error {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT user_id FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	exists := rows.Next()
	rows.Close()

	if exists {
		_, err = repo.Conn.ExecContext(ctx, `UPDATE profiles SET weight = $1 WHERE user_id = $2`, weight, userID)
		return err
	}
	return repo.Upsert(ctx, &Model{UserID: userID, Weight: weight})
}
