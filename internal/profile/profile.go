package profile

import "context"

// Model per-user fitness profile, one row per user, created lazily on
// first save
type Model struct {
	UserID        string  `json:"-"`
	Age           int     `json:"age"`
	Height        float64 `json:"height"` // centimeters
	Weight        float64 `json:"weight"` // kilograms
	Gender        string  `json:"gender"`
	FitnessGoal   string  `json:"fitnessGoal"`
	ActivityLevel string  `json:"activityLevel"`
	WorkoutSplit  string  `json:"workoutSplit"`
	TargetWeight  float64 `json:"targetWeight"`
	BodyFat       float64 `json:"bodyFat"`
	CalorieGoal   int     `json:"calorieGoal"`
	DietType      string  `json:"dietType"`
	MealFrequency int     `json:"mealFrequency"`
	ProfileImage  string  `json:"profileImage"`
}

type Repository interface {
	Find(ctx context.Context, userID string) (*Model, error)
	Upsert(ctx context.Context, p *Model) error
	UpdateWeight(ctx context.Context, userID string, weight float64) error
}

type UseCase interface {
	Get(ctx context.Context, userID string) (*Model, error)
	Save(ctx context.Context, p *Model) (*Model, error)
}
