package exercise

import "context"

// Model a catalog exercise the workout screen picks lifts from
type Model struct {
	ID          string `json:"id"`
	UserID      string `json:"-"`
	Name        string `json:"name" validate:"required"`
	MuscleGroup string `json:"muscleGroup"`
	Equipment   string `json:"equipment"`
	Notes       string `json:"notes"`
}

type Repository interface {
	FindAll(ctx context.Context, userID string) ([]*Model, error)
	FindByID(ctx context.Context, userID, id string) (*Model, error)
	Save(ctx context.Context, ex *Model) (*Model, error)
	Update(ctx context.Context, ex *Model) error
	Delete(ctx context.Context, id string) error
}

type UseCase interface {
	List(ctx context.Context, userID string) ([]*Model, error)
	Create(ctx context.Context, ex *Model) (*Model, error)
	Update(ctx context.Context, ex *Model) (*Model, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}
