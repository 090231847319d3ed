package exercise

import (
	"context"
	"errors"

	"go.elastic.co/apm"
)

var ErrNoSuchExercise = errors.New("no such exercise")

type ExerciseUseCaseImpl struct {
	Repo Repository
}

func NewExerciseUseCase(repo Repository) *ExerciseUseCaseImpl {
	return &ExerciseUseCaseImpl{Repo: repo}
}

func (uc *ExerciseUseCaseImpl) List(ctx context.Context, userID string) ([]*Model, error) {
	span, ctx := apm.StartSpan(ctx, "ExerciseUseCaseImpl.List", "service")
	defer span.End()

	out, err := uc.Repo.FindAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*Model{}
	}
	return out, nil
}

func (uc *ExerciseUseCaseImpl) Create(ctx context.Context, ex *Model) (*Model, error) {
	span, ctx := apm.StartSpan(ctx, "ExerciseUseCaseImpl.Create", "service")
	defer span.End()

	return uc.Repo.Save(ctx, ex)
}

func (uc *ExerciseUseCaseImpl) Update(ctx context.Context, ex *Model) (*Model, error) {
	span, ctx := apm.StartSpan(ctx, "ExerciseUseCaseImpl.Update", "service")
	defer span.End()

	current, err := uc.Repo.FindByID(ctx, ex.UserID, ex.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoSuchExercise
	}
	if err = uc.Repo.Update(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (uc *ExerciseUseCaseImpl) Delete(ctx context.Context, userID, id string) (bool, error) {
	span, ctx := apm.StartSpan(ctx, "ExerciseUseCaseImpl.Delete", "service")
	defer span.End()

	current, err := uc.Repo.FindByID(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}
	if err = uc.Repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
