package profile

import (
	"context"

	"go.elastic.co/apm"
)

type ProfileUseCaseImpl struct {
	Repo Repository
}

func NewProfileUseCase(repo Repository) *ProfileUseCaseImpl {
	return &ProfileUseCaseImpl{Repo: repo}
}

// Get returns the stored profile, or an empty one when the user never
// saved any.
func (uc *ProfileUseCaseImpl) Get(ctx context.Context, userID string) (*Model, error) {
	span, ctx := apm.StartSpan(ctx, "ProfileUseCaseImpl.Get", "service")
	defer span.End()

	p, err := uc.Repo.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &Model{UserID: userID}
	}
	return p, nil
}

func (uc *ProfileUseCaseImpl) Save(ctx context.Context, p *Model) (*Model, error) {
	span, ctx := apm.StartSpan(ctx, "ProfileUseCaseImpl.Save", "service")
	defer span.End()

	if err := uc.Repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
