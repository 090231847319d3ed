package user

import (
	"context"

	"go.elastic.co/apm"
)

type UserUseCaseImpl struct {
	UserRepository Repository
}

var _ UseCase = &UserUseCaseImpl{}

func NewUserUseCase(UserRepository Repository) *UserUseCaseImpl {
	return &UserUseCaseImpl{UserRepository}
}

// SignUp persist a new account, password is expected to be hashed already
func (uu *UserUseCaseImpl) SignUp(ctx context.Context, post *Model) (*Model, error) {
	apmSpan, _ := apm.StartSpan(ctx, "UserUseCaseImpl.SignUp", "service")
	defer apmSpan.End()

	if err := uu.UserRepository.SaveUser(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Exists report whether the username or email is taken
func (uu *UserUseCaseImpl) Exists(ctx context.Context, username, email string) (bool, error) {
	apmSpan, _ := apm.StartSpan(ctx, "UserUseCaseImpl.Exists", "service")
	defer apmSpan.End()

	credential := username
	if credential == "" {
		credential = email
	}
	existing, err := uu.UserRepository.FindByCredential(ctx, credential)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// Get load an account by id
func (uu *UserUseCaseImpl) Get(ctx context.Context, id string) (*Model, error) {
	apmSpan, _ := apm.StartSpan(ctx, "UserUseCaseImpl.Get", "service")
	defer apmSpan.End()

	return uu.UserRepository.FindByID(ctx, id)
}
