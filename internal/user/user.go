package user

import (
	"context"
	"errors"

	"github.com/task-meadow/server/internal/infrastructure/driver"
)

// Model the account record behind every tracked collection
type Model struct {
	ID         string `json:"id"`
	Username   string `json:"username" validate:"required,min=3,max=30"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"-" validate:"required,min=8"`
	LoginRetry int    `json:"-"`
	LastLogin  int64  `json:"-"`
}

// ErrDuplicatedUser unique key constraint violation
var ErrDuplicatedUser = errors.New("Username or email is already registered")

// ErrNoSuchUser no account matches the credential
var ErrNoSuchUser = errors.New("Invalid username or password")

// ErrTooManyRetry account locked after repeated failed logins
var ErrTooManyRetry = errors.New("Too many login attempts")

type Repository interface {
	WithConn(conn driver.ITransactionalDB) Repository

	FindByCredential(ctx context.Context, username string) (*Model, error)
	FindByID(ctx context.Context, id string) (*Model, error)
	SaveUser(ctx context.Context, post *Model) error
	UpdateUser(ctx context.Context, post *Model) error
}

type UseCase interface {
	SignUp(ctx context.Context, post *Model) (*Model, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	Get(ctx context.Context, id string) (*Model, error)
}
