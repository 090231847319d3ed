package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/uuid"
)

type PGUserRepository struct {
	Conn        driver.ITransactionalDB
	IDGenerator uuid.Generator
}

var _ Repository = &PGUserRepository{}

func NewUserRepository(Conn driver.ITransactionalDB, IDGenerator uuid.Generator) *PGUserRepository {
	return &PGUserRepository{Conn, IDGenerator}
}

// WithConn returns a copy of the repository bound to conn, so the
// login retry counter can be read and bumped inside one transaction.
func (repo *PGUserRepository) WithConn(conn driver.ITransactionalDB) Repository {
	return &PGUserRepository{Conn: conn, IDGenerator: repo.IDGenerator}
}

// FindByCredential query user by username or email
func (repo *PGUserRepository) FindByCredential(ctx context.Context, username string) (*Model, error) {
	conn := repo.Conn
	row, err := conn.QueryContext(ctx, `SELECT id, username, password, email, login_retry, last_login
	FROM users WHERE username=$1 OR email=$2`, username, username)
	if err != nil {
		return nil, err
	}
	defer row.Close()

	if row.Next() {
		user := new(Model)
		if err := row.Scan(&user.ID, &user.Username, &user.Password, &user.Email, &user.LoginRetry, &user.LastLogin); err != nil {
			return nil, err
		}
		return user, nil
	}
	return nil, nil
}

func (repo *PGUserRepository) FindByID(ctx context.Context, id string) (*Model, error) {
	conn := repo.Conn
	row, err := conn.QueryContext(ctx, `SELECT id, username, password, email, login_retry, last_login
	FROM users WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer row.Close()

	if row.Next() {
		user := new(Model)
		if err := row.Scan(&user.ID, &user.Username, &user.Password, &user.Email, &user.LoginRetry, &user.LastLogin); err != nil {
			return nil, err
		}
		return user, nil
	}
	return nil, nil
}

func (repo *PGUserRepository) SaveUser(ctx context.Context, post *Model) error {
	conn := repo.Conn
	id, err := repo.IDGenerator.Generate()
	if err != nil {
		return err
	}
	post.ID = id
	post.LastLogin = time.Now().Unix()

	_, err = conn.ExecContext(ctx, `INSERT INTO users(id, username, password, email, login_retry, last_login)
	VALUES($1,$2,$3,$4,0,$5)`, post.ID, post.Username, post.Password, post.Email, post.LastLogin)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicatedUser
	}
	return err
}

func (repo *PGUserRepository) UpdateUser(ctx context.Context, post *Model) error {
	conn := repo.Conn
	_, err := conn.ExecContext(ctx, `UPDATE users
	SET email=$1,
			login_retry=$2,
			last_login=$3
	WHERE id=$4`, post.Email, post.LoginRetry, post.LastLogin, post.ID)
	return err
}
