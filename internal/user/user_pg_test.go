package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/uuid"
)

type stubConn struct{ name string }

func (stubConn) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (stubConn) QueryContext(ctx context.Context, query string, args ...interface{}) (driver.ISQLRows, error) {
	return nil, nil
}
func (s stubConn) BeginTx(ctx context.Context, opts *driver.TxOptions) (driver.ITransactionalDB, error) {
	return stubConn{name: s.name + "-tx"}, nil
}
func (stubConn) Commit(ctx context.Context) error   { return nil }
func (stubConn) Rollback(ctx context.Context) error { return nil }
func (stubConn) Close(ctx context.Context) error    { return nil }
func (stubConn) Ping() error                        { return nil }

func TestWithConnBindsTransaction(t *testing.T) {
	pool := stubConn{name: "pool"}
	gen := uuid.NewNanoIDGenerator(24)
	repo := NewUserRepository(pool, gen)

	tx, err := pool.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	bound, ok := repo.WithConn(tx).(*PGUserRepository)
	require.True(t, ok)
	assert.Equal(t, tx, bound.Conn)
	assert.Equal(t, gen, bound.IDGenerator)

	// the original repository stays on the pool connection
	assert.Equal(t, driver.ITransactionalDB(pool), repo.Conn)
}
