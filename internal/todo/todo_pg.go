package todo

import (
	"context"
	"time"

	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/uuid"
)

type PGTodoRepository struct {
	Conn        driver.ITransactionalDB
	IDGenerator uuid.Generator
}

func NewTodoRepository(conn driver.ITransactionalDB, gen uuid.Generator) *PGTodoRepository {
	return &PGTodoRepository{Conn: conn, IDGenerator: gen}
}

func (repo *PGTodoRepository) Lists(ctx context.Context, userID string) ([]*List, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT id, user_id, title FROM todo_lists WHERE user_id = $1 ORDER BY created_at ASC, id ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	var out []*List
	for rows.Next() {
		var l List
		if err = rows.Scan(&l.ID, &l.UserID, &l.Title); err != nil {
			rows.Close()
			return nil, err
		}
		l.Tasks = []*Task{}
		out = append(out, &l)
	}
	rows.Close()

	for _, l := range out {
		if l.Tasks, err = repo.tasksOf(ctx, l.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (repo *PGTodoRepository) FindList(ctx context.Context, userID, id string) (*List, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT id, user_id, title FROM todo_lists WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, err
	}
	if !rows.Next() {
		rows.Close()
		return nil, nil
	}
	var l List
	if err = rows.Scan(&l.ID, &l.UserID, &l.Title); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if l.Tasks, err = repo.tasksOf(ctx, l.ID); err != nil {
		return nil, err
	}
	return &l, nil
}

func (repo *PGTodoRepository) CreateList(ctx context.Context, l *List) error {
	id, err := repo.IDGenerator.Generate()
	if err != nil {
		return err
	}
	l.ID = id
	_, err = repo.Conn.ExecContext(ctx,
		`INSERT INTO todo_lists (id, user_id, title, created_at) VALUES ($1, $2, $3, $4)`,
		l.ID, l.UserID, l.Title, time.Now().UTC())
	return err
}

func (repo *PGTodoRepository) UpdateList(ctx context.Context, l *List) error {
	_, err := repo.Conn.ExecContext(ctx,
		`UPDATE todo_lists SET title = $1 WHERE id = $2`, l.Title, l.ID)
	return err
}

// DeleteList removes the list together with its tasks.
func (repo *PGTodoRepository) DeleteList(ctx context.Context, id string) error {
	if _, err := repo.Conn.ExecContext(ctx, `DELETE FROM todo_tasks WHERE list_id = $1`, id); err != nil {
		return err
	}
	_, err := repo.Conn.ExecContext(ctx, `DELETE FROM todo_lists WHERE id = $1`, id)
	return err
}

func (repo *PGTodoRepository) FindTask(ctx context.Context, userID, taskID string) (*Task, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT t.id, t.list_id, t.text, t.priority, t.started, t.completed, t.completion_date
		 FROM todo_tasks t JOIN todo_lists l ON l.id = t.list_id
		 WHERE t.id = $1 AND l.user_id = $2`, taskID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	return scanTask(rows)
}

func (repo *PGTodoRepository) CreateTask(ctx context.Context, t *Task) error {
	id, err := repo.IDGenerator.Generate()
	if err != nil {
		return err
	}
	t.ID = id
	_, err = repo.Conn.ExecContext(ctx,
		`INSERT INTO todo_tasks (id, list_id, text, priority, started, completed, completion_date) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.ListID, t.Text, t.Priority, t.Started, t.Completed, t.CompletionDate)
	return err
}

func (repo *PGTodoRepository) UpdateTask(ctx context.Context, t *Task) error {
	_, err := repo.Conn.ExecContext(ctx,
		`UPDATE todo_tasks SET text = $1, priority = $2, started = $3, completed = $4, completion_date = $5 WHERE id = $6`,
		t.Text, t.Priority, t.Started, t.Completed, t.CompletionDate, t.ID)
	return err
}

func (repo *PGTodoRepository) DeleteTask(ctx context.Context, id string) error {
	_, err := repo.Conn.ExecContext(ctx, `DELETE FROM todo_tasks WHERE id = $1`, id)
	return err
}

func (repo *PGTodoRepository) tasksOf(ctx context.Context, listID string) ([]*Task, error) {
	rows, err := repo.Conn.QueryContext(ctx,
		`SELECT id, list_id, text, priority, started, completed, completion_date
		 FROM todo_tasks WHERE list_id = $1 ORDER BY id ASC`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func scanTask(rows driver.ISQLRows) (*Task, error) {
	var t Task
	err := rows.Scan(&t.ID, &t.ListID, &t.Text, &t.Priority, &t.Started, &t.Completed, &t.CompletionDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
