package todo

import (
	"context"
	"time"
)

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task one item of a list
type Task struct {
	ID             string     `json:"id"`
	ListID         string     `json:"-"`
	Text           string     `json:"text" validate:"required"`
	Priority       string     `json:"priority"`
	Started        bool       `json:"started"`
	Completed      bool       `json:"completed"`
	CompletionDate *time.Time `json:"completionDate"`
}

// List a named todo list with its tasks
type List struct {
	ID     string  `json:"id"`
	UserID string  `json:"-"`
	Title  string  `json:"title" validate:"required"`
	Tasks  []*Task `json:"tasks"`
}

type Repository interface {
	Lists(ctx context.Context, userID string) ([]*List, error)
	FindList(ctx context.Context, userID, id string) (*List, error)
	CreateList(ctx context.Context, l *List) error
	UpdateList(ctx context.Context, l *List) error
	DeleteList(ctx context.Context, id string) error

	FindTask(ctx context.Context, userID, taskID string) (*Task, error)
	CreateTask(ctx context.Context, t *Task) error
	UpdateTask(ctx context.Context, t *Task) error
	DeleteTask(ctx context.Context, id string) error
}

type UseCase interface {
	Lists(ctx context.Context, userID string) ([]*List, error)
	CreateList(ctx context.Context, l *List) (*List, error)
	RenameList(ctx context.Context, userID, id, title string) (*List, error)
	DeleteList(ctx context.Context, userID, id string) (bool, error)

	AddTask(ctx context.Context, userID, listID string, t *Task) (*Task, error)
	UpdateTask(ctx context.Context, userID string, t *Task) (*Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) (bool, error)
}
