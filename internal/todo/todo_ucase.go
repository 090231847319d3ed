package todo

import (
	"context"
	"errors"
	"time"

	"go.elastic.co/apm"
)

var (
	ErrNoSuchList = errors.New("no such list")
	ErrNoSuchTask = errors.New("no such task")
)

type TodoUseCaseImpl struct {
	Repo Repository
}

func NewTodoUseCase(repo Repository) *TodoUseCaseImpl {
	return &TodoUseCaseImpl{Repo: repo}
}

func (uc *TodoUseCaseImpl) Lists(ctx context.Context, userID string) ([]*List, error) {
	span, ctx := apm.StartSpan(ctx, "TodoUseCaseImpl.Lists", "service")
	defer span.End()

	lists, err := uc.Repo.Lists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lists == nil {
		lists = []*List{}
	}
	return lists, nil
}

func (uc *TodoUseCaseImpl) CreateList(ctx context.Context, l *List) (*List, error) {
	span, ctx := apm.StartSpan(ctx, "TodoUseCaseImpl.CreateList", "service")
	defer span.End()

	l.Tasks = []*Task{}
	if err := uc.Repo.CreateList(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *TodoUseCaseImpl) RenameList(ctx context.Context, userID, id, title string) (*List, error) {
	span, ctx := apm.StartSpan(ctx, "TodoUseCaseImpl.RenameList", "service")
	defer span.End()

	l, err := uc.Repo.FindList(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrNoSuchList
	}
	l.Title = title
	if err = uc.Repo.UpdateList(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *TodoUseCaseImpl) DeleteList(ctx context.Context, userID, id string) (bool, error) {
	span, ctx := apm.StartSpan(ctx, "TodoUseCaseImpl.DeleteList", "service")
	defer span.End()

	l, err := uc.Repo.FindList(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if l == nil {
		return false, nil
	}
	if err = uc.Repo.DeleteList(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *TodoUseCaseImpl) AddTask(ctx context.Context, userID, listID string, t *Task) (*Task, error) {
	span, ctx := apm.StartSpan(ctx, "TodoUseCaseImpl.AddTask", "service")
	defer span.End()

	l, err := uc.Repo.FindList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrNoSuchList
	}
	t.ListID = listID
	if !ValidPriority(t.Priority) {
		t.Priority = PriorityMedium
	}
	normalizeCompletion(t)
	if err = uc.Repo.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *TodoUseCaseImpl) UpdateTask(ctx context.Context, userID string, t *Task) (*Task, error) {
	span, ctx := apm.StartSpan(ctx, "TodoUseCaseImpl.UpdateTask", "service")
	defer span.End()

	current, err := uc.Repo.FindTask(ctx, userID, t.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoSuchTask
	}
	t.ListID = current.ListID
	if !ValidPriority(t.Priority) {
		t.Priority = current.Priority
	}
	normalizeCompletion(t)
	if err = uc.Repo.UpdateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *TodoUseCaseImpl) DeleteTask(ctx context.Context, userID, taskID string) (bool, error) {
	span, ctx := apm.StartSpan(ctx, "TodoUseCaseImpl.DeleteTask", "service")
	defer span.End()

	current, err := uc.Repo.FindTask(ctx, userID, taskID)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}
	if err = uc.Repo.DeleteTask(ctx, taskID); err != nil {
		return false, err
	}
	return true, nil
}

// normalizeCompletion keeps the completion date consistent with the
// completed flag: stamped on completion, cleared on reopen.
func normalizeCompletion(t *Task) {
	if t.Completed && t.CompletionDate == nil {
		now := time.Now().UTC()
		t.CompletionDate = &now
	}
	if !t.Completed {
		t.CompletionDate = nil
	}
}
