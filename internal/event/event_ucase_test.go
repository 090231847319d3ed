package event

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/task-meadow/server/internal/infrastructure/validate"
	"github.com/task-meadow/server/internal/period"
)

type fakeEventRepo struct {
	events []*Model
	seq    int
}

func (f *fakeEventRepo) FindByID(ctx context.Context, userID, id string) (*Model, error) {
	for _, ev := range f.events {
		if ev.ID == id && ev.UserID == userID {
			return ev, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) FindByRange(ctx context.Context, userID string, start, end time.Time) ([]*Model, error) {
	var out []*Model
	for _, ev := range f.events {
		if ev.UserID == userID && !ev.Date.Before(start) && !ev.Date.After(end) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Save(ctx context.Context, ev *Model) (*Model, error) {
	f.seq++
	ev.ID = fmt.Sprintf("e%d", f.seq)
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, ev *Model) error {
	for i, old := range f.events {
		if old.ID == ev.ID {
			f.events[i] = ev
		}
	}
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	kept := f.events[:0]
	for _, ev := range f.events {
		if ev.ID != id {
			kept = append(kept, ev)
		}
	}
	f.events = kept
	return nil
}

func day(t *testing.T, token string) time.Time {
	d, err := period.ParseDay(token)
	require.NoError(t, err)
	return d
}

func TestCreateAcceptsMinimalEvent(t *testing.T) {
	// date, type and value are all an event needs
	ev := &Model{UserID: "u1", Date: day(t, "2024-03-15"), EventType: "sleep", Value: "8"}
	assert.Nil(t, validate.NewValidator().Struct(ev))

	uc := NewEventUseCase(&fakeEventRepo{})
	saved, err := uc.Create(context.Background(), ev)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "sleep", saved.EventType)
}

func TestCreateDefaultsType(t *testing.T) {
	uc := NewEventUseCase(&fakeEventRepo{})

	saved, err := uc.Create(context.Background(), &Model{UserID: "u1", Date: day(t, "2024-03-15")})
	require.NoError(t, err)
	assert.Equal(t, "general", saved.EventType)
}

func TestListByDay(t *testing.T) {
	repo := &fakeEventRepo{}
	uc := NewEventUseCase(repo)

	for _, token := range []string{"2024-03-14", "2024-03-15", "2024-03-15", "2024-03-16"} {
		_, err := uc.Create(context.Background(), &Model{UserID: "u1", Date: day(t, token)})
		require.NoError(t, err)
	}

	out, err := uc.ListByDay(context.Background(), "u1", day(t, "2024-03-15"))
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, ev := range out {
		assert.Equal(t, "2024-03-15", period.FormatDay(ev.Date))
	}
}

func TestUpdateForeignEventIsMissing(t *testing.T) {
	repo := &fakeEventRepo{}
	uc := NewEventUseCase(repo)

	saved, err := uc.Create(context.Background(), &Model{UserID: "u1", Date: day(t, "2024-03-15")})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), &Model{ID: saved.ID, UserID: "u2", Date: saved.Date})
	assert.Equal(t, ErrNoSuchEvent, err)
}
