package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (f fakeClock) Now() time.Time {
	return f.now
}

type fakeStore struct {
	tasks   map[int64]domain.Task
	added   []domain.Task
	updated []domain.Task
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{tasks: map[int64]domain.Task{}, nextID: 1}
}

func (f *fakeStore) AddTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	t.ID = f.nextID
	f.nextID++
	f.tasks[t.ID] = t
	f.added = append(f.added, t)
	return t, nil
}

func (f *fakeStore) Task(ctx context.Context, id int64) (domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return domain.Task{}, ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeStore) Tasks(ctx context.Context) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(f.tasks))
	for id := int64(1); id < f.nextID; id++ {
		if t, ok := f.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateTask(ctx context.Context, t domain.Task) error {
	f.tasks[t.ID] = t
	f.updated = append(f.updated, t)
	return nil
}

var now = time.Date(2026, 6, 1, 8, 30, 0, 0, time.UTC)

func TestAddValidatesInput(t *testing.T) {
	svc := NewService(newFakeStore(), fakeClock{now: now})

	cases := []struct {
		req  AddRequest
		want error
	}{
		{AddRequest{Name: "ab"}, ErrInvalidName},
		{AddRequest{Name: strings.Repeat("x", 81)}, ErrInvalidName},
		{AddRequest{Name: "Write docs", Description: "no"}, ErrInvalidDescription},
		{AddRequest{Name: "Write docs", RepeatDays: -1}, ErrInvalidRepeat},
		{AddRequest{Name: "Write docs", RepeatDays: 366}, ErrInvalidRepeat},
		{AddRequest{Name: "Write docs", Due: "tomorrow"}, ErrInvalidDueDate},
	}
	for _, tc := range cases {
		if _, err := svc.Add(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("Add(%+v): expected %v, got %v", tc.req, tc.want, err)
		}
	}
}

func TestAddStoresTask(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeClock{now: now})

	got, err := svc.Add(context.Background(), AddRequest{
		Name:        " Water plants ",
		Description: "Both balconies",
		Due:         "2026-06-02 09:00:00",
		RepeatDays:  3,
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if got.ID != 1 || got.Name != "Water plants" || got.Status != domain.TaskIncomplete {
		t.Fatalf("unexpected task %+v", got)
	}
	if got.DueDate == nil || got.DueDate.Day() != 2 || got.DueDate.Hour() != 9 {
		t.Fatalf("unexpected due date %v", got.DueDate)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("expected CreatedAt %v, got %v", now, got.CreatedAt)
	}
}

func TestAddRequiresExistingParent(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeClock{now: now})

	missing := int64(42)
	if _, err := svc.Add(context.Background(), AddRequest{Name: "Child", ParentID: &missing}); !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}

	parent, err := svc.Add(context.Background(), AddRequest{Name: "Parent"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	child, err := svc.Add(context.Background(), AddRequest{Name: "Child", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Fatalf("expected parent relation, got %+v", child)
	}
}

func TestCompleteOneOffTask(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeClock{now: now})
	created, _ := svc.Add(context.Background(), AddRequest{Name: "File taxes"})

	done, err := svc.Complete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if done.Status != domain.TaskComplete {
		t.Fatalf("expected complete status, got %s", done.Status)
	}
}

func TestCompleteRepeatingTaskRollsDueDate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeClock{now: now})
	created, _ := svc.Add(context.Background(), AddRequest{Name: "Water plants", Due: "2026-06-02 09:00:00", RepeatDays: 3})

	done, err := svc.Complete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if done.Status != domain.TaskIncomplete {
		t.Fatalf("expected repeating task to stay open, got %s", done.Status)
	}
	if done.DueDate.Day() != 5 {
		t.Fatalf("expected due date moved by 3 days, got %v", done.DueDate)
	}

	if _, err := svc.Complete(context.Background(), 99); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
