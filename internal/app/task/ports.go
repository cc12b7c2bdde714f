package task

import (
	"context"
	"time"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// Store persists tasks. AddTask records the parent relation together with the
// task when ParentID is set. Task returns ErrTaskNotFound for unknown ids.
type Store interface {
	AddTask(ctx context.Context, task domain.Task) (domain.Task, error)
	Task(ctx context.Context, id int64) (domain.Task, error)
	Tasks(ctx context.Context) ([]domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) error
}

type Clock interface {
	Now() time.Time
}
