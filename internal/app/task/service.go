package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

const (
	minTextLen    = 3
	maxTextLen    = 80
	maxRepeatDays = 365
)

type AddRequest struct {
	Name        string
	Description string
	Due         string
	RepeatDays  int
	ParentID    *int64
}

type Service struct {
	store Store
	clock Clock
}

func NewService(store Store, clock Clock) *Service {
	return &Service{store: store, clock: clock}
}

func (s *Service) Add(ctx context.Context, req AddRequest) (domain.Task, error) {
	name := strings.TrimSpace(req.Name)
	if !validText(name) {
		return domain.Task{}, ErrInvalidName
	}
	desc := strings.TrimSpace(req.Description)
	if desc != "" && !validText(desc) {
		return domain.Task{}, ErrInvalidDescription
	}
	if req.RepeatDays < 0 || req.RepeatDays > maxRepeatDays {
		return domain.Task{}, ErrInvalidRepeat
	}

	due, err := ParseDue(req.Due)
	if err != nil {
		return domain.Task{}, err
	}

	if req.ParentID != nil {
		if _, err := s.store.Task(ctx, *req.ParentID); err != nil {
			if errors.Is(err, ErrTaskNotFound) {
				return domain.Task{}, fmt.Errorf("%w: %d", ErrParentNotFound, *req.ParentID)
			}
			return domain.Task{}, err
		}
	}

	return s.store.AddTask(ctx, domain.Task{
		Name:        name,
		Description: desc,
		Status:      domain.TaskIncomplete,
		CreatedAt:   s.clock.Now(),
		DueDate:     due,
		RenewalDays: req.RepeatDays,
		ParentID:    req.ParentID,
	})
}

func (s *Service) List(ctx context.Context) ([]domain.Task, error) {
	return s.store.Tasks(ctx)
}

// Complete marks a task done. Repeating tasks with a due date stay open and
// move their due date forward by the renewal period instead.
func (s *Service) Complete(ctx context.Context, id int64) (domain.Task, error) {
	t, err := s.store.Task(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	if t.RenewalDays > 0 && t.DueDate != nil {
		next := t.DueDate.AddDate(0, 0, t.RenewalDays)
		t.DueDate = &next
		t.Status = domain.TaskIncomplete
	} else {
		t.Status = domain.TaskComplete
	}

	if err := s.store.UpdateTask(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// ParseDue parses a due date in local time; an empty value means no due date.
func ParseDue(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	due, err := time.ParseInLocation(domain.CommitTimeLayout, value, time.Local)
	if err != nil {
		return nil, ErrInvalidDueDate
	}
	return &due, nil
}

func validText(value string) bool {
	n := utf8.RuneCountInString(value)
	return n >= minTextLen && n <= maxTextLen
}
