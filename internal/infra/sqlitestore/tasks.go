package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	taskapp "github.com/osvaldoandrade/shellcommander/internal/app/task"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

const taskColumns = `
	t.id, t.task, t.description, t.status, t.time_stamp, t.due_date, t.renewal_duration, r.parent_id
	FROM tasks t LEFT JOIN task_relations r ON r.child_id = t.id
`

// AddTask inserts the task and, when it has a parent, its relation in one
// transaction.
func (s *Store) AddTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Task{}, fmt.Errorf("begin task transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var renewal sql.NullInt64
	if task.RenewalDays > 0 {
		renewal = sql.NullInt64{Int64: int64(task.RenewalDays), Valid: true}
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO tasks (task, description, status, time_stamp, due_date, renewal_duration)
		VALUES (?, ?, ?, ?, ?, ?)
	`, task.Name, nullString(task.Description), string(task.Status), toUnix(task.CreatedAt), nullUnix(task.DueDate), renewal)
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Task{}, fmt.Errorf("read task id: %w", err)
	}

	if task.ParentID != nil {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO task_relations (parent_id, child_id) VALUES (?, ?)
		`, *task.ParentID, id); err != nil {
			return domain.Task{}, fmt.Errorf("insert task relation: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.Task{}, fmt.Errorf("commit task: %w", err)
	}

	task.ID = id
	task.CreatedAt = fromUnix(toUnix(task.CreatedAt))
	if task.DueDate != nil {
		due := fromUnix(toUnix(*task.DueDate))
		task.DueDate = &due
	}
	return task, nil
}

func (s *Store) Task(ctx context.Context, id int64) (domain.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" WHERE t.id = ?", id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, fmt.Errorf("%w: %d", taskapp.ErrTaskNotFound, id)
		}
		return domain.Task{}, fmt.Errorf("read task: %w", err)
	}
	return task, nil
}

func (s *Store) Tasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+taskColumns+" ORDER BY t.id")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

func (s *Store) UpdateTask(ctx context.Context, task domain.Task) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET task = ?, description = ?, status = ?, due_date = ? WHERE id = ?
	`, task.Name, nullString(task.Description), string(task.Status), nullUnix(task.DueDate), task.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", taskapp.ErrTaskNotFound, task.ID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var task domain.Task
	var desc sql.NullString
	var status string
	var created int64
	var due, renewal, parent sql.NullInt64
	if err := row.Scan(&task.ID, &task.Name, &desc, &status, &created, &due, &renewal, &parent); err != nil {
		return domain.Task{}, err
	}
	task.Description = desc.String
	task.Status = domain.TaskStatus(status)
	task.CreatedAt = fromUnix(created)
	if due.Valid {
		t := fromUnix(due.Int64)
		task.DueDate = &t
	}
	task.RenewalDays = int(renewal.Int64)
	if parent.Valid {
		id := parent.Int64
		task.ParentID = &id
	}
	return task, nil
}
