package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	taskapp "github.com/osvaldoandrade/shellcommander/internal/app/task"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
	"github.com/osvaldoandrade/shellcommander/internal/platform"
)

func newTaskCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		RunE:  runHelp,
	}
	cmd.AddCommand(newTaskAddCmd(opts), newTaskListCmd(opts), newTaskDoneCmd(opts))
	return cmd
}

func withTasks(opts *RootOptions, fn func(*taskapp.Service) error) error {
	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()
	return fn(taskapp.NewService(store, platform.RealClock{}))
}

func newTaskAddCmd(opts *RootOptions) *cobra.Command {
	var req taskapp.AddRequest
	var parent int64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("parent") {
				req.ParentID = &parent
			}
			return withTasks(opts, func(service *taskapp.Service) error {
				task, err := service.Add(cmd.Context(), req)
				if err != nil {
					return err
				}
				return writeTasks(cmd, []domain.Task{task}, opts.JSONOutput)
			})
		},
	}
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Task name (3 to 80 characters)")
	cmd.Flags().StringVarP(&req.Description, "desc", "d", "", "Short description (3 to 80 characters)")
	cmd.Flags().StringVarP(&req.Due, "due", "D", "", "Due date (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().IntVarP(&req.RepeatDays, "repeat", "r", 0, "Days until the task recurs (0 to 365)")
	cmd.Flags().Int64VarP(&parent, "parent", "p", 0, "Parent task id")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		return cmd
	}
	return cmd
}

func newTaskListCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks with their subtasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTasks(opts, func(service *taskapp.Service) error {
				tasks, err := service.List(cmd.Context())
				if err != nil {
					return err
				}
				return writeTasks(cmd, tasks, opts.JSONOutput)
			})
		},
	}
}

func newTaskDoneCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task; repeating tasks move to their next due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %q", taskapp.ErrInvalidID, args[0])
			}
			return withTasks(opts, func(service *taskapp.Service) error {
				task, err := service.Complete(cmd.Context(), id)
				if err != nil {
					return err
				}
				return writeTasks(cmd, []domain.Task{task}, opts.JSONOutput)
			})
		},
	}
}

type taskOutput struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	RepeatDays  int        `json:"repeat_days,omitzero"`
	ParentID    *int64     `json:"parent_id,omitempty"`
}

func writeTasks(cmd *cobra.Command, tasks []domain.Task, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		items := make([]taskOutput, 0, len(tasks))
		for _, t := range tasks {
			items = append(items, taskOutput{
				ID:          t.ID,
				Name:        t.Name,
				Description: t.Description,
				Status:      string(t.Status),
				CreatedAt:   t.CreatedAt,
				DueDate:     t.DueDate,
				RepeatDays:  t.RenewalDays,
				ParentID:    t.ParentID,
			})
		}
		return writeJSON(out, items)
	}

	ui := newRenderer(out, false)
	now := platform.RealClock{}.Now()
	children := make(map[int64][]domain.Task)
	known := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}
	var roots []domain.Task
	for _, t := range tasks {
		if t.ParentID != nil && known[*t.ParentID] {
			children[*t.ParentID] = append(children[*t.ParentID], t)
			continue
		}
		roots = append(roots, t)
	}

	var write func(t domain.Task, depth int) error
	write = func(t domain.Task, depth int) error {
		mark := "[ ]"
		if t.Status == domain.TaskComplete {
			mark = ui.ok("[x]")
		}
		line := fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", depth), mark, ui.dim(fmt.Sprintf("#%d", t.ID)), t.Name)
		if t.Description != "" {
			line += " - " + t.Description
		}
		if t.DueDate != nil {
			due := "due " + ui.when(*t.DueDate, now)
			if t.Status != domain.TaskComplete && t.DueDate.Before(now) {
				due = ui.err("overdue") + " " + ui.when(*t.DueDate, now)
			}
			line += "  " + due
		}
		if t.RenewalDays > 0 {
			line += ui.dim(fmt.Sprintf("  every %dd", t.RenewalDays))
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
		for _, child := range children[t.ID] {
			if err := write(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, t := range roots {
		if err := write(t, 0); err != nil {
			return err
		}
	}
	return nil
}
