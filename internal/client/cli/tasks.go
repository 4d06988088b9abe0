package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mpetrov/taskkeeper/internal/api"
)

const dueDateLayout = "2006-01-02"

// parseFilter turns "key=value" arguments into an api.Filter, e.g.:
//
//	list status=pending priority=high sort=title search=report
func parseFilter(args []string) (api.Filter, error) {
	var filter api.Filter
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return filter, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch key {
		case "status":
			filter.Status = value
		case "priority":
			filter.Priority = value
		case "search":
			filter.Search = value
		case "sort":
			filter.Sort = value
		default:
			return filter, fmt.Errorf("unknown filter %q", key)
		}
	}
	return filter, nil
}

func formatTask(t *api.Task) string {
	line := fmt.Sprintf("%s  [%s/%s]  %s", t.ID, t.Status, t.Priority, t.Title)
	if t.DueDate != nil {
		line += "  due " + t.DueDate.Format(dueDateLayout)
	}
	return line
}

// List prints the user's tasks, narrowed by optional key=value filters.
func (a *App) List(ctx context.Context, args []string) error {
	filter, err := parseFilter(args)
	if err != nil {
		printlnFn("Usage: list [status=...] [priority=...] [search=...] [sort=newest|oldest|title|priority]")
		return err
	}

	tasks, err := a.backend.ListTasks(ctx, filter)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(tasks) == 0 {
		printlnFn("No tasks")
		return nil
	}
	for i := range tasks {
		printlnFn(formatTask(&tasks[i]))
	}
	return nil
}

// Add prompts for the task fields and creates it. Empty status/priority
// fall back to the server-side defaults (pending/medium).
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description (optional)", os.Stdout)
	if err != nil {
		return err
	}
	priority, err := getSimpleText(a.reader, "Enter priority low/medium/high (empty for medium)", os.Stdout)
	if err != nil {
		return err
	}
	due, err := getSimpleText(a.reader, "Enter due date YYYY-MM-DD (optional)", os.Stdout)
	if err != nil {
		return err
	}

	req := api.CreateTaskRequest{
		Title:       title,
		Description: description,
		Priority:    api.Priority(priority),
	}
	if due != "" {
		d, err := time.Parse(dueDateLayout, due)
		if err != nil {
			log.Printf("Error: invalid due date %q", due)
			return err
		}
		req.DueDate = &d
	}

	task, err := a.backend.CreateTask(ctx, req)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Created", task.ID)
	return nil
}

// taskID resolves the target task: the first command argument if present,
// otherwise an interactive prompt.
func (a *App) taskID(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, os.Stdout)
}

// Show displays a single task in full.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.taskID(args, "Enter task id to show")
	if err != nil {
		return err
	}

	task, err := a.backend.GetTask(ctx, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Title:      ", task.Title)
	printlnFn("Description:", task.Description)
	printlnFn("Status:     ", string(task.Status))
	printlnFn("Priority:   ", string(task.Priority))
	if task.DueDate != nil {
		printlnFn("Due:        ", task.DueDate.Format(dueDateLayout))
	}
	printlnFn("Created:    ", task.CreatedAt.Format(time.RFC3339))
	printlnFn("Updated:    ", task.UpdatedAt.Format(time.RFC3339))
	return nil
}

// Done marks a task as completed.
func (a *App) Done(ctx context.Context, args []string) error {
	id, err := a.taskID(args, "Enter task id to complete")
	if err != nil {
		return err
	}

	completed := api.StatusCompleted
	if _, err := a.backend.UpdateTask(ctx, id, api.UpdateTaskRequest{Status: &completed}); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Done")
	return nil
}

// Update prompts for new field values; empty input keeps the stored value.
func (a *App) Update(ctx context.Context, args []string) error {
	id, err := a.taskID(args, "Enter task id to update")
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "New description (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	status, err := getSimpleText(a.reader, "New status pending/in-progress/completed (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	priority, err := getSimpleText(a.reader, "New priority low/medium/high (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var patch api.UpdateTaskRequest
	if title != "" {
		patch.Title = &title
	}
	if description != "" {
		patch.Description = &description
	}
	if status != "" {
		s := api.Status(status)
		patch.Status = &s
	}
	if priority != "" {
		p := api.Priority(priority)
		patch.Priority = &p
	}

	task, err := a.backend.UpdateTask(ctx, id, patch)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Updated", task.ID)
	return nil
}

// Delete removes a task by its identifier.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.taskID(args, "Enter task id to delete")
	if err != nil {
		return err
	}

	if err := a.backend.DeleteTask(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Deleted")
	return nil
}

// Stats prints the per-status task counts.
func (a *App) Stats(ctx context.Context) error {
	stats, err := a.backend.TaskStats(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Total:      ", stats.Total)
	printlnFn("Pending:    ", stats.Pending)
	printlnFn("In progress:", stats.InProgress)
	printlnFn("Completed:  ", stats.Completed)
	return nil
}
