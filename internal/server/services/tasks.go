package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mpetrov/taskkeeper/internal/api"
	"github.com/mpetrov/taskkeeper/internal/common"
	"github.com/mpetrov/taskkeeper/internal/server/config"
	"github.com/mpetrov/taskkeeper/internal/server/models"
	"github.com/mpetrov/taskkeeper/internal/server/repositories/repomanager"
)

// TaskService implements task CRUD, listing with filters, and per-status
// counts. Every operation is scoped to the calling user.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, _ *config.Config) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if len(title) > api.MaxTitleLen {
		return fmt.Errorf("%w: title must be at most %d characters", common.ErrValidation, api.MaxTitleLen)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > api.MaxDescriptionLen {
		return fmt.Errorf("%w: description must be at most %d characters", common.ErrValidation, api.MaxDescriptionLen)
	}
	return nil
}

// List returns the user's tasks narrowed and ordered by the filter.
func (s *TaskService) List(ctx context.Context, userID string, filter api.Filter) ([]api.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	rows, err := repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	result := make([]api.Task, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].ToAPI())
	}
	return result, nil
}

// Create validates the payload, applies defaults, and inserts the task.
func (s *TaskService) Create(ctx context.Context, userID string, req api.CreateTaskRequest) (*api.Task, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = api.StatusPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, status)
	}

	priority := req.Priority
	if priority == "" {
		priority = api.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", common.ErrValidation, priority)
	}

	task := &models.Task{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
	}

	repo := s.repomanager.Tasks(s.db)
	created, err := repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	t := created.ToAPI()
	return &t, nil
}

// Get returns one of the user's tasks or common.ErrNotFound.
func (s *TaskService) Get(ctx context.Context, userID, id string) (*api.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	task, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	t := task.ToAPI()
	return &t, nil
}

// Update merges the patch over the stored task. Ownership is checked the
// same way as Get; the owning user never changes.
func (s *TaskService) Update(ctx context.Context, userID, id string, patch api.UpdateTaskRequest) (*api.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return nil, err
		}
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, *patch.Status)
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", common.ErrValidation, *patch.Priority)
		}
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}

	updated, err := repo.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	t := updated.ToAPI()
	return &t, nil
}

// Delete removes one of the user's tasks or reports common.ErrNotFound.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Tasks(s.db)
	return repo.Delete(ctx, userID, id)
}

// Stats counts the user's tasks by status, independent of any filter.
func (s *TaskService) Stats(ctx context.Context, userID string) (api.Stats, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.CountByStatus(ctx, userID)
}
