package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mpetrov/taskkeeper/internal/api"
	"github.com/mpetrov/taskkeeper/internal/client/store"
	"github.com/mpetrov/taskkeeper/internal/common"
)

// StoreRepository keeps all tasks as a single JSON array in the "tasks"
// collection. Every operation loads the array, applies the change in memory
// and saves it back, mirroring how the repository behaves against a real
// database while staying trivially portable.
type StoreRepository struct {
	store store.Store
}

func NewStoreRepository(s store.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func (r *StoreRepository) loadAll(ctx context.Context) ([]api.Task, error) {
	data, err := r.store.Load(ctx, store.CollectionTasks)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var tasks []api.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks collection: %w", err)
	}
	return tasks, nil
}

func (r *StoreRepository) saveAll(ctx context.Context, tasks []api.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks collection: %w", err)
	}
	return r.store.Save(ctx, store.CollectionTasks, data)
}

func (r *StoreRepository) Create(ctx context.Context, task *api.Task) error {
	tasks, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	tasks = append(tasks, *task)
	return r.saveAll(ctx, tasks)
}

// List returns the owner's tasks narrowed by filter. Matching happens in a
// fixed order: status, then priority, then search, then sort. Empty or "all"
// status/priority values match everything; search is a case-insensitive
// substring test against title and description.
func (r *StoreRepository) List(ctx context.Context, userID string, filter api.Filter) ([]api.Task, error) {
	tasks, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]api.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(t.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && filter.Priority != "all" && string(t.Priority) != filter.Priority {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
		}
		result = append(result, t)
	}

	sortTasks(result, filter.Sort)
	return result, nil
}

// sortTasks orders in place. The sort is stable so ties keep insertion
// order; an unknown key leaves the input order untouched.
func sortTasks(tasks []api.Task, key string) {
	switch key {
	case api.SortNewest:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	case api.SortOldest:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		})
	case api.SortTitle:
		sort.SliceStable(tasks, func(i, j int) bool {
			return strings.ToLower(tasks[i].Title) < strings.ToLower(tasks[j].Title)
		})
	case api.SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
		})
	}
}

func (r *StoreRepository) GetByID(ctx context.Context, userID string, id string) (*api.Task, error) {
	tasks, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, t := range tasks {
		if t.ID == id && t.UserID == userID {
			return &t, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *StoreRepository) Update(ctx context.Context, task *api.Task) error {
	tasks, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	for i := range tasks {
		if tasks[i].ID == task.ID && tasks[i].UserID == task.UserID {
			task.CreatedAt = tasks[i].CreatedAt
			task.UpdatedAt = time.Now().UTC()
			tasks[i] = *task
			return r.saveAll(ctx, tasks)
		}
	}
	return common.ErrNotFound
}

func (r *StoreRepository) Delete(ctx context.Context, userID string, id string) error {
	tasks, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	for i := range tasks {
		if tasks[i].ID == id && tasks[i].UserID == userID {
			tasks = append(tasks[:i], tasks[i+1:]...)
			return r.saveAll(ctx, tasks)
		}
	}
	return common.ErrNotFound
}

// DeleteByUser removes every task owned by userID. Used when an account is
// deleted; removing nothing is not an error.
func (r *StoreRepository) DeleteByUser(ctx context.Context, userID string) error {
	tasks, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	kept := tasks[:0]
	for _, t := range tasks {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	return r.saveAll(ctx, kept)
}

func (r *StoreRepository) CountByStatus(ctx context.Context, userID string) (api.Stats, error) {
	tasks, err := r.loadAll(ctx)
	if err != nil {
		return api.Stats{}, err
	}

	var stats api.Stats
	for _, t := range tasks {
		if t.UserID != userID {
			continue
		}
		stats.Total++
		switch t.Status {
		case api.StatusPending:
			stats.Pending++
		case api.StatusInProgress:
			stats.InProgress++
		case api.StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}
