package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mpetrov/taskkeeper/internal/api"
	"github.com/mpetrov/taskkeeper/internal/common"
	"github.com/mpetrov/taskkeeper/internal/dbx"
	"github.com/mpetrov/taskkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `id, user_id, title, description, status, priority, due_date, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (user_id, title, description, status, priority, due_date)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Title, task.Description, task.Status, task.Priority, task.DueDate).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// List applies the status/priority/search filters and the sort key inside
// the query. Unrecognized sort values keep the insertion order (id).
func (r *PostgresRepository) List(ctx context.Context, userID string, filter api.Filter) ([]models.Task, error) {

	var b strings.Builder
	b.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`)
	args := []any{userID}

	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		b.WriteString(` AND status = $` + strconv.Itoa(len(args)))
	}
	if filter.Priority != "" && filter.Priority != "all" {
		args = append(args, filter.Priority)
		b.WriteString(` AND priority = $` + strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		b.WriteString(` AND (title ILIKE $` + n + ` OR description ILIKE $` + n + `)`)
	}

	switch filter.Sort {
	case api.SortNewest:
		b.WriteString(` ORDER BY created_at DESC, id`)
	case api.SortOldest:
		b.WriteString(` ORDER BY created_at ASC, id`)
	case api.SortTitle:
		b.WriteString(` ORDER BY title ASC, id`)
	case api.SortPriority:
		b.WriteString(` ORDER BY CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END, id`)
	default:
		b.WriteString(` ORDER BY id`)
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 AND id = $2`

	t := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, userID, id).
		Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

// Update rewrites the mutable columns and refreshes updated_at. The row is
// matched on (user_id, id), so ownership cannot change.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`UPDATE tasks
		 SET title = $3, description = $4, status = $5, priority = $6, due_date = $7, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.UserID, task.ID, task.Title, task.Description, task.Status, task.Priority, task.DueDate).
		Scan(&task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM tasks WHERE user_id = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) CountByStatus(ctx context.Context, userID string) (api.Stats, error) {
	query :=
		`SELECT status, COUNT(*) FROM tasks
		 WHERE user_id = $1
		 GROUP BY status
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return api.Stats{}, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var stats api.Stats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return api.Stats{}, err
		}
		switch api.Status(status) {
		case api.StatusPending:
			stats.Pending = count
		case api.StatusInProgress:
			stats.InProgress = count
		case api.StatusCompleted:
			stats.Completed = count
		}
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return api.Stats{}, err
	}

	return stats, nil
}
