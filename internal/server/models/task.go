package models

import (
	"time"

	"github.com/mpetrov/taskkeeper/internal/api"
)

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      api.Status
	Priority    api.Priority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ToAPI converts the row to its wire representation.
func (t *Task) ToAPI() api.Task {
	return api.Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
