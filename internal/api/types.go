package api

import "time"

// Task status values.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task priority values.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for sorting: high(1) < medium(2) < low(3).
// Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Sort keys accepted by the task list operation.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortTitle    = "title"
	SortPriority = "priority"
)

// Field length limits enforced on task creation and update.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

// Filter narrows and orders a task listing. Status and Priority values of
// "" or "all" disable the respective equality filter; an empty Search skips
// the substring match; an unrecognized Sort leaves the input order intact.
type Filter struct {
	Status   string `json:"status,omitempty" form:"status"`
	Priority string `json:"priority,omitempty" form:"priority"`
	Search   string `json:"search,omitempty" form:"search"`
	Sort     string `json:"sort,omitempty" form:"sort"`
}

// User is the credential-free user representation returned by every auth
// operation. The password hash never appears on the wire.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Task is the wire representation of a task.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Stats counts a user's tasks by status. The buckets always sum to Total.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}
