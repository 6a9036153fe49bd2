package repository

import (
	"time"

	"ai-task-planner/internal/model"
)

// CreateTaskOptions holds parameters for inserting a new Task.
type CreateTaskOptions struct {
	Title       string
	Description string
	Datetime    *time.Time
	Tags        []string
	Status      model.Status
}

// GetOneTaskOptions holds filter parameters for fetching a single Task.
type GetOneTaskOptions struct {
	ID int64
}

// ListTasksOptions holds filter parameters for listing Tasks.
// Results are ordered by created_at DESC unless OrderBy is set.
type ListTasksOptions struct {
	Status  model.Status
	From    *time.Time
	To      *time.Time
	OrderBy string
}

// UpdateTaskOptions holds the full row to store for an existing Task.
type UpdateTaskOptions struct {
	ID          int64
	Title       string
	Description string
	Datetime    *time.Time
	Tags        []string
	Status      model.Status
}
