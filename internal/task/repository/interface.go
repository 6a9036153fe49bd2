package repository

import (
	"context"

	"ai-task-planner/internal/model"
)

// Repository is the composed interface for the task data store.
type Repository interface {
	TaskRepository

	// Migrate applies pending schema migrations.
	Migrate(ctx context.Context) error
}

// TaskRepository defines all data access methods for the Task entity.
type TaskRepository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	GetOneTask(ctx context.Context, opt GetOneTaskOptions) (model.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, error)
	CountTasks(ctx context.Context, opt ListTasksOptions) (int, error)
	UpdateTask(ctx context.Context, opt UpdateTaskOptions) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
