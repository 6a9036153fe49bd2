package usecase

import (
	"context"
	"strings"

	"ai-task-planner/internal/model"
	"ai-task-planner/internal/task"
	repo "ai-task-planner/internal/task/repository"
)

// Create persists a new Task. Tags default to empty and status to pending.
func (uc *implUseCase) Create(ctx context.Context, input task.CreateInput) (model.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return model.Task{}, task.ErrEmptyTitle
	}
	if strings.TrimSpace(input.Description) == "" {
		return model.Task{}, task.ErrEmptyDescription
	}

	status := input.Status
	if status == "" {
		status = model.StatusPending
	}
	if !status.IsValid() {
		return model.Task{}, task.ErrInvalidStatus
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	t, err := uc.repo.CreateTask(ctx, repo.CreateTaskOptions{
		Title:       input.Title,
		Description: input.Description,
		Datetime:    input.Datetime,
		Tags:        tags,
		Status:      status,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateTask: %v", err)
		return model.Task{}, err
	}

	uc.tryCreateCalendarEvent(ctx, t)
	return t, nil
}
