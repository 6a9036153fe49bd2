package usecase

import (
	"context"

	"ai-task-planner/internal/task"
	repo "ai-task-planner/internal/task/repository"
)

// List returns Tasks newest first, optionally filtered by status and datetime range.
func (uc *implUseCase) List(ctx context.Context, input task.ListInput) (task.ListOutput, error) {
	if input.Status != "" && !input.Status.IsValid() {
		return task.ListOutput{}, task.ErrInvalidStatus
	}
	if input.From != nil && input.To != nil && input.From.After(*input.To) {
		return task.ListOutput{}, task.ErrInvalidRange
	}

	tasks, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{
		Status: input.Status,
		From:   input.From,
		To:     input.To,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListTasks: %v", err)
		return task.ListOutput{}, err
	}

	return task.ListOutput{Tasks: tasks, Total: len(tasks)}, nil
}
