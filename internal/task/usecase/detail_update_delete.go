package usecase

import (
	"context"
	"strings"

	"ai-task-planner/internal/model"
	"ai-task-planner/internal/task"
	repo "ai-task-planner/internal/task/repository"
)

// Detail retrieves a single Task by id. Returns ErrTaskNotFound when not found.
func (uc *implUseCase) Detail(ctx context.Context, id int64) (model.Task, error) {
	t, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Detail GetOneTask: %v", err)
		return model.Task{}, err
	}
	if t.ID == 0 {
		return model.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

// Update merges the provided fields into an existing Task.
// An empty title is rejected before storage is touched.
func (uc *implUseCase) Update(ctx context.Context, input task.UpdateInput) (model.Task, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return model.Task{}, task.ErrEmptyTitle
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) == "" {
		return model.Task{}, task.ErrEmptyDescription
	}
	if input.Status != nil && !input.Status.IsValid() {
		return model.Task{}, task.ErrInvalidStatus
	}

	existing, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{ID: input.ID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update GetOneTask: %v", err)
		return model.Task{}, err
	}
	if existing.ID == 0 {
		return model.Task{}, task.ErrTaskNotFound
	}

	datetime := existing.Datetime
	switch {
	case input.ClearDatetime:
		datetime = nil
	case input.Datetime != nil:
		datetime = input.Datetime
	}

	t, err := uc.repo.UpdateTask(ctx, repo.UpdateTaskOptions{
		ID:          input.ID,
		Title:       coalesce(input.Title, existing.Title),
		Description: coalesce(input.Description, existing.Description),
		Datetime:    datetime,
		Tags:        coalesce(input.Tags, existing.Tags),
		Status:      coalesce(input.Status, existing.Status),
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update UpdateTask: %v", err)
		return model.Task{}, err
	}
	if t.ID == 0 {
		return model.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

// Delete removes a Task by id. Returns ErrTaskNotFound when not found.
func (uc *implUseCase) Delete(ctx context.Context, id int64) error {
	existing, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Delete GetOneTask: %v", err)
		return err
	}
	if existing.ID == 0 {
		return task.ErrTaskNotFound
	}
	if err := uc.repo.DeleteTask(ctx, id); err != nil {
		uc.l.Errorf(ctx, "uc.Delete DeleteTask: %v", err)
		return err
	}
	return nil
}
