package usecase

import (
	"context"

	"ai-task-planner/internal/model"
	"ai-task-planner/internal/task"
	repo "ai-task-planner/internal/task/repository"
)

const (
	sampleTitle       = "Sample task"
	sampleDescription = "This task was created by setup"
)

var sampleTags = []string{"setup", "sample"}

// Setup migrates the schema and inserts one sample task when the store is empty.
func (uc *implUseCase) Setup(ctx context.Context) (task.SetupOutput, error) {
	if err := uc.repo.Migrate(ctx); err != nil {
		uc.l.Errorf(ctx, "uc.Setup Migrate: %v", err)
		return task.SetupOutput{}, err
	}

	count, err := uc.repo.CountTasks(ctx, repo.ListTasksOptions{})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Setup CountTasks: %v", err)
		return task.SetupOutput{}, err
	}
	if count > 0 {
		uc.l.Infof(ctx, "uc.Setup: %d tasks present, skipping sample", count)
		return task.SetupOutput{}, nil
	}

	now := uc.now()
	sample, err := uc.repo.CreateTask(ctx, repo.CreateTaskOptions{
		Title:       sampleTitle,
		Description: sampleDescription,
		Datetime:    &now,
		Tags:        append([]string(nil), sampleTags...),
		Status:      model.StatusPending,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Setup CreateTask: %v", err)
		return task.SetupOutput{}, err
	}

	uc.l.Infof(ctx, "uc.Setup: inserted sample task id=%d", sample.ID)
	return task.SetupOutput{Seeded: true, Sample: sample}, nil
}
