package usecase

import (
	"context"
	"sync"

	"ai-task-planner/internal/intake"
	"ai-task-planner/internal/model"
	"ai-task-planner/internal/task"
)

type createResult struct {
	task model.Task
	err  error
}

// Commit persists every candidate as a pending task. Creations run in
// parallel with no ordering or atomicity; the session is closed whatever the
// outcome. When some creations fail the created tasks are returned together
// with an *intake.CommitError.
func (uc *implUseCase) Commit(ctx context.Context, id string) (intake.CommitOutput, error) {
	s, err := uc.session(id)
	if err != nil {
		return intake.CommitOutput{}, err
	}

	batch, err := s.BeginCommit()
	if err != nil {
		return intake.CommitOutput{}, err
	}
	uc.store.Delete(id)

	if uc.cfg.CommitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.CommitTimeout)
		defer cancel()
	}

	results := make([]createResult, len(batch))
	var wg sync.WaitGroup
	for i, c := range batch {
		wg.Add(1)
		go func(i int, c intake.CandidateTask) {
			defer wg.Done()
			t, err := uc.tasks.Create(ctx, task.CreateInput{
				Title:       c.Title,
				Description: c.Description,
				Datetime:    c.Datetime,
				Tags:        c.Tags,
				Status:      model.StatusPending,
			})
			results[i] = createResult{task: t, err: err}
		}(i, c)
	}
	wg.Wait()

	out := intake.CommitOutput{Created: make([]model.Task, 0, len(batch))}
	var failed []error
	for _, r := range results {
		if r.err != nil {
			failed = append(failed, r.err)
			continue
		}
		out.Created = append(out.Created, r.task)
	}

	if len(failed) > 0 {
		uc.l.Errorf(ctx, "uc.Commit: session %s: %d of %d creations failed: %v", id, len(failed), len(batch), failed[0])
		return out, &intake.CommitError{
			Attempted: len(batch),
			Created:   out.Created,
			Failed:    failed,
		}
	}

	uc.l.Infof(ctx, "uc.Commit: session %s committed %d task(s)", id, len(out.Created))
	return out, nil
}
