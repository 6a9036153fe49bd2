package intake

import (
	"context"

	"ai-task-planner/internal/model"
	"ai-task-planner/internal/task"
)

// UseCase drives review sessions from raw input to committed tasks.
type UseCase interface {
	Start(ctx context.Context) (Snapshot, error)
	// Resume returns the session with the given id, opening it when absent.
	Resume(ctx context.Context, id string) (Snapshot, error)
	Get(ctx context.Context, id string) (Snapshot, error)
	SetInput(ctx context.Context, id, text string) (Snapshot, error)
	Analyze(ctx context.Context, input AnalyzeInput) (Snapshot, error)
	UpdateCandidate(ctx context.Context, input UpdateCandidateInput) (Snapshot, error)
	RemoveCandidate(ctx context.Context, id string, index int) (Snapshot, error)
	Commit(ctx context.Context, id string) (CommitOutput, error)
	Cancel(ctx context.Context, id string) error

	StartVoice(ctx context.Context, id string) (Snapshot, error)
	PushVoiceFragment(ctx context.Context, input VoiceFragmentInput) (Snapshot, error)
	ReportVoiceError(ctx context.Context, id, code string) (Snapshot, error)
	StopVoice(ctx context.Context, id string) (Snapshot, error)
}

// TaskCreator is the persistence boundary a commit writes to.
type TaskCreator interface {
	Create(ctx context.Context, input task.CreateInput) (model.Task, error)
}
