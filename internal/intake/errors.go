package intake

import (
	"errors"
	"fmt"

	"ai-task-planner/internal/model"
)

var (
	ErrSessionNotFound  = errors.New("review session not found")
	ErrSessionClosed    = errors.New("review session is closed")
	ErrEmptyInput       = errors.New("no input to analyze")
	ErrMixedInput       = errors.New("text and audio are mutually exclusive")
	ErrMissingMimeType  = errors.New("audio input requires a mime type")
	ErrAnalysisInFlight = errors.New("an analysis is already in progress")
	ErrCandidateIndex   = errors.New("candidate index out of range")
	ErrNoCandidates     = errors.New("nothing to commit")
	ErrEmptyTitle       = errors.New("candidate title must not be empty")
)

// CommitError reports a commit where some creations failed. The tasks in
// Created stay persisted.
type CommitError struct {
	Attempted int
	Created   []model.Task
	Failed    []error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit: %d of %d tasks failed", len(e.Failed), e.Attempted)
}

// Unwrap exposes the individual failures to errors.Is / errors.As.
func (e *CommitError) Unwrap() []error {
	return e.Failed
}
