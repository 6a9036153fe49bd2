package usecase

import (
	"context"

	"github.com/google/uuid"

	"ai-task-planner/internal/intake"
	"ai-task-planner/internal/intake/session"
)

// Start opens a new Empty session.
func (uc *implUseCase) Start(ctx context.Context) (intake.Snapshot, error) {
	s := session.New(uuid.NewString(), uc.newEngine())
	uc.store.Put(s)
	uc.l.Debugf(ctx, "uc.Start: session %s opened", s.ID())
	return s.Snapshot(), nil
}

// Resume returns the named session, opening it when it does not exist or has closed.
func (uc *implUseCase) Resume(ctx context.Context, id string) (intake.Snapshot, error) {
	if s, ok := uc.store.Get(id); ok && !s.State().Terminal() {
		return s.Snapshot(), nil
	}
	s := session.New(id, uc.newEngine())
	uc.store.Put(s)
	uc.l.Debugf(ctx, "uc.Resume: session %s opened", id)
	return s.Snapshot(), nil
}

// Get returns a snapshot of the session.
func (uc *implUseCase) Get(ctx context.Context, id string) (intake.Snapshot, error) {
	s, err := uc.session(id)
	if err != nil {
		return intake.Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// SetInput replaces the session's raw input text.
func (uc *implUseCase) SetInput(ctx context.Context, id, text string) (intake.Snapshot, error) {
	s, err := uc.session(id)
	if err != nil {
		return intake.Snapshot{}, err
	}
	if err := s.SetInput(text); err != nil {
		return intake.Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// UpdateCandidate merges fields into one candidate.
func (uc *implUseCase) UpdateCandidate(ctx context.Context, input intake.UpdateCandidateInput) (intake.Snapshot, error) {
	s, err := uc.session(input.SessionID)
	if err != nil {
		return intake.Snapshot{}, err
	}
	if err := s.UpdateField(input.Index, input.Fields); err != nil {
		return intake.Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// RemoveCandidate drops one candidate.
func (uc *implUseCase) RemoveCandidate(ctx context.Context, id string, index int) (intake.Snapshot, error) {
	s, err := uc.session(id)
	if err != nil {
		return intake.Snapshot{}, err
	}
	if err := s.Remove(index); err != nil {
		return intake.Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// Cancel abandons the session without side effects.
func (uc *implUseCase) Cancel(ctx context.Context, id string) error {
	s, err := uc.session(id)
	if err != nil {
		return err
	}
	s.Abandon()
	uc.store.Delete(id)
	uc.l.Debugf(ctx, "uc.Cancel: session %s abandoned", id)
	return nil
}

func (uc *implUseCase) session(id string) (*session.Session, error) {
	s, ok := uc.store.Get(id)
	if !ok {
		return nil, intake.ErrSessionNotFound
	}
	return s, nil
}
