package usecase

import (
	"context"

	"ai-task-planner/internal/intake"
	"ai-task-planner/internal/voice"
)

// StartVoice begins capture for the session. It fails with
// voice.ErrUnsupported or voice.ErrPermissionDenied; the session itself is
// unaffected either way.
func (uc *implUseCase) StartVoice(ctx context.Context, id string) (intake.Snapshot, error) {
	s, err := uc.session(id)
	if err != nil {
		return intake.Snapshot{}, err
	}
	if err := s.StartCapture(ctx); err != nil {
		uc.l.Warnf(ctx, "uc.StartVoice: session %s: %v", id, err)
		return s.Snapshot(), err
	}
	return s.Snapshot(), nil
}

// PushVoiceFragment feeds one recognizer result into the session.
func (uc *implUseCase) PushVoiceFragment(ctx context.Context, input intake.VoiceFragmentInput) (intake.Snapshot, error) {
	s, err := uc.session(input.SessionID)
	if err != nil {
		return intake.Snapshot{}, err
	}
	if err := s.PushFragment(voice.Fragment{Text: input.Text, Final: input.Final}); err != nil {
		return s.Snapshot(), err
	}
	return s.Snapshot(), nil
}

// ReportVoiceError handles a recognizer error. Capture always stops; a
// refused microphone is returned as voice.ErrPermissionDenied.
func (uc *implUseCase) ReportVoiceError(ctx context.Context, id, code string) (intake.Snapshot, error) {
	s, err := uc.session(id)
	if err != nil {
		return intake.Snapshot{}, err
	}

	uc.l.Warnf(ctx, "uc.ReportVoiceError: session %s: recognizer error %q", id, code)
	if code == voice.ErrorCodeNotAllowed {
		s.DenyCapture()
		return s.Snapshot(), voice.ErrPermissionDenied
	}
	s.StopCapture()
	return s.Snapshot(), nil
}

// StopVoice ends capture. It is idempotent.
func (uc *implUseCase) StopVoice(ctx context.Context, id string) (intake.Snapshot, error) {
	s, err := uc.session(id)
	if err != nil {
		return intake.Snapshot{}, err
	}
	s.StopCapture()
	return s.Snapshot(), nil
}
