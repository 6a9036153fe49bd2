package usecase

import (
	"context"

	"ai-task-planner/internal/intake"
)

// Analyze runs one extraction for the session and moves it to Reviewing.
// Extraction problems end in an empty candidate list, never an error.
func (uc *implUseCase) Analyze(ctx context.Context, input intake.AnalyzeInput) (intake.Snapshot, error) {
	hasAudio := input.Audio != nil
	if hasAudio && input.Text != nil {
		return intake.Snapshot{}, intake.ErrMixedInput
	}
	if hasAudio && input.MimeType == "" {
		return intake.Snapshot{}, intake.ErrMissingMimeType
	}

	s, err := uc.session(input.SessionID)
	if err != nil {
		return intake.Snapshot{}, err
	}

	ticket, err := s.BeginAnalyze(input.Text, hasAudio)
	if err != nil {
		return intake.Snapshot{}, err
	}

	ref := input.ReferenceDate
	if ref.IsZero() {
		ref = uc.now()
	}
	ref = ref.In(uc.cfg.Location)

	ext := intake.ExtractionInput{Text: ticket.Text}
	if hasAudio {
		ext = intake.ExtractionInput{Audio: input.Audio, MimeType: input.MimeType}
	}

	raw := uc.extractor.Extract(ctx, ext, ref)
	candidates := uc.normalizer.Normalize(raw, ref)

	if !s.FinishAnalyze(ticket, candidates) {
		uc.l.Infof(ctx, "uc.Analyze: session %s closed during analysis, result discarded", s.ID())
	} else {
		uc.l.Infof(ctx, "uc.Analyze: session %s has %d candidate(s)", s.ID(), len(candidates))
	}
	return s.Snapshot(), nil
}
