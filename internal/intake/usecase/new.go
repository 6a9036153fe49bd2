package usecase

import (
	"context"
	"encoding/json"
	"time"

	"ai-task-planner/internal/intake"
	"ai-task-planner/internal/intake/session"
	"ai-task-planner/internal/voice"
	"ai-task-planner/pkg/log"
)

// Extractor returns the raw task objects found in an input. It never fails.
type Extractor interface {
	Extract(ctx context.Context, in intake.ExtractionInput, ref time.Time) []json.RawMessage
}

// Normalizer turns raw task objects into complete candidates.
type Normalizer interface {
	Normalize(raw []json.RawMessage, ref time.Time) []intake.CandidateTask
}

// Config tunes session lifetime and commits.
type Config struct {
	SessionTTL    time.Duration
	MaxSessions   int
	CommitTimeout time.Duration // zero means no extra deadline
	VoiceEnabled  bool
	Location      *time.Location
}

// implUseCase is the private implementation of intake.UseCase.
type implUseCase struct {
	l          log.Logger
	extractor  Extractor
	normalizer Normalizer
	tasks      intake.TaskCreator
	store      *session.Store
	cfg        Config
	now        func() time.Time
}

var _ intake.UseCase = (*implUseCase)(nil)

// New creates a new intake UseCase implementation.
func New(l log.Logger, ext Extractor, norm Normalizer, tasks intake.TaskCreator, cfg Config) *implUseCase {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &implUseCase{
		l:          l,
		extractor:  ext,
		normalizer: norm,
		tasks:      tasks,
		store:      session.NewStore(cfg.MaxSessions, cfg.SessionTTL),
		cfg:        cfg,
		now:        time.Now,
	}
}

func (uc *implUseCase) newEngine() voice.Engine {
	if uc.cfg.VoiceEnabled {
		return voice.NewStream()
	}
	return voice.Unavailable{}
}
