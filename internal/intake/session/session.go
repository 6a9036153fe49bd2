package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"ai-task-planner/internal/intake"
	"ai-task-planner/internal/voice"
)

// Session is one review session. All methods are safe for concurrent use.
type Session struct {
	id  string
	now func() time.Time

	mu         sync.Mutex
	state      intake.State
	input      string
	candidates []intake.CandidateTask
	generation uint64
	updatedAt  time.Time

	engine  voice.Engine
	capture *voice.Controller
}

// New creates an Empty session. engine backs voice capture and may be
// voice.Unavailable.
func New(id string, engine voice.Engine) *Session {
	s := &Session{
		id:     id,
		now:    time.Now,
		state:  intake.StateEmpty,
		engine: engine,
	}
	s.updatedAt = s.now()
	s.capture = voice.NewController(engine, s.appendUtterance)
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns a deep copy of the session.
func (s *Session) Snapshot() intake.Snapshot {
	s.mu.Lock()
	snap := intake.Snapshot{
		ID:         s.id,
		State:      s.state,
		Input:      s.input,
		Candidates: cloneAll(s.candidates),
		UpdatedAt:  s.updatedAt,
	}
	s.mu.Unlock()

	snap.Recording = s.capture.Active()
	snap.Interim = s.capture.Interim()
	return snap
}

// State returns the current state.
func (s *Session) State() intake.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetInput replaces the raw input text.
func (s *Session) SetInput(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Terminal() {
		return intake.ErrSessionClosed
	}
	s.input = text
	s.touch()
	return nil
}

// appendUtterance adds a finalized utterance on its own line.
func (s *Session) appendUtterance(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Terminal() {
		return
	}
	if s.input != "" {
		s.input += "\n"
	}
	s.input += text
	s.touch()
}

// Ticket identifies one analysis. Only the latest ticket may finish.
type Ticket struct {
	generation uint64
	Text       string
}

// BeginAnalyze moves the session to Analyzing. text, when not nil, replaces
// the input first. Without audio the input must be non-blank, otherwise the
// session is left as it was and ErrEmptyInput is returned.
func (s *Session) BeginAnalyze(text *string, hasAudio bool) (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.state.Terminal():
		return Ticket{}, intake.ErrSessionClosed
	case s.state == intake.StateAnalyzing:
		return Ticket{}, intake.ErrAnalysisInFlight
	}

	input := s.input
	if text != nil {
		input = *text
	}
	if !hasAudio && strings.TrimSpace(input) == "" {
		return Ticket{}, intake.ErrEmptyInput
	}
	s.input = input

	s.generation++
	s.state = intake.StateAnalyzing
	s.touch()
	return Ticket{generation: s.generation, Text: s.input}, nil
}

// FinishAnalyze stores the extraction result and moves to Reviewing. It
// returns false and changes nothing when the ticket is stale or the session
// was closed meanwhile.
func (s *Session) FinishAnalyze(t Ticket, candidates []intake.CandidateTask) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != intake.StateAnalyzing || t.generation != s.generation {
		return false
	}
	s.candidates = cloneAll(candidates)
	s.state = intake.StateReviewing
	s.touch()
	return true
}

// UpdateField merges fields into the candidate at index.
func (s *Session) UpdateField(index int, f intake.CandidateFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditable(index); err != nil {
		return err
	}

	c := &s.candidates[index]
	if f.Title != nil {
		c.Title = *f.Title
	}
	if f.Description != nil {
		c.Description = *f.Description
	}
	switch {
	case f.ClearDatetime:
		c.Datetime = nil
	case f.Datetime != nil:
		dt := *f.Datetime
		c.Datetime = &dt
	}
	if f.Tags != nil {
		c.Tags = append([]string{}, (*f.Tags)...)
	}
	s.touch()
	return nil
}

// Remove drops the candidate at index. Removing the last one returns the
// session to Empty.
func (s *Session) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditable(index); err != nil {
		return err
	}

	s.candidates = append(s.candidates[:index:index], s.candidates[index+1:]...)
	if len(s.candidates) == 0 {
		s.state = intake.StateEmpty
	}
	s.touch()
	return nil
}

// BeginCommit validates the batch and closes the session as Committed,
// returning the candidates to persist.
func (s *Session) BeginCommit() ([]intake.CandidateTask, error) {
	s.mu.Lock()

	switch {
	case s.state.Terminal():
		s.mu.Unlock()
		return nil, intake.ErrSessionClosed
	case s.state == intake.StateAnalyzing:
		s.mu.Unlock()
		return nil, intake.ErrAnalysisInFlight
	case len(s.candidates) == 0:
		s.mu.Unlock()
		return nil, intake.ErrNoCandidates
	}
	for _, c := range s.candidates {
		if strings.TrimSpace(c.Title) == "" {
			s.mu.Unlock()
			return nil, intake.ErrEmptyTitle
		}
	}

	batch := cloneAll(s.candidates)
	s.state = intake.StateCommitted
	s.touch()
	s.mu.Unlock()

	s.capture.Stop()
	return batch, nil
}

// Abandon discards the session. It is a no-op once closed.
func (s *Session) Abandon() {
	s.mu.Lock()
	if !s.state.Terminal() {
		s.state = intake.StateAbandoned
		s.candidates = nil
		s.touch()
	}
	s.mu.Unlock()

	s.capture.Stop()
}

// StartCapture begins voice capture into the input text.
func (s *Session) StartCapture(ctx context.Context) error {
	if s.State().Terminal() {
		return intake.ErrSessionClosed
	}
	return s.capture.Start(ctx)
}

// StopCapture ends voice capture. It is idempotent.
func (s *Session) StopCapture() {
	s.capture.Stop()
}

// PushFragment feeds a recognizer result into a push-fed engine.
func (s *Session) PushFragment(f voice.Fragment) error {
	p, ok := s.engine.(voice.Pusher)
	if !ok {
		return voice.ErrUnsupported
	}
	return p.Push(f)
}

// DenyCapture records a refused microphone and stops capture.
func (s *Session) DenyCapture() {
	if st, ok := s.engine.(*voice.Stream); ok {
		st.Deny()
	}
	s.capture.Stop()
}

func (s *Session) checkEditable(index int) error {
	switch {
	case s.state.Terminal():
		return intake.ErrSessionClosed
	case s.state == intake.StateAnalyzing:
		return intake.ErrAnalysisInFlight
	case index < 0 || index >= len(s.candidates):
		return intake.ErrCandidateIndex
	}
	return nil
}

func (s *Session) touch() {
	s.updatedAt = s.now()
}

func cloneAll(in []intake.CandidateTask) []intake.CandidateTask {
	out := make([]intake.CandidateTask, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
