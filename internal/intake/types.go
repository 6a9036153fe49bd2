package intake

import (
	"io"
	"strings"
	"time"

	"ai-task-planner/internal/model"
)

// State is a review session lifecycle state.
type State string

const (
	StateEmpty     State = "empty"
	StateAnalyzing State = "analyzing"
	StateReviewing State = "reviewing"
	StateCommitted State = "committed"
	StateAbandoned State = "abandoned"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateCommitted || s == StateAbandoned
}

// CandidateTask is an extracted task awaiting review. Tags is never nil.
type CandidateTask struct {
	Title       string
	Description string
	Datetime    *time.Time
	Tags        []string
}

// Clone returns a copy that shares no slices with c.
func (c CandidateTask) Clone() CandidateTask {
	out := c
	out.Tags = append([]string{}, c.Tags...)
	if c.Datetime != nil {
		dt := *c.Datetime
		out.Datetime = &dt
	}
	return out
}

// CandidateFields is a partial edit of one candidate. Nil fields are kept.
type CandidateFields struct {
	Title         *string
	Description   *string
	Datetime      *time.Time
	ClearDatetime bool
	Tags          *[]string
}

// ExtractionInput is either text or an audio recording, never both.
type ExtractionInput struct {
	Text     string
	Audio    io.Reader
	MimeType string
}

// HasAudio reports whether the input carries a recording.
func (in ExtractionInput) HasAudio() bool {
	return in.Audio != nil
}

// Validate checks the text/audio exclusivity and that something was supplied.
func (in ExtractionInput) Validate() error {
	hasText := strings.TrimSpace(in.Text) != ""
	switch {
	case hasText && in.HasAudio():
		return ErrMixedInput
	case !hasText && !in.HasAudio():
		return ErrEmptyInput
	case in.HasAudio() && in.MimeType == "":
		return ErrMissingMimeType
	}
	return nil
}

// Snapshot is a read-only view of a review session.
type Snapshot struct {
	ID         string
	State      State
	Input      string
	Interim    string
	Recording  bool
	Candidates []CandidateTask
	UpdatedAt  time.Time
}

// --- UseCase Inputs ---

// AnalyzeInput runs extraction on a session. A nil Text with no Audio
// analyzes the text already held by the session.
type AnalyzeInput struct {
	SessionID     string
	Text          *string
	Audio         io.Reader
	MimeType      string
	ReferenceDate time.Time // zero means now
}

type UpdateCandidateInput struct {
	SessionID string
	Index     int
	Fields    CandidateFields
}

type VoiceFragmentInput struct {
	SessionID string
	Text      string
	Final     bool
}

// --- UseCase Outputs ---

type CommitOutput struct {
	Created []model.Task
}
