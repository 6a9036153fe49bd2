package http

import (
	"bytes"
	"encoding/json"

	"ai-task-planner/internal/intake"
	"ai-task-planner/internal/model"
	"ai-task-planner/pkg/response"
)

// --- Request DTOs ---

type inputReq struct {
	Text string `json:"text"`
}

type analyzeReq struct {
	Text          *string `json:"text"`
	ReferenceDate string  `json:"reference_date"`
}

// candidateReq keeps datetime raw so an explicit null can be told apart from
// an absent field.
type candidateReq struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Datetime    json.RawMessage `json:"datetime"`
	Tags        *[]string       `json:"tags"`
}

func (r candidateReq) datetimeIsNull() bool {
	return bytes.Equal(bytes.TrimSpace(r.Datetime), []byte("null"))
}

type fragmentReq struct {
	Text  string `json:"text" binding:"required"`
	Final bool   `json:"final"`
}

type voiceErrorReq struct {
	Error string `json:"error" binding:"required"`
}

// --- Response DTOs ---

type candidateResp struct {
	Index       int                `json:"index"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Datetime    *response.DateTime `json:"datetime"`
	Tags        []string           `json:"tags"`
}

type sessionResp struct {
	ID         string          `json:"id"`
	State      string          `json:"state"`
	Input      string          `json:"input"`
	Interim    string          `json:"interim"`
	Recording  bool            `json:"recording"`
	CanCommit  bool            `json:"can_commit"`
	Candidates []candidateResp `json:"candidates"`
}

func newSessionResp(s intake.Snapshot) sessionResp {
	cands := make([]candidateResp, len(s.Candidates))
	for i, c := range s.Candidates {
		cands[i] = candidateResp{
			Index:       i,
			Title:       c.Title,
			Description: c.Description,
			Datetime:    response.NewDateTime(c.Datetime),
			Tags:        c.Tags,
		}
	}
	return sessionResp{
		ID:         s.ID,
		State:      string(s.State),
		Input:      s.Input,
		Interim:    s.Interim,
		Recording:  s.Recording,
		CanCommit:  s.State == intake.StateReviewing && len(s.Candidates) > 0,
		Candidates: cands,
	}
}

type createdTaskResp struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Datetime    *response.DateTime `json:"datetime"`
	Tags        []string           `json:"tags"`
	Status      string             `json:"status"`
	CreatedAt   response.DateTime  `json:"created_at"`
}

type commitResp struct {
	Attempted int               `json:"attempted"`
	Created   []createdTaskResp `json:"created"`
	Failed    int               `json:"failed"`
}

func newCommitResp(created []model.Task, attempted int) commitResp {
	out := commitResp{
		Attempted: attempted,
		Created:   make([]createdTaskResp, len(created)),
		Failed:    attempted - len(created),
	}
	for i, t := range created {
		out.Created[i] = createdTaskResp{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Datetime:    response.NewDateTime(t.Datetime),
			Tags:        t.Tags,
			Status:      string(t.Status),
			CreatedAt:   response.DateTime(t.CreatedAt),
		}
	}
	return out
}
