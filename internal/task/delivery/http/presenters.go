package http

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"ai-task-planner/internal/model"
	"ai-task-planner/internal/task"
	"ai-task-planner/pkg/response"
)

// --- Request DTOs ---

type createReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Datetime    *string  `json:"datetime"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
}

func (r createReq) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return task.ErrEmptyTitle
	}
	if strings.TrimSpace(r.Description) == "" {
		return task.ErrEmptyDescription
	}
	return nil
}

func (r createReq) toInput(datetime *time.Time) task.CreateInput {
	return task.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Datetime:    datetime,
		Tags:        r.Tags,
		Status:      model.Status(r.Status),
	}
}

// ---

type listReq struct {
	Status string `form:"status"`
	From   string `form:"from"`
	To     string `form:"to"`
}

func (r listReq) validate() error {
	if r.Status != "" && !model.Status(r.Status).IsValid() {
		return task.ErrInvalidStatus
	}
	return nil
}

// ---

// updateReq keeps datetime raw so an explicit null can be told apart from an
// absent field.
type updateReq struct {
	ID          int64           `json:"-"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Datetime    json.RawMessage `json:"datetime"`
	Tags        *[]string       `json:"tags"`
	Status      *string         `json:"status"`
}

func (r updateReq) validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return task.ErrEmptyTitle
	}
	if r.Status != nil && !model.Status(*r.Status).IsValid() {
		return task.ErrInvalidStatus
	}
	return nil
}

func (r updateReq) datetimeIsNull() bool {
	return bytes.Equal(bytes.TrimSpace(r.Datetime), []byte("null"))
}

func (r updateReq) toInput(datetime *time.Time) task.UpdateInput {
	in := task.UpdateInput{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Datetime:      datetime,
		ClearDatetime: r.datetimeIsNull(),
		Tags:          r.Tags,
	}
	if r.Status != nil {
		s := model.Status(*r.Status)
		in.Status = &s
	}
	return in
}

// --- Response DTOs ---

type taskResp struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Datetime    *response.DateTime `json:"datetime"`
	Tags        []string           `json:"tags"`
	Status      string             `json:"status"`
	CreatedAt   response.DateTime  `json:"created_at"`
}

func newTaskResp(t model.Task) taskResp {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return taskResp{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Datetime:    response.NewDateTime(t.Datetime),
		Tags:        tags,
		Status:      string(t.Status),
		CreatedAt:   response.DateTime(t.CreatedAt),
	}
}

type listResp struct {
	Tasks []taskResp `json:"tasks"`
	Total int        `json:"total"`
}

func newListResp(out task.ListOutput) listResp {
	tasks := make([]taskResp, len(out.Tasks))
	for i, t := range out.Tasks {
		tasks[i] = newTaskResp(t)
	}
	return listResp{Tasks: tasks, Total: out.Total}
}
