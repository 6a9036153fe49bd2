package task

import (
	"time"

	"ai-task-planner/internal/model"
)

// --- UseCase Inputs ---

type CreateInput struct {
	Title       string
	Description string
	Datetime    *time.Time
	Tags        []string
	Status      model.Status // empty means pending
}

type ListInput struct {
	Status model.Status
	From   *time.Time // inclusive lower bound on datetime
	To     *time.Time // exclusive upper bound on datetime
}

// UpdateInput is a partial update: nil fields keep their stored value.
type UpdateInput struct {
	ID            int64
	Title         *string
	Description   *string
	Datetime      *time.Time
	ClearDatetime bool // explicit null in the request
	Tags          *[]string
	Status        *model.Status
}

// --- UseCase Outputs ---

type ListOutput struct {
	Tasks []model.Task
	Total int
}

type SetupOutput struct {
	Seeded bool
	Sample model.Task
}
