package model

import "time"

// Status is the lifecycle state of a persisted task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task is a persisted task.
type Task struct {
	ID          int64
	Title       string
	Description string
	Datetime    *time.Time // nil means no schedule
	Tags        []string
	Status      Status
	CreatedAt   time.Time
}

// IsScheduled reports whether the task has a datetime.
func (t Task) IsScheduled() bool {
	return t.Datetime != nil
}
