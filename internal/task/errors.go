package task

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidStatus    = errors.New("status must be pending or completed")
	ErrInvalidRange     = errors.New("from must not be after to")
)
