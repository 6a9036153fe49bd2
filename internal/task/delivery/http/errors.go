package http

import (
	"errors"
	"net/http"

	"ai-task-planner/internal/task"
	pkgErrors "ai-task-planner/pkg/errors"
)

var (
	errInvalidID       = pkgErrors.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	errInvalidDatetime = pkgErrors.NewHTTPError(http.StatusBadRequest, "datetime is not a recognizable date/time")
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
// Unknown errors become a generic internal error.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "task not found")
	case errors.Is(err, task.ErrEmptyTitle),
		errors.Is(err, task.ErrEmptyDescription),
		errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, task.ErrInvalidRange):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
