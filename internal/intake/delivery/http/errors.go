package http

import (
	"errors"
	"net/http"

	"ai-task-planner/internal/intake"
	"ai-task-planner/internal/voice"
	pkgErrors "ai-task-planner/pkg/errors"
)

var (
	errInvalidIndex    = pkgErrors.NewHTTPError(http.StatusBadRequest, "index must be a non-negative integer")
	errInvalidDatetime = pkgErrors.NewHTTPError(http.StatusBadRequest, "datetime is not a recognizable date/time")
	errInvalidDate     = pkgErrors.NewHTTPError(http.StatusBadRequest, "reference_date must be YYYY-MM-DD")
	errInvalidAudio    = pkgErrors.NewHTTPError(http.StatusBadRequest, "audio part could not be read")
)

// mapError translates intake and capture errors into HTTP errors.
// Unknown errors become a generic internal error.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, intake.ErrSessionNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "review session not found")
	case errors.Is(err, intake.ErrCandidateIndex):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, intake.ErrEmptyInput),
		errors.Is(err, intake.ErrMixedInput),
		errors.Is(err, intake.ErrMissingMimeType),
		errors.Is(err, intake.ErrNoCandidates),
		errors.Is(err, intake.ErrEmptyTitle):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, intake.ErrAnalysisInFlight),
		errors.Is(err, intake.ErrSessionClosed),
		errors.Is(err, voice.ErrNotListening):
		return pkgErrors.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, voice.ErrUnsupported):
		return pkgErrors.NewHTTPError(http.StatusNotImplemented, err.Error())
	case errors.Is(err, voice.ErrPermissionDenied):
		return pkgErrors.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
