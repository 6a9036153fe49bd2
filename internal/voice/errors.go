package voice

import "errors"

var (
	ErrUnsupported      = errors.New("speech recognition is not supported")
	ErrPermissionDenied = errors.New("microphone permission denied")
	ErrNotListening     = errors.New("capture is not active")
)

// ErrorCodeNotAllowed is the recognizer error reported when the microphone is refused.
const ErrorCodeNotAllowed = "not-allowed"
