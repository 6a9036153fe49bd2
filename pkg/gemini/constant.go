package gemini

import "time"

const (
	// DefaultModel is the default Gemini model
	DefaultModel = "gemini-2.5-flash"

	// DefaultAPIURL is the default Gemini API endpoint
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout is the HTTP client timeout used when none is configured.
	// Zero means the call is bounded only by the request context.
	DefaultTimeout time.Duration = 0

	// MimeTypeJSON asks the model for a JSON body.
	MimeTypeJSON = "application/json"
)
