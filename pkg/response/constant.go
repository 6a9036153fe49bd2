package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	InternalServerErrorCode = 500
	PartialFailureCode      = 207

	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02T15:04:05"
)
