package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	ErrorCodeFailed         = 1
	ValidationErrorCode     = 422
	InternalServerErrorCode = 500
)
