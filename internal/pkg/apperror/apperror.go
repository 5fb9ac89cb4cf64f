package apperror

// AppError carries an HTTP status code alongside a user-facing message.
// Domain packages declare their sentinel errors with New so handlers can
// map them to responses without switching on every error value.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404, 409)
	Message string // User-facing error message
	Err     error  // Underlying error, if any (never exposed to the client)
	Details any    // Optional structured payload included in the response body
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails returns a copy of the error carrying a structured payload,
// e.g. the list of conflicted slots on a booking conflict.
func (e *AppError) WithDetails(details any) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e, // keep errors.Is against the original sentinel working
		Details: details,
	}
}
