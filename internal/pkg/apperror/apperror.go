package apperror

// AppError carries an HTTP status code alongside a user-facing message so
// handlers can map service errors to responses without switching on every
// sentinel.
type AppError struct {
	Code    int    // HTTP status code
	Message string // user-facing message
	Err     error  // underlying cause, never exposed to the client
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a status code and message to an underlying error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
