// Package exit provides standard exit codes for showmore commands.
package exit

// Standard exit codes used by showmore commands.
const (
	// Success indicates successful execution.
	Success = 0
	// GeneralError indicates a general error occurred.
	GeneralError = 1
	// ValidationError indicates invalid input, flags, or thresholds.
	ValidationError = 2
	// ConnectionError indicates a connection error to etcd.
	ConnectionError = 3
	// KeyNotFound indicates the requested key was not found in etcd.
	KeyNotFound = 4
)

// CodeDescriptions maps exit codes to their descriptions.
var CodeDescriptions = map[int]string{
	Success:         "Success",
	GeneralError:    "General error",
	ValidationError: "Validation error",
	ConnectionError: "Connection error",
	KeyNotFound:     "Key not found",
}

// GetDescription returns the description for an exit code.
func GetDescription(code int) string {
	if desc, ok := CodeDescriptions[code]; ok {
		return desc
	}
	return "Unknown error"
}

// Error carries an exit code alongside the error shown to the user.
type Error struct {
	Err  error
	Code int
}

// WithCode wraps err so the command exits with code. A nil err stays nil.
func WithCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
