package validators

import "errors"

var (
	// ErrInvalidInput is the root of every validation failure. Callers
	// match it with errors.Is; the concrete *ValidationError carries the
	// user-facing message.
	ErrInvalidInput = errors.New("invalid input")

	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidKind      = errors.New("invalid record kind")
	ErrInvalidLabel     = errors.New("invalid category or source")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("description is required")
	ErrMissingDate      = errors.New("date is required")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrInvalidOwnerID   = errors.New("invalid owner ID")
)

// ValidationError describes the first rule a value failed.
type ValidationError struct {
	// Field is the JSON name of the offending field.
	Field string
	// Message is safe to show to the API client.
	Message string
	// Cause is the specific sentinel, if any.
	Cause error
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes both ErrInvalidInput and the specific cause to errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidInput}
	}
	return []error{ErrInvalidInput, e.Cause}
}

func newValidationError(field string, cause error, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Cause: cause}
}
