package scheduling

import "fmt"

type SchedulingError struct {
	Code    string
	Message string
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &SchedulingError{Code: "validationError", Message: msg}
}

func NewNotFoundError(msg string) error {
	return &SchedulingError{Code: "notFound", Message: msg}
}

func NewConflictError(msg string) error {
	return &SchedulingError{Code: "slotConflict", Message: msg}
}
