package pagination

import (
	"fmt"
)

// ConfigValidationError is returned when options or route settings are malformed.
// It is fatal at registration and never reaches a client.
type ConfigValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigValidationError) Error() string {
	msg := "invalid pagination config"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigValidationError) Unwrap() error {
	return e.Err
}

func newConfigError(field, msg string) *ConfigValidationError {
	return &ConfigValidationError{Field: field, Message: msg}
}

func wrapConfigError(field string, err error) *ConfigValidationError {
	return &ConfigValidationError{Field: field, Err: err}
}

// ClientInputError reports a non-numeric or out of range page/limit value
// under the badRequest policy.
type ClientInputError struct {
	Param string
	Value string
}

func (e *ClientInputError) Error() string {
	return fmt.Sprintf("Invalid %s", e.Param)
}

// InvalidResultShapeError means the handler result holds no results sequence.
type InvalidResultShapeError struct {
	Reason string
	Err    error
}

func (e *InvalidResultShapeError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *InvalidResultShapeError) Unwrap() error {
	return e.Err
}

func newShapeError(format string, args ...any) *InvalidResultShapeError {
	return &InvalidResultShapeError{Reason: fmt.Sprintf(format, args...)}
}
