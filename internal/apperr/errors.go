package apperr

import (
	"errors"

	"github.com/DjordjeVuckovic/echo-paginate/pkg/pagination"
)

// ValidationError is a client mistake in a request. Param names the
// offending query or path parameter when there is one.
type ValidationError struct {
	Param   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// NewInvalidParam reports a missing or malformed request parameter.
func NewInvalidParam(param, msg string, err error) *ValidationError {
	return &ValidationError{Param: param, Message: msg, Err: err}
}

// AsValidation finds a ValidationError in err's chain. A rejected page or
// limit from the pagination middleware is reported as one too.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}

	var ce *pagination.ClientInputError
	if errors.As(err, &ce) {
		return &ValidationError{Param: ce.Param, Message: ce.Error(), Err: ce}, true
	}
	return nil, false
}
