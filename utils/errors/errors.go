package errors

import (
	"errors"
	"fmt"

	"github.com/putrawijaya/fulfillment/constant"
)

type CustomError struct {
	errType constant.ErrorType
	detail  string
}

func (c CustomError) Error() string {
	msg := constant.ErrorTypeMessage[c.errType]
	if c.detail != "" {
		return msg + ": " + c.detail
	}
	return msg
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// SetCustomErrorf attaches a caller-facing detail, e.g. the current status
// blocking a transition.
func SetCustomErrorf(errorType constant.ErrorType, format string, args ...interface{}) CustomError {
	return CustomError{
		errType: errorType,
		detail:  fmt.Sprintf(format, args...),
	}
}

// FromError unwraps err into a CustomError if it carries one.
func FromError(err error) (CustomError, bool) {
	var ce CustomError
	ok := errors.As(err, &ce)
	return ce, ok
}

// IsType reports whether err is a CustomError of the given type.
func IsType(err error, errorType constant.ErrorType) bool {
	ce, ok := FromError(err)
	return ok && ce.errType == errorType
}
