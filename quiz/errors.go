package quiz

import "fmt"

// ErrorCode identifies why a request was rejected. Codes are part of the
// wire protocol; do not renumber.
type ErrorCode int

const (
	ErrorUnspecified        ErrorCode = 0
	ErrorQuizNotFound       ErrorCode = 1
	ErrorInvalidValue       ErrorCode = 2
	ErrorPlayerLimitReached ErrorCode = 3
	ErrorNotAllowed         ErrorCode = 4
	ErrorUnknownCommand     ErrorCode = 5
	ErrorMissingField       ErrorCode = 6
	ErrorNotConnected       ErrorCode = 7
	ErrorAlreadyAnswered    ErrorCode = 8
	ErrorEmptyResult        ErrorCode = 9
	ErrorInternalServer     ErrorCode = 255
)

// Error is a client-visible rejection. Handlers return it for expected
// failures (bad input, wrong role, unknown quiz, duplicate answer) and for
// store failures reported as ErrorInternalServer. Anything else that comes
// out of a handler is a programmer error and propagates.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (error code %d)", e.Message, e.Code)
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
