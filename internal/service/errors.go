package service

type ErrorCode string

const (
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeAlreadySignedUp ErrorCode = "ALREADY_SIGNED_UP"
	ErrorCodeNotRegistered   ErrorCode = "NOT_REGISTERED"
	ErrorCodeInvalidBody     ErrorCode = "INVALID_BODY"
	ErrorCodeUnspecified     ErrorCode = "UNSPECIFIED"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func (e *Error) Error() string {
	return e.Message
}
