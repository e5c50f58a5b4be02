package internal

import "errors"

// ErrRecordNotFound signals a completion or edit aimed at an id that is
// not in the store. Callers must surface it rather than no-op, so a
// morning entry is never silently dropped.
var ErrRecordNotFound = errors.New("sleep record not found")

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
