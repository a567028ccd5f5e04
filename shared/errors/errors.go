package errors

import (
	"errors"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Is lets values built by InvalidArgument match ErrInvalidArgument.
func (e *ErrorWithStatusCode) Is(target error) bool {
	t, ok := target.(*ErrorWithStatusCode)
	if !ok {
		return false
	}
	if t == ErrInvalidArgument {
		return e.StatusCode == http.StatusBadRequest
	}
	return e == t
}

var (
	ErrUserNotFound      = &ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	ErrBoardNotFound     = &ErrorWithStatusCode{Message: "Board not found", StatusCode: http.StatusNotFound}
	ErrKindBoardNotFound = &ErrorWithStatusCode{Message: "Kind board not found", StatusCode: http.StatusNotFound}

	ErrInvalidArgument = &ErrorWithStatusCode{Message: "Invalid argument", StatusCode: http.StatusBadRequest}

	ErrNotOwner        = &ErrorWithStatusCode{Message: "Only the author can modify this board", StatusCode: http.StatusForbidden}
	ErrUsernameTaken   = &ErrorWithStatusCode{Message: "Username already taken", StatusCode: http.StatusConflict}
	ErrKindBoardExists = &ErrorWithStatusCode{Message: "Kind board already exists", StatusCode: http.StatusConflict}
	ErrWrongPassword   = &ErrorWithStatusCode{Message: "Wrong username or password", StatusCode: http.StatusUnauthorized}
)

func InvalidArgument(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

// StatusCode returns the http status carried by err, 500 if there is none.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
