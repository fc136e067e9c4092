package handlers

import (
	"github.com/danielgtaylor/huma/v2"
)

// ErrorMessage is the error body for every failure response: {"message": "..."}.
type ErrorMessage struct {
	status  int
	Message string `json:"message"`
}

func (e *ErrorMessage) Error() string {
	return e.Message
}

func (e *ErrorMessage) GetStatus() int {
	return e.status
}

func init() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		return &ErrorMessage{status: status, Message: message}
	}
}
