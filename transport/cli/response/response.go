package response

import (
	"encoding/json"
	"io"
	"net/http"

	"kampus/shared/failure"
	"kampus/shared/logger"
)

// Exit codes. They follow the failure classification so scripts can branch on them.
const (
	ExitOK           = 0
	ExitInternal     = 1
	ExitBadRequest   = 2
	ExitUnauthorized = 3
	ExitForbidden    = 4
	ExitNotFound     = 5
	ExitConflict     = 6
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
	Code  int     `json:"code"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage writes a simple text message
func WithMessage(writer io.Writer, message string) {
	response(writer, Message{Message: &message})
}

// WithJSON writes a payload wrapped in a data envelope
func WithJSON(writer io.Writer, jsonPayload any) {
	response(writer, Data[any]{Data: &jsonPayload})
}

// WithError writes an error message and its failure code
func WithError(writer io.Writer, err error) {
	errMsg := err.Error()

	response(writer, Error{Error: &errMsg, Code: failure.GetCode(err)})
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch failure.GetCode(err) {
	case http.StatusBadRequest:
		return ExitBadRequest
	case http.StatusUnauthorized:
		return ExitUnauthorized
	case http.StatusForbidden:
		return ExitForbidden
	case http.StatusNotFound:
		return ExitNotFound
	case http.StatusConflict:
		return ExitConflict
	default:
		return ExitInternal
	}
}

func response(writer io.Writer, payload any) {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(payload); err != nil {
		logger.ErrorWithStack(err)
	}
}
