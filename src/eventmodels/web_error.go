package eventmodels

import (
	"errors"
	"net/http"
)

type WebError struct {
	StatusCode int
	Type       string
	Message    string
	Cause      error
}

func (e *WebError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Cause != nil {
		return e.Cause.Error()
	}

	return http.StatusText(e.StatusCode)
}

func (e *WebError) Unwrap() error {
	return e.Cause
}

func NewWebError(statusCode int, errType string, message string, cause error) *WebError {
	return &WebError{
		StatusCode: statusCode,
		Type:       errType,
		Message:    message,
		Cause:      cause,
	}
}

// NewFetchWebError maps a FetchError onto an HTTP status.
func NewFetchWebError(err *FetchError) *WebError {
	status := http.StatusBadGateway
	if err.Kind == InvalidMaturityIndex {
		status = http.StatusUnprocessableEntity
	}

	return NewWebError(status, string(err.Kind), err.UserMessage(), err)
}

// AsWebError picks the status and message an HTTP handler should report for err.
func AsWebError(err error) *WebError {
	var webErr *WebError
	if errors.As(err, &webErr) {
		return webErr
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return NewFetchWebError(fetchErr)
	}

	return NewWebError(http.StatusInternalServerError, "internal", err.Error(), err)
}
