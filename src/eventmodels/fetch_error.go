package eventmodels

import (
	"errors"
	"fmt"
)

type FetchErrorKind string

const (
	InvalidMaturityIndex FetchErrorKind = "InvalidMaturityIndex"
	ProviderError        FetchErrorKind = "ProviderError"
)

// FetchError is the only error kind returned by FetchOptionsTable.
type FetchError struct {
	Kind          FetchErrorKind
	MaturityIndex int
	Detail        string
	Cause         error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case InvalidMaturityIndex:
		return fmt.Sprintf("%s: maturity index %d: %s", e.Kind, e.MaturityIndex, e.Detail)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// UserMessage is the text shown in place of the options table.
func (e *FetchError) UserMessage() string {
	switch e.Kind {
	case InvalidMaturityIndex:
		return fmt.Sprintf("Maturity index %d not available. Please try a lower number.", e.MaturityIndex)
	default:
		return fmt.Sprintf("Error fetching data: %s", e.Detail)
	}
}

func NewInvalidMaturityIndexError(index int, available int) *FetchError {
	return &FetchError{
		Kind:          InvalidMaturityIndex,
		MaturityIndex: index,
		Detail:        fmt.Sprintf("%d maturities available", available),
	}
}

func NewProviderError(cause error) *FetchError {
	return &FetchError{
		Kind:   ProviderError,
		Detail: cause.Error(),
		Cause:  cause,
	}
}

// AsFetchError converts any error into a FetchError, treating unknown errors as provider failures.
func AsFetchError(err error) *FetchError {
	if err == nil {
		return nil
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr
	}

	return NewProviderError(err)
}
