package types

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeConflict         = "conflict"
	CodeUnauthorized     = "unauthorized"
	CodeNotFound         = "not_found"
	CodeUnsupportedInput = "unsupported_input"
	CodeGenerationFailed = "generation_failed"
)

type APIError struct {
	Status int
	Code   string
	Err    error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

func NewAPIError(status int, code string, err error) *APIError {
	return &APIError{Status: status, Code: code, Err: err}
}

// A taken username answers with 400, not 409; clients treat it as a
// plain validation failure.
func Conflict(err error) *APIError {
	return NewAPIError(http.StatusBadRequest, CodeConflict, err)
}

func Unauthorized(err error) *APIError {
	return NewAPIError(http.StatusUnauthorized, CodeUnauthorized, err)
}

func NotFound(err error) *APIError {
	return NewAPIError(http.StatusNotFound, CodeNotFound, err)
}

func UnsupportedInput(err error) *APIError {
	return NewAPIError(http.StatusOK, CodeUnsupportedInput, err)
}

func GenerationFailed(err error) *APIError {
	return NewAPIError(http.StatusOK, CodeGenerationFailed, err)
}

func IsCode(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
