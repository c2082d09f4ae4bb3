package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnexpectedResponse is returned when an endpoint answers with a 2xx
// body that is neither the expected payload nor a structured error.
var ErrUnexpectedResponse = errors.New("unexpected response from backend")

// APIError is a structured error returned by the backend, either as an
// `{error: ...}` body or as the detail of a non-2xx response. Its message
// is meant to be shown to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error (%d)", e.StatusCode)
}

// errorBody matches the error shapes the backend produces: `{error: ...}`
// payloads and FastAPI-style `{detail: ...}` HTTP errors.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// parseAPIError extracts a structured backend error from a response body.
// Returns nil when the body does not carry one.
func parseAPIError(statusCode int, body []byte) *APIError {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return nil
	}
	switch {
	case eb.Error != "":
		return &APIError{StatusCode: statusCode, Message: eb.Error}
	case eb.Detail != "":
		return &APIError{StatusCode: statusCode, Message: eb.Detail}
	}
	return nil
}
