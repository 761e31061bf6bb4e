package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// GenericMessage is shown when nothing more specific is known about a failure
const GenericMessage = "Unexpected error. Please try again."

// ErrUnauthorized marks a 401 response
var ErrUnauthorized = errors.New("unauthorized")

// FieldError is one validation failure reported by the backend
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error is a failed API call. Status is zero for transport failures.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if msg := e.display(); msg != "" {
		return msg
	}
	return GenericMessage
}

func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return e.Err
}

// display applies the message precedence: envelope message, first field error, transport error
func (e *Error) display() string {
	if e.Message != "" {
		return e.Message
	}
	for _, f := range e.Fields {
		if f.Message != "" {
			return f.Message
		}
	}
	if e.Err != nil {
		var ue *url.Error
		if errors.As(e.Err, &ue) {
			return ue.Err.Error()
		}
		return e.Err.Error()
	}
	return ""
}

func statusError(status int) error {
	return fmt.Errorf("request failed with status code %d", status)
}

// Message normalizes any error from this package into a single human-readable string
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericMessage
}

// FieldErrors returns the backend validation errors keyed by field, first message wins
func FieldErrors(err error) map[string]string {
	var apiErr *Error
	if !errors.As(err, &apiErr) || len(apiErr.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(apiErr.Fields))
	for _, f := range apiErr.Fields {
		if _, ok := out[f.Field]; !ok && f.Field != "" {
			out[f.Field] = f.Message
		}
	}
	return out
}

// StatusCode returns the HTTP status of a failed call, or 0
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 response
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound reports whether err is a 404 response
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
