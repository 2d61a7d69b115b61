package emsapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized marks 401/403 responses; the session token is
	// missing, expired or revoked.
	ErrUnauthorized = errors.New("authentication required")
	// ErrNotFound marks 404 responses for a record lookup.
	ErrNotFound = errors.New("record not found")
	// ErrBadCredentials marks a rejected login attempt.
	ErrBadCredentials = errors.New("invalid username or password")
)

// ErrorKind discriminates the shapes an EMS API error body can take.
type ErrorKind int

const (
	// KindUnknown covers empty or unparseable bodies.
	KindUnknown ErrorKind = iota
	// KindFieldErrors is a map of field name to validation messages.
	KindFieldErrors
	// KindNonField is a list of record-level validation messages.
	KindNonField
	// KindPlain is a single human-readable message.
	KindPlain
)

// APIError is a non-2xx response from the EMS API with its body parsed
// into exactly one of the known error shapes.
type APIError struct {
	StatusCode int
	Kind       ErrorKind
	Fields     map[string][]string // KindFieldErrors
	Messages   []string            // KindNonField
	Message    string              // KindPlain
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindFieldErrors:
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)

		return fmt.Sprintf("the server rejected fields: %s", strings.Join(names, ", "))
	case KindNonField:
		return strings.Join(e.Messages, ", ")
	case KindPlain:
		return e.Message
	default:
		return fmt.Sprintf("unexpected response from the EMS API (status %d)", e.StatusCode)
	}
}

// Unwrap maps authentication and lookup failures onto their sentinel
// errors so callers can branch with errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// parseAPIError turns a non-2xx response body into an APIError. The API
// answers with one of three JSON shapes: a field-keyed map of message
// lists, an object with a "non_field_errors" list, or a bare string
// (DRF also uses {"detail": "..."}). Anything else is KindUnknown.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Kind: KindUnknown}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return apiErr
	}

	var plain string
	if err := json.Unmarshal([]byte(trimmed), &plain); err == nil {
		apiErr.Kind = KindPlain
		apiErr.Message = plain

		return apiErr
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &object); err != nil {
		return apiErr
	}

	if raw, ok := object["non_field_errors"]; ok {
		var messages []string
		if err := json.Unmarshal(raw, &messages); err == nil && len(messages) > 0 {
			apiErr.Kind = KindNonField
			apiErr.Messages = messages

			return apiErr
		}
	}

	if raw, ok := object["detail"]; ok && len(object) == 1 {
		var detail string
		if err := json.Unmarshal(raw, &detail); err == nil {
			apiErr.Kind = KindPlain
			apiErr.Message = detail

			return apiErr
		}
	}

	fields := make(map[string][]string, len(object))
	for name, raw := range object {
		var messages []string
		if err := json.Unmarshal(raw, &messages); err == nil {
			fields[name] = messages
			continue
		}

		var message string
		if err := json.Unmarshal(raw, &message); err == nil {
			fields[name] = []string{message}
		}
	}

	if len(fields) > 0 {
		apiErr.Kind = KindFieldErrors
		apiErr.Fields = fields
	}

	return apiErr
}
