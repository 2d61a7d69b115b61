package emsapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		statusCode   int
		body         string
		expectedKind ErrorKind
		check        func(t *testing.T, apiErr *APIError)
	}{
		{
			name:         "field errors map",
			statusCode:   http.StatusBadRequest,
			body:         `{"job_title": ["too long"], "employee_id": ["already exists"]}`,
			expectedKind: KindFieldErrors,
			check: func(t *testing.T, apiErr *APIError) {
				t.Helper()
				assert.Equal(t, []string{"too long"}, apiErr.Fields["job_title"])
				assert.Equal(t, []string{"already exists"}, apiErr.Fields["employee_id"])
			},
		},
		{
			name:         "field error as bare string",
			statusCode:   http.StatusBadRequest,
			body:         `{"date_joined": "This field is required."}`,
			expectedKind: KindFieldErrors,
			check: func(t *testing.T, apiErr *APIError) {
				t.Helper()
				assert.Equal(t, []string{"This field is required."}, apiErr.Fields["date_joined"])
			},
		},
		{
			name:         "non-field errors win over field shape",
			statusCode:   http.StatusBadRequest,
			body:         `{"non_field_errors": ["record conflicts", "try again"]}`,
			expectedKind: KindNonField,
			check: func(t *testing.T, apiErr *APIError) {
				t.Helper()
				assert.Equal(t, "record conflicts, try again", apiErr.Error())
			},
		},
		{
			name:         "plain string body",
			statusCode:   http.StatusBadRequest,
			body:         `"something went wrong"`,
			expectedKind: KindPlain,
			check: func(t *testing.T, apiErr *APIError) {
				t.Helper()
				assert.Equal(t, "something went wrong", apiErr.Message)
			},
		},
		{
			name:         "detail message",
			statusCode:   http.StatusForbidden,
			body:         `{"detail": "Invalid token."}`,
			expectedKind: KindPlain,
			check: func(t *testing.T, apiErr *APIError) {
				t.Helper()
				assert.Equal(t, "Invalid token.", apiErr.Message)
			},
		},
		{
			name:         "empty body",
			statusCode:   http.StatusBadGateway,
			body:         "",
			expectedKind: KindUnknown,
		},
		{
			name:         "unstructured html body",
			statusCode:   http.StatusInternalServerError,
			body:         "<html>boom</html>",
			expectedKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			apiErr := parseAPIError(tt.statusCode, []byte(tt.body))

			assert.Equal(t, tt.expectedKind, apiErr.Kind)
			assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			if tt.check != nil {
				tt.check(t, apiErr)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.Is(parseAPIError(http.StatusUnauthorized, nil), ErrUnauthorized))
	assert.True(t, errors.Is(parseAPIError(http.StatusForbidden, nil), ErrUnauthorized))
	assert.True(t, errors.Is(parseAPIError(http.StatusNotFound, nil), ErrNotFound))
	assert.False(t, errors.Is(parseAPIError(http.StatusBadRequest, nil), ErrUnauthorized))
}
