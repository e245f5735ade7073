package accountsdk

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{"json error", http.StatusBadRequest, `{"error":"duplicate_username","error_description":"taken"}`, ErrorCodeDuplicateUsername},
		{"plain 405", http.StatusMethodNotAllowed, "Method Not Allowed\n", ErrorCodeMethodNotAllowed},
		{"plain 404", http.StatusNotFound, "404 page not found\n", ErrorCodeNotFound},
		{"garbage 502", http.StatusBadGateway, "<html>", ErrorCodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErrorResponse(&http.Response{StatusCode: tt.status}, []byte(tt.body))
			require.True(t, IsCode(err, tt.code), err)

			apiErr := err.(*APIError)
			require.Equal(t, tt.status, apiErr.StatusCode)
		})
	}

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
}

func TestAPIErrorWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	apiErr := NewAPIError(http.StatusBadRequest, ErrorCodeValidation, "bad")
	apiErr.Details = map[string]string{"username": "required"}
	apiErr.WriteError(rec)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"validation_error","error_description":"bad","details":{"username":"required"}}`, rec.Body.String())
	require.Equal(t, "validation_error: bad", apiErr.Error())
}
