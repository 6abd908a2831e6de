package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/joinboard/api/internal/infrastructure/logger"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer prefix", "Bearer abc123", "abc123"},
		{"token prefix", "Token abc123", "abc123"},
		{"no prefix", "abc123", ""},
		{"empty", "", ""},
		{"prefix only", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, extractToken(tt.header))
		})
	}
}

type errorEnvelope struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func renderError(t *testing.T, err error) (int, errorEnvelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	customErrorHandler(logger.NewNop())(err, c)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec.Code, envelope
}

func TestErrorHandlerWrapsHTTPErrors(t *testing.T) {
	code, envelope := renderError(t, echo.NewHTTPError(http.StatusNotFound, "Task not found"))
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "not_found", envelope.Error.Code)
	require.Equal(t, "Task not found", envelope.Error.Message)
	require.Empty(t, envelope.Error.Fields)
}

func TestErrorHandlerMapsValidationFailures(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
		Title string `json:"title" validate:"required"`
	}

	err := NewValidator().Validate(&payload{Email: "not-an-email"})
	require.Error(t, err)

	code, envelope := renderError(t, err)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "validation_error", envelope.Error.Code)
	require.Equal(t, "must be a valid email address", envelope.Error.Fields["email"])
	require.Equal(t, "this field is required", envelope.Error.Fields["title"])
}

func TestErrorHandlerHidesInternalDetails(t *testing.T) {
	code, envelope := renderError(t, errors.New("pq: connection refused"))
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, "internal_error", envelope.Error.Code)
	require.Equal(t, "Internal server error", envelope.Error.Message)
}

func TestValidatorUsesJSONFieldNames(t *testing.T) {
	type payload struct {
		FirstName string `json:"first_name" validate:"required"`
	}

	err := NewValidator().Validate(&payload{})
	require.Error(t, err)

	_, envelope := renderError(t, err)
	require.Contains(t, envelope.Error.Fields, "first_name")
}
