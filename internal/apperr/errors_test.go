package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func render(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zap.NewNop())(err, c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandlerRendersClassifiedError(t *testing.T) {
	code, body := render(t, NotFound("Notice not found"))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Notice not found", body["message"])
	assert.NotContains(t, body, "retryAfterSeconds")
}

func TestHandlerRendersRetryAfter(t *testing.T) {
	code, body := render(t, RateLimited("Please wait 42s before requesting a new OTP", 42))
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, float64(42), body["retryAfterSeconds"])
}

func TestHandlerHidesUnknownErrors(t *testing.T) {
	code, body := render(t, errors.New("mongo: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestHandlerRendersEchoHTTPError(t *testing.T) {
	code, body := render(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "Method Not Allowed", body["message"])
}

func TestBadOtpNeverDistinguishesCauses(t *testing.T) {
	assert.Equal(t, BadOtp().Message, "Invalid or expired OTP")
	assert.Equal(t, http.StatusBadRequest, BadOtp().Status)
}
