package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Kind classifies an application error for HTTP rendering.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindEligibility
	KindAuthentication
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimit
)

// Error is the single error type crossing the handler boundary. The central
// HTTP error handler renders it as {"message": ...}; nothing else leaks.
type Error struct {
	Kind              Kind
	Status            int
	Message           string
	RetryAfterSeconds int
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

func Eligibility(message string) *Error {
	return &Error{Kind: KindEligibility, Status: http.StatusForbidden, Message: message}
}

// Unauthorized is for missing/bad credentials and session tokens (401).
func Unauthorized(message string) *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusUnauthorized, Message: message}
}

// BadOtp is the authentication failure of the OTP verification stage (400).
// The message never distinguishes wrong, expired, or absent codes.
func BadOtp() *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusBadRequest, Message: "Invalid or expired OTP"}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Message: message}
}

func RateLimited(message string, retryAfterSeconds int) *Error {
	return &Error{Kind: KindRateLimit, Status: http.StatusTooManyRequests, Message: message, RetryAfterSeconds: retryAfterSeconds}
}

// NewHTTPErrorHandler renders every error as a {message} body. Unclassified
// errors become a logged 500 with generic text.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ae *Error
		if errors.As(err, &ae) {
			body := map[string]interface{}{"message": ae.Message}
			if ae.Kind == KindRateLimit && ae.RetryAfterSeconds > 0 {
				body["retryAfterSeconds"] = ae.RetryAfterSeconds
			}
			if err := c.JSON(ae.Status, body); err != nil {
				logger.Error("failed to write error response", zap.Error(err))
			}
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			message := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok {
				message = s
			}
			if err := c.JSON(he.Code, map[string]interface{}{"message": message}); err != nil {
				logger.Error("failed to write error response", zap.Error(err))
			}
			return
		}

		logger.Error("unhandled error",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		if err := c.JSON(http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"}); err != nil {
			logger.Error("failed to write error response", zap.Error(err))
		}
	}
}
