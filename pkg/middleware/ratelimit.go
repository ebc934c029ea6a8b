package middleware

import (
	"time"

	"CollegeHub/internal/apperr"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	authLimitWindow   = 15 * time.Minute
	authLimitRequests = 100
)

// AuthRateLimiter caps each client IP at 100 auth requests per 15 minutes.
func AuthRateLimiter() echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(authLimitRequests) / authLimitWindow.Seconds()),
		Burst:     authLimitRequests,
		ExpiresIn: authLimitWindow,
	})
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperr.RateLimited("Too many requests", 0)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return apperr.RateLimited("Too many requests", 0)
		},
	})
}
