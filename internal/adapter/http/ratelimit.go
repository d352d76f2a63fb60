package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"loan-admin-dashboard/internal/apperror"
)

const rateLimiterExpiry = 5 * time.Minute

func (s *Server) newRateLimiter(ratePerSecond float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(ratePerSecond),
			Burst:     burst,
			ExpiresIn: rateLimiterExpiry,
		},
	)
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			const msg = "Too many sign-in attempts, please wait a moment and try again"
			if wantsJSON(c) {
				return c.JSON(http.StatusTooManyRequests, apperror.Response{Error: msg, Type: apperror.TypeValidation})
			}
			s.addToast(c, toastError, msg)
			return c.Redirect(http.StatusSeeOther, "/login")
		},
	})
}
