package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "loan-admin-dashboard/internal/adapter/middleware"
	"loan-admin-dashboard/internal/metrics"
)

func (s *Server) registerRoutes() {
	s.echo.Use(correlationMiddleware)
	s.echo.Use(requestLogger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(metrics.HTTPMiddleware())
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         63072000, // 2 years; only sent over HTTPS
		ContentSecurityPolicy: "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data: https:; " +
			"connect-src 'self'; " +
			"frame-ancestors 'none'",
		ReferrerPolicy: "strict-origin-when-cross-origin",
	}))

	csrfMiddleware := s.setupCSRFMiddleware()
	idempotent := mw.Idempotency(mw.IdempotencyConfig{
		Redis: s.redis,
		TTL:   s.config.IdempotencyTTL(),
		Actor: staffID,
	})

	s.registerHealthRoutes()
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.registerAuthRoutes(csrfMiddleware, s.newRateLimiter(s.config.LoginRatePerSecond, s.config.LoginRateBurst))

	g := s.echo.Group("", csrfMiddleware, s.requireAuth)
	g.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusFound, "/applications") })
	s.registerApplicationRoutes(g, idempotent)
	s.registerWizardRoutes(g, idempotent)
	s.registerBorrowerRoutes(g)
	s.registerRepaymentRoutes(g, idempotent)
	s.registerUploadRoutes(g)
	g.GET("/activity", s.handleActivity)
}

func (s *Server) setupCSRFMiddleware() echo.MiddlewareFunc {
	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		// header first so multipart uploads reach the handler unread
		TokenLookup:    "header:X-CSRF-Token,form:csrf_token",
		CookieName:     "csrf_token",
		CookiePath:     "/",
		CookieMaxAge:   int(s.config.SessionTTL.Seconds()),
		CookieHTTPOnly: true,
		CookieSecure:   s.config.IsProduction(),
		CookieSameSite: http.SameSiteStrictMode,
		ErrorHandler: func(err error, c echo.Context) error {
			return echo.NewHTTPError(http.StatusForbidden, "Your form expired, please try again").SetInternal(err)
		},
	})
}
