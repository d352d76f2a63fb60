package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"loan-admin-dashboard/internal/adapter/backend"
	"loan-admin-dashboard/internal/apperror"
	"loan-admin-dashboard/internal/domain/staff"
	"loan-admin-dashboard/internal/logging"
)

const ctxKeyBack = "back"

// correlationMiddleware reuses a well-formed inbound X-Request-ID and
// echoes the id back on the response.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		cid := req.Header.Get(logging.HeaderRequestID)
		if !logging.ValidCorrelationID(cid) {
			cid = logging.NewCorrelationID()
		}
		c.Response().Header().Set(logging.HeaderRequestID, cid)
		c.SetRequest(req.WithContext(logging.WithCorrelationID(req.Context(), cid)))
		return next(c)
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/health") || c.Path() == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency.String(),
				"remote_ip": v.RemoteIP,
			}
			if st := currentStaff(c); st != nil {
				fields["staff_id"] = st.ID
			}
			entry := logging.FromContext(c.Request().Context()).WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("request")
			return nil
		},
	})
}

// requireAuth resolves the session cookie against the session store, puts
// the staff on the echo context and the bearer token on the request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		sess := s.cookieSession(c)
		sid, _ := sess.Values[sessionKeyID].(string)
		if sid == "" {
			return s.toLogin(c, "")
		}

		st, err := s.auth.Resolve(req.Context(), sid)
		if err != nil {
			if !errors.Is(err, staff.ErrSessionNotFound) {
				return err
			}
			logging.FromContext(req.Context()).Debug("session expired or unknown")
			delete(sess.Values, sessionKeyID)
			s.saveSession(c, sess)
			return s.toLogin(c, "Your session has expired, please sign in again")
		}

		c.Set(ctxKeyStaff, &st.Staff)
		c.Set(ctxKeySession, st)
		c.SetRequest(req.WithContext(backend.WithToken(req.Context(), st.Token)))
		return next(c)
	}
}

// toLogin redirects browsers to the login page, remembering where they were
// going; JSON callers get a plain 401.
func (s *Server) toLogin(c echo.Context, message string) error {
	if wantsJSON(c) {
		if message == "" {
			message = "sign in to continue"
		}
		return c.JSON(http.StatusUnauthorized, apperror.Unauthorized(message).ToResponse())
	}
	if message != "" {
		s.addToast(c, toastError, message)
	}
	target := "/login"
	if c.Request().Method == http.MethodGet && c.Request().URL.Path != "/" {
		target += "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
	}
	return c.Redirect(http.StatusFound, target)
}

func currentStaff(c echo.Context) *staff.Staff {
	st, _ := c.Get(ctxKeyStaff).(*staff.Staff)
	return st
}

func currentSession(c echo.Context) *staff.Session {
	st, _ := c.Get(ctxKeySession).(*staff.Session)
	return st
}

func staffID(c echo.Context) string {
	if st := currentStaff(c); st != nil {
		return st.ID
	}
	return ""
}

// setBack names the page a failed form post returns to.
func setBack(c echo.Context, path string) { c.Set(ctxKeyBack, path) }

// backURL prefers the handler's choice, then a same-origin Referer.
func backURL(c echo.Context) string {
	if p, ok := c.Get(ctxKeyBack).(string); ok && p != "" {
		return p
	}
	if ref := c.Request().Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil && (u.Host == "" || u.Host == c.Request().Host) && strings.HasPrefix(u.Path, "/") {
			return u.RequestURI()
		}
	}
	return "/"
}

// safeNext accepts only local absolute paths as post-login targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/applications"
	}
	return next
}

func wantsJSON(c echo.Context) bool {
	req := c.Request()
	if strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return true
	}
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return true
	}
	return req.Header.Get(echo.HeaderXRequestedWith) == "XMLHttpRequest"
}

// handleError is the echo HTTPErrorHandler. HTML form posts get toasts and
// a redirect back, failed page loads get the error page, JSON callers get
// the structured error body.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	appErr := toAppError(err)
	logError(c, appErr)

	var werr error
	switch {
	case appErr.Type == apperror.TypeUnauthorized && currentSession(c) != nil:
		werr = s.expireAndRedirect(c)
	case wantsJSON(c):
		werr = c.JSON(appErr.HTTPStatus(), appErr.ToResponse())
	case c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead:
		werr = s.renderError(c, appErr)
	default:
		s.addErrorToasts(c, appErr)
		werr = c.Redirect(http.StatusSeeOther, backURL(c))
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).WithError(werr).Error("failed to write error response")
	}
}

// expireAndRedirect handles a backend 401 for a signed-in staff member: the
// token is no longer valid, so the local session goes too.
func (s *Server) expireAndRedirect(c echo.Context) error {
	sess := currentSession(c)
	s.auth.Expire(c.Request().Context(), sess.ID)

	cookie := s.cookieSession(c)
	delete(cookie.Values, sessionKeyID)
	s.saveSession(c, cookie)

	msg := "Your session has expired, please sign in again"
	if wantsJSON(c) {
		return c.JSON(http.StatusUnauthorized, apperror.Unauthorized(msg).ToResponse())
	}
	s.addToast(c, toastError, msg)
	return c.Redirect(http.StatusSeeOther, "/login")
}

func toAppError(err error) *apperror.Error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return wrapHTTPError(he)
	}
	return apperror.As(err)
}

func wrapHTTPError(httpErr *echo.HTTPError) *apperror.Error {
	message := http.StatusText(httpErr.Code)
	if msg, ok := httpErr.Message.(string); ok && msg != "" {
		message = msg
	}

	var err *apperror.Error
	switch httpErr.Code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		err = apperror.Validation(message)
	case http.StatusUnauthorized:
		err = apperror.Unauthorized(message)
	case http.StatusForbidden:
		err = apperror.Forbidden(message)
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		err = apperror.NotFound(message)
	case http.StatusConflict:
		err = apperror.Conflict(message)
	case http.StatusBadGateway:
		err = apperror.External(message, nil)
	case http.StatusServiceUnavailable:
		err = apperror.Unavailable(message)
	default:
		err = apperror.Internal(message, nil)
	}
	if httpErr.Internal != nil {
		err.Cause = httpErr.Internal
	}
	return err
}

func logError(c echo.Context, err *apperror.Error) {
	fields := logrus.Fields{
		"error_type": err.Type,
		"message":    err.Message,
		"path":       c.Request().URL.Path,
		"method":     c.Request().Method,
		"status":     err.HTTPStatus(),
	}
	for k, v := range err.Context {
		fields[k] = v
	}
	if id := staffID(c); id != "" {
		fields["staff_id"] = id
	}
	if len(err.Fields) > 0 {
		fields["invalid_fields"] = len(err.Fields)
	}

	log := logging.FromContext(c.Request().Context()).WithFields(fields)
	switch err.Type {
	case apperror.TypeValidation:
		log.Info("validation error")
	case apperror.TypeNotFound:
		log.Info("not found")
	case apperror.TypeUnauthorized, apperror.TypeForbidden:
		log.Warn("access denied")
	case apperror.TypeConflict:
		log.Warn("conflict")
	case apperror.TypeUnavailable:
		log.WithError(err.Cause).Error("dependency unavailable")
	case apperror.TypeExternal:
		log.WithError(err.Cause).Error("backend error")
	default:
		log.WithError(err.Cause).Error("internal error")
	}
}
