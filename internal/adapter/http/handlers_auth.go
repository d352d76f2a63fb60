package http

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"loan-admin-dashboard/internal/domain/staff"
	"loan-admin-dashboard/internal/logging"
)

func (s *Server) registerAuthRoutes(csrfMiddleware, rateLimiter echo.MiddlewareFunc) {
	s.echo.GET("/login", s.handleLoginPage, csrfMiddleware)
	s.echo.POST("/login", s.handleLogin, rateLimiter, csrfMiddleware)
	s.echo.POST("/logout", s.handleLogout, csrfMiddleware, s.requireAuth)
}

func (s *Server) handleLoginPage(c echo.Context) error {
	sess := s.cookieSession(c)
	if sid, _ := sess.Values[sessionKeyID].(string); sid != "" {
		if _, err := s.auth.Resolve(c.Request().Context(), sid); err == nil {
			return c.Redirect(http.StatusFound, safeNext(c.QueryParam("next")))
		}
	}
	return s.render(c, "login.html", "Sign in", "", map[string]any{
		"Next": c.QueryParam("next"),
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	var f loginForm
	if err := bindAndValidate(c, &f); err != nil {
		setBack(c, loginBack(f.Next))
		return err
	}

	st, err := s.auth.Login(c.Request().Context(), staff.Credentials{Email: f.Email, Password: f.Password})
	if err != nil {
		setBack(c, loginBack(f.Next))
		return err
	}

	// Fresh cookie on privilege change.
	old := s.cookieSession(c)
	old.Options.MaxAge = -1
	s.saveSession(c, old)

	sess, _ := s.sessionStore.New(c.Request(), sessionName)
	sess.Values[sessionKeyID] = st.ID
	sess.AddFlash(Toast{Level: toastSuccess, Message: "Welcome back, " + displayName(st.Staff)})
	s.saveSession(c, sess)

	logging.FromContext(c.Request().Context()).WithField("staff_id", st.Staff.ID).Info("staff signed in")
	return c.Redirect(http.StatusSeeOther, safeNext(f.Next))
}

func (s *Server) handleLogout(c echo.Context) error {
	if st := currentSession(c); st != nil {
		if err := s.auth.Logout(c.Request().Context(), st); err != nil {
			logging.FromContext(c.Request().Context()).WithError(err).Warn("logout did not complete cleanly")
		}
	}

	sess := s.cookieSession(c)
	delete(sess.Values, sessionKeyID)
	sess.AddFlash(Toast{Level: toastSuccess, Message: "You have been signed out"})
	s.saveSession(c, sess)
	return c.Redirect(http.StatusSeeOther, "/login")
}

func loginBack(next string) string {
	if next == "" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

func displayName(st staff.Staff) string {
	if st.Name != "" {
		return st.Name
	}
	return st.Email
}
