package http

import (
	"encoding/gob"
	"net/http"
	"strings"
	"unicode"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"loan-admin-dashboard/internal/apperror"
	"loan-admin-dashboard/internal/config"
	"loan-admin-dashboard/internal/logging"
)

// Session keys
const (
	sessionName  = "dashboard-session"
	sessionKeyID = "sid"
)

// Echo context keys
const (
	ctxKeyStaff   = "staff"
	ctxKeySession = "session"
)

const (
	toastSuccess = "success"
	toastError   = "error"
)

// Toast is a one-shot notification shown on the next rendered page.
type Toast struct {
	Level   string
	Message string
}

func init() {
	gob.Register(Toast{})
}

func setupSessionStore(cfg *config.Config) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// cookieSession never fails: a cookie that no longer decodes (rotated
// secret, tampering) is replaced by a fresh session.
func (s *Server) cookieSession(c echo.Context) *sessions.Session {
	sess, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		logging.FromContext(c.Request().Context()).WithError(err).Debug("discarding undecodable session cookie")
		sess, _ = s.sessionStore.New(c.Request(), sessionName)
	}
	return sess
}

func (s *Server) saveSession(c echo.Context, sess *sessions.Session) {
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		logging.FromContext(c.Request().Context()).WithError(err).Error("failed to save session cookie")
	}
}

func (s *Server) addToast(c echo.Context, level, message string) {
	sess := s.cookieSession(c)
	sess.AddFlash(Toast{Level: level, Message: message})
	s.saveSession(c, sess)
}

// addErrorToasts adds one toast per invalid field, or a single toast with
// the error message.
func (s *Server) addErrorToasts(c echo.Context, err *apperror.Error) {
	sess := s.cookieSession(c)
	if len(err.Fields) == 0 {
		sess.AddFlash(Toast{Level: toastError, Message: err.Message})
	}
	for _, f := range err.Fields {
		sess.AddFlash(Toast{Level: toastError, Message: fieldLabel(f.Field) + " " + f.Message})
	}
	s.saveSession(c, sess)
}

func (s *Server) popToasts(c echo.Context) []Toast {
	sess := s.cookieSession(c)
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	s.saveSession(c, sess)

	out := make([]Toast, 0, len(flashes))
	for _, f := range flashes {
		if t, ok := f.(Toast); ok {
			out = append(out, t)
		}
	}
	return out
}

// fieldLabel turns "upiTransactionId" or "upi_transaction_id" into
// "Upi transaction id".
func fieldLabel(field string) string {
	if field == "" || field == "_" {
		return "Form"
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case r == '_' || r == '.':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && i > 0:
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	out := []rune(strings.Join(strings.Fields(b.String()), " "))
	if len(out) == 0 {
		return "Form"
	}
	out[0] = unicode.ToUpper(out[0])
	return string(out)
}
