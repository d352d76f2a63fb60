// Package http serves the server-rendered admin dashboard. Every page is a
// thin view over the loan platform API reached through the usecases.
package http

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"loan-admin-dashboard/internal/apperror"
	"loan-admin-dashboard/internal/config"
	"loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/approval"
	"loan-admin-dashboard/internal/domain/borrower"
	"loan-admin-dashboard/internal/domain/loan"
	"loan-admin-dashboard/internal/domain/paging"
	"loan-admin-dashboard/internal/domain/repayment"
	"loan-admin-dashboard/internal/domain/staff"
	domainWizard "loan-admin-dashboard/internal/domain/wizard"
	"loan-admin-dashboard/internal/logging"
	"loan-admin-dashboard/internal/usecase/upload"
	"loan-admin-dashboard/internal/usecase/wizard"
	"loan-admin-dashboard/web"
)

type AuthService interface {
	Login(ctx context.Context, c staff.Credentials) (*staff.Session, error)
	Resolve(ctx context.Context, sessionID string) (*staff.Session, error)
	Logout(ctx context.Context, s *staff.Session) error
	Expire(ctx context.Context, sessionID string)
}

type ApplicationService interface {
	List(ctx context.Context, f loan.ListFilter) (*paging.Page[loan.Application], error)
	Get(ctx context.Context, id string) (*loan.Application, error)
	Decide(ctx context.Context, actor staff.Staff, id string, d approval.Decision) (*loan.Application, error)
	ESign(ctx context.Context, actor staff.Staff, id string, r approval.ESignRequest) (*loan.Application, error)
	Disburse(ctx context.Context, actor staff.Staff, id string, r approval.DisbursalRequest) (*loan.Application, error)
}

type WizardService interface {
	Load(ctx context.Context, staffID string) (*domainWizard.Draft, error)
	Reset(ctx context.Context, staffID string) error
	Next(ctx context.Context, actor staff.Staff, in wizard.StepInput) (*domainWizard.Draft, error)
	Back(ctx context.Context, actor staff.Staff, in wizard.StepInput) (*domainWizard.Draft, error)
	Submit(ctx context.Context, actor staff.Staff, in wizard.StepInput) (*loan.Application, *domainWizard.Draft, error)
}

type BorrowerService interface {
	List(ctx context.Context, f borrower.ListFilter) (*paging.Page[borrower.Borrower], error)
	Get(ctx context.Context, id string) (*borrower.Borrower, error)
	UpdateProfile(ctx context.Context, actor staff.Staff, id string, in borrower.ProfileUpdate) (*borrower.Borrower, error)
	ReviewDocument(ctx context.Context, actor staff.Staff, borrowerID, documentID string, in borrower.DocumentReview) (*borrower.Borrower, error)
	AttachDocument(ctx context.Context, actor staff.Staff, borrowerID string, in borrower.NewDocument) (*borrower.Borrower, error)
	UpdateFlags(ctx context.Context, actor staff.Staff, id string, in borrower.Flags) (*borrower.Borrower, error)
}

type RepaymentService interface {
	Filter(ctx context.Context, f repayment.Filter) (*paging.Page[repayment.Repayment], error)
	Get(ctx context.Context, id string) (*repayment.Repayment, error)
	Record(ctx context.Context, actor staff.Staff, in repayment.Collection) (*repayment.Repayment, error)
	Waive(ctx context.Context, actor staff.Staff, id string, w repayment.Waiver) (*repayment.Repayment, error)
}

type UploadService interface {
	Enabled() bool
	Upload(ctx context.Context, actor staff.Staff, folder string, r io.Reader) (*upload.Result, error)
}

type ActivityService interface {
	List(ctx context.Context, f activity.Filter) (*paging.Page[activity.Entry], error)
}

type Services struct {
	Auth         AuthService
	Applications ApplicationService
	Wizard       WizardService
	Borrowers    BorrowerService
	Repayments   RepaymentService
	Uploads      UploadService
	Activity     ActivityService
}

type Server struct {
	echo   *echo.Echo
	config *config.Config
	redis  *redis.Client

	auth         AuthService
	applications ApplicationService
	wizard       WizardService
	borrowers    BorrowerService
	repayments   RepaymentService
	uploads      UploadService
	activity     ActivityService

	templates    *template.Template
	sessionStore *sessions.CookieStore
	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, svc Services, rdb *redis.Client, healthChecks []HealthCheck) (*Server, error) {
	templates, err := template.New("").Funcs(templateFuncs()).ParseFS(web.TemplateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	srv := &Server{
		echo:         e,
		config:       cfg,
		redis:        rdb,
		auth:         svc.Auth,
		applications: svc.Applications,
		wizard:       svc.Wizard,
		borrowers:    svc.Borrowers,
		repayments:   svc.Repayments,
		uploads:      svc.Uploads,
		activity:     svc.Activity,
		templates:    templates,
		sessionStore: setupSessionStore(cfg),
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}
	e.HTTPErrorHandler = srv.handleError

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.echo.ServeHTTP(w, r) }

func (s *Server) Start() error {
	logrus.WithField("port", s.config.AppPort).Info("starting server")
	if err := s.echo.Start(":" + s.config.AppPort); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// page is what every template receives.
type page struct {
	Title  string
	Nav    string
	Staff  *staff.Staff
	CSRF   string
	Toasts []Toast
	Data   any
}

func (s *Server) render(c echo.Context, name, title, nav string, data any) error {
	return s.renderStatus(c, http.StatusOK, name, title, nav, data)
}

func (s *Server) renderStatus(c echo.Context, code int, name, title, nav string, data any) error {
	p := page{
		Title:  title,
		Nav:    nav,
		Staff:  currentStaff(c),
		Toasts: s.popToasts(c),
		Data:   data,
	}
	p.CSRF, _ = c.Get("csrf").(string)

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, p); err != nil {
		logging.FromContext(c.Request().Context()).WithError(err).WithField("template", name).Error("template execution failed")
		if err := c.String(http.StatusInternalServerError, "Failed to render page"); err != nil {
			return fmt.Errorf("failed to send error response: %w", err)
		}
		return nil
	}
	if err := c.HTMLBlob(code, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to send HTML response: %w", err)
	}
	return nil
}

// renderError shows the error page for a failed page load. Backend and
// internal failures get a generic message.
func (s *Server) renderError(c echo.Context, appErr *apperror.Error) error {
	code := appErr.HTTPStatus()
	msg := appErr.Message
	switch appErr.Type {
	case apperror.TypeExternal, apperror.TypeUnavailable:
		msg = "The loan platform is not responding right now. Please try again shortly."
	case apperror.TypeInternal:
		msg = "Something went wrong while loading this page."
	}
	return s.renderStatus(c, code, "error.html", http.StatusText(code), "", map[string]any{
		"Code":    code,
		"Message": msg,
	})
}
