package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"loan-admin-dashboard/internal/apperror"
	"loan-admin-dashboard/internal/domain/borrower"
	domainWizard "loan-admin-dashboard/internal/domain/wizard"
	"loan-admin-dashboard/internal/logging"
	"loan-admin-dashboard/internal/usecase/wizard"
)

const (
	wizardPath        = "/applications/wizard"
	wizardSearchLimit = 8
)

func (s *Server) registerWizardRoutes(g *echo.Group, idempotent echo.MiddlewareFunc) {
	g.GET(wizardPath, s.handleWizard)
	g.POST(wizardPath, s.handleWizardStep, idempotent)
	g.POST(wizardPath+"/reset", s.handleWizardReset)
}

func (s *Server) handleWizard(c echo.Context) error {
	ctx := c.Request().Context()
	st := currentStaff(c)

	draft, err := s.wizard.Load(ctx, st.ID)
	if err != nil {
		return err
	}

	search := strings.TrimSpace(c.QueryParam("q"))
	var matches []borrower.Borrower
	if draft.Step == domainWizard.StepBorrower && search != "" {
		res, err := s.borrowers.List(ctx, borrower.ListFilter{Search: search, Limit: wizardSearchLimit})
		if err != nil {
			logging.FromContext(ctx).WithError(err).Warn("borrower search failed")
			s.addToast(c, toastError, "Borrower search is unavailable right now")
		} else {
			matches = res.Items
		}
	}

	return s.render(c, "wizard.html", "New application", "applications", map[string]any{
		"Draft":   draft,
		"Steps":   domainWizard.Steps,
		"Search":  search,
		"Matches": matches,
	})
}

func (s *Server) handleWizardStep(c echo.Context) error {
	setBack(c, wizardPath)
	ctx := c.Request().Context()
	actor := *currentStaff(c)

	var in wizard.StepInput
	if err := c.Bind(&in); err != nil {
		return apperror.Validation("malformed form submission")
	}

	switch c.FormValue("action") {
	case "back":
		if _, err := s.wizard.Back(ctx, actor, in); err != nil {
			return err
		}
	case "next":
		if _, err := s.wizard.Next(ctx, actor, in); err != nil {
			return err
		}
	case "submit":
		app, _, err := s.wizard.Submit(ctx, actor, in)
		if err != nil {
			return err
		}
		s.addToast(c, toastSuccess, "Application "+app.DisplayID+" created")
		return c.Redirect(http.StatusSeeOther, "/applications/"+app.ID)
	default:
		return apperror.Validation("unknown wizard action")
	}
	return c.Redirect(http.StatusSeeOther, wizardPath)
}

func (s *Server) handleWizardReset(c echo.Context) error {
	setBack(c, wizardPath)
	if err := s.wizard.Reset(c.Request().Context(), staffID(c)); err != nil {
		return err
	}
	s.addToast(c, toastSuccess, "Draft discarded")
	return c.Redirect(http.StatusSeeOther, wizardPath)
}
