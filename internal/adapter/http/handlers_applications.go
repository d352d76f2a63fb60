package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"loan-admin-dashboard/internal/apperror"
	"loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/approval"
	"loan-admin-dashboard/internal/domain/loan"
	"loan-admin-dashboard/internal/logging"
)

const historyLimit = 10

func (s *Server) registerApplicationRoutes(g *echo.Group, idempotent echo.MiddlewareFunc) {
	g.GET("/applications", s.handleApplications)
	g.GET("/applications/:id", s.handleApplication)
	g.POST("/applications/:id/decision", s.handleDecision, idempotent)
	g.POST("/applications/:id/esign", s.handleESignSend, idempotent)
	g.POST("/applications/:id/esign/complete", s.handleESignComplete, idempotent)
	g.POST("/applications/:id/disburse", s.handleDisburse, idempotent)
}

type listQuery struct {
	Page   int
	Limit  int
	Search string
}

// bindListQuery reads the paging and search parameters shared by list pages.
func bindListQuery(c echo.Context) (listQuery, error) {
	var q listQuery
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		String("q", &q.Search).
		BindError()
	if err != nil {
		return q, apperror.Validation("page and limit must be numbers")
	}
	q.Search = strings.TrimSpace(q.Search)
	return q, nil
}

func (s *Server) handleApplications(c echo.Context) error {
	q, err := bindListQuery(c)
	if err != nil {
		return err
	}
	status := loan.Status(strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))))

	res, err := s.applications.List(c.Request().Context(), loan.ListFilter{
		Page:   q.Page,
		Limit:  q.Limit,
		Status: status,
		Search: q.Search,
	})
	if err != nil {
		return err
	}
	return s.render(c, "applications.html", "Applications", "applications", map[string]any{
		"Page":   res,
		"Query":  c.QueryParams(),
		"Search": q.Search,
		"Status": status,
	})
}

func (s *Server) handleApplication(c echo.Context) error {
	ctx := c.Request().Context()
	app, err := s.applications.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	var decisions []loan.Status
	if app.Status.Decidable() {
		for _, next := range app.Status.Next() {
			if next != loan.StatusESignPending {
				decisions = append(decisions, next)
			}
		}
	}

	return s.render(c, "application.html", "Application "+app.DisplayID, "applications", map[string]any{
		"App":              app,
		"Decisions":        decisions,
		"CanSendESign":     app.Status.CanTransitionTo(loan.StatusESignPending),
		"CanCompleteESign": app.Status.CanTransitionTo(loan.StatusReadyForDisbursal),
		"CanDisburse":      app.Status.CanTransitionTo(loan.StatusDisbursed),
		"History":          s.history(c, activity.EntityApplication, app.ID),
		"Uploads":          s.uploads.Enabled(),
	})
}

func (s *Server) handleDecision(c echo.Context) error {
	id := c.Param("id")
	setBack(c, "/applications/"+id)

	var f decisionForm
	if err := bindAndValidate(c, &f); err != nil {
		return err
	}
	app, err := s.applications.Decide(c.Request().Context(), *currentStaff(c), id, f.toDecision())
	if err != nil {
		return err
	}
	s.addToast(c, toastSuccess, "Application "+app.DisplayID+" is now "+app.Status.Label())
	return c.Redirect(http.StatusSeeOther, "/applications/"+id)
}

func (s *Server) handleESignSend(c echo.Context) error {
	id := c.Param("id")
	setBack(c, "/applications/"+id)

	var f esignForm
	if err := bindAndValidate(c, &f); err != nil {
		return err
	}
	req := approval.ESignRequest{Action: loan.ESignSend, DocumentURL: f.DocumentURL}
	app, err := s.applications.ESign(c.Request().Context(), *currentStaff(c), id, req)
	if err != nil {
		return err
	}
	s.addToast(c, toastSuccess, "Agreement for "+app.DisplayID+" sent for e-sign")
	return c.Redirect(http.StatusSeeOther, "/applications/"+id)
}

func (s *Server) handleESignComplete(c echo.Context) error {
	id := c.Param("id")
	setBack(c, "/applications/"+id)

	req := approval.ESignRequest{Action: loan.ESignComplete}
	app, err := s.applications.ESign(c.Request().Context(), *currentStaff(c), id, req)
	if err != nil {
		return err
	}
	s.addToast(c, toastSuccess, app.DisplayID+" is signed and ready for disbursal")
	return c.Redirect(http.StatusSeeOther, "/applications/"+id)
}

func (s *Server) handleDisburse(c echo.Context) error {
	id := c.Param("id")
	setBack(c, "/applications/"+id)

	var f disburseForm
	if err := bindAndValidate(c, &f); err != nil {
		return err
	}
	app, err := s.applications.Disburse(c.Request().Context(), *currentStaff(c), id, f.toRequest())
	if err != nil {
		return err
	}
	s.addToast(c, toastSuccess, "Disbursal recorded for "+app.DisplayID)
	return c.Redirect(http.StatusSeeOther, "/applications/"+id)
}

// history lists recent dashboard actions on one entity. The page still
// renders when the activity store is down.
func (s *Server) history(c echo.Context, entity activity.EntityType, id string) []activity.Entry {
	res, err := s.activity.List(c.Request().Context(), activity.Filter{EntityType: entity, EntityID: id, Limit: historyLimit})
	if err != nil {
		logging.FromContext(c.Request().Context()).WithError(err).Warn("activity history unavailable")
		return nil
	}
	return res.Items
}
