package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/repayment"
)

func (s *Server) registerRepaymentRoutes(g *echo.Group, idempotent echo.MiddlewareFunc) {
	g.GET("/repayments", s.handleRepayments)
	g.GET("/repayments/:id", s.handleRepayment)
	g.POST("/repayments/:id/payments", s.handleRecordPayment, idempotent)
	g.POST("/repayments/:id/waive", s.handleWaiveLateFee, idempotent)
}

func (s *Server) handleRepayments(c echo.Context) error {
	q, err := bindListQuery(c)
	if err != nil {
		return err
	}
	f := repayment.Filter{
		Status:  repayment.Status(strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))),
		LoanID:  strings.TrimSpace(c.QueryParam("loan")),
		Search:  q.Search,
		DueFrom: strings.TrimSpace(c.QueryParam("from")),
		DueTo:   strings.TrimSpace(c.QueryParam("to")),
		Page:    q.Page,
		Limit:   q.Limit,
	}

	res, err := s.repayments.Filter(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return s.render(c, "repayments.html", "Repayments", "repayments", map[string]any{
		"Page":   res,
		"Query":  c.QueryParams(),
		"Filter": f,
	})
}

func (s *Server) handleRepayment(c echo.Context) error {
	r, err := s.repayments.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return s.render(c, "repayment.html", "Repayment #"+r.Loan.DisplayID, "repayments", map[string]any{
		"Repayment": r,
		"History":   s.history(c, activity.EntityRepayment, r.ID),
		"Mode":      selectedMode(c.QueryParam("mode")),
	})
}

func (s *Server) handleRecordPayment(c echo.Context) error {
	id := c.Param("id")

	var f paymentForm
	err := bindAndValidate(c, &f)
	// reopen the form on the mode the staff member picked
	setBack(c, paymentBack(id, f.Mode))
	if err != nil {
		return err
	}

	in := f.toCollection(id)
	r, err := s.repayments.Record(c.Request().Context(), *currentStaff(c), in)
	if err != nil {
		return err
	}
	s.addToast(c, toastSuccess, "Payment of "+money(in.Amount)+" recorded, outstanding "+money(r.Outstanding()))
	return c.Redirect(http.StatusSeeOther, "/repayments/"+id)
}

func paymentBack(id, mode string) string {
	for _, m := range repayment.Modes {
		if string(m) == mode {
			return "/repayments/" + id + "?mode=" + url.QueryEscape(mode)
		}
	}
	return "/repayments/" + id
}

// selectedMode picks which mode-specific fields the record form shows.
func selectedMode(raw string) repayment.Mode {
	for _, m := range repayment.Modes {
		if string(m) == strings.ToUpper(raw) {
			return m
		}
	}
	return repayment.ModeUPI
}

func (s *Server) handleWaiveLateFee(c echo.Context) error {
	id := c.Param("id")
	setBack(c, "/repayments/"+id)

	var f waiverForm
	if err := bindAndValidate(c, &f); err != nil {
		return err
	}
	w := f.toWaiver()
	if _, err := s.repayments.Waive(c.Request().Context(), *currentStaff(c), id, w); err != nil {
		return err
	}
	s.addToast(c, toastSuccess, "Late fee of "+money(w.Amount)+" waived")
	return c.Redirect(http.StatusSeeOther, "/repayments/"+id)
}
