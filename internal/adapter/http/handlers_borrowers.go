package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"loan-admin-dashboard/internal/apperror"
	"loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/borrower"
)

func (s *Server) registerBorrowerRoutes(g *echo.Group) {
	g.GET("/borrowers", s.handleBorrowers)
	g.GET("/borrowers/:id", s.handleBorrower)
	g.POST("/borrowers/:id/profile", s.handleBorrowerProfile)
	g.POST("/borrowers/:id/kyc/:docId", s.handleKYCReview)
	g.POST("/borrowers/:id/documents", s.handleAttachDocument)
	g.POST("/borrowers/:id/flags", s.handleBorrowerFlags)
}

func (s *Server) handleBorrowers(c echo.Context) error {
	q, err := bindListQuery(c)
	if err != nil {
		return err
	}
	f := borrower.ListFilter{Page: q.Page, Limit: q.Limit, Search: q.Search}
	if f.Active, err = optionalBool(c, "active"); err != nil {
		return err
	}
	if f.Blacklisted, err = optionalBool(c, "blacklisted"); err != nil {
		return err
	}
	if f.KYCVerified, err = optionalBool(c, "kyc"); err != nil {
		return err
	}

	res, err := s.borrowers.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return s.render(c, "borrowers.html", "Borrowers", "borrowers", map[string]any{
		"Page":        res,
		"Query":       c.QueryParams(),
		"Search":      q.Search,
		"Active":      c.QueryParam("active"),
		"Blacklisted": c.QueryParam("blacklisted"),
		"KYC":         c.QueryParam("kyc"),
	})
}

// optionalBool reads a tri-state filter: absent or empty means "any".
func optionalBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.Invalid(apperror.FieldError{Field: name, Message: "must be true or false"})
	}
	return &v, nil
}

func (s *Server) handleBorrower(c echo.Context) error {
	b, err := s.borrowers.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return s.render(c, "borrower.html", b.Name, "borrowers", map[string]any{
		"Borrower": b,
		"History":  s.history(c, activity.EntityBorrower, b.ID),
		"Uploads":  s.uploads.Enabled(),
	})
}

func (s *Server) handleBorrowerProfile(c echo.Context) error {
	id := c.Param("id")
	setBack(c, "/borrowers/"+id)

	var f profileForm
	if err := bindAndValidate(c, &f); err != nil {
		return err
	}
	if _, err := s.borrowers.UpdateProfile(c.Request().Context(), *currentStaff(c), id, f.toUpdate()); err != nil {
		return err
	}
	s.addToast(c, toastSuccess, "Profile updated")
	return c.Redirect(http.StatusSeeOther, "/borrowers/"+id)
}

func (s *Server) handleKYCReview(c echo.Context) error {
	id := c.Param("id")
	setBack(c, "/borrowers/"+id)

	var f kycReviewForm
	if err := bindAndValidate(c, &f); err != nil {
		return err
	}
	review := borrower.DocumentReview{Status: borrower.DocStatus(f.Status), Reason: f.Reason}
	if _, err := s.borrowers.ReviewDocument(c.Request().Context(), *currentStaff(c), id, c.Param("docId"), review); err != nil {
		return err
	}
	if review.Status == borrower.DocVerified {
		s.addToast(c, toastSuccess, "Document verified")
	} else {
		s.addToast(c, toastSuccess, "Document rejected")
	}
	return c.Redirect(http.StatusSeeOther, "/borrowers/"+id)
}

func (s *Server) handleAttachDocument(c echo.Context) error {
	id := c.Param("id")
	setBack(c, "/borrowers/"+id)

	var f attachForm
	if err := bindAndValidate(c, &f); err != nil {
		return err
	}
	doc := borrower.NewDocument{Type: borrower.DocType(f.Type), URL: f.URL}
	if _, err := s.borrowers.AttachDocument(c.Request().Context(), *currentStaff(c), id, doc); err != nil {
		return err
	}
	s.addToast(c, toastSuccess, "Document attached and waiting for review")
	return c.Redirect(http.StatusSeeOther, "/borrowers/"+id)
}

func (s *Server) handleBorrowerFlags(c echo.Context) error {
	id := c.Param("id")
	setBack(c, "/borrowers/"+id)

	var f flagsForm
	if err := c.Bind(&f); err != nil {
		return apperror.Validation("malformed form submission")
	}
	flags := borrower.Flags{Active: f.Active, Blacklisted: f.Blacklisted}
	if _, err := s.borrowers.UpdateFlags(c.Request().Context(), *currentStaff(c), id, flags); err != nil {
		return err
	}
	s.addToast(c, toastSuccess, "Borrower flags updated")
	return c.Redirect(http.StatusSeeOther, "/borrowers/"+id)
}
