package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-admin-dashboard/internal/apperror"
)

// multipart framing allowance on top of the file size limit
const uploadOverhead = 64 << 10

func (s *Server) registerUploadRoutes(g *echo.Group) {
	g.POST("/uploads", s.handleUpload)
}

// handleUpload stores one file in the document bucket and answers
// {url, key, contentType, size}; the page then puts url into a form field.
func (s *Server) handleUpload(c echo.Context) error {
	if !s.uploads.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, apperror.Unavailable("uploads are not configured").ToResponse())
	}

	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, s.config.UploadMaxBytes+uploadOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return c.JSON(http.StatusBadRequest, apperror.Validation("file is too large").ToResponse())
		}
		return c.JSON(http.StatusBadRequest, apperror.Invalid(apperror.FieldError{Field: "file", Message: "is required"}).ToResponse())
	}
	f, err := fh.Open()
	if err != nil {
		return apperror.Internal("could not read uploaded file", err)
	}
	defer f.Close()

	res, err := s.uploads.Upload(req.Context(), *currentStaff(c), c.FormValue("folder"), f)
	if err != nil {
		appErr := apperror.As(err)
		logError(c, appErr)
		return c.JSON(appErr.HTTPStatus(), appErr.ToResponse())
	}
	return c.JSON(http.StatusOK, res)
}
