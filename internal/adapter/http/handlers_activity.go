package http

import (
	"strings"

	"github.com/labstack/echo/v4"

	"loan-admin-dashboard/internal/domain/activity"
)

func (s *Server) handleActivity(c echo.Context) error {
	q, err := bindListQuery(c)
	if err != nil {
		return err
	}
	f := activity.Filter{
		EntityType: activity.EntityType(strings.TrimSpace(c.QueryParam("entity"))),
		EntityID:   strings.TrimSpace(c.QueryParam("entity_id")),
		StaffID:    strings.TrimSpace(c.QueryParam("staff")),
		Page:       q.Page,
		Limit:      q.Limit,
	}

	res, err := s.activity.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return s.render(c, "activity.html", "Activity", "activity", map[string]any{
		"Page":     res,
		"Query":    c.QueryParams(),
		"Filter":   f,
		"Entities": activity.EntityTypes,
	})
}
