// Package activity records and lists what staff did in the dashboard.
package activity

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	domain "loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/paging"
	"loan-admin-dashboard/internal/domain/staff"
	"loan-admin-dashboard/internal/logging"
	"loan-admin-dashboard/internal/metrics"
	"loan-admin-dashboard/pkg/id"
)

// Recorder is what the other usecases need from this package.
type Recorder interface {
	Record(ctx context.Context, actor staff.Staff, action domain.Action, entity domain.EntityType, entityID, details string)
}

type Usecase struct {
	repo domain.Repository
}

func NewUsecase(repo domain.Repository) *Usecase {
	return &Usecase{repo: repo}
}

var _ Recorder = (*Usecase)(nil)

// Record never fails the caller: a write error is logged and counted.
func (u *Usecase) Record(ctx context.Context, actor staff.Staff, action domain.Action, entity domain.EntityType, entityID, details string) {
	e := &domain.Entry{
		ActivityID: id.NewID32(),
		StaffID:    actor.ID,
		StaffEmail: actor.Email,
		Action:     action,
		EntityType: entity,
		EntityID:   entityID,
		Details:    truncate(details, 2000),
	}
	if err := u.repo.Create(ctx, e); err != nil {
		metrics.ActivityWriteFailures.Inc()
		logging.FromContext(ctx).WithError(err).WithFields(logrus.Fields{
			"staff_id":  actor.ID,
			"action":    action,
			"entity":    entity,
			"entity_id": entityID,
		}).Error("activity write failed")
	}
}

func (u *Usecase) List(ctx context.Context, f domain.Filter) (*paging.Page[domain.Entry], error) {
	f.Page, f.Limit = paging.Normalize(f.Page, f.Limit)
	f.EntityID = strings.TrimSpace(f.EntityID)
	if !validEntityType(f.EntityType) {
		f.EntityType = ""
	}
	return u.repo.List(ctx, f)
}

func validEntityType(t domain.EntityType) bool {
	for _, v := range domain.EntityTypes {
		if v == t {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
