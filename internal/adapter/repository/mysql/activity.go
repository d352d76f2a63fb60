package mysql

import (
	"context"

	"gorm.io/gorm"

	activityDomain "loan-admin-dashboard/internal/domain/activity"
	"loan-admin-dashboard/internal/domain/paging"
)

type ActivityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) *ActivityRepository { return &ActivityRepository{db: db} }

var _ activityDomain.Repository = (*ActivityRepository)(nil)

func (r *ActivityRepository) Create(ctx context.Context, e *activityDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// List returns newest first.
func (r *ActivityRepository) List(ctx context.Context, f activityDomain.Filter) (*paging.Page[activityDomain.Entry], error) {
	page, limit := paging.Normalize(f.Page, f.Limit)

	q := r.db.WithContext(ctx).Model(&activityDomain.Entry{})
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.StaffID != "" {
		q = q.Where("staff_id = ?", f.StaffID)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var out []activityDomain.Entry
	res := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &paging.Page[activityDomain.Entry]{Items: out, Page: page, Limit: limit, Total: int(total)}, nil
}
