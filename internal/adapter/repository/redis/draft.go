package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"loan-admin-dashboard/internal/domain/wizard"
)

type DraftRepository struct{ rdb *goredis.Client }

func NewDraftRepository(rdb *goredis.Client) *DraftRepository {
	return &DraftRepository{rdb: rdb}
}

var _ wizard.DraftRepository = (*DraftRepository)(nil)

func draftKey(staffID string) string { return "dash:wizard:" + staffID }

func (r *DraftRepository) Get(ctx context.Context, staffID string) (*wizard.Draft, error) {
	raw, err := r.rdb.Get(ctx, draftKey(staffID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, wizard.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	var d wizard.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

func (r *DraftRepository) Save(ctx context.Context, d *wizard.Draft, ttl time.Duration) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	return r.rdb.Set(ctx, draftKey(d.StaffID), payload, ttl).Err()
}

func (r *DraftRepository) Delete(ctx context.Context, staffID string) error {
	return r.rdb.Del(ctx, draftKey(staffID)).Err()
}
