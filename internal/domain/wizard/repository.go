package wizard

import (
	"context"
	"time"
)

type DraftRepository interface {
	Get(ctx context.Context, staffID string) (*Draft, error)
	Save(ctx context.Context, d *Draft, ttl time.Duration) error
	Delete(ctx context.Context, staffID string) error
}
