package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"loan-admin-dashboard/internal/domain/staff"
)

type SessionRepository struct{ rdb *goredis.Client }

func NewSessionRepository(rdb *goredis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

var _ staff.SessionRepository = (*SessionRepository)(nil)

func sessionKey(id string) string { return "dash:session:" + id }

func (r *SessionRepository) Create(ctx context.Context, s *staff.Session, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ok, err := r.rdb.SetNX(ctx, sessionKey(s.ID), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session id collision")
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string, ttl time.Duration) (*staff.Session, error) {
	raw, err := r.rdb.GetEx(ctx, sessionKey(id), ttl).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, staff.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s staff.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sessionKey(id)).Err()
}
