package staff

import (
	"context"
	"time"
)

type SessionRepository interface {
	Create(ctx context.Context, s *Session, ttl time.Duration) error
	// Get refreshes the TTL on every hit.
	Get(ctx context.Context, id string, ttl time.Duration) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type Authenticator interface {
	Login(ctx context.Context, c Credentials) (*LoginResult, error)
	// Logout revokes the token carried by ctx.
	Logout(ctx context.Context) error
}
