package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

const HeaderRequestID = "X-Request-ID"

type correlationKey struct{}

var reCorrelationID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// NewCorrelationID returns 16 hex chars.
func NewCorrelationID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ValidCorrelationID guards against log injection through the inbound header.
func ValidCorrelationID(id string) bool { return reCorrelationID.MatchString(id) }

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationKey{}).(string)
	return id, ok && id != ""
}
