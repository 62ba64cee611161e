package ports

import (
	"context"
	"time"
)

// TokenStore is a denylist of revoked token IDs (jti claims). Entries only
// need to live until the token's natural expiry, so Revoke takes the
// remaining validity as a TTL.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
