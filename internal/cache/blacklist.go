package cache

import (
	"context"
	"fmt"
	"time"
)

const blacklistKeyPrefix = "blacklist:jti:%s"

// BlacklistToken records a refresh token's jti as revoked until the token
// would have expired anyway. Used by logout.
func BlacklistToken(ctx context.Context, jti string, until time.Time) error {
	if client == nil {
		return fmt.Errorf("token blacklist unavailable: redis not connected")
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	return client.Set(ctx, fmt.Sprintf(blacklistKeyPrefix, jti), "1", ttl).Err()
}

// IsTokenBlacklisted reports whether the given jti has been revoked.
// Without Redis the blacklist fails open: tokens then expire naturally.
func IsTokenBlacklisted(ctx context.Context, jti string) bool {
	if client == nil {
		return false
	}
	n, err := client.Exists(ctx, fmt.Sprintf(blacklistKeyPrefix, jti)).Result()
	if err != nil {
		return false
	}
	return n > 0
}
