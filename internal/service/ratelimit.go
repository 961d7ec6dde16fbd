package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Write actions that feed the points ledger are cooled down per user so
// nobody farms points by hammering an endpoint. A nil redis client turns
// the cooldowns off, matching the degraded mode main.go logs about.

func cooldownKey(userID uuid.UUID, action string) string {
	return fmt.Sprintf("cooldown:user:%s:%s", userID.String(), action)
}

// CheckAndSetRateLimit acquires the cooldown slot for (user, action).
// It returns false when a previous acquisition is still within limit.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string, limit time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	wasSet, err := rdb.SetNX(ctx, cooldownKey(userID, action), "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// GetRateLimitTTL reports how long the (user, action) cooldown has left,
// for retry-after hints in rate-limited responses.
func GetRateLimitTTL(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	return rdb.TTL(ctx, cooldownKey(userID, action)).Result()
}
