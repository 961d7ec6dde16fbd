package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldownsDisabledWithoutRedis(t *testing.T) {
	userID := uuid.New()

	allowed, err := CheckAndSetRateLimit(context.Background(), nil, userID, "review", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, allowed, "no redis means no cooldowns")

	ttl, err := GetRateLimitTTL(context.Background(), nil, userID, "review")
	require.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestCooldownKeyIsPerUserAndAction(t *testing.T) {
	userID := uuid.New()

	reviewKey := cooldownKey(userID, "review")
	writeKey := cooldownKey(userID, "write")
	otherUser := cooldownKey(uuid.New(), "review")

	assert.NotEqual(t, reviewKey, writeKey)
	assert.NotEqual(t, reviewKey, otherUser)
	assert.Contains(t, reviewKey, userID.String())
}
