package middleware

import (
	"log"
	"net/http"
	"time"

	"anoa.com/bookloop/internal/service"
	"anoa.com/bookloop/pkg/apperror"
	"anoa.com/bookloop/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// WriteRateLimit throttles mutating requests per authenticated user with a
// short redis cooldown. Reads pass through, and so does everything when
// redis is down; the endpoint-specific cooldowns still apply on top.
func WriteRateLimit(rdb *redis.Client, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		userID, err := response.GetUserID(c)
		if err != nil {
			c.Next()
			return
		}

		allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), rdb, userID, "write", window)
		if err != nil {
			log.Printf("[RateLimit] redis check failed for user %s: %v", userID, err)
			c.Next()
			return
		}
		if !allowed {
			response.ResponseError(c, apperror.ErrRateLimitExceeded)
			c.Abort()
			return
		}

		c.Next()
	}
}
