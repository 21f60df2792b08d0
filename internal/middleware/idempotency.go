package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyCacheKey = "idempotency_cache_key"
	IdempotencyLockKey  = "idempotency_lock_key"
	idempotencyLockTTL  = 30 * time.Second
)

// Idempotency replays the stored response for a repeated Idempotency-Key and
// rejects a concurrent duplicate while the first request is still running.
// Handlers store their result with StoreIdempotentResponse.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id_validated")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached json.RawMessage = []byte(val)
			response.Success(c, http.StatusOK, cached, nil)
			c.Abort()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			// redis unavailable: serve without the guarantee
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, apperror.CodeConflict, "A request with this Idempotency-Key is still being processed", nil)
			c.Abort()
			return
		}

		c.Set(IdempotencyCacheKey, cacheKey)
		c.Set(IdempotencyLockKey, lockKey)

		c.Next()

		rdb.Del(ctx, lockKey)
	}
}

// StoreIdempotentResponse caches data for replay when the request carried an
// Idempotency-Key. It is a no-op otherwise.
func StoreIdempotentResponse(c *gin.Context, rdb *redis.Client, data any, ttl time.Duration) {
	if rdb == nil {
		return
	}
	cacheKey := c.GetString(IdempotencyCacheKey)
	if cacheKey == "" {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	_ = rdb.Set(c.Request.Context(), cacheKey, payload, ttl).Err()
}
