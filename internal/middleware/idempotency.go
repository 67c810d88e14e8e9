package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyHeader    = "Idempotency-Key"
	idempotencyHitHeader = "X-Idempotency-Hit"
	idempotencyLockTTL   = 30 * time.Second
	processingMarker     = "PROCESSING"
)

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a state-changing request that
// carries an Idempotency-Key already seen for the same route. Only successful
// responses are kept, so a failed attempt can be retried with the same key.
// A nil client disables the middleware, and Redis errors let the request
// through unprotected.
func Idempotency(redisClient *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch && method != http.MethodDelete {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		idemKey := "idempotency:" + method + ":" + c.Request.URL.Path + ":" + key
		ctx := c.Request.Context()

		val, err := redisClient.Get(ctx, idemKey).Result()
		switch {
		case err == nil && val == processingMarker:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":   "concurrent request",
				"message": "a request with this idempotency key is still in progress",
			})
			return
		case err == nil:
			var stored storedResponse
			if jsonErr := json.Unmarshal([]byte(val), &stored); jsonErr == nil {
				c.Header(idempotencyHitHeader, "true")
				c.Data(stored.Status, stored.ContentType, stored.Body)
				c.Abort()
				return
			}
		case !errors.Is(err, redis.Nil):
			slog.WarnContext(ctx, "idempotency lookup failed", slog.String("error", err.Error()))
			c.Next()
			return
		}

		acquired, err := redisClient.SetNX(ctx, idemKey, processingMarker, idempotencyLockTTL).Result()
		if err != nil {
			slog.WarnContext(ctx, "idempotency lock failed", slog.String("error", err.Error()))
			c.Next()
			return
		}
		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":   "concurrent request",
				"message": "a request with this idempotency key is still in progress",
			})
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		status := recorder.Status()
		if status < 200 || status >= 300 {
			redisClient.Del(ctx, idemKey)
			return
		}

		payload, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		})
		if err != nil {
			redisClient.Del(ctx, idemKey)
			return
		}
		if err := redisClient.Set(ctx, idemKey, payload, ttl).Err(); err != nil {
			slog.WarnContext(ctx, "idempotency store failed", slog.String("error", err.Error()))
		}
	}
}
