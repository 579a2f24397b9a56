package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/dto"
)

const (
	// IdempotencyKeyHeader names the header clients use to make retries safe
	IdempotencyKeyHeader = "Idempotency-Key"

	inProgressMarker   = "__in_progress__"
	idempotencyTimeout = 2 * time.Second
	defaultInFlightTTL = 30 * time.Second
)

type storedResponse struct {
	Status      int    `json:"status"`
	Body        string `json:"body"`
	ContentType string `json:"contentType"`
	RequestHash string `json:"requestHash"`
}

// IdempotencyOptions tunes the Idempotency middleware
type IdempotencyOptions struct {
	// TTL bounds how long a finished response is replayed
	TTL time.Duration
	// InFlightTTL bounds the in-progress marker, so a crashed request
	// frees its key quickly. Defaults to 30s.
	InFlightTTL time.Duration
	KeyPrefix   string
}

// bodyRecorder tees the response body so it can be replayed later
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Requests without the header pass through untouched. Only final outcomes
// are stored; a 5xx response or a panic releases the key so the client can retry.
func Idempotency(cache redis.Cmdable, opts IdempotencyOptions, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortWith(c, http.StatusBadRequest, domainerr.ErrInvalidRequest, "Unable to read request body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		requestHash := hashRequest(c.Request.URL.Path, body)

		cacheKey := opts.KeyPrefix + c.Request.URL.Path + ":" + key

		inFlightTTL := opts.InFlightTTL
		if inFlightTTL <= 0 {
			inFlightTTL = defaultInFlightTTL
		}

		ctx, cancel := idempotencyContext(c)
		defer cancel()

		reserved, err := cache.SetNX(ctx, cacheKey, inProgressMarker, inFlightTTL).Result()
		if err != nil {
			logger.Error("Idempotency reservation failed", map[string]any{
				"idempotency_key": key,
				"error":           err.Error(),
			})
			abortWith(c, http.StatusServiceUnavailable, domainerr.ErrStoreUnavailable, "Idempotency store unavailable")
			return
		}

		if !reserved {
			replay(ctx, c, cache, cacheKey, key, requestHash, logger)
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		finished := false
		defer func() {
			if !finished {
				// A panic is unwinding to the recovery middleware
				release(cache, c, cacheKey, key, logger)
			}
		}()

		c.Next()
		finished = true

		status := recorder.Status()
		if status >= http.StatusInternalServerError {
			release(cache, c, cacheKey, key, logger)
			return
		}

		// The handler may have outlived the reservation context
		ctx, cancel = idempotencyContext(c)
		defer cancel()

		payload, err := json.Marshal(storedResponse{
			Status:      status,
			Body:        recorder.body.String(),
			ContentType: recorder.Header().Get("Content-Type"),
			RequestHash: requestHash,
		})
		if err == nil {
			err = cache.Set(ctx, cacheKey, payload, opts.TTL).Err()
		}
		if err != nil {
			// The operation already committed; a retry will see 409 until the marker expires
			logger.Error("Failed to persist idempotent response", map[string]any{
				"idempotency_key": key,
				"error":           err.Error(),
			})
		}
	}
}

func idempotencyContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(c.Request.Context()), idempotencyTimeout)
}

// release frees the key so the client can retry
func release(cache redis.Cmdable, c *gin.Context, cacheKey, key string, logger coreport.Logger) {
	ctx, cancel := idempotencyContext(c)
	defer cancel()

	if err := cache.Del(ctx, cacheKey).Err(); err != nil {
		logger.Warn("Failed to release idempotency key", map[string]any{
			"idempotency_key": key,
			"error":           err.Error(),
		})
	}
}

func replay(ctx context.Context, c *gin.Context, cache redis.Cmdable, cacheKey, key, requestHash string, logger coreport.Logger) {
	cached, err := cache.Get(ctx, cacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired between SETNX and GET; treat as still in flight
			abortWith(c, http.StatusConflict, domainerr.ErrDuplicateRequest, "Duplicate request currently processing")
			return
		}
		logger.Error("Idempotency lookup failed", map[string]any{
			"idempotency_key": key,
			"error":           err.Error(),
		})
		abortWith(c, http.StatusServiceUnavailable, domainerr.ErrStoreUnavailable, "Idempotency store unavailable")
		return
	}

	if cached == inProgressMarker {
		abortWith(c, http.StatusConflict, domainerr.ErrDuplicateRequest, "Duplicate request currently processing")
		return
	}

	var stored storedResponse
	if err := json.Unmarshal([]byte(cached), &stored); err != nil {
		logger.Warn("Failed to decode stored idempotent response", map[string]any{
			"idempotency_key": key,
			"error":           err.Error(),
		})
		abortWith(c, http.StatusConflict, domainerr.ErrDuplicateRequest, "Duplicate request")
		return
	}

	if stored.RequestHash != requestHash {
		abortWith(c, http.StatusUnprocessableEntity, domainerr.ErrInvalidRequest, "Idempotency-Key was reused with a different request")
		return
	}

	logger.Debug("Replaying idempotent response", map[string]any{
		"idempotency_key": key,
		"status":          stored.Status,
	})

	c.Header("Idempotent-Replayed", "true")
	c.Data(stored.Status, stored.ContentType, []byte(stored.Body))
	c.Abort()
}

func hashRequest(path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func abortWith(c *gin.Context, status int, err error, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
