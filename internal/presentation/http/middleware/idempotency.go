package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/entity"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/repository"
	"github.com/togay-aytemiz/lumiso-sub014/internal/observability/logger"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/dto/response"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/apperror"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from a stored key
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a write that was already
// processed under the same Idempotency-Key. Keys are scoped to the tenant and
// the user; reusing a key for a different endpoint or body is rejected with
// 422. Only successful responses are stored.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}
		if len(idempotencyKey) > 255 {
			response.BadRequest(c, "Idempotency-Key must be at most 255 characters")
			c.Abort()
			return
		}

		userIDValue, exists := c.Get("user_id")
		if !exists {
			c.Next()
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Unable to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		endpoint := c.Request.Method + " " + c.FullPath()
		hash := requestHash(body)

		existing, err := config.Repo.GetByKey(ctx, idempotencyKey, userID)
		if err != nil {
			log.Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		if existing != nil {
			if !existing.IsExpired() {
				if existing.Endpoint != endpoint || !existing.MatchesRequest(hash) {
					response.Error(c, apperror.NewAppError(http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request"))
					c.Abort()
					return
				}
				c.Header(IdempotencyReplayedHeader, "true")
				c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
				c.Abort()
				return
			}
			if err := config.Repo.DeleteExpired(ctx); err != nil {
				log.Warn("idempotency cleanup failed", zap.Error(err))
			}
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			TenantID:     GetTenantID(c),
			UserID:       userID,
			Endpoint:     endpoint,
			RequestHash:  hash,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    time.Now().Add(ttl),
		}
		if err := config.Repo.Create(ctx, ikey); err != nil {
			log.Warn("idempotency key not stored", zap.String("key", idempotencyKey), zap.Error(err))
		}
	}
}

func requestHash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
