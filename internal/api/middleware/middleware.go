package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-infusion/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-infusion/internal/api/shared/errors"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/ratelimit"
)

const REQUEST_ID_KEY contextKey = "request_id"

// RequestID assigns every request an id, echoes it in the response and tags the
// request's sentry scope with it
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.REQUEST_ID_HEADER)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(string(REQUEST_ID_KEY), requestID)
		c.Header(constants.REQUEST_ID_HEADER, requestID)

		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetTag("request_id", requestID)
		c.Request = c.Request.WithContext(sentry.SetHubOnContext(c.Request.Context(), hub))

		c.Next()
	}
}

// Logger returns a gin middleware for structured logging using zap
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		duration := time.Since(start)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", c.GetString(string(REQUEST_ID_KEY))),
		}
		if caller, ok := Caller(c); ok {
			fields = append(fields, zap.String("caller", caller.Hex()))
		}
		logger.InfoCtx(c.Request.Context(), "API request", fields...)
	}
}

// Recovery returns a gin middleware for panic recovery with logging
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorCtx(c.Request.Context(), fmt.Errorf("panic recovered: %v", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierrors.NewInternalError("Internal server error"))
			}
		}()
		c.Next()
	}
}

// RateLimit returns a gin middleware that limits requests per client.
// Authenticated requests are keyed by caller, anonymous ones by client IP.
// A limiter failure lets the request through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if caller, ok := Caller(c); ok {
			key = "caller:" + caller.Hex()
		}

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Rate limiter unavailable", zap.Error(err), zap.String("key", key))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter.Round(time.Second) / time.Second)
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.NewRateLimitedError("Too many requests"))
			return
		}

		c.Next()
	}
}
