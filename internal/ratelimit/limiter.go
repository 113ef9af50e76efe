// Package ratelimit limits API requests per client, in Redis when it is reachable
// and in process memory otherwise.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"

	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/config"
	"github.com/feral-file/ff-infusion/internal/logger"
)

var (
	// ErrClosed is returned by Allow after Close
	ErrClosed = errors.New("rate limiter is closed")
	// ErrUnavailable is returned when Redis is down and local fallback is disabled
	ErrUnavailable = errors.New("rate limiter unavailable")
)

// Decision is the outcome of a rate limit check
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a client may issue another request
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow consumes one request from the bucket of key
	Allow(ctx context.Context, key string) (Decision, error)

	// Close stops the health monitor and closes the Redis connection
	Close() error
}

type limiter struct {
	config         config.RateLimitConfig
	redis          adapter.RedisClient
	distributed    adapter.RedisRateLimiter
	local          *localStore
	clock          adapter.Clock
	redisAvailable atomic.Bool
	closed         atomic.Bool
	closeOnce      sync.Once
	done           chan struct{}
}

// NewLimiter creates a rate limiter. rc may be nil, in which case only the
// local limiter is used and local fallback must be enabled.
func NewLimiter(cfg config.RateLimitConfig, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg, rc != nil); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l := &limiter{
		config: cfg,
		redis:  rc,
		local:  newLocalStore(float64(cfg.RequestsPerSecond), cfg.Burst, 15*time.Minute),
		clock:  clock,
		done:   make(chan struct{}),
	}

	if rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisAvailable := true
		if err := rc.Ping(ctx); err != nil {
			redisAvailable = false
			if !cfg.EnableLocalFallback {
				return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
			}
			logger.Warn("Redis unavailable, will use local fallback", zap.Error(err))
		}

		l.distributed = rc.NewRateLimiter()
		l.redisAvailable.Store(redisAvailable)
	}

	go l.monitor(l.clock.NewTicker(cfg.HealthCheckInterval))

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("distributed", rc != nil),
		zap.Bool("local_fallback", cfg.EnableLocalFallback),
	)

	return l, nil
}

func (l *limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.closed.Load() {
		return Decision{}, ErrClosed
	}

	if l.redisAvailable.Load() {
		decision, err := l.allowDistributed(ctx, key)
		if err == nil {
			return decision, nil
		}
		if ctx.Err() != nil {
			return Decision{}, ctx.Err()
		}

		// Redis error - mark as unavailable until the health monitor sees it again
		l.redisAvailable.Store(false)

		if !l.config.EnableLocalFallback {
			return Decision{}, fmt.Errorf("redis rate limiter unavailable: %w", err)
		}

		logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local", zap.Error(err))
	}

	if !l.config.EnableLocalFallback {
		return Decision{}, ErrUnavailable
	}

	return l.local.allow(key, l.clock.Now()), nil
}

func (l *limiter) allowDistributed(ctx context.Context, key string) (Decision, error) {
	limit := redis_rate.Limit{
		Rate:   l.config.RequestsPerSecond,
		Burst:  l.config.Burst,
		Period: time.Second,
	}

	res, err := l.distributed.Allow(ctx, l.config.KeyPrefix+key, limit)
	if err != nil {
		return Decision{}, err
	}

	decision := Decision{
		Allowed:   res.Allowed > 0,
		Limit:     l.config.Burst,
		Remaining: res.Remaining,
	}
	if !decision.Allowed {
		decision.RetryAfter = res.RetryAfter
		logger.DebugCtx(ctx, "Rate limit exceeded",
			zap.String("key", key),
			zap.Duration("retry_after", res.RetryAfter),
		)
	}
	return decision, nil
}

// monitor periodically pings Redis and evicts idle local buckets
func (l *limiter) monitor(ticker *time.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		}

		l.local.cleanup(l.clock.Now())

		if l.redis == nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx)
		cancel()

		available := err == nil
		wasAvailable := l.redisAvailable.Swap(available)

		if !wasAvailable && available {
			logger.Info("Redis connection restored")
		} else if wasAvailable && !available {
			logger.Warn("Redis connection lost", zap.Error(err))
		}
	}
}

func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)

		if l.redis != nil {
			if closeErr := l.redis.Close(); closeErr != nil {
				logger.Warn("Error closing Redis connection", zap.Error(closeErr))
				err = closeErr
			}
		}
	})
	return err
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *config.RateLimitConfig, distributed bool) error {
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}

	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}

	if !distributed && !cfg.EnableLocalFallback {
		return fmt.Errorf("redis is required when local fallback is disabled")
	}

	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "ff:infusion:api:"
	}

	if cfg.HealthCheckInterval <= 0 {
		cfg.HealthCheckInterval = 10 * time.Second
	}

	return nil
}
