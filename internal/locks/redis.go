package locks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/slide-lab/pkg/lifecycle"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var _ Locker = (*Redis)(nil)

// Redis is a Locker shared across server instances.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	retry  time.Duration
	logger *slog.Logger
}

// NewRedis connects to url. Keys are written as prefix+key and expire after
// ttl so a crashed holder cannot block a presentation forever.
func NewRedis(url, prefix string, ttl, retry time.Duration, logger *slog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Redis{
		client: redis.NewClient(opts),
		prefix: prefix,
		ttl:    ttl,
		retry:  retry,
		logger: logger.With("system", "locks", "backend", "redis"),
	}, nil
}

// Start verifies connectivity and closes the client on shutdown.
func (r *Redis) Start(lc *lifecycle.Coordinator) error {
	ctx, cancel := context.WithTimeout(lc.Context(), 5*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	r.logger.Info("redis lock backend connected")

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := r.client.Close(); err != nil {
			r.logger.Error("redis close failed", "error", err)
			return
		}
		r.logger.Info("redis lock backend closed")
	})
	return nil
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	k := r.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, k, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, key, ctx.Err())
			}
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, key, ctx.Err())
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			rctx, cancel := context.WithTimeout(context.Background(), r.retry+time.Second)
			defer cancel()

			err := releaseScript.Run(rctx, r.client, []string{k}, token).Err()
			if err != nil && !errors.Is(err, redis.Nil) {
				r.logger.Warn("lock release failed", "key", key, "error", err)
			}
		})
	}, nil
}
