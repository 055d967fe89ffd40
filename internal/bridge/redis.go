// Package bridge forwards external notifications to a Redis pub/sub channel.
//
// Each notification is published as its canonical JSON envelope. Publishes
// retry with exponential backoff; a notification that still fails is logged
// and dropped.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/roach88/msgcore/internal/logging"
	"github.com/roach88/msgcore/internal/notification"
	"github.com/roach88/msgcore/internal/pubsub"
)

// DefaultChannel is the default pub/sub channel name.
const DefaultChannel = "msgcore:notifications"

// DefaultTimeout is the default per-publish timeout.
const DefaultTimeout = 5 * time.Second

// DefaultRetries is the default number of retry attempts.
const DefaultRetries = 3

// Config configures the Redis bridge.
type Config struct {
	// URL is the Redis connection URL (required).
	// Format: redis://[:password@]host:port[/db]
	URL string
	// Channel is the pub/sub channel name (default: msgcore:notifications).
	Channel string
	// Timeout is the per-publish timeout (default 5s).
	Timeout time.Duration
	// Retries is the number of retry attempts on failure (default 3).
	Retries int
	// BaseBackoff is the delay before the first retry, doubled on each
	// further retry (default 500ms).
	BaseBackoff time.Duration
}

// Redis forwards notifications from a bus to Redis.
type Redis struct {
	config Config
	client *goredis.Client
	log    *zap.Logger
	sub    *pubsub.Subscription[notification.Notification]

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a bridge from the given config.
// Returns an error if the URL is empty or invalid.
func New(cfg Config, log *zap.Logger) (*Redis, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis bridge requires a URL")
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis bridge: invalid URL: %w", err)
	}

	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("retries must be >= 0, got %d", cfg.Retries)
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 500 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Redis{
		config: cfg,
		client: goredis.NewClient(opts),
		log:    logging.OrNop(log).With(zap.String("channel", cfg.Channel)),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Attach subscribes the bridge to bus. Notifications are forwarded in
// publication order.
func (r *Redis) Attach(bus *pubsub.Bus[notification.Notification]) {
	r.sub = bus.Subscribe(func(n notification.Notification) {
		if err := r.Forward(r.ctx, n); err != nil {
			r.log.Warn("notification not forwarded", zap.String("name", string(n.Name())), zap.Error(err))
		}
	})
}

// Forward publishes one notification envelope.
// Retries with exponential backoff on failures.
func (r *Redis) Forward(ctx context.Context, n notification.Notification) error {
	body, err := notification.Encode(n)
	if err != nil {
		return fmt.Errorf("redis: encode notification: %w", err)
	}

	var lastErr error
	// attempts = 1 initial + retries
	attempts := 1 + r.config.Retries

	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("redis: context canceled: %w", err)
		}

		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * r.config.BaseBackoff
			select {
			case <-ctx.Done():
				return fmt.Errorf("redis: context canceled during backoff: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}

		publishCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
		lastErr = r.client.Publish(publishCtx, r.config.Channel, body).Err()
		cancel()

		if lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("redis: failed after %d attempts: %w", attempts, lastErr)
}

// Close detaches from the bus, waits for queued notifications and releases
// the client.
func (r *Redis) Close() error {
	if r.sub != nil {
		r.sub.Close()
		<-r.sub.Done()
	}
	r.cancel()
	return r.client.Close()
}
