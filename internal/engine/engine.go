package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/msgcore/internal/bridge"
	"github.com/roach88/msgcore/internal/config"
	"github.com/roach88/msgcore/internal/cursor"
	"github.com/roach88/msgcore/internal/events"
	"github.com/roach88/msgcore/internal/identity"
	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/logging"
	"github.com/roach88/msgcore/internal/notification"
	"github.com/roach88/msgcore/internal/outbox"
	"github.com/roach88/msgcore/internal/pubsub"
	"github.com/roach88/msgcore/internal/receipt"
	"github.com/roach88/msgcore/internal/replay"
	"github.com/roach88/msgcore/internal/router"
	"github.com/roach88/msgcore/internal/store"
	"github.com/roach88/msgcore/internal/wake"
)

// ErrReceiptsDisabled is returned when no receipt server is configured.
var ErrReceiptsDisabled = errors.New("engine: return receipts are not configured")

// ErrClosed is returned by operations on a closed engine.
var ErrClosed = errors.New("engine: closed")

// Option configures an Engine.
type Option func(*options)

type options struct {
	log        *zap.Logger
	flows      FlowIDGenerator
	httpClient *http.Client
	now        func() time.Time
	debounce   time.Duration
}

// WithLogger sets the logger. Defaults to a JSON logger at the configured
// level on stderr.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithFlowIDs overrides the flow id generator.
func WithFlowIDs(g FlowIDGenerator) Option {
	return func(o *options) { o.flows = g }
}

// WithHTTPClient sets the client used for receipt uploads.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithClock overrides the wall clock used for commit timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithWakeDebounce sets how long the store watcher coalesces writes.
func WithWakeDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// Engine is the delivery core of one process.
type Engine struct {
	cfg   config.Config
	log   *zap.Logger
	flows FlowIDGenerator
	wait  time.Duration

	store         *store.Store
	events        *pubsub.Bus[events.Event]
	notifications *pubsub.Bus[notification.Notification]
	consumer      *outbox.Consumer
	replayer      *replay.Replayer
	router        *router.Router
	uploader      *receipt.Uploader
	sender        *receipt.Sender
	bridge        *bridge.Redis

	mu      sync.Mutex
	closed  bool
	running sync.WaitGroup
	stop    context.CancelFunc
	ctx     context.Context
}

// Open wires the engine described by cfg. The store file and engine
// directory are created if missing.
func Open(cfg config.Config, opts ...Option) (*Engine, error) {
	o := options{flows: UUIDv7Generator{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Process.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	log := o.log
	if log == nil {
		var err error
		if log, err = logging.New(cfg.Process, cfg.Log.Level); err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o700); err != nil {
		return nil, fmt.Errorf("engine: create store dir: %w", err)
	}
	st, err := store.Open(cfg.StorePath,
		store.WithAuthor(cfg.Process),
		store.WithRetention(store.RetentionPolicy{
			MaxRecords: cfg.History.MaxRecords,
			MaxAge:     cfg.History.MaxAge.Duration,
		}),
		store.WithLogger(log),
		store.WithClock(o.now),
	)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	e := &Engine{
		cfg:           cfg,
		log:           log,
		flows:         o.flows,
		wait:          o.debounce,
		store:         st,
		events:        pubsub.New[events.Event](),
		notifications: pubsub.New[notification.Notification](),
		ctx:           ctx,
		stop:          stop,
	}
	if err := e.wire(o); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Engine) wire(o options) error {
	cursors, err := cursor.New(e.cfg.EngineDir, e.cfg.Process)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if e.consumer, err = outbox.New(e.store, e.events, e.log); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if e.replayer, err = replay.New(e.store, cursors, e.consumer, replay.WithLogger(e.log)); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	e.router, err = router.New(e.events, e.store, identity.Repository{}, e.notifications,
		router.WithLogger(e.log),
		router.WithMaxConcurrentHydrations(int64(e.cfg.Router.MaxConcurrentHydrations)),
	)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if e.cfg.Receipts.ServerURL != "" {
		client := o.httpClient
		if client == nil {
			client = &http.Client{Timeout: e.cfg.Receipts.Timeout.Duration}
		}
		e.uploader, err = receipt.NewUploader(receipt.ChannelID(e.cfg.Process), e.cfg.Receipts.ServerURL, e.store,
			receipt.WithHTTPClient(client),
			receipt.WithMaxConcurrentUploads(int64(e.cfg.Receipts.MaxConcurrentUploads)),
			receipt.WithUploaderLogger(e.log),
		)
		if err != nil {
			return fmt.Errorf("engine: %w", err)
		}
		if e.sender, err = receipt.NewSender(e.uploader, e.log); err != nil {
			return fmt.Errorf("engine: %w", err)
		}
	}

	if e.cfg.Bridge.RedisURL != "" {
		e.bridge, err = bridge.New(bridge.Config{
			URL:     e.cfg.Bridge.RedisURL,
			Channel: e.cfg.Bridge.Channel,
			Retries: e.cfg.Bridge.Retries,
		}, e.log)
		if err != nil {
			return fmt.Errorf("engine: %w", err)
		}
		e.bridge.Attach(e.notifications)
	}
	return nil
}

// Store returns the shared store this engine writes to.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Wake runs one replay attempt and waits for it.
func (e *Engine) Wake(ctx context.Context) (replay.Result, error) {
	if e.isClosed() {
		return replay.Result{}, ErrClosed
	}
	return e.replayer.Replay(ctx, e.flows.Generate())
}

// Publish posts an event to the engine bus, as the process's network
// and protocol managers do. Returns the number of subscribers reached.
func (e *Engine) Publish(ev events.Event) int {
	return e.events.Publish(ev)
}

// Subscribe registers fn for every external notification. Calls to fn never
// overlap; there is no ordering across notification kinds.
func (e *Engine) Subscribe(fn func(notification.Notification)) *pubsub.Subscription[notification.Notification] {
	return e.notifications.Subscribe(fn)
}

// Events exposes the engine bus for in-process observers.
func (e *Engine) Events() *pubsub.Bus[events.Event] {
	return e.events
}

// DeleteAcknowledgementHistory drops the acknowledgement history of ids once
// the app has acted on a messagesWereAcknowledged notification.
func (e *Engine) DeleteAcknowledgementHistory(ctx context.Context, ids []ir.MessageID) error {
	if e.isClosed() {
		return ErrClosed
	}
	return e.consumer.DeleteAcknowledgementHistory(ctx, ids)
}

// Receipts returns the return receipt sender.
func (e *Engine) Receipts() (*receipt.Sender, error) {
	if e.sender == nil {
		return nil, ErrReceiptsDisabled
	}
	return e.sender, nil
}

// HandleBackgroundEvents reattaches to receipt uploads the OS finished while
// no process instance was running. done is called once they are handled.
func (e *Engine) HandleBackgroundEvents(ctx context.Context, channelID string, done func()) error {
	if e.sender == nil {
		return fmt.Errorf("%w: %s", receipt.ErrUnknownChannel, channelID)
	}
	return e.sender.HandleBackgroundEvents(ctx, channelID, done)
}

// Run replays once, then replays after every burst of writes to the store
// until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.running.Add(1)
	e.mu.Unlock()
	defer e.running.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-e.ctx.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	w, err := wake.New(e.cfg.StorePath, e.trigger, e.wait, e.log)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	e.trigger()
	return w.Run(ctx)
}

func (e *Engine) trigger() {
	if !e.replayer.ReplayAsync(e.flows.Generate()) {
		e.log.Debug("replayer closed, wake ignored")
	}
}

func (e *Engine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Close stops wakes, drains every stage and closes the store. Safe to call
// more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.stop()
	e.running.Wait()

	if e.replayer != nil {
		e.replayer.Close()
	}
	if e.router != nil {
		e.router.Close()
		e.log.Debug("router closed",
			zap.Int64("published", e.router.Published()),
			zap.Int64("dropped", e.router.Dropped()))
	}
	if e.uploader != nil {
		if n := e.uploader.Pending(); n > 0 {
			e.log.Info("receipt uploads left to the background channel", zap.Int("pending", n))
		}
		e.uploader.Close()
	}
	var errs []error
	if e.bridge != nil {
		errs = append(errs, e.bridge.Close())
	}
	e.notifications.Close()
	e.events.Close()
	errs = append(errs, e.store.Close())
	_ = e.log.Sync()
	return errors.Join(errs...)
}
