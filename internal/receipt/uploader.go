package receipt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/logging"
	"github.com/roach88/msgcore/internal/queue"
	"github.com/roach88/msgcore/internal/store"
)

var (
	// ErrUnknownChannel is returned for background events addressed to a
	// channel this uploader does not own.
	ErrUnknownChannel = errors.New("receipt: unknown upload channel")
	// ErrMalformedResponse means the server answered with something other
	// than a known status.
	ErrMalformedResponse = errors.New("receipt: malformed server response")
)

// ResponseStatus is the server's answer to one upload.
type ResponseStatus int

const (
	ResponseOK           ResponseStatus = 0
	ResponseGeneralError ResponseStatus = 255
)

func (s ResponseStatus) String() string {
	switch s {
	case ResponseOK:
		return "ok"
	case ResponseGeneralError:
		return "generalError"
	default:
		return fmt.Sprintf("ResponseStatus(%d)", int(s))
	}
}

// ChannelID is the stable upload channel identifier for a process kind.
// A relaunched process binds to the same id to find its in-flight tasks.
func ChannelID(kind ir.ProcessKind) string {
	return "returnReceipts." + string(kind)
}

// TaskRegistry persists in-flight uploads across process suspension.
type TaskRegistry interface {
	PutUploadTask(ctx context.Context, task store.UploadTask) error
	DeleteUploadTask(ctx context.Context, channelID, taskID string) error
	ListUploadTasks(ctx context.Context, channelID string) ([]store.UploadTask, error)
}

// Result reports how one upload task ended.
type Result struct {
	TaskID string
	Status ResponseStatus
	Err    error
}

// PendingUploadTask associates a task with the response bytes received so
// far. It lives until its completion has been handled.
type PendingUploadTask struct {
	TaskID   string
	response bytes.Buffer
	finished chan struct{}
}

type completion struct {
	task *PendingUploadTask
	err  error
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithHTTPClient overrides the HTTP client used for uploads.
func WithHTTPClient(c *http.Client) UploaderOption {
	return func(u *Uploader) { u.client = c }
}

// WithMaxConcurrentUploads bounds the number of requests in flight.
func WithMaxConcurrentUploads(n int64) UploaderOption {
	return func(u *Uploader) {
		if n > 0 {
			u.sem = semaphore.NewWeighted(n)
		}
	}
}

// WithUploaderLogger sets the logger.
func WithUploaderLogger(l *zap.Logger) UploaderOption {
	return func(u *Uploader) { u.log = logging.OrNop(l) }
}

// WithCompletionObserver is called on the completion worker after each task
// is handled.
func WithCompletionObserver(fn func(Result)) UploaderOption {
	return func(u *Uploader) { u.observe = fn }
}

// WithTaskIDs overrides task id generation.
func WithTaskIDs(next func() string) UploaderOption {
	return func(u *Uploader) { u.newTaskID = next }
}

// Uploader owns one background upload channel. Every submitted body becomes
// one task, recorded in the registry before its request starts and removed
// once its completion is handled. Completions are handled one at a time.
type Uploader struct {
	channelID string
	endpoint  string
	registry  TaskRegistry
	client    *http.Client
	sem       *semaphore.Weighted
	log       *zap.Logger
	tracer    trace.Tracer
	observe   func(Result)
	newTaskID func() string

	completions *queue.Worker[completion]

	// ctx bounds every request; canceled by Close.
	ctx    context.Context
	cancel context.CancelFunc

	// reattach is held across a registry listing and the starts it leads
	// to, and across the unregister and forget of a completed task, so a
	// task is never listed after it completed and started again.
	reattach sync.Mutex

	mu      sync.Mutex
	pending map[string]*PendingUploadTask
	wg      sync.WaitGroup
}

// NewUploader binds an uploader to channelID.
func NewUploader(channelID, endpoint string, registry TaskRegistry, opts ...UploaderOption) (*Uploader, error) {
	if channelID == "" {
		return nil, errors.New("receipt: channel id is required")
	}
	if endpoint == "" {
		return nil, errors.New("receipt: upload endpoint is required")
	}
	if registry == nil {
		return nil, errors.New("receipt: task registry is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	u := &Uploader{
		channelID: channelID,
		endpoint:  endpoint,
		registry:  registry,
		client:    &http.Client{Timeout: 30 * time.Second},
		sem:       semaphore.NewWeighted(4),
		log:       zap.NewNop(),
		tracer:    otel.Tracer("msgcore/receipt"),
		newTaskID: func() string { return uuid.NewString() },
		ctx:       ctx,
		cancel:    cancel,
		pending:   make(map[string]*PendingUploadTask),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.log = u.log.With(zap.String("channel_id", channelID))
	u.completions = queue.NewWorker(u.handleCompletion)
	return u, nil
}

// ChannelID returns the channel this uploader is bound to.
func (u *Uploader) ChannelID() string {
	return u.channelID
}

// Submit records body as a new task and starts uploading it. It returns once
// the task is registered; the upload itself completes asynchronously.
func (u *Uploader) Submit(ctx context.Context, body []byte) (string, error) {
	if u.ctx.Err() != nil {
		return "", errors.New("receipt: uploader closed")
	}
	taskID := u.newTaskID()
	if err := u.registry.PutUploadTask(ctx, store.UploadTask{
		ChannelID: u.channelID,
		TaskID:    taskID,
		Body:      body,
	}); err != nil {
		return "", fmt.Errorf("register upload task: %w", err)
	}
	u.start(taskID, body)
	return taskID, nil
}

// HandleBackgroundEvents reattaches every task still registered on the
// channel and calls done exactly once, after every completion pending at
// that point has been handled or ctx is done. Only a channel mismatch
// returns without calling done; a registry that cannot be listed is logged
// and the tasks already pending are still awaited.
func (u *Uploader) HandleBackgroundEvents(ctx context.Context, channelID string, done func()) error {
	if channelID != u.channelID {
		return fmt.Errorf("%w: %q (bound to %q)", ErrUnknownChannel, channelID, u.channelID)
	}

	u.reattach.Lock()
	tasks, err := u.registry.ListUploadTasks(ctx, u.channelID)
	if err != nil {
		u.log.Error("list registered uploads, nothing reattached", zap.Error(err))
		tasks = nil
	}
	reattached := 0
	for _, task := range tasks {
		if u.start(task.TaskID, task.Body) {
			reattached++
		}
	}
	u.reattach.Unlock()

	u.mu.Lock()
	waits := make([]<-chan struct{}, 0, len(u.pending))
	for _, p := range u.pending {
		waits = append(waits, p.finished)
	}
	u.mu.Unlock()

	u.log.Info("background events",
		zap.Int("registered", len(tasks)),
		zap.Int("reattached", reattached),
		zap.Int("pending", len(waits)),
	)

	go func() {
		defer done()
		for _, w := range waits {
			select {
			case <-w:
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Pending returns the number of tasks whose completion is not handled yet.
func (u *Uploader) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.pending)
}

// Close cancels in-flight requests and waits for their completions. Tasks
// interrupted this way stay registered and are reattached on the next
// HandleBackgroundEvents.
func (u *Uploader) Close() {
	u.cancel()
	u.wg.Wait()
	u.completions.Close()
	<-u.completions.Done()
}

// start launches the request for a task unless it is already pending or the
// uploader is closed.
func (u *Uploader) start(taskID string, body []byte) bool {
	u.mu.Lock()
	if _, ok := u.pending[taskID]; ok || u.ctx.Err() != nil {
		u.mu.Unlock()
		return false
	}
	task := &PendingUploadTask{TaskID: taskID, finished: make(chan struct{})}
	u.pending[taskID] = task
	u.wg.Add(1)
	u.mu.Unlock()

	go func() {
		err := u.upload(task, body)
		if !u.completions.Submit(completion{task: task, err: err}) {
			u.finish(task)
		}
	}()
	return true
}

func (u *Uploader) upload(task *PendingUploadTask, body []byte) error {
	ctx, span := u.tracer.Start(u.ctx, "receipt.upload", trace.WithAttributes(
		attribute.String("upload.channel_id", u.channelID),
		attribute.String("upload.task_id", task.TaskID),
		attribute.Int("upload.bytes", len(body)),
	))
	defer span.End()

	if err := u.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer u.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, bytes.NewReader(body))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/msgpack")

	resp, err := u.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if _, err := io.Copy(&task.response, io.LimitReader(resp.Body, 1<<16)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		span.SetStatus(codes.Error, resp.Status)
		return fmt.Errorf("upload: http %s", resp.Status)
	}
	return nil
}

// handleCompletion runs on the single completion worker.
func (u *Uploader) handleCompletion(c completion) {
	res := Result{TaskID: c.task.TaskID, Err: c.err}
	interrupted := c.err != nil && u.ctx.Err() != nil && errors.Is(c.err, context.Canceled)
	if res.Err == nil {
		res.Status, res.Err = decodeResponse(c.task.response.Bytes())
	}

	switch {
	case interrupted:
		u.log.Info("upload interrupted, task stays registered", zap.String("task_id", res.TaskID))
	case errors.Is(res.Err, ErrMalformedResponse):
		logging.Fault(u.log, "malformed upload response",
			zap.String("task_id", res.TaskID), zap.Int("bytes", c.task.response.Len()))
	case res.Err != nil:
		u.log.Warn("upload failed", zap.String("task_id", res.TaskID), zap.Error(res.Err))
	case res.Status == ResponseGeneralError:
		u.log.Warn("server rejected upload", zap.String("task_id", res.TaskID))
	default:
		u.log.Debug("upload done", zap.String("task_id", res.TaskID))
	}

	u.reattach.Lock()
	if !interrupted {
		// No retry: the task is done whatever the outcome.
		if err := u.registry.DeleteUploadTask(context.Background(), u.channelID, res.TaskID); err != nil {
			u.log.Error("unregister upload task", zap.String("task_id", res.TaskID), zap.Error(err))
		}
	}
	u.forget(c.task)
	u.reattach.Unlock()

	if u.observe != nil {
		u.observe(res)
	}
	u.release(c.task)
}

func (u *Uploader) finish(task *PendingUploadTask) {
	u.forget(task)
	u.release(task)
}

func (u *Uploader) forget(task *PendingUploadTask) {
	u.mu.Lock()
	delete(u.pending, task.TaskID)
	u.mu.Unlock()
}

func (u *Uploader) release(task *PendingUploadTask) {
	close(task.finished)
	u.wg.Done()
}

// decodeResponse parses the msgpack status the server answers with.
func decodeResponse(body []byte) (ResponseStatus, error) {
	r := bytes.NewReader(body)
	dec := msgpack.NewDecoder(r)
	v, err := dec.DecodeInt()
	if err != nil || r.Len() != 0 {
		return 0, ErrMalformedResponse
	}
	switch s := ResponseStatus(v); s {
	case ResponseOK, ResponseGeneralError:
		return s, nil
	default:
		return 0, fmt.Errorf("%w: status %d", ErrMalformedResponse, v)
	}
}
