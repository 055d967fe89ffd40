package receipt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/store"
)

const testChannel = "returnReceipts.main_app"

func openRegistry(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "shared.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// statusServer answers every upload with the msgpack-encoded status and
// forwards request bodies to bodies.
func statusServer(t *testing.T, status int, bodies chan<- []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if bodies != nil {
			bodies <- body
		}
		out, _ := msgpack.Marshal(status)
		w.Header().Set("Content-Type", "application/msgpack")
		w.Write(out)
	}))
	t.Cleanup(srv.Close)
	return srv
}

type results struct {
	mu  sync.Mutex
	got []Result
	ch  chan Result
}

func newResults() *results {
	return &results{ch: make(chan Result, 64)}
}

func (r *results) observe(res Result) {
	r.mu.Lock()
	r.got = append(r.got, res)
	r.mu.Unlock()
	r.ch <- res
}

func (r *results) next(t *testing.T) Result {
	t.Helper()
	select {
	case res := <-r.ch:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for upload completion")
		return Result{}
	}
}

func TestChannelID(t *testing.T) {
	assert.Equal(t, "returnReceipts.main_app", ChannelID(ir.ProcessMainApp))
	assert.Equal(t, "returnReceipts.share_extension", ChannelID(ir.ProcessShareExtension))
}

func TestNewUploader_RequiresCollaborators(t *testing.T) {
	reg := openRegistry(t)
	_, err := NewUploader("", "http://x", reg)
	assert.Error(t, err)
	_, err = NewUploader(testChannel, "", reg)
	assert.Error(t, err)
	_, err = NewUploader(testChannel, "http://x", nil)
	assert.Error(t, err)
}

func TestUploader_SubmitSuccessUnregisters(t *testing.T) {
	reg := openRegistry(t)
	srv := statusServer(t, 0, nil)
	res := newResults()
	u, err := NewUploader(testChannel, srv.URL, reg, WithCompletionObserver(res.observe))
	require.NoError(t, err)
	defer u.Close()

	taskID, err := u.Submit(context.Background(), []byte("body"))
	require.NoError(t, err)

	got := res.next(t)
	assert.Equal(t, taskID, got.TaskID)
	assert.Equal(t, ResponseOK, got.Status)
	assert.NoError(t, got.Err)

	tasks, err := reg.ListUploadTasks(context.Background(), testChannel)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUploader_ResponseStatuses(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		want      ResponseStatus
		malformed bool
	}{
		{"ok", 0, ResponseOK, false},
		{"general error", 255, ResponseGeneralError, false},
		{"undefined status", 17, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := openRegistry(t)
			srv := statusServer(t, tt.status, nil)
			res := newResults()
			u, err := NewUploader(testChannel, srv.URL, reg, WithCompletionObserver(res.observe))
			require.NoError(t, err)
			defer u.Close()

			_, err = u.Submit(context.Background(), []byte("x"))
			require.NoError(t, err)
			got := res.next(t)
			if tt.malformed {
				assert.ErrorIs(t, got.Err, ErrMalformedResponse)
			} else {
				assert.NoError(t, got.Err)
				assert.Equal(t, tt.want, got.Status)
			}

			// No retry whatever the outcome.
			tasks, err := reg.ListUploadTasks(context.Background(), testChannel)
			require.NoError(t, err)
			assert.Empty(t, tasks)
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	_, err := decodeResponse(nil)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	_, err = decodeResponse([]byte("garbage"))
	assert.ErrorIs(t, err, ErrMalformedResponse)

	ok, _ := msgpack.Marshal(0)
	s, err := decodeResponse(ok)
	require.NoError(t, err)
	assert.Equal(t, ResponseOK, s)
}

func TestUploader_CompletionsAreSerialized(t *testing.T) {
	reg := openRegistry(t)
	srv := statusServer(t, 0, nil)

	var running, maxRunning atomic.Int32
	var wg sync.WaitGroup
	const n = 50
	wg.Add(n)
	u, err := NewUploader(testChannel, srv.URL, reg,
		WithMaxConcurrentUploads(16),
		WithCompletionObserver(func(Result) {
			cur := running.Add(1)
			for {
				prev := maxRunning.Load()
				if cur <= prev || maxRunning.CompareAndSwap(prev, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
			wg.Done()
		}),
	)
	require.NoError(t, err)
	defer u.Close()

	for i := 0; i < n; i++ {
		_, err := u.Submit(context.Background(), []byte{byte(i)})
		require.NoError(t, err)
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestUploader_ReattachAfterSuspension(t *testing.T) {
	reg := openRegistry(t)

	// First process: the server never answers before suspension.
	blocked := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer blocked.Close()

	first, err := NewUploader(testChannel, blocked.URL, reg, WithTaskIDs(func() string { return "task-1" }))
	require.NoError(t, err)
	_, err = first.Submit(context.Background(), []byte("receipt"))
	require.NoError(t, err)
	first.Close()

	tasks, err := reg.ListUploadTasks(context.Background(), testChannel)
	require.NoError(t, err)
	require.Len(t, tasks, 1, "interrupted task stays registered")

	// Relaunched process binds to the same channel id.
	bodies := make(chan []byte, 1)
	srv := statusServer(t, 0, bodies)
	res := newResults()
	second, err := NewUploader(testChannel, srv.URL, reg, WithCompletionObserver(res.observe))
	require.NoError(t, err)
	defer second.Close()

	var doneCalls atomic.Int32
	doneCh := make(chan struct{})
	require.NoError(t, second.HandleBackgroundEvents(context.Background(), testChannel, func() {
		if doneCalls.Add(1) == 1 {
			close(doneCh)
		}
	}))

	select {
	case <-doneCh:
	case <-time.After(5 * time.Second):
		t.Fatal("done was not called")
	}
	assert.Equal(t, []byte("receipt"), <-bodies)

	res.mu.Lock()
	require.Len(t, res.got, 1, "completion handled before done")
	assert.Equal(t, "task-1", res.got[0].TaskID)
	res.mu.Unlock()

	tasks, err = reg.ListUploadTasks(context.Background(), testChannel)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), doneCalls.Load())
}

func TestUploader_HandleBackgroundEventsNothingPending(t *testing.T) {
	reg := openRegistry(t)
	u, err := NewUploader(testChannel, "http://127.0.0.1:1", reg)
	require.NoError(t, err)
	defer u.Close()

	done := make(chan struct{})
	require.NoError(t, u.HandleBackgroundEvents(context.Background(), testChannel, func() { close(done) }))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done was not called")
	}
}

func TestUploader_HandleBackgroundEventsWrongChannel(t *testing.T) {
	reg := openRegistry(t)
	u, err := NewUploader(testChannel, "http://127.0.0.1:1", reg)
	require.NoError(t, err)
	defer u.Close()

	called := false
	err = u.HandleBackgroundEvents(context.Background(), "returnReceipts.share_extension", func() { called = true })
	assert.ErrorIs(t, err, ErrUnknownChannel)
	assert.False(t, called)
}

// listingRegistry wraps a store registry, optionally failing listings and
// running afterList between reading the rows and returning them.
type listingRegistry struct {
	*store.Store
	listErr   error
	afterList func()
}

func (r *listingRegistry) ListUploadTasks(ctx context.Context, channelID string) ([]store.UploadTask, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	tasks, err := r.Store.ListUploadTasks(ctx, channelID)
	if r.afterList != nil {
		r.afterList()
	}
	return tasks, err
}

func TestUploader_HandleBackgroundEventsListFailureStillCallsDone(t *testing.T) {
	reg := &listingRegistry{Store: openRegistry(t), listErr: errors.New("disk I/O error")}

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		out, _ := msgpack.Marshal(0)
		w.Write(out)
	}))
	defer srv.Close()

	res := newResults()
	u, err := NewUploader(testChannel, srv.URL, reg, WithCompletionObserver(res.observe))
	require.NoError(t, err)
	defer u.Close()
	_, err = u.Submit(context.Background(), []byte("in flight"))
	require.NoError(t, err)

	var doneCalls atomic.Int32
	require.NoError(t, u.HandleBackgroundEvents(context.Background(), testChannel, func() { doneCalls.Add(1) }))

	// done waits for the task that was already pending.
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, doneCalls.Load())

	close(release)
	res.next(t)
	require.Eventually(t, func() bool { return doneCalls.Load() == 1 }, 5*time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return doneCalls.Load() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestUploader_TaskCompletingDuringReattachIsNotUploadedTwice(t *testing.T) {
	var requests atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		<-release
		out, _ := msgpack.Marshal(0)
		w.Write(out)
	}))
	defer srv.Close()

	res := newResults()
	reg := &listingRegistry{Store: openRegistry(t)}
	u, err := NewUploader(testChannel, srv.URL, reg, WithCompletionObserver(res.observe))
	require.NoError(t, err)
	defer u.Close()

	_, err = u.Submit(context.Background(), []byte("receipt"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return requests.Load() == 1 }, 5*time.Second, 5*time.Millisecond)

	// The in-flight task is listed, then its upload completes before the
	// listing is acted on.
	reg.afterList = func() {
		close(release)
		time.Sleep(100 * time.Millisecond)
	}
	done := make(chan struct{})
	require.NoError(t, u.HandleBackgroundEvents(context.Background(), testChannel, func() { close(done) }))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("done was not called")
	}
	res.next(t)
	assert.Never(t, func() bool { return requests.Load() > 1 }, 200*time.Millisecond, 10*time.Millisecond)

	tasks, err := reg.Store.ListUploadTasks(context.Background(), testChannel)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSender_SendUploadsWireBody(t *testing.T) {
	reg := openRegistry(t)
	bodies := make(chan []byte, 1)
	srv := statusServer(t, 0, bodies)
	res := newResults()
	u, err := NewUploader(testChannel, srv.URL, reg, WithCompletionObserver(res.observe))
	require.NoError(t, err)
	defer u.Close()
	s, err := NewSender(u, nil)
	require.NoError(t, err)

	e, err := s.GenerateElements()
	require.NoError(t, err)
	owned, contact := ir.CryptoID{0xaa}, ir.CryptoID{0xbb}
	device := ir.UID{0x42}
	_, err = s.Send(context.Background(), SendRequest{
		Elements:   e,
		Status:     StatusDelivered,
		ToContact:  contact,
		FromOwned:  owned,
		DeviceUIDs: []ir.UID{device},
	})
	require.NoError(t, err)
	res.next(t)

	var wire uploadRequest
	require.NoError(t, msgpack.Unmarshal(<-bodies, &wire))
	assert.Equal(t, []byte(owned), wire.OwnedIdentity)
	assert.Equal(t, e.Nonce[:], wire.Nonce)
	assert.Equal(t, []byte(contact), wire.RecipientIdentity)
	assert.Equal(t, [][]byte{device[:]}, wire.RecipientDeviceUIDs)

	// The recipient decrypts with the elements carried in the message.
	got, err := Decrypt(ir.ReturnReceipt{
		OwnedIdentity:    contact,
		Nonce:            wire.Nonce,
		EncryptedPayload: wire.EncryptedPayload,
	}, e)
	require.NoError(t, err)
	assert.Equal(t, owned, got.ContactID)
	assert.Equal(t, StatusDelivered, got.Status)
	assert.Nil(t, got.AttachmentNumber)
}

func TestSender_RequiresUploader(t *testing.T) {
	_, err := NewSender(nil, nil)
	assert.Error(t, err)
}

func ExampleStatus_String() {
	fmt.Println(StatusDelivered, StatusRead)
	// Output: delivered read
}
