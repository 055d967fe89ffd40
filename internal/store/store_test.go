package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/msgcore/internal/ir"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "Open() iteration %d", i)
		s.Close()
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
	assert.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestOpen_TwoHandlesShareHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")

	app, err := Open(path)
	require.NoError(t, err)
	defer app.Close()
	ext, err := Open(path)
	require.NoError(t, err)
	defer ext.Close()

	appendN(t, ext, 2)

	head, err := app.CurrentLogPosition(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, head)
}

func TestUpdate_AfterCommitRunsOnlyOnCommit(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	var ran []string
	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		tx.AfterCommit(func() { ran = append(ran, "committed") })
		return nil
	}))

	err := s.Update(ctx, func(tx *Tx) error {
		tx.AfterCommit(func() { ran = append(ran, "rolled back") })
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, []string{"committed"}, ran)
}

func TestUpdate_RollbackDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	err := s.Update(ctx, func(tx *Tx) error {
		if err := tx.AppendChange(ctx, "contact", "update", "k"); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	stats, err := s.HistoryStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.Count)
}

func TestUpdate_ReadThenWriteWaitsForOtherHandle(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")

	app, err := Open(path)
	require.NoError(t, err)
	defer app.Close()
	ext, err := Open(path, WithAuthor(ir.ProcessShareExtension))
	require.NoError(t, err)
	defer ext.Close()

	extDone := make(chan error, 1)
	err = app.Update(ctx, func(tx *Tx) error {
		head, err := tx.CurrentLogPosition(ctx)
		if err != nil {
			return err
		}
		go func() {
			extDone <- ext.Update(ctx, func(tx *Tx) error {
				return tx.AppendChange(ctx, ir.EntityContact, ir.OpUpdate, "ext")
			})
		}()
		select {
		case err := <-extDone:
			return fmt.Errorf("other handle committed inside a write transaction: %v", err)
		case <-time.After(100 * time.Millisecond):
		}
		assert.EqualValues(t, 0, head)
		return tx.AppendChange(ctx, ir.EntityContact, ir.OpUpdate, "app")
	})
	require.NoError(t, err)
	require.NoError(t, <-extDone)

	head, err := app.CurrentLogPosition(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, head)
}

func TestImmediateDSN(t *testing.T) {
	assert.Equal(t, "a.db?_txlock=immediate", immediateDSN("a.db"))
	assert.Equal(t, "file:a.db?cache=private&_txlock=immediate", immediateDSN("file:a.db?cache=private"))
}

func TestUploadTasks(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.PutUploadTask(ctx, UploadTask{ChannelID: "c1", TaskID: "t1", Body: []byte{1}}))
	require.NoError(t, s.PutUploadTask(ctx, UploadTask{ChannelID: "c1", TaskID: "t2", Body: []byte{2}}))
	require.NoError(t, s.PutUploadTask(ctx, UploadTask{ChannelID: "c2", TaskID: "t3", Body: []byte{3}}))
	// Duplicate put is ignored.
	require.NoError(t, s.PutUploadTask(ctx, UploadTask{ChannelID: "c1", TaskID: "t1", Body: []byte{9}}))

	tasks, err := s.ListUploadTasks(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, []byte{1}, tasks[0].Body)

	require.NoError(t, s.DeleteUploadTask(ctx, "c1", "t1"))
	require.NoError(t, s.DeleteUploadTask(ctx, "c1", "missing"))

	tasks, err = s.ListUploadTasks(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t2", tasks[0].TaskID)
}
