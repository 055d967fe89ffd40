package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/msgcore/internal/ir"
)

func TestCurrentLogPosition_EmptyStore(t *testing.T) {
	s := createTestStore(t)

	head, err := s.CurrentLogPosition(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, head)
}

func TestFetchRecords_Range(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, WithAuthor(ir.ProcessShareExtension))
	appendN(t, s, 5)

	var records []ir.ChangeRecord
	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		var err error
		records, err = tx.FetchRecords(ctx, 2, 4)
		return err
	}))

	require.Len(t, records, 2)
	assert.EqualValues(t, 3, records[0].Seq)
	assert.EqualValues(t, 4, records[1].Seq)
	assert.Equal(t, ir.ProcessShareExtension, records[0].Author)
	assert.Equal(t, ir.OpUpdate, records[0].Op)
}

func TestAppendChange_ChangedProperties(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.AppendChange(ctx, ir.EntityOutboxMessage, ir.OpUpdate, "k", "a", "b")
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		records, err := tx.FetchRecords(ctx, 0, 1)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, []string{"a", "b"}, records[0].Changed)
		return nil
	}))
}

func TestPurgeRecords_KeepsHeadAndPosition(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	appendN(t, s, 4)

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		n, err := tx.PurgeRecords(ctx, 4)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
		return nil
	}))

	stats, err := s.HistoryStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.Head)
	assert.EqualValues(t, 4, stats.Oldest)
	assert.EqualValues(t, 1, stats.Count)
	assert.EqualValues(t, 3, stats.TruncatedThrough)
}

func TestPurgeRecords_AllPurgedHeadStillAdvances(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	appendN(t, s, 3)

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		_, err := tx.PurgeRecords(ctx, 100)
		return err
	}))
	appendN(t, s, 1)

	head, err := s.CurrentLogPosition(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, head, "seq must not be reused after purge")
}

func TestPurgeRecords_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	appendN(t, s, 3)

	for i := 0; i < 2; i++ {
		require.NoError(t, s.Update(ctx, func(tx *Tx) error {
			_, err := tx.PurgeRecords(ctx, 3)
			return err
		}))
	}

	stats, err := s.HistoryStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Count)
}

func TestRetention_MaxRecords(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, WithRetention(RetentionPolicy{MaxRecords: 3}))
	appendN(t, s, 5)

	stats, err := s.HistoryStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Count)
	assert.EqualValues(t, 3, stats.Oldest)
	assert.EqualValues(t, 5, stats.Head)
	assert.EqualValues(t, 2, stats.TruncatedThrough)
}

func TestRetention_MaxAge(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := createTestStore(t,
		WithClock(fixedClock(start, time.Hour)),
		WithRetention(RetentionPolicy{MaxAge: 90 * time.Minute}),
	)
	appendN(t, s, 4)

	stats, err := s.HistoryStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.Head)
	assert.Less(t, stats.Count, int64(4))
	assert.Greater(t, int64(stats.TruncatedThrough), int64(0))
}

func TestRetention_DisabledByDefault(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	appendN(t, s, 10)

	stats, err := s.HistoryStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, stats.Count)
	assert.EqualValues(t, 0, stats.TruncatedThrough)
}
