package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/msgcore/internal/ir"
)

// createTestStore opens a fresh store in a temp dir, closed on cleanup.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "shared.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		v := now
		now = now.Add(step)
		return v
	}
}

func testMessageID(owner byte, n byte) ir.MessageID {
	var uid ir.UID
	uid[0] = n
	return ir.MessageID{OwnedIdentity: ir.CryptoID{owner, owner}, UID: uid}
}

// appendN commits n outbox inserts, one transaction each.
func appendN(t *testing.T, s *Store, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		require.NoError(t, s.Update(ctx, func(tx *Tx) error {
			return tx.AppendChange(ctx, ir.EntityContact, ir.OpUpdate, "k")
		}))
	}
}
