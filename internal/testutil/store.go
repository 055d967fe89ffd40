package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/store"
)

// OpenStore opens the shared store at path as kind and closes it when the
// test ends. Several calls with the same path model several processes.
func OpenStore(t testing.TB, path string, kind ir.ProcessKind, opts ...store.Option) *store.Store {
	t.Helper()
	s, err := store.Open(path, append([]store.Option{store.WithAuthor(kind)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
