package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/msgcore/internal/ir"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(ir.ProcessShareExtension, "debug", &buf)
	require.NoError(t, err)

	WithFlow(l, "flow-1").Info("replay finished")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "replay finished", lines[0]["message"])
	assert.Equal(t, "share_extension", lines[0]["process"])
	assert.Equal(t, "flow-1", lines[0]["flow_id"])
	assert.NotEmpty(t, lines[0]["timestamp"])
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(ir.ProcessMainApp, "warn", &buf)
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["message"])
}

func TestNewWithWriter_InvalidLevel(t *testing.T) {
	_, err := NewWithWriter(ir.ProcessMainApp, "loud", &bytes.Buffer{})
	require.Error(t, err)
}

func TestFault(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(ir.ProcessMainApp, "", &buf)
	require.NoError(t, err)

	Fault(l, "unmapped event")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, true, lines[0]["fault"])
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}
