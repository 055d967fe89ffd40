package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/msgcore/internal/ir"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "msgcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeTemp(t, `process: share_extension
store_path: shared/msgcore.db
engine_dir: /var/lib/msgcore

receipts:
  server_url: https://receipts.example.com
  timeout: 10s
  max_concurrent_uploads: 8

router:
  max_concurrent_hydrations: 2

history:
  max_records: 500
  max_age: 72h

bridge:
  redis_url: redis://localhost:6379/1
  channel: app:notifications
  retries: 1

log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ir.ProcessShareExtension, cfg.Process)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "shared", "msgcore.db"), cfg.StorePath)
	assert.Equal(t, "/var/lib/msgcore", cfg.EngineDir)
	assert.Equal(t, "https://receipts.example.com", cfg.Receipts.ServerURL)
	assert.Equal(t, 10*time.Second, cfg.Receipts.Timeout.Duration)
	assert.Equal(t, 8, cfg.Receipts.MaxConcurrentUploads)
	assert.Equal(t, 2, cfg.Router.MaxConcurrentHydrations)
	assert.Equal(t, 500, cfg.History.MaxRecords)
	assert.Equal(t, 72*time.Hour, cfg.History.MaxAge.Duration)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Bridge.RedisURL)
	assert.Equal(t, "app:notifications", cfg.Bridge.Channel)
	assert.Equal(t, 1, cfg.Bridge.Retries)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParse_EmptyIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("router:\n  max_concurrent_hydrations: 9\n"))
	require.NoError(t, err)

	want := Default()
	want.Router.MaxConcurrentHydrations = 9
	assert.Equal(t, want, cfg)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown process", "process: widget\n"},
		{"unknown key", "colour: blue\n"},
		{"unknown nested key", "router:\n  workers: 3\n"},
		{"bad duration", "receipts:\n  timeout: soon\n"},
		{"zero uploads", "receipts:\n  max_concurrent_uploads: 0\n"},
		{"negative history", "history:\n  max_records: -1\n"},
		{"bad server scheme", "receipts:\n  server_url: ftp://x\n"},
		{"bad redis scheme", "bridge:\n  redis_url: http://x\n"},
		{"bad level", "log:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("router: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("MSGCORE_REDIS", "redis://cache:6379")
	cfg, err := Parse([]byte(`bridge:
  redis_url: ${MSGCORE_REDIS}
  channel: ${MSGCORE_CHANNEL_UNSET:-fallback}
receipts:
  server_url: ${MSGCORE_SERVER_UNSET}
`))
	require.NoError(t, err)
	assert.Equal(t, "redis://cache:6379", cfg.Bridge.RedisURL)
	assert.Equal(t, "fallback", cfg.Bridge.Channel)
	assert.Empty(t, cfg.Receipts.ServerURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}
