package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/msgcore/internal/ir"
)

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/retention_cap_loses_unconsumed_history.yaml")
	require.NoError(t, err)

	assert.Equal(t, "retention_cap_loses_unconsumed_history", s.Name)
	assert.Equal(t, "flow-retention", s.FlowID)
	require.NotNil(t, s.History)
	assert.Equal(t, 2, s.History.MaxRecords)
	require.Len(t, s.Steps, 5)
	assert.Equal(t, ir.ProcessNotificationExtension, s.Steps[0].Wake)
	require.NotNil(t, s.Steps[1].Write)
	assert.Equal(t, OpUploadMessage, s.Steps[1].Write.Op)
	assert.Equal(t, "01", s.Steps[1].Write.UID)
	require.Len(t, s.Assertions, 4)
	assert.Equal(t, int64(4), *s.Assertions[0].Count)
}

func TestLoadScenario_Advance(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/history_older_than_max_age_is_trimmed.yaml")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, s.History.MaxAge.Duration)
	assert.Equal(t, 2*time.Hour, s.Steps[2].Advance.Duration)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_RejectsUnknownFields(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: "assertion instead of assertions"
steps:
  - wake: main_app
assertion:
  - type: history_count
    count: 0
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "description: d\nsteps: [{wake: main_app}]\nassertions: [{type: history_count, count: 0}]",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: n\nsteps: [{wake: main_app}]\nassertions: [{type: history_count, count: 0}]",
			want: "description is required",
		},
		{
			name: "no steps",
			yaml: "name: n\ndescription: d\nassertions: [{type: history_count, count: 0}]",
			want: "steps list is required",
		},
		{
			name: "no assertions",
			yaml: "name: n\ndescription: d\nsteps: [{wake: main_app}]",
			want: "assertions list is required",
		},
		{
			name: "unknown process",
			yaml: "name: n\ndescription: d\nsteps: [{wake: widget}]\nassertions: [{type: history_count, count: 0}]",
			want: "steps[0]",
		},
		{
			name: "two actions in one step",
			yaml: "name: n\ndescription: d\nsteps: [{wake: main_app, advance: 1s}]\nassertions: [{type: history_count, count: 0}]",
			want: "exactly one of",
		},
		{
			name: "empty step",
			yaml: "name: n\ndescription: d\nsteps: [{}]\nassertions: [{type: history_count, count: 0}]",
			want: "exactly one of",
		},
		{
			name: "unknown op",
			yaml: "name: n\ndescription: d\nsteps: [{write: {process: main_app, op: explode, owned: a1}}]\nassertions: [{type: history_count, count: 0}]",
			want: `unknown op "explode"`,
		},
		{
			name: "message op without uid",
			yaml: "name: n\ndescription: d\nsteps: [{write: {process: main_app, op: upload_message, owned: a1}}]\nassertions: [{type: history_count, count: 0}]",
			want: "uid is required",
		},
		{
			name: "contact op without contact",
			yaml: "name: n\ndescription: d\nsteps: [{write: {process: main_app, op: put_contact, owned: a1}}]\nassertions: [{type: history_count, count: 0}]",
			want: "contact is required",
		},
		{
			name: "unsupported event",
			yaml: "name: n\ndescription: d\nsteps: [{publish: {process: main_app, event: BackupFailed}}]\nassertions: [{type: history_count, count: 0}]",
			want: "unsupported event",
		},
		{
			name: "well-known without url",
			yaml: "name: n\ndescription: d\nsteps: [{publish: {process: main_app, event: WellKnownHasBeenUpdated}}]\nassertions: [{type: history_count, count: 0}]",
			want: "server_url is required",
		},
		{
			name: "cursor without value",
			yaml: "name: n\ndescription: d\nsteps: [{wake: main_app}]\nassertions: [{type: cursor, process: main_app}]",
			want: "value is required",
		},
		{
			name: "unknown assertion",
			yaml: "name: n\ndescription: d\nsteps: [{wake: main_app}]\nassertions: [{type: final_state}]",
			want: `unknown assertion type "final_state"`,
		},
		{
			name: "negative history",
			yaml: "name: n\ndescription: d\nhistory: {max_records: -1}\nsteps: [{wake: main_app}]\nassertions: [{type: history_count, count: 0}]",
			want: "non-negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenarios_SortedByFileName(t *testing.T) {
	dir := t.TempDir()
	doc := "name: %s\ndescription: d\nsteps: [{wake: main_app}]\nassertions: [{type: history_count, count: 0}]\n"
	for _, name := range []string{"b", "a"} {
		content := []byte(fmt.Sprintf(doc, name))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), content, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	scenarios, err := LoadScenarios(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "a", scenarios[0].Name)
	assert.Equal(t, "b", scenarios[1].Name)
}

func TestLoadScenarios_NamesBadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [unterminated"), 0o600))
	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}
