package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/notification"
)

func TestScenarios_Golden(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

func TestRun_FailedAssertionIsReported(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: wrong_expectation
description: "Expects a notification that never comes"
steps:
  - wake: main_app
assertions:
  - type: notifications
    process: main_app
    names: [messageWasUploaded]
  - type: cursor
    process: main_app
    value: 0
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "assertions[0]")
	assert.Contains(t, result.Errors[0], "messageWasUploaded")
}

func TestRun_StepErrorAborts(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: mark_missing
description: "Marking a message nobody inserted fails the step"
steps:
  - write:
      process: share_extension
      op: mark_uploaded
      owned: a1
      uid: "09"
assertions:
  - type: history_count
    count: 0
`))
	require.NoError(t, err)

	_, err = Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0]")
	assert.Contains(t, err.Error(), "mark_uploaded by share_extension")
}

func TestRun_UploadSeenOncePerProcess(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: repeated_wakes
description: "Waking again after a delivery delivers nothing new"
steps:
  - wake: notification_extension
  - write:
      process: share_extension
      op: insert_message
      owned: a1
      uid: "01"
  - write:
      process: share_extension
      op: mark_uploaded
      owned: a1
      uid: "01"
  - wake: notification_extension
  - wake: notification_extension
assertions:
  - type: notifications
    process: notification_extension
    names: [messageWasUploaded]
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)

	require.Len(t, result.Trace, 5)
	last := result.Trace[4].Wake
	require.NotNil(t, last)
	assert.Equal(t, ir.LogCursor(2), last.From)
	assert.Equal(t, ir.LogCursor(2), last.To)
	assert.Zero(t, last.Applied)
	assert.Equal(t, []notification.Name{notification.NameMessageWasUploaded},
		result.Notifications[ir.ProcessNotificationExtension])
}

func TestShortUID(t *testing.T) {
	u, err := shortUID("0102")
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), u[0])
	assert.Equal(t, byte(0x02), u[1])
	assert.Equal(t, byte(0x00), u[2])

	_, err = shortUID("zz")
	assert.Error(t, err)
	_, err = shortUID("")
	assert.Error(t, err)
}
