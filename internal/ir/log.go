package ir

import (
	"fmt"
	"slices"
	"time"
)

// LogCursor is a position in the shared change log.
// Positions are totally ordered; zero means "before the first record".
type LogCursor int64

// ProcessKind identifies which process is running the engine.
type ProcessKind string

const (
	ProcessMainApp               ProcessKind = "main_app"
	ProcessNotificationExtension ProcessKind = "notification_extension"
	ProcessShareExtension        ProcessKind = "share_extension"
)

// AllProcessKinds lists every process kind in a stable order.
var AllProcessKinds = []ProcessKind{
	ProcessMainApp,
	ProcessNotificationExtension,
	ProcessShareExtension,
}

// IsPrimary reports whether the process is responsible for purging history.
// Only the main application is.
func (p ProcessKind) IsPrimary() bool {
	return p == ProcessMainApp
}

// Validate returns an error for unknown process kinds.
func (p ProcessKind) Validate() error {
	if slices.Contains(AllProcessKinds, p) {
		return nil
	}
	return fmt.Errorf("unknown process kind %q", string(p))
}

// ChangeOp is the kind of mutation a change record describes.
type ChangeOp string

const (
	OpInsert ChangeOp = "insert"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// Entities tracked in the change log.
const (
	EntityOutboxMessage = "outbox_message"
	EntityContact       = "contact"
	EntityGroup         = "contact_group"
	EntityOwnedDevice   = "owned_device"
)

// Properties whose changes the outbox consumer reacts to.
const (
	PropertyTimestampFromServer = "timestamp_from_server"
)

// ChangeRecord is one committed change in the shared store.
type ChangeRecord struct {
	Seq         LogCursor   `json:"seq"`
	Author      ProcessKind `json:"author"`
	Entity      string      `json:"entity"`
	Op          ChangeOp    `json:"op"`
	EntityKey   string      `json:"entity_key"`
	Changed     []string    `json:"changed,omitempty"`
	CommittedAt time.Time   `json:"committed_at"`
}

// Touches reports whether the record changed the named property.
func (r ChangeRecord) Touches(property string) bool {
	return slices.Contains(r.Changed, property)
}
