package ir

// Version constants for persisted artifacts.
const (
	// CursorFormatVersion is the version tag written into cursor files.
	CursorFormatVersion = 1

	// NotificationVersion is the version of the external notification vocabulary.
	NotificationVersion = 1

	// EngineVersion is the msgcore engine version.
	EngineVersion = "0.1.0"
)
