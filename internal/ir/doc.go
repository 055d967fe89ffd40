// Package ir provides the shared vocabulary of msgcore.
//
// This package contains identifiers, change-log types and the canonical JSON
// encoder. All other internal packages import ir; ir imports nothing
// internal. This keeps it the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Identities are opaque byte strings; UIDs are fixed 32-byte values
//   - Change-log positions are logical (LogCursor), never wall-clock
//   - NO float types in anything that is canonically encoded
//   - All JSON tags use snake_case
package ir
