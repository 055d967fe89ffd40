// Package replay catches a process up with changes other processes committed
// to the shared store.
//
// # Replay Flow
//
// Each process kind persists the last change-log position it consumed in its
// own cursor file. A replay attempt runs:
//
//	[head = current log position]
//	        ↓
//	[load cursor] ── absent ──→ [save head] → done (bootstrap)
//	        │ ── corrupt ─→ [delete file] → ErrCorruptCursor
//	        ↓
//	[fetch (cursor, head]] → [consumer.Apply in the same tx] → [commit]
//	        ↓
//	[save head]
//	        ↓
//	[primary only: purge seq < head]
//
// # Crash Safety
//
// The cursor file is written only after the consumer's transaction committed:
//
//	Crash before the cursor is saved:
//	  the old cursor is still on disk, the same range is fetched again and
//	  the consumer sees it twice. Consumers remember what they reacted to
//	  inside the same transaction, so the second pass changes nothing.
//
//	Crash after the cursor is saved, before the purge:
//	  the next attempt fetches an empty range and purges. Nothing is
//	  replayed twice.
//
// # Serialization
//
// All attempts run on one worker goroutine, so two wakes arriving together
// never interleave the load-fetch-save sequence on the cursor file.
//
// # Purging
//
// Only the main app purges: the extensions cannot know whether their
// siblings consumed a range. Growth while the main app does not run is bounded
// by the store's retention policy, which records a truncation watermark; a
// replay starting below that watermark logs how many entries it missed.
package replay
