// Package store implements the shared durable store that every msgcore
// process opens.
//
// The store is a single SQLite file in WAL mode. Several OS processes (the
// main app and its extensions) open it concurrently; SQLite's file locking
// serializes writers and the 5s busy timeout absorbs contention.
//
// # Change log
//
// Every mutation made through a Tx appends a row to change_log in the same
// transaction. Rows are identified by an AUTOINCREMENT seq, so the head
// position (CurrentLogPosition) keeps growing even after rows are purged.
// Each process tails the log with FetchRecords and the primary process
// removes consumed rows with PurgeRecords.
//
// # Retention
//
// A RetentionPolicy caps the log by row count and age. Trimming happens on
// commit, by whichever process commits, and raises the truncated_through
// watermark; readers compare their cursor against it to detect lost history.
//
// # Idempotency
//
// Inserts use ON CONFLICT DO NOTHING and report whether a row was actually
// written, so replays of the same history leave the store unchanged.
package store
