// Package harness runs cross-process scenarios against real engines.
//
// A scenario opens one engine per process kind on a fresh shared store,
// interleaves writes, wakes and published events, then checks what each
// process observed. Every engine shares a manual clock and a fixed flow id
// so traces are reproducible and can be compared against golden files.
//
// # Scenario Format
//
//	name: upload_from_share_extension
//	description: "A message uploaded by the share extension reaches the app"
//	flow_id: flow-upload
//	history:
//	  max_records: 2
//	  max_age: 1h
//	steps:
//	  - wake: main_app
//	  - write:
//	      process: share_extension
//	      op: upload_message
//	      owned: a1
//	      uid: "01"
//	  - advance: 2h
//	  - publish:
//	      process: main_app
//	      event: WellKnownHasBeenUpdated
//	      server_url: https://server.example
//	assertions:
//	  - type: notifications
//	    process: main_app
//	    names: [messageWasUploaded]
//	  - type: cursor
//	    process: main_app
//	    value: 2
//
// # Determinism
//
// Notifications of different categories are not ordered relative to each
// other, so the harness compares them as sorted lists collected after every
// engine has drained and closed.
//
// # Golden Files
//
// RunWithGolden writes the trace as canonical JSON and compares it with
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
