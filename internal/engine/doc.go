// Package engine assembles the msgcore delivery core for one process.
//
// ARCHITECTURE:
//
// Every process kind (main app, notification extension, share extension)
// opens the same SQLite store and runs its own Engine:
//
//	store ──change log──▶ Replayer ──▶ outbox Consumer ──▶ events bus
//	                                                           │
//	                                              Router ◀─────┘
//	                                                │
//	                            notifications bus ◀─┘──▶ Redis bridge
//
// Wakes come from three places: the process calling Wake, the store watcher
// noticing another process's commit, and Run starting up. Each wake becomes
// one replay attempt on the replayer's serial worker.
//
// Return receipts take a separate path: Receipts().Send encrypts and queues
// an upload whose task is registered in the store under the process's
// channel id, so that a later process instance can reattach to it from
// HandleBackgroundEvents.
//
// Shutdown order matters. Close stops wakes first, then drains the replayer,
// the router and the bridge, so that every event produced before Close is
// delivered.
package engine
