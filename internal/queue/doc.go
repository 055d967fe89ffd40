// Package queue provides the unbounded FIFO and single-goroutine worker that
// every serialization point in msgcore is built on: the replayer's job
// worker, the uploader's completion worker, the router's delivery and
// receipt-ingestion queues, and each pub/sub subscriber.
package queue
