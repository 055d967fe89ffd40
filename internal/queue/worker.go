package queue

// Worker drains a Queue on a single goroutine, so at most one handler call
// runs at any time and items are handled in submission order.
type Worker[T any] struct {
	q      *Queue[T]
	handle func(T)
	done   chan struct{}
}

// NewWorker starts a worker that calls handle for every submitted item.
func NewWorker[T any](handle func(T)) *Worker[T] {
	w := &Worker[T]{
		q:      New[T](),
		handle: handle,
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

// Submit enqueues v. Never blocks. Returns false after Close.
func (w *Worker[T]) Submit(v T) bool {
	return w.q.Enqueue(v)
}

// Len returns the number of items waiting to be handled.
func (w *Worker[T]) Len() int {
	return w.q.Len()
}

// Close stops accepting items. Items already queued are still handled;
// Done is closed after the last one.
func (w *Worker[T]) Close() {
	w.q.Close()
}

// Done is closed when the worker goroutine has exited.
func (w *Worker[T]) Done() <-chan struct{} {
	return w.done
}

func (w *Worker[T]) run() {
	defer close(w.done)
	for {
		if v, ok := w.q.TryDequeue(); ok {
			w.handle(v)
			continue
		}
		if w.q.Drained() {
			return
		}
		<-w.q.Wait()
	}
}
