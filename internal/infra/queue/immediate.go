package queue

import (
	"context"
	"sync"
)

// ImmediateQueue calls the handler in a goroutine on enqueue.
type ImmediateQueue struct {
	mu      sync.RWMutex
	handler Handler
	wg      sync.WaitGroup
}

// NewImmediateQueue constructs the queue.
func NewImmediateQueue(handler Handler) *ImmediateQueue {
	return &ImmediateQueue{handler: handler}
}

// SetHandler replaces the handler used for queued jobs.
func (q *ImmediateQueue) SetHandler(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handler = handler
}

// Enqueue invokes the handler asynchronously. The job outlives the request
// context but keeps its values.
func (q *ImmediateQueue) Enqueue(ctx context.Context, name string, payload any) error {
	q.mu.RLock()
	handler := q.handler
	q.mu.RUnlock()
	if handler == nil {
		return nil
	}
	typed := payloadMap(payload)
	jobCtx := context.WithoutCancel(ctx)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		handler(jobCtx, name, typed)
	}()
	return nil
}

// Close waits for running jobs.
func (q *ImmediateQueue) Close() error {
	q.wg.Wait()
	return nil
}

var _ HandlerQueue = (*ImmediateQueue)(nil)
