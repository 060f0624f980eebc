package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

const defaultQueueKey = "astro:jobs"

// ValkeyQueue persists jobs in a Valkey list and delivers them to a handler.
type ValkeyQueue struct {
	client      valkey.Client
	queueKey    string
	logger      *slog.Logger
	pollTimeout time.Duration

	mu      sync.Mutex
	handler Handler
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewValkeyQueue constructs a Valkey-backed queue.
func NewValkeyQueue(client valkey.Client, queueKey string, logger *slog.Logger) *ValkeyQueue {
	if queueKey == "" {
		queueKey = defaultQueueKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ValkeyQueue{
		client:      client,
		queueKey:    queueKey,
		logger:      logger.With("component", "queue.valkey"),
		pollTimeout: 5 * time.Second,
	}
}

// SetHandler starts the worker loop that pops jobs and invokes the handler.
// Calling it again swaps the handler without starting a second worker.
func (q *ValkeyQueue) SetHandler(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handler = handler
	if handler == nil || q.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.consume(ctx)
	}()
}

// Enqueue pushes a job onto the queue.
func (q *ValkeyQueue) Enqueue(ctx context.Context, name string, payload any) error {
	encoded, err := encodeJob(name, payload)
	if err != nil {
		return err
	}
	cmd := q.client.B().Lpush().Key(q.queueKey).Element(encoded).Build()
	return q.client.Do(ctx, cmd).Error()
}

// Close stops the worker and waits for the current job to finish.
func (q *ValkeyQueue) Close() error {
	q.mu.Lock()
	cancel := q.cancel
	q.cancel = nil
	q.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	q.wg.Wait()
	return nil
}

func (q *ValkeyQueue) currentHandler() Handler {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.handler
}

func (q *ValkeyQueue) consume(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		resp := q.client.Do(ctx, q.client.B().Brpop().Key(q.queueKey).Timeout(q.pollTimeout.Seconds()).Build())
		values, err := resp.ToArray()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if !valkey.IsValkeyNil(err) {
				q.logger.Warn("valkey queue pop failed", "error", err)
				q.backoff(ctx)
			}
			continue
		}
		handler := q.currentHandler()
		if len(values) < 2 || handler == nil {
			continue
		}
		raw, err := values[1].ToString()
		if err != nil {
			q.logger.Warn("valkey queue payload decode failed", "error", err)
			continue
		}
		job, err := decodeJob(raw)
		if err != nil {
			q.logger.Warn("valkey queue unmarshal failed", "error", err)
			continue
		}
		handler(ctx, job.Name, job.Payload)
	}
}

func (q *ValkeyQueue) backoff(ctx context.Context) {
	timer := time.NewTimer(time.Second)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

var _ HandlerQueue = (*ValkeyQueue)(nil)
