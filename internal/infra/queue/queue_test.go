package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
)

type ctxKey struct{}

func TestImmediateQueueRunsJobsAndDrains(t *testing.T) {
	defer goleak.VerifyNone(t)

	var (
		mu     sync.Mutex
		seen   []string
		values []any
		errs   []error
		calls  atomic.Int32
	)
	q := NewImmediateQueue(func(ctx context.Context, name string, payload map[string]any) {
		mu.Lock()
		seen = append(seen, payload["sign"].(string))
		values = append(values, ctx.Value(ctxKey{}))
		errs = append(errs, ctx.Err())
		mu.Unlock()
		calls.Add(1)
	})

	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "request-1"))
	for _, sign := range []string{"aries", "leo", "pisces"} {
		require.NoError(t, q.Enqueue(ctx, horoscope.JobPrewarm, map[string]any{"sign": sign}))
	}
	cancel()
	require.NoError(t, q.Close())

	require.EqualValues(t, 3, calls.Load())
	require.ElementsMatch(t, []string{"aries", "leo", "pisces"}, seen)
	require.Equal(t, []any{"request-1", "request-1", "request-1"}, values)
	require.Equal(t, []error{nil, nil, nil}, errs)
}

func TestImmediateQueueWithoutHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewImmediateQueue(nil)
	require.NoError(t, q.Enqueue(context.Background(), "noop", nil))
	require.NoError(t, q.Close())

	type delivery struct {
		name    string
		payload map[string]any
	}
	done := make(chan delivery, 1)
	q.SetHandler(func(_ context.Context, name string, payload map[string]any) {
		done <- delivery{name: name, payload: payload}
	})
	require.NoError(t, q.Enqueue(context.Background(), "later", "not a map"))
	require.NoError(t, q.Close())
	got := <-done
	require.Equal(t, "later", got.name)
	require.NotNil(t, got.payload)
}

func TestValkeyQueueCloseWithoutWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewValkeyQueue(nil, "", nil)
	require.Equal(t, defaultQueueKey, q.queueKey)
	require.NoError(t, q.Close())
}

func TestJobEnvelope(t *testing.T) {
	raw, err := encodeJob(horoscope.JobPrewarm, map[string]string{"sign": "aries", "language": "zh"})
	require.NoError(t, err)

	job, err := decodeJob(raw)
	require.NoError(t, err)
	require.Equal(t, horoscope.JobPrewarm, job.Name)
	require.Equal(t, map[string]any{"sign": "aries", "language": "zh"}, job.Payload)

	job, err = decodeJob(`{"name":"empty"}`)
	require.NoError(t, err)
	require.NotNil(t, job.Payload)

	_, err = decodeJob("not json")
	require.Error(t, err)
}
