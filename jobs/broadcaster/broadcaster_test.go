package broadcaster

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/infra/kafka"
	"storefront/infra/wal/exit"
)

var (
	_ Publisher = (*SaramaPublisher)(nil)
	_ Publisher = (*kafka.Producer)(nil)
)

type fakePublisher struct {
	mu   sync.Mutex
	fail bool
	keys []string
	msgs [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broker down")
	}
	f.keys = append(f.keys, string(key))
	f.msgs = append(f.msgs, value)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func newTestOutbox(t *testing.T) *exit.Outbox {
	t.Helper()
	o, err := exit.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { o.Close() })
	return o
}

func enqueue(t *testing.T, o *exit.Outbox, ev exit.Event) uint64 {
	t.Helper()
	b, err := ev.Encode()
	require.NoError(t, err)
	seq, err := o.Enqueue(b)
	require.NoError(t, err)
	return seq
}

func TestFlushPublishesAndTruncates(t *testing.T) {
	o := newTestOutbox(t)
	pub := &fakePublisher{}
	b := New(o, pub, time.Second, nil)

	enqueue(t, o, exit.NewEvent(exit.EventProductCreated, 1, 1))
	enqueue(t, o, exit.NewEvent(exit.EventOrderCreated, 1, 2))

	n, err := b.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"product/1", "order/1"}, pub.keys)

	// acked records are gone, nothing left to send
	n, err = b.Flush(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 2, pub.count())
}

func TestFlushRetriesFailures(t *testing.T) {
	o := newTestOutbox(t)
	pub := &fakePublisher{fail: true}
	b := New(o, pub, time.Second, nil)

	seq := enqueue(t, o, exit.NewEvent(exit.EventOrderDeleted, 4, 9))

	n, err := b.Flush(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	rec, err := o.Get(seq)
	require.NoError(t, err)
	assert.Equal(t, exit.StateFailed, rec.State)
	assert.Equal(t, uint32(1), rec.Retries)

	// broker recovers
	pub.mu.Lock()
	pub.fail = false
	pub.mu.Unlock()

	n, err = b.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFlushGivesUpAfterMaxRetries(t *testing.T) {
	o := newTestOutbox(t)
	pub := &fakePublisher{fail: true}
	b := New(o, pub, time.Second, nil)
	b.maxRetries = 2

	seq := enqueue(t, o, exit.NewEvent(exit.EventOrderUpdated, 2, 3))
	for i := 0; i < 4; i++ {
		_, err := b.Flush(context.Background())
		require.NoError(t, err)
	}

	rec, err := o.Get(seq)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), rec.Retries)
}

func TestRunStopsOnCancel(t *testing.T) {
	o := newTestOutbox(t)
	pub := &fakePublisher{}
	b := New(o, pub, 10*time.Millisecond, nil)
	enqueue(t, o, exit.NewEvent(exit.EventOrderCreated, 5, 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return pub.count() == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcaster did not stop")
	}
}

func TestFlushAfterRestartPublishesInterruptedEvent(t *testing.T) {
	dir := t.TempDir()
	o, err := exit.Open(dir)
	require.NoError(t, err)
	seq := enqueue(t, o, exit.NewEvent(exit.EventOrderUpdated, 2, 5))
	// crash between MarkSent and Publish
	require.NoError(t, o.MarkSent(seq))
	require.NoError(t, o.Close())

	o, err = exit.Open(dir)
	require.NoError(t, err)
	defer o.Close()

	pub := &fakePublisher{}
	n, err := New(o, pub, time.Second, nil).Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"order/2"}, pub.keys)
}
