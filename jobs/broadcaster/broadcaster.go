package broadcaster

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"storefront/infra/wal/exit"
)

var eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
	Name: "storefront_events_published_total",
	Help: "Number of outbox events published",
})

var eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "storefront_events_failed_total",
	Help: "Number of outbox publish attempts that failed",
})

const DefaultMaxRetries = 10

// Publisher delivers one keyed message to the broker.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
	Close() error
}

type Broadcaster struct {
	outbox     *exit.Outbox
	pub        Publisher
	interval   time.Duration
	maxRetries uint32
	log        *slog.Logger
}

// ------------------------------------------------
// CONSTRUCTOR
// ------------------------------------------------

func New(outbox *exit.Outbox, pub Publisher, interval time.Duration, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		outbox:     outbox,
		pub:        pub,
		interval:   interval,
		maxRetries: DefaultMaxRetries,
		log:        logger.With("component", "broadcaster"),
	}
}

// ------------------------------------------------
// LOOP
// ------------------------------------------------

// Run flushes the outbox every interval until ctx is done.
func (b *Broadcaster) Run(ctx context.Context) {
	b.log.Info("started", "interval", b.interval)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.log.Info("stopped")
			return

		case <-ticker.C:
			if _, err := b.Flush(ctx); err != nil {
				b.log.Error("flush failed", "err", err)
			}
		}
	}
}

// Flush makes one pass over pending records and returns how many were
// acknowledged.
func (b *Broadcaster) Flush(ctx context.Context) (int, error) {
	acked := 0
	err := b.outbox.ScanPending(func(rec exit.Record) error {
		if rec.Retries >= b.maxRetries {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := b.outbox.MarkSent(rec.Seq); err != nil {
			return err
		}

		key := []byte(nil)
		if ev, err := exit.DecodeEvent(rec.Payload); err == nil {
			key = ev.Key()
		}

		if err := b.pub.Publish(ctx, key, rec.Payload); err != nil {
			eventsFailed.Inc()
			b.log.Warn("publish failed", "seq", rec.Seq, "retries", rec.Retries+1, "err", err)
			return b.outbox.MarkFailed(rec.Seq)
		}

		eventsPublished.Inc()
		acked++
		return b.outbox.MarkAcked(rec.Seq)
	})
	if err != nil {
		return acked, err
	}

	if _, err := b.outbox.TruncateAcked(); err != nil {
		return acked, err
	}
	return acked, nil
}

// ------------------------------------------------
// SHUTDOWN
// ------------------------------------------------

func (b *Broadcaster) Close() error {
	return b.pub.Close()
}
