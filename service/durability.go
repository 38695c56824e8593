package service

import (
	"fmt"
	"strconv"

	"storefront/domain/catalog"
	"storefront/infra/wal/entry"
	"storefront/infra/wal/exit"
)

// record journals a mutation intent. It returns 0 when journaling is off.
func (s *Service) record(t entry.RecordType, fields map[string]any) (uint64, error) {
	if s.journal == nil {
		return 0, nil
	}
	data, err := entry.EncodePayload(fields)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrJournal, err)
	}
	seq, err := s.journal.Append(t, data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrJournal, err)
	}
	return seq, nil
}

func (s *Service) persistProducts() error {
	if err := s.productFile.Write(s.products.InOrder()); err != nil {
		s.productsStale = true
		snapshotFailures.WithLabelValues("product").Inc()
		s.log.Error("product snapshot write failed", "path", s.productFile.Path, "err", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.productsStale = false
	return nil
}

func (s *Service) persistOrders() error {
	if err := s.orderFile.Write(s.orders.Items()); err != nil {
		s.ordersStale = true
		snapshotFailures.WithLabelValues("order").Inc()
		s.log.Error("order snapshot write failed", "path", s.orderFile.Path, "err", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.ordersStale = false
	return nil
}

// checkpoint drops journal segments up to seq once both snapshot files
// hold every mutation through seq. Failures only cost disk space.
func (s *Service) checkpoint(seq uint64) {
	if s.journal == nil || seq == 0 || s.productsStale || s.ordersStale {
		return
	}
	removed, err := s.journal.TruncateBefore(seq)
	if err != nil {
		journalTruncateFailures.Inc()
		s.log.Warn("journal truncate failed", "seq", seq, "err", err)
		return
	}
	if removed > 0 {
		s.log.Debug("journal truncated", "seq", seq, "segments", removed)
	}
}

// publish enqueues an outbound event. Failures are logged, never returned:
// the snapshot is already the source of truth.
func (s *Service) publish(typ string, id int64, seq uint64) {
	if s.outbox == nil {
		return
	}
	payload, err := exit.NewEvent(typ, id, seq).Encode()
	if err == nil {
		_, err = s.outbox.Enqueue(payload)
	}
	if err != nil {
		outboxFailures.Inc()
		s.log.Warn("event enqueue failed", "type", typ, "id", id, "err", err)
	}
}

func lineItemsPayload(li catalog.LineItems) map[string]any {
	out := make(map[string]any, len(li))
	for pid, qty := range li {
		out[strconv.FormatInt(pid, 10)] = qty
	}
	return out
}
