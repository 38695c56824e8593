package service

import (
	"fmt"

	"storefront/domain/catalog"
	"storefront/infra/wal/entry"
	"storefront/infra/wal/exit"
)

//
// ──────────────────────────────────────────────────────────
// Commands
// ──────────────────────────────────────────────────────────
//

// CreateOrder appends a new order. Line items may name unknown products;
// those are resolved, or skipped, when a detail is composed.
func (s *Service) CreateOrder(items catalog.LineItems) (catalog.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := &catalog.Order{
		ID:       int64(s.orderIDs.Current() + 1),
		Products: items.Clone(),
	}

	seq, err := s.record(entry.RecordOrderCreate, map[string]any{
		"id":       o.ID,
		"products": lineItemsPayload(o.Products),
	})
	if err != nil {
		return catalog.Order{}, err
	}

	s.orderIDs.Next()
	s.orders.Append(o)
	orderMutations.WithLabelValues("create").Inc()
	ordersStored.Set(float64(s.orders.Len()))

	out := catalog.Order{ID: o.ID, Products: o.Products.Clone()}
	if err := s.persistOrders(); err != nil {
		return out, err
	}
	s.checkpoint(seq)
	s.publish(exit.EventOrderCreated, o.ID, seq)
	return out, nil
}

// UpdateOrder replaces the line items of order id wholesale.
func (s *Service) UpdateOrder(id int64, items catalog.LineItems) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders.Find(catalog.ByID(id))
	if !ok {
		lookupMisses.WithLabelValues("order").Inc()
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}

	next := items.Clone()
	seq, err := s.record(entry.RecordOrderUpdate, map[string]any{
		"id":       id,
		"products": lineItemsPayload(next),
	})
	if err != nil {
		return err
	}

	o.Products = next
	orderMutations.WithLabelValues("update").Inc()

	if err := s.persistOrders(); err != nil {
		return err
	}
	s.checkpoint(seq)
	s.publish(exit.EventOrderUpdated, id, seq)
	return nil
}

// DeleteOrder unlinks order id from the ledger.
func (s *Service) DeleteOrder(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := catalog.ByID(id)
	if _, ok := s.orders.Find(match); !ok {
		lookupMisses.WithLabelValues("order").Inc()
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}

	seq, err := s.record(entry.RecordOrderDelete, map[string]any{"id": id})
	if err != nil {
		return err
	}

	if _, ok := s.orders.DeleteFirst(match); !ok {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	orderMutations.WithLabelValues("delete").Inc()
	ordersStored.Set(float64(s.orders.Len()))

	if err := s.persistOrders(); err != nil {
		return err
	}
	s.checkpoint(seq)
	s.publish(exit.EventOrderDeleted, id, seq)
	return nil
}

//
// ──────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────
//

// GetOrderDetail resolves order id against the current catalog.
func (s *Service) GetOrderDetail(id int64) (catalog.OrderDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders.Find(catalog.ByID(id))
	if !ok {
		lookupMisses.WithLabelValues("order").Inc()
		return catalog.OrderDetail{}, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return catalog.Compose(o, s.products.Search), nil
}

// ListOrders composes the detail of every order in ledger order.
func (s *Service) ListOrders() []catalog.OrderDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := s.orders.Items()
	out := make([]catalog.OrderDetail, 0, len(orders))
	for _, o := range orders {
		out = append(out, catalog.Compose(o, s.products.Search))
	}
	return out
}
