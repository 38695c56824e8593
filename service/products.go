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

// CreateProduct assigns the next product id, indexes the product and
// rewrites the product snapshot. On ErrPersist the product is indexed
// and returned, but not yet on disk.
func (s *Service) CreateProduct(name string, price float64) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := catalog.Product{
		ID:    int64(s.productIDs.Current() + 1),
		Name:  name,
		Price: price,
	}

	seq, err := s.record(entry.RecordProductCreate, map[string]any{
		"id":           p.ID,
		"product_name": p.Name,
		"price":        p.Price,
	})
	if err != nil {
		return catalog.Product{}, err
	}

	s.productIDs.Next()
	s.products.Insert(p)
	productsCreated.Inc()
	indexDepth.Set(float64(s.products.Depth()))

	if err := s.persistProducts(); err != nil {
		return p, err
	}
	s.checkpoint(seq)
	s.publish(exit.EventProductCreated, p.ID, seq)
	return p, nil
}

//
// ──────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────
//

func (s *Service) GetProduct(id int64) (catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products.Search(id)
	if !ok {
		lookupMisses.WithLabelValues("product").Inc()
		return catalog.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, nil
}

// ListProducts returns every product in ascending id order.
func (s *Service) ListProducts() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.products.InOrder()
}
