package service

import (
	"storefront/domain/catalog"
)

/*
reload rebuilds in-memory state from the snapshot files.

- It runs once, from New, before any traffic.
- Unreadable files are logged and treated as empty. The next write
  to that entity kind overwrites them.
- Id sequencers resume after the highest id seen.
*/
func (s *Service) reload() {
	products, err := s.productFile.Load()
	if err != nil {
		s.log.Warn("discarding unreadable product snapshot", "path", s.productFile.Path, "err", err)
		products = nil
	}
	for _, p := range products {
		s.products.Insert(p)
		if p.ID > 0 {
			s.productIDs.Observe(uint64(p.ID))
		}
	}

	orders, err := s.orderFile.Load()
	if err != nil {
		s.log.Warn("discarding unreadable order snapshot", "path", s.orderFile.Path, "err", err)
		orders = nil
	}
	for _, o := range orders {
		if o == nil {
			continue
		}
		if o.Products == nil {
			o.Products = catalog.LineItems{}
		}
		s.orders.Append(o)
		if o.ID > 0 {
			s.orderIDs.Observe(uint64(o.ID))
		}
	}

	indexDepth.Set(float64(s.products.Depth()))
	ordersStored.Set(float64(s.orders.Len()))

	s.log.Info("state reloaded",
		"products", s.products.Len(),
		"orders", s.orders.Len(),
		"last_product_id", s.productIDs.Current(),
		"last_order_id", s.orderIDs.Current(),
	)
}
