package service

import (
	"testing"

	"storefront/domain/catalog"
)

func BenchmarkGetOrderDetail(b *testing.B) {
	s := New(Config{DataDir: b.TempDir()})
	for i := 0; i < 100; i++ {
		if _, err := s.CreateProduct("p", float64(i)); err != nil {
			b.Fatal(err)
		}
	}
	for i := 0; i < 100; i++ {
		if _, err := s.CreateOrder(catalog.LineItems{int64(i%100 + 1): 1, 50: 2}); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := s.GetOrderDetail(100); err != nil {
				b.Fatal(err)
			}
		}
	})
}
